package youtube

import "testing"

func TestParseISODuration(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"full", "PT1H2M3S", 3723},
		{"minutes and seconds", "PT4M13S", 253},
		{"seconds only", "PT45S", 45},
		{"minutes only", "PT20M", 1200},
		{"hours only", "PT2H", 7200},
		{"zero", "PT0S", 0},
		{"empty", "", 0},
		{"malformed", "garbage", 0},
		{"date part", "P1DT1M", 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseISODuration(tt.in); got != tt.want {
				t.Errorf("ParseISODuration(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}
