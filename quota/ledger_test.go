package quota

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func testLedger(t *testing.T) (*Ledger, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "quota_usage.json")
	return Open(path), path
}

func TestRecordAndUsage(t *testing.T) {
	l, _ := testLedger(t)

	if err := l.RecordUsage("key-a", 100); err != nil {
		t.Fatalf("RecordUsage() error = %v", err)
	}
	if err := l.RecordUsage("key-a", 1); err != nil {
		t.Fatalf("RecordUsage() error = %v", err)
	}
	if err := l.RecordCall("key-b"); err != nil {
		t.Fatalf("RecordCall() error = %v", err)
	}

	if got := l.Usage("key-a", 1); got != 101 {
		t.Errorf("Usage(key-a, 1) = %d, want 101", got)
	}
	if got := l.Usage("key-b", 1); got != 1 {
		t.Errorf("Usage(key-b, 1) = %d, want 1", got)
	}
	if got := l.Usage("unknown", 1); got != 0 {
		t.Errorf("Usage(unknown, 1) = %d, want 0", got)
	}
}

func TestUsageWindowMonotone(t *testing.T) {
	l, _ := testLedger(t)

	// Seed usage across three days by moving the clock.
	base := time.Date(2026, 8, 31, 12, 0, 0, 0, time.Local)
	for i, cost := range []int{10, 20, 30} {
		day := base.AddDate(0, 0, -i)
		l.now = func() time.Time { return day }
		if err := l.RecordUsage("k", cost); err != nil {
			t.Fatalf("RecordUsage() error = %v", err)
		}
	}
	l.now = func() time.Time { return base }

	prev := -1
	for _, days := range []int{1, 2, 3, 7, 30} {
		got := l.Usage("k", days)
		if got < prev {
			t.Errorf("Usage(k, %d) = %d, smaller than narrower window %d", days, got, prev)
		}
		prev = got
	}
	if got := l.Usage("k", 1); got != 10 {
		t.Errorf("Usage(k, 1) = %d, want 10", got)
	}
	if got := l.Usage("k", 3); got != 60 {
		t.Errorf("Usage(k, 3) = %d, want 60", got)
	}
}

func TestGetStatus(t *testing.T) {
	l, _ := testLedger(t)

	if err := l.RecordUsage("k", 9800); err != nil {
		t.Fatalf("RecordUsage() error = %v", err)
	}

	st := l.GetStatus("k")
	if st.Today != 9800 {
		t.Errorf("Today = %d, want 9800", st.Today)
	}
	if st.RemainingToday != 200 {
		t.Errorf("RemainingToday = %d, want 200", st.RemainingToday)
	}

	// Overspending clamps remaining at zero instead of going negative.
	if err := l.RecordUsage("k", 500); err != nil {
		t.Fatalf("RecordUsage() error = %v", err)
	}
	if st := l.GetStatus("k"); st.RemainingToday != 0 {
		t.Errorf("RemainingToday = %d, want 0", st.RemainingToday)
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	l, path := testLedger(t)

	if err := l.RecordUsage("k", 42); err != nil {
		t.Fatalf("RecordUsage() error = %v", err)
	}

	reopened := Open(path)
	if got := reopened.Usage("k", 1); got != 42 {
		t.Errorf("reopened Usage(k, 1) = %d, want 42", got)
	}
}

func TestOpenFailsOpenOnCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quota_usage.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	l := Open(path)
	if got := l.Usage("k", 1); got != 0 {
		t.Errorf("Usage on corrupt-file ledger = %d, want 0", got)
	}
	// The ledger must still be writable.
	if err := l.RecordUsage("k", 5); err != nil {
		t.Fatalf("RecordUsage() after corrupt open error = %v", err)
	}
}

func TestCleanOldData(t *testing.T) {
	l, _ := testLedger(t)

	base := time.Date(2026, 8, 31, 12, 0, 0, 0, time.Local)
	old := base.AddDate(0, 0, -40)

	l.now = func() time.Time { return old }
	if err := l.RecordUsage("stale", 5); err != nil {
		t.Fatal(err)
	}
	if err := l.RecordUsage("mixed", 5); err != nil {
		t.Fatal(err)
	}

	l.now = func() time.Time { return base }
	if err := l.RecordUsage("mixed", 7); err != nil {
		t.Fatal(err)
	}

	// A malformed date bucket must survive cleaning untouched.
	l.data["mixed"]["not-a-date"] = 99

	if err := l.CleanOldData(30); err != nil {
		t.Fatalf("CleanOldData() error = %v", err)
	}

	if got := l.Keys(); len(got) != 1 || got[0] != "mixed" {
		t.Errorf("Keys() after clean = %v, want [mixed]", got)
	}
	if got := l.Usage("mixed", 1); got != 7 {
		t.Errorf("Usage(mixed, 1) = %d, want 7", got)
	}
	if l.data["mixed"]["not-a-date"] != 99 {
		t.Error("malformed date bucket was removed")
	}
}
