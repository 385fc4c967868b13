package youtube

import "strings"

// ParseISODuration converts an ISO 8601 duration of the form PT#H#M#S
// to seconds. Components may be absent; unrecognized designators are
// skipped. Malformed input yields 0.
func ParseISODuration(dur string) int {
	dur = strings.TrimPrefix(dur, "P")
	dur = strings.TrimPrefix(dur, "T")

	var hours, minutes, seconds int
	num := 0
	hasNum := false
	for _, ch := range dur {
		if ch >= '0' && ch <= '9' {
			num = num*10 + int(ch-'0')
			hasNum = true
			continue
		}
		switch ch {
		case 'T':
			// Date/time separator for durations with a date part.
		case 'H':
			if hasNum {
				hours = num
			}
		case 'M':
			if hasNum {
				minutes = num
			}
		case 'S':
			if hasNum {
				seconds = num
			}
		}
		num = 0
		hasNum = false
	}

	return hours*3600 + minutes*60 + seconds
}
