package format

import "fmt"

// Duration renders a video length in seconds as a clock string with leading
// zero components trimmed: "0:42", "5:10", "1:23:45". Lengths of a day or
// more gain a day count, and a day count with a zero clock drops the clock
// entirely ("2 days"). Locale-independent, matching player timestamps.
func Duration(seconds float64) string {
	total := int64(seconds)
	if total < 0 {
		total = 0
	}

	days := total / 86400
	rem := total % 86400
	h := rem / 3600
	m := rem % 3600 / 60
	s := rem % 60

	if days > 0 {
		unit := "days"
		if days == 1 {
			unit = "day"
		}
		if h == 0 && m == 0 && s == 0 {
			return fmt.Sprintf("%d %s", days, unit)
		}
		return fmt.Sprintf("%d %s, %d:%02d:%02d", days, unit, h, m, s)
	}
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	if total < 60 {
		return fmt.Sprintf("0:%02d", s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
