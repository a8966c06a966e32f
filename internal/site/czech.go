package site

import (
	"fmt"
	"time"
)

// czechMonths holds genitive month names used in display dates.
var czechMonths = map[time.Month]string{
	time.January:   "ledna",
	time.February:  "února",
	time.March:     "března",
	time.April:     "dubna",
	time.May:       "května",
	time.June:      "června",
	time.July:      "července",
	time.August:    "srpna",
	time.September: "září",
	time.October:   "října",
	time.November:  "listopadu",
	time.December:  "prosince",
}

// FormatCzechDate renders a date as e.g. "2. března 2026".
func FormatCzechDate(t time.Time) string {
	return fmt.Sprintf("%d. %s %d", t.Day(), czechMonths[t.Month()], t.Year())
}

// DisplayDate converts a "YYYY-MM-DD" string to its Czech display form,
// returning the input verbatim when it does not parse as a date.
func DisplayDate(dateStr string) string {
	t, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return dateStr
	}

	return FormatCzechDate(t)
}
