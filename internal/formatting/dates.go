package formatting

import (
	"strconv"
	"strings"
)

var monthNames = [12]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// FormatMonthYear converts "YYYY-MM" into "Mon YYYY".
// Empty input yields "". Input whose month is not 01-12 is returned unchanged.
func FormatMonthYear(date string) string {
	if date == "" {
		return ""
	}

	year, month, ok := strings.Cut(date, "-")
	if !ok || year == "" {
		return date
	}
	m, err := strconv.Atoi(month)
	if err != nil || m < 1 || m > 12 {
		return date
	}
	return monthNames[m-1] + " " + year
}

// FormatDateRange renders a start/end pair.
// No start yields "". A current entry ends with "Present" regardless of end.
func FormatDateRange(start, end string, current bool) string {
	if start == "" {
		return ""
	}

	from := FormatMonthYear(start)
	to := ""
	switch {
	case current:
		to = "Present"
	case end != "":
		to = FormatMonthYear(end)
	}

	if to == "" {
		return from
	}
	return from + " - " + to
}
