package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	isoDateRe     = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
	slashDateRe   = regexp.MustCompile(`\b(\d{1,2})[/\-.](\d{1,2})[/\-.](\d{2,4})\b`)
	monthNameRe   = regexp.MustCompile(`(?i)\b(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?\s+(\d{1,2}),?\s+(\d{4})\b`)
	dayMonthRe    = regexp.MustCompile(`(?i)\b(\d{1,2})\s+(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?,?\s+(\d{4})\b`)
	monthNumbers  = map[string]int{
		"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
		"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
	}
)

// ParseDate parses a date string in ISO, MM/DD/YYYY, DD/MM/YYYY or
// month-name form. Slash dates are disambiguated by whichever token exceeds
// 12; when both could be a month the US ordering wins.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)

	if m := isoDateRe.FindStringSubmatch(s); m != nil {
		return buildDate(atoi(m[1]), atoi(m[2]), atoi(m[3]))
	}

	if m := slashDateRe.FindStringSubmatch(s); m != nil {
		a, b, year := atoi(m[1]), atoi(m[2]), atoi(m[3])
		if year < 100 {
			year += 2000
		}
		month, day := a, b
		if a > 12 && b <= 12 {
			month, day = b, a
		}
		return buildDate(year, month, day)
	}

	if m := monthNameRe.FindStringSubmatch(s); m != nil {
		return buildDate(atoi(m[3]), monthNumbers[strings.ToLower(m[1][:3])], atoi(m[2]))
	}

	if m := dayMonthRe.FindStringSubmatch(s); m != nil {
		return buildDate(atoi(m[3]), monthNumbers[strings.ToLower(m[2][:3])], atoi(m[1]))
	}

	return time.Time{}, false
}

// FindDate scans free text for the first parseable date.
func FindDate(text string) (time.Time, string, bool) {
	for _, re := range []*regexp.Regexp{isoDateRe, monthNameRe, dayMonthRe, slashDateRe} {
		if m := re.FindString(text); m != "" {
			if t, ok := ParseDate(m); ok {
				return t, m, true
			}
		}
	}
	return time.Time{}, "", false
}

func buildDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// Reject rollovers like Feb 30
	if int(t.Month()) != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
