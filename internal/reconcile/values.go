package reconcile

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// isoLayout is the timestamp format used in the output table.
const isoLayout = "2006-01-02T15:04:05"

// dateLayouts are tried in order by ParseDate. Exports from the CRM mix
// date-only and datetime cells in the same column.
var dateLayouts = []string{
	isoLayout,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	time.RFC3339,
}

// CleanString trims surrounding whitespace. Readers map null cells to the
// zero string before this is applied, so "" means null or blank either way.
func CleanString(v string) string {
	return strings.TrimSpace(v)
}

// CompletenessScore counts non-blank cells in a raw row. Used to rank
// duplicate rows for the same identifier.
func CompletenessScore(fields map[string]string) int {
	score := 0
	for _, v := range fields {
		if CleanString(v) != "" {
			score++
		}
	}
	return score
}

// ParseDate parses a raw date cell, trying each known layout.
// Unparseable input fails soft with ok=false.
func ParseDate(s string) (time.Time, bool) {
	s = CleanString(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseAmount parses a raw currency cell. Dollar signs and thousands
// separators from spreadsheet exports are stripped first.
func ParseAmount(s string) (float64, bool) {
	s = CleanString(s)
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// FormatISO renders a timestamp as YYYY-MM-DDTHH:MM:SS, "" when absent.
func FormatISO(t time.Time, ok bool) string {
	if !ok {
		return ""
	}
	return t.Format(isoLayout)
}

// FormatCurrency renders a dollar amount with two decimal places, "" when absent.
func FormatCurrency(amount float64, ok bool) string {
	if !ok {
		return ""
	}
	return fmt.Sprintf("$%.2f", amount)
}

// emailPattern requires a single @, no whitespace, and at least one dot in
// the domain part. Stricter vendor checks are out of scope; invalid emails
// are discarded, never corrected.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidEmail reports whether a raw email cell is usable. Case-insensitive.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(CleanString(s))
}

// NormalizeEmail lowercases and trims for comparison and storage.
func NormalizeEmail(s string) string {
	return strings.ToLower(CleanString(s))
}
