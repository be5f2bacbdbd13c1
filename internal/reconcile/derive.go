package reconcile

import (
	"fmt"
	"strings"
)

// blankLikeCompany is the reserved vocabulary of company values that mean
// "no company". Fixed configuration constant; do not extend without a
// product decision.
var blankLikeCompany = map[string]bool{
	"none": true,
	"nan":  true,
	"n/a":  true,
	"...":  true,
	"null": true,
}

// canonicalTitles is the controlled salutation vocabulary. Keys are
// lowercase; anything outside the map normalizes to empty.
var canonicalTitles = map[string]string{
	"mr":   "Mr.",
	"mr.":  "Mr.",
	"mrs":  "Mrs.",
	"mrs.": "Mrs.",
	"ms":   "Ms.",
	"ms.":  "Ms.",
	"dr":   "Dr.",
	"dr.":  "Dr.",
}

// ClassifyType classifies a constituent from its cleaned company value.
// Blank-like placeholder values ("N/A", "none", ...) classify as Person.
func ClassifyType(company string) ConstituentType {
	c := CleanString(company)
	if c == "" || blankLikeCompany[strings.ToLower(c)] {
		return TypePerson
	}
	return TypeCompany
}

// NormalizeTitle maps a salutation to its canonical punctuated form. The
// salutation field wins; the title field is the fallback when the
// salutation is missing or outside the controlled vocabulary.
func NormalizeTitle(salutation, title string) string {
	if t := canonicalTitles[strings.ToLower(CleanString(salutation))]; t != "" {
		return t
	}
	return canonicalTitles[strings.ToLower(CleanString(title))]
}

// BuildBackground synthesizes the background-info string from the job title
// and marital status cells. Either clause is omitted when its source is
// blank; the marital clause is also omitted for the "Unknown" placeholder.
func BuildBackground(jobTitle, maritalStatus string) string {
	var clauses []string
	if jt := CleanString(jobTitle); jt != "" {
		clauses = append(clauses, fmt.Sprintf("Job Title: %s", jt))
	}
	if ms := CleanString(maritalStatus); ms != "" && !strings.EqualFold(ms, "unknown") {
		clauses = append(clauses, fmt.Sprintf("Marital Status: %s", ms))
	}
	return strings.Join(clauses, "; ")
}
