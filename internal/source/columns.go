package source

import (
	"strings"

	"github.com/ignite/constituent-reconciler/internal/reconcile"
)

// constituentAliases maps lowercase header names from the various CRM
// exports onto canonical column names. Headers outside this table still get
// carried through under their normalized name so they count toward row
// completeness; only recognized columns feed derived fields.
var constituentAliases = map[string]string{
	// Identifier
	"account_id":     reconcile.ColID,
	"account id":     reconcile.ColID,
	"constituent_id": reconcile.ColID,
	"constituent id": reconcile.ColID,
	"id":             reconcile.ColID,

	// Names
	"first_name": reconcile.ColFirstName,
	"first name": reconcile.ColFirstName,
	"firstname":  reconcile.ColFirstName,
	"last_name":  reconcile.ColLastName,
	"last name":  reconcile.ColLastName,
	"lastname":   reconcile.ColLastName,

	// Company
	"company_name": reconcile.ColCompanyName,
	"company name": reconcile.ColCompanyName,
	"company":      reconcile.ColCompanyName,
	"organization": reconcile.ColCompanyName,

	// Salutation / title
	"title":      reconcile.ColTitle,
	"salutation": reconcile.ColSalutation,

	// Background source fields
	"job_title":      reconcile.ColJobTitle,
	"job title":      reconcile.ColJobTitle,
	"marital_status": reconcile.ColMaritalStatus,
	"marital status": reconcile.ColMaritalStatus,

	// Tags
	"tags": reconcile.ColTags,
	"tag":  reconcile.ColTags,

	// Declared primary email
	"primary_email": reconcile.ColPrimaryEmail,
	"primary email": reconcile.ColPrimaryEmail,
	"email":         reconcile.ColPrimaryEmail,

	// Entry date
	"entry_date":   reconcile.ColEntryDate,
	"entry date":   reconcile.ColEntryDate,
	"date_entered": reconcile.ColEntryDate,
	"created_at":   reconcile.ColEntryDate,
}

var emailAliases = map[string]string{
	"account_id":     "id",
	"account id":     "id",
	"constituent_id": "id",
	"constituent id": "id",
	"id":             "id",
	"email":          "email",
	"email_address":  "email",
	"email address":  "email",
}

var donationAliases = map[string]string{
	"account_id":      "id",
	"account id":      "id",
	"constituent_id":  "id",
	"constituent id":  "id",
	"id":              "id",
	"status":          "status",
	"amount":          "amount",
	"donation_amount": "amount",
	"date":            "date",
	"donation_date":   "date",
}

// canonicalColumn resolves a raw header through an alias table, falling back
// to a normalized form of the header itself.
func canonicalColumn(aliases map[string]string, header string) string {
	h := strings.ToLower(strings.TrimSpace(header))
	if canonical, ok := aliases[h]; ok {
		return canonical
	}
	return strings.ReplaceAll(h, " ", "_")
}
