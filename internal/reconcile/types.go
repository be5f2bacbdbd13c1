package reconcile

import "time"

// ConstituentType is the person/company classification enum.
type ConstituentType string

const (
	TypePerson  ConstituentType = "Person"
	TypeCompany ConstituentType = "Company"
)

// Canonical column names used across all import sources. Readers map
// whatever headers the export carries onto these via the source package.
const (
	ColID            = "account_id"
	ColFirstName     = "first_name"
	ColLastName      = "last_name"
	ColCompanyName   = "company_name"
	ColTitle         = "title"
	ColSalutation    = "salutation"
	ColJobTitle      = "job_title"
	ColMaritalStatus = "marital_status"
	ColTags          = "tags"
	ColPrimaryEmail  = "primary_email"
	ColEntryDate     = "entry_date"
)

// ConstituentRecord is one raw row from the constituents table. Fields holds
// every non-null cell keyed by canonical column name; a missing key means the
// source cell was null, an empty string means it was present but blank.
// Index is the original row position and is the final dedup tie-break.
type ConstituentRecord struct {
	ID     string
	Fields map[string]string
	Index  int
}

// Field returns the cleaned value of a column, "" when null or blank.
func (r ConstituentRecord) Field(col string) string {
	return CleanString(r.Fields[col])
}

// EmailEntry is one row from the emails table.
type EmailEntry struct {
	ID    string
	Email string
}

// DonationTransaction is one row from the donation history table. Amount and
// Date stay raw; parsing is soft and happens during aggregation.
type DonationTransaction struct {
	ID     string
	Status string
	Amount string
	Date   string
	Index  int
}

// ResolvedEmails is the ordered email pair for one constituent.
// Invariant: Email1 == "" implies Email2 == "".
type ResolvedEmails struct {
	Email1 string
	Email2 string
}

// PaidDonation is the most-recent paid transaction selected for a rollup.
// HasAmount is false when the transaction's amount cell did not parse.
type PaidDonation struct {
	Amount    float64
	HasAmount bool
	Date      time.Time
}

// DonationRollup aggregates an identifier's paid transactions. A rollup only
// exists for identifiers with at least one paid transaction; Latest is nil
// when none of them carries a parseable date.
type DonationRollup struct {
	Total  float64
	Latest *PaidDonation
}

// OutputConstituent is the final enriched record, one per identifier.
type OutputConstituent struct {
	ID             string
	Type           ConstituentType
	FirstName      string
	LastName       string
	CompanyName    string
	CreatedAt      string
	Email1         string
	Email2         string
	Title          string
	Tags           string
	Background     string
	LifetimeAmount string
	LatestAmount   string
	LatestDate     string
}

// TagCountRow is one row of the tag-usage rollup.
type TagCountRow struct {
	Tag   string
	Count int
}

// Tables bundles the three source tables for one pipeline run.
type Tables struct {
	Constituents []ConstituentRecord
	Emails       []EmailEntry
	Donations    []DonationTransaction
}

// Result is the output of one pipeline run.
type Result struct {
	Constituents []OutputConstituent
	TagCounts    []TagCountRow
}
