package reconcile

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

type fakeMapper struct {
	mapping map[string]string
	err     error
	calls   int
}

func (f *fakeMapper) FetchMapping(ctx context.Context) (map[string]string, error) {
	f.calls++
	return f.mapping, f.err
}

func sampleTables() Tables {
	return Tables{
		Constituents: []ConstituentRecord{
			{ID: "1", Index: 0, Fields: map[string]string{
				ColID:            "1",
				ColFirstName:     "Jane",
				ColLastName:      "Roe",
				ColSalutation:    "dr",
				ColTags:          "Donor, VIP, Donor",
				ColPrimaryEmail:  "",
				ColEntryDate:     "2021-01-01",
				ColJobTitle:      "Teacher",
				ColMaritalStatus: "Unknown",
			}},
			{ID: "1", Index: 1, Fields: map[string]string{
				ColID:        "1",
				ColFirstName: "Janet",
			}},
			{ID: "2", Index: 2, Fields: map[string]string{
				ColID:          "2",
				ColCompanyName: "Acme Inc",
				ColFirstName:   "Bob",
				ColTags:        "VIP",
			}},
		},
		Emails: []EmailEntry{
			{ID: "1", Email: "x@y.com"},
			{ID: "1", Email: "x@y.com"},
			{ID: "1", Email: "z@y.com"},
		},
		Donations: []DonationTransaction{
			{ID: "1", Status: "Paid", Amount: "100", Date: "2021-05-05", Index: 0},
			{ID: "1", Status: "Paid", Amount: "50.5", Date: "2020-01-01", Index: 1},
			{ID: "2", Status: "Pending", Amount: "999", Date: "2021-01-01", Index: 2},
		},
	}
}

func TestPipelineRun(t *testing.T) {
	mapper := &fakeMapper{mapping: map[string]string{"VIP": "Major Donor"}}
	p := NewPipeline(mapper)

	result, err := p.Run(context.Background(), sampleTables())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if mapper.calls != 1 {
		t.Errorf("mapping fetched %d times, want exactly 1 per run", mapper.calls)
	}
	if len(result.Constituents) != 2 {
		t.Fatalf("got %d output rows, want 2", len(result.Constituents))
	}

	jane := result.Constituents[0]
	if jane.ID != "1" {
		t.Fatalf("first output row ID = %q, want 1 (first-seen order)", jane.ID)
	}
	if jane.Type != TypePerson {
		t.Errorf("type = %s, want Person", jane.Type)
	}
	if jane.FirstName != "Jane" {
		t.Errorf("first name = %q, want Jane (higher-completeness row wins)", jane.FirstName)
	}
	if jane.Email1 != "x@y.com" || jane.Email2 != "z@y.com" {
		t.Errorf("emails = (%q, %q)", jane.Email1, jane.Email2)
	}
	if jane.Title != "Dr." {
		t.Errorf("title = %q, want Dr.", jane.Title)
	}
	if jane.Tags != "Donor, Major Donor" {
		t.Errorf("tags = %q, want sorted mapped set", jane.Tags)
	}
	if jane.Background != "Job Title: Teacher" {
		t.Errorf("background = %q", jane.Background)
	}
	if jane.CreatedAt != "2021-01-01T00:00:00" {
		t.Errorf("created at = %q", jane.CreatedAt)
	}
	if jane.LifetimeAmount != "$150.50" {
		t.Errorf("lifetime = %q, want $150.50", jane.LifetimeAmount)
	}
	if jane.LatestAmount != "$100.00" || jane.LatestDate != "2021-05-05T00:00:00" {
		t.Errorf("latest = (%q, %q)", jane.LatestAmount, jane.LatestDate)
	}

	acme := result.Constituents[1]
	if acme.Type != TypeCompany {
		t.Errorf("type = %s, want Company", acme.Type)
	}
	if acme.CompanyName != "Acme Inc" || acme.FirstName != "" || acme.LastName != "" {
		t.Errorf("company row = %+v, person names must blank", acme)
	}
	if acme.LifetimeAmount != "" || acme.LatestAmount != "" || acme.LatestDate != "" {
		t.Errorf("no paid donations: amounts must be blank, got %+v", acme)
	}

	wantCounts := []TagCountRow{
		{Tag: "Donor", Count: 1},
		{Tag: "Major Donor", Count: 2},
	}
	if !reflect.DeepEqual(result.TagCounts, wantCounts) {
		t.Errorf("tag counts = %v, want %v", result.TagCounts, wantCounts)
	}
}

func TestPipelineMappingFailureDegradesToIdentity(t *testing.T) {
	mapper := &fakeMapper{err: errors.New("service unavailable")}
	p := NewPipeline(mapper)

	result, err := p.Run(context.Background(), sampleTables())
	if err != nil {
		t.Fatalf("Run must absorb mapping failures, got %v", err)
	}

	if got := result.Constituents[0].Tags; got != "Donor, VIP" {
		t.Errorf("tags = %q, want identity-mapped %q", got, "Donor, VIP")
	}
}

func TestPipelineNilMapperPassesTagsThrough(t *testing.T) {
	p := NewPipeline(nil)
	result, err := p.Run(context.Background(), sampleTables())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := result.Constituents[0].Tags; got != "Donor, VIP" {
		t.Errorf("tags = %q, want %q", got, "Donor, VIP")
	}
}

func TestPipelineMissingIdentifierIsFatal(t *testing.T) {
	tables := sampleTables()
	tables.Constituents = append(tables.Constituents, ConstituentRecord{ID: "  ", Index: 3, Fields: map[string]string{}})

	p := NewPipeline(nil)
	if _, err := p.Run(context.Background(), tables); err == nil {
		t.Fatal("a constituent row without an identifier must fail the run")
	}

	tables = sampleTables()
	tables.Donations = append(tables.Donations, DonationTransaction{Status: "Paid", Amount: "1", Index: 3})
	if _, err := p.Run(context.Background(), tables); err == nil {
		t.Fatal("a donation row without an identifier must fail the run")
	}
}
