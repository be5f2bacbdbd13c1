package reconcile

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ignite/constituent-reconciler/internal/pkg/logger"
)

// TagMapper is the external tag mapping service contract. A failed fetch is
// an expected condition: the pipeline downgrades to an identity mapping and
// keeps going.
type TagMapper interface {
	FetchMapping(ctx context.Context) (map[string]string, error)
}

// Pipeline sequences the reconciliation stages over the three source tables.
type Pipeline struct {
	tagMapper TagMapper
}

// NewPipeline builds a pipeline. tagMapper may be nil, in which case tags
// pass through unmapped.
func NewPipeline(tagMapper TagMapper) *Pipeline {
	return &Pipeline{tagMapper: tagMapper}
}

// Run executes one full reconciliation over in-memory tables. It is
// synchronous and holds no state between invocations. The only external
// call is the single tag-mapping fetch; every other stage is a pure
// transform. The returned error covers structural problems only (a row
// missing its identifier); parse failures and mapping-service outages are
// absorbed per field or per run.
func (p *Pipeline) Run(ctx context.Context, tables Tables) (Result, error) {
	runID := uuid.NewString()
	started := time.Now()
	warnings := 0

	if err := checkIdentifiers(tables); err != nil {
		return Result{}, err
	}

	canonical := ResolveIdentities(tables.Constituents)
	emailsByID := EmailsByID(tables.Emails)
	rollups := AggregateDonations(tables.Donations)

	mapping := map[string]string{}
	if p.tagMapper != nil {
		fetched, err := p.tagMapper.FetchMapping(ctx)
		if err != nil {
			warnings++
			logger.Warn("tag mapping fetch failed, using identity mapping",
				"run_id", runID, "error", err.Error())
		} else {
			mapping = fetched
		}
	}

	tagsByID := make(map[string][]string, len(canonical))
	out := make([]OutputConstituent, 0, len(canonical))
	for _, rec := range canonical {
		mapped := ApplyMapping(ParseTags(rec.Field(ColTags)), mapping)
		tagsByID[rec.ID] = mapped
		out = append(out, assemble(rec, emailsByID[rec.ID], mapped, rollups))
	}

	result := Result{
		Constituents: out,
		TagCounts:    CountTags(tagsByID),
	}

	logger.Info("reconciliation run complete",
		"run_id", runID,
		"constituent_rows", len(tables.Constituents),
		"canonical", len(result.Constituents),
		"tag_rows", len(result.TagCounts),
		"warnings", warnings,
		"duration", time.Since(started).String(),
	)
	return result, nil
}

// checkIdentifiers rejects rows without the join key. Identity is the key
// for every downstream stage, so a blank identifier is fatal configuration
// rather than a skippable row.
func checkIdentifiers(tables Tables) error {
	for _, r := range tables.Constituents {
		if CleanString(r.ID) == "" {
			return fmt.Errorf("constituent row %d has no identifier", r.Index)
		}
	}
	for i, e := range tables.Emails {
		if CleanString(e.ID) == "" {
			return fmt.Errorf("email row %d has no identifier", i)
		}
	}
	for _, d := range tables.Donations {
		if CleanString(d.ID) == "" {
			return fmt.Errorf("donation row %d has no identifier", d.Index)
		}
	}
	return nil
}

func assemble(rec ConstituentRecord, discovered []string, mappedTags []string, rollups map[string]DonationRollup) OutputConstituent {
	emails := ResolveEmails(rec.Field(ColPrimaryEmail), discovered)

	entry, entryOK := ParseDate(rec.Field(ColEntryDate))

	out := OutputConstituent{
		ID:        rec.ID,
		Type:      ClassifyType(rec.Field(ColCompanyName)),
		CreatedAt: FormatISO(entry, entryOK),
		Email1:    emails.Email1,
		Email2:    emails.Email2,
		Title:     NormalizeTitle(rec.Field(ColSalutation), rec.Field(ColTitle)),
		Tags:      joinSorted(mappedTags),
		Background: BuildBackground(
			rec.Field(ColJobTitle),
			rec.Field(ColMaritalStatus),
		),
	}

	// People keep their name, companies keep theirs; the other side blanks.
	if out.Type == TypeCompany {
		out.CompanyName = rec.Field(ColCompanyName)
	} else {
		out.FirstName = rec.Field(ColFirstName)
		out.LastName = rec.Field(ColLastName)
	}

	if roll, ok := rollups[rec.ID]; ok {
		out.LifetimeAmount = FormatCurrency(roll.Total, true)
		if roll.Latest != nil {
			out.LatestAmount = FormatCurrency(roll.Latest.Amount, roll.Latest.HasAmount)
			out.LatestDate = FormatISO(roll.Latest.Date, true)
		}
	}

	return out
}

// joinSorted renders a mapped tag set as the output cell: alphabetical,
// comma-joined. First-seen order only matters while deduplicating.
func joinSorted(tags []string) string {
	sorted := make([]string, len(tags))
	copy(sorted, tags)
	sort.Strings(sorted)
	return strings.Join(sorted, ", ")
}
