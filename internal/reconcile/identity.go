package reconcile

import (
	"sort"
	"time"
)

// ResolveIdentities deduplicates raw constituent rows down to one canonical
// row per identifier. Within a group the winner is the row with the highest
// completeness score; ties go to the most recent parseable entry date
// (unparseable sorts as earliest), then to the earliest input row so repeat
// runs over the same file always pick the same winner.
//
// Output order follows the first appearance of each identifier in the input.
func ResolveIdentities(rows []ConstituentRecord) []ConstituentRecord {
	groups := make(map[string][]ConstituentRecord)
	var order []string
	for _, r := range rows {
		if _, seen := groups[r.ID]; !seen {
			order = append(order, r.ID)
		}
		groups[r.ID] = append(groups[r.ID], r)
	}

	canonical := make([]ConstituentRecord, 0, len(order))
	for _, id := range order {
		group := groups[id]
		sort.SliceStable(group, func(i, j int) bool {
			si, sj := CompletenessScore(group[i].Fields), CompletenessScore(group[j].Fields)
			if si != sj {
				return si > sj
			}
			di := entryDate(group[i])
			dj := entryDate(group[j])
			if !di.Equal(dj) {
				return di.After(dj)
			}
			return group[i].Index < group[j].Index
		})
		canonical = append(canonical, group[0])
	}
	return canonical
}

func entryDate(r ConstituentRecord) time.Time {
	t, ok := ParseDate(r.Field(ColEntryDate))
	if !ok {
		return time.Time{}
	}
	return t
}
