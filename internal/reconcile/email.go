package reconcile

// ResolveEmails merges a constituent's declared primary email with the
// emails discovered in the secondary table. The declared primary leads the
// candidate list when it passes validation; invalid emails are dropped, not
// corrected. Discovered emails keep table order. Duplicates collapse to the
// first occurrence, so Email1 is the first distinct valid address and Email2
// the second. An empty Email1 forces an empty Email2.
func ResolveEmails(primary string, discovered []string) ResolvedEmails {
	var candidates []string
	if ValidEmail(primary) {
		candidates = append(candidates, NormalizeEmail(primary))
	}
	for _, e := range discovered {
		if ValidEmail(e) {
			candidates = append(candidates, NormalizeEmail(e))
		}
	}

	seen := make(map[string]bool, len(candidates))
	var distinct []string
	for _, e := range candidates {
		if seen[e] {
			continue
		}
		seen[e] = true
		distinct = append(distinct, e)
	}

	var res ResolvedEmails
	if len(distinct) > 0 {
		res.Email1 = distinct[0]
	}
	if len(distinct) > 1 {
		res.Email2 = distinct[1]
	}
	return res
}

// EmailsByID indexes the emails table by identifier, preserving table order
// within each identifier. Built once per run and passed into the pipeline.
func EmailsByID(entries []EmailEntry) map[string][]string {
	byID := make(map[string][]string)
	for _, e := range entries {
		byID[e.ID] = append(byID[e.ID], e.Email)
	}
	return byID
}
