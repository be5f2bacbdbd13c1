package reconcile

import (
	"sort"
	"strings"
)

// ParseTags splits a free-text tag cell on commas into distinct trimmed tag
// names, first-seen order. Empty parts are dropped.
func ParseTags(raw string) []string {
	var tags []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(raw, ",") {
		tag := CleanString(part)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return tags
}

// ApplyMapping remaps each tag through the external name mapping, leaving
// unmapped tags as-is. The result is re-deduplicated because two distinct
// originals may collapse onto the same mapped name.
func ApplyMapping(tags []string, mapping map[string]string) []string {
	var mapped []string
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		out := tag
		if m, ok := mapping[tag]; ok {
			out = m
		}
		out = CleanString(out)
		if out == "" || seen[out] {
			continue
		}
		seen[out] = true
		mapped = append(mapped, out)
	}
	return mapped
}

// CountTags counts, for every mapped tag, how many distinct identifiers
// carry it. Rows come back sorted by tag name ascending.
func CountTags(tagsByID map[string][]string) []TagCountRow {
	counts := make(map[string]int)
	for _, tags := range tagsByID {
		for _, tag := range tags {
			if tag == "" {
				continue
			}
			counts[tag]++
		}
	}

	rows := make([]TagCountRow, 0, len(counts))
	for tag, n := range counts {
		rows = append(rows, TagCountRow{Tag: tag, Count: n})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Tag < rows[j].Tag })
	return rows
}
