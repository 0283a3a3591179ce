package schedule

import (
	"sort"
	"time"

	"confview/internal/model"
)

// TagFilter is one applied filter: a talk must carry the wrapped tag
// to stay visible. Filters are collected into an ordered sequence on
// the view-model and combined with AND semantics.
type TagFilter struct {
	Tag string
}

// ByTag constructs a tag filter.
func ByTag(tag string) TagFilter {
	return TagFilter{Tag: tag}
}

// AddFilter appends a tag filter and normalizes the sequence: the
// accumulated filters are reduced to a set of tag strings and rebuilt
// sorted, so duplicates collapse and ordering is canonical. This is
// the accumulate+dedup policy; applying a tag that is already active
// is a no-op.
func AddFilter(filters []TagFilter, tag string) []TagFilter {
	return Normalize(append(filters, ByTag(tag)))
}

// Normalize deduplicates a filter sequence by underlying tag string
// and returns it rebuilt in sorted order.
func Normalize(filters []TagFilter) []TagFilter {
	if len(filters) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(filters))
	for _, f := range filters {
		set[f.Tag] = struct{}{}
	}
	tags := make([]string, 0, len(set))
	for tag := range set {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	out := make([]TagFilter, 0, len(tags))
	for _, tag := range tags {
		out = append(out, ByTag(tag))
	}
	return out
}

// FilterTags returns the deduplicated, lexicographically sorted tag
// strings of a filter sequence. Used by the renderer for the chip row.
func FilterTags(filters []TagFilter) []string {
	normalized := Normalize(filters)
	tags := make([]string, 0, len(normalized))
	for _, f := range normalized {
		tags = append(tags, f.Tag)
	}
	return tags
}

// Visible computes the subset of talks that pass both the day
// predicate and the tag predicate. It is pure, preserves input order,
// and never adds talks.
//
//   - Day predicate: the talk's start instant, viewed in loc, must
//     fall on the selected day-of-month. Talks without a start instant
//     report sentinel day 0 and are excluded under any real selection.
//   - Tag predicate: with F the set of active filter tags, the talk
//     must carry every tag in F (intersection cardinality equals |F|).
//     An empty F passes everything.
func Visible(talks []model.Talk, day int, loc *time.Location, filters []TagFilter) []model.Talk {
	active := make(map[string]struct{}, len(filters))
	for _, f := range filters {
		active[f.Tag] = struct{}{}
	}

	out := make([]model.Talk, 0, len(talks))
	for _, talk := range talks {
		if talk.Day(loc) != day {
			continue
		}
		if !carriesAll(talk.Tags, active) {
			continue
		}
		out = append(out, talk)
	}
	return out
}

// carriesAll reports whether the talk's tag set covers every active
// filter tag.
func carriesAll(tags []string, active map[string]struct{}) bool {
	if len(active) == 0 {
		return true
	}
	carried := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		carried[tag] = struct{}{}
	}
	matched := 0
	for tag := range active {
		if _, ok := carried[tag]; ok {
			matched++
		}
	}
	return matched == len(active)
}

// Days returns the sorted distinct real conference days (day-of-month
// in loc) present in the talk list. Talks without a start instant are
// ignored; the sentinel day never appears in the selector.
func Days(talks []model.Talk, loc *time.Location) []int {
	seen := make(map[int]struct{})
	for _, talk := range talks {
		day := talk.Day(loc)
		if day == 0 {
			continue
		}
		seen[day] = struct{}{}
	}
	days := make([]int, 0, len(seen))
	for day := range seen {
		days = append(days, day)
	}
	sort.Ints(days)
	return days
}
