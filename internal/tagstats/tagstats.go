package tagstats

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/wrongnotebook/notebook-backend/internal/pkg/pointers"
)

// MaxSuggestions caps Suggest results.
const MaxSuggestions = 20

type TagStat struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

type Result struct {
	Stats      []TagStat `json:"stats"`
	Total      int       `json:"total"`
	UniqueTags int       `json:"uniqueTags"`
}

// ParseKnowledgePoints reads a stored knowledge_points value. Null, empty and
// malformed values yield no tags; non-string array elements are skipped.
func ParseKnowledgePoints(raw *string) []string {
	s := strings.TrimSpace(pointers.StringValue(raw))
	if s == "" {
		return nil
	}
	var elems []interface{}
	if err := json.Unmarshal([]byte(s), &elems); err != nil {
		return nil
	}
	out := make([]string, 0, len(elems))
	for _, el := range elems {
		if tag, ok := el.(string); ok {
			out = append(out, tag)
		}
	}
	return out
}

// ComputeTagStats counts tag usage across items. Total is the number of
// items examined, parseable or not. Stats are ordered by count descending
// with ties kept in first-seen order.
func ComputeTagStats(fields []*string) Result {
	counts := map[string]int{}
	order := []string{}
	for _, f := range fields {
		for _, tag := range ParseKnowledgePoints(f) {
			if _, seen := counts[tag]; !seen {
				order = append(order, tag)
			}
			counts[tag]++
		}
	}

	stats := make([]TagStat, 0, len(order))
	for _, tag := range order {
		stats = append(stats, TagStat{Tag: tag, Count: counts[tag]})
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Count > stats[j].Count
	})

	return Result{
		Stats:      stats,
		Total:      len(fields),
		UniqueTags: len(order),
	}
}

// UsedTags lists the distinct tags across items in first-seen order.
func UsedTags(fields []*string) []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, f := range fields {
		for _, tag := range ParseKnowledgePoints(f) {
			if _, dup := seen[tag]; dup {
				continue
			}
			seen[tag] = struct{}{}
			out = append(out, tag)
		}
	}
	return out
}

// Suggest merges pools in order, drops duplicates and tags in existing, keeps
// tags containing query (case-insensitive; empty matches all) and returns at
// most MaxSuggestions of them.
func Suggest(query string, existing []string, pools ...[]string) []string {
	needle := strings.ToLower(query)
	exclude := make(map[string]struct{}, len(existing))
	for _, e := range existing {
		exclude[e] = struct{}{}
	}

	seen := map[string]struct{}{}
	out := []string{}
	for _, pool := range pools {
		for _, tag := range pool {
			if _, dup := seen[tag]; dup {
				continue
			}
			seen[tag] = struct{}{}
			if _, skip := exclude[tag]; skip {
				continue
			}
			if needle != "" && !strings.Contains(strings.ToLower(tag), needle) {
				continue
			}
			out = append(out, tag)
			if len(out) == MaxSuggestions {
				return out
			}
		}
	}
	return out
}
