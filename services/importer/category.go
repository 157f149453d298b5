package importer

import (
	"regexp"
	"strings"
)

// hint text looks like "Provider: Circuit Protection -> Varistors, MOVs"
// or "Provider: Resistors" when the provider reports a single level
var categoryHintRegex = regexp.MustCompile(`Provider:\s*(.+)`)

// ParseCategoryHint extracts a category placement from free text shown
// by the catalog next to the category field. the format is not
// contractually guaranteed, so anything unparseable yields the zero
// CategoryPath, meaning "no category inferred".
func ParseCategoryHint(text string) CategoryPath {
	groups := categoryHintRegex.FindStringSubmatch(text)
	if groups == nil {
		return CategoryPath{}
	}

	segments := strings.Split(groups[1], "->")
	for i := range segments {
		segments[i] = strings.TrimSpace(segments[i])
	}

	if len(segments) == 1 {
		return CategoryPath{Leaf: segments[0]}
	}
	// levels between the first and last are dropped, only a two-level
	// path is reconstructed
	return CategoryPath{
		Parent: segments[0],
		Leaf:   segments[len(segments)-1],
	}
}
