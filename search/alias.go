package search

import (
	"regexp"
	"sort"
	"strings"

	"github.com/bloop16/homestate/core"
)

var tokenSplitter = regexp.MustCompile(`[\s_.\-]+`)

// aliasTable maps short human-friendly names to full datapoint IDs. It is
// derived from the last path segment of each readable ID: the segment
// itself, its lowercase form, and an underscores-to-spaces variant all
// point at the full ID.
type aliasTable struct {
	byAlias map[string]string
	ids     []string // readable IDs, sorted, for deterministic scans
}

func buildAliasTable(readable []string) *aliasTable {
	t := &aliasTable{
		byAlias: make(map[string]string, len(readable)*3),
		ids:     readable,
	}
	sort.Strings(t.ids)

	for _, id := range t.ids {
		name := core.DeviceName(id)
		if name == "" {
			continue
		}
		for _, alias := range aliasVariants(name) {
			// First registration wins; a short name shared by two
			// devices stays bound to the lexicographically smaller ID.
			if _, taken := t.byAlias[alias]; !taken {
				t.byAlias[alias] = id
			}
		}
	}
	return t
}

func aliasVariants(name string) []string {
	spaced := strings.ReplaceAll(name, "_", " ")
	return []string{
		name,
		strings.ToLower(name),
		spaced,
		strings.ToLower(spaced),
	}
}

// lookup returns the full ID bound to the exact alias, trying the query
// as given and lowercased.
func (t *aliasTable) lookup(query string) (string, bool) {
	if id, ok := t.byAlias[query]; ok {
		return id, true
	}
	if id, ok := t.byAlias[strings.ToLower(query)]; ok {
		return id, true
	}
	return "", false
}

// substringMatch scans alias keys for case-insensitive containment in
// either direction.
func (t *aliasTable) substringMatch(query string) (alias, id string, ok bool) {
	q := strings.ToLower(query)
	if q == "" {
		return "", "", false
	}

	// Map iteration order is random; collect and sort for stable results.
	keys := make([]string, 0, len(t.byAlias))
	for k := range t.byAlias {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		lk := strings.ToLower(k)
		if strings.Contains(lk, q) || strings.Contains(q, lk) {
			return k, t.byAlias[k], true
		}
	}
	return "", "", false
}

// wordOverlapMatch tokenizes the query and returns the first full ID that
// contains every remaining token as a substring.
func (t *aliasTable) wordOverlapMatch(query string) (string, bool) {
	tokens := tokenize(query)
	if len(tokens) == 0 {
		return "", false
	}

	for _, id := range t.ids {
		lid := strings.ToLower(id)
		matched := true
		for _, tok := range tokens {
			if !strings.Contains(lid, tok) {
				matched = false
				break
			}
		}
		if matched {
			return id, true
		}
	}
	return "", false
}

// tokenize splits on whitespace, underscores, dots, and hyphens, and
// drops tokens too short to be discriminating.
func tokenize(query string) []string {
	parts := tokenSplitter.Split(strings.ToLower(query), -1)
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if len(p) > 2 {
			tokens = append(tokens, p)
		}
	}
	return tokens
}
