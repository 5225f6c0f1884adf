package knowledge

// NormalizeTag resolves input to its canonical tag by exact match against
// canonical names and aliases, first match in traversal order. Unknown input
// is returned unchanged.
//
// Empty input resolves to the first canonical tag in traversal order. Callers
// relied on this before the index existed; it is kept as-is pending a product
// decision on whether empty tags should be dropped instead.
func (c *Catalog) NormalizeTag(input string) string {
	if input == "" {
		if c.first != "" {
			return c.first
		}
		return input
	}
	if canonical, ok := c.index[input]; ok {
		return canonical
	}
	return input
}

// NormalizeTags normalizes each input and drops repeats, keeping first-occurrence order.
func (c *Catalog) NormalizeTags(inputs []string) []string {
	out := make([]string, 0, len(inputs))
	seen := make(map[string]struct{}, len(inputs))
	for _, in := range inputs {
		tag := c.NormalizeTag(in)
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

// IsStandardTag reports whether tag is a canonical name or alias in any subject.
func (c *Catalog) IsStandardTag(tag string) bool {
	_, ok := c.index[tag]
	return ok
}

func NormalizeTag(input string) string { return Default().NormalizeTag(input) }

func NormalizeTags(inputs []string) []string { return Default().NormalizeTags(inputs) }
