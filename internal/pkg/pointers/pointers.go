package pointers

// String returns a pointer to v, for nullable text columns.
func String(v string) *string { return &v }

// StringValue dereferences p, treating nil as "".
func StringValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
