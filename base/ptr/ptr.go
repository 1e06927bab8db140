package ptr

// To returns a pointer to a copy of value
func To[T any](value T) *T {
	return &value
}

// ValueOr dereferences p, falling back to def when p is nil
func ValueOr[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
