package cmp

// MapEq checks a and b have the same key-value pairs.
func MapEq[K comparable, V comparable](a map[K]V, b map[K]V) bool {
	return MapEqWith(a, b, func(va, vb V) bool { return va == vb })
}

// MapEqWith checks a and b have the same keys, and values equal in the sense of pred.
func MapEqWith[K comparable, V any](a map[K]V, b map[K]V, pred func(a V, b V) bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k, va := range a {
		vb, ok := b[k]
		if !ok || !pred(va, vb) {
			return false
		}
	}
	return true
}
