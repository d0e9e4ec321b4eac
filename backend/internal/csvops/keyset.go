package csvops

// KeySet is the set of distinct non-empty normalized keys of one dataset.
type KeySet map[string]struct{}

// NewKeySet builds a set from normalized keys, skipping empty ones.
func NewKeySet(keys []string) KeySet {
	set := make(KeySet, len(keys))
	for _, k := range keys {
		if k == "" {
			continue
		}
		set[k] = struct{}{}
	}
	return set
}

// Has reports membership. The empty key is never a member.
func (s KeySet) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// Minus returns the keys of s that are not in other.
func (s KeySet) Minus(other KeySet) KeySet {
	out := make(KeySet)
	for k := range s {
		if !other.Has(k) {
			out[k] = struct{}{}
		}
	}
	return out
}
