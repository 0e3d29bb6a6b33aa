package models

// Reservations maps a normalized title to its reserved-ticket count.
// Keys keep first-insertion order so scans over them are deterministic;
// setting an existing key replaces the count in place.
type Reservations struct {
	keys   []string
	counts map[string]string
}

// NewReservations creates an empty mapping.
func NewReservations() *Reservations {
	return &Reservations{counts: make(map[string]string)}
}

// Set stores count under key. Empty keys are ignored because they never match.
func (r *Reservations) Set(key, count string) {
	if key == "" {
		return
	}
	if _, exists := r.counts[key]; !exists {
		r.keys = append(r.keys, key)
	}
	r.counts[key] = count
}

// Get returns the count stored under key.
func (r *Reservations) Get(key string) (string, bool) {
	if r == nil || key == "" {
		return "", false
	}
	count, ok := r.counts[key]
	return count, ok
}

// Keys returns the stored keys in insertion order.
func (r *Reservations) Keys() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Len reports the number of distinct keys.
func (r *Reservations) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}
