package models

import "testing"

func TestReservationsLastWriteWins(t *testing.T) {
	r := NewReservations()
	r.Set("MovieA", "100")
	r.Set("MovieB", "200")
	r.Set("MovieA", "300")

	if r.Len() != 2 {
		t.Fatalf("Len: got %d, want 2", r.Len())
	}
	if got, _ := r.Get("MovieA"); got != "300" {
		t.Errorf("MovieA: got %q, want %q", got, "300")
	}
	keys := r.Keys()
	if keys[0] != "MovieA" || keys[1] != "MovieB" {
		t.Errorf("key order: got %v, want [MovieA MovieB]", keys)
	}
}

func TestReservationsIgnoresEmptyKey(t *testing.T) {
	r := NewReservations()
	r.Set("", "5")
	if r.Len() != 0 {
		t.Errorf("empty key should not be stored")
	}
	if _, ok := r.Get(""); ok {
		t.Errorf("empty key should never match")
	}
}

func TestNilReservationsIsEmpty(t *testing.T) {
	var r *Reservations
	if r.Len() != 0 || len(r.Keys()) != 0 {
		t.Errorf("nil mapping should behave as empty")
	}
	if _, ok := r.Get("x"); ok {
		t.Errorf("nil mapping should not match")
	}
}
