package routing

import (
	"context"
	"testing"

	"trip-scheduler-service/internal/domain"
)

func TestSyntheticMatrix_SymmetricLookup(t *testing.T) {
	pois := []domain.CandidatePOI{
		{ID: "a"}, {ID: "b"}, {ID: "c"},
	}

	m, err := NewSyntheticMatrixProvider().Matrix(context.Background(), domain.ModeWalk, pois)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ab, ok := m.Lookup("a", "b")
	if !ok {
		t.Fatal("missing a-b pair")
	}
	ba, ok := m.Lookup("b", "a")
	if !ok {
		t.Fatal("missing b-a pair")
	}
	if ab != ba {
		t.Errorf("lookup not symmetric: %f vs %f", ab, ba)
	}
	if ab != 18.0 {
		t.Errorf("a-b eta = %f, want 18", ab)
	}
}

func TestSyntheticMatrix_ModeScaling(t *testing.T) {
	pois := []domain.CandidatePOI{{ID: "a"}, {ID: "b"}}

	walk, _ := NewSyntheticMatrixProvider().Matrix(context.Background(), domain.ModeWalk, pois)
	drive, _ := NewSyntheticMatrixProvider().Matrix(context.Background(), domain.ModeDrive, pois)

	w, _ := walk.Lookup("a", "b")
	d, _ := drive.Lookup("a", "b")
	if d >= w {
		t.Errorf("driving eta (%f) should be below walking eta (%f)", d, w)
	}
}
