package store

import (
	"errors"
	"testing"

	"github.com/avaldezm/preventa-core/internal/apperr"
)

func TestList_EmptyQueryReturnsRoute(t *testing.T) {
	svc := NewService()
	all := svc.List("")
	if len(all) != 4 {
		t.Fatalf("got %d stores, want 4", len(all))
	}
	if all[0].ID != "CVS-001" {
		t.Fatalf("first store = %s, want CVS-001", all[0].ID)
	}
}

func TestList_Search(t *testing.T) {
	svc := NewService()
	cases := []struct {
		query string
		want  []string
	}{
		{"brickell", []string{"CVS-001"}},
		{"CORAL", []string{"CVS-003"}},
		{"cvs-002", []string{"CVS-002"}},
		{"Ave", []string{"CVS-001", "CVS-004"}},
		{"walgreens", nil},
	}
	for _, tc := range cases {
		got := svc.List(tc.query)
		if len(got) != len(tc.want) {
			t.Errorf("List(%q) returned %d stores, want %d", tc.query, len(got), len(tc.want))
			continue
		}
		for i, st := range got {
			if st.ID != tc.want[i] {
				t.Errorf("List(%q)[%d] = %s, want %s", tc.query, i, st.ID, tc.want[i])
			}
		}
	}
}

func TestList_ReturnsCopy(t *testing.T) {
	svc := NewService()
	first := svc.List("")
	first[0].Name = "mutated"
	if svc.List("")[0].Name == "mutated" {
		t.Fatalf("caller mutation leaked into the catalog")
	}
}

func TestGet(t *testing.T) {
	svc := NewService()
	st, err := svc.Get("CVS-003")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if st.Name != "CVS Pharmacy - Coral Gables" {
		t.Fatalf("unexpected store %+v", st)
	}
	if got := st.FullAddress(); got != "9012 Miracle Mile, Coral Gables, FL 33134" {
		t.Fatalf("full address = %q", got)
	}

	if _, err := svc.Get("CVS-999"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("got %v, want not found", err)
	}
}
