package services

import (
	"errors"
	"reflect"
	"testing"

	domainerrors "arcana/contexts/catalog/artifact-catalog/domain/errors"
)

func TestAssignThenReassignMovesArtifact(t *testing.T) {
	registry := NewOwnershipRegistry()
	registry.Assign("a", 1)
	registry.Assign("a", 2)

	if owner, _ := registry.OwnerOf("a"); owner != 2 {
		t.Fatalf("expected owner 2, got %d", owner)
	}
	if got := registry.ArtifactsOf(1); len(got) != 0 {
		t.Fatalf("expected wizard 1 to hold nothing, got %v", got)
	}
	if got := registry.ArtifactsOf(2); !reflect.DeepEqual(got, []string{"a"}) {
		t.Fatalf("expected wizard 2 to hold [a] once, got %v", got)
	}
	if err := registry.Validate(); err != nil {
		t.Fatalf("invariant broken: %v", err)
	}
}

func TestReassignFromLoadedOwner(t *testing.T) {
	registry := NewOwnershipRegistry()
	registry.Track("a", 1)
	registry.TrackWizard(2)

	registry.Assign("a", 2)

	if got := registry.ArtifactsOf(1); len(got) != 0 {
		t.Fatalf("expected w1 empty, got %v", got)
	}
	if got := registry.ArtifactsOf(2); !reflect.DeepEqual(got, []string{"a"}) {
		t.Fatalf("expected w2 = [a], got %v", got)
	}
	if owner, ok := registry.OwnerOf("a"); !ok || owner != 2 {
		t.Fatalf("expected a owned by 2, got %d (%v)", owner, ok)
	}
}

func TestAssignIsIdempotent(t *testing.T) {
	once := NewOwnershipRegistry()
	once.Assign("a", 7)
	once.Assign("b", 7)

	twice := NewOwnershipRegistry()
	twice.Assign("a", 7)
	twice.Assign("a", 7)
	twice.Assign("b", 7)

	if !reflect.DeepEqual(once.Owners(), twice.Owners()) {
		t.Fatalf("owners differ: %v vs %v", once.Owners(), twice.Owners())
	}
	if !reflect.DeepEqual(once.ArtifactsOf(7), twice.ArtifactsOf(7)) {
		t.Fatalf("holdings differ: %v vs %v", once.ArtifactsOf(7), twice.ArtifactsOf(7))
	}
}

func TestAssignKeepsAssignmentOrder(t *testing.T) {
	registry := NewOwnershipRegistry()
	for _, id := range []string{"c", "a", "b"} {
		registry.Assign(id, 1)
	}
	registry.Assign("a", 2)
	registry.Assign("a", 1)

	if got := registry.ArtifactsOf(1); !reflect.DeepEqual(got, []string{"c", "b", "a"}) {
		t.Fatalf("unexpected order %v", got)
	}
}

func TestDetachAllClearsEveryBackReference(t *testing.T) {
	registry := NewOwnershipRegistry()
	registry.Assign("a1", 3)
	registry.Assign("a2", 3)
	registry.Assign("other", 4)

	released := registry.DetachAll(3)

	if !reflect.DeepEqual(released, []string{"a1", "a2"}) {
		t.Fatalf("unexpected released ids %v", released)
	}
	for _, id := range []string{"a1", "a2"} {
		if _, ok := registry.OwnerOf(id); ok {
			t.Fatalf("expected %s to be unowned", id)
		}
	}
	if registry.CountOf(3) != 0 {
		t.Fatalf("expected wizard 3 to hold nothing, got %v", registry.ArtifactsOf(3))
	}
	if owner, _ := registry.OwnerOf("other"); owner != 4 {
		t.Fatalf("unrelated artifact moved to %d", owner)
	}
	if err := registry.Validate(); err != nil {
		t.Fatalf("invariant broken: %v", err)
	}
	if err := registry.Forget(3); err != nil {
		t.Fatalf("forget after detach all: %v", err)
	}
}

func TestDetachRemovesFromOwner(t *testing.T) {
	registry := NewOwnershipRegistry()
	registry.Assign("a", 1)
	registry.Assign("b", 1)

	previous, ok := registry.Detach("a")
	if !ok || previous != 1 {
		t.Fatalf("expected previous owner 1, got %d (%v)", previous, ok)
	}
	if got := registry.ArtifactsOf(1); !reflect.DeepEqual(got, []string{"b"}) {
		t.Fatalf("expected [b], got %v", got)
	}
	if _, ok := registry.Detach("a"); ok {
		t.Fatal("second detach should report no owner")
	}
}

func TestForgetRefusesWizardWithArtifacts(t *testing.T) {
	registry := NewOwnershipRegistry()
	registry.Assign("a", 1)

	if err := registry.Forget(1); !errors.Is(err, domainerrors.ErrOwnershipInvariant) {
		t.Fatalf("expected invariant error, got %v", err)
	}
}

func TestArtifactsOfReturnsCopy(t *testing.T) {
	registry := NewOwnershipRegistry()
	registry.Assign("a", 1)

	held := registry.ArtifactsOf(1)
	held[0] = "mutated"

	if got := registry.ArtifactsOf(1); got[0] != "a" {
		t.Fatalf("registry state leaked through ArtifactsOf: %v", got)
	}
}

func TestValidateDetectsBrokenGraph(t *testing.T) {
	tests := []struct {
		name     string
		owners   map[string]int64
		holdings map[int64][]string
	}{
		{
			name:     "dangling back reference",
			owners:   map[string]int64{"a": 1},
			holdings: map[int64][]string{1: nil},
		},
		{
			name:     "held by wrong wizard",
			owners:   map[string]int64{"a": 1},
			holdings: map[int64][]string{2: {"a"}},
		},
		{
			name:     "held twice",
			owners:   map[string]int64{"a": 1},
			holdings: map[int64][]string{1: {"a", "a"}},
		},
		{
			name:     "held without owner",
			owners:   map[string]int64{},
			holdings: map[int64][]string{1: {"a"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := &OwnershipRegistry{owners: tt.owners, holdings: tt.holdings}
			if err := registry.Validate(); !errors.Is(err, domainerrors.ErrOwnershipInvariant) {
				t.Fatalf("expected invariant error, got %v", err)
			}
		})
	}
}
