package services

import (
	"fmt"
	"slices"
	"sort"

	"arcana/contexts/catalog/artifact-catalog/domain/entities"
	domainerrors "arcana/contexts/catalog/artifact-catalog/domain/errors"
)

// OwnershipRegistry owns both directions of the wizard/artifact relation:
// owners maps an artifact to its wizard, holdings maps a wizard to the
// artifacts it holds in assignment order. Every mutation updates both maps
// so that owners[a] == w exactly when holdings[w] contains a.
//
// The registry does no locking. Callers serialize access, either under the
// store mutex or inside one database transaction.
type OwnershipRegistry struct {
	owners   map[string]int64
	holdings map[int64][]string
}

func NewOwnershipRegistry() *OwnershipRegistry {
	return &OwnershipRegistry{
		owners:   make(map[string]int64),
		holdings: make(map[int64][]string),
	}
}

// TrackWizard registers a wizard with whatever it already holds left as is.
func (r *OwnershipRegistry) TrackWizard(wizardID int64) {
	if _, ok := r.holdings[wizardID]; !ok {
		r.holdings[wizardID] = nil
	}
}

// Track loads one persisted ownership fact. Unowned artifacts need not be
// tracked. Loading the same fact twice is a no-op.
func (r *OwnershipRegistry) Track(artifactID string, ownerID int64) {
	if ownerID == entities.NoOwner {
		return
	}
	r.Assign(artifactID, ownerID)
}

// Assign transfers artifactID to wizardID. The artifact leaves its previous
// owner's collection before it joins the new one. Assigning to the current
// owner changes nothing.
func (r *OwnershipRegistry) Assign(artifactID string, wizardID int64) {
	if current, ok := r.owners[artifactID]; ok {
		if current == wizardID {
			return
		}
		r.removeHolding(current, artifactID)
	}
	r.holdings[wizardID] = append(r.holdings[wizardID], artifactID)
	r.owners[artifactID] = wizardID
}

// Detach clears the owner of artifactID and returns who held it.
func (r *OwnershipRegistry) Detach(artifactID string) (int64, bool) {
	current, ok := r.owners[artifactID]
	if !ok {
		return entities.NoOwner, false
	}
	r.removeHolding(current, artifactID)
	delete(r.owners, artifactID)
	return current, true
}

// DetachAll releases every artifact held by wizardID and returns their ids in
// assignment order. The wizard stays tracked with an empty collection.
func (r *OwnershipRegistry) DetachAll(wizardID int64) []string {
	held := r.holdings[wizardID]
	for _, artifactID := range held {
		delete(r.owners, artifactID)
	}
	if _, ok := r.holdings[wizardID]; ok {
		r.holdings[wizardID] = nil
	}
	return held
}

// Forget drops a wizard that holds nothing, used once it has been deleted.
func (r *OwnershipRegistry) Forget(wizardID int64) error {
	if len(r.holdings[wizardID]) > 0 {
		return fmt.Errorf("wizard %d still holds %d artifacts: %w",
			wizardID, len(r.holdings[wizardID]), domainerrors.ErrOwnershipInvariant)
	}
	delete(r.holdings, wizardID)
	return nil
}

func (r *OwnershipRegistry) OwnerOf(artifactID string) (int64, bool) {
	wizardID, ok := r.owners[artifactID]
	return wizardID, ok
}

// ArtifactsOf returns a copy of the wizard's collection.
func (r *OwnershipRegistry) ArtifactsOf(wizardID int64) []string {
	return append([]string{}, r.holdings[wizardID]...)
}

func (r *OwnershipRegistry) CountOf(wizardID int64) int {
	return len(r.holdings[wizardID])
}

// Owners returns a copy of the artifact to owner map.
func (r *OwnershipRegistry) Owners() map[string]int64 {
	out := make(map[string]int64, len(r.owners))
	for artifactID, wizardID := range r.owners {
		out[artifactID] = wizardID
	}
	return out
}

// Validate checks the bidirectional invariant in both directions.
func (r *OwnershipRegistry) Validate() error {
	counted := 0
	for wizardID, held := range r.holdings {
		seen := make(map[string]struct{}, len(held))
		for _, artifactID := range held {
			if _, dup := seen[artifactID]; dup {
				return fmt.Errorf("wizard %d holds artifact %s twice: %w",
					wizardID, artifactID, domainerrors.ErrOwnershipInvariant)
			}
			seen[artifactID] = struct{}{}
			if owner, ok := r.owners[artifactID]; !ok || owner != wizardID {
				return fmt.Errorf("wizard %d holds artifact %s owned by %d: %w",
					wizardID, artifactID, owner, domainerrors.ErrOwnershipInvariant)
			}
		}
		counted += len(held)
	}
	if counted != len(r.owners) {
		for _, artifactID := range sortedKeys(r.owners) {
			wizardID := r.owners[artifactID]
			if !slices.Contains(r.holdings[wizardID], artifactID) {
				return fmt.Errorf("artifact %s points at wizard %d which does not hold it: %w",
					artifactID, wizardID, domainerrors.ErrOwnershipInvariant)
			}
		}
	}
	return nil
}

func (r *OwnershipRegistry) removeHolding(wizardID int64, artifactID string) {
	held := r.holdings[wizardID]
	index := slices.Index(held, artifactID)
	if index < 0 {
		return
	}
	r.holdings[wizardID] = slices.Delete(slices.Clone(held), index, index+1)
}

func sortedKeys(m map[string]int64) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
