package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"arcana/contexts/catalog/artifact-catalog/domain/entities"
	domainerrors "arcana/contexts/catalog/artifact-catalog/domain/errors"
	"arcana/contexts/catalog/artifact-catalog/domain/services"
	"arcana/contexts/catalog/artifact-catalog/ports"
)

// Store keeps the whole catalog in process. One registry spans every wizard
// and artifact, and the store mutex is held for writing across each
// ownership change, so readers never observe a half-applied transfer.
type Store struct {
	mu sync.RWMutex

	artifacts map[string]entities.Artifact
	wizards   map[int64]entities.Wizard
	ownership *services.OwnershipRegistry

	nextWizardID int64

	outbox      map[string]ports.OutboxMessage
	outboxOrder []string
	outboxSent  map[string]time.Time

	sequence uint64
	logger   *slog.Logger
}

// NewStore loads seed data. Artifact OwnerID values are the source of truth
// for ownership; seeded wizard ArtifactIDs are ignored and rebuilt.
func NewStore(artifacts []entities.Artifact, wizards []entities.Wizard, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	store := &Store{
		artifacts:    make(map[string]entities.Artifact, len(artifacts)),
		wizards:      make(map[int64]entities.Wizard, len(wizards)),
		ownership:    services.NewOwnershipRegistry(),
		nextWizardID: 1,
		outbox:       make(map[string]ports.OutboxMessage),
		outboxSent:   make(map[string]time.Time),
		logger:       logger,
	}
	for _, wizard := range wizards {
		wizard.ArtifactIDs = nil
		store.wizards[wizard.WizardID] = wizard
		store.ownership.TrackWizard(wizard.WizardID)
		if wizard.WizardID >= store.nextWizardID {
			store.nextWizardID = wizard.WizardID + 1
		}
	}

	seeded := append([]entities.Artifact(nil), artifacts...)
	sortArtifacts(seeded)
	for _, artifact := range seeded {
		if _, ok := store.wizards[artifact.OwnerID]; !ok {
			artifact.OwnerID = entities.NoOwner
		}
		store.ownership.Track(artifact.ArtifactID, artifact.OwnerID)
		artifact.OwnerID = entities.NoOwner
		store.artifacts[artifact.ArtifactID] = artifact
	}
	return store
}

func (s *Store) ListArtifacts(_ context.Context) ([]entities.Artifact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Artifact, 0, len(s.artifacts))
	for _, artifact := range s.artifacts {
		items = append(items, s.projectArtifact(artifact))
	}
	sortArtifacts(items)
	return items, nil
}

func (s *Store) GetArtifact(_ context.Context, artifactID string) (entities.Artifact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	artifact, ok := s.artifacts[strings.TrimSpace(artifactID)]
	if !ok {
		return entities.Artifact{}, domainerrors.ErrArtifactNotFound
	}
	return s.projectArtifact(artifact), nil
}

func (s *Store) CreateArtifact(_ context.Context, artifact entities.Artifact) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.artifacts[artifact.ArtifactID]; exists {
		return domainerrors.ErrRepositoryInvariantBroke
	}
	artifact.OwnerID = entities.NoOwner
	s.artifacts[artifact.ArtifactID] = artifact
	return nil
}

// UpdateArtifact stores the mutable attributes only. Ownership is changed
// through AssignArtifact and ReleaseArtifact.
func (s *Store) UpdateArtifact(_ context.Context, artifact entities.Artifact) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, exists := s.artifacts[artifact.ArtifactID]
	if !exists {
		return domainerrors.ErrArtifactNotFound
	}
	current.Name = artifact.Name
	current.Description = artifact.Description
	current.ImageURL = artifact.ImageURL
	current.UpdatedAt = artifact.UpdatedAt
	s.artifacts[artifact.ArtifactID] = current
	return nil
}

func (s *Store) DeleteArtifact(_ context.Context, artifactID string, event ports.OwnershipEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	artifactID = strings.TrimSpace(artifactID)
	if _, exists := s.artifacts[artifactID]; !exists {
		return domainerrors.ErrArtifactNotFound
	}
	previous, owned := s.ownership.OwnerOf(artifactID)
	var msg ports.OutboxMessage
	if owned {
		event.WizardID = previous
		event.ArtifactIDs = []string{artifactID}
		var err error
		if msg, err = s.prepareOutbox(event); err != nil {
			return err
		}
	}

	s.ownership.Detach(artifactID)
	delete(s.artifacts, artifactID)
	if owned {
		s.commitOutbox(msg)
	}
	return nil
}

func (s *Store) ListWizards(_ context.Context) ([]entities.Wizard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Wizard, 0, len(s.wizards))
	for _, wizard := range s.wizards {
		items = append(items, s.projectWizard(wizard))
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].WizardID < items[j].WizardID
	})
	return items, nil
}

func (s *Store) GetWizard(_ context.Context, wizardID int64) (entities.Wizard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wizard, ok := s.wizards[wizardID]
	if !ok {
		return entities.Wizard{}, domainerrors.ErrWizardNotFound
	}
	return s.projectWizard(wizard), nil
}

// GetWizards returns the wizards that exist among wizardIDs. Missing ids are
// absent from the result rather than an error.
func (s *Store) GetWizards(_ context.Context, wizardIDs []int64) (map[int64]entities.Wizard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[int64]entities.Wizard, len(wizardIDs))
	for _, wizardID := range wizardIDs {
		if wizard, ok := s.wizards[wizardID]; ok {
			out[wizardID] = s.projectWizard(wizard)
		}
	}
	return out, nil
}

func (s *Store) CreateWizard(_ context.Context, wizard entities.Wizard) (entities.Wizard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wizard.WizardID = s.nextWizardID
	s.nextWizardID++
	wizard.ArtifactIDs = nil
	s.wizards[wizard.WizardID] = wizard
	s.ownership.TrackWizard(wizard.WizardID)
	return s.projectWizard(wizard), nil
}

func (s *Store) UpdateWizard(_ context.Context, wizard entities.Wizard) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, exists := s.wizards[wizard.WizardID]
	if !exists {
		return domainerrors.ErrWizardNotFound
	}
	current.Name = wizard.Name
	current.UpdatedAt = wizard.UpdatedAt
	s.wizards[wizard.WizardID] = current
	return nil
}

func (s *Store) DeleteWizard(_ context.Context, wizardID int64, event ports.OwnershipEvent) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.wizards[wizardID]; !exists {
		return nil, domainerrors.ErrWizardNotFound
	}
	var msg ports.OutboxMessage
	holdings := s.ownership.ArtifactsOf(wizardID)
	if len(holdings) > 0 {
		event.WizardID = wizardID
		event.ArtifactIDs = holdings
		var err error
		if msg, err = s.prepareOutbox(event); err != nil {
			return nil, err
		}
	}

	detached := s.ownership.DetachAll(wizardID)
	if err := s.ownership.Forget(wizardID); err != nil {
		return nil, err
	}
	delete(s.wizards, wizardID)
	for _, artifactID := range detached {
		artifact := s.artifacts[artifactID]
		artifact.UpdatedAt = event.OccurredAt
		s.artifacts[artifactID] = artifact
	}

	s.logger.Info("wizard removed from memory store",
		"event", "memory_delete_wizard",
		"module", "catalog/artifact-catalog",
		"layer", "adapter",
		"wizard_id", wizardID,
		"detached_count", len(detached),
	)
	if len(holdings) > 0 {
		s.commitOutbox(msg)
	}
	return detached, nil
}

func (s *Store) AssignArtifact(_ context.Context, wizardID int64, artifactID string, event ports.OwnershipEvent) (entities.Artifact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	artifact, ok := s.artifacts[artifactID]
	if !ok {
		return entities.Artifact{}, domainerrors.ErrArtifactNotFound
	}
	if _, ok := s.wizards[wizardID]; !ok {
		return entities.Artifact{}, domainerrors.ErrWizardNotFound
	}

	previous, _ := s.ownership.OwnerOf(artifactID)
	if previous == wizardID {
		return s.projectArtifact(artifact), nil
	}
	event.WizardID = wizardID
	event.PreviousWizardID = previous
	event.ArtifactIDs = []string{artifactID}
	msg, err := s.prepareOutbox(event)
	if err != nil {
		return entities.Artifact{}, err
	}

	s.ownership.Assign(artifactID, wizardID)
	artifact.UpdatedAt = event.OccurredAt
	s.artifacts[artifactID] = artifact
	s.commitOutbox(msg)
	return s.projectArtifact(artifact), nil
}

func (s *Store) ReleaseArtifact(_ context.Context, wizardID int64, artifactID string, event ports.OwnershipEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	artifact, ok := s.artifacts[artifactID]
	if !ok {
		return domainerrors.ErrArtifactNotFound
	}
	if _, ok := s.wizards[wizardID]; !ok {
		return domainerrors.ErrWizardNotFound
	}
	if owner, _ := s.ownership.OwnerOf(artifactID); owner != wizardID {
		return domainerrors.ErrArtifactNotOwned
	}
	event.WizardID = wizardID
	event.ArtifactIDs = []string{artifactID}
	msg, err := s.prepareOutbox(event)
	if err != nil {
		return err
	}

	s.ownership.Detach(artifactID)
	artifact.UpdatedAt = event.OccurredAt
	s.artifacts[artifactID] = artifact
	s.commitOutbox(msg)
	return nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 100
	}
	messages := make([]ports.OutboxMessage, 0, limit)
	for _, id := range s.outboxOrder {
		if _, sent := s.outboxSent[id]; sent {
			continue
		}
		if msg, ok := s.outbox[id]; ok {
			messages = append(messages, msg)
		}
		if len(messages) >= limit {
			break
		}
	}
	return messages, nil
}

func (s *Store) MarkOutboxSent(_ context.Context, outboxID string, sentAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.outbox[outboxID]; !ok {
		return domainerrors.ErrRepositoryInvariantBroke
	}
	s.outboxSent[outboxID] = sentAt.UTC()
	return nil
}

// OutboxEvents returns every outbox row in insertion order, sent or not.
func (s *Store) OutboxEvents() []ports.OutboxMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := make([]ports.OutboxMessage, 0, len(s.outboxOrder))
	for _, id := range s.outboxOrder {
		if evt, ok := s.outbox[id]; ok {
			events = append(events, evt)
		}
	}
	return events
}

// ValidateOwnership runs the registry invariant check under the read lock.
func (s *Store) ValidateOwnership() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ownership.Validate()
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	value := atomic.AddUint64(&s.sequence, 1)
	return fmt.Sprintf("evt-%06d", value), nil
}

// prepareOutbox builds the outbox row for event without storing it. Callers
// hold the write lock and mutate nothing until it succeeds, so a rejected
// event leaves ownership as it was.
func (s *Store) prepareOutbox(event ports.OwnershipEvent) (ports.OutboxMessage, error) {
	if _, exists := s.outbox[event.EventID]; exists {
		return ports.OutboxMessage{}, domainerrors.ErrRepositoryInvariantBroke
	}
	envelope, err := ports.NewOwnershipEnvelope(event)
	if err != nil {
		return ports.OutboxMessage{}, err
	}
	payload, err := json.Marshal(envelope)
	if err != nil {
		return ports.OutboxMessage{}, err
	}
	return ports.OutboxMessage{
		OutboxID:     event.EventID,
		EventType:    event.EventType,
		PartitionKey: envelope.PartitionKey,
		Payload:      payload,
		CreatedAt:    event.OccurredAt.UTC(),
	}, nil
}

// commitOutbox must be called with the write lock held.
func (s *Store) commitOutbox(msg ports.OutboxMessage) {
	s.outbox[msg.OutboxID] = msg
	s.outboxOrder = append(s.outboxOrder, msg.OutboxID)
}

func (s *Store) projectArtifact(artifact entities.Artifact) entities.Artifact {
	if owner, ok := s.ownership.OwnerOf(artifact.ArtifactID); ok {
		artifact.OwnerID = owner
	} else {
		artifact.OwnerID = entities.NoOwner
	}
	return artifact
}

func (s *Store) projectWizard(wizard entities.Wizard) entities.Wizard {
	wizard.ArtifactIDs = s.ownership.ArtifactsOf(wizard.WizardID)
	return wizard
}

func sortArtifacts(items []entities.Artifact) {
	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.Before(items[j].CreatedAt)
		}
		return items[i].ArtifactID < items[j].ArtifactID
	})
}
