package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sort"
	"time"

	"arcana/contexts/catalog/artifact-catalog/domain/entities"
	domainerrors "arcana/contexts/catalog/artifact-catalog/domain/errors"
	"arcana/contexts/catalog/artifact-catalog/domain/services"
	"arcana/contexts/catalog/artifact-catalog/ports"
	"arcana/internal/platform/tracing"

	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	outboxStatusPending = "pending"
	outboxStatusSent    = "sent"
)

// Repository persists the catalog. Ownership lives in artifact.owner_id plus
// assigned_at, which orders a wizard's collection. Every ownership change
// locks the affected rows, loads that region of the graph into an
// OwnershipRegistry, applies the transfer there and writes back only the
// rows whose owner moved.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// Migrate creates or updates the catalog tables.
func (r *Repository) Migrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&wizardModel{}, &artifactModel{}, &outboxModel{})
}

func (r *Repository) ListArtifacts(ctx context.Context) ([]entities.Artifact, error) {
	var rows []artifactModel
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Order("artifact_id ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	items := make([]entities.Artifact, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) GetArtifact(ctx context.Context, artifactID string) (entities.Artifact, error) {
	var row artifactModel
	err := r.db.WithContext(ctx).
		Where("artifact_id = ?", artifactID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Artifact{}, domainerrors.ErrArtifactNotFound
		}
		return entities.Artifact{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) CreateArtifact(ctx context.Context, artifact entities.Artifact) error {
	row := artifactModelFromEntity(artifact)
	row.OwnerID = nil
	row.AssignedAt = nil
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrRepositoryInvariantBroke
		}
		return err
	}
	return nil
}

func (r *Repository) UpdateArtifact(ctx context.Context, artifact entities.Artifact) error {
	result := r.db.WithContext(ctx).
		Model(&artifactModel{}).
		Where("artifact_id = ?", artifact.ArtifactID).
		Updates(map[string]any{
			"name":        artifact.Name,
			"description": artifact.Description,
			"image_url":   artifact.ImageURL,
			"updated_at":  artifact.UpdatedAt.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrArtifactNotFound
	}
	return nil
}

func (r *Repository) DeleteArtifact(ctx context.Context, artifactID string, event ports.OwnershipEvent) error {
	return r.ownershipTx(ctx, "delete_artifact", func(tx *gorm.DB) error {
		artifact, err := lockArtifact(tx, artifactID)
		if err != nil {
			return err
		}

		previous := artifact.ownerID()
		if previous != entities.NoOwner {
			found, err := lockWizards(tx, previous)
			if err != nil {
				return err
			}
			previous = heldBy(found, previous)
			if previous == entities.NoOwner {
				r.logger.Warn("artifact points at a missing wizard, deleting as unowned",
					"event", "postgres_delete_artifact_dangling_owner",
					"module", "catalog/artifact-catalog",
					"layer", "adapter",
					"artifact_id", artifactID,
					"owner_id", artifact.ownerID(),
				)
			}
		}
		if previous != entities.NoOwner {
			registry, err := loadRegion(tx, previous)
			if err != nil {
				return err
			}
			registry.Detach(artifactID)
			if err := registry.Validate(); err != nil {
				return err
			}
		}

		if err := tx.Where("artifact_id = ?", artifactID).Delete(&artifactModel{}).Error; err != nil {
			return err
		}
		if previous == entities.NoOwner {
			return nil
		}
		event.WizardID = previous
		event.ArtifactIDs = []string{artifactID}
		return insertOutbox(tx, event)
	}, attribute.String("artifact_id", artifactID))
}

func (r *Repository) ListWizards(ctx context.Context) ([]entities.Wizard, error) {
	var rows []wizardModel
	if err := r.db.WithContext(ctx).
		Order("wizard_id ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	return r.withHoldings(ctx, rows)
}

func (r *Repository) GetWizard(ctx context.Context, wizardID int64) (entities.Wizard, error) {
	var row wizardModel
	err := r.db.WithContext(ctx).
		Where("wizard_id = ?", wizardID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Wizard{}, domainerrors.ErrWizardNotFound
		}
		return entities.Wizard{}, err
	}
	items, err := r.withHoldings(ctx, []wizardModel{row})
	if err != nil {
		return entities.Wizard{}, err
	}
	return items[0], nil
}

func (r *Repository) GetWizards(ctx context.Context, wizardIDs []int64) (map[int64]entities.Wizard, error) {
	out := make(map[int64]entities.Wizard, len(wizardIDs))
	if len(wizardIDs) == 0 {
		return out, nil
	}
	var rows []wizardModel
	if err := r.db.WithContext(ctx).
		Where("wizard_id IN ?", wizardIDs).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	items, err := r.withHoldings(ctx, rows)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		out[item.WizardID] = item
	}
	return out, nil
}

func (r *Repository) CreateWizard(ctx context.Context, wizard entities.Wizard) (entities.Wizard, error) {
	row := wizardModel{
		Name:      wizard.Name,
		CreatedAt: wizard.CreatedAt.UTC(),
		UpdatedAt: wizard.UpdatedAt.UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return entities.Wizard{}, domainerrors.ErrRepositoryInvariantBroke
		}
		return entities.Wizard{}, err
	}
	return row.toEntity(nil), nil
}

func (r *Repository) UpdateWizard(ctx context.Context, wizard entities.Wizard) error {
	result := r.db.WithContext(ctx).
		Model(&wizardModel{}).
		Where("wizard_id = ?", wizard.WizardID).
		Updates(map[string]any{
			"name":       wizard.Name,
			"updated_at": wizard.UpdatedAt.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrWizardNotFound
	}
	return nil
}

func (r *Repository) DeleteWizard(ctx context.Context, wizardID int64, event ports.OwnershipEvent) ([]string, error) {
	var detached []string
	err := r.ownershipTx(ctx, "delete_wizard", func(tx *gorm.DB) error {
		found, err := lockWizards(tx, wizardID)
		if err != nil {
			return err
		}
		if _, ok := found[wizardID]; !ok {
			return domainerrors.ErrWizardNotFound
		}
		if err := lockHoldings(tx, wizardID); err != nil {
			return err
		}
		registry, err := loadRegion(tx, wizardID)
		if err != nil {
			return err
		}
		before := registry.Owners()
		detached = registry.DetachAll(wizardID)
		if err := registry.Forget(wizardID); err != nil {
			return err
		}
		if err := registry.Validate(); err != nil {
			return err
		}
		if err := applyOwnership(tx, before, registry.Owners(), event.OccurredAt); err != nil {
			return err
		}
		if err := tx.Where("wizard_id = ?", wizardID).Delete(&wizardModel{}).Error; err != nil {
			return err
		}
		if len(detached) == 0 {
			return nil
		}
		event.WizardID = wizardID
		event.ArtifactIDs = detached
		return insertOutbox(tx, event)
	}, attribute.Int64("wizard_id", wizardID))
	if err != nil {
		return nil, err
	}

	r.logger.Info("wizard deleted with holdings released",
		"event", "postgres_delete_wizard",
		"module", "catalog/artifact-catalog",
		"layer", "adapter",
		"wizard_id", wizardID,
		"detached_count", len(detached),
	)
	return detached, nil
}

func (r *Repository) AssignArtifact(
	ctx context.Context,
	wizardID int64,
	artifactID string,
	event ports.OwnershipEvent,
) (entities.Artifact, error) {
	var result entities.Artifact
	err := r.ownershipTx(ctx, "assign_artifact", func(tx *gorm.DB) error {
		artifact, err := lockArtifact(tx, artifactID)
		if err != nil {
			return err
		}
		previous := artifact.ownerID()
		region := []int64{wizardID}
		if previous != entities.NoOwner && previous != wizardID {
			region = append(region, previous)
		}
		found, err := lockWizards(tx, region...)
		if err != nil {
			return err
		}
		if _, ok := found[wizardID]; !ok {
			return domainerrors.ErrWizardNotFound
		}
		if previous == wizardID {
			result = artifact.toEntity()
			return nil
		}

		registry, err := loadRegion(tx, region...)
		if err != nil {
			return err
		}
		before := registry.Owners()
		registry.Assign(artifactID, wizardID)
		if err := registry.Validate(); err != nil {
			return err
		}
		if err := applyOwnership(tx, before, registry.Owners(), event.OccurredAt); err != nil {
			return err
		}

		event.WizardID = wizardID
		event.PreviousWizardID = previous
		event.ArtifactIDs = []string{artifactID}
		if err := insertOutbox(tx, event); err != nil {
			return err
		}

		updated, err := lockArtifact(tx, artifactID)
		if err != nil {
			return err
		}
		result = updated.toEntity()
		return nil
	}, attribute.Int64("wizard_id", wizardID), attribute.String("artifact_id", artifactID))
	if err != nil {
		return entities.Artifact{}, err
	}
	return result, nil
}

func (r *Repository) ReleaseArtifact(
	ctx context.Context,
	wizardID int64,
	artifactID string,
	event ports.OwnershipEvent,
) error {
	return r.ownershipTx(ctx, "release_artifact", func(tx *gorm.DB) error {
		artifact, err := lockArtifact(tx, artifactID)
		if err != nil {
			return err
		}
		found, err := lockWizards(tx, wizardID)
		if err != nil {
			return err
		}
		if _, ok := found[wizardID]; !ok {
			return domainerrors.ErrWizardNotFound
		}
		if artifact.ownerID() != wizardID {
			return domainerrors.ErrArtifactNotOwned
		}

		registry, err := loadRegion(tx, wizardID)
		if err != nil {
			return err
		}
		before := registry.Owners()
		registry.Detach(artifactID)
		if err := registry.Validate(); err != nil {
			return err
		}
		if err := applyOwnership(tx, before, registry.Owners(), event.OccurredAt); err != nil {
			return err
		}

		event.WizardID = wizardID
		event.ArtifactIDs = []string{artifactID}
		return insertOutbox(tx, event)
	}, attribute.Int64("wizard_id", wizardID), attribute.String("artifact_id", artifactID))
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		limit = 100
	}

	var rows []outboxModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", outboxStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}

	items := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toPort())
	}
	return items, nil
}

func (r *Repository) MarkOutboxSent(ctx context.Context, outboxID string, sentAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ?", outboxID).
		Updates(map[string]any{
			"status":  outboxStatusSent,
			"sent_at": sentAt.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrRepositoryInvariantBroke
	}
	return nil
}

// ownershipTx runs fn in one transaction under a span named for op.
func (r *Repository) ownershipTx(
	ctx context.Context,
	op string,
	fn func(tx *gorm.DB) error,
	attrs ...attribute.KeyValue,
) (err error) {
	ctx, span := tracing.StartSpan(ctx, "catalog.postgres."+op, attrs...)
	defer func() { tracing.EndSpan(span, err) }()
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *Repository) withHoldings(ctx context.Context, rows []wizardModel) ([]entities.Wizard, error) {
	if len(rows) == 0 {
		return []entities.Wizard{}, nil
	}
	wizardIDs := make([]int64, 0, len(rows))
	for _, row := range rows {
		wizardIDs = append(wizardIDs, row.WizardID)
	}
	registry, err := loadRegion(r.db.WithContext(ctx), wizardIDs...)
	if err != nil {
		return nil, err
	}
	items := make([]entities.Wizard, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity(registry.ArtifactsOf(row.WizardID)))
	}
	return items, nil
}

func lockArtifact(tx *gorm.DB, artifactID string) (artifactModel, error) {
	var row artifactModel
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("artifact_id = ?", artifactID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return artifactModel{}, domainerrors.ErrArtifactNotFound
		}
		return artifactModel{}, err
	}
	return row, nil
}

// lockWizards takes row locks in ascending id order so that two transfers
// touching the same pair of wizards cannot deadlock on each other. Ids that
// do not exist are absent from the result; callers decide whether that is an
// error.
func lockWizards(tx *gorm.DB, wizardIDs ...int64) (map[int64]wizardModel, error) {
	ids := append([]int64(nil), wizardIDs...)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var rows []wizardModel
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("wizard_id IN ?", ids).
		Order("wizard_id ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	found := make(map[int64]wizardModel, len(rows))
	for _, row := range rows {
		found[row.WizardID] = row
	}
	return found, nil
}

// heldBy returns ownerID when that wizard row was found, NoOwner otherwise.
func heldBy(found map[int64]wizardModel, ownerID int64) int64 {
	if _, ok := found[ownerID]; !ok {
		return entities.NoOwner
	}
	return ownerID
}

func lockHoldings(tx *gorm.DB, wizardID int64) error {
	var rows []artifactModel
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("artifact_id").
		Where("owner_id = ?", wizardID).
		Order("artifact_id ASC").
		Find(&rows).
		Error
}

// loadRegion builds a registry holding the given wizards and everything they
// own, in assignment order.
func loadRegion(tx *gorm.DB, wizardIDs ...int64) (*services.OwnershipRegistry, error) {
	registry := services.NewOwnershipRegistry()
	for _, wizardID := range wizardIDs {
		registry.TrackWizard(wizardID)
	}

	var rows []artifactModel
	if err := tx.
		Select("artifact_id", "owner_id", "assigned_at").
		Where("owner_id IN ?", wizardIDs).
		Order("assigned_at ASC").
		Order("artifact_id ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		registry.Track(row.ArtifactID, row.ownerID())
	}
	return registry, nil
}

// ownershipChange is the new owner of one artifact row. NoOwner clears it.
type ownershipChange struct {
	ArtifactID string
	OwnerID    int64
}

func (c ownershipChange) updates(at time.Time) map[string]any {
	updates := map[string]any{
		"owner_id":    nil,
		"assigned_at": nil,
		"updated_at":  at.UTC(),
	}
	if c.OwnerID != entities.NoOwner {
		updates["owner_id"] = c.OwnerID
		updates["assigned_at"] = at.UTC()
	}
	return updates
}

// diffOwnership lists, in artifact id order, every artifact whose owner
// differs between two registry snapshots.
func diffOwnership(before map[string]int64, after map[string]int64) []ownershipChange {
	changed := make(map[string]int64, len(before)+len(after))
	for artifactID, owner := range before {
		if next, ok := after[artifactID]; !ok || next != owner {
			changed[artifactID] = next
		}
	}
	for artifactID, owner := range after {
		if previous, ok := before[artifactID]; !ok || previous != owner {
			changed[artifactID] = owner
		}
	}

	changes := make([]ownershipChange, 0, len(changed))
	for artifactID, owner := range changed {
		changes = append(changes, ownershipChange{ArtifactID: artifactID, OwnerID: owner})
	}
	sort.Slice(changes, func(i, j int) bool {
		return changes[i].ArtifactID < changes[j].ArtifactID
	})
	return changes
}

// applyOwnership writes owner_id and assigned_at for every artifact whose
// owner differs between the two registry snapshots.
func applyOwnership(tx *gorm.DB, before map[string]int64, after map[string]int64, at time.Time) error {
	for _, change := range diffOwnership(before, after) {
		if err := tx.Model(&artifactModel{}).
			Where("artifact_id = ?", change.ArtifactID).
			Updates(change.updates(at)).
			Error; err != nil {
			return err
		}
	}
	return nil
}

func insertOutbox(tx *gorm.DB, event ports.OwnershipEvent) error {
	envelope, err := ports.NewOwnershipEnvelope(event)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	row := outboxModel{
		OutboxID:     event.EventID,
		EventType:    event.EventType,
		PartitionKey: envelope.PartitionKey,
		Payload:      datatypes.JSON(payload),
		Status:       outboxStatusPending,
		CreatedAt:    event.OccurredAt.UTC(),
	}
	if err := tx.Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrRepositoryInvariantBroke
		}
		return err
	}
	return nil
}

type wizardModel struct {
	WizardID  int64     `gorm:"column:wizard_id;primaryKey;autoIncrement"`
	Name      string    `gorm:"column:name;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (wizardModel) TableName() string {
	return "catalog_wizards"
}

func (m wizardModel) toEntity(artifactIDs []string) entities.Wizard {
	if artifactIDs == nil {
		artifactIDs = []string{}
	}
	return entities.Wizard{
		WizardID:    m.WizardID,
		Name:        m.Name,
		ArtifactIDs: artifactIDs,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}

type artifactModel struct {
	ArtifactID  string     `gorm:"column:artifact_id;primaryKey"`
	Name        string     `gorm:"column:name;not null"`
	Description string     `gorm:"column:description;not null"`
	ImageURL    string     `gorm:"column:image_url;not null"`
	OwnerID     *int64     `gorm:"column:owner_id;index"`
	AssignedAt  *time.Time `gorm:"column:assigned_at"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`

	Owner *wizardModel `gorm:"foreignKey:OwnerID;references:WizardID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}

func (artifactModel) TableName() string {
	return "catalog_artifacts"
}

func artifactModelFromEntity(artifact entities.Artifact) artifactModel {
	row := artifactModel{
		ArtifactID:  artifact.ArtifactID,
		Name:        artifact.Name,
		Description: artifact.Description,
		ImageURL:    artifact.ImageURL,
		CreatedAt:   artifact.CreatedAt.UTC(),
		UpdatedAt:   artifact.UpdatedAt.UTC(),
	}
	if artifact.Owned() {
		owner := artifact.OwnerID
		row.OwnerID = &owner
	}
	return row
}

func (m artifactModel) ownerID() int64 {
	if m.OwnerID == nil {
		return entities.NoOwner
	}
	return *m.OwnerID
}

func (m artifactModel) toEntity() entities.Artifact {
	return entities.Artifact{
		ArtifactID:  m.ArtifactID,
		Name:        m.Name,
		Description: m.Description,
		ImageURL:    m.ImageURL,
		OwnerID:     m.ownerID(),
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}

type outboxModel struct {
	OutboxID     string         `gorm:"column:outbox_id;primaryKey"`
	EventType    string         `gorm:"column:event_type"`
	PartitionKey string         `gorm:"column:partition_key"`
	Payload      datatypes.JSON `gorm:"column:payload;type:jsonb;not null"`
	Status       string         `gorm:"column:status;index"`
	CreatedAt    time.Time      `gorm:"column:created_at"`
	SentAt       *time.Time     `gorm:"column:sent_at"`
}

func (outboxModel) TableName() string {
	return "catalog_outbox"
}

func (m outboxModel) toPort() ports.OutboxMessage {
	return ports.OutboxMessage{
		OutboxID:     m.OutboxID,
		EventType:    m.EventType,
		PartitionKey: m.PartitionKey,
		Payload:      append([]byte(nil), m.Payload...),
		CreatedAt:    m.CreatedAt.UTC(),
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
