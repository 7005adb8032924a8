package postgresadapter

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	domainerrors "arcana/contexts/catalog/artifact-catalog/domain/errors"
	"arcana/contexts/catalog/artifact-catalog/ports"
	"arcana/internal/platform/tracing"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

func TestDiffOwnership(t *testing.T) {
	cases := []struct {
		name   string
		before map[string]int64
		after  map[string]int64
		want   []ownershipChange
	}{
		{
			name:   "assign unowned",
			before: map[string]int64{"a": 1},
			after:  map[string]int64{"a": 1, "b": 1},
			want:   []ownershipChange{{ArtifactID: "b", OwnerID: 1}},
		},
		{
			name:   "reassign between wizards",
			before: map[string]int64{"a": 1, "b": 1, "c": 2},
			after:  map[string]int64{"a": 2, "b": 1, "c": 2},
			want:   []ownershipChange{{ArtifactID: "a", OwnerID: 2}},
		},
		{
			name:   "unassign",
			before: map[string]int64{"a": 1, "b": 1},
			after:  map[string]int64{"b": 1},
			want:   []ownershipChange{{ArtifactID: "a", OwnerID: 0}},
		},
		{
			name:   "detach all in id order",
			before: map[string]int64{"c": 1, "a": 1, "b": 1},
			after:  map[string]int64{},
			want: []ownershipChange{
				{ArtifactID: "a", OwnerID: 0},
				{ArtifactID: "b", OwnerID: 0},
				{ArtifactID: "c", OwnerID: 0},
			},
		},
		{
			name:   "no change",
			before: map[string]int64{"a": 1},
			after:  map[string]int64{"a": 1},
			want:   []ownershipChange{},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := diffOwnership(tc.before, tc.after)
			if !slices.Equal(got, tc.want) {
				t.Fatalf("expected %+v, got %+v", tc.want, got)
			}
		})
	}
}

func TestOwnershipChangeUpdates(t *testing.T) {
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.FixedZone("CET", 3600))

	set := ownershipChange{ArtifactID: "a", OwnerID: 7}.updates(at)
	if set["owner_id"] != int64(7) || set["assigned_at"] != at.UTC() || set["updated_at"] != at.UTC() {
		t.Fatalf("unexpected set updates %v", set)
	}

	cleared := ownershipChange{ArtifactID: "a"}.updates(at)
	if cleared["owner_id"] != nil || cleared["assigned_at"] != nil || cleared["updated_at"] != at.UTC() {
		t.Fatalf("unexpected cleared updates %v", cleared)
	}
}

func TestHeldByTreatsMissingWizardAsUnowned(t *testing.T) {
	found := map[int64]wizardModel{4: {WizardID: 4}}
	if heldBy(found, 4) != 4 {
		t.Fatal("existing owner must be kept")
	}
	if heldBy(found, 9) != 0 {
		t.Fatal("missing owner must read as unowned")
	}
}

func TestOwnerForeignKeyNullsOnWizardDelete(t *testing.T) {
	parsed, err := schema.Parse(&artifactModel{}, &sync.Map{}, schema.NamingStrategy{})
	if err != nil {
		t.Fatalf("parse schema failed: %v", err)
	}
	rel, ok := parsed.Relationships.Relations["Owner"]
	if !ok {
		t.Fatal("expected Owner relation")
	}
	constraint := rel.ParseConstraint()
	if constraint == nil {
		t.Fatal("expected a foreign key constraint")
	}
	if constraint.OnDelete != "SET NULL" || constraint.ReferenceSchema.Table != "catalog_wizards" {
		t.Fatalf("unexpected constraint %+v", constraint)
	}
}

// recordingPool stands in for the database connection. Queries never reach
// it because the session runs in dry-run mode; it only sees transaction
// boundaries.
type recordingPool struct {
	log *[]string
}

func (p recordingPool) PrepareContext(context.Context, string) (*sql.Stmt, error) {
	return nil, errors.New("unexpected prepare")
}

func (p recordingPool) ExecContext(context.Context, string, ...any) (sql.Result, error) {
	return nil, errors.New("unexpected exec")
}

func (p recordingPool) QueryContext(context.Context, string, ...any) (*sql.Rows, error) {
	return nil, errors.New("unexpected query")
}

func (p recordingPool) QueryRowContext(context.Context, string, ...any) *sql.Row {
	return nil
}

func (p recordingPool) BeginTx(context.Context, *sql.TxOptions) (gorm.ConnPool, error) {
	*p.log = append(*p.log, "BEGIN")
	return recordingTx{recordingPool: p}, nil
}

type recordingTx struct {
	recordingPool
}

func (t recordingTx) Commit() error {
	*t.log = append(*t.log, "COMMIT")
	return nil
}

func (t recordingTx) Rollback() error {
	*t.log = append(*t.log, "ROLLBACK")
	return nil
}

type statement struct {
	SQL  string
	Vars []any
}

func dryRunRepository(t *testing.T) (*Repository, *[]string, *[]statement) {
	t.Helper()
	var txLog []string
	var statements []statement
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: recordingPool{log: &txLog}}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               logger.Discard,
	})
	if err != nil {
		t.Fatalf("open dry run db failed: %v", err)
	}
	record := func(tx *gorm.DB) {
		statements = append(statements, statement{
			SQL:  tx.Statement.SQL.String(),
			Vars: append([]any(nil), tx.Statement.Vars...),
		})
		txLog = append(txLog, "SQL")
	}
	if err := db.Callback().Query().After("gorm:query").Register("arcana:record_query", record); err != nil {
		t.Fatalf("register query callback failed: %v", err)
	}
	if err := db.Callback().Update().After("gorm:update").Register("arcana:record_update", record); err != nil {
		t.Fatalf("register update callback failed: %v", err)
	}
	if err := db.Callback().Delete().After("gorm:delete").Register("arcana:record_delete", record); err != nil {
		t.Fatalf("register delete callback failed: %v", err)
	}
	return NewRepository(db, nil), &txLog, &statements
}

func TestLockArtifactSelectsForUpdate(t *testing.T) {
	repo, _, statements := dryRunRepository(t)
	if _, err := lockArtifact(repo.db, "101"); err != nil {
		t.Fatalf("lock artifact failed: %v", err)
	}
	got := (*statements)[0]
	if !strings.Contains(got.SQL, `"catalog_artifacts"`) ||
		!strings.Contains(got.SQL, "artifact_id = $1") ||
		!strings.HasSuffix(got.SQL, "FOR UPDATE") {
		t.Fatalf("unexpected sql %q", got.SQL)
	}
	if got.Vars[0] != "101" {
		t.Fatalf("unexpected vars %v", got.Vars)
	}
}

func TestLockWizardsLocksInAscendingOrder(t *testing.T) {
	repo, _, statements := dryRunRepository(t)
	found, err := lockWizards(repo.db, 9, 2)
	if err != nil {
		t.Fatalf("lock wizards failed: %v", err)
	}
	if len(found) != 0 {
		t.Fatalf("dry run returns no rows, got %v", found)
	}
	got := (*statements)[0]
	if !strings.Contains(got.SQL, "wizard_id IN ($1,$2)") ||
		!strings.Contains(got.SQL, "ORDER BY wizard_id ASC FOR UPDATE") {
		t.Fatalf("unexpected sql %q", got.SQL)
	}
	if fmt.Sprint(got.Vars) != "[2 9]" {
		t.Fatalf("expected ids bound in ascending order, got %v", got.Vars)
	}
}

func TestLockWizardsLeavesMissingIDsToCaller(t *testing.T) {
	repo, _, _ := dryRunRepository(t)
	found, err := lockWizards(repo.db, 5)
	if err != nil {
		t.Fatalf("a single missing id must not be an error here: %v", err)
	}
	if _, ok := found[5]; ok {
		t.Fatal("missing wizard must be absent")
	}
}

func TestLoadRegionAndHoldingsQueries(t *testing.T) {
	repo, _, statements := dryRunRepository(t)
	registry, err := loadRegion(repo.db, 1, 2)
	if err != nil {
		t.Fatalf("load region failed: %v", err)
	}
	if registry.CountOf(1) != 0 || registry.CountOf(2) != 0 {
		t.Fatal("tracked wizards should start empty")
	}
	if err := lockHoldings(repo.db, 1); err != nil {
		t.Fatalf("lock holdings failed: %v", err)
	}

	region := (*statements)[0]
	if !strings.Contains(region.SQL, "owner_id IN ($1,$2)") ||
		!strings.Contains(region.SQL, "ORDER BY assigned_at ASC,artifact_id ASC") ||
		strings.Contains(region.SQL, "FOR UPDATE") {
		t.Fatalf("unexpected region sql %q", region.SQL)
	}
	holdings := (*statements)[1]
	if !strings.Contains(holdings.SQL, "owner_id = $1") || !strings.HasSuffix(holdings.SQL, "FOR UPDATE") {
		t.Fatalf("unexpected holdings sql %q", holdings.SQL)
	}
}

func TestApplyOwnershipWritesChangedRowsOnly(t *testing.T) {
	repo, _, statements := dryRunRepository(t)
	at := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	before := map[string]int64{"a": 1, "b": 1, "c": 2}
	after := map[string]int64{"a": 2, "c": 2}

	if err := applyOwnership(repo.db, before, after, at); err != nil {
		t.Fatalf("apply ownership failed: %v", err)
	}
	if len(*statements) != 2 {
		t.Fatalf("expected updates for a and b only, got %d", len(*statements))
	}
	for i, artifactID := range []string{"a", "b"} {
		got := (*statements)[i]
		if !strings.HasPrefix(got.SQL, `UPDATE "catalog_artifacts" SET`) ||
			!strings.Contains(got.SQL, `"owner_id"`) ||
			!strings.Contains(got.SQL, `"assigned_at"`) {
			t.Fatalf("unexpected sql %q", got.SQL)
		}
		if got.Vars[len(got.Vars)-1] != artifactID {
			t.Fatalf("expected update for %s, got vars %v", artifactID, got.Vars)
		}
	}
	if !slices.Contains((*statements)[0].Vars, any(int64(2))) {
		t.Fatalf("reassigned row must carry the new owner, got %v", (*statements)[0].Vars)
	}
	if slices.Contains((*statements)[1].Vars, any(int64(1))) {
		t.Fatalf("released row must not keep the old owner, got %v", (*statements)[1].Vars)
	}
}

func TestAssignLocksArtifactBeforeWizardAndRollsBack(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	shutdown, err := tracing.InitWithExporter("arcana-test", exporter)
	if err != nil {
		t.Fatalf("tracing init failed: %v", err)
	}
	defer func() { _ = shutdown(context.Background()) }()

	repo, txLog, statements := dryRunRepository(t)
	_, err = repo.AssignArtifact(context.Background(), 3, "101", ports.OwnershipEvent{EventID: "evt-1"})
	if !errors.Is(err, domainerrors.ErrWizardNotFound) {
		t.Fatalf("expected missing wizard in dry run, got %v", err)
	}

	if !slices.Equal(*txLog, []string{"BEGIN", "SQL", "SQL", "ROLLBACK"}) {
		t.Fatalf("unexpected transaction log %v", *txLog)
	}
	if !strings.Contains((*statements)[0].SQL, `"catalog_artifacts"`) ||
		!strings.Contains((*statements)[1].SQL, `"catalog_wizards"`) {
		t.Fatalf("artifact row must be locked before wizard rows: %+v", *statements)
	}

	spans := exporter.GetSpans()
	if len(spans) != 1 || spans[0].Name != "catalog.postgres.assign_artifact" || spans[0].Status.Code != codes.Error {
		t.Fatalf("unexpected spans %+v", spans)
	}
}

func TestDeleteWizardRequiresExistingWizard(t *testing.T) {
	repo, txLog, _ := dryRunRepository(t)
	_, err := repo.DeleteWizard(context.Background(), 4, ports.OwnershipEvent{EventID: "evt-1"})
	if !errors.Is(err, domainerrors.ErrWizardNotFound) {
		t.Fatalf("expected ErrWizardNotFound, got %v", err)
	}
	if (*txLog)[len(*txLog)-1] != "ROLLBACK" {
		t.Fatalf("expected rollback, got %v", *txLog)
	}
}

func TestDeleteUnownedArtifactCommitsWithoutOutbox(t *testing.T) {
	repo, txLog, statements := dryRunRepository(t)
	if err := repo.DeleteArtifact(context.Background(), "101", ports.OwnershipEvent{EventID: "evt-1"}); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if !slices.Equal(*txLog, []string{"BEGIN", "SQL", "SQL", "COMMIT"}) {
		t.Fatalf("unexpected transaction log %v", *txLog)
	}
	if !strings.HasPrefix((*statements)[1].SQL, `DELETE FROM "catalog_artifacts"`) {
		t.Fatalf("unexpected delete sql %q", (*statements)[1].SQL)
	}
}
