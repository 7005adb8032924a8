package snowflakeid

import (
	"context"
	"errors"
	"testing"
	"time"

	domainerrors "arcana/contexts/catalog/artifact-catalog/domain/errors"
	"arcana/internal/platform/snowflake"
)

type frozenClock struct{ now time.Time }

func (c *frozenClock) Now() time.Time { return c.now }

func TestNewIDFormatsDecimalSnowflake(t *testing.T) {
	clock := &frozenClock{now: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)}
	ids := New(snowflake.MustNew(snowflake.Config{SiteID: 3, WorkerID: 4, Clock: clock}))

	id, err := ids.NewID(context.Background())
	if err != nil {
		t.Fatalf("new id failed: %v", err)
	}
	raw, err := snowflake.ParseID(id)
	if err != nil {
		t.Fatalf("id %q is not a decimal snowflake: %v", id, err)
	}
	parts := ids.Snowflake.Decompose(raw)
	if parts.SiteID != 3 || parts.WorkerID != 4 {
		t.Fatalf("unexpected parts %+v", parts)
	}
}

func TestNewIDWrapsClockSkew(t *testing.T) {
	clock := &frozenClock{now: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)}
	ids := New(snowflake.MustNew(snowflake.Config{Clock: clock}))
	if _, err := ids.NewID(context.Background()); err != nil {
		t.Fatalf("first id failed: %v", err)
	}

	clock.now = clock.now.Add(-time.Second)
	_, err := ids.NewID(context.Background())
	if !errors.Is(err, domainerrors.ErrIDGenerationUnavailable) || !errors.Is(err, snowflake.ErrClockSkew) {
		t.Fatalf("expected wrapped clock skew, got %v", err)
	}
}
