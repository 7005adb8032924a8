// Package snowflakeid adapts the platform snowflake generator to the
// catalog's IDGenerator port. Both the Postgres and in-memory wirings use it.
package snowflakeid

import (
	"context"
	"fmt"

	domainerrors "arcana/contexts/catalog/artifact-catalog/domain/errors"
	"arcana/internal/platform/snowflake"
)

// Generator mints artifact ids as decimal snowflake strings.
type Generator struct {
	Snowflake *snowflake.Generator
}

func New(generator *snowflake.Generator) Generator {
	return Generator{Snowflake: generator}
}

func (g Generator) NewID(_ context.Context) (string, error) {
	id, err := g.Snowflake.NextID()
	if err != nil {
		return "", fmt.Errorf("%w: %w", domainerrors.ErrIDGenerationUnavailable, err)
	}
	return snowflake.FormatID(id), nil
}
