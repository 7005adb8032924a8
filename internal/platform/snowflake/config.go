package snowflake

import (
	"errors"
	"time"
)

const (
	TimestampBits = 41
	SiteBits      = 5
	WorkerBits    = 5
	SequenceBits  = 12

	MaxSiteID   = 1<<SiteBits - 1
	MaxWorkerID = 1<<WorkerBits - 1
	MaxSequence = 1<<SequenceBits - 1

	maxTimestamp = 1<<TimestampBits - 1

	WorkerShift    = SequenceBits
	SiteShift      = SequenceBits + WorkerBits
	TimestampShift = SequenceBits + WorkerBits + SiteBits

	// DefaultSpinLimit bounds the clock reads made while waiting for the next
	// millisecond once a sequence is exhausted. On a working clock the wait
	// ends well inside this many reads.
	DefaultSpinLimit = 1 << 20
)

// DefaultEpoch is the reference epoch for arcana deployments. Do not change it
// for a running deployment.
var DefaultEpoch = time.UnixMilli(1288834974657).UTC()

var (
	ErrConfiguration  = errors.New("invalid snowflake generator configuration")
	ErrClockSkew      = errors.New("clock moved backwards, refusing to generate id")
	ErrOverloaded     = errors.New("sequence exhausted and clock did not advance within the spin limit")
	ErrEpochExhausted = errors.New("timestamp no longer fits the id layout for this epoch")
	ErrMalformedID    = errors.New("malformed snowflake id")
)

// Clock is the time source read by a Generator.
type Clock interface {
	Now() time.Time
}

// SystemClock reads wall clock time.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

type Config struct {
	// SiteID and WorkerID together identify the generator. Both must be in
	// [0, 31].
	SiteID   int
	WorkerID int

	// Epoch defaults to DefaultEpoch.
	Epoch time.Time

	// Clock defaults to SystemClock.
	Clock Clock

	// SpinLimit defaults to DefaultSpinLimit.
	SpinLimit int
}
