package snowflake

import (
	"fmt"
	"runtime"
	"sync"
	"time"
)

// Generator issues snowflake ids. It is safe for concurrent use; callers are
// serialized on a single mutex that covers the whole read-modify-write of the
// timestamp and sequence state.
type Generator struct {
	mu sync.Mutex

	epoch     time.Time
	epochMS   int64
	site      uint64
	worker    uint64
	clock     Clock
	spinLimit int

	// lastTimestamp is milliseconds since epoch of the last issued id, -1
	// before the first id.
	lastTimestamp int64
	sequence      uint64
}

func New(cfg Config) (*Generator, error) {
	if cfg.SiteID < 0 || cfg.SiteID > MaxSiteID {
		return nil, fmt.Errorf("site id %d outside [0, %d]: %w", cfg.SiteID, MaxSiteID, ErrConfiguration)
	}
	if cfg.WorkerID < 0 || cfg.WorkerID > MaxWorkerID {
		return nil, fmt.Errorf("worker id %d outside [0, %d]: %w", cfg.WorkerID, MaxWorkerID, ErrConfiguration)
	}

	clock := cfg.Clock
	if clock == nil {
		clock = SystemClock{}
	}
	epoch := cfg.Epoch
	if epoch.IsZero() {
		epoch = DefaultEpoch
	}
	if epoch.After(clock.Now()) {
		return nil, fmt.Errorf("epoch %s is in the future: %w", epoch.UTC().Format(time.RFC3339), ErrConfiguration)
	}
	spinLimit := cfg.SpinLimit
	if spinLimit <= 0 {
		spinLimit = DefaultSpinLimit
	}

	return &Generator{
		epoch:         epoch.UTC(),
		epochMS:       epoch.UnixMilli(),
		site:          uint64(cfg.SiteID),
		worker:        uint64(cfg.WorkerID),
		clock:         clock,
		spinLimit:     spinLimit,
		lastTimestamp: -1,
	}, nil
}

// MustNew is New for fixed, known good configurations. It panics on error.
func MustNew(cfg Config) *Generator {
	g, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return g
}

// NextID returns the next id in the series.
//
// A clock reading earlier than the last issued id fails with ErrClockSkew.
// On any error the generator state is left as it was and no id is consumed.
func (g *Generator) NextID() (uint64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now, err := g.millis()
	if err != nil {
		return 0, err
	}
	if now < g.lastTimestamp {
		return 0, fmt.Errorf("clock is %dms behind the last issued id: %w", g.lastTimestamp-now, ErrClockSkew)
	}

	var sequence uint64
	if now == g.lastTimestamp {
		sequence = (g.sequence + 1) & MaxSequence
		if sequence == 0 {
			now, err = g.waitNextMillis(g.lastTimestamp)
			if err != nil {
				return 0, err
			}
		}
	}
	if now > maxTimestamp {
		return 0, fmt.Errorf("%dms since %s: %w", now, g.epoch.Format(time.RFC3339), ErrEpochExhausted)
	}

	g.lastTimestamp = now
	g.sequence = sequence

	return uint64(now)<<TimestampShift |
		g.site<<SiteShift |
		g.worker<<WorkerShift |
		sequence, nil
}

// Epoch returns the reference epoch the generator measures time from.
func (g *Generator) Epoch() time.Time {
	return g.epoch
}

// Decompose splits an id issued by this generator, or by any generator
// sharing its epoch.
func (g *Generator) Decompose(id uint64) Parts {
	return Decompose(id, g.epoch)
}

func (g *Generator) millis() (int64, error) {
	ms := g.clock.Now().UnixMilli() - g.epochMS
	if ms < 0 {
		return 0, fmt.Errorf("clock reading precedes epoch by %dms: %w", -ms, ErrClockSkew)
	}
	return ms, nil
}

// waitNextMillis busy waits, yielding the processor between reads, until the
// clock passes last.
func (g *Generator) waitNextMillis(last int64) (int64, error) {
	for i := 0; i < g.spinLimit; i++ {
		now, err := g.millis()
		if err != nil {
			return 0, err
		}
		if now > last {
			return now, nil
		}
		if now < last {
			return 0, fmt.Errorf("clock moved back %dms while waiting for the next millisecond: %w", last-now, ErrClockSkew)
		}
		runtime.Gosched()
	}
	return 0, ErrOverloaded
}
