package snowflake

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Parts is an id split back into its fields.
type Parts struct {
	Time     time.Time
	SiteID   int
	WorkerID int
	Sequence int
}

// Decompose splits id using epoch as the reference time.
func Decompose(id uint64, epoch time.Time) Parts {
	ms := id >> TimestampShift
	return Parts{
		Time:     epoch.Add(time.Duration(ms) * time.Millisecond).UTC(),
		SiteID:   int(id>>SiteShift) & MaxSiteID,
		WorkerID: int(id>>WorkerShift) & MaxWorkerID,
		Sequence: int(id) & MaxSequence,
	}
}

// FormatID renders an id in the decimal string form used by the API and the
// artifacts table.
func FormatID(id uint64) string {
	return strconv.FormatUint(id, 10)
}

// ParseID is the inverse of FormatID. Ids with the sign bit set are rejected.
func ParseID(value string) (uint64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty id: %w", ErrMalformedID)
	}
	id, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", value, ErrMalformedID)
	}
	if id>>63 != 0 {
		return 0, fmt.Errorf("%q has the sign bit set: %w", value, ErrMalformedID)
	}
	return id, nil
}
