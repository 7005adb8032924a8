package snowflake

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecompose(t *testing.T) {
	epoch := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	id := uint64(5000)<<TimestampShift | uint64(31)<<SiteShift | uint64(1)<<WorkerShift | 4095

	parts := Decompose(id, epoch)
	assert.Equal(t, epoch.Add(5*time.Second), parts.Time)
	assert.Equal(t, 31, parts.SiteID)
	assert.Equal(t, 1, parts.WorkerID)
	assert.Equal(t, 4095, parts.Sequence)
}

func TestParseID(t *testing.T) {
	id, err := ParseID(" 1250808601744904191 ")
	require.NoError(t, err)
	assert.Equal(t, uint64(1250808601744904191), id)
	assert.Equal(t, "1250808601744904191", FormatID(id))

	for _, bad := range []string{"", "abc", "-1", "18446744073709551615"} {
		_, err := ParseID(bad)
		assert.ErrorIs(t, err, ErrMalformedID, "input %q", bad)
	}
}
