package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	v, err := ParseTimeOfDay("08:30")
	require.NoError(t, err)
	assert.Equal(t, 8, v.Hour())
	assert.Equal(t, 30, v.Minute())
	assert.Equal(t, 510, v.Minutes())

	v, err = ParseTimeOfDay("00:00")
	require.NoError(t, err)
	assert.Equal(t, 0, v.Minutes())

	v, err = ParseTimeOfDay("23:59")
	require.NoError(t, err)
	assert.Equal(t, 1439, v.Minutes())

	for _, bad := range []string{"24:00", "12:60", "-1:00", "noon", ""} {
		_, err := ParseTimeOfDay(bad)
		assert.Error(t, err, bad)
	}
}

func TestTimeOfDayString(t *testing.T) {
	v, err := ParseTimeOfDay("9:05")
	require.NoError(t, err)
	assert.Equal(t, "09:05", v.String())
}

func TestTimeOfDayAdd(t *testing.T) {
	v, err := ParseTimeOfDay("08:00")
	require.NoError(t, err)
	assert.Equal(t, "08:30", v.Add(30*time.Minute).String())
	assert.Equal(t, "09:00", v.Add(time.Hour).String())
}

func TestTimeOfDayJSONRoundTrip(t *testing.T) {
	v, err := ParseTimeOfDay("14:30")
	require.NoError(t, err)

	data, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, `"14:30"`, string(data))

	var parsed TimeOfDay
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, v, parsed)
}

func TestTimeOfDayScan(t *testing.T) {
	var v TimeOfDay

	require.NoError(t, v.Scan(time.Date(0, 1, 1, 10, 15, 0, 0, time.UTC)))
	assert.Equal(t, "10:15", v.String())

	require.NoError(t, v.Scan("08:30:00"))
	assert.Equal(t, "08:30", v.String())

	require.NoError(t, v.Scan([]byte("16:00")))
	assert.Equal(t, "16:00", v.String())

	assert.Error(t, v.Scan(42))
}
