package mocks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerviz/internal/models"
)

func TestLoadRecords(t *testing.T) {
	svc := NewMockService(".")
	raw, err := svc.LoadRecords()
	require.NoError(t, err)
	require.Len(t, raw, 6)

	// one bad date and one non-numeric amount
	records, skipped := models.NormalizeAll(raw)
	assert.Equal(t, 2, skipped)
	require.Len(t, records, 4)
	assert.Equal(t, "1", records[0].ID)
	assert.Equal(t, 1250.5, records[2].Amount)
	assert.Equal(t, int64(1707553800), records[2].CreatedAt.Unix())
}

func TestLoadSkills(t *testing.T) {
	skills, err := NewMockService(".").LoadSkills()
	require.NoError(t, err)
	cv := models.CategoriesFromRecords(skills, models.DefaultCategoryPrefix)
	assert.Equal(t, []string{"go", "front end", "algo", "sys admin"}, cv.Labels())
	assert.Equal(t, []float64{60, 40, 35, 20}, cv.Values())
}

func TestLoadAudit(t *testing.T) {
	totals, err := NewMockService(".").LoadAudit()
	require.NoError(t, err)
	assert.Equal(t, "100", totals.Received.String())
	assert.Equal(t, "95", totals.Done.String())
}

func TestLoadMissingDir(t *testing.T) {
	_, err := NewMockService(t.TempDir()).LoadRecords()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load records")
}

func TestClockStopAndFire(t *testing.T) {
	var c Clock
	calls := 0
	t1 := c.AfterFunc(0, func() { calls++ })
	c.AfterFunc(0, func() { calls += 10 })

	assert.True(t, t1.Stop())
	assert.False(t, t1.Stop())
	assert.Equal(t, 1, c.Active())
	assert.Equal(t, 1, c.Fire())
	assert.Equal(t, 10, calls)
	assert.Equal(t, 1, c.FireStopped())
	assert.Equal(t, 11, calls)
	assert.Equal(t, 0, c.Active())
}
