package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProductionSetHour(t *testing.T) {
	now := time.Date(2024, 6, 1, 9, 15, 0, 0, time.UTC)

	t.Run("New hour appends an entry", func(t *testing.T) {
		p := Production{}
		overwritten := p.SetHour(9, 12, now)

		assert.False(t, overwritten)
		assert.Len(t, p.HourlyProduction, 1)
		assert.Equal(t, 12, p.TotalProduction)
	})

	t.Run("Repeated hour overwrites the count", func(t *testing.T) {
		p := Production{}
		p.SetHour(9, 12, now)
		overwritten := p.SetHour(9, 20, now.Add(time.Hour))

		assert.True(t, overwritten)
		assert.Len(t, p.HourlyProduction, 1, "repeated hour must not append")
		assert.Equal(t, 20, p.HourlyProduction[0].Count)
		assert.Equal(t, 20, p.TotalProduction)
	})

	t.Run("Total accumulates across distinct hours", func(t *testing.T) {
		p := Production{}
		p.SetHour(9, 12, now)
		p.SetHour(10, 8, now)
		p.SetHour(9, 20, now) // revise the first hour

		assert.Len(t, p.HourlyProduction, 2)
		assert.Equal(t, 28, p.TotalProduction)
	})

	t.Run("Zero count is a legitimate entry", func(t *testing.T) {
		p := Production{}
		p.SetHour(0, 0, now)

		assert.Len(t, p.HourlyProduction, 1)
		assert.Zero(t, p.TotalProduction)
	})
}

func TestProductionRecomputeTotal(t *testing.T) {
	p := Production{
		HourlyProduction: []HourlyEntry{
			{Hour: 9, Count: 12},
			{Hour: 10, Count: 15},
			{Hour: 11, Count: 3},
		},
		TotalProduction: 999, // stale value must be discarded
	}
	p.RecomputeTotal()
	assert.Equal(t, 30, p.TotalProduction)
}
