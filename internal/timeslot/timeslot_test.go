package timeslot

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromHour_Bounds(t *testing.T) {
	tests := []struct {
		hour  int
		valid bool
	}{
		{hour: -1, valid: false},
		{hour: 0, valid: false},
		{hour: 5, valid: false},
		{hour: 6, valid: true},
		{hour: 12, valid: true},
		{hour: 20, valid: true},
		{hour: 21, valid: false},
		{hour: 23, valid: false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("hour_%d", tt.hour), func(t *testing.T) {
			slot, ok := FromHour(tt.hour)
			assert.Equal(t, tt.valid, ok)
			if tt.valid {
				assert.Equal(t, tt.hour, slot.Hour())
			}
		})
	}
}

func TestSlot_Label(t *testing.T) {
	for h := FirstHour; h <= LastHour; h++ {
		slot, ok := FromHour(h)
		require.True(t, ok)

		// Метка содержит и час начала, и час конца
		assert.Equal(t, fmt.Sprintf("с %d:00 до %d:00", h, h+1), slot.Label())
		assert.Equal(t, fmt.Sprintf("%d:00", h), slot.Start())
	}
}

func TestAll(t *testing.T) {
	slots := All()
	require.Len(t, slots, 15)

	assert.Equal(t, 6, slots[0].Hour())
	assert.Equal(t, 20, slots[len(slots)-1].Hour())

	for i := 1; i < len(slots); i++ {
		assert.Equal(t, slots[i-1].Hour()+1, slots[i].Hour())
	}
}

func TestStartFromLabel(t *testing.T) {
	assert.Equal(t, "6:00", StartFromLabel("с 6:00 до 7:00"))
	assert.Equal(t, "20:00", StartFromLabel("с 20:00 до 21:00"))
	assert.Equal(t, "?", StartFromLabel("мусор"))
}
