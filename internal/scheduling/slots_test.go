package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devsign-cl/appointment-service/pkg/types"
)

func TestComputeSlotsFullDay(t *testing.T) {
	slots, err := ComputeSlots("09:00", "18:00", 30)
	require.NoError(t, err)

	require.Len(t, slots, 18)
	assert.Equal(t, types.TimeString("09:00"), slots[0])
	assert.Equal(t, types.TimeString("17:30"), slots[len(slots)-1])
}

func TestComputeSlotsExcludesCloseTime(t *testing.T) {
	slots, err := ComputeSlots("17:00", "18:00", 30)
	require.NoError(t, err)

	// 18:00 itself is not bookable
	assert.Equal(t, []types.TimeString{"17:00", "17:30"}, slots)
}

func TestComputeSlotsUnevenGranularity(t *testing.T) {
	// the last step overshoots the close time and is dropped
	slots, err := ComputeSlots("09:00", "10:00", 45)
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"09:00", "09:45"}, slots)
}

func TestComputeSlotsEmptyWindow(t *testing.T) {
	slots, err := ComputeSlots("18:00", "18:00", 30)
	require.NoError(t, err)
	assert.Empty(t, slots)

	slots, err = ComputeSlots("18:00", "09:00", 30)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestComputeSlotsValidation(t *testing.T) {
	_, err := ComputeSlots("09:00", "18:00", 0)
	assert.Error(t, err)

	_, err = ComputeSlots("09:00", "18:00", -15)
	assert.Error(t, err)

	_, err = ComputeSlots("junk", "18:00", 30)
	assert.Error(t, err)

	_, err = ComputeSlots("09:00", "junk", 30)
	assert.Error(t, err)
}
