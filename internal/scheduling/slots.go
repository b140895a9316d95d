// Package scheduling holds the pure scheduling primitives: the time-slot
// calculator and the overlap detector. No I/O happens here.
package scheduling

import (
	"fmt"

	"github.com/devsign-cl/appointment-service/pkg/types"
)

// ComputeSlots generates the ordered sequence of bookable start times
// between openTime and closeTime with a fixed step. The close boundary is
// half-open: a slot starting exactly at closeTime is excluded.
func ComputeSlots(openTime, closeTime types.TimeString, granularityMinutes int) ([]types.TimeString, error) {
	if granularityMinutes <= 0 {
		return nil, fmt.Errorf("scheduling: granularity must be positive, got %d", granularityMinutes)
	}
	if err := openTime.Validate(); err != nil {
		return nil, fmt.Errorf("scheduling: invalid open time: %v", err)
	}
	if err := closeTime.Validate(); err != nil {
		return nil, fmt.Errorf("scheduling: invalid close time: %v", err)
	}

	slots := make([]types.TimeString, 0)
	current := openTime

	for current.IsBefore(closeTime) {
		slots = append(slots, current)

		next, err := current.AddMinutes(granularityMinutes)
		if err != nil {
			return nil, fmt.Errorf("scheduling: failed to advance slot: %v", err)
		}
		// AddMinutes wraps past midnight; treat a wrap as the end of the day
		if !next.IsAfter(current) {
			break
		}
		current = next
	}

	return slots, nil
}
