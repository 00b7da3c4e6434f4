package booking

import (
	"context"
	"time"

	"github.com/iliyamo/restaurant-reservation/internal/model"
	"github.com/iliyamo/restaurant-reservation/internal/timeslot"
)

// BlockCovers reports whether any block in the list applies to the
// given day and overlaps the candidate window.  The date range is
// inclusive; the time range uses the half-open overlap rule
// (block.start < win.end && block.end > win.start).
func BlockCovers(blocks []model.ReservationBlock, date time.Time, win timeslot.Window) bool {
	for i := range blocks {
		b := &blocks[i]
		if b.CoversDate(date) && b.TimeRange().Overlaps(win) {
			return true
		}
	}
	return false
}

// isRoomBlocked checks for a block of the given type covering the room
// during the window.
func isRoomBlocked(ctx context.Context, st Store, roomID uint64, date time.Time, win timeslot.Window, blockType string) (bool, error) {
	blocks, err := st.RoomBlocks(ctx, roomID, date, blockType)
	if err != nil {
		return false, err
	}
	return BlockCovers(blocks, date, win), nil
}

// isLocationBlocked checks for a location-wide hard block covering the
// window.  Soft blocks only exist at room granularity.
func isLocationBlocked(ctx context.Context, st Store, locationID uint64, date time.Time, win timeslot.Window) (bool, error) {
	blocks, err := st.LocationBlocks(ctx, locationID, date)
	if err != nil {
		return false, err
	}
	return BlockCovers(blocks, date, win), nil
}
