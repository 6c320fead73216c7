// Package availability implements the interval model behind room
// booking: conflict detection over half-open [start, end) time ranges
// and day-timetable slotting. It is pure computation; persistence stays
// with the callers.
package availability

import (
	"fmt"

	"roombook/pkg/model"
)

// Overlaps reports whether the half-open minute intervals [s1, e1) and
// [s2, e2) intersect. Back-to-back intervals (e1 == s2) do not overlap,
// so a booking ending at 10:00 never conflicts with one starting at
// 10:00.
func Overlaps(s1, e1, s2, e2 int) bool {
	return s1 < e2 && s2 < e1
}

// FirstConflict returns the first non-cancelled booking whose interval
// overlaps [start, end), skipping the booking identified by excludeID.
// Callers pass excludeID when re-checking an update so a booking never
// conflicts with itself. Returns nil when the interval is free.
//
// Bookings are assumed to belong to a single room and date; filtering
// is the repository's job.
func FirstConflict(bookings []*model.Booking, excludeID, start, end string) (*model.Booking, error) {
	startMin, err := model.MinutesOfDay(start)
	if err != nil {
		return nil, err
	}
	endMin, err := model.MinutesOfDay(end)
	if err != nil {
		return nil, err
	}
	if startMin >= endMin {
		return nil, fmt.Errorf("start %s must be before end %s", start, end)
	}

	for _, b := range bookings {
		if b.ID == excludeID && excludeID != "" {
			continue
		}
		if b.Status == model.StatusCancelled {
			continue
		}

		bStart, err := model.MinutesOfDay(b.StartTime)
		if err != nil {
			return nil, fmt.Errorf("booking %s: %w", b.ID, err)
		}
		bEnd, err := model.MinutesOfDay(b.EndTime)
		if err != nil {
			return nil, fmt.Errorf("booking %s: %w", b.ID, err)
		}

		if Overlaps(startMin, endMin, bStart, bEnd) {
			return b, nil
		}
	}

	return nil, nil
}

// Slots partitions the day between dayStart and dayEnd into fixed-size
// slots and marks each with the first confirmed booking occupying it.
// Pending and cancelled bookings never block a slot.
func Slots(bookings []*model.Booking, dayStart, dayEnd string, slotMinutes int) ([]model.TimeSlot, error) {
	startMin, err := model.MinutesOfDay(dayStart)
	if err != nil {
		return nil, err
	}
	endMin, err := model.MinutesOfDay(dayEnd)
	if err != nil {
		return nil, err
	}
	if slotMinutes <= 0 {
		return nil, fmt.Errorf("slot size must be positive, got %d", slotMinutes)
	}

	// Parse each booking once; the slot loop only compares minutes.
	type occupied struct {
		start, end int
		booking    *model.Booking
	}
	var busy []occupied
	for _, b := range bookings {
		if b.Status != model.StatusConfirmed {
			continue
		}
		bStart, err := model.MinutesOfDay(b.StartTime)
		if err != nil {
			return nil, fmt.Errorf("booking %s: %w", b.ID, err)
		}
		bEnd, err := model.MinutesOfDay(b.EndTime)
		if err != nil {
			return nil, fmt.Errorf("booking %s: %w", b.ID, err)
		}
		busy = append(busy, occupied{start: bStart, end: bEnd, booking: b})
	}

	var slots []model.TimeSlot
	for t := startMin; t+slotMinutes <= endMin; t += slotMinutes {
		slot := model.TimeSlot{
			Start:     formatMinutes(t),
			End:       formatMinutes(t + slotMinutes),
			Available: true,
		}

		for _, o := range busy {
			if Overlaps(t, t+slotMinutes, o.start, o.end) {
				slot.Available = false
				slot.Booking = o.booking
				break
			}
		}

		slots = append(slots, slot)
	}

	return slots, nil
}

func formatMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
