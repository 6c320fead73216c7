package service

import (
	"context"
	"errors"
	"fmt"

	"roombook/internal/availability"
	roomserrors "roombook/internal/rooms/errors"
	apperrors "roombook/pkg/errors"
	"roombook/pkg/model"
)

// RoomGetter is the slice of the rooms domain this service needs.
// Wired to the rooms repository in main.
type RoomGetter interface {
	FindByID(ctx context.Context, id string) (*model.Room, error)
}

// IsAvailable reports whether [start, end) on date is free for the
// room. The answer is advisory: creation re-checks inside a
// transaction under the slot lock, so a "true" here can still lose the
// race.
func (s *bookingService) IsAvailable(ctx context.Context, roomID, date, start, end string) (bool, error) {
	if roomID == "" {
		return false, apperrors.InvalidInput("Room ID cannot be empty")
	}
	if !model.IsDate(date) {
		return false, apperrors.InvalidInput("Date must be in YYYY-MM-DD format")
	}
	if !model.IsTimeOfDay(start) || !model.IsTimeOfDay(end) {
		return false, apperrors.InvalidInput("Start and end times must be in HH:MM format")
	}
	startMin, _ := model.MinutesOfDay(start)
	endMin, _ := model.MinutesOfDay(end)
	if startMin >= endMin {
		return false, apperrors.InvalidInput("End time must be after start time")
	}

	if _, err := s.rooms.FindByID(ctx, roomID); err != nil {
		if errors.Is(err, roomserrors.ErrNotFound) {
			return false, apperrors.NotFoundWithID("Room", roomID)
		}
		if errors.Is(err, roomserrors.ErrInvalidID) {
			return false, apperrors.InvalidInput("Invalid room ID format")
		}
		return false, apperrors.Internal("Failed to check room existence", err)
	}

	conflict, err := s.findConflict(ctx, roomID, date, start, end, "")
	if err != nil {
		return false, err
	}
	return conflict == nil, nil
}

// findConflict loads the room's bookings for the day and runs interval
// overlap against them. excludeID skips a booking so an update never
// conflicts with itself.
func (s *bookingService) findConflict(ctx context.Context, roomID, date, start, end, excludeID string) (*model.Booking, error) {
	existing, err := s.repo.FindByRoomAndDate(ctx, roomID, date)
	if err != nil {
		return nil, apperrors.Internal("Failed to check existing bookings", err)
	}

	conflict, err := availability.FirstConflict(existing, excludeID, start, end)
	if err != nil {
		return nil, apperrors.Internal("Failed to evaluate booking overlap", err)
	}
	return conflict, nil
}

// verifyNoConflict is the transactional guard on create and reschedule.
func (s *bookingService) verifyNoConflict(ctx context.Context, booking *model.Booking, excludeID string) error {
	conflict, err := s.findConflict(ctx, booking.RoomID, booking.Date, booking.StartTime, booking.EndTime, excludeID)
	if err != nil {
		return err
	}
	if conflict != nil {
		return apperrors.Conflict(fmt.Sprintf(
			"Room is already booked from %s to %s on %s",
			conflict.StartTime,
			conflict.EndTime,
			conflict.Date,
		))
	}
	return nil
}
