package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	bookingserrors "roombook/internal/bookings/errors"
	"roombook/internal/bookings/repository"
	"roombook/internal/bookings/validator"
	"roombook/internal/events"
	roomserrors "roombook/internal/rooms/errors"
	"roombook/pkg/config"
	apperrors "roombook/pkg/errors"
	"roombook/pkg/model"
	"roombook/pkg/sanitizer"

	"go.mongodb.org/mongo-driver/mongo"
)

type BookingService interface {
	Create(ctx context.Context, booking *model.Booking) error
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	GetAll(ctx context.Context, filter model.BookingFilter, limit int, offset int64) ([]*model.Booking, int64, error)
	Update(ctx context.Context, id string, updates *model.BookingUpdate, actor model.Actor) error
	Cancel(ctx context.Context, id string, actor model.Actor) error
	Delete(ctx context.Context, id string, actor model.Actor) error
	IsAvailable(ctx context.Context, roomID, date, start, end string) (bool, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	lockRepo  repository.BookingLockRepository
	rooms     RoomGetter
	validator *validator.BookingValidator
	events    events.Publisher
	cfg       *config.Config
	now       func() time.Time
}

func NewBookingService(
	repo repository.BookingRepository,
	lockRepo repository.BookingLockRepository,
	rooms RoomGetter,
	validator *validator.BookingValidator,
	publisher events.Publisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		lockRepo:  lockRepo,
		rooms:     rooms,
		validator: validator,
		events:    publisher,
		cfg:       cfg,
		now:       time.Now,
	}
}

func (s *bookingService) Create(ctx context.Context, booking *model.Booking) error {
	// New bookings are live immediately; pending exists only for data
	// imported from older systems.
	booking.Status = model.StatusConfirmed

	s.sanitize(booking)
	if err := s.validate(booking); err != nil {
		return err
	}

	if _, err := s.rooms.FindByID(ctx, booking.RoomID); err != nil {
		if errors.Is(err, roomserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Room", booking.RoomID)
		}
		if errors.Is(err, roomserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid room ID format")
		}
		return apperrors.Internal("Failed to check room existence", err)
	}

	// Acquire advisory lock to prevent race conditions
	lockID, err := s.acquireSlotLock(ctx, booking.RoomID, booking.Date, booking.StartTime)
	if err != nil {
		return err
	}
	defer func() {
		if releaseErr := s.releaseSlotLock(ctx, lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release booking lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.verifyNoConflict(sessCtx, booking, ""); err != nil {
			return err
		}
		if err := s.repo.Create(sessCtx, booking); err != nil {
			return apperrors.Internal("Failed to create booking", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create booking", "error", err)
		return err
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"room_id", booking.RoomID,
		"date", booking.Date,
		"start_time", booking.StartTime,
		"end_time", booking.EndTime,
	)
	s.events.BookingCreated(ctx, booking)
	return nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid booking ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}

	return booking, nil
}

func (s *bookingService) GetAll(ctx context.Context, filter model.BookingFilter, limit int, offset int64) ([]*model.Booking, int64, error) {
	if filter.Date != "" && !model.IsDate(filter.Date) {
		return nil, 0, apperrors.InvalidInput("Date must be in YYYY-MM-DD format")
	}

	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx, filter)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count bookings", "error", errCount)
			errCount = apperrors.Internal("Failed to count bookings", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		bookings, errFind = s.repo.FindAll(ctx, filter, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list bookings", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve bookings", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return bookings, count, nil
}

func (s *bookingService) Update(ctx context.Context, id string, updates *model.BookingUpdate, actor model.Actor) error {
	if id == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.Status == model.StatusCancelled {
		return apperrors.Conflict("Cancelled bookings cannot be modified")
	}
	if err := s.authorizeChange(existing, actor); err != nil {
		return err
	}
	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Booking update validation failed", "id", id, "error", err)
		return apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	merged := s.mergeBookingUpdates(existing, updates)
	s.sanitize(merged)
	if err := s.validate(merged); err != nil {
		return err
	}

	if !s.slotChanged(existing, merged) {
		// Title or description only. No interval to re-check.
		if _, err := s.repo.Update(ctx, id, merged); err != nil {
			s.cfg.Log.Error("Failed to update booking", "id", id, "error", err)
			return apperrors.Internal("Failed to update booking", err)
		}
		s.cfg.Log.Info("Booking updated successfully", "id", id)
		s.events.BookingUpdated(ctx, merged)
		return nil
	}

	lockID, err := s.acquireSlotLock(ctx, merged.RoomID, merged.Date, merged.StartTime)
	if err != nil {
		return err
	}
	defer func() {
		if releaseErr := s.releaseSlotLock(ctx, lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release booking lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.verifyNoConflict(sessCtx, merged, id); err != nil {
			return err
		}
		if _, err := s.repo.Update(sessCtx, id, merged); err != nil {
			return apperrors.Internal("Failed to update booking", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to update booking", "id", id, "error", err)
		return err
	}

	s.cfg.Log.Info("Booking rescheduled successfully",
		"id", id,
		"date", merged.Date,
		"start_time", merged.StartTime,
		"end_time", merged.EndTime,
	)
	s.events.BookingUpdated(ctx, merged)
	return nil
}

func (s *bookingService) Cancel(ctx context.Context, id string, actor model.Actor) error {
	if id == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorizeChange(existing, actor); err != nil {
		return err
	}
	if existing.Status == model.StatusCancelled {
		// Terminal state; repeating the request changes nothing.
		s.cfg.Log.Debug("Booking already cancelled", "id", id)
		return nil
	}

	if err := s.repo.SetStatus(ctx, id, model.StatusCancelled); err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Booking", id)
		}
		s.cfg.Log.Error("Failed to cancel booking", "id", id, "error", err)
		return apperrors.Internal("Failed to cancel booking", err)
	}

	existing.Status = model.StatusCancelled
	s.cfg.Log.Info("Booking cancelled", "id", id, "room_id", existing.RoomID, "date", existing.Date)
	s.events.BookingCancelled(ctx, existing)
	return nil
}

// Delete removes the record entirely. Cancellation keeps history, so
// deletion is an administrative cleanup tool, not part of the booking
// lifecycle.
func (s *bookingService) Delete(ctx context.Context, id string, actor model.Actor) error {
	if id == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}
	if !actor.IsAdmin() {
		return apperrors.Forbidden("Only administrators can delete bookings")
	}

	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.repo.Delete(sessCtx, id); err != nil {
			if errors.Is(err, bookingserrors.ErrNotFound) {
				return apperrors.NotFoundWithID("Booking", id)
			}
			if errors.Is(err, bookingserrors.ErrInvalidID) {
				return apperrors.InvalidInput("Invalid booking ID format")
			}
			return apperrors.Internal("Failed to delete booking", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.cfg.Log.Info("Booking deleted successfully", "id", id)
	s.events.BookingDeleted(ctx, id)
	return nil
}

// --- Helpers ---

// authorizeChange enforces ownership and the modification window.
// Admins bypass both; owners may change a booking until ModifyWindow
// before its start.
func (s *bookingService) authorizeChange(b *model.Booking, actor model.Actor) error {
	if actor.IsAdmin() {
		return nil
	}
	if b.UserID != actor.ID {
		return apperrors.Forbidden("Only the booking owner can modify this booking")
	}

	startsAt, err := b.StartsAt(time.Local)
	if err != nil {
		return apperrors.Internal("Failed to resolve booking start time", err)
	}
	deadline := startsAt.Add(-s.cfg.ModifyWindow)
	if !s.now().Before(deadline) {
		return apperrors.Forbidden(fmt.Sprintf(
			"Bookings can no longer be changed within %s of their start time",
			s.cfg.ModifyWindow,
		))
	}
	return nil
}

func (s *bookingService) sanitize(b *model.Booking) {
	b.Title = sanitizer.NormalizeTitle(b.Title)
	b.Description = sanitizer.TrimAndNormalize(b.Description)
}

func (s *bookingService) mergeBookingUpdates(existing *model.Booking, updates *model.BookingUpdate) *model.Booking {
	merged := *existing

	if updates.Title != "" {
		merged.Title = updates.Title
	}
	if updates.Description != nil {
		merged.Description = *updates.Description
	}
	if updates.Date != "" {
		merged.Date = updates.Date
	}
	if updates.StartTime != "" {
		merged.StartTime = updates.StartTime
	}
	if updates.EndTime != "" {
		merged.EndTime = updates.EndTime
	}

	return &merged
}

func (s *bookingService) slotChanged(existing, merged *model.Booking) bool {
	return existing.Date != merged.Date ||
		existing.StartTime != merged.StartTime ||
		existing.EndTime != merged.EndTime
}

func (s *bookingService) validate(booking *model.Booking) error {
	if err := s.validator.Validate(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}

// acquireSlotLock creates an advisory lock to prevent concurrent booking creation
// Returns the lock ID if successful, or conflict error if lock already exists
func (s *bookingService) acquireSlotLock(ctx context.Context, roomID, date, startTime string) (string, error) {
	lockID := fmt.Sprintf("booking_lock_%s_%s_%s", roomID, date, startTime)

	lock := &model.BookingLock{
		ID:        lockID,
		ExpiresAt: s.now().Add(s.cfg.SlotLockTTL),
	}

	_, err := s.lockRepo.Create(ctx, lock)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", apperrors.Conflict("This time slot is currently being booked by another request. Please try again.")
		}
		return "", apperrors.Internal("Failed to acquire booking lock", err)
	}

	return lockID, nil
}

// releaseSlotLock removes the advisory lock
func (s *bookingService) releaseSlotLock(ctx context.Context, lockID string) error {
	return s.lockRepo.Delete(ctx, lockID)
}
