package service

import (
	"context"
	"errors"
	"sync"

	"roombook/internal/availability"
	roomserrors "roombook/internal/rooms/errors"
	"roombook/internal/rooms/repository"
	"roombook/internal/rooms/validator"
	"roombook/pkg/config"
	apperrors "roombook/pkg/errors"
	"roombook/pkg/model"
	"roombook/pkg/sanitizer"
)

// BookingFinder is the slice of the bookings domain this service
// needs for availability search and timetables. Wired to the bookings
// repository in main.
type BookingFinder interface {
	FindByRoomAndDate(ctx context.Context, roomID string, date string) ([]*model.Booking, error)
}

// AvailabilityWindow is an optional search constraint: only rooms free
// for the whole of [StartTime, EndTime) on Date are returned.
type AvailabilityWindow struct {
	Date      string
	StartTime string
	EndTime   string
}

func (w AvailabilityWindow) IsZero() bool {
	return w.Date == "" && w.StartTime == "" && w.EndTime == ""
}

type RoomService interface {
	Create(ctx context.Context, room *model.Room) error
	GetByID(ctx context.Context, id string) (*model.Room, error)
	Search(ctx context.Context, filter model.RoomFilter, window AvailabilityWindow, limit int, offset int64) ([]*model.Room, int64, error)
	Update(ctx context.Context, id string, updates *model.RoomUpdate) error
	Delete(ctx context.Context, id string) error
	Timetable(ctx context.Context, id string, date string) ([]model.TimeSlot, error)
}

type roomService struct {
	repo      repository.RoomRepository
	bookings  BookingFinder
	validator *validator.RoomValidator
	cfg       *config.Config
}

func NewRoomService(
	repo repository.RoomRepository,
	bookings BookingFinder,
	validator *validator.RoomValidator,
	cfg *config.Config,
) RoomService {
	return &roomService{
		repo:      repo,
		bookings:  bookings,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *roomService) Create(ctx context.Context, room *model.Room) error {
	s.sanitize(room)
	if err := s.validate(room); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, room); err != nil {
		s.cfg.Log.Error("Failed to create room", "error", err)
		return apperrors.Internal("Failed to create room", err)
	}

	s.cfg.Log.Info("Room created successfully",
		"id", room.ID,
		"name", room.Name,
		"building", room.Building,
	)
	return nil
}

func (s *roomService) GetByID(ctx context.Context, id string) (*model.Room, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Room ID cannot be empty")
	}

	room, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, roomserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Room", id)
		}
		if errors.Is(err, roomserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid room ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve room", err)
	}

	return room, nil
}

func (s *roomService) Search(ctx context.Context, filter model.RoomFilter, window AvailabilityWindow, limit int, offset int64) ([]*model.Room, int64, error) {
	if !window.IsZero() {
		if err := validateWindow(window); err != nil {
			return nil, 0, err
		}
	}

	var count int64
	var rooms []*model.Room
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx, filter)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count rooms", "error", errCount)
			errCount = apperrors.Internal("Failed to count rooms", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		rooms, errFind = s.repo.FindAll(ctx, filter, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list rooms", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve rooms", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	if window.IsZero() {
		return rooms, count, nil
	}

	// Availability filtering happens on the paginated page, so the
	// total still counts attribute matches only. Filtering the whole
	// collection per request would defeat pagination.
	free, err := s.filterAvailable(ctx, rooms, window)
	if err != nil {
		return nil, 0, err
	}
	return free, count, nil
}

func (s *roomService) Update(ctx context.Context, id string, updates *model.RoomUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Room ID cannot be empty")
	}
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Room update validation failed", "id", id, "error", err)
		return apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	merged := s.mergeRoomUpdates(existing, updates)
	s.sanitize(merged)
	if err := s.validate(merged); err != nil {
		return err
	}

	if _, err := s.repo.Update(ctx, id, merged); err != nil {
		if errors.Is(err, roomserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Room", id)
		}
		s.cfg.Log.Error("Failed to update room", "id", id, "error", err)
		return apperrors.Internal("Failed to update room", err)
	}

	s.cfg.Log.Info("Room updated successfully", "id", id)
	return nil
}

func (s *roomService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Room ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, roomserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Room", id)
		}
		if errors.Is(err, roomserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid room ID format")
		}
		return apperrors.Internal("Failed to delete room", err)
	}

	s.cfg.Log.Info("Room deleted successfully", "id", id)
	return nil
}

// Timetable renders one room-day as fixed slots between the configured
// opening hours.
func (s *roomService) Timetable(ctx context.Context, id string, date string) ([]model.TimeSlot, error) {
	if !model.IsDate(date) {
		return nil, apperrors.InvalidInput("Date must be in YYYY-MM-DD format")
	}
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}

	bookings, err := s.bookings.FindByRoomAndDate(ctx, id, date)
	if err != nil {
		s.cfg.Log.Error("Failed to load bookings for timetable", "room_id", id, "date", date, "error", err)
		return nil, apperrors.Internal("Failed to build timetable", err)
	}

	slots, err := availability.Slots(bookings, s.cfg.TimetableStartOfDay, s.cfg.TimetableEndOfDay, s.cfg.TimetableSlotMin)
	if err != nil {
		return nil, apperrors.Internal("Failed to build timetable", err)
	}
	return slots, nil
}

// --- Helpers ---

func (s *roomService) sanitize(room *model.Room) {
	room.Name = sanitizer.NormalizeName(room.Name)
	room.Venue = sanitizer.NormalizeName(room.Venue)
	room.Building = sanitizer.NormalizeBuilding(room.Building)
	room.Location = sanitizer.TrimAndNormalize(room.Location)
	room.Equipment = sanitizer.SanitizeSlice(room.Equipment, sanitizer.NormalizeEquipmentLabel)
}

func (s *roomService) mergeRoomUpdates(existing *model.Room, updates *model.RoomUpdate) *model.Room {
	merged := *existing

	if updates.Name != "" {
		merged.Name = updates.Name
	}
	if updates.Venue != "" {
		merged.Venue = updates.Venue
	}
	if updates.Building != "" {
		merged.Building = updates.Building
	}
	if updates.Location != nil {
		merged.Location = *updates.Location
	}
	if updates.Floor != nil {
		merged.Floor = *updates.Floor
	}
	if updates.Capacity != nil {
		merged.Capacity = *updates.Capacity
	}
	if updates.Type != "" {
		merged.Type = updates.Type
	}
	if updates.Equipment != nil {
		merged.Equipment = *updates.Equipment
	}

	return &merged
}

func (s *roomService) validate(room *model.Room) error {
	if err := s.validator.Validate(room); err != nil {
		s.cfg.Log.Warn("Room validation failed", "error", err)
		return apperrors.Validation("Room validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}

func (s *roomService) filterAvailable(ctx context.Context, rooms []*model.Room, window AvailabilityWindow) ([]*model.Room, error) {
	free := make([]*model.Room, 0, len(rooms))
	for _, room := range rooms {
		bookings, err := s.bookings.FindByRoomAndDate(ctx, room.ID, window.Date)
		if err != nil {
			s.cfg.Log.Error("Failed to load bookings for availability search", "room_id", room.ID, "error", err)
			return nil, apperrors.Internal("Failed to check room availability", err)
		}
		conflict, err := availability.FirstConflict(bookings, "", window.StartTime, window.EndTime)
		if err != nil {
			return nil, apperrors.Internal("Failed to evaluate room availability", err)
		}
		if conflict == nil {
			free = append(free, room)
		}
	}
	return free, nil
}

func validateWindow(window AvailabilityWindow) error {
	if !model.IsDate(window.Date) {
		return apperrors.InvalidInput("Date must be in YYYY-MM-DD format")
	}
	if !model.IsTimeOfDay(window.StartTime) || !model.IsTimeOfDay(window.EndTime) {
		return apperrors.InvalidInput("Start and end times must be in HH:MM format")
	}
	startMin, _ := model.MinutesOfDay(window.StartTime)
	endMin, _ := model.MinutesOfDay(window.EndTime)
	if startMin >= endMin {
		return apperrors.InvalidInput("End time must be after start time")
	}
	return nil
}
