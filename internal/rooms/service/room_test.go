package service

import (
	"context"
	"testing"

	roomserrors "roombook/internal/rooms/errors"
	"roombook/internal/rooms/validator"
	"roombook/pkg/config"
	apperrors "roombook/pkg/errors"
	"roombook/pkg/logger"
	"roombook/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

type mockRoomRepository struct {
	createFunc   func(ctx context.Context, room *model.Room) error
	findByIDFunc func(ctx context.Context, id string) (*model.Room, error)
	findAllFunc  func(ctx context.Context, filter model.RoomFilter, limit int, offset int64) ([]*model.Room, error)
	countFunc    func(ctx context.Context, filter model.RoomFilter) (int64, error)
	updateFunc   func(ctx context.Context, id string, room *model.Room) (*mongo.UpdateResult, error)
	deleteFunc   func(ctx context.Context, id string) error
}

func (m *mockRoomRepository) Create(ctx context.Context, room *model.Room) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, room)
	}
	room.ID = "64a0000000000000000000a1"
	return nil
}

func (m *mockRoomRepository) FindByID(ctx context.Context, id string) (*model.Room, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return &model.Room{ID: id, Name: "A-101", Venue: "Science Park", Building: "A", Capacity: 30, Type: "lecture"}, nil
}

func (m *mockRoomRepository) FindAll(ctx context.Context, filter model.RoomFilter, limit int, offset int64) ([]*model.Room, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, filter, limit, offset)
	}
	return []*model.Room{}, nil
}

func (m *mockRoomRepository) Count(ctx context.Context, filter model.RoomFilter) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx, filter)
	}
	return 0, nil
}

func (m *mockRoomRepository) Update(ctx context.Context, id string, room *model.Room) (*mongo.UpdateResult, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, room)
	}
	return &mongo.UpdateResult{MatchedCount: 1}, nil
}

func (m *mockRoomRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

type mockBookingFinder struct {
	findFunc func(ctx context.Context, roomID string, date string) ([]*model.Booking, error)
}

func (m *mockBookingFinder) FindByRoomAndDate(ctx context.Context, roomID string, date string) ([]*model.Booking, error) {
	if m.findFunc != nil {
		return m.findFunc(ctx, roomID, date)
	}
	return []*model.Booking{}, nil
}

func newTestService(repo *mockRoomRepository, bookings *mockBookingFinder) *roomService {
	log := logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	})
	cfg := &config.Config{
		Log:                 log,
		TimetableStartOfDay: "08:00",
		TimetableEndOfDay:   "18:00",
		TimetableSlotMin:    60,
	}
	return &roomService{
		repo:      repo,
		bookings:  bookings,
		validator: validator.NewRoomValidator(log),
		cfg:       cfg,
	}
}

func TestCreate_ValidatesBeforePersistence(t *testing.T) {
	created := false
	repo := &mockRoomRepository{
		createFunc: func(ctx context.Context, room *model.Room) error {
			created = true
			return nil
		},
	}
	svc := newTestService(repo, &mockBookingFinder{})

	room := &model.Room{Name: "A", Venue: "Science Park", Building: "A", Capacity: 30, Type: "lecture"}
	err := svc.Create(context.Background(), room)
	if err == nil {
		t.Fatal("expected validation error for one-character name")
	}
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if created {
		t.Error("room must not be persisted when validation fails")
	}
}

func TestCreate_SanitizesInput(t *testing.T) {
	var persisted *model.Room
	repo := &mockRoomRepository{
		createFunc: func(ctx context.Context, room *model.Room) error {
			persisted = room
			return nil
		},
	}
	svc := newTestService(repo, &mockBookingFinder{})

	room := &model.Room{
		Name:      "  A-101  ",
		Venue:     "Science  Park",
		Building:  " A ",
		Capacity:  30,
		Type:      "lecture",
		Equipment: []string{"Projector", " projector ", "Whiteboard"},
	}
	if err := svc.Create(context.Background(), room); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if persisted.Name != "A-101" || persisted.Venue != "Science Park" || persisted.Building != "A" {
		t.Errorf("expected normalized fields, got %q %q %q", persisted.Name, persisted.Venue, persisted.Building)
	}
	if len(persisted.Equipment) != 2 {
		t.Errorf("expected duplicate equipment collapsed, got %v", persisted.Equipment)
	}
}

func TestSearch_AvailabilityWindowFiltersBusyRooms(t *testing.T) {
	rooms := []*model.Room{
		{ID: "room-free", Name: "A-101", Venue: "Science Park", Building: "A", Capacity: 30, Type: "lecture"},
		{ID: "room-busy", Name: "A-102", Venue: "Science Park", Building: "A", Capacity: 30, Type: "lecture"},
	}
	repo := &mockRoomRepository{
		findAllFunc: func(ctx context.Context, filter model.RoomFilter, limit int, offset int64) ([]*model.Room, error) {
			return rooms, nil
		},
		countFunc: func(ctx context.Context, filter model.RoomFilter) (int64, error) {
			return 2, nil
		},
	}
	bookings := &mockBookingFinder{
		findFunc: func(ctx context.Context, roomID string, date string) ([]*model.Booking, error) {
			if roomID == "room-busy" {
				return []*model.Booking{
					{ID: "b1", StartTime: "09:00", EndTime: "10:30", Status: model.StatusConfirmed},
				}, nil
			}
			return []*model.Booking{}, nil
		},
	}
	svc := newTestService(repo, bookings)

	window := AvailabilityWindow{Date: "2024-08-05", StartTime: "10:00", EndTime: "11:00"}
	got, total, err := svc.Search(context.Background(), model.RoomFilter{}, window, 100, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 2 {
		t.Errorf("expected total of 2 attribute matches, got %d", total)
	}
	if len(got) != 1 || got[0].ID != "room-free" {
		t.Fatalf("expected only room-free to remain, got %v", got)
	}
}

func TestSearch_InvalidWindowRejected(t *testing.T) {
	svc := newTestService(&mockRoomRepository{}, &mockBookingFinder{})

	window := AvailabilityWindow{Date: "2024-08-05", StartTime: "11:00", EndTime: "10:00"}
	_, _, err := svc.Search(context.Background(), model.RoomFilter{}, window, 100, 0)
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeInvalidInput {
		t.Fatalf("expected invalid input error, got %v", err)
	}
}

func TestUpdate_MergesPartialPatch(t *testing.T) {
	existing := &model.Room{
		ID: "64a0000000000000000000a1", Name: "A-101", Venue: "Science Park",
		Building: "A", Floor: 1, Capacity: 30, Type: "lecture",
	}
	var persisted *model.Room
	repo := &mockRoomRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Room, error) {
			return existing, nil
		},
		updateFunc: func(ctx context.Context, id string, room *model.Room) (*mongo.UpdateResult, error) {
			persisted = room
			return &mongo.UpdateResult{MatchedCount: 1}, nil
		},
	}
	svc := newTestService(repo, &mockBookingFinder{})

	capacity := 45
	err := svc.Update(context.Background(), existing.ID, &model.RoomUpdate{Capacity: &capacity})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if persisted.Capacity != 45 {
		t.Errorf("expected capacity 45, got %d", persisted.Capacity)
	}
	if persisted.Name != "A-101" || persisted.Type != "lecture" {
		t.Error("untouched fields must survive the merge")
	}
}

func TestGetByID_MapsRepositoryErrors(t *testing.T) {
	tests := []struct {
		name     string
		repoErr  error
		wantCode string
	}{
		{"not found", roomserrors.ErrNotFound, apperrors.CodeNotFound},
		{"invalid id", roomserrors.ErrInvalidID, apperrors.CodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockRoomRepository{
				findByIDFunc: func(ctx context.Context, id string) (*model.Room, error) {
					return nil, tt.repoErr
				},
			}
			svc := newTestService(repo, &mockBookingFinder{})

			_, err := svc.GetByID(context.Background(), "whatever")
			appErr := apperrors.AsAppError(err)
			if appErr == nil || appErr.Code != tt.wantCode {
				t.Fatalf("expected %s, got %v", tt.wantCode, err)
			}
		})
	}
}

func TestTimetable_MarksOccupiedSlots(t *testing.T) {
	bookings := &mockBookingFinder{
		findFunc: func(ctx context.Context, roomID string, date string) ([]*model.Booking, error) {
			return []*model.Booking{
				{ID: "b1", StartTime: "09:00", EndTime: "10:30", Status: model.StatusConfirmed},
			}, nil
		},
	}
	svc := newTestService(&mockRoomRepository{}, bookings)

	slots, err := svc.Timetable(context.Background(), "64a0000000000000000000a1", "2024-08-05")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 10 {
		t.Fatalf("expected 10 hourly slots between 08:00 and 18:00, got %d", len(slots))
	}
	if slots[0].Available != true {
		t.Error("08:00 slot should be free")
	}
	if slots[1].Available || slots[2].Available {
		t.Error("expected 09:00 and 10:00 slots to be blocked")
	}
}

func TestTimetable_RejectsBadDate(t *testing.T) {
	svc := newTestService(&mockRoomRepository{}, &mockBookingFinder{})
	_, err := svc.Timetable(context.Background(), "64a0000000000000000000a1", "05-08-2024")
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeInvalidInput {
		t.Fatalf("expected invalid input error, got %v", err)
	}
}
