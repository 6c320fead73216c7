// End-to-end tests against a running roombook instance. Set
// TEST_SERVER_URL (and start Mongo plus the service) to run them;
// without it the suite skips so unit runs stay hermetic.
package integrationtests

import (
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"roombook/pkg/client"
	"roombook/pkg/model"
)

const (
	adminID    = "admin-1"
	lecturerID = "lecturer-1"
)

func serverURL(t *testing.T) string {
	t.Helper()
	url := os.Getenv("TEST_SERVER_URL")
	if url == "" {
		t.Skip("TEST_SERVER_URL not set; skipping integration tests")
	}
	return url
}

func waitForServer(t *testing.T, url string) {
	t.Helper()
	c := client.NewHttpClient(url)
	if err := c.WaitForHealthy(30 * time.Second); err != nil {
		t.Fatalf("server at %s never became healthy: %v", url, err)
	}
}

func createTestRoom(t *testing.T, rooms *client.RoomClient) string {
	t.Helper()
	resp, err := rooms.Create(map[string]any{
		"name":      fmt.Sprintf("IT-%d", time.Now().UnixNano()%100000),
		"venue":     "Integration Hall",
		"building":  "T",
		"floor":     2,
		"capacity":  40,
		"type":      "lecture",
		"equipment": []string{"projector"},
	})
	if err != nil {
		t.Fatalf("create room request failed: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create room: status %d, body %s", resp.StatusCode, resp.Body)
	}

	var created struct {
		Data model.Room `json:"data"`
	}
	if err := resp.DecodeJSON(&created); err != nil {
		t.Fatalf("decode room: %v", err)
	}
	return created.Data.ID
}

// envelopes for the service's response wrappers

type bookingEnvelope struct {
	Data model.Booking `json:"data"`
}

type availabilityEnvelope struct {
	Data struct {
		Available bool `json:"available"`
	} `json:"data"`
}

type timetableEnvelope struct {
	Data struct {
		Slots []model.TimeSlot `json:"slots"`
	} `json:"data"`
}

func TestBookingLifecycle(t *testing.T) {
	url := serverURL(t)
	waitForServer(t, url)

	rooms := client.NewRoomClient(url).As(adminID, model.RoleAdmin)
	bookings := client.NewBookingClient(url).As(lecturerID, model.RoleLecturer)
	admin := client.NewBookingClient(url).As(adminID, model.RoleAdmin)

	roomID := createTestRoom(t, rooms)
	defer rooms.Delete(roomID)

	date := time.Now().AddDate(0, 0, 7).Format(model.DateLayout)

	// Slot must be free before anything is booked.
	resp, err := bookings.CheckAvailability(roomID, date, "09:00", "10:30")
	if err != nil {
		t.Fatalf("availability request failed: %v", err)
	}
	var avail availabilityEnvelope
	if err := resp.DecodeJSON(&avail); err != nil {
		t.Fatalf("decode availability: %v", err)
	}
	if !avail.Data.Available {
		t.Fatal("expected fresh room to be available")
	}

	// Book it.
	resp, err = bookings.Create(map[string]any{
		"room_id":    roomID,
		"title":      "Algorithms lecture",
		"date":       date,
		"start_time": "09:00",
		"end_time":   "10:30",
	})
	if err != nil {
		t.Fatalf("create booking request failed: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create booking: status %d, body %s", resp.StatusCode, resp.Body)
	}
	var created bookingEnvelope
	if err := resp.DecodeJSON(&created); err != nil {
		t.Fatalf("decode booking: %v", err)
	}
	booking := created.Data
	if booking.Status != model.StatusConfirmed {
		t.Errorf("expected confirmed booking, got %s", booking.Status)
	}
	defer admin.Delete(booking.ID)

	// Overlapping request must be rejected.
	resp, err = bookings.Create(map[string]any{
		"room_id":    roomID,
		"title":      "Clashing seminar",
		"date":       date,
		"start_time": "10:00",
		"end_time":   "11:00",
	})
	if err != nil {
		t.Fatalf("overlap request failed: %v", err)
	}
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("overlapping booking: expected 409, got %d (%s)", resp.StatusCode, client.GetErrorMessage(resp))
	}

	// Back-to-back is fine.
	resp, err = bookings.Create(map[string]any{
		"room_id":    roomID,
		"title":      "Following seminar",
		"date":       date,
		"start_time": "10:30",
		"end_time":   "11:30",
	})
	if err != nil {
		t.Fatalf("adjacent request failed: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("adjacent booking: expected 201, got %d (%s)", resp.StatusCode, client.GetErrorMessage(resp))
	}
	var adjacent bookingEnvelope
	if err := resp.DecodeJSON(&adjacent); err != nil {
		t.Fatalf("decode adjacent booking: %v", err)
	}
	defer admin.Delete(adjacent.Data.ID)

	// Timetable reflects both bookings.
	resp, err = rooms.Timetable(roomID, date)
	if err != nil {
		t.Fatalf("timetable request failed: %v", err)
	}
	var timetable timetableEnvelope
	if err := resp.DecodeJSON(&timetable); err != nil {
		t.Fatalf("decode timetable: %v", err)
	}
	busy := 0
	for _, slot := range timetable.Data.Slots {
		if !slot.Available {
			busy++
		}
	}
	if busy != 3 {
		t.Errorf("expected 3 busy hourly slots (09,10,11), got %d", busy)
	}

	// Cancel frees the slot.
	resp, err = bookings.Cancel(booking.ID)
	if err != nil {
		t.Fatalf("cancel request failed: %v", err)
	}
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("cancel: expected 204, got %d (%s)", resp.StatusCode, client.GetErrorMessage(resp))
	}

	resp, err = bookings.CheckAvailability(roomID, date, "09:00", "10:30")
	if err != nil {
		t.Fatalf("availability request failed: %v", err)
	}
	if err := resp.DecodeJSON(&avail); err != nil {
		t.Fatalf("decode availability: %v", err)
	}
	if !avail.Data.Available {
		t.Error("expected cancelled slot to be available again")
	}

	// Cancelling twice is a quiet no-op.
	resp, err = bookings.Cancel(booking.ID)
	if err != nil {
		t.Fatalf("second cancel request failed: %v", err)
	}
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("repeat cancel: expected 204, got %d", resp.StatusCode)
	}
}

func TestBookingOwnership(t *testing.T) {
	url := serverURL(t)
	waitForServer(t, url)

	rooms := client.NewRoomClient(url).As(adminID, model.RoleAdmin)
	owner := client.NewBookingClient(url).As(lecturerID, model.RoleLecturer)
	stranger := client.NewBookingClient(url).As("lecturer-2", model.RoleLecturer)
	admin := client.NewBookingClient(url).As(adminID, model.RoleAdmin)

	roomID := createTestRoom(t, rooms)
	defer rooms.Delete(roomID)

	date := time.Now().AddDate(0, 0, 7).Format(model.DateLayout)
	resp, err := owner.Create(map[string]any{
		"room_id":    roomID,
		"title":      "Private tutorial",
		"date":       date,
		"start_time": "14:00",
		"end_time":   "15:00",
	})
	if err != nil {
		t.Fatalf("create request failed: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: status %d, body %s", resp.StatusCode, resp.Body)
	}
	var created bookingEnvelope
	if err := resp.DecodeJSON(&created); err != nil {
		t.Fatalf("decode booking: %v", err)
	}
	booking := created.Data
	defer admin.Delete(booking.ID)

	// Someone else can neither modify nor cancel it.
	resp, err = stranger.Update(booking.ID, map[string]any{"title": "Taken over"})
	if err != nil {
		t.Fatalf("stranger update request failed: %v", err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("stranger update: expected 403, got %d", resp.StatusCode)
	}

	resp, err = stranger.Cancel(booking.ID)
	if err != nil {
		t.Fatalf("stranger cancel request failed: %v", err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("stranger cancel: expected 403, got %d", resp.StatusCode)
	}

	// Deletion stays admin-only.
	resp, err = owner.Delete(booking.ID)
	if err != nil {
		t.Fatalf("owner delete request failed: %v", err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("owner delete: expected 403, got %d", resp.StatusCode)
	}
}

func TestRoomSearchWithAvailability(t *testing.T) {
	url := serverURL(t)
	waitForServer(t, url)

	rooms := client.NewRoomClient(url).As(adminID, model.RoleAdmin)
	bookings := client.NewBookingClient(url).As(lecturerID, model.RoleLecturer)

	roomID := createTestRoom(t, rooms)
	defer rooms.Delete(roomID)

	date := time.Now().AddDate(0, 0, 7).Format(model.DateLayout)
	resp, err := bookings.Create(map[string]any{
		"room_id":    roomID,
		"title":      "Blocking lecture",
		"date":       date,
		"start_time": "09:00",
		"end_time":   "12:00",
	})
	if err != nil {
		t.Fatalf("create request failed: %v", err)
	}
	var created bookingEnvelope
	if err := resp.DecodeJSON(&created); err != nil {
		t.Fatalf("decode booking: %v", err)
	}
	defer client.NewBookingClient(url).As(adminID, model.RoleAdmin).Delete(created.Data.ID)

	// Searching the booked window must not return the room.
	resp, err = rooms.Search(0, "", "T", "", date, "09:00", "10:00")
	if err != nil {
		t.Fatalf("search request failed: %v", err)
	}
	var page struct {
		Data []model.Room `json:"data"`
	}
	if err := resp.DecodeJSON(&page); err != nil {
		t.Fatalf("decode search page: %v", err)
	}
	for _, r := range page.Data {
		if r.ID == roomID {
			t.Error("booked room must not appear in availability search")
		}
	}

	// The free afternoon window does return it.
	resp, err = rooms.Search(0, "", "T", "", date, "13:00", "14:00")
	if err != nil {
		t.Fatalf("search request failed: %v", err)
	}
	if err := resp.DecodeJSON(&page); err != nil {
		t.Fatalf("decode search page: %v", err)
	}
	found := false
	for _, r := range page.Data {
		if r.ID == roomID {
			found = true
		}
	}
	if !found {
		t.Error("free room should appear in availability search")
	}
}
