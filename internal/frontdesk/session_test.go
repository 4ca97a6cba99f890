package frontdesk

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"campusbook/pkg/logger"
	"campusbook/pkg/model"
	"campusbook/pkg/slotgrid"
)

// Fake API backed by an in-memory booking list.
type fakeAPI struct {
	bookings    []*model.Booking
	createErr   error
	nextID      int
	dayRequests int
}

func (f *fakeAPI) Facilities(ctx context.Context) ([]*model.Facility, error) {
	return []*model.Facility{
		{ID: "f1", Name: "Main Gymnasium", Location: "North Campus", Capacity: 50},
	}, nil
}

func (f *fakeAPI) DayBookings(ctx context.Context, facilityID string, date model.Date) ([]*model.Booking, error) {
	f.dayRequests++
	var out []*model.Booking
	for _, b := range f.bookings {
		if b.FacilityID == facilityID && b.Date == date {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeAPI) CreateBooking(ctx context.Context, booking *model.Booking) (*model.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	for _, b := range f.bookings {
		if b.FacilityID == booking.FacilityID && b.Date == booking.Date &&
			b.Active() && b.OverlapsInterval(booking.StartTime, booking.EndTime) {
			return nil, fmt.Errorf("%w: Booking conflict detected", ErrConflict)
		}
	}
	f.nextID++
	created := *booking
	created.ID = fmt.Sprintf("booking-%d", f.nextID)
	created.Status = model.StatusConfirmed
	f.bookings = append(f.bookings, &created)
	return &created, nil
}

func (f *fakeAPI) CancelBooking(ctx context.Context, id string) error {
	for _, b := range f.bookings {
		if b.ID == id {
			b.Status = model.StatusCancelled
			return nil
		}
	}
	return errors.New("booking not found")
}

func newTestSession(t *testing.T, api *fakeAPI) *Session {
	t.Helper()
	log := logger.New(logger.Config{
		Level:   "error",
		Format:  "json",
		Service: "test",
	})
	s := NewSession(api, log)
	s.now = func() time.Time {
		// Noon the day before the grid date, so 2026-03-02 has no past slots.
		return time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local)
	}

	if err := s.SetFacility(context.Background(), "f1"); err != nil {
		t.Fatalf("SetFacility: %v", err)
	}
	if err := s.SetDate(context.Background(), "2026-03-02"); err != nil {
		t.Fatalf("SetDate: %v", err)
	}
	return s
}

func gridStatus(t *testing.T, s *Session, slotID string) slotgrid.Status {
	t.Helper()
	for _, slot := range s.Grid() {
		if slot.ID == slotID {
			return slot.Status
		}
	}
	t.Fatalf("slot %s not on grid", slotID)
	return ""
}

func TestSessionGridReflectsBookings(t *testing.T) {
	api := &fakeAPI{
		bookings: []*model.Booking{
			{ID: "b1", FacilityID: "f1", Date: "2026-03-02", StartTime: "10:00:00", EndTime: "11:00:00", Status: model.StatusConfirmed},
		},
	}
	s := newTestSession(t, api)

	if got := gridStatus(t, s, "10:00"); got != slotgrid.StatusBooked {
		t.Errorf("expected 10:00 booked, got %s", got)
	}
	if got := gridStatus(t, s, "10:30"); got != slotgrid.StatusBooked {
		t.Errorf("expected 10:30 booked, got %s", got)
	}
	if got := gridStatus(t, s, "11:00"); got != slotgrid.StatusAvailable {
		t.Errorf("expected 11:00 available, got %s", got)
	}
}

func TestSessionSelect(t *testing.T) {
	api := &fakeAPI{
		bookings: []*model.Booking{
			{ID: "b1", FacilityID: "f1", Date: "2026-03-02", StartTime: "10:00:00", EndTime: "10:30:00", Status: model.StatusConfirmed},
		},
	}
	s := newTestSession(t, api)

	if err := s.Select("12:00"); err != nil {
		t.Fatalf("selecting a free slot: %v", err)
	}
	if got := gridStatus(t, s, "12:00"); got != slotgrid.StatusSelected {
		t.Errorf("expected 12:00 selected, got %s", got)
	}

	if err := s.Select("10:00"); !errors.Is(err, ErrSlotUnavailable) {
		t.Errorf("selecting a booked slot: expected ErrSlotUnavailable, got %v", err)
	}
	if s.Selected() != "12:00" {
		t.Errorf("failed select must keep previous selection, got %q", s.Selected())
	}

	if err := s.Select("99:99"); !errors.Is(err, ErrSlotUnavailable) {
		t.Errorf("selecting an unknown slot: expected ErrSlotUnavailable, got %v", err)
	}

	// Selecting the selected slot again toggles it off.
	if err := s.Select("12:00"); err != nil {
		t.Fatalf("reselecting the selected slot: %v", err)
	}
	if s.Selected() != "" {
		t.Errorf("expected reselection to deselect, got %q", s.Selected())
	}

	if err := s.Select("12:00"); err != nil {
		t.Fatalf("selecting again after toggle: %v", err)
	}
	s.Clear()
	if s.Selected() != "" {
		t.Errorf("expected cleared selection, got %q", s.Selected())
	}
}

func TestSessionSelectPastSlot(t *testing.T) {
	api := &fakeAPI{}
	s := newTestSession(t, api)
	// Same-day session: everything before noon is gone.
	if err := s.SetDate(context.Background(), "2026-03-01"); err != nil {
		t.Fatalf("SetDate: %v", err)
	}

	if err := s.Select("09:00"); !errors.Is(err, ErrSlotUnavailable) {
		t.Errorf("selecting a past slot: expected ErrSlotUnavailable, got %v", err)
	}
	if err := s.Select("14:00"); err != nil {
		t.Errorf("selecting a future slot on the same day: %v", err)
	}
}

func TestSessionSubmit(t *testing.T) {
	api := &fakeAPI{}
	s := newTestSession(t, api)

	if _, err := s.Submit(context.Background(), "u1"); !errors.Is(err, ErrNoSelection) {
		t.Fatalf("expected ErrNoSelection, got %v", err)
	}

	if err := s.Select("14:00"); err != nil {
		t.Fatalf("Select: %v", err)
	}
	booking, err := s.Submit(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if booking.StartTime != "14:00:00" || booking.EndTime != "14:30:00" {
		t.Errorf("unexpected booking interval: %s - %s", booking.StartTime, booking.EndTime)
	}
	if s.Selected() != "" {
		t.Errorf("selection must clear after submit, got %q", s.Selected())
	}
	if got := gridStatus(t, s, "14:00"); got != slotgrid.StatusBooked {
		t.Errorf("expected 14:00 booked after submit, got %s", got)
	}
}

func TestSessionSubmitConflict(t *testing.T) {
	api := &fakeAPI{}
	s := newTestSession(t, api)

	if err := s.Select("15:00"); err != nil {
		t.Fatalf("Select: %v", err)
	}

	// Another desk takes the slot between refresh and submit.
	api.bookings = append(api.bookings, &model.Booking{
		ID: "rival", FacilityID: "f1", Date: "2026-03-02",
		StartTime: "15:00:00", EndTime: "15:30:00", Status: model.StatusConfirmed,
	})

	_, err := s.Submit(context.Background(), "u1")
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	if s.Selected() != "" {
		t.Errorf("conflicting submit must drop the selection, got %q", s.Selected())
	}
	if got := gridStatus(t, s, "15:00"); got != slotgrid.StatusBooked {
		t.Errorf("grid must show the winner after conflict, got %s", got)
	}
}

func TestSessionCancelFreesSlot(t *testing.T) {
	api := &fakeAPI{
		bookings: []*model.Booking{
			{ID: "b1", FacilityID: "f1", Date: "2026-03-02", StartTime: "10:00:00", EndTime: "10:30:00", Status: model.StatusConfirmed},
		},
	}
	s := newTestSession(t, api)

	if err := s.Cancel(context.Background(), "b1"); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if got := gridStatus(t, s, "10:00"); got != slotgrid.StatusAvailable {
		t.Errorf("expected 10:00 available after cancel, got %s", got)
	}
}

func TestSessionDateSwitchDropsSelection(t *testing.T) {
	api := &fakeAPI{}
	s := newTestSession(t, api)

	if err := s.Select("14:00"); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if err := s.SetDate(context.Background(), "2026-03-03"); err != nil {
		t.Fatalf("SetDate: %v", err)
	}
	if s.Selected() != "" {
		t.Errorf("switching the day must drop the selection, got %q", s.Selected())
	}
}
