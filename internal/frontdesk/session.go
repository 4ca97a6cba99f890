// Package frontdesk drives the staff-facing reservation screen: pick a
// facility and a day, see the half-hour grid, select a free slot and submit.
package frontdesk

import (
	"context"
	"errors"
	"time"

	"campusbook/pkg/logger"
	"campusbook/pkg/model"
	"campusbook/pkg/slotgrid"
)

var (
	ErrNoFacility  = errors.New("no facility selected")
	ErrNoDate      = errors.New("no date selected")
	ErrNoSelection = errors.New("no slot selected")

	ErrSlotUnavailable = errors.New("slot is not available")
)

// Session holds one desk operator's view of a facility's day. It is not
// safe for concurrent use; each desk terminal owns its own session.
type Session struct {
	api API
	log *logger.Logger

	// now is swappable so grid classification stays testable.
	now func() time.Time

	facilityID string
	date       model.Date
	selected   string
	bookings   []model.Booking
}

func NewSession(api API, log *logger.Logger) *Session {
	return &Session{
		api: api,
		log: log,
		now: time.Now,
	}
}

// SetFacility switches the session to a facility and reloads its day.
// Any pending selection is dropped.
func (s *Session) SetFacility(ctx context.Context, facilityID string) error {
	if facilityID == "" {
		return ErrNoFacility
	}
	s.facilityID = facilityID
	s.selected = ""
	if s.date == "" {
		s.bookings = nil
		return nil
	}
	return s.Refresh(ctx)
}

// SetDate switches the session to a calendar day and reloads it.
// Any pending selection is dropped.
func (s *Session) SetDate(ctx context.Context, date model.Date) error {
	if !date.Valid() {
		return ErrNoDate
	}
	s.date = date
	s.selected = ""
	if s.facilityID == "" {
		s.bookings = nil
		return nil
	}
	return s.Refresh(ctx)
}

// Refresh re-reads the selected day's bookings from the server.
func (s *Session) Refresh(ctx context.Context) error {
	if s.facilityID == "" {
		return ErrNoFacility
	}
	if s.date == "" {
		return ErrNoDate
	}

	fetched, err := s.api.DayBookings(ctx, s.facilityID, s.date)
	if err != nil {
		return err
	}

	bookings := make([]model.Booking, 0, len(fetched))
	for _, b := range fetched {
		bookings = append(bookings, *b)
	}
	s.bookings = bookings
	return nil
}

// Facilities lists the facilities available to the picker.
func (s *Session) Facilities(ctx context.Context) ([]*model.Facility, error) {
	return s.api.Facilities(ctx)
}

// Grid projects the loaded day onto the fixed slot grid. It returns nil
// until both a facility and a date are set.
func (s *Session) Grid() []slotgrid.Slot {
	if s.facilityID == "" || s.date == "" {
		return nil
	}
	return slotgrid.Classify(s.date, s.bookings, s.selected, s.now())
}

// Select marks a slot for submission. Selecting a booked or past slot is
// refused and the current selection is kept; selecting the already selected
// slot deselects it.
func (s *Session) Select(slotID string) error {
	if slotID == s.selected {
		s.selected = ""
		return nil
	}
	for _, slot := range s.Grid() {
		if slot.ID != slotID {
			continue
		}
		if !slot.Bookable() {
			return ErrSlotUnavailable
		}
		s.selected = slotID
		return nil
	}
	return ErrSlotUnavailable
}

// Clear drops the pending selection.
func (s *Session) Clear() {
	s.selected = ""
}

// Selected returns the pending slot id, empty when nothing is selected.
func (s *Session) Selected() string {
	return s.selected
}

// Submit books the selected slot for the user. On conflict the selection
// is dropped and the day reloaded so the grid shows who won; the caller
// decides whether to pick another slot. There is no automatic retry.
func (s *Session) Submit(ctx context.Context, userID string) (*model.Booking, error) {
	if s.selected == "" {
		return nil, ErrNoSelection
	}

	var slot *slotgrid.Slot
	for _, candidate := range s.Grid() {
		if candidate.ID == s.selected {
			slot = &candidate
			break
		}
	}
	if slot == nil || !slot.Bookable() {
		s.selected = ""
		return nil, ErrSlotUnavailable
	}

	booking := &model.Booking{
		FacilityID: s.facilityID,
		UserID:     userID,
		Date:       s.date,
		StartTime:  slot.Start,
		EndTime:    slot.End,
	}

	created, err := s.api.CreateBooking(ctx, booking)
	if err != nil {
		if errors.Is(err, ErrConflict) {
			s.log.Warn("Slot taken before submission",
				"facility_id", s.facilityID,
				"date", s.date,
				"slot", s.selected,
			)
			s.selected = ""
			if refreshErr := s.Refresh(ctx); refreshErr != nil {
				s.log.Error("Failed to refresh after conflict", "error", refreshErr)
			}
		}
		return nil, err
	}

	s.log.Info("Booking submitted",
		"booking_id", created.ID,
		"facility_id", created.FacilityID,
		"date", created.Date,
		"start_time", created.StartTime,
	)
	s.selected = ""
	if err := s.Refresh(ctx); err != nil {
		s.log.Error("Failed to refresh after booking", "error", err)
	}
	return created, nil
}

// Cancel cancels a booking and reloads the day.
func (s *Session) Cancel(ctx context.Context, bookingID string) error {
	if err := s.api.CancelBooking(ctx, bookingID); err != nil {
		return err
	}
	if s.facilityID != "" && s.date != "" {
		if err := s.Refresh(ctx); err != nil {
			s.log.Error("Failed to refresh after cancellation", "error", err)
		}
	}
	return nil
}
