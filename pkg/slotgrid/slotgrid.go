// Package slotgrid projects a day's bookings onto the fixed half-hour
// reservation grid. The grid spans the booking day, one slot per half
// hour, and every slot carries exactly one status.
package slotgrid

import (
	"fmt"
	"time"

	"campusbook/pkg/config"
	"campusbook/pkg/model"
)

// Status classifies a single slot on the grid.
type Status string

const (
	StatusAvailable Status = "available"
	StatusBooked    Status = "booked"
	StatusPast      Status = "past"
	StatusSelected  Status = "selected"
)

// Slot is one half-hour cell of the grid.
type Slot struct {
	ID     string          `json:"id"` // "HH:MM" of the slot start
	Start  model.ClockTime `json:"start_time"`
	End    model.ClockTime `json:"end_time"`
	Label  string          `json:"label"` // 12-hour display label, e.g. "8:00 AM"
	Status Status          `json:"status"`
}

// Bookable reports whether the slot can be picked for a new booking.
func (s Slot) Bookable() bool {
	return s.Status == StatusAvailable || s.Status == StatusSelected
}

// DaySlots returns the full grid for one day, every slot available.
// Slots run from the start of the booking day to its end in fixed
// steps; the last slot starts at the day end and runs one step past it.
func DaySlots() []Slot {
	dayStart, _ := model.ParseClockTime(config.DayStart)
	dayEnd, _ := model.ParseClockTime(config.DayEnd)

	slots := make([]Slot, 0, 25)
	for at := dayStart; at <= dayEnd; at = at.Add(config.SlotDuration) {
		slots = append(slots, Slot{
			ID:     at.Short(),
			Start:  at,
			End:    at.Add(config.SlotDuration),
			Label:  label(at),
			Status: StatusAvailable,
		})
	}
	return slots
}

// Classify returns the grid for date with every slot assigned a status.
// Precedence is past, then booked, then selected; a selection on a slot
// that turns out booked or past is silently ignored. Only active
// bookings occupy slots.
func Classify(date model.Date, bookings []model.Booking, selectedID string, now time.Time) []Slot {
	slots := DaySlots()
	today := model.DateOf(now)
	clock := model.ClockOf(now)

	for i := range slots {
		slot := &slots[i]

		if isPast(date, today, slot.Start, clock) {
			slot.Status = StatusPast
			continue
		}

		if isBooked(date, bookings, slot) {
			slot.Status = StatusBooked
			continue
		}

		if slot.ID == selectedID {
			slot.Status = StatusSelected
		}
	}

	return slots
}

// isPast reports whether the slot's start has already been reached.
func isPast(date, today model.Date, start, clock model.ClockTime) bool {
	if date < today {
		return true
	}
	return date == today && start <= clock
}

func isBooked(date model.Date, bookings []model.Booking, slot *Slot) bool {
	for _, b := range bookings {
		if !b.Active() || b.Date != date {
			continue
		}
		if b.OverlapsInterval(slot.Start, slot.End) {
			return true
		}
	}
	return false
}

// label renders the 12-hour display form of a slot start, e.g. "8:00 AM",
// "12:30 PM", "8:00 PM".
func label(at model.ClockTime) string {
	h, m := at.HourMinute()
	suffix := "AM"
	if h >= 12 {
		suffix = "PM"
	}
	h12 := h % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%d:%02d %s", h12, m, suffix)
}
