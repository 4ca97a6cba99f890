package testutil

import (
	"time"

	"campusbook/pkg/model"
)

// BookingBuilder assembles booking request bodies for API tests.
type BookingBuilder struct {
	booking model.Booking
}

func NewBookingBuilder(facilityID, userID string) *BookingBuilder {
	return &BookingBuilder{
		booking: model.Booking{
			FacilityID: facilityID,
			UserID:     userID,
			Date:       Tomorrow(),
			StartTime:  "10:00:00",
			EndTime:    "11:00:00",
		},
	}
}

func (b *BookingBuilder) On(date model.Date) *BookingBuilder {
	b.booking.Date = date
	return b
}

func (b *BookingBuilder) Between(start, end model.ClockTime) *BookingBuilder {
	b.booking.StartTime = start
	b.booking.EndTime = end
	return b
}

func (b *BookingBuilder) WithStatus(status string) *BookingBuilder {
	b.booking.Status = status
	return b
}

func (b *BookingBuilder) Build() model.Booking {
	return b.booking
}

// Tomorrow returns the next calendar day, safely in the future for the
// past-date validation rule.
func Tomorrow() model.Date {
	return model.DateOf(time.Now().AddDate(0, 0, 1))
}
