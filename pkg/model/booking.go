package model

import (
	"time"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusRejected  = "rejected"
)

type Booking struct {
	ID         string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	FacilityID string    `json:"facility_id" bson:"facility_id" validate:"required,mongodb"`
	UserID     string    `json:"user_id" bson:"user_id" validate:"required,mongodb"`
	Date       Date      `json:"date" bson:"date" validate:"required"`
	StartTime  ClockTime `json:"start_time" bson:"start_time" validate:"required"`
	EndTime    ClockTime `json:"end_time" bson:"end_time" validate:"required"`
	Status     string    `json:"status" bson:"status" validate:"required,oneof=pending confirmed cancelled rejected"`

	// Joined display data, populated on reads only.
	Facility *Facility `json:"facility,omitempty" bson:"-"`
	User     *User     `json:"user,omitempty" bson:"-"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// Active reports whether the booking still occupies its interval.
// Cancelled bookings are excluded from every overlap check.
func (b *Booking) Active() bool {
	return b.Status != StatusCancelled
}

// OverlapsInterval applies the half-open overlap rule to this booking.
func (b *Booking) OverlapsInterval(start, end ClockTime) bool {
	return Overlaps(b.StartTime, b.EndTime, start, end)
}

type BookingUpdate struct {
	FacilityID string     `json:"facility_id,omitempty" validate:"omitempty,mongodb"`
	UserID     string     `json:"user_id,omitempty" validate:"omitempty,mongodb"`
	Date       *Date      `json:"date,omitempty"`
	StartTime  *ClockTime `json:"start_time,omitempty"`
	EndTime    *ClockTime `json:"end_time,omitempty"`
	Status     string     `json:"status,omitempty" validate:"omitempty,oneof=pending confirmed cancelled rejected"`
}
