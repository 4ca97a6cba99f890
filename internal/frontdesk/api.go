package frontdesk

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"campusbook/pkg/client"
	"campusbook/pkg/model"
)

// ErrConflict is returned when the server rejects a booking because the
// slot was taken between refresh and submit.
var ErrConflict = errors.New("booking conflict detected")

// API is the slice of the reservation server the desk session needs.
type API interface {
	Facilities(ctx context.Context) ([]*model.Facility, error)
	DayBookings(ctx context.Context, facilityID string, date model.Date) ([]*model.Booking, error)
	CreateBooking(ctx context.Context, booking *model.Booking) (*model.Booking, error)
	CancelBooking(ctx context.Context, id string) error
}

type restAPI struct {
	facilities *client.FacilityClient
	bookings   *client.BookingClient
}

// NewAPI wires the desk against a running reservation server.
func NewAPI(baseURL string) API {
	return &restAPI{
		facilities: client.NewFacilityClient(baseURL),
		bookings:   client.NewBookingClient(baseURL),
	}
}

func (a *restAPI) Facilities(ctx context.Context) ([]*model.Facility, error) {
	resp, err := a.facilities.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list facilities: %s", client.GetErrorMessage(resp))
	}
	return a.facilities.DecodeFacilities(resp)
}

func (a *restAPI) DayBookings(ctx context.Context, facilityID string, date model.Date) ([]*model.Booking, error) {
	resp, err := a.bookings.GetAll(ctx, facilityID, date)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list bookings: %s", client.GetErrorMessage(resp))
	}
	return a.bookings.DecodeBookings(resp)
}

func (a *restAPI) CreateBooking(ctx context.Context, booking *model.Booking) (*model.Booking, error) {
	resp, err := a.bookings.Create(ctx, booking)
	if err != nil {
		return nil, err
	}
	switch resp.StatusCode {
	case http.StatusCreated:
		return a.bookings.DecodeBooking(resp)
	case http.StatusConflict:
		return nil, fmt.Errorf("%w: %s", ErrConflict, client.GetErrorMessage(resp))
	default:
		return nil, fmt.Errorf("create booking: %s", client.GetErrorMessage(resp))
	}
}

func (a *restAPI) CancelBooking(ctx context.Context, id string) error {
	resp, err := a.bookings.Cancel(ctx, id)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cancel booking: %s", client.GetErrorMessage(resp))
	}
	return nil
}
