package client

import (
	"context"
	"fmt"
	"net/url"

	"campusbook/pkg/model"
)

type BookingClient struct {
	httpClient *HttpClient
}

func NewBookingClient(baseURL string) *BookingClient {
	return &BookingClient{
		httpClient: NewHttpClient(baseURL),
	}
}

func (c *BookingClient) Create(ctx context.Context, body any) (*Response, error) {
	return c.httpClient.POST(ctx, "/api/v1/bookings", body)
}

// GetAll lists bookings, optionally filtered by facility and date.
func (c *BookingClient) GetAll(ctx context.Context, facilityID string, date model.Date) (*Response, error) {
	q := url.Values{}
	if facilityID != "" {
		q.Set("facility_id", facilityID)
	}
	if date != "" {
		q.Set("date", date.String())
	}

	path := "/api/v1/bookings"
	if encoded := q.Encode(); encoded != "" {
		path += "?" + encoded
	}
	return c.httpClient.GET(ctx, path)
}

func (c *BookingClient) Update(ctx context.Context, id string, body any) (*Response, error) {
	return c.httpClient.PUT(ctx, "/api/v1/bookings/"+url.PathEscape(id), body)
}

func (c *BookingClient) Cancel(ctx context.Context, id string) (*Response, error) {
	return c.httpClient.DELETE(ctx, "/api/v1/bookings/"+url.PathEscape(id))
}

func (c *BookingClient) CheckAvailability(ctx context.Context, facilityID string, date model.Date, start, end model.ClockTime) (*Response, error) {
	q := url.Values{}
	q.Set("facility_id", facilityID)
	q.Set("date", date.String())
	q.Set("start_time", start.String())
	q.Set("end_time", end.String())

	return c.httpClient.GET(ctx, "/api/v1/availability?"+q.Encode())
}

func (c *BookingClient) DecodeBooking(resp *Response) (*model.Booking, error) {
	var booking model.Booking
	if err := resp.DecodeJSON(&booking); err != nil {
		return nil, fmt.Errorf("could not decode booking json: %w", err)
	}
	return &booking, nil
}

func (c *BookingClient) DecodeBookings(resp *Response) ([]*model.Booking, error) {
	var bookings []*model.Booking
	if err := resp.DecodeJSON(&bookings); err != nil {
		return nil, fmt.Errorf("could not decode booking list: %w", err)
	}
	return bookings, nil
}

func (c *BookingClient) DecodeAvailability(resp *Response) (bool, error) {
	var result struct {
		Available bool `json:"available"`
	}
	if err := resp.DecodeJSON(&result); err != nil {
		return false, fmt.Errorf("could not decode availability json: %w", err)
	}
	return result.Available, nil
}
