package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "campusbook/pkg/errors"
	"campusbook/pkg/logger"
	"campusbook/pkg/model"

	"github.com/julienschmidt/httprouter"
)

// Mock service for testing
type mockBookingService struct {
	createFunc       func(ctx context.Context, booking *model.Booking) error
	getAllFunc       func(ctx context.Context, facilityID string, date model.Date) ([]*model.Booking, error)
	cancelFunc       func(ctx context.Context, id string) error
	availabilityFunc func(ctx context.Context, facilityID string, date model.Date, start, end model.ClockTime) (bool, error)
}

func (m *mockBookingService) Create(ctx context.Context, booking *model.Booking) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, booking)
	}
	return nil
}

func (m *mockBookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	return nil, nil
}

func (m *mockBookingService) GetAll(ctx context.Context, facilityID string, date model.Date) ([]*model.Booking, error) {
	if m.getAllFunc != nil {
		return m.getAllFunc(ctx, facilityID, date)
	}
	return []*model.Booking{}, nil
}

func (m *mockBookingService) Update(ctx context.Context, id string, updates *model.BookingUpdate) (*model.Booking, error) {
	return nil, nil
}

func (m *mockBookingService) Cancel(ctx context.Context, id string) error {
	if m.cancelFunc != nil {
		return m.cancelFunc(ctx, id)
	}
	return nil
}

func (m *mockBookingService) CheckAvailability(ctx context.Context, facilityID string, date model.Date, start, end model.ClockTime) (bool, error) {
	if m.availabilityFunc != nil {
		return m.availabilityFunc(ctx, facilityID, date, start, end)
	}
	return true, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:   "error",
		Format:  "json",
		Service: "test",
	})
}

func newRouter(service *mockBookingService) *httprouter.Router {
	router := httprouter.New()
	NewBookingHandler(service, testLogger()).RegisterRoutes(router)
	return router
}

func TestCreate_Conflict(t *testing.T) {
	mockService := &mockBookingService{
		createFunc: func(ctx context.Context, booking *model.Booking) error {
			return apperrors.Conflict("Booking conflict detected")
		},
	}
	router := newRouter(mockService)

	body := `{"facility_id":"f1","user_id":"u1","date":"2026-09-01","start_time":"10:00:00","end_time":"11:00:00"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}

	var resp struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("could not decode response: %v", err)
	}
	if resp.Message != "Booking conflict detected" {
		t.Errorf("expected conflict message, got %q", resp.Message)
	}
}

func TestCreate_Success(t *testing.T) {
	mockService := &mockBookingService{
		createFunc: func(ctx context.Context, booking *model.Booking) error {
			booking.ID = "65f1a2b3c4d5e6f7a8b9c0d3"
			booking.Status = model.StatusConfirmed
			return nil
		},
	}
	router := newRouter(mockService)

	body := `{"facility_id":"f1","user_id":"u1","date":"2026-09-01","start_time":"10:00:00","end_time":"11:00:00"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var booking model.Booking
	if err := json.Unmarshal(rec.Body.Bytes(), &booking); err != nil {
		t.Fatalf("could not decode response: %v", err)
	}
	if booking.ID == "" || booking.Status != model.StatusConfirmed {
		t.Errorf("unexpected booking payload: %+v", booking)
	}
}

func TestCreate_MalformedBody(t *testing.T) {
	router := newRouter(&mockBookingService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCancel_ReturnsAcknowledgement(t *testing.T) {
	router := newRouter(&mockBookingService{})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/bookings/65f1a2b3c4d5e6f7a8b9c0d3", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("could not decode response: %v", err)
	}
	if resp.Message != "Booking cancelled" {
		t.Errorf("expected cancellation message, got %q", resp.Message)
	}
}

func TestCancel_NotFound(t *testing.T) {
	mockService := &mockBookingService{
		cancelFunc: func(ctx context.Context, id string) error {
			return apperrors.NotFoundWithID("Booking", id)
		},
	}
	router := newRouter(mockService)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/bookings/missing", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestGetAll_InvalidDate(t *testing.T) {
	router := newRouter(&mockBookingService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings?date=03-02-2026", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestGetAll_PassesFilters(t *testing.T) {
	var gotFacility string
	var gotDate model.Date
	mockService := &mockBookingService{
		getAllFunc: func(ctx context.Context, facilityID string, date model.Date) ([]*model.Booking, error) {
			gotFacility = facilityID
			gotDate = date
			return []*model.Booking{}, nil
		},
	}
	router := newRouter(mockService)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings?facility_id=f1&date=2026-03-02", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotFacility != "f1" || gotDate != "2026-03-02" {
		t.Errorf("filters not forwarded: facility=%q date=%q", gotFacility, gotDate)
	}

	if !strings.HasPrefix(strings.TrimSpace(rec.Body.String()), "[") {
		t.Errorf("expected bare JSON array, got %s", rec.Body.String())
	}
}

func TestAvailability(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		available  bool
		expectCode int
	}{
		{
			name:       "free slot",
			query:      "?facility_id=f1&date=2026-03-02&start_time=10:00:00&end_time=11:00:00",
			available:  true,
			expectCode: http.StatusOK,
		},
		{
			name:       "busy slot",
			query:      "?facility_id=f1&date=2026-03-02&start_time=10:00:00&end_time=11:00:00",
			available:  false,
			expectCode: http.StatusOK,
		},
		{
			name:       "missing parameters",
			query:      "?facility_id=f1&date=2026-03-02",
			expectCode: http.StatusBadRequest,
		},
		{
			name:       "malformed time",
			query:      "?facility_id=f1&date=2026-03-02&start_time=25:00:00&end_time=11:00:00",
			expectCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &mockBookingService{
				availabilityFunc: func(ctx context.Context, facilityID string, date model.Date, start, end model.ClockTime) (bool, error) {
					return tt.available, nil
				},
			}
			router := newRouter(mockService)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/availability"+tt.query, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.expectCode {
				t.Fatalf("expected %d, got %d", tt.expectCode, rec.Code)
			}
			if tt.expectCode != http.StatusOK {
				return
			}

			var resp AvailabilityResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("could not decode response: %v", err)
			}
			if resp.Available != tt.available {
				t.Errorf("expected available=%v, got %v", tt.available, resp.Available)
			}
			if resp.StartTime != "10:00:00" || resp.EndTime != "11:00:00" {
				t.Errorf("probe interval not echoed: %+v", resp)
			}
		})
	}
}
