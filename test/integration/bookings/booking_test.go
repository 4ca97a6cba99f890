package bookings_test

import (
	"fmt"
	"net/http"
	"sync"
	"testing"

	"campusbook/pkg/model"
	"campusbook/test/integration/testutil"
)

func TestBookingLifecycle(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	facilityID := mongo.SeedFacility(t, "Main Gymnasium", "Sports Center, Floor 1")
	userID := mongo.SeedUser(t, "Dana Levi", "dana.levi@example.edu")

	// Create.
	body := testutil.NewBookingBuilder(facilityID, userID).Between("10:00:00", "11:30:00").Build()
	resp := client.POST(t, "/api/v1/bookings", body).ExpectStatus(t, http.StatusCreated)

	var created model.Booking
	if err := resp.DecodeJSON(&created); err != nil {
		t.Fatalf("failed to decode created booking: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected server-assigned booking id")
	}
	if created.Status != model.StatusConfirmed {
		t.Fatalf("expected status %q, got %q", model.StatusConfirmed, created.Status)
	}

	// Overlap in the same interval is rejected.
	overlap := testutil.NewBookingBuilder(facilityID, userID).Between("11:00:00", "12:00:00").Build()
	conflict := client.POST(t, "/api/v1/bookings", overlap).ExpectStatus(t, http.StatusConflict)
	if got := conflict.Message(t); got != "Booking conflict detected" {
		t.Fatalf("unexpected conflict message %q", got)
	}

	// A touching interval is free.
	adjacent := testutil.NewBookingBuilder(facilityID, userID).Between("11:30:00", "12:30:00").Build()
	client.POST(t, "/api/v1/bookings", adjacent).ExpectStatus(t, http.StatusCreated)

	// The day listing returns both bookings with joined display data.
	list := client.GET(t, fmt.Sprintf("/api/v1/bookings?facility_id=%s&date=%s", facilityID, body.Date)).
		ExpectStatus(t, http.StatusOK)
	var bookings []model.Booking
	if err := list.DecodeJSON(&bookings); err != nil {
		t.Fatalf("failed to decode booking list: %v", err)
	}
	if len(bookings) != 2 {
		t.Fatalf("expected 2 bookings, got %d", len(bookings))
	}
	if bookings[0].Facility == nil || bookings[0].Facility.Name != "Main Gymnasium" {
		t.Fatalf("expected joined facility on listing, got %+v", bookings[0].Facility)
	}

	// Cancel frees the interval for rebooking.
	client.DELETE(t, "/api/v1/bookings/"+created.ID).ExpectStatus(t, http.StatusOK)

	rebook := testutil.NewBookingBuilder(facilityID, userID).Between("10:00:00", "11:30:00").Build()
	client.POST(t, "/api/v1/bookings", rebook).ExpectStatus(t, http.StatusCreated)

	// Cancelling twice reports not found.
	client.DELETE(t, "/api/v1/bookings/"+created.ID).ExpectStatus(t, http.StatusNotFound)
}

func TestAvailabilityProbe(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	facilityID := mongo.SeedFacility(t, "Olympic Pool", "Aquatics Building")
	userID := mongo.SeedUser(t, "Omar Haddad", "omar.haddad@example.edu")
	date := testutil.Tomorrow()

	booking := testutil.NewBookingBuilder(facilityID, userID).On(date).Between("14:00:00", "15:00:00").Build()
	client.POST(t, "/api/v1/bookings", booking).ExpectStatus(t, http.StatusCreated)

	probe := func(start, end string) bool {
		t.Helper()
		resp := client.GET(t, fmt.Sprintf(
			"/api/v1/availability?facility_id=%s&date=%s&start_time=%s&end_time=%s",
			facilityID, date, start, end,
		)).ExpectStatus(t, http.StatusOK)

		var result struct {
			Available bool `json:"available"`
		}
		if err := resp.DecodeJSON(&result); err != nil {
			t.Fatalf("failed to decode availability response: %v", err)
		}
		return result.Available
	}

	if probe("14:30:00", "15:30:00") {
		t.Error("expected overlapping interval to be unavailable")
	}
	if !probe("15:00:00", "16:00:00") {
		t.Error("expected touching interval to be available")
	}
	if !probe("09:00:00", "10:00:00") {
		t.Error("expected distant interval to be available")
	}
}

// TestConcurrentBookingCreation fires racing requests for the same slot and
// verifies exactly one wins.
func TestConcurrentBookingCreation(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	facilityID := mongo.SeedFacility(t, "Tennis Court A", "Outdoor Complex")
	userID := mongo.SeedUser(t, "Maya Cohen", "maya.cohen@example.edu")
	date := testutil.Tomorrow()

	const racers = 5
	statuses := make([]int, racers)

	var wg sync.WaitGroup
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			body := testutil.NewBookingBuilder(facilityID, userID).
				On(date).
				Between("09:00:00", "10:00:00").
				Build()
			resp := client.POST(t, "/api/v1/bookings", body)
			statuses[i] = resp.StatusCode
		}(i)
	}
	wg.Wait()

	createdCount := 0
	for _, status := range statuses {
		switch status {
		case http.StatusCreated:
			createdCount++
		case http.StatusConflict:
		default:
			t.Fatalf("unexpected status %d in %v", status, statuses)
		}
	}
	if createdCount != 1 {
		t.Fatalf("expected exactly one winner, got %d in %v", createdCount, statuses)
	}
	if count := mongo.CountActiveBookings(t, facilityID, date); count != 1 {
		t.Fatalf("expected 1 active booking in the database, got %d", count)
	}
}

func TestBookingValidationErrors(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	facilityID := mongo.SeedFacility(t, "Lecture Hall 3", "Science Building")
	userID := mongo.SeedUser(t, "Dana Levi", "dana.levi@example.edu")

	tests := []struct {
		name       string
		body       model.Booking
		wantStatus int
	}{
		{
			name:       "end before start",
			body:       testutil.NewBookingBuilder(facilityID, userID).Between("12:00:00", "11:00:00").Build(),
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "past date",
			body:       testutil.NewBookingBuilder(facilityID, userID).On("2020-01-01").Build(),
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "unknown facility",
			body:       testutil.NewBookingBuilder("ffffffffffffffffffffffff", userID).Build(),
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "unknown requester",
			body:       testutil.NewBookingBuilder(facilityID, "ffffffffffffffffffffffff").Build(),
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client.POST(t, "/api/v1/bookings", tc.body).ExpectStatus(t, tc.wantStatus)
		})
	}
}
