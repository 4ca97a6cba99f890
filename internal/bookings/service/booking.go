package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingserrors "campusbook/internal/bookings/errors"
	"campusbook/internal/bookings/repository"
	"campusbook/internal/bookings/validator"
	"campusbook/internal/events"
	facilitieserrors "campusbook/internal/facilities/errors"
	facilityrepo "campusbook/internal/facilities/repository"
	userrepo "campusbook/internal/users/repository"
	"campusbook/pkg/config"
	apperrors "campusbook/pkg/errors"
	"campusbook/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

// ConflictMessage is the wire-level message returned whenever a booking
// cannot take its slot because another active booking holds it.
const ConflictMessage = "Booking conflict detected"

type BookingService interface {
	Create(ctx context.Context, booking *model.Booking) error
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	GetAll(ctx context.Context, facilityID string, date model.Date) ([]*model.Booking, error)
	Update(ctx context.Context, id string, updates *model.BookingUpdate) (*model.Booking, error)
	Cancel(ctx context.Context, id string) error
	CheckAvailability(ctx context.Context, facilityID string, date model.Date, start, end model.ClockTime) (bool, error)
}

type bookingService struct {
	repo         repository.BookingRepository
	lockRepo     repository.BookingLockRepository
	facilityRepo facilityrepo.FacilityRepository
	userRepo     userrepo.UserRepository
	validator    *validator.BookingValidator
	publisher    events.Publisher
	cfg          *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	lockRepo repository.BookingLockRepository,
	facilityRepo facilityrepo.FacilityRepository,
	userRepo userrepo.UserRepository,
	validator *validator.BookingValidator,
	publisher events.Publisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:         repo,
		lockRepo:     lockRepo,
		facilityRepo: facilityRepo,
		userRepo:     userRepo,
		validator:    validator,
		publisher:    publisher,
		cfg:          cfg,
	}
}

func (s *bookingService) Create(ctx context.Context, booking *model.Booking) error {
	s.applyDefaults(booking)
	normalizeTimes(booking)
	if err := s.validate(booking); err != nil {
		return err
	}
	if err := s.verifyReferences(ctx, booking); err != nil {
		return err
	}

	// Acquire advisory lock to prevent race conditions
	lockID, err := s.acquireSlotLock(ctx, booking.FacilityID, booking.Date)
	if err != nil {
		return err
	}
	defer func() {
		if releaseErr := s.releaseSlotLock(ctx, lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release booking lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.verifyNoConflict(sessCtx, booking); err != nil {
			return err
		}
		if err := s.repo.Create(sessCtx, booking); err != nil {
			return apperrors.Internal("Failed to create booking", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create booking", "error", err)
		return err
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"facility_id", booking.FacilityID,
		"date", booking.Date,
		"start_time", booking.StartTime,
		"end_time", booking.EndTime,
	)
	s.publisher.BookingCreated(ctx, booking)
	return nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid booking ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}

	s.attachReferences(ctx, []*model.Booking{booking})
	return booking, nil
}

func (s *bookingService) GetAll(ctx context.Context, facilityID string, date model.Date) ([]*model.Booking, error) {
	bookings, err := s.repo.FindAll(ctx, facilityID, date)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings", "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}
	if bookings == nil {
		bookings = []*model.Booking{}
	}

	s.attachReferences(ctx, bookings)
	return bookings, nil
}

func (s *bookingService) Update(ctx context.Context, id string, updates *model.BookingUpdate) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid booking ID format")
		}
		return nil, apperrors.Internal("Failed to check booking existence", err)
	}
	if !existing.Active() {
		return nil, apperrors.Conflict("Cannot update a cancelled booking")
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Booking update validation failed", "id", id, "error", err)
		return nil, apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	merged := s.mergeBookingUpdates(existing, updates)
	normalizeTimes(merged)
	if err := s.validateMerged(merged, updates.Date != nil); err != nil {
		return nil, err
	}
	if err := s.verifyReferences(ctx, merged); err != nil {
		return nil, err
	}

	// Lock the target slot's day; a move between days still serializes on
	// the day the booking lands on.
	lockID, err := s.acquireSlotLock(ctx, merged.FacilityID, merged.Date)
	if err != nil {
		return nil, err
	}
	defer func() {
		if releaseErr := s.releaseSlotLock(ctx, lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release booking lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.verifyNoConflict(sessCtx, merged); err != nil {
			return err
		}
		if _, err := s.repo.Update(sessCtx, id, merged); err != nil {
			return apperrors.Internal("Failed to update booking", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to update booking", "id", id, "error", err)
		return nil, err
	}

	s.cfg.Log.Info("Booking updated successfully", "id", id)
	s.publisher.BookingUpdated(ctx, merged)
	return merged, nil
}

func (s *bookingService) Cancel(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}

	if err := s.repo.Cancel(ctx, id); err != nil {
		switch {
		case errors.Is(err, bookingserrors.ErrNotFound):
			return apperrors.NotFoundWithID("Booking", id)
		case errors.Is(err, bookingserrors.ErrAlreadyCancelled):
			return apperrors.NotFoundWithID("Booking", id)
		case errors.Is(err, bookingserrors.ErrInvalidID):
			return apperrors.InvalidInput("Invalid booking ID format")
		default:
			return apperrors.Internal("Failed to cancel booking", err)
		}
	}

	s.cfg.Log.Info("Booking cancelled successfully", "id", id)
	s.publisher.BookingCancelled(ctx, &model.Booking{ID: id, Status: model.StatusCancelled})
	return nil
}

// CheckAvailability reports whether [start,end) is free on the facility's
// day. It is a point-in-time answer; only Create's lock-and-transaction path
// is authoritative.
func (s *bookingService) CheckAvailability(ctx context.Context, facilityID string, date model.Date, start, end model.ClockTime) (bool, error) {
	if facilityID == "" {
		return false, apperrors.InvalidInput("Facility ID cannot be empty")
	}
	if !date.Valid() {
		return false, apperrors.InvalidInput("date must be formatted YYYY-MM-DD")
	}
	if !start.Valid() || !end.Valid() {
		return false, apperrors.InvalidInput("start_time and end_time must be formatted HH:MM:SS")
	}
	if !start.Before(end) {
		return false, apperrors.InvalidInput("end_time must be after start_time")
	}

	if _, err := s.facilityRepo.FindByID(ctx, facilityID); err != nil {
		if errors.Is(err, facilitieserrors.ErrNotFound) {
			return false, apperrors.Validation("Availability check failed", map[string]any{
				"facility_id": "facility does not exist",
			})
		}
		if errors.Is(err, facilitieserrors.ErrInvalidID) {
			return false, apperrors.InvalidInput("Invalid facility ID format")
		}
		return false, apperrors.Internal("Failed to retrieve facility", err)
	}

	existing, err := s.repo.FindActiveByFacilityAndDate(ctx, facilityID, date)
	if err != nil {
		return false, apperrors.Internal("Failed to check existing bookings", err)
	}

	for _, b := range existing {
		if b.OverlapsInterval(start, end) {
			return false, nil
		}
	}
	return true, nil
}

// --- Helpers ---

func (s *bookingService) applyDefaults(b *model.Booking) {
	if b.Status == "" {
		b.Status = model.StatusConfirmed
	}
}

// normalizeTimes widens HH:MM inputs to the stored HH:MM:SS form.
func normalizeTimes(b *model.Booking) {
	if t, err := model.ParseClockTime(string(b.StartTime)); err == nil {
		b.StartTime = t
	}
	if t, err := model.ParseClockTime(string(b.EndTime)); err == nil {
		b.EndTime = t
	}
}

func (s *bookingService) mergeBookingUpdates(existing *model.Booking, updates *model.BookingUpdate) *model.Booking {
	merged := *existing
	merged.Facility = nil
	merged.User = nil

	if updates.FacilityID != "" {
		merged.FacilityID = updates.FacilityID
	}
	if updates.UserID != "" {
		merged.UserID = updates.UserID
	}
	if updates.Date != nil {
		merged.Date = *updates.Date
	}
	if updates.StartTime != nil {
		merged.StartTime = *updates.StartTime
	}
	if updates.EndTime != nil {
		merged.EndTime = *updates.EndTime
	}
	if updates.Status != "" {
		merged.Status = updates.Status
	}

	return &merged
}

func (s *bookingService) validate(booking *model.Booking) error {
	if err := s.validator.Validate(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}

// validateMerged re-validates a booking after update fields are merged in.
// Bookings whose date has already passed may still have their status
// rewritten, so the past-date rule is limited to updates that move the date.
func (s *bookingService) validateMerged(booking *model.Booking, dateChanged bool) error {
	if err := s.validator.ValidateExisting(booking, dateChanged); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}

// verifyReferences checks the facility and user actually exist before any
// slot work happens. A dangling reference is a validation failure of the
// request, not a missing resource: the booking is the resource here.
func (s *bookingService) verifyReferences(ctx context.Context, booking *model.Booking) error {
	if _, err := s.facilityRepo.FindByID(ctx, booking.FacilityID); err != nil {
		if errors.Is(err, facilitieserrors.ErrNotFound) {
			return apperrors.Validation("Booking validation failed", map[string]any{
				"facility_id": "facility does not exist",
			})
		}
		if errors.Is(err, facilitieserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid facility ID format")
		}
		return apperrors.Internal("Failed to retrieve facility", err)
	}

	if _, err := s.userRepo.FindByID(ctx, booking.UserID); err != nil {
		if errors.Is(err, userrepo.ErrNotFound) {
			return apperrors.Validation("Booking validation failed", map[string]any{
				"user_id": "user does not exist",
			})
		}
		if errors.Is(err, userrepo.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid user ID format")
		}
		return apperrors.Internal("Failed to retrieve user", err)
	}

	return nil
}

// verifyNoConflict re-reads the day's active bookings inside the caller's
// transaction and applies the half-open overlap rule. The booking's own id
// is skipped so updates do not conflict with themselves.
func (s *bookingService) verifyNoConflict(ctx context.Context, booking *model.Booking) error {
	existing, err := s.repo.FindActiveByFacilityAndDate(ctx, booking.FacilityID, booking.Date)
	if err != nil {
		return apperrors.Internal("Failed to check existing bookings", err)
	}

	for _, b := range existing {
		if b.ID == booking.ID {
			continue
		}
		if b.OverlapsInterval(booking.StartTime, booking.EndTime) {
			return apperrors.Conflict(ConflictMessage).WithDetails(map[string]any{
				"conflicting_start": b.StartTime,
				"conflicting_end":   b.EndTime,
			})
		}
	}
	return nil
}

// attachReferences populates the joined facility and user display data.
// Join failures degrade to bare bookings rather than failing the read.
func (s *bookingService) attachReferences(ctx context.Context, bookings []*model.Booking) {
	if len(bookings) == 0 {
		return
	}

	facilityIDs := make([]string, 0, len(bookings))
	userIDs := make([]string, 0, len(bookings))
	seenFacility := map[string]bool{}
	seenUser := map[string]bool{}
	for _, b := range bookings {
		if !seenFacility[b.FacilityID] {
			seenFacility[b.FacilityID] = true
			facilityIDs = append(facilityIDs, b.FacilityID)
		}
		if !seenUser[b.UserID] {
			seenUser[b.UserID] = true
			userIDs = append(userIDs, b.UserID)
		}
	}

	facilities, err := s.facilityRepo.FindByIDs(ctx, facilityIDs)
	if err != nil {
		s.cfg.Log.Warn("Failed to join facilities onto bookings", "error", err)
		facilities = map[string]*model.Facility{}
	}
	users, err := s.userRepo.FindByIDs(ctx, userIDs)
	if err != nil {
		s.cfg.Log.Warn("Failed to join users onto bookings", "error", err)
		users = map[string]*model.User{}
	}

	for _, b := range bookings {
		b.Facility = facilities[b.FacilityID]
		b.User = users[b.UserID]
	}
}

// acquireSlotLock creates an advisory lock serializing writers on one
// facility's day. Returns the lock ID if successful, or conflict error if
// the lock already exists.
func (s *bookingService) acquireSlotLock(ctx context.Context, facilityID string, date model.Date) (string, error) {
	lockID := fmt.Sprintf("booking_lock_%s_%s", facilityID, date)

	lock := &model.BookingLock{
		ID:        lockID,
		ExpiresAt: time.Now().Add(s.cfg.BookingLockTTL),
	}

	_, err := s.lockRepo.Create(ctx, lock)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", apperrors.Conflict(ConflictMessage)
		}
		return "", apperrors.Internal("Failed to acquire booking lock", err)
	}

	return lockID, nil
}

// releaseSlotLock removes the advisory lock
func (s *bookingService) releaseSlotLock(ctx context.Context, lockID string) error {
	return s.lockRepo.Delete(ctx, lockID)
}
