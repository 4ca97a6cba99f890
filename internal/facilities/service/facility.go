package service

import (
	"context"
	"errors"

	facilitieserrors "campusbook/internal/facilities/errors"
	"campusbook/internal/facilities/repository"
	"campusbook/internal/facilities/validator"
	"campusbook/pkg/config"
	apperrors "campusbook/pkg/errors"
	"campusbook/pkg/model"
	"campusbook/pkg/sanitizer"
)

type FacilityService interface {
	Create(ctx context.Context, facility *model.Facility) error
	GetByID(ctx context.Context, id string) (*model.Facility, error)
	GetAll(ctx context.Context) ([]*model.Facility, error)
}

type facilityService struct {
	repo      repository.FacilityRepository
	validator *validator.FacilityValidator
	cfg       *config.Config
}

func NewFacilityService(
	repo repository.FacilityRepository,
	validator *validator.FacilityValidator,
	cfg *config.Config,
) FacilityService {
	return &facilityService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *facilityService) Create(ctx context.Context, facility *model.Facility) error {
	facility.Name = sanitizer.NormalizeName(facility.Name)
	facility.Location = sanitizer.NormalizeLocation(facility.Location)

	if err := s.validator.Validate(facility); err != nil {
		s.cfg.Log.Warn("Facility validation failed", "error", err)
		return apperrors.Validation("Facility validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Create(ctx, facility); err != nil {
		s.cfg.Log.Error("Failed to create facility", "error", err)
		return apperrors.Internal("Failed to create facility", err)
	}

	s.cfg.Log.Info("Facility created successfully",
		"id", facility.ID,
		"name", facility.Name,
	)
	return nil
}

func (s *facilityService) GetByID(ctx context.Context, id string) (*model.Facility, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Facility ID cannot be empty")
	}

	facility, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, facilitieserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Facility", id)
		}
		if errors.Is(err, facilitieserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid facility ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve facility", err)
	}

	return facility, nil
}

func (s *facilityService) GetAll(ctx context.Context) ([]*model.Facility, error) {
	facilities, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list facilities", "error", err)
		return nil, apperrors.Internal("Failed to retrieve facilities", err)
	}
	if facilities == nil {
		facilities = []*model.Facility{}
	}
	return facilities, nil
}
