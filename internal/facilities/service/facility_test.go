package service

import (
	"context"
	"errors"
	"testing"

	facilitieserrors "campusbook/internal/facilities/errors"
	"campusbook/internal/facilities/validator"
	"campusbook/pkg/config"
	apperrors "campusbook/pkg/errors"
	"campusbook/pkg/logger"
	"campusbook/pkg/model"
)

const testFacilityID = "65f1a2b3c4d5e6f7a8b9c0d1"

type mockFacilityRepository struct {
	createFunc    func(ctx context.Context, facility *model.Facility) error
	findByIDFunc  func(ctx context.Context, id string) (*model.Facility, error)
	findAllFunc   func(ctx context.Context) ([]*model.Facility, error)
	findByIDsFunc func(ctx context.Context, ids []string) (map[string]*model.Facility, error)
}

func (m *mockFacilityRepository) Create(ctx context.Context, facility *model.Facility) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, facility)
	}
	facility.ID = testFacilityID
	return nil
}

func (m *mockFacilityRepository) FindByID(ctx context.Context, id string) (*model.Facility, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return &model.Facility{ID: id, Name: "Main Gymnasium", Location: "Sports Center"}, nil
}

func (m *mockFacilityRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*model.Facility, error) {
	if m.findByIDsFunc != nil {
		return m.findByIDsFunc(ctx, ids)
	}
	return map[string]*model.Facility{}, nil
}

func (m *mockFacilityRepository) FindAll(ctx context.Context) ([]*model.Facility, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx)
	}
	return []*model.Facility{}, nil
}

func newService(repo *mockFacilityRepository) FacilityService {
	log := logger.New(logger.Config{
		Level:   "error",
		Format:  "json",
		Service: "test",
	})
	cfg := &config.Config{Log: log}
	return NewFacilityService(repo, validator.NewFacilityValidator(log), cfg)
}

func TestCreateFacilityNormalizesFields(t *testing.T) {
	var stored *model.Facility
	repo := &mockFacilityRepository{
		createFunc: func(ctx context.Context, facility *model.Facility) error {
			facility.ID = testFacilityID
			stored = facility
			return nil
		},
	}
	svc := newService(repo)

	facility := &model.Facility{
		Name:     "  Main   Gymnasium ",
		Location: " Sports  Center,\tFloor 1 ",
		Capacity: 120,
	}
	if err := svc.Create(context.Background(), facility); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stored == nil {
		t.Fatal("expected facility to reach the repository")
	}
	if stored.Name != "Main Gymnasium" {
		t.Errorf("expected collapsed name, got %q", stored.Name)
	}
	if stored.Location != "Sports Center, Floor 1" {
		t.Errorf("expected collapsed location, got %q", stored.Location)
	}
	if facility.ID != testFacilityID {
		t.Errorf("expected assigned ID, got %q", facility.ID)
	}
}

func TestCreateFacilityValidationFailure(t *testing.T) {
	created := false
	repo := &mockFacilityRepository{
		createFunc: func(ctx context.Context, facility *model.Facility) error {
			created = true
			return nil
		},
	}
	svc := newService(repo)

	err := svc.Create(context.Background(), &model.Facility{Name: "X"})
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if created {
		t.Error("invalid facility must not reach the repository")
	}
}

func TestGetFacilityByID(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		repoErr  error
		wantCode string
	}{
		{name: "found", id: testFacilityID},
		{name: "empty id", id: "", wantCode: apperrors.CodeInvalidInput},
		{name: "not found", id: testFacilityID, repoErr: facilitieserrors.ErrNotFound, wantCode: apperrors.CodeNotFound},
		{name: "malformed id", id: "nope", repoErr: facilitieserrors.ErrInvalidID, wantCode: apperrors.CodeInvalidInput},
		{name: "repository failure", id: testFacilityID, repoErr: errors.New("boom"), wantCode: apperrors.CodeInternal},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := &mockFacilityRepository{}
			if tc.repoErr != nil {
				repo.findByIDFunc = func(ctx context.Context, id string) (*model.Facility, error) {
					return nil, tc.repoErr
				}
			}
			svc := newService(repo)

			facility, err := svc.GetByID(context.Background(), tc.id)
			if tc.wantCode == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if facility == nil || facility.ID != tc.id {
					t.Fatalf("unexpected facility %+v", facility)
				}
				return
			}

			if err == nil {
				t.Fatalf("expected code %s, got nil error", tc.wantCode)
			}
			appErr := apperrors.AsAppError(err)
			if appErr.Code != tc.wantCode {
				t.Fatalf("expected code %s, got %v", tc.wantCode, err)
			}
		})
	}
}

func TestGetAllFacilitiesNeverNil(t *testing.T) {
	repo := &mockFacilityRepository{
		findAllFunc: func(ctx context.Context) ([]*model.Facility, error) {
			return nil, nil
		},
	}
	svc := newService(repo)

	facilities, err := svc.GetAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if facilities == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(facilities) != 0 {
		t.Fatalf("expected no facilities, got %d", len(facilities))
	}
}
