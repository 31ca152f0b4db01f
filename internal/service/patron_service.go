package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mhmd-zbib/library-management/internal/domain"
	"github.com/mhmd-zbib/library-management/internal/repository"
	customError "github.com/mhmd-zbib/library-management/pkg/errors"
)

// PatronService handles membership CRUD for patrons.
type PatronService struct {
	Patrons repository.PatronRepository

	Now func() time.Time
}

func NewPatronService(patrons repository.PatronRepository) *PatronService {
	return &PatronService{
		Patrons: patrons,
		Now:     time.Now,
	}
}

func (s *PatronService) CreatePatron(ctx context.Context, request *domain.CreatePatronRequest) (uuid.UUID, error) {
	now := s.Now()

	patron := &domain.Patron{
		ID:                   uuid.New(),
		FirstName:            request.FirstName,
		LastName:             request.LastName,
		Email:                request.Email,
		PhoneNumber:          request.PhoneNumber,
		Address:              request.Address,
		MembershipExpiryDate: request.MembershipExpiryDate,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := s.Patrons.Create(ctx, patron); err != nil {
		if errors.Is(err, customError.ErrDuplicateEmail) {
			return uuid.Nil, customError.WrapDuplicateEmail(request.Email)
		}
		return uuid.Nil, customError.WrapDatabaseError(err)
	}

	return patron.ID, nil
}

func (s *PatronService) GetPatron(ctx context.Context, id uuid.UUID) (*domain.PatronResponse, error) {
	patron, err := s.Patrons.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapPatronNotFound(id.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}

	return ProjectPatron(patron), nil
}

func (s *PatronService) GetPatrons(ctx context.Context, page domain.PageRequest) (*domain.Page[*domain.PatronResponse], error) {
	page = page.Normalize()

	patrons, total, err := s.Patrons.FindAll(ctx, page)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	views := make([]*domain.PatronResponse, 0, len(patrons))
	for _, patron := range patrons {
		views = append(views, ProjectPatron(patron))
	}

	return domain.NewPage(views, page, total), nil
}

func (s *PatronService) UpdatePatron(ctx context.Context, id uuid.UUID, request *domain.UpdatePatronRequest) error {
	patron, err := s.Patrons.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return customError.WrapPatronNotFound(id.String())
		}
		return customError.WrapDatabaseError(err)
	}

	if request.FirstName != nil {
		patron.FirstName = *request.FirstName
	}
	if request.LastName != nil {
		patron.LastName = *request.LastName
	}
	if request.Email != nil {
		patron.Email = *request.Email
	}
	if request.PhoneNumber != nil {
		patron.PhoneNumber = *request.PhoneNumber
	}
	if request.Address != nil {
		patron.Address = *request.Address
	}
	if request.MembershipExpiryDate != nil {
		patron.MembershipExpiryDate = request.MembershipExpiryDate
	}

	if err := s.Patrons.Update(ctx, patron); err != nil {
		if errors.Is(err, customError.ErrDuplicateEmail) {
			return customError.WrapDuplicateEmail(patron.Email)
		}
		if errors.Is(err, customError.ErrPatronNotFound) {
			return customError.WrapPatronNotFound(id.String())
		}
		return customError.WrapDatabaseError(err)
	}

	return nil
}

func (s *PatronService) DeletePatron(ctx context.Context, id uuid.UUID) error {
	if err := s.Patrons.Delete(ctx, id); err != nil {
		if errors.Is(err, customError.ErrPatronNotFound) {
			return customError.WrapPatronNotFound(id.String())
		}
		return customError.WrapDatabaseError(err)
	}

	return nil
}
