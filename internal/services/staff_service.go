package services

import (
	"fmt"

	"tillpoint/internal/domain"
	"tillpoint/internal/repos"
)

// StaffService manages staff members and answers the sign-in check the login
// screen performs before attributing sales.
type StaffService struct {
	Staff *repos.StaffRepo
}

func NewStaffService(staff *repos.StaffRepo) *StaffService {
	return &StaffService{Staff: staff}
}

func (s *StaffService) List() ([]domain.Staff, error) { return s.Staff.List() }

func (s *StaffService) Get(id string) (*domain.Staff, error) { return s.Staff.Get(id) }

func (s *StaffService) Create(firstName, lastName, secret string) (string, error) {
	if firstName == "" || lastName == "" {
		return "", fmt.Errorf("staff name: %w", domain.ErrMissingField)
	}
	if secret == "" {
		return "", fmt.Errorf("staff secret: %w", domain.ErrMissingField)
	}
	return s.Staff.Add(firstName, lastName, secret)
}

func (s *StaffService) Rename(id, firstName, lastName string) error {
	if firstName == "" || lastName == "" {
		return fmt.Errorf("staff name: %w", domain.ErrMissingField)
	}
	return s.Staff.Update(id, firstName, lastName)
}

func (s *StaffService) ChangeSecret(id, secret string) error {
	if secret == "" {
		return fmt.Errorf("staff secret: %w", domain.ErrMissingField)
	}
	return s.Staff.UpdateSecret(id, secret)
}

func (s *StaffService) Delete(id string) error { return s.Staff.Delete(id) }

// SignIn returns ErrBadCredentials for an unknown id or a wrong secret; the
// two cases are indistinguishable to the caller.
func (s *StaffService) SignIn(id, secret string) (*domain.Staff, error) {
	m, err := s.Staff.Authenticate(id, secret)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrBadCredentials
	}
	return m, nil
}
