package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/emres/studentportal/internal/app/models"
	"github.com/emres/studentportal/internal/pkg/apperrors"
	"github.com/emres/studentportal/internal/pkg/auth"
)

// minPasswordLength is the minimum accepted password length.
const minPasswordLength = 6

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// RegisterInput carries the registration form fields.
type RegisterInput struct {
	StudentNo       string
	FirstName       string
	LastName        string
	Email           string
	Password        string
	ConfirmPassword string
	Major           string
	EnrollmentYear  int
}

// UpdateProfileInput carries the profile update form fields.
type UpdateProfileInput struct {
	FirstName string
	LastName  string
	Major     string
}

// AuthService handles account registration, login and profile updates.
type AuthService struct {
	accounts AccountStore
	logger   zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(accounts AccountStore, logger zerolog.Logger) *AuthService {
	return &AuthService{
		accounts: accounts,
		logger:   logger,
	}
}

// validateRegistration checks the form fields before touching the store.
func (s *AuthService) validateRegistration(in *RegisterInput) error {
	if strings.TrimSpace(in.StudentNo) == "" {
		return fmt.Errorf("%w: student number cannot be empty", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.LastName) == "" {
		return fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}
	if !emailRegex.MatchString(in.Email) {
		return fmt.Errorf("%w: invalid email format", apperrors.ErrValidationFailed)
	}
	if in.Password != in.ConfirmPassword {
		return apperrors.ErrPasswordMismatch
	}
	if len(in.Password) < minPasswordLength {
		return apperrors.ErrPasswordTooShort
	}
	return nil
}

// Register creates a new student account. The uniqueness pre-checks are a
// UX fast path; the store's unique indexes are the real guard.
func (s *AuthService) Register(ctx context.Context, in *RegisterInput) (*models.Student, error) {
	if err := s.validateRegistration(in); err != nil {
		return nil, err
	}

	exists, err := s.accounts.StudentNoExists(ctx, in.StudentNo)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to check student number")
		return nil, apperrors.ErrStoreUnavailable
	}
	if exists {
		return nil, apperrors.ErrStudentNoExists
	}

	exists, err = s.accounts.EmailExists(ctx, in.Email)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to check email")
		return nil, apperrors.ErrStoreUnavailable
	}
	if exists {
		return nil, apperrors.ErrEmailExists
	}

	hashedPassword, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	student := &models.Student{
		StudentNo:      in.StudentNo,
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Email:          in.Email,
		Password:       hashedPassword,
		Major:          in.Major,
		EnrollmentYear: in.EnrollmentYear,
	}

	if err := s.accounts.Create(ctx, student); err != nil {
		if apperrors.Is(err, apperrors.ErrStudentNoExists, apperrors.ErrEmailExists, apperrors.ErrConstraintViolation) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("email", in.Email).Msg("Failed to create student account")
		return nil, apperrors.ErrStoreUnavailable
	}

	s.logger.Info().Int64("id", student.ID).Str("studentNo", student.StudentNo).Msg("Student registered")
	return student, nil
}

// Login authenticates a student by email and password. A missing account
// and a wrong password both return ErrInvalidCredentials so the response
// cannot be used to enumerate accounts.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.Student, error) {
	if email == "" || password == "" {
		return nil, apperrors.ErrInvalidCredentials
	}

	student, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, apperrors.ErrAccountNotFound) {
			s.logger.Error().Err(err).Msg("Failed to look up account for login")
		}
		return nil, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(student.Password, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	s.logger.Info().Int64("id", student.ID).Msg("Student logged in")
	return student, nil
}

// GetProfile retrieves a student's own account record.
func (s *AuthService) GetProfile(ctx context.Context, id int64) (*models.Student, error) {
	student, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrAccountNotFound) {
			return nil, err
		}
		s.logger.Error().Err(err).Int64("id", id).Msg("Failed to load profile")
		return nil, apperrors.ErrStoreUnavailable
	}
	return student, nil
}

// UpdateProfile applies the profile change and returns the refreshed
// record. The caller must re-issue the session with the new display name;
// on error nothing changed and the session must stay as it was.
func (s *AuthService) UpdateProfile(ctx context.Context, id int64, in *UpdateProfileInput) (*models.Student, error) {
	if strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.LastName) == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}

	if err := s.accounts.UpdateProfile(ctx, id, in.FirstName, in.LastName, in.Major); err != nil {
		if errors.Is(err, apperrors.ErrAccountNotFound) {
			return nil, err
		}
		s.logger.Error().Err(err).Int64("id", id).Msg("Failed to update profile")
		return nil, apperrors.ErrStoreUnavailable
	}

	return s.GetProfile(ctx, id)
}
