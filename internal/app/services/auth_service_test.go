package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emres/studentportal/internal/pkg/apperrors"
)

func validRegistration() *RegisterInput {
	return &RegisterInput{
		StudentNo:       "S100",
		FirstName:       "Alice",
		LastName:        "Lee",
		Email:           "a@x.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
		Major:           "Computer Science",
		EnrollmentYear:  2024,
	}
}

func newAuthFixture() (*AuthService, *fakeStore) {
	store := newFakeStore()
	return NewAuthService(store, zerolog.Nop()), store
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newAuthFixture()

	student, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)
	assert.Equal(t, "S100", student.StudentNo)
	assert.NotEqual(t, "secret1", student.Password, "password must be stored hashed")

	loggedIn, err := svc.Login(context.Background(), "a@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, student.ID, loggedIn.ID)
	assert.Equal(t, "Alice Lee", loggedIn.DisplayName())
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newAuthFixture()

	tests := []struct {
		name    string
		mutate  func(*RegisterInput)
		wantErr error
	}{
		{
			name:    "password mismatch",
			mutate:  func(in *RegisterInput) { in.ConfirmPassword = "other" },
			wantErr: apperrors.ErrPasswordMismatch,
		},
		{
			name: "password too short",
			mutate: func(in *RegisterInput) {
				in.Password = "abc"
				in.ConfirmPassword = "abc"
			},
			wantErr: apperrors.ErrPasswordTooShort,
		},
		{
			name:    "invalid email",
			mutate:  func(in *RegisterInput) { in.Email = "not-an-email" },
			wantErr: apperrors.ErrValidationFailed,
		},
		{
			name:    "empty student number",
			mutate:  func(in *RegisterInput) { in.StudentNo = "  " },
			wantErr: apperrors.ErrValidationFailed,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validRegistration()
			tt.mutate(in)
			_, err := svc.Register(context.Background(), in)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRegisterDuplicates(t *testing.T) {
	svc, _ := newAuthFixture()
	_, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	dupEmail := validRegistration()
	dupEmail.StudentNo = "S200"
	_, err = svc.Register(context.Background(), dupEmail)
	assert.ErrorIs(t, err, apperrors.ErrEmailExists)

	dupNo := validRegistration()
	dupNo.Email = "b@x.com"
	_, err = svc.Register(context.Background(), dupNo)
	assert.ErrorIs(t, err, apperrors.ErrStudentNoExists)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _ := newAuthFixture()
	_, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	_, wrongPassword := svc.Login(context.Background(), "a@x.com", "wrong")
	_, unknownEmail := svc.Login(context.Background(), "nobody@x.com", "secret1")

	// No signal may distinguish a bad password from a missing account.
	assert.ErrorIs(t, wrongPassword, apperrors.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, apperrors.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestLoginStoreFailureStaysGeneric(t *testing.T) {
	svc, store := newAuthFixture()
	store.failWith = errors.New("connection refused")

	_, err := svc.Login(context.Background(), "a@x.com", "secret1")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestUpdateProfile(t *testing.T) {
	svc, _ := newAuthFixture()
	student, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(context.Background(), student.ID, &UpdateProfileInput{
		FirstName: "Alice",
		LastName:  "Park",
		Major:     "Mathematics",
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice Park", updated.DisplayName())
	assert.Equal(t, "Mathematics", updated.Major)

	profile, err := svc.GetProfile(context.Background(), student.ID)
	require.NoError(t, err)
	assert.Equal(t, "Park", profile.LastName)
}

func TestUpdateProfileFailureLeavesRecord(t *testing.T) {
	svc, store := newAuthFixture()
	student, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	store.failWith = errors.New("connection refused")
	_, err = svc.UpdateProfile(context.Background(), student.ID, &UpdateProfileInput{
		FirstName: "Alice", LastName: "Park", Major: "Mathematics",
	})
	assert.ErrorIs(t, err, apperrors.ErrStoreUnavailable)

	store.failWith = nil
	profile, err := svc.GetProfile(context.Background(), student.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lee", profile.LastName)
}

func TestUpdateProfileRejectsEmptyName(t *testing.T) {
	svc, _ := newAuthFixture()
	student, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	_, err = svc.UpdateProfile(context.Background(), student.ID, &UpdateProfileInput{
		FirstName: " ", LastName: "Park",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}
