package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emres/studentportal/internal/app/models"
	"github.com/emres/studentportal/internal/pkg/apperrors"
	"github.com/emres/studentportal/internal/pkg/dberrors"
	"github.com/emres/studentportal/internal/pkg/logger"
)

// StudentRepository handles student account database operations
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new student account and fills in the generated ID.
// Unique violations on student number and email map to sentinel errors.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	sql, args, err := r.sb.Insert("students").
		Columns("student_no", "first_name", "last_name", "email", "password", "major", "enrollment_year").
		Values(student.StudentNo, student.FirstName, student.LastName, student.Email,
			student.Password, student.Major, student.EnrollmentYear).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create student query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&student.ID, &student.CreatedAt, &student.UpdatedAt)
	if err != nil {
		switch {
		case dberrors.IsDuplicateConstraintError(err, "students_student_no_key"):
			logger.Warn().Str("studentNo", student.StudentNo).Msg("Attempted to register duplicate student number")
			return apperrors.ErrStudentNoExists
		case dberrors.IsDuplicateConstraintError(err, "students_email_key"):
			logger.Warn().Str("email", student.Email).Msg("Attempted to register duplicate email")
			return apperrors.ErrEmailExists
		case dberrors.IsUniqueViolation(err):
			return apperrors.ErrConstraintViolation
		}
		logger.Error().Err(err).Str("studentNo", student.StudentNo).Msg("Error executing create student query")
		return fmt.Errorf("error creating student: %w", err)
	}

	logger.Info().Int64("id", student.ID).Str("studentNo", student.StudentNo).Msg("Student account created")
	return nil
}

// GetByEmail retrieves a student by email. The email column carries a
// unique index, so at most one row matches.
func (r *StudentRepository) GetByEmail(ctx context.Context, email string) (*models.Student, error) {
	return r.getOne(ctx, squirrel.Eq{"email": email})
}

// GetByID retrieves a student by primary key.
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

func (r *StudentRepository) getOne(ctx context.Context, where squirrel.Eq) (*models.Student, error) {
	sql, args, err := r.sb.Select("id", "student_no", "first_name", "last_name", "email",
		"password", "major", "enrollment_year", "created_at", "updated_at").
		From("students").
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	var student models.Student
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&student.ID, &student.StudentNo, &student.FirstName, &student.LastName, &student.Email,
		&student.Password, &student.Major, &student.EnrollmentYear, &student.CreatedAt, &student.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAccountNotFound
		}
		logger.Error().Err(err).Msg("Error scanning student row")
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return &student, nil
}

// UpdateProfile updates the mutable profile fields in a single statement,
// so a failure leaves the stored record unchanged.
func (r *StudentRepository) UpdateProfile(ctx context.Context, id int64, firstName, lastName, major string) error {
	sql, args, err := r.sb.Update("students").
		Set("first_name", firstName).
		Set("last_name", lastName).
		Set("major", major).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update profile query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("id", id).Msg("Error executing update profile query")
		return fmt.Errorf("error updating profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAccountNotFound
	}

	logger.Info().Int64("id", id).Msg("Profile updated")
	return nil
}

// EmailExists checks if an email is already registered
func (r *StudentRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, squirrel.Eq{"email": email})
}

// StudentNoExists checks if a student number is already registered
func (r *StudentRepository) StudentNoExists(ctx context.Context, studentNo string) (bool, error) {
	return r.exists(ctx, squirrel.Eq{"student_no": studentNo})
}

func (r *StudentRepository) exists(ctx context.Context, where squirrel.Eq) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("students").
		Where(where).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build exists query: %w", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking student existence: %w", err)
	}
	return exists, nil
}
