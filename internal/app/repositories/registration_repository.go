package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/emres/studentportal/internal/app/models"
	"github.com/emres/studentportal/internal/db"
	"github.com/emres/studentportal/internal/pkg/apperrors"
	"github.com/emres/studentportal/internal/pkg/dberrors"
	"github.com/emres/studentportal/internal/pkg/logger"
)

// uniqueRegistrationConstraint guards (student_id, course_id, semester).
// It is the authoritative duplicate-registration check; any pre-read in
// the service layer is advisory only.
const uniqueRegistrationConstraint = "registrations_student_course_semester_key"

// RegistrationRepository owns the enrollment invariants: the registration
// row and the course enrollment counter always move together inside one
// transaction, and the counter stays within [0, max_capacity].
type RegistrationRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewRegistrationRepository creates a new RegistrationRepository
func NewRegistrationRepository(database *db.PostgresDB) *RegistrationRepository {
	return &RegistrationRepository{
		db: database,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Exists checks whether the student already has a registration for the
// course in the given semester.
func (r *RegistrationRepository) Exists(ctx context.Context, studentID, courseID int64, semester string) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("registrations").
		Where(squirrel.Eq{"student_id": studentID, "course_id": courseID, "semester": semester}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build registration exists query: %w", err)
	}

	var exists bool
	if err := r.db.Pool.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking registration existence: %w", err)
	}
	return exists, nil
}

// Enroll inserts a registration and increments the course counter as one
// transaction. Outcomes:
//   - duplicate (student, course, semester) -> apperrors.ErrAlreadyRegistered
//   - unknown course                        -> apperrors.ErrCourseNotFound
//   - course at max_capacity                -> apperrors.ErrCourseFull
//
// Any failure rolls back with zero net state change.
func (r *RegistrationRepository) Enroll(ctx context.Context, studentID, courseID int64, semester string) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		insertSQL, insertArgs, err := r.sb.Insert("registrations").
			Columns("student_id", "course_id", "semester").
			Values(studentID, courseID, semester).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build insert registration query: %w", err)
		}

		if _, err := tx.Exec(ctx, insertSQL, insertArgs...); err != nil {
			switch {
			case dberrors.IsDuplicateConstraintError(err, uniqueRegistrationConstraint):
				return apperrors.ErrAlreadyRegistered
			case dberrors.IsForeignKeyViolation(err):
				return apperrors.ErrCourseNotFound
			}
			logger.Error().Err(err).Int64("studentID", studentID).Int64("courseID", courseID).
				Msg("Error inserting registration")
			return fmt.Errorf("error inserting registration: %w", err)
		}

		// The capacity guard lives in the same conditional update as the
		// increment, so two concurrent enrollments cannot race past the cap.
		updateSQL, updateArgs, err := r.sb.Update("courses").
			Set("current_enrollment", squirrel.Expr("current_enrollment + 1")).
			Where(squirrel.Expr("id = ? AND current_enrollment < max_capacity", courseID)).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build increment enrollment query: %w", err)
		}

		tag, err := tx.Exec(ctx, updateSQL, updateArgs...)
		if err != nil {
			if dberrors.IsCheckViolation(err, "courses_enrollment_bounds_check") {
				return apperrors.ErrCourseFull
			}
			logger.Error().Err(err).Int64("courseID", courseID).Msg("Error incrementing course enrollment")
			return fmt.Errorf("error incrementing course enrollment: %w", err)
		}
		if tag.RowsAffected() == 0 {
			// The insert above proved the course exists, so the guard
			// only fails when the course is at capacity.
			return apperrors.ErrCourseFull
		}

		logger.Info().Int64("studentID", studentID).Int64("courseID", courseID).
			Str("semester", semester).Msg("Student enrolled in course")
		return nil
	})
}

// Drop deletes the registration and decrements the course counter as one
// transaction. Dropping a course the student is not registered for is a
// no-op and reports dropped=false; the counter is untouched.
func (r *RegistrationRepository) Drop(ctx context.Context, studentID, courseID int64) (bool, error) {
	dropped := false
	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		deleteSQL, deleteArgs, err := r.sb.Delete("registrations").
			Where(squirrel.Eq{"student_id": studentID, "course_id": courseID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build delete registration query: %w", err)
		}

		tag, err := tx.Exec(ctx, deleteSQL, deleteArgs...)
		if err != nil {
			logger.Error().Err(err).Int64("studentID", studentID).Int64("courseID", courseID).
				Msg("Error deleting registration")
			return fmt.Errorf("error deleting registration: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return nil
		}
		dropped = true

		// Guarded so a drop can never push the counter below zero.
		updateSQL, updateArgs, err := r.sb.Update("courses").
			Set("current_enrollment", squirrel.Expr("current_enrollment - 1")).
			Where(squirrel.Expr("id = ? AND current_enrollment > 0", courseID)).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build decrement enrollment query: %w", err)
		}

		decTag, err := tx.Exec(ctx, updateSQL, updateArgs...)
		if err != nil {
			logger.Error().Err(err).Int64("courseID", courseID).Msg("Error decrementing course enrollment")
			return fmt.Errorf("error decrementing course enrollment: %w", err)
		}
		if decTag.RowsAffected() == 0 {
			// A registration existed while the counter was already zero;
			// the row removal still stands.
			logger.Warn().Int64("courseID", courseID).Msg("Enrollment counter was zero while dropping a registration")
		}

		logger.Info().Int64("studentID", studentID).Int64("courseID", courseID).Msg("Student dropped course")
		return nil
	})
	if err != nil {
		return false, err
	}
	return dropped, nil
}

// ListRegistrations returns the student's registrations, newest first.
func (r *RegistrationRepository) ListRegistrations(ctx context.Context, studentID int64) ([]models.Registration, error) {
	sql, args, err := r.sb.Select("id", "student_id", "course_id", "semester", "registered_at").
		From("registrations").
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("registered_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list registrations query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing registrations: %w", err)
	}
	defer rows.Close()

	var registrations []models.Registration
	for rows.Next() {
		var reg models.Registration
		if err := rows.Scan(&reg.ID, &reg.StudentID, &reg.CourseID, &reg.Semester, &reg.RegisteredAt); err != nil {
			return nil, fmt.Errorf("error scanning registration row: %w", err)
		}
		registrations = append(registrations, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating registration rows: %w", err)
	}
	return registrations, nil
}
