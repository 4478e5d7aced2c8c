package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emres/studentportal/internal/app/models"
)

// CourseRepository handles read access to the course catalog.
type CourseRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var courseColumns = []string{"id", "course_code", "course_name", "credits", "current_enrollment", "max_capacity"}

// GetAll lists the whole catalog ordered by course code.
func (r *CourseRepository) GetAll(ctx context.Context) ([]models.Course, error) {
	sql, args, err := r.sb.Select(courseColumns...).
		From("courses").
		OrderBy("course_code").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list courses query: %w", err)
	}
	return r.queryCourses(ctx, sql, args)
}

// GetByStudentID lists the courses a student is registered for.
func (r *CourseRepository) GetByStudentID(ctx context.Context, studentID int64) ([]models.Course, error) {
	sql, args, err := r.sb.Select(
		"c.id", "c.course_code", "c.course_name", "c.credits", "c.current_enrollment", "c.max_capacity").
		From("courses c").
		Join("registrations r ON c.id = r.course_id").
		Where(squirrel.Eq{"r.student_id": studentID}).
		OrderBy("c.course_code").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build student courses query: %w", err)
	}
	return r.queryCourses(ctx, sql, args)
}

func (r *CourseRepository) queryCourses(ctx context.Context, sql string, args []interface{}) ([]models.Course, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	defer rows.Close()

	var courses []models.Course
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(&course.ID, &course.CourseCode, &course.CourseName, &course.Credits,
			&course.CurrentEnrollment, &course.MaxCapacity); err != nil {
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating course rows: %w", err)
	}
	return courses, nil
}
