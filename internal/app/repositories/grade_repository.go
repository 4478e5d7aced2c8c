package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emres/studentportal/internal/app/models"
)

// GradeRepository handles read access to grade records. Grades are
// written by an external process; the portal never mutates them.
type GradeRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewGradeRepository creates a new GradeRepository
func NewGradeRepository(db *pgxpool.Pool) *GradeRepository {
	return &GradeRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// ListByStudent returns the student's grades joined with course details,
// most recent academic year and semester first.
func (r *GradeRepository) ListByStudent(ctx context.Context, studentID int64) ([]models.GradeReport, error) {
	sql, args, err := r.sb.Select(
		"c.course_code", "c.course_name", "c.credits", "g.grade", "g.semester", "g.academic_year").
		From("grades g").
		Join("courses c ON g.course_id = c.id").
		Where(squirrel.Eq{"g.student_id": studentID}).
		OrderBy("g.academic_year DESC", "g.semester DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list grades query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing grades: %w", err)
	}
	defer rows.Close()

	var grades []models.GradeReport
	for rows.Next() {
		var grade models.GradeReport
		if err := rows.Scan(&grade.CourseCode, &grade.CourseName, &grade.Credits,
			&grade.Grade, &grade.Semester, &grade.AcademicYear); err != nil {
			return nil, fmt.Errorf("error scanning grade row: %w", err)
		}
		grades = append(grades, grade)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating grade rows: %w", err)
	}
	return grades, nil
}
