// Package seed fills an empty database with a starter course catalog and
// a welcome announcement so a fresh install has something to show.
package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/emres/studentportal/internal/app/repositories"
)

type seedCourse struct {
	Code        string
	Name        string
	Credits     int
	MaxCapacity int
}

var defaultCourses = []seedCourse{
	{Code: "CS101", Name: "Introduction to Computer Science", Credits: 4, MaxCapacity: 60},
	{Code: "CS201", Name: "Data Structures and Algorithms", Credits: 4, MaxCapacity: 40},
	{Code: "MATH101", Name: "Calculus I", Credits: 4, MaxCapacity: 80},
	{Code: "MATH201", Name: "Linear Algebra", Credits: 3, MaxCapacity: 50},
	{Code: "PHYS101", Name: "Physics I", Credits: 4, MaxCapacity: 60},
	{Code: "ENG101", Name: "Academic Writing", Credits: 2, MaxCapacity: 30},
	{Code: "HIST101", Name: "World History", Credits: 3, MaxCapacity: 45},
}

// CreateDefaultData inserts the starter courses and announcements if
// they are not already present. Safe to run on every startup.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (Courses/Announcements)...")

	for _, course := range defaultCourses {
		_, err := dbPool.Exec(ctx,
			`INSERT INTO courses (course_code, course_name, credits, max_capacity)
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT (course_code) DO NOTHING`,
			course.Code, course.Name, course.Credits, course.MaxCapacity)
		if err != nil {
			return fmt.Errorf("error seeding course %s: %w", course.Code, err)
		}
	}

	announcementRepo := repositories.NewAnnouncementRepository(dbPool)
	existing, err := announcementRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("error checking existing announcements: %w", err)
	}
	if len(existing) == 0 {
		if err := announcementRepo.Create(ctx,
			"Welcome to the Student Portal",
			"Course registration for the Fall 2024 semester is now open. Browse the catalog and register before the add/drop deadline."); err != nil {
			return fmt.Errorf("error seeding announcement: %w", err)
		}
		if err := announcementRepo.Create(ctx,
			"Library Hours Extended",
			"The main library is open until midnight during the exam period."); err != nil {
			return fmt.Errorf("error seeding announcement: %w", err)
		}
	}

	lgr.Info().Msg("Default data check complete")
	return nil
}
