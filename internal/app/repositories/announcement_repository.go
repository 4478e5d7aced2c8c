package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emres/studentportal/internal/app/models"
)

// AnnouncementRepository handles access to portal-wide announcements.
type AnnouncementRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAnnouncementRepository creates a new AnnouncementRepository
func NewAnnouncementRepository(db *pgxpool.Pool) *AnnouncementRepository {
	return &AnnouncementRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetAll returns announcements newest first.
func (r *AnnouncementRepository) GetAll(ctx context.Context) ([]models.Announcement, error) {
	sql, args, err := r.sb.Select("id", "title", "content", "created_at").
		From("announcements").
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list announcements query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing announcements: %w", err)
	}
	defer rows.Close()

	var announcements []models.Announcement
	for rows.Next() {
		var a models.Announcement
		if err := rows.Scan(&a.ID, &a.Title, &a.Content, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning announcement row: %w", err)
		}
		announcements = append(announcements, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating announcement rows: %w", err)
	}
	return announcements, nil
}

// Create inserts an announcement; used by seeding.
func (r *AnnouncementRepository) Create(ctx context.Context, title, content string) error {
	sql, args, err := r.sb.Insert("announcements").
		Columns("title", "content").
		Values(title, content).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert announcement query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error creating announcement: %w", err)
	}
	return nil
}
