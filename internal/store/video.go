package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/pacifichome/smarthome-admin/internal/models"
)

// CreateVideo inserts a video row and returns its ID.
func (s *Store) CreateVideo(ctx context.Context, v *models.Video) (int64, error) {
	res, err := s.DB.ExecContext(ctx,
		`INSERT INTO videos (title, description, url, thm, created_at) VALUES (?, ?, ?, ?, ?)`,
		v.Title, v.Description, v.URL, v.Thm, time.Now())
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	v.ID = id
	return id, nil
}

// Videos lists every video, newest first.
func (s *Store) Videos(ctx context.Context) ([]models.Video, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, title, description, url, thm FROM videos ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	videos := []models.Video{}
	for rows.Next() {
		var v models.Video
		if err := rows.Scan(&v.ID, &v.Title, &v.Description, &v.URL, &v.Thm); err != nil {
			return nil, err
		}
		videos = append(videos, v)
	}
	return videos, rows.Err()
}

// Video fetches a single video by ID.
func (s *Store) Video(ctx context.Context, id int64) (*models.Video, error) {
	var v models.Video
	err := s.DB.QueryRowContext(ctx,
		`SELECT id, title, description, url, thm FROM videos WHERE id = ?`, id).
		Scan(&v.ID, &v.Title, &v.Description, &v.URL, &v.Thm)
	if err == sql.ErrNoRows {
		return nil, NotFoundError{Message: "Video not found"}
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// UpdateVideo replaces the title and description of an existing video.
func (s *Store) UpdateVideo(ctx context.Context, id int64, title, description string) error {
	res, err := s.DB.ExecContext(ctx,
		`UPDATE videos SET title = ?, description = ? WHERE id = ?`,
		title, description, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return NotFoundError{Message: "Video not found"}
	}
	return nil
}

// DeleteVideo removes a video row.
func (s *Store) DeleteVideo(ctx context.Context, id int64) error {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM videos WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return NotFoundError{Message: "Video not found"}
	}
	return nil
}
