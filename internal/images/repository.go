// Package images lists the pre-registered article images (the gallery) and
// user avatars that articles and users reference by id.
package images

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/GyroZepelix/newsboard/internal/database"
)

// Image is a gallery row.
type Image struct {
	ImgID  int    `json:"img_id"`
	ImgURL string `json:"img_url"`
}

// Avatar is an avatars row.
type Avatar struct {
	AvatarID     int    `json:"avatar_id"`
	AvatarImgURL string `json:"avatar_img_url"`
}

// Repository reads the gallery and avatars tables.
type Repository struct {
	db database.Querier
}

// NewRepository creates a new images Repository.
func NewRepository(db database.Querier) *Repository {
	return &Repository{db: db}
}

// Gallery returns every article image ordered by id.
func (r *Repository) Gallery(ctx context.Context) ([]Image, error) {
	rows, err := r.db.Query(ctx, `SELECT img_id, img_url FROM gallery ORDER BY img_id`)
	if err != nil {
		return nil, fmt.Errorf("querying gallery: %w", err)
	}
	images, err := pgx.CollectRows(rows, pgx.RowToStructByPos[Image])
	if err != nil {
		return nil, fmt.Errorf("scanning gallery: %w", err)
	}
	return images, nil
}

// Avatars returns every avatar ordered by id.
func (r *Repository) Avatars(ctx context.Context) ([]Avatar, error) {
	rows, err := r.db.Query(ctx, `SELECT avatar_id, avatar_img_url FROM avatars ORDER BY avatar_id`)
	if err != nil {
		return nil, fmt.Errorf("querying avatars: %w", err)
	}
	avatars, err := pgx.CollectRows(rows, pgx.RowToStructByPos[Avatar])
	if err != nil {
		return nil, fmt.Errorf("scanning avatars: %w", err)
	}
	return avatars, nil
}
