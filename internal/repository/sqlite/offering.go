package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/garnizeh/skillswap/internal/models"
)

const offeringColumns = `id, skill_id, user_id, slug, description, image_url, video_url, created`

func (r *SQLiteRepo) CreateOffering(ctx context.Context, o *models.SkillOffering) (int64, error) {
	if o == nil {
		return 0, fmt.Errorf("offering is nil")
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO skill_offerings (skill_id, user_id, slug, description, image_url, video_url, created) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		o.SkillID, o.UserID, o.Slug, o.Description, o.ImageURL, o.VideoURL, now())
	if err != nil {
		return 0, mapErr("create offering", err)
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetOfferingBySlug(ctx context.Context, slug string) (*models.SkillOffering, error) {
	return scanOffering(r.conn.QueryRow(ctx, `SELECT `+offeringColumns+` FROM skill_offerings WHERE slug = ?`, slug))
}

// ListOfferings returns offerings of userID, or all offerings when userID is 0.
func (r *SQLiteRepo) ListOfferings(ctx context.Context, userID int64) ([]models.SkillOffering, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT `+offeringColumns+` FROM skill_offerings WHERE (? = 0 OR user_id = ?) ORDER BY id`, userID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.SkillOffering
	for rows.Next() {
		o, err := scanOffering(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

func scanOffering(row scanner) (*models.SkillOffering, error) {
	var o models.SkillOffering
	var created int64
	if err := row.Scan(&o.ID, &o.SkillID, &o.UserID, &o.Slug, &o.Description, &o.ImageURL, &o.VideoURL, &created); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	o.CreatedAt = fromMillis(created)
	return &o, nil
}
