package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/garnizeh/skillswap/internal/models"
)

const skillColumns = `id, category, name, slug, description, video_url, created_by, created`

func (r *SQLiteRepo) CreateSkill(ctx context.Context, s *models.Skill) (int64, error) {
	if s == nil {
		return 0, fmt.Errorf("skill is nil")
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO skills (category, name, slug, description, video_url, created_by, created) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.Category, s.Name, s.Slug, s.Description, s.VideoURL, s.CreatedBy, now())
	if err != nil {
		return 0, mapErr("create skill", err)
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetSkillByID(ctx context.Context, id int64) (*models.Skill, error) {
	return scanSkill(r.conn.QueryRow(ctx, `SELECT `+skillColumns+` FROM skills WHERE id = ?`, id))
}

func (r *SQLiteRepo) GetSkillBySlug(ctx context.Context, slug string) (*models.Skill, error) {
	return scanSkill(r.conn.QueryRow(ctx, `SELECT `+skillColumns+` FROM skills WHERE slug = ?`, slug))
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSkill(row scanner) (*models.Skill, error) {
	var s models.Skill
	var created int64
	if err := row.Scan(&s.ID, &s.Category, &s.Name, &s.Slug, &s.Description, &s.VideoURL, &s.CreatedBy, &created); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	s.CreatedAt = fromMillis(created)
	return &s, nil
}

// ListSkills pages through the catalog in id order. An empty category matches all.
func (r *SQLiteRepo) ListSkills(ctx context.Context, category string, limit, offset int) ([]models.Skill, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT `+skillColumns+` FROM skills WHERE (? = '' OR category = ?) ORDER BY id LIMIT ? OFFSET ?`, category, category, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Skill
	for rows.Next() {
		s, err := scanSkill(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

func (r *SQLiteRepo) CountSkills(ctx context.Context, category string) (int64, error) {
	var n int64
	row := r.conn.QueryRow(ctx, `SELECT COUNT(1) FROM skills WHERE (? = '' OR category = ?)`, category, category)
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
