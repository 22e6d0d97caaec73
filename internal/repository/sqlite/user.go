package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/garnizeh/skillswap/internal/models"
	"github.com/garnizeh/skillswap/pkg/repository"
)

const userColumns = `id, email, password_hash, first_name, last_name, username, bio, photo_url, onboarded, created, updated`

// foldUsername is the case-folded form the unique index compares. SQLite's
// lower() only folds ASCII letters. A Caser is stateful, so each call gets its own.
func foldUsername(s string) string {
	return cases.Fold().String(s)
}

func usernameKey(username *string) sql.NullString {
	if username == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: foldUsername(*username), Valid: true}
}

func (r *SQLiteRepo) CreateUser(ctx context.Context, u *models.User) (int64, error) {
	if u == nil {
		return 0, fmt.Errorf("user is nil")
	}

	ts := now()
	res, err := r.conn.Exec(ctx, `INSERT INTO users (email, password_hash, first_name, last_name, username, username_key, bio, photo_url, onboarded, created, updated) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		strings.ToLower(strings.TrimSpace(u.Email)), u.PasswordHash, u.FirstName, u.LastName, nullString(u.Username), usernameKey(u.Username), u.Bio, u.PhotoURL, u.Onboarded, ts, ts)
	if err != nil {
		return 0, mapErr("create user", err)
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return r.scanUser(ctx, row)
}

func (r *SQLiteRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, strings.ToLower(strings.TrimSpace(email)))
	return r.scanUser(ctx, row)
}

func (r *SQLiteRepo) scanUser(ctx context.Context, row *sql.Row) (*models.User, error) {
	var u models.User
	var username sql.NullString
	var created, updated int64
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &username, &u.Bio, &u.PhotoURL, &u.Onboarded, &created, &updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	if username.Valid {
		u.Username = &username.String
	}
	u.CreatedAt = fromMillis(created)
	u.UpdatedAt = fromMillis(updated)

	var err error
	if u.SkillsOffered, err = r.ListUserSkillIDs(ctx, u.ID, repository.SkillsOffered); err != nil {
		return nil, err
	}
	if u.SkillsWanted, err = r.ListUserSkillIDs(ctx, u.ID, repository.SkillsWanted); err != nil {
		return nil, err
	}
	if u.SavedSkills, err = r.ListUserSkillIDs(ctx, u.ID, repository.SkillsSaved); err != nil {
		return nil, err
	}

	return &u, nil
}

func (r *SQLiteRepo) UsernameTaken(ctx context.Context, username string, excludeID int64) (bool, error) {
	var n int
	row := r.conn.QueryRow(ctx, `SELECT COUNT(1) FROM users WHERE username_key = ? AND id != ?`, foldUsername(username), excludeID)
	if err := row.Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// UpdateProfile writes the mutable profile columns. Skill relations are
// managed through the *UserSkill methods.
func (r *SQLiteRepo) UpdateProfile(ctx context.Context, u *models.User) error {
	if u == nil {
		return fmt.Errorf("user is nil")
	}

	_, err := r.conn.Exec(ctx, `UPDATE users SET first_name = ?, last_name = ?, username = ?, username_key = ?, bio = ?, photo_url = ?, onboarded = ?, updated = ? WHERE id = ?`,
		u.FirstName, u.LastName, nullString(u.Username), usernameKey(u.Username), u.Bio, u.PhotoURL, u.Onboarded, now(), u.ID)
	return mapErr("update profile", err)
}

func (r *SQLiteRepo) AddUserSkill(ctx context.Context, userID, skillID int64, kind string) error {
	_, err := r.conn.Exec(ctx, `INSERT OR IGNORE INTO user_skills (user_id, skill_id, kind) VALUES (?, ?, ?)`, userID, skillID, kind)
	return err
}

func (r *SQLiteRepo) RemoveUserSkill(ctx context.Context, userID, skillID int64, kind string) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM user_skills WHERE user_id = ? AND skill_id = ? AND kind = ?`, userID, skillID, kind)
	return err
}

func (r *SQLiteRepo) ListUserSkillIDs(ctx context.Context, userID int64, kind string) ([]int64, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT skill_id FROM user_skills WHERE user_id = ? AND kind = ? ORDER BY rowid`, userID, kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (r *SQLiteRepo) ReplaceUserSkills(ctx context.Context, userID int64, kind string, skillIDs []int64) error {
	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM user_skills WHERE user_id = ? AND kind = ?`, userID, kind); err != nil {
		return fmt.Errorf("clear %s skills: %w", kind, err)
	}
	for _, id := range skillIDs {
		if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO user_skills (user_id, skill_id, kind) VALUES (?, ?, ?)`, userID, id, kind); err != nil {
			return fmt.Errorf("insert %s skill: %w", kind, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
