package db_test

import (
	"context"
	"testing"

	dbfs "github.com/garnizeh/skillswap/db"
	"github.com/garnizeh/skillswap/internal/db"
)

func TestMigrate_Idempotent(t *testing.T) {
	ctx := context.Background()

	d, err := db.New(ctx, "file:migrate_idem?mode=memory&cache=shared", nil)
	if err != nil {
		t.Fatalf("failed to open in-memory db: %v", err)
	}
	defer d.Close()

	if err := db.Migrate(ctx, d, dbfs.Migrations, dbfs.SeedFiles); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	var seeded int
	if err := d.QueryRow(ctx, `SELECT COUNT(1) FROM skills`).Scan(&seeded); err != nil {
		t.Fatalf("count skills: %v", err)
	}
	if seeded == 0 {
		t.Fatalf("expected seeded skills")
	}

	// second run must neither fail nor duplicate the seed
	if err := db.Migrate(ctx, d, dbfs.Migrations, dbfs.SeedFiles); err != nil {
		t.Fatalf("second migrate failed: %v", err)
	}
	var again int
	if err := d.QueryRow(ctx, `SELECT COUNT(1) FROM skills`).Scan(&again); err != nil {
		t.Fatalf("count skills: %v", err)
	}
	if again != seeded {
		t.Fatalf("seed not idempotent: %d then %d", seeded, again)
	}

	var count int
	row := d.QueryRow(ctx, `SELECT COUNT(1) FROM schema_migrations`)
	if err := row.Scan(&count); err != nil {
		t.Fatalf("scan schema_migrations count: %v", err)
	}
	if count < 1 {
		t.Fatalf("expected at least 1 migration recorded, got %d", count)
	}

	for _, table := range []string{"users", "skills", "user_skills", "skill_offerings", "chats", "messages"} {
		var name string
		r := d.QueryRow(ctx, `SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table)
		if err := r.Scan(&name); err != nil {
			t.Fatalf("expected %s table exists: %v", table, err)
		}
	}
}

func TestMigrate_WithoutSeed(t *testing.T) {
	ctx := context.Background()

	d, err := db.New(ctx, "file:migrate_noseed?mode=memory&cache=shared", nil)
	if err != nil {
		t.Fatalf("failed to open in-memory db: %v", err)
	}
	defer d.Close()

	if err := db.Migrate(ctx, d, dbfs.Migrations, nil); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	var n int
	if err := d.QueryRow(ctx, `SELECT COUNT(1) FROM skills`).Scan(&n); err != nil {
		t.Fatalf("count skills: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected empty catalog without seed, got %d", n)
	}
}
