package roster

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/sreepuli/AquaAlert-sub000/internal/domain/official"
)

func openTestDB(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := OpenSQLite(filepath.Join(t.TempDir(), "officials.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSQLiteRepository_SeedAndList(t *testing.T) {
	repo := openTestDB(t)
	ctx := context.Background()

	if err := repo.Seed(ctx, rosterFixture()); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	got, err := repo.List(ctx, official.Filter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("List returned %d officials, want 3", len(got))
	}

	got, err = repo.List(ctx, official.Filter{District: "Nalgonda"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("district filter returned %d officials, want 2", len(got))
	}

	got, err = repo.List(ctx, official.Filter{Tag: official.TagDailySummary})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 || got[0].ID != "OFF-3" {
		t.Errorf("tag filter returned %+v, want OFF-3 only", got)
	}
}

func TestSQLiteRepository_SeedIsIdempotent(t *testing.T) {
	repo := openTestDB(t)
	ctx := context.Background()

	if err := repo.Seed(ctx, rosterFixture()); err != nil {
		t.Fatalf("first Seed: %v", err)
	}
	if err := repo.Seed(ctx, rosterFixture()); err != nil {
		t.Fatalf("second Seed: %v", err)
	}

	got, err := repo.List(ctx, official.Filter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("List returned %d officials after double seed, want 3", len(got))
	}
}

func TestSQLiteRepository_TagsRoundTrip(t *testing.T) {
	repo := openTestDB(t)
	ctx := context.Background()

	if err := repo.Seed(ctx, rosterFixture()); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	got, err := repo.List(ctx, official.Filter{District: "Suryapet"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("List returned %d officials, want 1", len(got))
	}
	o := got[0]
	if !o.HasTag(official.TagCriticalAlerts) || !o.HasTag(official.TagDailySummary) {
		t.Errorf("tags lost in round trip: %v", o.Tags)
	}
}
