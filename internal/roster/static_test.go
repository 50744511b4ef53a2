package roster

import (
	"context"
	"testing"

	"github.com/sreepuli/AquaAlert-sub000/internal/domain/official"
)

func rosterFixture() []*official.Official {
	return []*official.Official{
		{ID: "OFF-1", Name: "A", Email: "a@phed.gov.in", District: "Nalgonda", Tags: []string{official.TagCriticalAlerts}},
		{ID: "OFF-2", Name: "B", Email: "b@phed.gov.in", District: "Nalgonda", Tags: []string{official.TagWaterQuality}},
		{ID: "OFF-3", Name: "C", Email: "c@phed.gov.in", District: "Suryapet", Tags: []string{official.TagCriticalAlerts, official.TagDailySummary}},
	}
}

func TestStaticRepository_List(t *testing.T) {
	repo := NewStaticRepository(rosterFixture())
	ctx := context.Background()

	tests := []struct {
		name   string
		filter official.Filter
		want   []string
	}{
		{"all", official.Filter{}, []string{"OFF-1", "OFF-2", "OFF-3"}},
		{"by district", official.Filter{District: "Nalgonda"}, []string{"OFF-1", "OFF-2"}},
		{"by tag", official.Filter{Tag: official.TagCriticalAlerts}, []string{"OFF-1", "OFF-3"}},
		{"district and tag", official.Filter{District: "Suryapet", Tag: official.TagDailySummary}, []string{"OFF-3"}},
		{"no match", official.Filter{District: "Warangal"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.List(ctx, tt.filter)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("List returned %d officials, want %d", len(got), len(tt.want))
			}
			for i, o := range got {
				if o.ID != tt.want[i] {
					t.Errorf("got[%d].ID = %q, want %q", i, o.ID, tt.want[i])
				}
			}
		})
	}
}

func TestStaticRepository_ListReturnsCopies(t *testing.T) {
	source := rosterFixture()
	repo := NewStaticRepository(source)

	got, err := repo.List(context.Background(), official.Filter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	got[0].Email = "mutated@phed.gov.in"
	if source[0].Email != "a@phed.gov.in" {
		t.Error("mutating a listed official leaked into the backing roster")
	}
}
