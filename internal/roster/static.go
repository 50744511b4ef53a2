// Package roster provides the officials roster backends. The resolver
// treats every backend as best-effort and falls back to static fleet
// data when a lookup fails.
package roster

import (
	"context"

	"github.com/sreepuli/AquaAlert-sub000/internal/domain/official"
)

// StaticRepository serves a fixed in-memory roster
type StaticRepository struct {
	officials []*official.Official
}

func NewStaticRepository(officials []*official.Official) *StaticRepository {
	return &StaticRepository{officials: officials}
}

// List returns copies of officials matching the filter
func (r *StaticRepository) List(_ context.Context, filter official.Filter) ([]*official.Official, error) {
	var out []*official.Official
	for _, o := range r.officials {
		if !matches(o, filter) {
			continue
		}
		cp := *o
		out = append(out, &cp)
	}
	return out, nil
}

func matches(o *official.Official, filter official.Filter) bool {
	if filter.District != "" && o.District != filter.District {
		return false
	}
	if filter.Tag != "" && !o.HasTag(filter.Tag) {
		return false
	}
	return true
}
