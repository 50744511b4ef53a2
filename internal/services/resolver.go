package services

import (
	"context"
	"strings"

	"github.com/sreepuli/AquaAlert-sub000/internal/domain/alert"
	"github.com/sreepuli/AquaAlert-sub000/internal/domain/official"
	"github.com/sreepuli/AquaAlert-sub000/internal/pkg/logger"
	"github.com/sreepuli/AquaAlert-sub000/internal/pkg/metrics"
)

// RecipientResolver computes the officials to notify for an alert. A
// failed live roster lookup degrades to the embedded fallback roster and
// is never raised to the caller.
type RecipientResolver struct {
	roster   official.Repository
	fallback []*official.Official
	logger   *logger.Logger
}

// NewRecipientResolver creates a new recipient resolver
func NewRecipientResolver(roster official.Repository, fallback []*official.Official, log *logger.Logger) *RecipientResolver {
	return &RecipientResolver{
		roster:   roster,
		fallback: fallback,
		logger:   log,
	}
}

// Resolve returns the deduplicated officials to notify for an alert of
// the given severity in the given district.
func (r *RecipientResolver) Resolve(ctx context.Context, severity, district string) []*official.Official {
	roster := r.lookup(ctx)
	tag := severityTag(severity)

	var matched []*official.Official
	for _, o := range roster {
		if o.HasTag(tag) || o.HasTag(official.TagWaterQuality) || (district != "" && o.District == district) {
			matched = append(matched, o)
		}
	}

	return dedupByEmail(matched)
}

// ResolveSummary returns the broader daily-digest recipient set:
// officials subscribed to the daily summary or holding a directorial or
// officer position.
func (r *RecipientResolver) ResolveSummary(ctx context.Context) []*official.Official {
	roster := r.lookup(ctx)

	var matched []*official.Official
	for _, o := range roster {
		if o.HasTag(official.TagDailySummary) || containsFold(o.Position, "director") || containsFold(o.Position, "officer") {
			matched = append(matched, o)
		}
	}

	return dedupByEmail(matched)
}

// lookup fetches the whole roster and falls back to the static list.
// Lookup failure is a cache miss, not an error. The tag and district
// predicates run over the full roster so that subscribers outside the
// alert's district still receive their tagged notifications.
func (r *RecipientResolver) lookup(ctx context.Context) []*official.Official {
	officials, err := r.roster.List(ctx, official.Filter{})
	if err != nil {
		r.logger.ErrorWithErr(err, "Roster lookup failed, using static fallback")
		metrics.RecordRosterFallback()
		return r.fallback
	}
	if len(officials) == 0 {
		return r.fallback
	}
	return officials
}

// severityTag maps an alert severity to its subscription tag
func severityTag(severity string) string {
	if severity == alert.SeverityCritical {
		return official.TagCriticalAlerts
	}
	return official.TagWaterQuality
}

// dedupByEmail drops officials whose email was already seen, preserving
// first-seen order.
func dedupByEmail(in []*official.Official) []*official.Official {
	seen := make(map[string]struct{}, len(in))
	out := make([]*official.Official, 0, len(in))
	for _, o := range in {
		if _, ok := seen[o.Email]; ok {
			continue
		}
		seen[o.Email] = struct{}{}
		out = append(out, o)
	}
	return out
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
