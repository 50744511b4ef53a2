package services

import (
	"context"
	"errors"
	"testing"

	"github.com/sreepuli/AquaAlert-sub000/internal/domain/alert"
	"github.com/sreepuli/AquaAlert-sub000/internal/domain/official"
	"github.com/sreepuli/AquaAlert-sub000/internal/pkg/logger"
	"github.com/sreepuli/AquaAlert-sub000/internal/testutil"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Format: "json"})
}

func TestRecipientResolver_Resolve(t *testing.T) {
	roster := testutil.NewMockRoster(
		testutil.Official("OFF-1", "critical@example.org", "District Collector", "Nalgonda", official.TagCriticalAlerts),
		testutil.Official("OFF-2", "quality@example.org", "Water Engineer", "Suryapet", official.TagWaterQuality),
		testutil.Official("OFF-3", "local@example.org", "Sarpanch", "Nalgonda"),
		testutil.Official("OFF-4", "unrelated@example.org", "Clerk", "Warangal"),
	)
	resolver := NewRecipientResolver(roster, nil, testLogger())

	tests := []struct {
		name       string
		severity   string
		district   string
		wantEmails []string
	}{
		{
			name:       "critical alert reaches tag and district subscribers",
			severity:   alert.SeverityCritical,
			district:   "Nalgonda",
			wantEmails: []string{"critical@example.org", "quality@example.org", "local@example.org"},
		},
		{
			name:       "warning alert reaches water quality subscribers",
			severity:   alert.SeverityWarning,
			district:   "Suryapet",
			wantEmails: []string{"quality@example.org"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolver.Resolve(context.Background(), tt.severity, tt.district)

			emails := make(map[string]bool)
			for _, o := range got {
				emails[o.Email] = true
			}
			for _, want := range tt.wantEmails {
				if !emails[want] {
					t.Errorf("Resolve() missing recipient %s, got %v", want, emails)
				}
			}
		})
	}
}

func TestRecipientResolver_TagSubscriberOutsideDistrict(t *testing.T) {
	roster := testutil.NewMockRoster(
		testutil.Official("OFF-1", "local@example.org", "Sarpanch", "Nalgonda"),
		testutil.Official("OFF-2", "statewide@example.org", "State Engineer", "Suryapet", official.TagWaterQuality),
		testutil.Official("OFF-3", "unrelated@example.org", "Clerk", "Warangal"),
	)
	resolver := NewRecipientResolver(roster, nil, testLogger())

	got := resolver.Resolve(context.Background(), alert.SeverityCritical, "Nalgonda")

	emails := make(map[string]bool)
	for _, o := range got {
		emails[o.Email] = true
	}
	if !emails["statewide@example.org"] {
		t.Errorf("Resolve() dropped a tagged subscriber outside the alert district, got %v", emails)
	}
	if !emails["local@example.org"] {
		t.Errorf("Resolve() dropped a district official, got %v", emails)
	}
	if emails["unrelated@example.org"] {
		t.Errorf("Resolve() included an untagged official from another district, got %v", emails)
	}
}

func TestRecipientResolver_DedupByEmail(t *testing.T) {
	roster := testutil.NewMockRoster(
		testutil.Official("OFF-1", "shared@example.org", "Engineer", "Nalgonda", official.TagWaterQuality),
		testutil.Official("OFF-2", "shared@example.org", "Engineer", "Nalgonda", official.TagCriticalAlerts),
	)
	resolver := NewRecipientResolver(roster, nil, testLogger())

	got := resolver.Resolve(context.Background(), alert.SeverityCritical, "Nalgonda")
	if len(got) != 1 {
		t.Fatalf("Resolve() returned %d recipients, want 1 after dedup", len(got))
	}
}

func TestRecipientResolver_FallbackOnError(t *testing.T) {
	fallback := []*official.Official{
		testutil.Official("OFF-9", "fallback@example.org", "Health Officer", "Nalgonda", official.TagWaterQuality),
	}
	roster := testutil.NewMockRoster()
	roster.ListError = errors.New("connection refused")
	resolver := NewRecipientResolver(roster, fallback, testLogger())

	got := resolver.Resolve(context.Background(), alert.SeverityWarning, "Nalgonda")
	if len(got) != 1 || got[0].Email != "fallback@example.org" {
		t.Fatalf("Resolve() = %+v, want static fallback recipient", got)
	}
	if roster.Calls != 1 {
		t.Errorf("roster lookup calls = %d, want 1", roster.Calls)
	}
}

func TestRecipientResolver_FallbackOnEmptyRoster(t *testing.T) {
	fallback := []*official.Official{
		testutil.Official("OFF-9", "fallback@example.org", "Engineer", "Nalgonda", official.TagWaterQuality),
	}
	resolver := NewRecipientResolver(testutil.NewMockRoster(), fallback, testLogger())

	got := resolver.Resolve(context.Background(), alert.SeverityWarning, "")
	if len(got) != 1 {
		t.Fatalf("Resolve() returned %d recipients, want fallback to be used", len(got))
	}
}

func TestRecipientResolver_ResolveSummary(t *testing.T) {
	roster := testutil.NewMockRoster(
		testutil.Official("OFF-1", "digest@example.org", "Clerk", "Nalgonda", official.TagDailySummary),
		testutil.Official("OFF-2", "director@example.org", "District Director PHED", "Nalgonda"),
		testutil.Official("OFF-3", "officer@example.org", "Medical Officer", "Suryapet"),
		testutil.Official("OFF-4", "clerk@example.org", "Clerk", "Warangal"),
	)
	resolver := NewRecipientResolver(roster, nil, testLogger())

	got := resolver.ResolveSummary(context.Background())
	if len(got) != 3 {
		t.Fatalf("ResolveSummary() returned %d recipients, want 3: %+v", len(got), got)
	}
	for _, o := range got {
		if o.Email == "clerk@example.org" {
			t.Error("ResolveSummary() included a recipient with no digest affinity")
		}
	}
}
