package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sreepuli/AquaAlert-sub000/internal/domain/alert"
	"github.com/sreepuli/AquaAlert-sub000/internal/domain/official"
	"github.com/sreepuli/AquaAlert-sub000/internal/domain/sensor"
	"github.com/sreepuli/AquaAlert-sub000/internal/testutil"
)

// fakeStore returns canned window contents regardless of the
// requested bounds
type fakeStore struct {
	readings []*sensor.Reading
	alerts   []*alert.Alert
	active   int

	gotStart, gotEnd time.Time
}

func (f *fakeStore) ReadingsBetween(start, end time.Time) []*sensor.Reading {
	f.gotStart, f.gotEnd = start, end
	return f.readings
}

func (f *fakeStore) AlertsBetween(start, end time.Time) []*alert.Alert {
	return f.alerts
}

func (f *fakeStore) ActiveSensorCount() int { return f.active }

func summaryAlert(id, severity string) *alert.Alert {
	return &alert.Alert{
		ID:       id,
		SensorID: "WQ-001",
		Severity: severity,
		Status:   alert.StatusActive,
		Location: sensor.Location{Village: "Rampur", District: "Nalgonda"},
		Findings: []alert.Finding{{
			Kind:      alert.KindCritical,
			Parameter: sensor.ParamEColi,
			Value:     15,
			Message:   "E.coli detected",
			Action:    "Issue boil-water advisory",
		}},
	}
}

func summaryRoster() *testutil.MockRoster {
	return testutil.NewMockRoster(
		testutil.Official("o-1", "director@phed.gov.in", "District Director PHED", "Nalgonda"),
		testutil.Official("o-2", "digest@phed.gov.in", "Clerk", "Nalgonda", official.TagDailySummary),
	)
}

func newSummaryService(store *fakeStore, mailer *testutil.MockMailer, roster official.Repository) *SummaryService {
	log := testLogger()
	resolver := NewRecipientResolver(roster, nil, log)
	svc := NewSummaryService(store, resolver, mailer, "alerts@aquaalert.local", []string{"collector@district.gov.in"}, log)
	svc.now = func() time.Time {
		return time.Date(2026, time.July, 15, 18, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestSummaryService_Collect(t *testing.T) {
	store := &fakeStore{
		readings: []*sensor.Reading{
			testutil.NormalReading("WQ-001", time.Now()),
			testutil.NormalReading("WQ-002", time.Now()),
			testutil.NormalReading("WQ-001", time.Now()),
		},
		alerts: []*alert.Alert{
			summaryAlert("a-1", alert.SeverityCritical),
			summaryAlert("a-2", alert.SeverityWarning),
			summaryAlert("a-3", alert.SeverityCritical),
		},
		active: 4,
	}
	svc := newSummaryService(store, testutil.NewMockMailer(), summaryRoster())

	stats, alerts := svc.Collect(time.Time{}, time.Time{})

	if stats.TotalReadings != 3 {
		t.Errorf("TotalReadings = %d, want 3", stats.TotalReadings)
	}
	if stats.ActiveSensors != 4 {
		t.Errorf("ActiveSensors = %d, want 4", stats.ActiveSensors)
	}
	if stats.TotalAlerts != 3 || stats.CriticalAlerts != 2 || stats.WarningAlerts != 1 {
		t.Errorf("alert counts = %d/%d/%d, want 3/2/1", stats.TotalAlerts, stats.CriticalAlerts, stats.WarningAlerts)
	}
	if len(alerts) != 3 {
		t.Errorf("Collect returned %d alerts, want 3", len(alerts))
	}
	if got := stats.WindowEnd.Sub(stats.WindowStart); got != summaryWindow {
		t.Errorf("window length = %s, want %s", got, summaryWindow)
	}
	if !store.gotStart.Equal(stats.WindowStart) || !store.gotEnd.Equal(stats.WindowEnd) {
		t.Error("store queried with different bounds than reported")
	}
}

func TestSummaryService_CollectExplicitWindow(t *testing.T) {
	store := &fakeStore{active: 1}
	svc := newSummaryService(store, testutil.NewMockMailer(), summaryRoster())

	start := time.Date(2026, time.July, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.July, 12, 0, 0, 0, 0, time.UTC)
	stats, _ := svc.Collect(start, end)

	if !stats.WindowStart.Equal(start) || !stats.WindowEnd.Equal(end) {
		t.Errorf("window = %s to %s, want requested bounds", stats.WindowStart, stats.WindowEnd)
	}
	if !store.gotStart.Equal(start) || !store.gotEnd.Equal(end) {
		t.Error("store queried with different bounds than requested")
	}
}

func TestSummaryService_CollectZeroStartDefaultsFromEnd(t *testing.T) {
	store := &fakeStore{active: 1}
	svc := newSummaryService(store, testutil.NewMockMailer(), summaryRoster())

	end := time.Date(2026, time.July, 12, 6, 0, 0, 0, time.UTC)
	stats, _ := svc.Collect(time.Time{}, end)

	if !stats.WindowEnd.Equal(end) {
		t.Errorf("WindowEnd = %s, want %s", stats.WindowEnd, end)
	}
	if !stats.WindowStart.Equal(end.Add(-summaryWindow)) {
		t.Errorf("WindowStart = %s, want %s", stats.WindowStart, end.Add(-summaryWindow))
	}
}

func TestSummaryService_Send(t *testing.T) {
	store := &fakeStore{
		readings: []*sensor.Reading{testutil.NormalReading("WQ-001", time.Now())},
		alerts:   []*alert.Alert{summaryAlert("a-1", alert.SeverityCritical)},
		active:   2,
	}
	mailer := testutil.NewMockMailer()
	svc := newSummaryService(store, mailer, summaryRoster())

	stats, err := svc.Send(context.Background(), time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if stats.TotalAlerts != 1 {
		t.Errorf("TotalAlerts = %d, want 1", stats.TotalAlerts)
	}
	if len(mailer.Sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(mailer.Sent))
	}

	msg := mailer.Sent[0]
	if msg.Subject != "AquaAlert daily summary: 1 readings, 1 alerts" {
		t.Errorf("Subject = %q", msg.Subject)
	}
	if len(msg.To) != 2 {
		t.Errorf("To has %d recipients, want 2", len(msg.To))
	}
	if len(msg.CC) != 1 || msg.CC[0] != "collector@district.gov.in" {
		t.Errorf("CC = %v", msg.CC)
	}
	if !msg.HTML {
		t.Error("digest not marked HTML")
	}
	if !strings.Contains(msg.Body, "WQ-001") {
		t.Error("body missing alert sensor")
	}
}

func TestSummaryService_SendSkipsWithoutRecipients(t *testing.T) {
	store := &fakeStore{active: 1}
	mailer := testutil.NewMockMailer()
	roster := testutil.NewMockRoster(
		testutil.Official("o-1", "clerk@phed.gov.in", "Clerk", "Nalgonda"),
	)
	svc := newSummaryService(store, mailer, roster)

	stats, err := svc.Send(context.Background(), time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if stats.ActiveSensors != 1 {
		t.Errorf("stats lost on skip: %+v", stats)
	}
	if len(mailer.Sent) != 0 {
		t.Errorf("sent %d messages, want 0", len(mailer.Sent))
	}
}

func TestSummaryService_SendReportsMailerFailure(t *testing.T) {
	store := &fakeStore{
		alerts: []*alert.Alert{summaryAlert("a-1", alert.SeverityWarning)},
		active: 1,
	}
	mailer := testutil.NewMockMailer()
	mailer.SendError = errors.New("connection refused")
	svc := newSummaryService(store, mailer, summaryRoster())

	stats, err := svc.Send(context.Background(), time.Time{}, time.Time{})
	if err == nil {
		t.Fatal("expected mailer error")
	}
	if stats.TotalAlerts != 1 {
		t.Errorf("stats lost on failure: %+v", stats)
	}
}
