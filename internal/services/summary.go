package services

import (
	"context"
	"time"

	"github.com/sreepuli/AquaAlert-sub000/internal/domain/alert"
	"github.com/sreepuli/AquaAlert-sub000/internal/domain/mail"
	"github.com/sreepuli/AquaAlert-sub000/internal/domain/sensor"
	"github.com/sreepuli/AquaAlert-sub000/internal/pkg/logger"
	"github.com/sreepuli/AquaAlert-sub000/internal/pkg/metrics"
)

// summaryWindow is how far back the daily digest looks
const summaryWindow = 24 * time.Hour

// SummaryStats aggregates activity over a reporting window
type SummaryStats struct {
	WindowStart    time.Time `json:"window_start"`
	WindowEnd      time.Time `json:"window_end"`
	TotalReadings  int       `json:"total_readings"`
	ActiveSensors  int       `json:"active_sensors"`
	TotalAlerts    int       `json:"total_alerts"`
	CriticalAlerts int       `json:"critical_alerts"`
	WarningAlerts  int       `json:"warning_alerts"`
}

// SimulationStore exposes the buffered state the digest reads from
type SimulationStore interface {
	ReadingsBetween(start, end time.Time) []*sensor.Reading
	AlertsBetween(start, end time.Time) []*alert.Alert
	ActiveSensorCount() int
}

// SummaryService builds and mails the daily activity digest
type SummaryService struct {
	store    SimulationStore
	resolver *RecipientResolver
	mailer   mail.Mailer
	from     string
	cc       []string
	now      func() time.Time
	logger   *logger.Logger
}

func NewSummaryService(store SimulationStore, resolver *RecipientResolver, mailer mail.Mailer, from string, cc []string, log *logger.Logger) *SummaryService {
	return &SummaryService{
		store:    store,
		resolver: resolver,
		mailer:   mailer,
		from:     from,
		cc:       cc,
		now:      time.Now,
		logger:   log,
	}
}

// Collect computes digest statistics for [start, end]. Zero bounds
// default to the 24 hour window ending now.
func (s *SummaryService) Collect(start, end time.Time) (SummaryStats, []*alert.Alert) {
	if end.IsZero() {
		end = s.now()
	}
	if start.IsZero() {
		start = end.Add(-summaryWindow)
	}

	readings := s.store.ReadingsBetween(start, end)
	alerts := s.store.AlertsBetween(start, end)

	stats := SummaryStats{
		WindowStart:   start,
		WindowEnd:     end,
		TotalReadings: len(readings),
		ActiveSensors: s.store.ActiveSensorCount(),
		TotalAlerts:   len(alerts),
	}
	for _, a := range alerts {
		switch a.Severity {
		case alert.SeverityCritical:
			stats.CriticalAlerts++
		case alert.SeverityWarning:
			stats.WarningAlerts++
		}
	}
	return stats, alerts
}

// Send builds the digest and mails it to the summary distribution list.
// A delivery failure is logged and returned but leaves the stats intact,
// so callers can still report what the window contained.
func (s *SummaryService) Send(ctx context.Context, start, end time.Time) (SummaryStats, error) {
	stats, alerts := s.Collect(start, end)

	recipients := s.resolver.ResolveSummary(ctx)
	if len(recipients) == 0 {
		s.logger.Warn("No summary recipients resolved, skipping digest")
		return stats, nil
	}

	subject, body, err := renderSummaryEmail(stats, alerts)
	if err != nil {
		metrics.RecordEmail("summary", "render_error")
		s.logger.ErrorWithErr(err, "Failed to render summary email")
		return stats, err
	}

	msg := &mail.Message{
		From:     s.from,
		To:       emails(recipients),
		CC:       s.cc,
		Subject:  subject,
		Body:     body,
		HTML:     true,
		Priority: mail.PriorityNormal,
	}

	result, err := s.mailer.Send(ctx, msg)
	if err != nil {
		metrics.RecordEmail("summary", "failed")
		s.logger.ErrorWithErr(err, "Failed to send daily summary")
		return stats, err
	}

	metrics.RecordEmail("summary", "sent")
	s.logger.Infof("Daily summary sent: message=%s recipients=%d alerts=%d", result.MessageID, len(result.Recipients), stats.TotalAlerts)
	return stats, nil
}
