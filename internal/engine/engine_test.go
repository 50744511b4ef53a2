package engine

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sreepuli/AquaAlert-sub000/internal/domain/alert"
	"github.com/sreepuli/AquaAlert-sub000/internal/domain/official"
	"github.com/sreepuli/AquaAlert-sub000/internal/domain/sensor"
	apperrors "github.com/sreepuli/AquaAlert-sub000/internal/pkg/errors"
	"github.com/sreepuli/AquaAlert-sub000/internal/pkg/logger"
	"github.com/sreepuli/AquaAlert-sub000/internal/services"
	"github.com/sreepuli/AquaAlert-sub000/internal/testutil"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Format: "json"})
}

// fakeSource replays a fixed sequence of readings, cycling once
// exhausted. Identity fields are stamped per call like a real source.
type fakeSource struct {
	readings []*sensor.Reading
	calls    int
}

func (f *fakeSource) Generate(s *sensor.Sensor, now time.Time) *sensor.Reading {
	r := *f.readings[f.calls%len(f.readings)]
	f.calls++
	r.SensorID = s.ID
	r.Location = s.Location
	r.Timestamp = now
	return &r
}

func (f *fakeSource) Status() string { return "fake" }

func contaminatedReading(sensorID string, ts time.Time) *sensor.Reading {
	r := testutil.NormalReading(sensorID, ts)
	r.Parameters.EColi = 15
	return r
}

func testSensors() []*sensor.Sensor {
	return []*sensor.Sensor{
		{
			ID:     "WQ-001",
			Name:   "Rampur Main Well",
			Status: sensor.StatusActive,
			Location: sensor.Location{
				Village:  "Rampur",
				District: "Nalgonda",
			},
		},
		{
			ID:     "WQ-002",
			Name:   "Suryapet Tank",
			Status: sensor.StatusInactive,
			Location: sensor.Location{
				Village:  "Suryapet",
				District: "Suryapet",
			},
		},
	}
}

func newTestEngine(src sensor.Source, sensors []*sensor.Sensor) (*Engine, *testutil.MockMailer) {
	log := testLogger()
	mailer := testutil.NewMockMailer()
	roster := testutil.NewMockRoster(
		testutil.Official("o-1", "critical@phed.gov.in", "Deputy Engineer", "Nalgonda", official.TagCriticalAlerts),
		testutil.Official("o-2", "quality@phed.gov.in", "Quality Analyst", "Nalgonda", official.TagWaterQuality),
	)
	resolver := services.NewRecipientResolver(roster, nil, log)
	dispatcher := services.NewDispatcher(mailer, resolver, "alerts@aquaalert.local", []string{"cc@aquaalert.local"}, log)

	eng := New(Config{
		Interval:   time.Hour,
		Source:     src,
		Evaluator:  services.NewEvaluator(alert.DefaultThresholds()),
		Dispatcher: dispatcher,
		Sensors:    sensors,
		Logger:     log,
	})
	return eng, mailer
}

func TestEngine_StartStop(t *testing.T) {
	src := &fakeSource{readings: []*sensor.Reading{testutil.NormalReading("", time.Time{})}}
	eng, _ := newTestEngine(src, testSensors())

	if !eng.Start() {
		t.Fatal("first Start returned false")
	}
	if !eng.IsRunning() {
		t.Error("IsRunning false after Start")
	}
	if eng.Start() {
		t.Error("second Start returned true")
	}
	if !eng.Stop() {
		t.Fatal("Stop returned false while running")
	}
	if eng.IsRunning() {
		t.Error("IsRunning true after Stop")
	}
	if eng.Stop() {
		t.Error("second Stop returned true")
	}
}

func TestEngine_FirstSweepIsSynchronous(t *testing.T) {
	src := &fakeSource{readings: []*sensor.Reading{testutil.NormalReading("", time.Time{})}}
	sensors := testSensors()
	eng, _ := newTestEngine(src, sensors)

	eng.Start()
	defer eng.Stop()

	if sensors[0].ReadingsTaken != 1 {
		t.Errorf("active sensor ReadingsTaken = %d, want 1", sensors[0].ReadingsTaken)
	}
	if sensors[0].LastReading == nil {
		t.Error("active sensor LastReading not set")
	}
	if got := eng.Readings("", 0); len(got) != 1 {
		t.Errorf("buffered %d readings after first sweep, want 1", len(got))
	}
}

func TestEngine_SkipsInactiveSensors(t *testing.T) {
	src := &fakeSource{readings: []*sensor.Reading{testutil.NormalReading("", time.Time{})}}
	sensors := testSensors()
	eng, _ := newTestEngine(src, sensors)

	eng.Start()
	eng.Stop()

	if sensors[1].ReadingsTaken != 0 {
		t.Errorf("inactive sensor ReadingsTaken = %d, want 0", sensors[1].ReadingsTaken)
	}
	if got := eng.Readings("WQ-002", 0); len(got) != 0 {
		t.Errorf("inactive sensor buffered %d readings, want 0", len(got))
	}
}

func TestEngine_CounterLifecycle(t *testing.T) {
	src := &fakeSource{readings: []*sensor.Reading{
		contaminatedReading("", time.Time{}),
		contaminatedReading("", time.Time{}),
		testutil.NormalReading("", time.Time{}),
	}}
	sensors := testSensors()
	eng, mailer := newTestEngine(src, sensors)
	ctx := context.Background()
	s := sensors[0]

	eng.processSensor(ctx, s)
	eng.processSensor(ctx, s)
	if s.ConsecutiveAbnormal != 2 {
		t.Errorf("ConsecutiveAbnormal = %d after two abnormal readings, want 2", s.ConsecutiveAbnormal)
	}
	if s.AlertsSent != 2 {
		t.Errorf("AlertsSent = %d, want 2", s.AlertsSent)
	}

	eng.processSensor(ctx, s)
	if s.ConsecutiveAbnormal != 0 {
		t.Errorf("ConsecutiveAbnormal = %d after normal reading, want 0", s.ConsecutiveAbnormal)
	}
	if s.AlertsSent != 2 {
		t.Errorf("AlertsSent changed on normal reading: %d", s.AlertsSent)
	}
	if s.ReadingsTaken != 3 {
		t.Errorf("ReadingsTaken = %d, want 3", s.ReadingsTaken)
	}
	if len(mailer.Sent) != 2 {
		t.Errorf("mailer sent %d messages, want 2", len(mailer.Sent))
	}
}

func TestEngine_AlertBufferIsBounded(t *testing.T) {
	src := &fakeSource{readings: []*sensor.Reading{contaminatedReading("", time.Time{})}}
	sensors := testSensors()
	eng, _ := newTestEngine(src, sensors)
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		eng.processSensor(ctx, sensors[0])
	}

	if got := eng.Alerts(alert.Filter{}, 0); len(got) != alertBufferCap {
		t.Errorf("buffered %d alerts, want %d", len(got), alertBufferCap)
	}
}

func TestEngine_PanicInPipelineIsContained(t *testing.T) {
	src := &fakeSource{}
	sensors := testSensors()
	eng, _ := newTestEngine(src, sensors)

	// Empty sequence makes Generate panic via modulo by zero.
	eng.processSensor(context.Background(), sensors[0])

	if sensors[0].ReadingsTaken != 0 {
		t.Errorf("counters mutated despite panic: ReadingsTaken = %d", sensors[0].ReadingsTaken)
	}
}

func TestEngine_TestAlert(t *testing.T) {
	src := &fakeSource{readings: []*sensor.Reading{testutil.NormalReading("", time.Time{})}}
	sensors := testSensors()
	eng, mailer := newTestEngine(src, sensors)
	ctx := context.Background()

	r := contaminatedReading("WQ-001", time.Time{})
	r.Location = sensor.Location{}

	a, result, err := eng.TestAlert(ctx, r)
	if err != nil {
		t.Fatalf("TestAlert: %v", err)
	}
	if a.Severity != alert.SeverityCritical {
		t.Errorf("Severity = %q, want %q", a.Severity, alert.SeverityCritical)
	}
	if a.Location.Village != "Rampur" {
		t.Errorf("Location not copied from registered sensor: %+v", a.Location)
	}
	if !result.Success {
		t.Errorf("dispatch failed: %+v", result)
	}
	if len(mailer.Sent) == 0 {
		t.Error("no message sent for test alert")
	}
	if got := eng.Alerts(alert.Filter{}, 0); len(got) != 1 {
		t.Errorf("buffered %d alerts, want 1", len(got))
	}
	if sensors[0].AlertsSent != 0 {
		t.Error("test alert mutated sensor counters")
	}
}

func TestEngine_TestAlertRejectsNormalReading(t *testing.T) {
	src := &fakeSource{readings: []*sensor.Reading{testutil.NormalReading("", time.Time{})}}
	eng, _ := newTestEngine(src, testSensors())

	_, _, err := eng.TestAlert(context.Background(), testutil.NormalReading("WQ-001", time.Now()))
	if err == nil {
		t.Fatal("expected error for reading without findings")
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.ErrCodeBadRequest {
		t.Errorf("error = %v, want %s", err, apperrors.ErrCodeBadRequest)
	}
}

func TestEngine_Acknowledge(t *testing.T) {
	src := &fakeSource{readings: []*sensor.Reading{testutil.NormalReading("", time.Time{})}}
	eng, _ := newTestEngine(src, testSensors())
	ctx := context.Background()

	a, _, err := eng.TestAlert(ctx, contaminatedReading("WQ-001", time.Now()))
	if err != nil {
		t.Fatalf("TestAlert: %v", err)
	}

	acked, err := eng.Acknowledge(a.ID, "Field Supervisor")
	if err != nil {
		t.Fatalf("Acknowledge: %v", err)
	}
	if acked.Status != alert.StatusAcknowledged {
		t.Errorf("Status = %q, want %q", acked.Status, alert.StatusAcknowledged)
	}
	if acked.AcknowledgedBy != "Field Supervisor" || acked.AcknowledgedAt == nil {
		t.Errorf("acknowledgement fields not set: %+v", acked)
	}

	_, err = eng.Acknowledge(a.ID, "Someone Else")
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.ErrCodeConflict {
		t.Errorf("second ack error = %v, want %s", err, apperrors.ErrCodeConflict)
	}

	_, err = eng.Acknowledge("missing", "Nobody")
	if !errors.As(err, &appErr) || appErr.Code != apperrors.ErrCodeNotFound {
		t.Errorf("unknown id error = %v, want %s", err, apperrors.ErrCodeNotFound)
	}
}

func TestEngine_SensorLookup(t *testing.T) {
	src := &fakeSource{readings: []*sensor.Reading{testutil.NormalReading("", time.Time{})}}
	eng, _ := newTestEngine(src, testSensors())

	s, err := eng.Sensor("WQ-001")
	if err != nil {
		t.Fatalf("Sensor: %v", err)
	}
	if s.ID != "WQ-001" {
		t.Errorf("ID = %q, want WQ-001", s.ID)
	}

	if _, err := eng.Sensor("WQ-999"); err == nil {
		t.Error("expected error for unknown sensor")
	}
}

func TestEngine_Status(t *testing.T) {
	src := &fakeSource{readings: []*sensor.Reading{testutil.NormalReading("", time.Time{})}}
	eng, _ := newTestEngine(src, testSensors())

	st := eng.Status()
	if st.Running {
		t.Error("Running true before Start")
	}
	if st.Source != "fake" {
		t.Errorf("Source = %q, want fake", st.Source)
	}
	if st.SensorCount != 2 || st.ActiveSensors != 1 {
		t.Errorf("SensorCount = %d, ActiveSensors = %d, want 2 and 1", st.SensorCount, st.ActiveSensors)
	}

	eng.Start()
	defer eng.Stop()
	st = eng.Status()
	if !st.Running {
		t.Error("Running false after Start")
	}
	if st.BufferedReads != 1 {
		t.Errorf("BufferedReads = %d, want 1", st.BufferedReads)
	}
	if len(st.RecentReadings) != 1 {
		t.Errorf("RecentReadings has %d entries, want 1", len(st.RecentReadings))
	}
}

func TestEngine_StatusTailsAreBounded(t *testing.T) {
	src := &fakeSource{readings: []*sensor.Reading{testutil.NormalReading("", time.Time{})}}
	eng, _ := newTestEngine(src, testSensors())

	base := time.Now()
	for i := 0; i < readingBufferCap+20; i++ {
		eng.readings.Add(makeReading("WQ-001", base.Add(time.Duration(i)*time.Second)))
	}
	for i := 0; i < alertBufferCap+5; i++ {
		eng.alerts.Add(makeAlert(fmt.Sprintf("a-%d", i), "WQ-001", alert.SeverityWarning, base))
	}

	st := eng.Status()
	if st.BufferedReads != readingBufferCap {
		t.Errorf("BufferedReads = %d, want %d", st.BufferedReads, readingBufferCap)
	}
	if len(st.RecentReadings) != statusTailSize {
		t.Errorf("RecentReadings has %d entries, want %d", len(st.RecentReadings), statusTailSize)
	}
	newest := st.RecentReadings[len(st.RecentReadings)-1]
	if !newest.Timestamp.Equal(base.Add(time.Duration(readingBufferCap+19) * time.Second)) {
		t.Errorf("tail does not end at the newest reading, got %v", newest.Timestamp)
	}
	if len(st.RecentAlerts) != statusTailSize {
		t.Errorf("RecentAlerts has %d entries, want %d", len(st.RecentAlerts), statusTailSize)
	}
}
