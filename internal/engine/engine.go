package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sreepuli/AquaAlert-sub000/internal/domain/alert"
	"github.com/sreepuli/AquaAlert-sub000/internal/domain/sensor"
	apperrors "github.com/sreepuli/AquaAlert-sub000/internal/pkg/errors"
	"github.com/sreepuli/AquaAlert-sub000/internal/pkg/logger"
	"github.com/sreepuli/AquaAlert-sub000/internal/pkg/metrics"
	"github.com/sreepuli/AquaAlert-sub000/internal/services"
)

// Engine drives the periodic monitoring sweep. One tick generates a
// reading per active sensor, evaluates it against thresholds, records
// any resulting alert, and dispatches notifications. All sensor state
// is mutated only from the tick goroutine; reads go through the mutex.
type Engine struct {
	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}

	interval   time.Duration
	source     sensor.Source
	evaluator  *services.Evaluator
	dispatcher *services.Dispatcher

	sensors []*sensor.Sensor
	byID    map[string]*sensor.Sensor

	readings *readingBuffer
	alerts   *alertBuffer

	now    func() time.Time
	logger *logger.Logger
}

// Config carries the engine's collaborators and tick interval
type Config struct {
	Interval   time.Duration
	Source     sensor.Source
	Evaluator  *services.Evaluator
	Dispatcher *services.Dispatcher
	Sensors    []*sensor.Sensor
	Logger     *logger.Logger
}

func New(cfg Config) *Engine {
	byID := make(map[string]*sensor.Sensor, len(cfg.Sensors))
	for _, s := range cfg.Sensors {
		byID[s.ID] = s
	}

	return &Engine{
		interval:   cfg.Interval,
		source:     cfg.Source,
		evaluator:  cfg.Evaluator,
		dispatcher: cfg.Dispatcher,
		sensors:    cfg.Sensors,
		byID:       byID,
		readings:   newReadingBuffer(readingBufferCap),
		alerts:     newAlertBuffer(alertBufferCap),
		now:        time.Now,
		logger:     cfg.Logger,
	}
}

// Start begins the monitoring loop. The first sweep runs synchronously
// before Start returns so callers observe immediate data. Calling Start
// while already running is a no-op.
func (e *Engine) Start() bool {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		e.logger.Warn("Monitoring already running, ignoring start")
		return false
	}
	e.running = true
	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	e.done = make(chan struct{})
	e.mu.Unlock()

	metrics.SetSimulationRunning(true)
	e.logger.Infof("Monitoring started: %d sensors, tick every %s", len(e.sensors), e.interval)

	e.sweep(ctx)

	go e.loop(ctx)
	return true
}

// Stop halts the monitoring loop and waits for the tick goroutine to
// exit. Buffers and sensor counters are retained. Calling Stop while
// stopped is a no-op.
func (e *Engine) Stop() bool {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return false
	}
	e.running = false
	cancel := e.cancel
	done := e.done
	e.mu.Unlock()

	cancel()
	<-done

	metrics.SetSimulationRunning(false)
	e.logger.Info("Monitoring stopped")
	return true
}

// IsRunning reports whether the monitoring loop is active
func (e *Engine) IsRunning() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

func (e *Engine) loop(ctx context.Context) {
	defer close(e.done)

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.sweep(ctx)
		}
	}
}

// sweep runs one monitoring pass over every active sensor
func (e *Engine) sweep(ctx context.Context) {
	start := e.now()

	for _, s := range e.sensors {
		if s.Status != sensor.StatusActive {
			continue
		}
		e.processSensor(ctx, s)
	}

	metrics.RecordTickDuration(e.now().Sub(start))
}

// processSensor runs the generate, evaluate, aggregate, dispatch
// pipeline for one sensor. A panic in the pipeline is contained so one
// faulty sensor cannot take down the sweep.
func (e *Engine) processSensor(ctx context.Context, s *sensor.Sensor) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Errorf("Recovered panic processing sensor %s: %v", s.ID, r)
		}
	}()

	reading := e.source.Generate(s, e.now())
	e.readings.Add(reading)

	findings := e.evaluator.Evaluate(reading)

	e.mu.Lock()
	s.LastReading = reading
	s.ReadingsTaken++
	if len(findings) == 0 {
		s.ConsecutiveAbnormal = 0
	} else {
		s.ConsecutiveAbnormal++
		s.AlertsSent += len(findings)
	}
	e.mu.Unlock()

	if len(findings) == 0 {
		return
	}

	a := e.aggregate(reading, findings)
	e.alerts.Add(a)

	result := e.dispatcher.Dispatch(ctx, a, findings)
	if !result.Success {
		e.logger.Warnf("Alert %s dispatched with failures: recipients=%d", a.ID, result.RecipientCount)
	}
}

// aggregate folds a reading's findings into a single alert record
func (e *Engine) aggregate(r *sensor.Reading, findings []alert.Finding) *alert.Alert {
	a := &alert.Alert{
		ID:        uuid.New().String(),
		SensorID:  r.SensorID,
		Location:  r.Location,
		Timestamp: r.Timestamp,
		Findings:  findings,
		Severity:  alert.DeriveSeverity(findings),
		Status:    alert.StatusActive,
	}
	metrics.RecordAlert(a.Severity)
	e.logger.Infof("Alert raised: id=%s sensor=%s severity=%s findings=%d", a.ID, a.SensorID, a.Severity, len(a.Findings))
	return a
}

// TestAlert runs the evaluate and dispatch stages against a caller
// supplied reading without touching sensor counters or assuming the
// loop is running. The alert record is buffered like any other.
func (e *Engine) TestAlert(ctx context.Context, r *sensor.Reading) (*alert.Alert, services.DispatchResult, error) {
	if r.Timestamp.IsZero() {
		r.Timestamp = e.now()
	}
	if r.Status == "" {
		r.Status = sensor.ConnectivityOnline
	}
	if s, ok := e.byID[r.SensorID]; ok {
		r.Location = s.Location
	}

	findings := e.evaluator.Evaluate(r)
	if len(findings) == 0 {
		return nil, services.DispatchResult{}, apperrors.BadRequest("reading produced no findings, nothing to dispatch")
	}

	a := e.aggregate(r, findings)
	e.alerts.Add(a)

	result := e.dispatcher.Dispatch(ctx, a, findings)
	return a, result, nil
}

// Status is a point-in-time view of the engine
type Status struct {
	Running        bool              `json:"running"`
	Source         string            `json:"source"`
	TickInterval   string            `json:"tick_interval"`
	SensorCount    int               `json:"sensor_count"`
	ActiveSensors  int               `json:"active_sensors"`
	BufferedReads  int               `json:"buffered_readings"`
	BufferedAlerts int               `json:"buffered_alerts"`
	Sensors        []*sensor.Sensor  `json:"sensors"`
	RecentReadings []*sensor.Reading `json:"recent_readings"`
	RecentAlerts   []*alert.Alert    `json:"recent_alerts"`
}

// statusTailSize caps the buffer tails carried in a Status snapshot
const statusTailSize = 10

// Status returns a snapshot of the loop state and sensor fleet.
// Sensor entries are copies; callers may not mutate engine state
// through them.
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()

	st := Status{
		Running:        e.running,
		Source:         e.source.Status(),
		TickInterval:   e.interval.String(),
		SensorCount:    len(e.sensors),
		BufferedReads:  e.readings.Len(),
		BufferedAlerts: e.alerts.Len(),
		Sensors:        make([]*sensor.Sensor, 0, len(e.sensors)),
		RecentReadings: e.readings.Recent("", statusTailSize),
		RecentAlerts:   e.alerts.Recent(alert.Filter{}, statusTailSize),
	}
	for _, s := range e.sensors {
		if s.Status == sensor.StatusActive {
			st.ActiveSensors++
		}
		cp := *s
		st.Sensors = append(st.Sensors, &cp)
	}
	return st
}

// Sensors returns copies of the fleet
func (e *Engine) Sensors() []*sensor.Sensor {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]*sensor.Sensor, 0, len(e.sensors))
	for _, s := range e.sensors {
		cp := *s
		out = append(out, &cp)
	}
	return out
}

// Sensor returns a copy of one sensor by id
func (e *Engine) Sensor(id string) (*sensor.Sensor, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, ok := e.byID[id]
	if !ok {
		return nil, apperrors.NotFound(fmt.Sprintf("sensor %s", id))
	}
	cp := *s
	return &cp, nil
}

// Readings returns up to limit recent readings, optionally scoped to
// one sensor
func (e *Engine) Readings(sensorID string, limit int) []*sensor.Reading {
	return e.readings.Recent(sensorID, limit)
}

// Alerts returns up to limit recent alerts passing the filter
func (e *Engine) Alerts(filter alert.Filter, limit int) []*alert.Alert {
	return e.alerts.Recent(filter, limit)
}

// Acknowledge marks a buffered alert as acknowledged. Acknowledging an
// already acknowledged alert is a conflict.
func (e *Engine) Acknowledge(id, who string) (*alert.Alert, error) {
	a := e.alerts.Get(id)
	if a == nil {
		return nil, apperrors.NotFound(fmt.Sprintf("alert %s", id))
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if a.Status == alert.StatusAcknowledged {
		return nil, apperrors.Conflict(fmt.Sprintf("alert %s already acknowledged", id))
	}
	now := e.now()
	a.Status = alert.StatusAcknowledged
	a.AcknowledgedBy = who
	a.AcknowledgedAt = &now

	e.logger.Infof("Alert %s acknowledged by %s", id, who)
	cp := *a
	return &cp, nil
}

// ReadingsBetween returns buffered readings inside the window
func (e *Engine) ReadingsBetween(start, end time.Time) []*sensor.Reading {
	return e.readings.Between(start, end)
}

// AlertsBetween returns buffered alerts inside the window
func (e *Engine) AlertsBetween(start, end time.Time) []*alert.Alert {
	return e.alerts.Between(start, end)
}

// ActiveSensorCount returns the number of active sensors
func (e *Engine) ActiveSensorCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	n := 0
	for _, s := range e.sensors {
		if s.Status == sensor.StatusActive {
			n++
		}
	}
	return n
}
