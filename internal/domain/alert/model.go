package alert

import (
	"time"

	"github.com/sreepuli/AquaAlert-sub000/internal/domain/sensor"
)

// Finding is one evaluator output for a single reading. Findings are
// ephemeral; they exist only within one evaluation pass.
type Finding struct {
	Kind      string  `json:"kind"`
	Parameter string  `json:"parameter"`
	Value     float64 `json:"value"`
	Message   string  `json:"message"`
	Action    string  `json:"action"`
}

// Finding kinds
const (
	KindCritical    = "critical"
	KindWarning     = "warning"
	KindMaintenance = "maintenance"
	KindTechnical   = "technical"
)

// Alert severity levels
const (
	SeverityCritical = "critical"
	SeverityWarning  = "warning"
)

// Alert status
const (
	StatusActive       = "active"
	StatusAcknowledged = "acknowledged"
)

// Alert is the aggregate record built from a reading's findings
type Alert struct {
	ID             string          `json:"id"`
	SensorID       string          `json:"sensor_id"`
	Location       sensor.Location `json:"location"`
	Timestamp      time.Time       `json:"timestamp"`
	Findings       []Finding       `json:"findings"`
	Severity       string          `json:"severity"`
	Status         string          `json:"status"`
	AcknowledgedBy string          `json:"acknowledged_by,omitempty"`
	AcknowledgedAt *time.Time      `json:"acknowledged_at,omitempty"`
}

// DeriveSeverity returns critical iff at least one finding is critical
func DeriveSeverity(findings []Finding) string {
	for _, f := range findings {
		if f.Kind == KindCritical {
			return SeverityCritical
		}
	}
	return SeverityWarning
}

// Filter contains alert listing options
type Filter struct {
	Severity string
	SensorID string
}

// Matches reports whether the alert passes the filter
func (f Filter) Matches(a *Alert) bool {
	if f.Severity != "" && a.Severity != f.Severity {
		return false
	}
	if f.SensorID != "" && a.SensorID != f.SensorID {
		return false
	}
	return true
}
