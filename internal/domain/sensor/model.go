package sensor

import "time"

// Sensor represents a monitored field sensor and its runtime counters.
// Sensors are created at process start from static configuration and are
// owned exclusively by the simulation engine for the process lifetime.
type Sensor struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Type            string     `json:"type"`
	Location        Location   `json:"location"`
	Status          string     `json:"status"`
	InstalledAt     time.Time  `json:"installed_at"`
	LastMaintenance *time.Time `json:"last_maintenance,omitempty"`

	// Runtime counters, mutated only by the engine loop.
	LastReading         *Reading `json:"last_reading,omitempty"`
	ReadingsTaken       int      `json:"readings_taken"`
	AlertsSent          int      `json:"alerts_sent"`
	ConsecutiveAbnormal int      `json:"consecutive_abnormal"`
}

// Sensor operational status
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Location is a geolocation snapshot carried by sensors and readings
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Village   string  `json:"village"`
	District  string  `json:"district"`
}

// Reading is an immutable measurement produced once per sensor per tick
type Reading struct {
	SensorID       string     `json:"sensor_id"`
	Timestamp      time.Time  `json:"timestamp"`
	Location       Location   `json:"location"`
	Parameters     Parameters `json:"parameters"`
	BatteryLevel   float64    `json:"battery_level"`
	SignalStrength float64    `json:"signal_strength"`
	Status         string     `json:"status"`
	AnomalyType    string     `json:"anomaly_type,omitempty"`
}

// Connectivity status of a reading
const (
	ConnectivityOnline  = "online"
	ConnectivityOffline = "offline"
)

// Parameters holds the fixed set of measured water-quality parameters
type Parameters struct {
	PH              float64 `json:"ph"`
	Turbidity       float64 `json:"turbidity"`
	TDS             float64 `json:"tds"`
	EColi           float64 `json:"ecoli"`
	Temperature     float64 `json:"temperature"`
	FlowRate        float64 `json:"flow_rate"`
	DissolvedOxygen float64 `json:"dissolved_oxygen"`
}

// Parameter names used in findings and range tables
const (
	ParamPH              = "ph"
	ParamTurbidity       = "turbidity"
	ParamTDS             = "tds"
	ParamEColi           = "ecoli"
	ParamTemperature     = "temperature"
	ParamFlowRate        = "flow_rate"
	ParamDissolvedOxygen = "dissolved_oxygen"
)

// Anomaly archetypes injected by the generator
const (
	AnomalyContamination  = "contamination"
	AnomalyEquipmentFault = "equipment_malfunction"
	AnomalySeasonal       = "seasonal_extreme"
	AnomalyPollution      = "pollution_event"
)

// Range is the declared normal band for one parameter
type Range struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// Mid returns the midpoint of the band
func (r Range) Mid() float64 {
	return (r.Min + r.Max) / 2
}

// Span returns the width of the band
func (r Range) Span() float64 {
	return r.Max - r.Min
}

// NormalRanges declares the normal operating band per parameter.
// Generated values are clamped to [0.5*Min, 2.0*Max] of these bands.
var NormalRanges = map[string]Range{
	ParamPH:              {Min: 6.5, Max: 8.5},
	ParamTurbidity:       {Min: 0, Max: 10},
	ParamTDS:             {Min: 50, Max: 500},
	ParamEColi:           {Min: 0, Max: 10},
	ParamTemperature:     {Min: 15, Max: 30},
	ParamFlowRate:        {Min: 5, Max: 25},
	ParamDissolvedOxygen: {Min: 6, Max: 12},
}

// ClampBounds returns the acceptance bounds for a parameter value
func ClampBounds(param string) (lo, hi float64) {
	r, ok := NormalRanges[param]
	if !ok {
		return 0, 0
	}
	return 0.5 * r.Min, 2.0 * r.Max
}
