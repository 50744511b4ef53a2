package client

import "time"

// Location is a sensor geolocation
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Village   string  `json:"village"`
	District  string  `json:"district"`
}

// Parameters holds measured water-quality values
type Parameters struct {
	PH              float64 `json:"ph"`
	Turbidity       float64 `json:"turbidity"`
	TDS             float64 `json:"tds"`
	EColi           float64 `json:"ecoli"`
	Temperature     float64 `json:"temperature"`
	FlowRate        float64 `json:"flow_rate"`
	DissolvedOxygen float64 `json:"dissolved_oxygen"`
}

// Reading is one sensor measurement
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

// Sensor is a monitored field sensor with runtime counters
type Sensor struct {
	ID                  string     `json:"id"`
	Name                string     `json:"name"`
	Type                string     `json:"type"`
	Location            Location   `json:"location"`
	Status              string     `json:"status"`
	InstalledAt         time.Time  `json:"installed_at"`
	LastMaintenance     *time.Time `json:"last_maintenance,omitempty"`
	LastReading         *Reading   `json:"last_reading,omitempty"`
	ReadingsTaken       int        `json:"readings_taken"`
	AlertsSent          int        `json:"alerts_sent"`
	ConsecutiveAbnormal int        `json:"consecutive_abnormal"`
}

// Finding is one threshold evaluation result
type Finding struct {
	Kind      string  `json:"kind"`
	Parameter string  `json:"parameter"`
	Value     float64 `json:"value"`
	Message   string  `json:"message"`
	Action    string  `json:"action"`
}

// Alert is an aggregated alert record
type Alert struct {
	ID             string     `json:"id"`
	SensorID       string     `json:"sensor_id"`
	Location       Location   `json:"location"`
	Timestamp      time.Time  `json:"timestamp"`
	Findings       []Finding  `json:"findings"`
	Severity       string     `json:"severity"`
	Status         string     `json:"status"`
	AcknowledgedBy string     `json:"acknowledged_by,omitempty"`
	AcknowledgedAt *time.Time `json:"acknowledged_at,omitempty"`
}

// SimulationStatus is a snapshot of the monitoring loop
type SimulationStatus struct {
	Running        bool     `json:"running"`
	Source         string   `json:"source"`
	TickInterval   string   `json:"tick_interval"`
	SensorCount    int      `json:"sensor_count"`
	ActiveSensors  int      `json:"active_sensors"`
	BufferedReads  int       `json:"buffered_readings"`
	BufferedAlerts int       `json:"buffered_alerts"`
	Sensors        []Sensor  `json:"sensors"`
	RecentReadings []Reading `json:"recent_readings"`
	RecentAlerts   []Alert   `json:"recent_alerts"`
}

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
