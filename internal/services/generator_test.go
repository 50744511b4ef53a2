package services

import (
	"math"
	"testing"
	"time"

	"github.com/sreepuli/AquaAlert-sub000/internal/domain/sensor"
)

func testSensor() *sensor.Sensor {
	return &sensor.Sensor{
		ID:     "WQ-001",
		Name:   "Rampur Main Well",
		Type:   "borewell",
		Status: sensor.StatusActive,
		Location: sensor.Location{
			Latitude:  17.05,
			Longitude: 79.27,
			Village:   "Rampur",
			District:  "Nalgonda",
		},
	}
}

func TestSimulatedSource_GenerateWithinClampBounds(t *testing.T) {
	src := NewSimulatedSource(42, testLogger())
	s := testSensor()
	now := time.Date(2026, time.July, 15, 14, 0, 0, 0, time.UTC)

	params := []struct {
		name string
		get  func(p sensor.Parameters) float64
	}{
		{sensor.ParamPH, func(p sensor.Parameters) float64 { return p.PH }},
		{sensor.ParamTurbidity, func(p sensor.Parameters) float64 { return p.Turbidity }},
		{sensor.ParamTDS, func(p sensor.Parameters) float64 { return p.TDS }},
		{sensor.ParamEColi, func(p sensor.Parameters) float64 { return p.EColi }},
		{sensor.ParamTemperature, func(p sensor.Parameters) float64 { return p.Temperature }},
		{sensor.ParamFlowRate, func(p sensor.Parameters) float64 { return p.FlowRate }},
		{sensor.ParamDissolvedOxygen, func(p sensor.Parameters) float64 { return p.DissolvedOxygen }},
	}

	for i := 0; i < 500; i++ {
		r := src.Generate(s, now)
		for _, pp := range params {
			lo, hi := sensor.ClampBounds(pp.name)
			v := pp.get(r.Parameters)
			if v < lo || v > hi {
				t.Fatalf("iteration %d: %s = %v outside [%v, %v]", i, pp.name, v, lo, hi)
			}
		}
		if r.BatteryLevel < 0 || r.BatteryLevel > 100 {
			t.Fatalf("battery %v outside [0, 100]", r.BatteryLevel)
		}
		if r.SignalStrength < 0 || r.SignalStrength > 100 {
			t.Fatalf("signal %v outside [0, 100]", r.SignalStrength)
		}
	}
}

func TestSimulatedSource_ReadingIdentity(t *testing.T) {
	src := NewSimulatedSource(7, testLogger())
	s := testSensor()
	now := time.Now()

	r := src.Generate(s, now)

	if r.SensorID != s.ID {
		t.Errorf("SensorID = %q, want %q", r.SensorID, s.ID)
	}
	if !r.Timestamp.Equal(now) {
		t.Errorf("Timestamp = %v, want %v", r.Timestamp, now)
	}
	if r.Location != s.Location {
		t.Errorf("Location = %+v, want %+v", r.Location, s.Location)
	}
}

func TestSimulatedSource_ReportingPrecision(t *testing.T) {
	src := NewSimulatedSource(11, testLogger())
	s := testSensor()
	now := time.Now()

	for i := 0; i < 200; i++ {
		r := src.Generate(s, now)
		p := r.Parameters

		if p.EColi != math.Trunc(p.EColi) {
			t.Fatalf("EColi %v is not a whole number", p.EColi)
		}
		if p.TDS != math.Trunc(p.TDS) {
			t.Fatalf("TDS %v is not a whole number", p.TDS)
		}
		if got := round2(p.PH); got != p.PH {
			t.Fatalf("PH %v carries more than two decimals", p.PH)
		}
		if got := round2(p.Turbidity); got != p.Turbidity {
			t.Fatalf("Turbidity %v carries more than two decimals", p.Turbidity)
		}
	}
}

func TestSimulatedSource_OfflineReadingsDropPower(t *testing.T) {
	src := NewSimulatedSource(3, testLogger())
	s := testSensor()
	now := time.Now()

	sawOffline := false
	for i := 0; i < 2000; i++ {
		r := src.Generate(s, now)
		if r.Status != sensor.ConnectivityOffline {
			continue
		}
		sawOffline = true
		if r.BatteryLevel != 0 || r.SignalStrength != 0 {
			t.Fatalf("offline reading kept power: battery=%v signal=%v", r.BatteryLevel, r.SignalStrength)
		}
	}
	if !sawOffline {
		t.Skip("no offline reading in 2000 draws")
	}
}

func TestSimulatedSource_ArchetypesAreKnown(t *testing.T) {
	src := NewSimulatedSource(99, testLogger())
	s := testSensor()
	now := time.Now()

	known := map[string]bool{
		sensor.AnomalyContamination:  true,
		sensor.AnomalyEquipmentFault: true,
		sensor.AnomalySeasonal:       true,
		sensor.AnomalyPollution:      true,
	}

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		r := src.Generate(s, now)
		if r.AnomalyType == "" {
			continue
		}
		if !known[r.AnomalyType] {
			t.Fatalf("unknown anomaly type %q", r.AnomalyType)
		}
		seen[r.AnomalyType] = true
	}
	if len(seen) == 0 {
		t.Error("no archetype injected in 1000 draws")
	}
}

func TestSimulatedSource_Status(t *testing.T) {
	src := NewSimulatedSource(1, testLogger())
	if got := src.Status(); got != "simulated" {
		t.Errorf("Status() = %q, want %q", got, "simulated")
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, lo, hi, want float64
	}{
		{5, 0, 10, 5},
		{-1, 0, 10, 0},
		{11, 0, 10, 10},
	}
	for _, tt := range tests {
		if got := clamp(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("clamp(%v, %v, %v) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
}
