package services

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/sreepuli/AquaAlert-sub000/internal/domain/sensor"
	"github.com/sreepuli/AquaAlert-sub000/internal/pkg/logger"
	"github.com/sreepuli/AquaAlert-sub000/internal/pkg/metrics"
)

// Anomaly injection probabilities observed in the field deployment
const (
	probEColiSpike     = 0.15
	probPHExcursion    = 0.10
	probTurbiditySpike = 0.12
	probArchetype      = 0.25
	probOffline        = 0.01
)

// jitterScale sizes the Gaussian jitter relative to a parameter's
// normal range span.
const jitterScale = 0.30

// SimulatedSource implements sensor.Source with seasonally and diurnally
// biased synthetic readings. A zero seed falls back to time seeding.
type SimulatedSource struct {
	mu     sync.Mutex
	rng    *rand.Rand
	logger *logger.Logger
}

// NewSimulatedSource creates a new simulated reading source
func NewSimulatedSource(seed int64, log *logger.Logger) *SimulatedSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &SimulatedSource{
		rng:    rand.New(rand.NewSource(seed)),
		logger: log,
	}
}

// Status describes the active source implementation
func (g *SimulatedSource) Status() string {
	return "simulated"
}

// Generate produces one reading for the sensor at the given instant.
// Every parameter is clamped to [0.5*min, 2.0*max] of its normal range
// before being accepted.
func (g *SimulatedSource) Generate(s *sensor.Sensor, now time.Time) *sensor.Reading {
	g.mu.Lock()
	defer g.mu.Unlock()

	r := &sensor.Reading{
		SensorID:  s.ID,
		Timestamp: now,
		Location:  s.Location,
		Status:    sensor.ConnectivityOnline,
	}

	p := g.baseline(now)
	g.injectSpikes(&p)

	r.BatteryLevel = 40 + g.rng.Float64()*60
	r.SignalStrength = 50 + g.rng.Float64()*50

	if g.rng.Float64() < probArchetype {
		r.AnomalyType = g.applyArchetype(&p, r)
		metrics.RecordAnomaly(r.AnomalyType)
	}

	if g.rng.Float64() < probOffline {
		r.Status = sensor.ConnectivityOffline
		r.BatteryLevel = 0
		r.SignalStrength = 0
	}

	clampParameters(&p)
	roundParameters(&p)
	r.Parameters = p
	r.BatteryLevel = round2(clamp(r.BatteryLevel, 0, 100))
	r.SignalStrength = round2(clamp(r.SignalStrength, 0, 100))

	metrics.RecordReading(s.ID)
	return r
}

// baseline produces the seasonally and diurnally biased normal values
// plus Gaussian jitter sized to 30% of each parameter's normal span.
func (g *SimulatedSource) baseline(now time.Time) sensor.Parameters {
	season := seasonBias(now.Month())
	diurnal := diurnalBias(now.Hour())

	val := func(param string) float64 {
		rg := sensor.NormalRanges[param]
		return rg.Mid() + g.rng.NormFloat64()*jitterScale*rg.Span()
	}

	p := sensor.Parameters{
		PH:              val(sensor.ParamPH) - season.phShift,
		Turbidity:       val(sensor.ParamTurbidity) + season.turbidityShift,
		TDS:             val(sensor.ParamTDS) + season.tdsShift,
		EColi:           math.Abs(val(sensor.ParamEColi)) + season.ecoliShift,
		Temperature:     val(sensor.ParamTemperature) + diurnal.tempShift,
		FlowRate:        val(sensor.ParamFlowRate) + season.flowShift,
		DissolvedOxygen: val(sensor.ParamDissolvedOxygen) + diurnal.oxygenShift,
	}
	return p
}

// injectSpikes applies the independent low-probability per-parameter
// anomaly injections.
func (g *SimulatedSource) injectSpikes(p *sensor.Parameters) {
	if g.rng.Float64() < probEColiSpike {
		p.EColi = 11 + g.rng.Float64()*9
	}
	if g.rng.Float64() < probPHExcursion {
		if g.rng.Float64() < 0.5 {
			p.PH = 4.2 + g.rng.Float64()*1.2
		} else {
			p.PH = 9.1 + g.rng.Float64()*1.4
		}
	}
	if g.rng.Float64() < probTurbiditySpike {
		p.Turbidity = 11 + g.rng.Float64()*9
	}
}

// applyArchetype replaces a coherent subset of the reading with one of
// the four abnormal failure signatures and returns its tag.
func (g *SimulatedSource) applyArchetype(p *sensor.Parameters, r *sensor.Reading) string {
	switch g.rng.Intn(4) {
	case 0:
		// Sewage ingress: microbial load with acidic, murky water.
		p.EColi = 12 + g.rng.Float64()*8
		p.Turbidity = 12 + g.rng.Float64()*8
		p.PH = 4.8 + g.rng.Float64()*1.0
		return sensor.AnomalyContamination
	case 1:
		// Failing unit: power and telemetry degrade, flow reads near zero.
		r.BatteryLevel = g.rng.Float64() * 15
		r.SignalStrength = g.rng.Float64() * 20
		p.FlowRate = 2.5 + g.rng.Float64()*2
		return sensor.AnomalyEquipmentFault
	case 2:
		// Monsoon runoff or drought concentration.
		p.Turbidity = 14 + g.rng.Float64()*6
		p.TDS = 600 + g.rng.Float64()*400
		p.Temperature = 34 + g.rng.Float64()*10
		return sensor.AnomalySeasonal
	default:
		// Industrial discharge: acid load, dissolved solids, oxygen crash.
		p.PH = 4.0 + g.rng.Float64()*1.2
		p.TDS = 700 + g.rng.Float64()*300
		p.DissolvedOxygen = 3 + g.rng.Float64()*1.5
		return sensor.AnomalyPollution
	}
}

// seasonShifts bias readings by calendar month
type seasonShifts struct {
	phShift        float64
	turbidityShift float64
	tdsShift       float64
	ecoliShift     float64
	flowShift      float64
}

// seasonBias biases monsoon months toward contamination and winter
// months toward improvement.
func seasonBias(m time.Month) seasonShifts {
	switch {
	case m >= time.June && m <= time.September:
		return seasonShifts{phShift: 0.3, turbidityShift: 2.5, tdsShift: 60, ecoliShift: 1.5, flowShift: 4}
	case m == time.December || m == time.January || m == time.February:
		return seasonShifts{phShift: -0.1, turbidityShift: -1, tdsShift: -30, flowShift: -2}
	default:
		return seasonShifts{}
	}
}

// diurnalShifts bias readings by hour of day
type diurnalShifts struct {
	tempShift   float64
	oxygenShift float64
}

// diurnalBias models afternoon heating and the overnight oxygen sag.
func diurnalBias(hour int) diurnalShifts {
	switch {
	case hour >= 12 && hour <= 16:
		return diurnalShifts{tempShift: 4, oxygenShift: -1.5}
	case hour >= 0 && hour <= 5:
		return diurnalShifts{tempShift: -3, oxygenShift: -0.5}
	default:
		return diurnalShifts{}
	}
}

// clampParameters bounds every parameter to its acceptance window
func clampParameters(p *sensor.Parameters) {
	bound := func(param string, v float64) float64 {
		lo, hi := sensor.ClampBounds(param)
		return clamp(v, lo, hi)
	}
	p.PH = bound(sensor.ParamPH, p.PH)
	p.Turbidity = bound(sensor.ParamTurbidity, p.Turbidity)
	p.TDS = bound(sensor.ParamTDS, p.TDS)
	p.EColi = bound(sensor.ParamEColi, p.EColi)
	p.Temperature = bound(sensor.ParamTemperature, p.Temperature)
	p.FlowRate = bound(sensor.ParamFlowRate, p.FlowRate)
	p.DissolvedOxygen = bound(sensor.ParamDissolvedOxygen, p.DissolvedOxygen)
}

// roundParameters applies the reporting precision: whole numbers for
// E.coli and TDS, two decimals for the rest.
func roundParameters(p *sensor.Parameters) {
	p.PH = round2(p.PH)
	p.Turbidity = round2(p.Turbidity)
	p.TDS = math.Round(p.TDS)
	p.EColi = math.Round(p.EColi)
	p.Temperature = round2(p.Temperature)
	p.FlowRate = round2(p.FlowRate)
	p.DissolvedOxygen = round2(p.DissolvedOxygen)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
