package alert

// Band holds one threshold table. Zero values disable the corresponding
// rule for that band (the warning band carries only a pH refinement).
type Band struct {
	PHMin        float64 `yaml:"ph_min" json:"ph_min"`
	PHMax        float64 `yaml:"ph_max" json:"ph_max"`
	EColiMax     float64 `yaml:"ecoli_max" json:"ecoli_max"`
	TurbidityMax float64 `yaml:"turbidity_max" json:"turbidity_max"`
}

// Thresholds holds the critical and warning threshold tables
type Thresholds struct {
	Critical Band `yaml:"critical" json:"critical"`
	Warning  Band `yaml:"warning" json:"warning"`
}

// BatteryLowLevel is the maintenance-finding battery threshold
const BatteryLowLevel = 20.0

// DefaultThresholds returns the standard drinking-water threshold tables
func DefaultThresholds() Thresholds {
	return Thresholds{
		Critical: Band{
			PHMin:        5.5,
			PHMax:        9.0,
			EColiMax:     10,
			TurbidityMax: 10,
		},
		Warning: Band{
			PHMin: 6.0,
			PHMax: 8.5,
		},
	}
}
