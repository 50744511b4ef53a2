package services

import (
	"fmt"

	"github.com/sreepuli/AquaAlert-sub000/internal/domain/alert"
	"github.com/sreepuli/AquaAlert-sub000/internal/domain/sensor"
	"github.com/sreepuli/AquaAlert-sub000/internal/pkg/metrics"
)

// Evaluator compares readings against the critical and warning threshold
// tables plus the equipment-health checks. Evaluation is stateless; no
// rule suppresses another, so one reading can yield several findings.
type Evaluator struct {
	thresholds alert.Thresholds
}

// NewEvaluator creates a new threshold evaluator
func NewEvaluator(thresholds alert.Thresholds) *Evaluator {
	return &Evaluator{thresholds: thresholds}
}

// Evaluate returns every finding applicable to the reading. A reading
// with all parameters inside normal bounds, full battery and online
// status yields an empty list.
func (e *Evaluator) Evaluate(r *sensor.Reading) []alert.Finding {
	var findings []alert.Finding

	crit := e.thresholds.Critical
	warn := e.thresholds.Warning
	p := r.Parameters

	if p.PH < crit.PHMin || p.PH > crit.PHMax {
		findings = append(findings, alert.Finding{
			Kind:      alert.KindCritical,
			Parameter: sensor.ParamPH,
			Value:     p.PH,
			Message:   fmt.Sprintf("pH %.2f outside safe band %.1f-%.1f", p.PH, crit.PHMin, crit.PHMax),
			Action:    "Immediate water treatment required",
		})
	}

	if p.EColi > crit.EColiMax {
		findings = append(findings, alert.Finding{
			Kind:      alert.KindCritical,
			Parameter: sensor.ParamEColi,
			Value:     p.EColi,
			Message:   fmt.Sprintf("E.coli %.0f CFU/100ml exceeds limit of %.0f", p.EColi, crit.EColiMax),
			Action:    "Stop consumption immediately and alert health authorities",
		})
	}

	if p.Turbidity > crit.TurbidityMax {
		findings = append(findings, alert.Finding{
			Kind:      alert.KindCritical,
			Parameter: sensor.ParamTurbidity,
			Value:     p.Turbidity,
			Message:   fmt.Sprintf("Turbidity %.2f NTU exceeds limit of %.1f", p.Turbidity, crit.TurbidityMax),
			Action:    "Check filtration system",
		})
	}

	// Warning-band pH refinement fires independently of the critical rule.
	if warn.PHMin != 0 && (p.PH < warn.PHMin || p.PH > warn.PHMax) {
		findings = append(findings, alert.Finding{
			Kind:      alert.KindWarning,
			Parameter: sensor.ParamPH,
			Value:     p.PH,
			Message:   fmt.Sprintf("pH %.2f drifting outside preferred band %.1f-%.1f", p.PH, warn.PHMin, warn.PHMax),
			Action:    "Monitor and schedule water treatment",
		})
	}

	if r.BatteryLevel < alert.BatteryLowLevel {
		findings = append(findings, alert.Finding{
			Kind:      alert.KindMaintenance,
			Parameter: "battery",
			Value:     r.BatteryLevel,
			Message:   fmt.Sprintf("Battery at %.0f%%", r.BatteryLevel),
			Action:    "Schedule battery replacement",
		})
	}

	if r.Status == sensor.ConnectivityOffline {
		findings = append(findings, alert.Finding{
			Kind:      alert.KindTechnical,
			Parameter: "connectivity",
			Value:     0,
			Message:   "Sensor reported offline",
			Action:    "Dispatch field technician to inspect the unit",
		})
	}

	for _, f := range findings {
		metrics.RecordFinding(f.Kind, f.Parameter)
	}

	return findings
}
