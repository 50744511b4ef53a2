package services

import (
	"testing"
	"time"

	"github.com/sreepuli/AquaAlert-sub000/internal/domain/alert"
	"github.com/sreepuli/AquaAlert-sub000/internal/domain/sensor"
	"github.com/sreepuli/AquaAlert-sub000/internal/testutil"
)

func TestEvaluator_Evaluate(t *testing.T) {
	evaluator := NewEvaluator(alert.DefaultThresholds())
	now := time.Now()

	tests := []struct {
		name      string
		mutate    func(r *sensor.Reading)
		wantKinds []string
	}{
		{
			name:      "normal reading yields no findings",
			mutate:    func(r *sensor.Reading) {},
			wantKinds: nil,
		},
		{
			name: "ecoli above critical limit",
			mutate: func(r *sensor.Reading) {
				r.Parameters.EColi = 15
			},
			wantKinds: []string{alert.KindCritical},
		},
		{
			name: "turbidity above critical limit",
			mutate: func(r *sensor.Reading) {
				r.Parameters.Turbidity = 12.5
			},
			wantKinds: []string{alert.KindCritical},
		},
		{
			name: "acidic ph fires critical and warning",
			mutate: func(r *sensor.Reading) {
				r.Parameters.PH = 5.0
			},
			wantKinds: []string{alert.KindCritical, alert.KindWarning},
		},
		{
			name: "ph in warning band only",
			mutate: func(r *sensor.Reading) {
				r.Parameters.PH = 5.8
			},
			wantKinds: []string{alert.KindWarning},
		},
		{
			name: "ph just inside preferred band",
			mutate: func(r *sensor.Reading) {
				r.Parameters.PH = 6.0
			},
			wantKinds: nil,
		},
		{
			name: "low battery",
			mutate: func(r *sensor.Reading) {
				r.BatteryLevel = 15
			},
			wantKinds: []string{alert.KindMaintenance},
		},
		{
			name: "offline sensor",
			mutate: func(r *sensor.Reading) {
				r.Status = sensor.ConnectivityOffline
			},
			wantKinds: []string{alert.KindTechnical},
		},
		{
			name: "contamination with failing equipment",
			mutate: func(r *sensor.Reading) {
				r.Parameters.EColi = 18
				r.BatteryLevel = 5
				r.Status = sensor.ConnectivityOffline
			},
			wantKinds: []string{alert.KindCritical, alert.KindMaintenance, alert.KindTechnical},
		},
		{
			name: "elevated ecoli below limit stays silent",
			mutate: func(r *sensor.Reading) {
				r.Parameters.EColi = 9
			},
			wantKinds: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := testutil.NormalReading("WQ-001", now)
			tt.mutate(r)

			findings := evaluator.Evaluate(r)

			if len(findings) != len(tt.wantKinds) {
				t.Fatalf("Evaluate() returned %d findings, want %d: %+v", len(findings), len(tt.wantKinds), findings)
			}
			for i, kind := range tt.wantKinds {
				if findings[i].Kind != kind {
					t.Errorf("finding[%d].Kind = %q, want %q", i, findings[i].Kind, kind)
				}
			}
		})
	}
}

func TestEvaluator_FindingActions(t *testing.T) {
	evaluator := NewEvaluator(alert.DefaultThresholds())

	r := testutil.NormalReading("WQ-002", time.Now())
	r.Parameters.EColi = 20

	findings := evaluator.Evaluate(r)
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(findings))
	}
	if findings[0].Parameter != sensor.ParamEColi {
		t.Errorf("Parameter = %q, want %q", findings[0].Parameter, sensor.ParamEColi)
	}
	if findings[0].Value != 20 {
		t.Errorf("Value = %v, want 20", findings[0].Value)
	}
	if findings[0].Action == "" {
		t.Error("expected an action on the critical finding")
	}
}

func TestDeriveSeverity(t *testing.T) {
	tests := []struct {
		name     string
		findings []alert.Finding
		want     string
	}{
		{
			name:     "critical finding dominates",
			findings: []alert.Finding{{Kind: alert.KindMaintenance}, {Kind: alert.KindCritical}},
			want:     alert.SeverityCritical,
		},
		{
			name:     "maintenance only is warning",
			findings: []alert.Finding{{Kind: alert.KindMaintenance}},
			want:     alert.SeverityWarning,
		},
		{
			name:     "technical only is warning",
			findings: []alert.Finding{{Kind: alert.KindTechnical}},
			want:     alert.SeverityWarning,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := alert.DeriveSeverity(tt.findings); got != tt.want {
				t.Errorf("DeriveSeverity() = %q, want %q", got, tt.want)
			}
		})
	}
}
