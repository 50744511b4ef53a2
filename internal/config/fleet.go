package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sreepuli/AquaAlert-sub000/internal/domain/alert"
	"github.com/sreepuli/AquaAlert-sub000/internal/domain/official"
	"github.com/sreepuli/AquaAlert-sub000/internal/domain/sensor"
)

// Fleet is the static deployment description consumed by the engine:
// the monitored sensors, the fallback officials roster and optional
// threshold overrides.
type Fleet struct {
	Sensors    []SensorSpec         `yaml:"sensors"`
	Officials  []*official.Official `yaml:"officials"`
	Thresholds *alert.Thresholds    `yaml:"thresholds,omitempty"`
}

// SensorSpec describes one monitored sensor in the fleet file
type SensorSpec struct {
	ID        string  `yaml:"id"`
	Name      string  `yaml:"name"`
	Type      string  `yaml:"type"`
	Village   string  `yaml:"village"`
	District  string  `yaml:"district"`
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
	Status    string  `yaml:"status,omitempty"`
}

// LoadFleet loads the fleet description from a YAML file, or returns the
// embedded default fleet when path is empty.
func LoadFleet(path string) (*Fleet, error) {
	if path == "" {
		return DefaultFleet(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fleet file: %w", err)
	}

	var fleet Fleet
	if err := yaml.Unmarshal(data, &fleet); err != nil {
		return nil, fmt.Errorf("failed to parse fleet file: %w", err)
	}

	if len(fleet.Sensors) == 0 {
		return nil, fmt.Errorf("fleet file declares no sensors")
	}

	for i := range fleet.Sensors {
		if fleet.Sensors[i].ID == "" {
			return nil, fmt.Errorf("sensor at index %d has no id", i)
		}
		if fleet.Sensors[i].Status == "" {
			fleet.Sensors[i].Status = sensor.StatusActive
		}
	}

	if len(fleet.Officials) == 0 {
		fleet.Officials = DefaultFleet().Officials
	}

	return &fleet, nil
}

// Build converts the fleet file entries into engine-owned sensors
func (f *Fleet) Build(now time.Time) []*sensor.Sensor {
	sensors := make([]*sensor.Sensor, 0, len(f.Sensors))
	for _, spec := range f.Sensors {
		status := spec.Status
		if status == "" {
			status = sensor.StatusActive
		}
		sensors = append(sensors, &sensor.Sensor{
			ID:   spec.ID,
			Name: spec.Name,
			Type: spec.Type,
			Location: sensor.Location{
				Latitude:  spec.Latitude,
				Longitude: spec.Longitude,
				Village:   spec.Village,
				District:  spec.District,
			},
			Status:      status,
			InstalledAt: now,
		})
	}
	return sensors
}

// DefaultFleet returns the embedded demo deployment: five sensors across
// two districts and the fixed fallback roster.
func DefaultFleet() *Fleet {
	return &Fleet{
		Sensors: []SensorSpec{
			{ID: "WQ-001", Name: "Rampur Village Well", Type: "multiparameter", Village: "Rampur", District: "Nalgonda", Latitude: 17.0575, Longitude: 79.2684, Status: sensor.StatusActive},
			{ID: "WQ-002", Name: "Devarakonda Tank Outlet", Type: "multiparameter", Village: "Devarakonda", District: "Nalgonda", Latitude: 16.6926, Longitude: 78.9205, Status: sensor.StatusActive},
			{ID: "WQ-003", Name: "Miryalaguda Treatment Plant", Type: "multiparameter", Village: "Miryalaguda", District: "Nalgonda", Latitude: 16.8753, Longitude: 79.5661, Status: sensor.StatusActive},
			{ID: "WQ-004", Name: "Suryapet Borewell Cluster", Type: "multiparameter", Village: "Suryapet", District: "Suryapet", Latitude: 17.1353, Longitude: 79.6333, Status: sensor.StatusActive},
			{ID: "WQ-005", Name: "Kodad Canal Intake", Type: "multiparameter", Village: "Kodad", District: "Suryapet", Latitude: 16.9984, Longitude: 79.9656, Status: sensor.StatusActive},
		},
		Officials: []*official.Official{
			{ID: "OFF-001", Name: "Dr. K. Ramesh", Email: "dmho.nalgonda@aquaalert.local", Position: "District Medical & Health Officer", District: "Nalgonda", Tags: []string{official.TagCriticalAlerts, official.TagWaterQuality, official.TagDailySummary}},
			{ID: "OFF-002", Name: "S. Lakshmi Prasanna", Email: "rws.nalgonda@aquaalert.local", Position: "Rural Water Supply Engineer", District: "Nalgonda", Tags: []string{official.TagWaterQuality}},
			{ID: "OFF-003", Name: "Dr. P. Anand Kumar", Email: "dmho.suryapet@aquaalert.local", Position: "District Medical & Health Officer", District: "Suryapet", Tags: []string{official.TagCriticalAlerts, official.TagDailySummary}},
			{ID: "OFF-004", Name: "M. Venkatesh", Email: "sanitation.suryapet@aquaalert.local", Position: "Sanitation Officer", District: "Suryapet", Tags: []string{official.TagWaterQuality}},
			{ID: "OFF-005", Name: "G. Swapna", Email: "director.phed@aquaalert.local", Position: "Director, Public Health Engineering", District: "", Tags: []string{official.TagCriticalAlerts, official.TagDailySummary}},
		},
	}
}
