package sensor

import "time"

// Source produces synthetic readings for monitored sensors. The concrete
// implementation is selected once at startup via configuration.
type Source interface {
	// Generate produces one reading for the sensor at the given instant
	Generate(s *Sensor, now time.Time) *Reading

	// Status describes the active source implementation
	Status() string
}
