// Package testutil provides shared mocks and fixtures for tests
package testutil

import (
	"context"
	"fmt"
	"time"

	"github.com/sreepuli/AquaAlert-sub000/internal/domain/mail"
	"github.com/sreepuli/AquaAlert-sub000/internal/domain/official"
	"github.com/sreepuli/AquaAlert-sub000/internal/domain/sensor"
)

// MockMailer is a mock implementation of mail.Mailer that records
// every message it is asked to send
type MockMailer struct {
	Sent      []*mail.Message
	SendError error
	nextID    int
}

func NewMockMailer() *MockMailer {
	return &MockMailer{}
}

func (m *MockMailer) Send(_ context.Context, msg *mail.Message) (*mail.SendResult, error) {
	if m.SendError != nil {
		return nil, m.SendError
	}
	m.Sent = append(m.Sent, msg)
	m.nextID++
	recipients := append(append([]string{}, msg.To...), msg.CC...)
	return &mail.SendResult{
		MessageID:  fmt.Sprintf("mock-%d", m.nextID),
		Recipients: recipients,
	}, nil
}

// MockRoster is a mock implementation of official.Repository with an
// injectable lookup error
type MockRoster struct {
	Officials []*official.Official
	ListError error
	Calls     int
}

func NewMockRoster(officials ...*official.Official) *MockRoster {
	return &MockRoster{Officials: officials}
}

func (m *MockRoster) List(_ context.Context, filter official.Filter) ([]*official.Official, error) {
	m.Calls++
	if m.ListError != nil {
		return nil, m.ListError
	}
	var out []*official.Official
	for _, o := range m.Officials {
		if filter.District != "" && o.District != filter.District {
			continue
		}
		if filter.Tag != "" && !o.HasTag(filter.Tag) {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

// Official builds a roster entry for tests
func Official(id, email, position, district string, tags ...string) *official.Official {
	return &official.Official{
		ID:       id,
		Name:     id,
		Email:    email,
		Position: position,
		District: district,
		Tags:     tags,
	}
}

// NormalReading builds a reading with all parameters in the normal band
func NormalReading(sensorID string, ts time.Time) *sensor.Reading {
	return &sensor.Reading{
		SensorID:  sensorID,
		Timestamp: ts,
		Location: sensor.Location{
			Village:  "Rampur",
			District: "Nalgonda",
		},
		Parameters: sensor.Parameters{
			PH:              7.2,
			Turbidity:       2.0,
			TDS:             250,
			EColi:           0,
			Temperature:     24,
			FlowRate:        15,
			DissolvedOxygen: 8,
		},
		BatteryLevel:   80,
		SignalStrength: 90,
		Status:         sensor.ConnectivityOnline,
	}
}
