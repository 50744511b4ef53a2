package engine

import (
	"sync"
	"time"

	"github.com/sreepuli/AquaAlert-sub000/internal/domain/alert"
	"github.com/sreepuli/AquaAlert-sub000/internal/domain/sensor"
)

// Buffer capacities. Insertion order is preserved; the oldest entry is
// evicted first once capacity is reached.
const (
	readingBufferCap = 100
	alertBufferCap   = 10
)

// readingBuffer is a bounded FIFO over recent readings
type readingBuffer struct {
	mu  sync.RWMutex
	buf []*sensor.Reading
	cap int
}

func newReadingBuffer(capacity int) *readingBuffer {
	return &readingBuffer{
		buf: make([]*sensor.Reading, 0, capacity),
		cap: capacity,
	}
}

func (b *readingBuffer) Add(r *sensor.Reading) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.buf) >= b.cap {
		b.buf = b.buf[1:]
	}
	b.buf = append(b.buf, r)
}

// Recent returns up to count readings, newest last, optionally filtered
// by sensor id. Returned slices are copies.
func (b *readingBuffer) Recent(sensorID string, count int) []*sensor.Reading {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var matched []*sensor.Reading
	for _, r := range b.buf {
		if sensorID == "" || r.SensorID == sensorID {
			matched = append(matched, r)
		}
	}
	if count <= 0 || count > len(matched) {
		count = len(matched)
	}
	out := make([]*sensor.Reading, count)
	copy(out, matched[len(matched)-count:])
	return out
}

// Between returns readings with timestamps inside [start, end]
func (b *readingBuffer) Between(start, end time.Time) []*sensor.Reading {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var out []*sensor.Reading
	for _, r := range b.buf {
		if !r.Timestamp.Before(start) && !r.Timestamp.After(end) {
			out = append(out, r)
		}
	}
	return out
}

func (b *readingBuffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.buf)
}

// alertBuffer is a bounded FIFO over recent alert records
type alertBuffer struct {
	mu  sync.RWMutex
	buf []*alert.Alert
	cap int
}

func newAlertBuffer(capacity int) *alertBuffer {
	return &alertBuffer{
		buf: make([]*alert.Alert, 0, capacity),
		cap: capacity,
	}
}

func (b *alertBuffer) Add(a *alert.Alert) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.buf) >= b.cap {
		b.buf = b.buf[1:]
	}
	b.buf = append(b.buf, a)
}

// Recent returns up to count alerts passing the filter, newest last
func (b *alertBuffer) Recent(filter alert.Filter, count int) []*alert.Alert {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var matched []*alert.Alert
	for _, a := range b.buf {
		if filter.Matches(a) {
			matched = append(matched, a)
		}
	}
	if count <= 0 || count > len(matched) {
		count = len(matched)
	}
	out := make([]*alert.Alert, count)
	copy(out, matched[len(matched)-count:])
	return out
}

// Between returns alerts with timestamps inside [start, end]
func (b *alertBuffer) Between(start, end time.Time) []*alert.Alert {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var out []*alert.Alert
	for _, a := range b.buf {
		if !a.Timestamp.Before(start) && !a.Timestamp.After(end) {
			out = append(out, a)
		}
	}
	return out
}

// Get returns the alert with the given id, or nil
func (b *alertBuffer) Get(id string) *alert.Alert {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, a := range b.buf {
		if a.ID == id {
			return a
		}
	}
	return nil
}

func (b *alertBuffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.buf)
}
