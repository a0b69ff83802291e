package core

import "time"

// Timestamp is a UTC instant rendered as RFC3339 in reports and JSON.
type Timestamp time.Time

func NewTimestamp(t time.Time) Timestamp { return Timestamp(t.UTC()) }

// Now is the run's generation time.
func Now() Timestamp { return NewTimestamp(time.Now()) }

func (t Timestamp) String() string {
	return time.Time(t).Format(time.RFC3339)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return time.Time(t).MarshalJSON()
}
