package playback

import "fmt"

// Status is the lifecycle state of a playback session.
type Status uint8

const (
	Idle Status = iota
	Running
	Paused
	Completed
	Cancelled
)

var statusNames = [...]string{
	Idle:      "idle",
	Running:   "running",
	Paused:    "paused",
	Completed: "completed",
	Cancelled: "cancelled",
}

func (s Status) String() string {
	if int(s) >= len(statusNames) {
		return fmt.Sprintf("status(%d)", uint8(s))
	}
	return statusNames[s]
}

// Terminal reports whether no further steps can be applied.
func (s Status) Terminal() bool { return s == Completed || s == Cancelled }

func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }
