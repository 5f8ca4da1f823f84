package domain

import (
	"math"
	"time"
)

// ReadingSession is an open timing window used to accrue reading time.
// It is never persisted on its own.
type ReadingSession struct {
	BookID    string     `json:"bookId"`
	StartTime time.Time  `json:"startTime"`
	EndTime   *time.Time `json:"endTime,omitempty"`
	PagesRead int        `json:"pagesRead"`
}

// ElapsedMinutes returns the whole minutes between StartTime and end, rounded half away from zero.
// A clock that went backwards yields zero rather than subtracting reading time.
func (s *ReadingSession) ElapsedMinutes(end time.Time) int {
	elapsed := end.Sub(s.StartTime)
	if elapsed <= 0 {
		return 0
	}
	return int(math.Round(float64(elapsed.Milliseconds()) / 60000))
}
