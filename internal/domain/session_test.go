package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReadingSession_ElapsedMinutes(t *testing.T) {
	start := time.Date(2026, 1, 1, 20, 0, 0, 0, time.UTC)
	s := &ReadingSession{BookID: "b1", StartTime: start}

	assert.Equal(t, 0, s.ElapsedMinutes(start.Add(29*time.Second)))
	assert.Equal(t, 1, s.ElapsedMinutes(start.Add(30*time.Second)))
	assert.Equal(t, 25, s.ElapsedMinutes(start.Add(25*time.Minute+10*time.Second)))
	assert.Equal(t, 0, s.ElapsedMinutes(start.Add(-time.Minute)))
}
