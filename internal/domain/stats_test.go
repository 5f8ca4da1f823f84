package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeStats(t *testing.T) {
	books := []*Book{
		{CurrentPage: 100, TotalPages: 100, Progress: 100, ReadingTime: 90, Favorite: true},
		{CurrentPage: 50, TotalPages: 100, Progress: 50, ReadingTime: 45},
		{CurrentPage: 1, TotalPages: 300, Progress: 100.0 / 300},
	}

	stats := ComputeStats(books)

	assert.Equal(t, 3, stats.TotalBooks)
	assert.Equal(t, 1, stats.CompletedBooks)
	assert.Equal(t, 2, stats.InProgressBooks)
	assert.Equal(t, 1, stats.FavoriteBooks)
	assert.Equal(t, 135, stats.TotalMinutes)
	assert.Equal(t, 2, stats.TotalHours)
	assert.InDelta(t, (100+50+100.0/300)/3, stats.AverageProgress, 1e-9)
	assert.Equal(t, 151, stats.PagesRead)
}

func TestComputeStats_Empty(t *testing.T) {
	stats := ComputeStats(nil)

	assert.Zero(t, stats.TotalBooks)
	assert.Zero(t, stats.AverageProgress)
}
