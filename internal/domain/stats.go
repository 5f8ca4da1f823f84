package domain

import "math"

// LibraryStats summarizes reading activity across the whole library.
type LibraryStats struct {
	TotalBooks      int     `json:"totalBooks"`
	CompletedBooks  int     `json:"completedBooks"`
	InProgressBooks int     `json:"inProgressBooks"`
	FavoriteBooks   int     `json:"favoriteBooks"`
	TotalMinutes    int     `json:"totalMinutes"`
	TotalHours      int     `json:"totalHours"` // rounded
	AverageProgress float64 `json:"averageProgress"`
	PagesRead       int     `json:"pagesRead"`
}

// ComputeStats derives LibraryStats from a snapshot of books.
func ComputeStats(books []*Book) LibraryStats {
	var stats LibraryStats
	var progressSum float64

	for _, b := range books {
		stats.TotalBooks++
		if b.IsFinished() {
			stats.CompletedBooks++
		}
		if b.IsCurrentlyReading() {
			stats.InProgressBooks++
		}
		if b.Favorite {
			stats.FavoriteBooks++
		}
		stats.TotalMinutes += b.ReadingTime
		stats.PagesRead += b.CurrentPage
		progressSum += b.Progress
	}

	stats.TotalHours = int(math.Round(float64(stats.TotalMinutes) / 60))
	if stats.TotalBooks > 0 {
		stats.AverageProgress = progressSum / float64(stats.TotalBooks)
	}
	return stats
}
