package domain

import "time"

const day = 24 * time.Hour

// DemoBooks returns the collection a first launch is seeded with.
// Ids are fixed so the seed is recognisable in persisted snapshots.
func DemoBooks(now time.Time) []*Book {
	return []*Book{
		{
			ID:          "seed-1",
			Title:       "Pride and Prejudice",
			Author:      "Jane Austen",
			Cover:       "https://images.pexels.com/photos/4842656/pexels-photo-4842656.jpeg?auto=compress&cs=tinysrgb&w=400",
			CurrentPage: 45,
			TotalPages:  432,
			Progress:    10.4,
			Favorite:    true,
			Tags:        []string{"Romance", "Classic"},
			AddedDate:   now.Add(-7 * day),
			LastRead:    Ptr(now.Add(-1 * day)),
			ReadingTime: 180,
		},
		{
			ID:          "seed-2",
			Title:       "The Enchanted Garden",
			Author:      "Luna Rosewood",
			Cover:       "https://images.pexels.com/photos/1029141/pexels-photo-1029141.jpeg?auto=compress&cs=tinysrgb&w=400",
			CurrentPage: 1,
			TotalPages:  298,
			Tags:        []string{"Fantasy", "Romance"},
			AddedDate:   now,
			LastRead:    Ptr(now),
		},
		{
			ID:          "seed-3",
			Title:       "Moonlit Whispers",
			Author:      "Isabella Nightingale",
			Cover:       "https://images.pexels.com/photos/3847579/pexels-photo-3847579.jpeg?auto=compress&cs=tinysrgb&w=400",
			CurrentPage: 156,
			TotalPages:  267,
			Progress:    58.4,
			Favorite:    true,
			Tags:        []string{"Romance", "Contemporary"},
			AddedDate:   now.Add(-14 * day),
			LastRead:    Ptr(now.Add(-2 * day)),
			ReadingTime: 420,
		},
	}
}
