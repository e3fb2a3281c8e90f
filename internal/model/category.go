package model

// Category groups videos by game title, e.g. "R.E.P.O" or "Phasmophobia".
type Category struct {
	ID   string `gorm:"primaryKey" json:"id"`
	Name string `gorm:"not null" json:"name"`
	// URL/lookup safe form of Name, see pkg/slug
	Slug string `gorm:"not null;index" json:"slug"`
}

// CategoryCount is one row of the grouped per-category video count.
type CategoryCount struct {
	CategoryID string `json:"categoryId"`
	Count      int64  `json:"count"`
}

// CategoryFilter drives the gallery filter bar. Categories without any
// videos are not included.
type CategoryFilter struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int64  `json:"count"`
}
