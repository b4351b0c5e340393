package domain

import (
	"errors"
	"time"
)

var (
	ErrRatingNotFound = errors.New("rating not found")
	ErrInvalidRating  = errors.New("rating must be between 1 and 5")
)

// Rating is a 1-5 star vote. One rating per (story, user), or per
// (story, chapter, user) when ChapterNumber >= 1. Re-rating overwrites.
type Rating struct {
	ID            string    `json:"id" bson:"_id,omitempty"`
	StoryID       string    `json:"story_id" bson:"story_id"`
	ChapterNumber int       `json:"chapter_number,omitempty" bson:"chapter_number"`
	UserID        string    `json:"user_id" bson:"user_id"`
	Value         int       `json:"value" bson:"value"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at"`
}

// ValidRatingValue reports whether v is an accepted star value.
func ValidRatingValue(v int) bool {
	return v >= 1 && v <= 5
}
