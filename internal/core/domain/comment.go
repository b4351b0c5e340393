package domain

import (
	"errors"
	"time"
)

var ErrCommentNotFound = errors.New("comment not found")

// Comment is attached either to a story as a whole (ChapterNumber == 0) or to
// a single chapter (ChapterNumber >= 1).
type Comment struct {
	ID            string    `json:"id" bson:"_id,omitempty"`
	StoryID       string    `json:"story_id" bson:"story_id"`
	ChapterNumber int       `json:"chapter_number,omitempty" bson:"chapter_number"`
	UserID        string    `json:"user_id" bson:"user_id"`
	Username      string    `json:"username" bson:"username"`
	Content       string    `json:"content" bson:"content"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at"`
}
