package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrStoryNotFound   = errors.New("story not found")
	ErrChapterNotFound = errors.New("chapter not found")
	ErrNotOwner        = errors.New("caller is not the story owner")
)

// AuthorRef is the denormalized author snapshot attached to a story. It is an
// aggregation, not authoritative identity: the account can change or vanish
// independently, and historical records sometimes carry an email where a
// username was expected. Ownership checks read it, nothing writes it back.
type AuthorRef struct {
	Username       string `json:"username" bson:"username"`
	Email          string `json:"email,omitempty" bson:"email,omitempty"`
	DisplayName    string `json:"display_name" bson:"display_name"`
	Bio            string `json:"bio,omitempty" bson:"bio,omitempty"`
	ProfilePicture string `json:"profile_picture_url,omitempty" bson:"profile_picture_url,omitempty"`
}

// EmailLocalPart returns the part of s before the first "@", or "" when s is
// not email-shaped.
func EmailLocalPart(s string) string {
	i := strings.Index(s, "@")
	if i < 0 {
		return ""
	}
	return s[:i]
}

// Chapter is owned by its story: deleting the story deletes its chapters.
type Chapter struct {
	Number    int       `json:"number" bson:"number"`
	Title     string    `json:"title" bson:"title"`
	Content   string    `json:"content" bson:"content"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// Story is the core aggregate root.
type Story struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Title     string    `json:"title" bson:"title"`
	Synopsis  string    `json:"synopsis" bson:"synopsis"`
	Author    AuthorRef `json:"author" bson:"author"`
	Rating    float64   `json:"rating" bson:"rating"`
	Genres    []string  `json:"genres" bson:"genres"`
	Tags      []string  `json:"tags" bson:"tags"`
	Chapters  []Chapter `json:"chapters" bson:"chapters"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// ChapterByNumber returns the chapter with the given number, or nil.
func (s *Story) ChapterByNumber(number int) *Chapter {
	for i := range s.Chapters {
		if s.Chapters[i].Number == number {
			return &s.Chapters[i]
		}
	}
	return nil
}

// NextChapterNumber returns the number the next appended chapter should get.
func (s *Story) NextChapterNumber() int {
	max := 0
	for _, ch := range s.Chapters {
		if ch.Number > max {
			max = ch.Number
		}
	}
	return max + 1
}
