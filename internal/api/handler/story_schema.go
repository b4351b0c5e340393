package handler

import "time"

// --- Request types ---

type createStoryRequest struct {
	Title    string   `json:"title" validate:"required,max=200"`
	Synopsis string   `json:"synopsis" validate:"max=2000"`
	Genres   []string `json:"genres"`
	Tags     []string `json:"tags"`
}

type updateStoryRequest struct {
	Title    string   `json:"title" validate:"required,max=200"`
	Synopsis string   `json:"synopsis" validate:"max=2000"`
	Genres   []string `json:"genres"`
	Tags     []string `json:"tags"`
}

// updateStoryMetadataRequest carries a partial update: empty fields are left
// untouched.
type updateStoryMetadataRequest struct {
	Title    string   `json:"title" validate:"max=200"`
	Synopsis string   `json:"synopsis" validate:"max=2000"`
	Genres   []string `json:"genres"`
	Tags     []string `json:"tags"`
}

type chapterRequest struct {
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content" validate:"required"`
}

// --- Response types ---
// Owned by the transport layer so the JSON contract is not coupled to
// internal service changes.

type authorResponse struct {
	Username       string `json:"username"`
	Email          string `json:"email,omitempty"`
	DisplayName    string `json:"display_name"`
	Bio            string `json:"bio,omitempty"`
	ProfilePicture string `json:"profile_picture_url,omitempty"`
}

type chapterResponse struct {
	Number    int       `json:"number"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type storyResponse struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Synopsis  string            `json:"synopsis"`
	Author    authorResponse    `json:"author"`
	Rating    float64           `json:"rating"`
	Genres    []string          `json:"genres"`
	Tags      []string          `json:"tags"`
	Chapters  []chapterResponse `json:"chapters"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// storySummaryResponse is the lightweight item used in list responses.
// It intentionally omits chapter content to keep payloads small.
type storySummaryResponse struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Synopsis     string         `json:"synopsis"`
	Author       authorResponse `json:"author"`
	Rating       float64        `json:"rating"`
	Genres       []string       `json:"genres"`
	Tags         []string       `json:"tags"`
	ChapterCount int            `json:"chapter_count"`
	CreatedAt    time.Time      `json:"created_at"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listStoriesResponse struct {
	Data       []storySummaryResponse `json:"data"`
	Pagination paginationResponse     `json:"pagination"`
}
