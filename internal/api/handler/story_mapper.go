package handler

import (
	"github.com/storyweave/story-platform/internal/core/domain"
)

func toAuthorResponse(a domain.AuthorRef) authorResponse {
	return authorResponse{
		Username:       a.Username,
		Email:          a.Email,
		DisplayName:    a.DisplayName,
		Bio:            a.Bio,
		ProfilePicture: a.ProfilePicture,
	}
}

func toChapterResponse(ch domain.Chapter) chapterResponse {
	return chapterResponse{
		Number:    ch.Number,
		Title:     ch.Title,
		Content:   ch.Content,
		CreatedAt: ch.CreatedAt,
		UpdatedAt: ch.UpdatedAt,
	}
}

func toStoryResponse(s *domain.Story) storyResponse {
	chapters := make([]chapterResponse, 0, len(s.Chapters))
	for _, ch := range s.Chapters {
		chapters = append(chapters, toChapterResponse(ch))
	}
	return storyResponse{
		ID:        s.ID,
		Title:     s.Title,
		Synopsis:  s.Synopsis,
		Author:    toAuthorResponse(s.Author),
		Rating:    s.Rating,
		Genres:    s.Genres,
		Tags:      s.Tags,
		Chapters:  chapters,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func toStorySummaryResponse(s *domain.Story) storySummaryResponse {
	return storySummaryResponse{
		ID:           s.ID,
		Title:        s.Title,
		Synopsis:     s.Synopsis,
		Author:       toAuthorResponse(s.Author),
		Rating:       s.Rating,
		Genres:       s.Genres,
		Tags:         s.Tags,
		ChapterCount: len(s.Chapters),
		CreatedAt:    s.CreatedAt,
	}
}

func toStorySummaries(stories []*domain.Story) []storySummaryResponse {
	out := make([]storySummaryResponse, 0, len(stories))
	for _, s := range stories {
		out = append(out, toStorySummaryResponse(s))
	}
	return out
}
