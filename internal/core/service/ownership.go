package service

import (
	"github.com/storyweave/story-platform/internal/core/domain"
)

// IsOwner decides whether principal may mutate a story authored by author.
//
// Historical story documents were written under inconsistent identity
// conventions: the author snapshot sometimes holds an email where a username
// was expected, or only an email was ever recorded. The match rules below are
// evaluated in order and the first hit wins; an empty operand simply makes
// its rule false.
//
//  1. usernames match
//  2. emails match
//  3. principal username matches the recorded author email
//  4. principal email matches the recorded author username
//  5. author email is email-shaped: principal username matches its local part
//  6. author username is email-shaped: principal username matches its local part
func IsOwner(author domain.AuthorRef, principal *domain.User) bool {
	if principal == nil {
		return false
	}

	username := principal.Username
	email := principal.Email

	if username != "" && username == author.Username {
		return true
	}
	if email != "" && author.Email != "" && email == author.Email {
		return true
	}
	if username != "" && author.Email != "" && username == author.Email {
		return true
	}
	if email != "" && email == author.Username {
		return true
	}
	if username != "" {
		if local := domain.EmailLocalPart(author.Email); local != "" && username == local {
			return true
		}
		if local := domain.EmailLocalPart(author.Username); local != "" && username == local {
			return true
		}
	}

	return false
}
