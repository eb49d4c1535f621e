package feed

import (
	"strings"

	"github.com/samber/lo"
)

// FeedQueryService filters an already-loaded feed by free text. It is a pure
// filter over the slice it is given: it never reads or mutates the stores, and
// it does no ranking.
type FeedQueryService struct{}

func NewFeedQueryService() *FeedQueryService {
	return &FeedQueryService{}
}

// Search returns the posts whose content, author display name, or author
// handle contains the query, case-insensitively, preserving relative order.
// An empty or all-whitespace query returns the input unchanged.
func (s *FeedQueryService) Search(posts []*Post, query string) []*Post {
	if strings.TrimSpace(query) == "" {
		return posts
	}

	q := strings.ToLower(query)

	return lo.Filter(posts, func(post *Post, _ int) bool {
		return postMatches(post, q)
	})
}

func postMatches(post *Post, loweredQuery string) bool {
	if post == nil {
		return false
	}

	if strings.Contains(strings.ToLower(post.Content), loweredQuery) {
		return true
	}

	if post.Author == nil {
		return false
	}

	return strings.Contains(strings.ToLower(post.Author.DisplayName), loweredQuery) ||
		strings.Contains(strings.ToLower(post.Author.Handle), loweredQuery)
}
