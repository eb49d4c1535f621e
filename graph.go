package feed

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// SocialGraphStore owns the post and reply collections and derives feeds.
type SocialGraphStore struct {
	repo   RepositoryManager
	logger Logger
	now    func() time.Time
	debug  bool
}

func NewSocialGraphStore(repo RepositoryManager) *SocialGraphStore {
	return &SocialGraphStore{
		repo:   repo,
		logger: defLogger{},
		now:    time.Now,
	}
}

func (s *SocialGraphStore) WithLogger(logger Logger) *SocialGraphStore {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// WithClock injects a custom clock (useful for tests).
func (s *SocialGraphStore) WithClock(clock func() time.Time) *SocialGraphStore {
	if clock != nil {
		s.now = clock
	}
	return s
}

// WithDebug enables payload dumps on create paths.
func (s *SocialGraphStore) WithDebug(debug bool) *SocialGraphStore {
	s.debug = debug
	return s
}

// CreatePost inserts a new post at the head of the feed. A nil author is a
// guarded no-op at the boundary (no active viewer), not an error: both return
// values are nil.
func (s *SocialGraphStore) CreatePost(ctx context.Context, author *Account, content string, mediaRef ...string) (*Post, error) {
	if author == nil || author.ID == uuid.Nil {
		return nil, nil
	}

	createdAt := s.now()
	post := &Post{
		AccountID: author.ID,
		Content:   content,
		CreatedAt: &createdAt,
	}
	if len(mediaRef) > 0 {
		post.MediaRef = mediaRef[0]
	}

	post, err := s.repo.Posts().Create(ctx, post)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "could not create post")
	}

	if s.debug {
		s.logger.Debug("created post %s", print.MaybePrettyJSON(post))
	}

	post.Author = author
	return post, nil
}

// AddReply appends a reply to an existing post and bumps its reply counter in
// the same transaction; either both happen or neither does.
func (s *SocialGraphStore) AddReply(ctx context.Context, postID uuid.UUID, author *Account, content string) (*Reply, error) {
	if author == nil || author.ID == uuid.Nil {
		return nil, nil
	}

	createdAt := s.now()
	reply := &Reply{
		PostID:    postID,
		AccountID: author.ID,
		Content:   content,
		CreatedAt: &createdAt,
	}

	err := s.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := s.repo.Posts().GetPostByIDTx(ctx, tx, postID); err != nil {
			return err
		}

		var err error
		if reply, err = s.repo.Replies().CreateTx(ctx, tx, reply); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "could not create reply")
		}

		return s.repo.Posts().IncrementReplyCountTx(ctx, tx, postID)
	})

	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return nil, richErr
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "reply transaction failed")
	}

	reply.Author = author
	return reply, nil
}

// ListPosts returns the global feed, newest first, with authors and replies
// populated.
func (s *SocialGraphStore) ListPosts(ctx context.Context) ([]*Post, error) {
	return s.repo.Posts().ListFeed(ctx)
}

// ListPostsByAuthor returns the feed filtered to the account with the given
// handle, same ordering. An unknown handle yields an empty feed; accounts are
// never deleted so there is no dangling-author case to report.
func (s *SocialGraphStore) ListPostsByAuthor(ctx context.Context, handle string) ([]*Post, error) {
	return s.repo.Posts().ListByAuthorHandle(ctx, handle)
}

// GetPost fetches a single post by id.
func (s *SocialGraphStore) GetPost(ctx context.Context, postID uuid.UUID) (*Post, error) {
	return s.repo.Posts().GetPostByID(ctx, postID)
}
