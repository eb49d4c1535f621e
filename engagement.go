package feed

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// EngagementTracker manages per-viewer like membership. The liked-set is
// scoped by viewer id, so switching accounts switches sets; like_count on a
// post aggregates toggles across all viewers.
type EngagementTracker struct {
	repo   RepositoryManager
	logger Logger
}

func NewEngagementTracker(repo RepositoryManager) *EngagementTracker {
	return &EngagementTracker{
		repo:   repo,
		logger: defLogger{},
	}
}

func (t *EngagementTracker) WithLogger(logger Logger) *EngagementTracker {
	if logger != nil {
		t.logger = logger
	}
	return t
}

// ToggleLike flips the viewer's membership for the post and moves the post's
// like counter by exactly one in the same transaction. Decrements floor at
// zero. Two toggles by the same viewer always return the counter to where it
// started.
func (t *EngagementTracker) ToggleLike(ctx context.Context, viewer *Account, postID uuid.UUID) (LikeResult, error) {
	result := LikeResult{}

	if viewer == nil || viewer.ID == uuid.Nil {
		return result, goerrors.New("toggle requires an active viewer", goerrors.CategoryBadInput).
			WithCode(goerrors.CodeBadRequest)
	}

	err := t.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := t.repo.Posts().GetPostByIDTx(ctx, tx, postID); err != nil {
			return err
		}

		liked, err := t.repo.Likes().ExistsTx(ctx, tx, viewer.ID, postID)
		if err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to read like membership")
		}

		if liked {
			if err := t.repo.Likes().RemoveTx(ctx, tx, viewer.ID, postID); err != nil {
				return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to remove like")
			}
			if err := t.repo.Posts().AdjustLikeCountTx(ctx, tx, postID, -1); err != nil {
				return err
			}
			result.Liked = false
		} else {
			if err := t.repo.Likes().AddTx(ctx, tx, viewer.ID, postID); err != nil {
				return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to add like")
			}
			if err := t.repo.Posts().AdjustLikeCountTx(ctx, tx, postID, 1); err != nil {
				return err
			}
			result.Liked = true
		}

		post, err := t.repo.Posts().GetPostByIDTx(ctx, tx, postID)
		if err != nil {
			return err
		}
		result.LikeCount = post.LikeCount

		return nil
	})

	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return LikeResult{}, richErr
		}
		return LikeResult{}, goerrors.Wrap(err, goerrors.CategoryInternal, "like toggle transaction failed")
	}

	return result, nil
}

// IsLiked reports whether the viewer currently has the post in their
// liked-set. Pure membership query; no counters move.
func (t *EngagementTracker) IsLiked(ctx context.Context, viewer *Account, postID uuid.UUID) (bool, error) {
	if viewer == nil || viewer.ID == uuid.Nil {
		return false, nil
	}

	return t.repo.Likes().Exists(ctx, viewer.ID, postID)
}

// LikedPosts returns the ids in the viewer's liked-set, oldest first. The
// presentation layer uses this to mark hearts on render.
func (t *EngagementTracker) LikedPosts(ctx context.Context, viewer *Account) ([]uuid.UUID, error) {
	if viewer == nil || viewer.ID == uuid.Nil {
		return nil, nil
	}

	return t.repo.Likes().ListPostIDs(ctx, viewer.ID)
}
