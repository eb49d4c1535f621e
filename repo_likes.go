package feed

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type Likes interface {
	repository.Repository[*PostLike]

	Exists(ctx context.Context, accountID, postID uuid.UUID) (bool, error)
	ExistsTx(ctx context.Context, tx bun.IDB, accountID, postID uuid.UUID) (bool, error)
	AddTx(ctx context.Context, tx bun.IDB, accountID, postID uuid.UUID) error
	RemoveTx(ctx context.Context, tx bun.IDB, accountID, postID uuid.UUID) error
	ListPostIDs(ctx context.Context, accountID uuid.UUID) ([]uuid.UUID, error)
}

type likes struct {
	repository.Repository[*PostLike]
	db *bun.DB
}

var _ Likes = (*likes)(nil)

func NewLikesRepository(db *bun.DB) Likes {
	repo := repository.NewRepository[*PostLike](db, repository.ModelHandlers[*PostLike]{
		NewRecord: func() *PostLike { return &PostLike{} },
		GetID: func(l *PostLike) uuid.UUID {
			if l == nil {
				return uuid.Nil
			}
			return l.ID
		},
		SetID: func(l *PostLike, id uuid.UUID) {
			if l != nil {
				l.ID = id
			}
		},
	})

	return &likes{
		Repository: repo,
		db:         db,
	}
}

func (l *likes) Exists(ctx context.Context, accountID, postID uuid.UUID) (bool, error) {
	return l.ExistsTx(ctx, l.db, accountID, postID)
}

func (l *likes) ExistsTx(ctx context.Context, tx bun.IDB, accountID, postID uuid.UUID) (bool, error) {
	return tx.NewSelect().
		Model((*PostLike)(nil)).
		Where("?TableAlias.account_id = ?", accountID).
		Where("?TableAlias.post_id = ?", postID).
		Exists(ctx)
}

func (l *likes) AddTx(ctx context.Context, tx bun.IDB, accountID, postID uuid.UUID) error {
	record := &PostLike{
		ID:        uuid.New(),
		AccountID: accountID,
		PostID:    postID,
	}

	_, err := l.Repository.CreateTx(ctx, tx, record)
	return err
}

func (l *likes) RemoveTx(ctx context.Context, tx bun.IDB, accountID, postID uuid.UUID) error {
	_, err := tx.NewDelete().
		Model((*PostLike)(nil)).
		Where("?TableAlias.account_id = ?", accountID).
		Where("?TableAlias.post_id = ?", postID).
		Exec(ctx)
	return err
}

func (l *likes) ListPostIDs(ctx context.Context, accountID uuid.UUID) ([]uuid.UUID, error) {
	records := []*PostLike{}
	err := l.db.NewSelect().
		Model(&records).
		Where("?TableAlias.account_id = ?", accountID).
		OrderExpr(`"created_at" ASC, rowid ASC`).
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(records))
	for i, r := range records {
		ids[i] = r.PostID
	}
	return ids, nil
}
