package feed

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// AdjustPostLikeCountSQL floors the counter at zero so duplicate or
// re-entrant decrements can never drive it negative.
var AdjustPostLikeCountSQL = `UPDATE "posts" AS "pst"
SET
	"like_count" = MAX("like_count" + ?, 0)
WHERE
	"pst"."id" = ?;`

type Posts interface {
	repository.Repository[*Post]

	Create(ctx context.Context, record *Post, criteria ...repository.InsertCriteria) (*Post, error)
	CreateTx(ctx context.Context, tx bun.IDB, record *Post, criteria ...repository.InsertCriteria) (*Post, error)

	GetPostByID(ctx context.Context, id uuid.UUID) (*Post, error)
	GetPostByIDTx(ctx context.Context, tx bun.IDB, id uuid.UUID) (*Post, error)

	ListFeed(ctx context.Context) ([]*Post, error)
	ListFeedTx(ctx context.Context, tx bun.IDB) ([]*Post, error)
	ListByAuthorHandle(ctx context.Context, handle string) ([]*Post, error)
	ListByAuthorHandleTx(ctx context.Context, tx bun.IDB, handle string) ([]*Post, error)

	IncrementReplyCountTx(ctx context.Context, tx bun.IDB, id uuid.UUID) error
	AdjustLikeCountTx(ctx context.Context, tx bun.IDB, id uuid.UUID, delta int) error
}

type posts struct {
	repository.Repository[*Post]
	db *bun.DB
}

var (
	_ Posts                        = (*posts)(nil)
	_ repository.Repository[*Post] = (*posts)(nil)
)

func NewPostsRepository(db *bun.DB) Posts {
	repo := repository.NewRepository[*Post](db, repository.ModelHandlers[*Post]{
		NewRecord: func() *Post { return &Post{} },
		GetID: func(p *Post) uuid.UUID {
			if p == nil {
				return uuid.Nil
			}
			return p.ID
		},
		SetID: func(p *Post, id uuid.UUID) {
			if p != nil {
				p.ID = id
			}
		},
	})

	return &posts{
		Repository: repo,
		db:         db,
	}
}

func (p *posts) Create(ctx context.Context, record *Post, criteria ...repository.InsertCriteria) (*Post, error) {
	return p.CreateTx(ctx, p.db, record, criteria...)
}

func (p *posts) CreateTx(ctx context.Context, tx bun.IDB, record *Post, criteria ...repository.InsertCriteria) (*Post, error) {
	preparePostDefaults(record)
	return p.Repository.CreateTx(ctx, tx, record, criteria...)
}

func (p *posts) GetPostByID(ctx context.Context, id uuid.UUID) (*Post, error) {
	return p.GetPostByIDTx(ctx, p.db, id)
}

func (p *posts) GetPostByIDTx(ctx context.Context, tx bun.IDB, id uuid.UUID) (*Post, error) {
	record := &Post{}
	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, ErrPostNotFound.WithMetadata(map[string]any{
				"post_id": id.String(),
			})
		}
		return nil, err
	}

	return record, nil
}

func (p *posts) ListFeed(ctx context.Context) ([]*Post, error) {
	return p.ListFeedTx(ctx, p.db)
}

func (p *posts) ListFeedTx(ctx context.Context, tx bun.IDB) ([]*Post, error) {
	return p.scanFeed(ctx, tx, nil)
}

func (p *posts) ListByAuthorHandle(ctx context.Context, handle string) ([]*Post, error) {
	return p.ListByAuthorHandleTx(ctx, p.db, handle)
}

func (p *posts) ListByAuthorHandleTx(ctx context.Context, tx bun.IDB, handle string) ([]*Post, error) {
	return p.scanFeed(ctx, tx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Join(`JOIN "accounts" AS "acc" ON "acc"."id" = "pst"."account_id"`).
			Where(`"acc"."handle" = ?`, handle)
	})
}

func (p *posts) scanFeed(ctx context.Context, tx bun.IDB, apply func(*bun.SelectQuery) *bun.SelectQuery) ([]*Post, error) {
	records := []*Post{}

	q := tx.NewSelect().
		Model(&records).
		Relation("Author").
		Relation("Replies", func(rq *bun.SelectQuery) *bun.SelectQuery {
			return rq.OrderExpr(`"created_at" ASC, rowid ASC`)
		})

	if apply != nil {
		q = apply(q)
	}

	// rowid breaks created_at ties in insertion order; the schema is
	// sqlite-only so the expression is safe here.
	err := q.OrderExpr(`"pst"."created_at" DESC, "pst".rowid DESC`).Scan(ctx)
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (p *posts) IncrementReplyCountTx(ctx context.Context, tx bun.IDB, id uuid.UUID) error {
	res, err := tx.NewUpdate().
		Model((*Post)(nil)).
		Set(`"reply_count" = "reply_count" + 1`).
		Where("?TableAlias.id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}

	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return ErrPostNotFound.WithMetadata(map[string]any{
			"post_id": id.String(),
		})
	}

	return nil
}

func (p *posts) AdjustLikeCountTx(ctx context.Context, tx bun.IDB, id uuid.UUID, delta int) error {
	res, err := tx.NewRaw(AdjustPostLikeCountSQL, delta, id).Exec(ctx)
	if err != nil {
		return err
	}

	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return ErrPostNotFound.WithMetadata(map[string]any{
			"post_id": id.String(),
		})
	}

	return nil
}
