package feed

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// RepositoryManager exposes all repositories
type RepositoryManager interface {
	repository.Validator
	repository.TransactionManager
	Accounts() Accounts
	Posts() Posts
	Replies() Replies
	Likes() Likes
}

type Replies interface {
	repository.Repository[*Reply]

	CreateTx(ctx context.Context, tx bun.IDB, record *Reply, criteria ...repository.InsertCriteria) (*Reply, error)
}

type replies struct {
	repository.Repository[*Reply]
	db *bun.DB
}

func NewRepliesRepository(db *bun.DB) Replies {
	handlers := repository.ModelHandlers[*Reply]{
		NewRecord: func() *Reply {
			return &Reply{}
		},
		GetID: func(record *Reply) uuid.UUID {
			if record == nil {
				return uuid.Nil
			}
			return record.ID
		},
		SetID: func(record *Reply, id uuid.UUID) {
			record.ID = id
		},
	}
	return &replies{
		Repository: repository.NewRepository(db, handlers),
		db:         db,
	}
}

func (r *replies) CreateTx(ctx context.Context, tx bun.IDB, record *Reply, criteria ...repository.InsertCriteria) (*Reply, error) {
	prepareReplyDefaults(record)
	return r.Repository.CreateTx(ctx, tx, record, criteria...)
}

type mngr struct {
	db       *bun.DB
	accounts Accounts
	posts    Posts
	replies  Replies
	likes    Likes
}

func NewRepositoryManager(db *bun.DB) RepositoryManager {
	return &mngr{
		db:       db,
		accounts: NewAccountsRepository(db),
		posts:    NewPostsRepository(db),
		replies:  NewRepliesRepository(db),
		likes:    NewLikesRepository(db),
	}
}

func (m mngr) Validate() error {
	if m.accounts == nil {
		return errors.New("repository accounts should be initialized")
	}

	if m.posts == nil {
		return errors.New("repository posts should be initialized")
	}

	if m.replies == nil {
		return errors.New("repository replies should be initialized")
	}

	if m.likes == nil {
		return errors.New("repository likes should be initialized")
	}

	return nil
}

func (m mngr) MustValidate() {
	if err := m.Validate(); err != nil {
		log.Panic(err)
	}
}

func (m mngr) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return m.db.RunInTx(ctx, opts, f)
	}
}

func (m mngr) Accounts() Accounts {
	return m.accounts
}

func (m mngr) Posts() Posts {
	return m.posts
}

func (m mngr) Replies() Replies {
	return m.replies
}

func (m mngr) Likes() Likes {
	return m.likes
}
