package feed_test

import (
	"context"
	"testing"

	"github.com/goliatone/go-feed"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

// setupStore opens a fresh named in-memory database so tests never share
// state with each other.
func setupStore(t *testing.T) (feed.RepositoryManager, *bun.DB) {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	repo, db, err := feed.NewSessionStore(context.Background(), dsn)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return repo, db
}

// newTestAccount inserts an account straight through the repository, skipping
// secret hashing. Tests that exercise credentials register the slow way.
func newTestAccount(t *testing.T, repo feed.RepositoryManager, handle string) *feed.Account {
	t.Helper()

	account, err := repo.Accounts().Register(context.Background(), &feed.Account{
		DisplayName: "Account " + handle,
		Handle:      handle,
		Contact:     handle + "@example.com",
	})
	require.NoError(t, err)
	require.NotNil(t, account)

	return account
}

type testLogger struct {
	t *testing.T
}

func (l testLogger) Debug(format string, args ...any) { l.t.Logf("DBG "+format, args...) }
func (l testLogger) Info(format string, args ...any)  { l.t.Logf("INF "+format, args...) }
func (l testLogger) Error(format string, args ...any) { l.t.Logf("ERR "+format, args...) }
