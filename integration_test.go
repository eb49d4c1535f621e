package feed_test

import (
	"context"
	"testing"

	"github.com/goliatone/go-feed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSessionLifecycle walks a whole visitor session: seeded feed, signup,
// login, posting, replying, liking, and searching, with the view machine
// tracking the auth flow the way the presentation layer would drive it.
func TestSessionLifecycle(t *testing.T) {
	repo, _ := setupStore(t)
	ctx := context.Background()

	require.NoError(t, feed.Seed(ctx, repo))

	identity := feed.NewIdentityStore(repo).WithLogger(testLogger{t})
	graph := feed.NewSocialGraphStore(repo).WithLogger(testLogger{t})
	tracker := feed.NewEngagementTracker(repo)
	query := feed.NewFeedQueryService()
	tokens := feed.NewTokenService([]byte("integration-signing-key"), 24, "go-feed", testLogger{t})
	views := feed.NewViewStateMachine(feed.WithViewMachineLogger(testLogger{t}))

	// Signup.
	_, err := views.Fire(feed.EventShowSignup)
	require.NoError(t, err)

	account, err := identity.Register(ctx, feed.RegisterAccountMessage{
		DisplayName: "New Gopher",
		Contact:     "newgopher@example.com",
		Handle:      "newgopher",
		Secret:      "longenoughsecret",
	})
	require.NoError(t, err)

	_, err = views.Fire(feed.EventSignupOK)
	require.NoError(t, err)
	_, err = views.Fire(feed.EventOTPVerified)
	require.NoError(t, err)
	assert.Equal(t, feed.ViewAuthenticated, views.Current())

	// Session token round trip.
	token, err := tokens.Generate(account)
	require.NoError(t, err)

	session, err := feed.SessionFromToken(tokens, token)
	require.NoError(t, err)
	assert.Equal(t, "newgopher", session.GetHandle())

	viewerID, err := session.GetAccountUUID()
	require.NoError(t, err)
	assert.Equal(t, account.ID, viewerID)

	ctx = feed.WithSessionContext(feed.WithContext(ctx, account), session)

	// New post lands at the head of the feed.
	posted, err := graph.CreatePost(ctx, account, "Hello from my first session! #golang")
	require.NoError(t, err)

	posts, err := graph.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 9)
	assert.Equal(t, posted.ID, posts[0].ID)

	// Reply to a seeded post bumps its counter from the seeded baseline.
	seeded := posts[1]
	baseline := seeded.ReplyCount

	_, err = graph.AddReply(ctx, seeded.ID, account, "Great shot!")
	require.NoError(t, err)

	got, err := graph.GetPost(ctx, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, baseline+1, got.ReplyCount)

	// Like toggling moves the seeded counter relative to its baseline.
	likeBaseline := got.LikeCount

	result, err := tracker.ToggleLike(ctx, account, seeded.ID)
	require.NoError(t, err)
	assert.True(t, result.Liked)
	assert.Equal(t, likeBaseline+1, result.LikeCount)

	result, err = tracker.ToggleLike(ctx, account, seeded.ID)
	require.NoError(t, err)
	assert.False(t, result.Liked)
	assert.Equal(t, likeBaseline, result.LikeCount)

	// Search filters the loaded feed without touching the stores.
	posts, err = graph.ListPosts(ctx)
	require.NoError(t, err)

	matches := query.Search(posts, "golang")
	require.Len(t, matches, 1)
	assert.Equal(t, posted.ID, matches[0].ID)

	full, err := graph.ListPosts(ctx)
	require.NoError(t, err)
	assert.Len(t, full, 9)

	// Logout.
	_, err = views.Fire(feed.EventLogout)
	require.NoError(t, err)
	assert.Equal(t, feed.ViewLanding, views.Current())
}
