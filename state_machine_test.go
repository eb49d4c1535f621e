package feed_test

import (
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-feed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewStateMachineFlows(t *testing.T) {
	tests := []struct {
		name   string
		events []feed.ViewEvent
		want   feed.ViewState
	}{
		{
			name:   "login flow",
			events: []feed.ViewEvent{feed.EventShowLogin, feed.EventLoginOK},
			want:   feed.ViewAuthenticated,
		},
		{
			name:   "failed login stays on login",
			events: []feed.ViewEvent{feed.EventShowLogin, feed.EventLoginFailed},
			want:   feed.ViewLogin,
		},
		{
			name:   "signup goes through otp",
			events: []feed.ViewEvent{feed.EventShowSignup, feed.EventSignupOK, feed.EventOTPVerified},
			want:   feed.ViewAuthenticated,
		},
		{
			name:   "otp back returns to signup",
			events: []feed.ViewEvent{feed.EventShowSignup, feed.EventSignupOK, feed.EventBack},
			want:   feed.ViewSignup,
		},
		{
			name:   "switch from login to signup",
			events: []feed.ViewEvent{feed.EventShowLogin, feed.EventShowSignup},
			want:   feed.ViewSignup,
		},
		{
			name:   "logout lands on landing",
			events: []feed.ViewEvent{feed.EventShowLogin, feed.EventLoginOK, feed.EventLogout},
			want:   feed.ViewLanding,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sm := feed.NewViewStateMachine(feed.WithViewMachineLogger(testLogger{t}))

			for _, event := range tt.events {
				_, err := sm.Fire(event)
				require.NoError(t, err)
			}

			assert.Equal(t, tt.want, sm.Current())
		})
	}
}

func TestViewStateMachineInvalidTransitions(t *testing.T) {
	sm := feed.NewViewStateMachine()

	assert.False(t, sm.Can(feed.EventLogout))

	state, err := sm.Fire(feed.EventLogout)
	require.Error(t, err)
	assert.Equal(t, feed.ViewLanding, state)
	assert.Equal(t, feed.ViewLanding, sm.Current())

	var rich *goerrors.Error
	require.ErrorAs(t, err, &rich)
	assert.Equal(t, goerrors.CategoryValidation, rich.Category)

	// OTP is only reachable through signup.
	_, err = sm.Fire(feed.EventOTPVerified)
	assert.Error(t, err)
}

func TestViewStateMachineReset(t *testing.T) {
	sm := feed.NewViewStateMachine(feed.WithInitialView(feed.ViewAuthenticated))
	assert.Equal(t, feed.ViewAuthenticated, sm.Current())
	assert.True(t, sm.Can(feed.EventLogout))

	sm.Reset()
	assert.Equal(t, feed.ViewLanding, sm.Current())
}
