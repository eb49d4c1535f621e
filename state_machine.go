package feed

import (
	goerrors "github.com/goliatone/go-errors"
)

const textCodeInvalidViewTransition = "INVALID_VIEW_TRANSITION"

// ErrInvalidViewTransition is returned when a requested view change is not in
// the transition table.
var ErrInvalidViewTransition = goerrors.New("invalid view transition", goerrors.CategoryValidation).
	WithTextCode(textCodeInvalidViewTransition).
	WithCode(goerrors.CodeBadRequest)

// ViewState is one of the tagged auth flow variants.
type ViewState string

const (
	ViewLanding       ViewState = "landing"
	ViewLogin         ViewState = "login"
	ViewSignup        ViewState = "signup"
	ViewOTP           ViewState = "otp"
	ViewAuthenticated ViewState = "authenticated"
)

// ViewEvent drives the auth flow machine.
type ViewEvent string

const (
	EventShowLogin    ViewEvent = "show_login"
	EventShowSignup   ViewEvent = "show_signup"
	EventLoginOK      ViewEvent = "login_ok"
	EventLoginFailed  ViewEvent = "login_failed"
	EventSignupOK     ViewEvent = "signup_ok"
	EventSignupFailed ViewEvent = "signup_failed"
	EventOTPVerified  ViewEvent = "otp_verified"
	EventBack         ViewEvent = "back"
	EventLogout       ViewEvent = "logout"
)

// ViewStateMachine centralizes the auth flow's view selection as an explicit
// transition table instead of branching inside rendering code.
type ViewStateMachine struct {
	state       ViewState
	transitions map[ViewState]map[ViewEvent]ViewState
	logger      Logger
}

// ViewMachineOption customizes machine construction.
type ViewMachineOption func(*ViewStateMachine)

// WithInitialView starts the machine somewhere other than the landing view.
func WithInitialView(state ViewState) ViewMachineOption {
	return func(sm *ViewStateMachine) {
		if state != "" {
			sm.state = state
		}
	}
}

// WithViewMachineLogger overrides the logger.
func WithViewMachineLogger(logger Logger) ViewMachineOption {
	return func(sm *ViewStateMachine) {
		if logger != nil {
			sm.logger = logger
		}
	}
}

// NewViewStateMachine returns the default auth flow machine.
func NewViewStateMachine(opts ...ViewMachineOption) *ViewStateMachine {
	sm := &ViewStateMachine{
		state:  ViewLanding,
		logger: defLogger{},
		transitions: map[ViewState]map[ViewEvent]ViewState{
			ViewLanding: {
				EventShowLogin:  ViewLogin,
				EventShowSignup: ViewSignup,
			},
			ViewLogin: {
				EventLoginOK:     ViewAuthenticated,
				EventLoginFailed: ViewLogin,
				EventShowSignup:  ViewSignup,
				EventBack:        ViewLanding,
			},
			ViewSignup: {
				EventSignupOK:     ViewOTP,
				EventSignupFailed: ViewSignup,
				EventShowLogin:    ViewLogin,
				EventBack:         ViewLanding,
			},
			ViewOTP: {
				EventOTPVerified: ViewAuthenticated,
				EventBack:        ViewSignup,
			},
			ViewAuthenticated: {
				EventLogout: ViewLanding,
			},
		},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(sm)
		}
	}

	return sm
}

// Current returns the active view.
func (sm *ViewStateMachine) Current() ViewState {
	return sm.state
}

// Can reports whether the event is valid in the current view.
func (sm *ViewStateMachine) Can(event ViewEvent) bool {
	_, ok := sm.transitions[sm.state][event]
	return ok
}

// Fire applies an event, returning the new view. Invalid events leave the
// machine untouched and return ErrInvalidViewTransition.
func (sm *ViewStateMachine) Fire(event ViewEvent) (ViewState, error) {
	next, ok := sm.transitions[sm.state][event]
	if !ok {
		return sm.state, ErrInvalidViewTransition.WithMetadata(map[string]any{
			"from":  sm.state,
			"event": event,
		})
	}

	sm.logger.Debug("view transition %s --%s--> %s", sm.state, event, next)
	sm.state = next
	return sm.state, nil
}

// Reset returns the machine to the landing view.
func (sm *ViewStateMachine) Reset() {
	sm.state = ViewLanding
}
