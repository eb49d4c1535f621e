package feed

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

// Session holds the attributes of an authenticated viewer session.
type Session interface {
	GetAccountID() string
	GetAccountUUID() (uuid.UUID, error)
	GetHandle() string
	GetIssuer() string
	GetIssuedAt() *time.Time
}

// TokenService mints and validates viewer session tokens.
type TokenService interface {
	Generate(account *Account) (string, error)
	Validate(token string) (*SessionClaims, error)
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] FEED "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] FEED "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] FEED "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
