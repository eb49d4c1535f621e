package feed

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionClaims are the JWT claims minted for an authenticated viewer.
type SessionClaims struct {
	jwt.RegisteredClaims
	AID    string `json:"aid,omitempty"`
	Handle string `json:"handle,omitempty"`
}

// AccountID returns the viewer's account id.
func (c *SessionClaims) AccountID() string {
	if c.AID != "" {
		return c.AID
	}
	return c.RegisteredClaims.Subject
}

var _ Session = &SessionObject{}

// SessionObject is the concrete Session handed to the presentation layer.
type SessionObject struct {
	AccountID string     `json:"account_id,omitempty"`
	Handle    string     `json:"handle,omitempty"`
	Issuer    string     `json:"issuer,omitempty"`
	IssuedAt  *time.Time `json:"issued_at,omitempty"`
}

func (s *SessionObject) GetAccountID() string {
	return s.AccountID
}

func (s *SessionObject) GetAccountUUID() (uuid.UUID, error) {
	return uuid.Parse(s.AccountID)
}

func (s *SessionObject) GetHandle() string {
	return s.Handle
}

func (s *SessionObject) GetIssuer() string {
	return s.Issuer
}

func (s *SessionObject) GetIssuedAt() *time.Time {
	return s.IssuedAt
}

// SessionFromToken validates a token and converts its claims into the
// Session the presentation layer threads through calls.
func SessionFromToken(ts TokenService, token string) (Session, error) {
	claims, err := ts.Validate(token)
	if err != nil {
		return nil, err
	}
	return NewSessionFromClaims(claims), nil
}

// NewSessionFromClaims converts validated claims into a Session.
func NewSessionFromClaims(claims *SessionClaims) *SessionObject {
	session := &SessionObject{
		AccountID: claims.AccountID(),
		Handle:    claims.Handle,
		Issuer:    claims.Issuer,
	}

	if claims.IssuedAt != nil {
		issuedAt := claims.IssuedAt.Time
		session.IssuedAt = &issuedAt
	}

	return session
}
