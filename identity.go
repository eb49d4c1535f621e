package feed

import (
	"context"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"
)

// RegisterAccountMessage carries the registration payload.
type RegisterAccountMessage struct {
	DisplayName string `json:"display_name"`
	Contact     string `json:"contact"`
	Handle      string `json:"handle"`
	Secret      string `json:"secret"`
}

func (e RegisterAccountMessage) Type() string { return "account.register" }

// Validate will run validation rules
func (e RegisterAccountMessage) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.DisplayName, validation.Required, validation.Length(1, 200)),
		validation.Field(&e.Handle, validation.Required, validation.Length(1, 50)),
		validation.Field(&e.Contact, validation.Required, validation.By(validateContact)),
		validation.Field(&e.Secret, validation.Required, validation.Length(8, 100)),
	)
}

func validateContact(value any) error {
	s, _ := value.(string)
	if _, err := NormalizeContact(s); err != nil {
		return ErrInvalidContact
	}
	return nil
}

// IdentityStore owns the account collection: it registers new accounts and
// resolves logins. Accounts are never deleted.
type IdentityStore struct {
	repo   RepositoryManager
	logger Logger
}

func NewIdentityStore(repo RepositoryManager) *IdentityStore {
	return &IdentityStore{
		repo:   repo,
		logger: defLogger{},
	}
}

func (s *IdentityStore) WithLogger(logger Logger) *IdentityStore {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// Register creates a new account. Uniqueness is checked inside one
// transaction, handle first and then contact, so a conflicting concurrent
// insert can never slip between check and create.
func (s *IdentityStore) Register(ctx context.Context, msg RegisterAccountMessage) (*Account, error) {
	if err := msg.Validate(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid registration payload")
	}

	contact, err := NormalizeContact(msg.Contact)
	if err != nil {
		return nil, err
	}

	account := &Account{}
	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	err = s.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		taken, err := s.repo.Accounts().HandleExistsTx(ctx, tx, msg.Handle)
		if err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check handle")
		}
		if taken {
			return ErrDuplicateHandle.WithMetadata(map[string]any{
				"handle": msg.Handle,
			})
		}

		registered, err := s.repo.Accounts().ContactExistsTx(ctx, tx, contact)
		if err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check contact")
		}
		if registered {
			return ErrDuplicateContact.WithMetadata(map[string]any{
				"contact": contact,
			})
		}

		hash, err := HashSecret(msg.Secret)
		if err != nil {
			var richErr *goerrors.Error
			if goerrors.As(err, &richErr) {
				return goerrors.Wrap(richErr, goerrors.CategoryValidation, "invalid secret provided")
			}
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash secret")
		}

		account.DisplayName = msg.DisplayName
		account.Handle = msg.Handle
		account.Contact = contact
		account.SecretHash = hash

		if account, err = s.repo.Accounts().RegisterTx(ctx, tx, account); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryConflict, "could not create account")
		}

		return nil
	})

	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return nil, richErr
		}

		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "account registration transaction failed")
	}

	return account, nil
}

// Authenticate resolves identifier (handle, email, or phone) and compares the
// secret. A nil account with a nil error is the documented no-match outcome:
// invalid credentials are an expected result here, not an exception.
func (s *IdentityStore) Authenticate(ctx context.Context, identifier, secret string) (*Account, error) {
	if strings.TrimSpace(identifier) == "" || secret == "" {
		return nil, nil
	}

	account, err := s.repo.Accounts().GetByIdentifier(ctx, identifier)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, nil
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to retrieve account during verification")
	}

	if err := CompareSecretAndHash(secret, account.SecretHash); err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) && richErr.Category == goerrors.CategoryAuth {
			return nil, nil
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to compare secret")
	}

	return account, nil
}
