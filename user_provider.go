package finpulse

import (
	"context"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// UserStore is the storage surface the provider consumes
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByUserID(ctx context.Context, id string) (*User, error)
}

// UserProvider resolves identities from the user store
type UserProvider struct {
	store  UserStore
	logger Logger
}

// NewUserProvider will create a new UserProvider
func NewUserProvider(store UserStore) *UserProvider {
	return &UserProvider{
		store:  store,
		logger: defLogger{},
	}
}

func (u *UserProvider) WithLogger(l Logger) *UserProvider {
	u.logger = l
	return u
}

// VerifyIdentity will find the user, compare the password, and return the
// identity. Unknown email, wrong password, and store failures are
// indistinguishable to the caller: all return ErrInvalidCredentials.
// Store failures fail closed, never silently authenticate.
func (u UserProvider) VerifyIdentity(ctx context.Context, identifier, password string) (Identity, error) {
	if password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := u.store.GetByEmail(ctx, identifier)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		u.logger.Error("user lookup failed during verification", "error", err)
		return nil, ErrInvalidCredentials
	}

	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		return nil, ErrInvalidCredentials
	}

	return identityFromUser(user), nil
}

// FindIdentityByIdentifier resolves a user by id or email. Unlike
// VerifyIdentity it surfaces store failures, wrapped as
// ErrStorageUnavailable, so the onboarded refresh can degrade gracefully.
func (u UserProvider) FindIdentityByIdentifier(ctx context.Context, identifier string) (Identity, error) {
	var user *User
	var err error

	if _, uuidErr := uuid.Parse(identifier); uuidErr == nil {
		user, err = u.store.GetByUserID(ctx, identifier)
	} else {
		user, err = u.store.GetByEmail(ctx, identifier)
	}

	if err != nil {
		if errors.IsNotFound(err) {
			return nil, ErrIdentityNotFound
		}
		return nil, errors.Wrap(err, ErrStorageUnavailable.Category, ErrStorageUnavailable.Message).
			WithTextCode(ErrStorageUnavailable.TextCode)
	}

	if user == nil {
		return nil, ErrIdentityNotFound
	}

	return identityFromUser(user), nil
}

type authIdentity struct {
	id        string
	name      string
	email     string
	onboarded bool
}

func (a authIdentity) ID() string      { return a.id }
func (a authIdentity) Name() string    { return a.name }
func (a authIdentity) Email() string   { return a.email }
func (a authIdentity) Onboarded() bool { return a.onboarded }

var _ Identity = authIdentity{}

func identityFromUser(user *User) authIdentity {
	return authIdentity{
		id:        user.ID.String(),
		name:      user.Name,
		email:     user.Email,
		onboarded: user.Onboarded,
	}
}
