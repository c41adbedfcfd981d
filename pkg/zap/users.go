package zap

import (
	"context"

	"github.com/usestring/zap-mcp/pkg/zapapi"
)

// Users wraps context users.
type Users struct{ base }

// User is a context user.
type User struct {
	ID        int
	ContextID int
	Name      string
	Enabled   bool
}

// List returns the users of a context, or of all contexts when contextID is
// negative.
func (u *Users) List(ctx context.Context, contextID int) ([]User, error) {
	p := zapapi.NewParams()
	if contextID >= 0 {
		p.SetInt("contextId", contextID)
	}
	return view[[]User](ctx, u.base, "usersList", p)
}

// New creates a user and returns its ID.
func (u *Users) New(ctx context.Context, contextID int, name string) (int, error) {
	return actionResult[int](ctx, u.base, "newUser", zapapi.NewParams().SetInt("contextId", contextID).Set("name", name))
}

// Remove deletes a user.
func (u *Users) Remove(ctx context.Context, contextID, userID int) error {
	return u.action(ctx, "removeUser", userParams(contextID, userID))
}

// SetEnabled enables or disables a user.
func (u *Users) SetEnabled(ctx context.Context, contextID, userID int, enabled bool) error {
	return u.action(ctx, "setUserEnabled", userParams(contextID, userID).SetBool("enabled", enabled))
}

// SetCredentials sets the authentication credentials of a user. creds is
// encoded as the nested query string the proxy expects, e.g.
// "username=alice&password=secret".
func (u *Users) SetCredentials(ctx context.Context, contextID, userID int, creds *zapapi.Params) error {
	return u.action(ctx, "setAuthenticationCredentials",
		userParams(contextID, userID).Set("authCredentialsConfigParams", creds.Encode()))
}

func userParams(contextID, userID int) *zapapi.Params {
	return zapapi.NewParams().SetInt("contextId", contextID).SetInt("userId", userID)
}
