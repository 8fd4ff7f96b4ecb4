package auth

import (
	"context"

	"github.com/yourname/afresh/internal"
)

// Provider resolves a bearer token to a user. Local validation serves
// development; remote validation asks the auth service.
type Provider interface {
	ValidateTokenLocal(token string) (*internal.User, error)
	ValidateTokenRemote(ctx context.Context, token string) (*internal.User, error)
}
