package auth

import (
	"context"
	"errors"

	"github.com/yourname/afresh/internal"
)

var ErrInvalidToken = errors.New("invalid token")

// LocalAuthProvider accepts a single static token and maps it to one user.
// Used in development only.
type LocalAuthProvider struct {
	Token  string
	UserID string
	logger internal.Logger
}

func (a *LocalAuthProvider) ValidateTokenLocal(token string) (*internal.User, error) {
	if token != "" && token == a.Token {
		return &internal.User{ID: a.UserID, Token: a.Token, Name: "Demo User"}, nil
	}
	a.logger.Warnf("invalid token presented to local auth")
	return nil, ErrInvalidToken
}

func (a *LocalAuthProvider) ValidateTokenRemote(ctx context.Context, token string) (*internal.User, error) {
	a.logger.Warnf("ValidateTokenRemote not implemented in LocalAuthProvider")
	return nil, errors.New("not implemented in LocalAuthProvider")
}

func NewLocalAuthProvider(token, userID string, logger internal.Logger) *LocalAuthProvider {
	return &LocalAuthProvider{Token: token, UserID: userID, logger: logger}
}
