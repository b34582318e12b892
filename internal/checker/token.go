package checker

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2"

	"github.com/nvu/maildeck/internal/model"
)

// AuthError indicates that the token exchange or IMAP authentication was
// rejected for an account, as opposed to a transient transport failure.
type AuthError struct {
	Address string
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth error (%s): %s", e.Address, e.Message)
}

// IsAuthError reports whether err (or any error in its chain) is an AuthError.
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

// exchangeToken trades the account's refresh token for a short-lived
// access token at the configured OAuth endpoint.
func (s *Service) exchangeToken(ctx context.Context, account model.AccountRecord) (string, error) {
	conf := &oauth2.Config{
		ClientID: account.ClientID,
		Endpoint: oauth2.Endpoint{TokenURL: s.cfg.TokenURL},
		Scopes:   []string{s.cfg.Scope},
	}

	token, err := conf.TokenSource(ctx, &oauth2.Token{
		RefreshToken: account.RefreshToken,
	}).Token()
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			return "", &AuthError{
				Address: account.Address,
				Message: fmt.Sprintf("refresh token rejected: %v", retrieveErr),
			}
		}
		return "", fmt.Errorf("exchanging token for %s: %w", account.Address, err)
	}

	return token.AccessToken, nil
}
