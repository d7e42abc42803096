package adapters

import (
	"context"
	"encoding/base64"
	"generate-lecture-video/application/ports/outbound"
	"generate-lecture-video/config"
	"net/http"
	"strings"
)

// Authorizer obtains a service-to-service bearer token for the account
// backend via the client-credentials grant.
type Authorizer interface {
	Authorize(ctx context.Context) (string, error)
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

type clientCredentialsAuthorizer struct {
	ContentFetcher
	logger outbound.LoggerPort
	conf   *config.AuthorizerConfig
}

func NewClientCredentialsAuthorizer(contentFetcher ContentFetcher, logger outbound.LoggerPort, conf *config.AuthorizerConfig) Authorizer {
	return &clientCredentialsAuthorizer{
		ContentFetcher: contentFetcher,
		logger:         logger,
		conf:           conf,
	}
}

func (a *clientCredentialsAuthorizer) Authorize(ctx context.Context) (string, error) {
	credentials := base64.StdEncoding.EncodeToString([]byte(a.conf.ClientID + ":" + a.conf.ClientSecret))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.conf.TokenEndpoint, strings.NewReader("grant_type=client_credentials"))
	if err != nil {
		a.logger.Error(err, "failed to create the token request")
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Basic "+credentials)

	var token tokenResponse
	if err := a.FetchJSON(req, "token endpoint", &token); err != nil {
		return "", err
	}

	return token.AccessToken, nil
}
