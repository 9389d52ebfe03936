package auth

import (
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
	"golang.org/x/oauth2/google"

	"weatherdash/config"
)

// ProvidersFromConfig builds the OAuth2 providers that have credentials
// configured. Callback URLs follow /auth/:provider/callback.
func ProvidersFromConfig(conf *config.Config) []Provider {
	var provs []Provider

	if conf.GoogleClientID != "" && conf.GoogleClientSecret != "" {
		provs = append(provs, Provider{
			Name: "google",
			Config: &oauth2.Config{
				ClientID:     conf.GoogleClientID,
				ClientSecret: conf.GoogleClientSecret,
				RedirectURL:  conf.OAuthCallbackBaseURL + "/auth/google/callback",
				Scopes:       []string{"openid", "email", "profile"},
				Endpoint:     google.Endpoint,
			},
			UserInfoURL: "https://openidconnect.googleapis.com/v1/userinfo",
		})
	}

	if conf.GitHubClientID != "" && conf.GitHubClientSecret != "" {
		provs = append(provs, Provider{
			Name: "github",
			Config: &oauth2.Config{
				ClientID:     conf.GitHubClientID,
				ClientSecret: conf.GitHubClientSecret,
				RedirectURL:  conf.OAuthCallbackBaseURL + "/auth/github/callback",
				Scopes:       []string{"read:user", "user:email"},
				Endpoint:     github.Endpoint,
			},
			UserInfoURL: "https://api.github.com/user",
		})
	}

	return provs
}
