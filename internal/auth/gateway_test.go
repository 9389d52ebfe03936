package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/stretchr/testify/suite"
	"golang.org/x/oauth2"

	"weatherdash/internal/auth"
)

type GatewayTestSuite struct {
	suite.Suite
	oauthServer *httptest.Server
	app         *fiber.App
	gateway     *auth.Gateway
	users       *auth.UserDirectory
}

func (s *GatewayTestSuite) SetupTest() {
	s.oauthServer = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/token":
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]interface{}{
				"access_token": "test-access-token",
				"token_type":   "bearer",
			})
		case "/userinfo":
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]interface{}{
				"id":    42,
				"login": "octocat",
				"email": "octo@example.com",
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	provider := auth.Provider{
		Name: "github",
		Config: &oauth2.Config{
			ClientID:     "test-client-id",
			ClientSecret: "test-client-secret",
			RedirectURL:  "http://localhost/auth/github/callback",
			Scopes:       []string{"read:user"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  s.oauthServer.URL + "/authorize",
				TokenURL: s.oauthServer.URL + "/token",
			},
		},
		UserInfoURL: s.oauthServer.URL + "/userinfo",
	}

	s.users = auth.NewUserDirectory(100)
	s.gateway = auth.NewGateway(session.New(), s.users, []auth.Provider{provider})

	s.app = fiber.New()
	s.gateway.Register(s.app)
	s.app.Get("/protected", s.gateway.RequireAuth, func(c *fiber.Ctx) error {
		user, _ := auth.CurrentUser(c)
		return c.JSON(fiber.Map{"name": user.Name})
	})
}

func (s *GatewayTestSuite) TearDownTest() {
	s.oauthServer.Close()
}

func (s *GatewayTestSuite) sessionCookie(resp *http.Response) *http.Cookie {
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "session_id" {
			return cookie
		}
	}
	return nil
}

func (s *GatewayTestSuite) TestRequireAuthRejectsAPIRequests() {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(fiber.HeaderAccept, "application/json")

	resp, err := s.app.Test(req, -1)
	s.Require().NoError(err)

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *GatewayTestSuite) TestRequireAuthRedirectsBrowsers() {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(fiber.HeaderAccept, "text/html,application/xhtml+xml")

	resp, err := s.app.Test(req, -1)
	s.Require().NoError(err)

	s.Equal(http.StatusSeeOther, resp.StatusCode)
	s.Equal("/login", resp.Header.Get(fiber.HeaderLocation))
}

func (s *GatewayTestSuite) TestLoginRedirectsToProviderWithState() {
	req := httptest.NewRequest(http.MethodGet, "/auth/github", nil)

	resp, err := s.app.Test(req, -1)
	s.Require().NoError(err)

	s.Equal(http.StatusTemporaryRedirect, resp.StatusCode)

	location, err := url.Parse(resp.Header.Get(fiber.HeaderLocation))
	s.Require().NoError(err)
	s.Contains(location.String(), s.oauthServer.URL+"/authorize")
	s.NotEmpty(location.Query().Get("state"))
	s.Equal("test-client-id", location.Query().Get("client_id"))

	s.Require().NotNil(s.sessionCookie(resp), "login must establish a session for the state nonce")
}

func (s *GatewayTestSuite) TestLoginUnknownProvider() {
	req := httptest.NewRequest(http.MethodGet, "/auth/gitlab", nil)

	resp, err := s.app.Test(req, -1)
	s.Require().NoError(err)

	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *GatewayTestSuite) TestCallbackEstablishesSession() {
	// Step 1: login to obtain the session cookie and the state nonce.
	loginReq := httptest.NewRequest(http.MethodGet, "/auth/github", nil)
	loginResp, err := s.app.Test(loginReq, -1)
	s.Require().NoError(err)

	cookie := s.sessionCookie(loginResp)
	s.Require().NotNil(cookie)

	location, err := url.Parse(loginResp.Header.Get(fiber.HeaderLocation))
	s.Require().NoError(err)
	state := location.Query().Get("state")
	s.Require().NotEmpty(state)

	// Step 2: the provider redirects back with code and state.
	callbackReq := httptest.NewRequest(http.MethodGet, "/auth/github/callback?code=test-code&state="+state, nil)
	callbackReq.AddCookie(cookie)

	callbackResp, err := s.app.Test(callbackReq, -1)
	s.Require().NoError(err)

	s.Equal(http.StatusTemporaryRedirect, callbackResp.StatusCode)
	s.Equal("/", callbackResp.Header.Get(fiber.HeaderLocation))

	user, ok := s.users.Get("github:42")
	s.Require().True(ok, "callback must upsert the resolved profile")
	s.Equal("octocat", user.Name)
	s.Equal("octo@example.com", user.Email)

	// Step 3: the session now passes the guard.
	protectedReq := httptest.NewRequest(http.MethodGet, "/protected", nil)
	protectedReq.AddCookie(cookie)

	protectedResp, err := s.app.Test(protectedReq, -1)
	s.Require().NoError(err)
	s.Equal(http.StatusOK, protectedResp.StatusCode)
}

func (s *GatewayTestSuite) TestCallbackRejectsStateMismatch() {
	loginReq := httptest.NewRequest(http.MethodGet, "/auth/github", nil)
	loginResp, err := s.app.Test(loginReq, -1)
	s.Require().NoError(err)

	cookie := s.sessionCookie(loginResp)
	s.Require().NotNil(cookie)

	callbackReq := httptest.NewRequest(http.MethodGet, "/auth/github/callback?code=test-code&state=forged", nil)
	callbackReq.AddCookie(cookie)

	callbackResp, err := s.app.Test(callbackReq, -1)
	s.Require().NoError(err)

	s.Equal(http.StatusBadRequest, callbackResp.StatusCode)
	s.Equal(0, s.users.Len())
}

func (s *GatewayTestSuite) TestLogoutDestroysSession() {
	// establish an authenticated session first
	loginReq := httptest.NewRequest(http.MethodGet, "/auth/github", nil)
	loginResp, err := s.app.Test(loginReq, -1)
	s.Require().NoError(err)

	cookie := s.sessionCookie(loginResp)
	location, _ := url.Parse(loginResp.Header.Get(fiber.HeaderLocation))

	callbackReq := httptest.NewRequest(http.MethodGet, "/auth/github/callback?code=test-code&state="+location.Query().Get("state"), nil)
	callbackReq.AddCookie(cookie)
	_, err = s.app.Test(callbackReq, -1)
	s.Require().NoError(err)

	logoutReq := httptest.NewRequest(http.MethodPost, "/logout", nil)
	logoutReq.AddCookie(cookie)

	logoutResp, err := s.app.Test(logoutReq, -1)
	s.Require().NoError(err)
	s.Equal(http.StatusSeeOther, logoutResp.StatusCode)

	protectedReq := httptest.NewRequest(http.MethodGet, "/protected", nil)
	protectedReq.AddCookie(cookie)

	protectedResp, err := s.app.Test(protectedReq, -1)
	s.Require().NoError(err)
	s.Equal(http.StatusUnauthorized, protectedResp.StatusCode)
}

func TestGatewaySuite(t *testing.T) {
	suite.Run(t, new(GatewayTestSuite))
}
