package auth

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

const (
	sessionUserKey  = "user_key"
	sessionOAuthKey = "oauth_state"
)

// Provider bundles an OAuth2 authorization-code config with the endpoint
// that resolves the token into a profile.
type Provider struct {
	Name        string
	Config      *oauth2.Config
	UserInfoURL string
}

// Gateway owns the OAuth2 login flows and the session guard in front of the
// weather API. The handshake itself is delegated to x/oauth2.
type Gateway struct {
	providers map[string]Provider
	store     *session.Store
	users     *UserDirectory
	client    *http.Client
}

func NewGateway(store *session.Store, users *UserDirectory, provs []Provider) *Gateway {
	byName := make(map[string]Provider, len(provs))
	for _, p := range provs {
		byName[p.Name] = p
	}
	return &Gateway{
		providers: byName,
		store:     store,
		users:     users,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Register mounts the login, callback and logout routes.
func (g *Gateway) Register(app *fiber.App) {
	app.Get("/auth/:provider", g.Login)
	app.Get("/auth/:provider/callback", g.Callback)
	app.Post("/logout", g.Logout)
}

// Login redirects the browser to the provider's consent page with a random
// state nonce bound to the session.
func (g *Gateway) Login(c *fiber.Ctx) error {
	provider, ok := g.providers[c.Params("provider")]
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "unknown auth provider")
	}

	state, err := randomState()
	if err != nil {
		return err
	}

	sess, err := g.store.Get(c)
	if err != nil {
		return err
	}
	sess.Set(sessionOAuthKey, state)
	if err := sess.Save(); err != nil {
		return err
	}

	return c.Redirect(provider.Config.AuthCodeURL(state), fiber.StatusTemporaryRedirect)
}

// Callback validates the state nonce, exchanges the code, resolves the
// profile and marks the session authenticated.
func (g *Gateway) Callback(c *fiber.Ctx) error {
	provider, ok := g.providers[c.Params("provider")]
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "unknown auth provider")
	}

	sess, err := g.store.Get(c)
	if err != nil {
		return err
	}

	expectedState, _ := sess.Get(sessionOAuthKey).(string)
	if expectedState == "" || c.Query("state") != expectedState {
		return fiber.NewError(fiber.StatusBadRequest, "oauth state mismatch")
	}

	code := c.Query("code")
	if code == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing authorization code")
	}

	ctx := c.UserContext()
	token, err := provider.Config.Exchange(ctx, code)
	if err != nil {
		log.Error().Err(err).Str("provider", provider.Name).Msg("code exchange failed")
		return fiber.NewError(fiber.StatusBadGateway, "authorization code exchange failed")
	}

	user, err := g.fetchProfile(c, provider, token)
	if err != nil {
		log.Error().Err(err).Str("provider", provider.Name).Msg("profile fetch failed")
		return fiber.NewError(fiber.StatusBadGateway, "failed to resolve user profile")
	}

	g.users.Put(user)

	sess.Delete(sessionOAuthKey)
	sess.Set(sessionUserKey, user.Key)
	if err := sess.Save(); err != nil {
		return err
	}

	return c.Redirect("/", fiber.StatusTemporaryRedirect)
}

func (g *Gateway) Logout(c *fiber.Ctx) error {
	sess, err := g.store.Get(c)
	if err != nil {
		return err
	}
	if err := sess.Destroy(); err != nil {
		return err
	}
	return c.Redirect("/login", fiber.StatusSeeOther)
}

// RequireAuth is the guard in front of the weather routes. Browser requests
// bounce to the login page, API requests get a 401 envelope.
func (g *Gateway) RequireAuth(c *fiber.Ctx) error {
	sess, err := g.store.Get(c)
	if err != nil {
		return err
	}

	key, _ := sess.Get(sessionUserKey).(string)
	if key != "" {
		if user, ok := g.users.Get(key); ok {
			c.Locals("user", user)
			return c.Next()
		}
	}

	if strings.Contains(c.Get(fiber.HeaderAccept), "text/html") {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}
	return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
}

// CurrentUser returns the identity resolved by RequireAuth for this request.
func CurrentUser(c *fiber.Ctx) (User, bool) {
	user, ok := c.Locals("user").(User)
	return user, ok
}

func (g *Gateway) fetchProfile(c *fiber.Ctx, provider Provider, token *oauth2.Token) (User, error) {
	client := provider.Config.Client(c.UserContext(), token)
	client.Timeout = g.client.Timeout

	resp, err := client.Get(provider.UserInfoURL)
	if err != nil {
		return User{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return User{}, fmt.Errorf("userinfo endpoint returned status %d", resp.StatusCode)
	}

	// Google exposes sub/name, GitHub exposes id/login; decode both field
	// sets and pick whichever is populated.
	var payload struct {
		Sub   string      `json:"sub"`
		ID    json.Number `json:"id"`
		Email string      `json:"email"`
		Name  string      `json:"name"`
		Login string      `json:"login"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return User{}, fmt.Errorf("userinfo endpoint returned malformed JSON: %w", err)
	}

	subject := payload.Sub
	if subject == "" {
		subject = payload.ID.String()
	}
	if subject == "" {
		return User{}, fmt.Errorf("userinfo response carries no subject")
	}

	name := payload.Name
	if name == "" {
		name = payload.Login
	}

	return User{
		Key:      provider.Name + ":" + subject,
		Provider: provider.Name,
		Subject:  subject,
		Email:    payload.Email,
		Name:     name,
		LastSeen: time.Now().UTC(),
	}, nil
}

func randomState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
