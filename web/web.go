// Package web serves the embedded dashboard assets. All rendering happens
// client-side in dashboard.js against the JSON API.
package web

import (
	"embed"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
)

//go:embed static
var assets embed.FS

// Register mounts the dashboard page (behind the auth guard), the login page
// and the static assets.
func Register(app *fiber.App, guard fiber.Handler) {
	app.Use("/static", filesystem.New(filesystem.Config{
		Root:       http.FS(assets),
		PathPrefix: "static",
	}))

	app.Get("/login", servePage("static/login.html"))
	app.Get("/", guard, servePage("static/index.html"))
}

func servePage(path string) fiber.Handler {
	page, err := assets.ReadFile(path)
	if err != nil {
		panic("embedded page missing: " + path)
	}
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.Send(page)
	}
}
