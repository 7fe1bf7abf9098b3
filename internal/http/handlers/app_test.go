package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"github.com/jmoiron/sqlx"

	"purposefood/internal/config"
	"purposefood/internal/http/handlers"
	"purposefood/internal/repos"
	"purposefood/internal/services"
)

// newTestApp wires the API surface the way main does, minus rate limits so
// tests can hammer endpoints freely.
func newTestApp(t *testing.T) (*fiber.App, *sqlx.DB, *repos.UserRepo) {
	t.Helper()
	cfg := config.Config{DBDSN: ":memory:", MediaDir: "../../../web/media"}
	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	userRepo := repos.NewUserRepo(db)
	authSvc := &services.AuthService{Users: userRepo}

	engine := html.New("../../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Use(requestid.New())

	deps := handlers.NewDeps(db, cfg, authSvc)

	app.Get("/orders", handlers.RequireUser(authSvc), deps.OrderHandler.Board)

	api := app.Group("/api/v1")
	api.Get("/availability", deps.AvailabilityHandler.Check)
	api.Post("/availability", deps.AvailabilityHandler.CheckOrder)
	api.Post("/orders", deps.OrderHandler.Place)

	admin := api.Group("", handlers.RequireAdmin(authSvc))
	admin.Get("/dashboard", deps.DashboardHandler.Overview)
	admin.Get("/products", deps.ProductHandler.List)
	admin.Patch("/products/:id", deps.ProductHandler.Update)
	admin.Get("/orders/:id", deps.OrderHandler.Get)
	admin.Post("/orders/:id/status", deps.OrderHandler.UpdateStatus)
	admin.Get("/notifications", deps.NotificationHandler.List)
	admin.Get("/notifications/unread-count", deps.NotificationHandler.UnreadCount)

	return app, db, userRepo
}

func extractCookie(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}
