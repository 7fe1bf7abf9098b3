package main

import (
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"purposefood/internal/config"
	"purposefood/internal/http/handlers"
	applog "purposefood/internal/log"
	"purposefood/internal/repos"
	"purposefood/internal/services"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	// Auth wiring
	userRepo := repos.NewUserRepo(db)
	authSvc := &services.AuthService{Users: userRepo}
	authH := &handlers.AuthHandler{Auth: authSvc}

	// Templates & app
	engine := html.New("./web/templates", ".html")
	engine.Reload(true)

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			if strings.HasPrefix(c.Path(), "/api/") {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "something went wrong"})
			}
			if rerr := c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
				"Message": "Something went wrong. Please try again.",
			}); rerr != nil {
				return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong. Please try again.")
			}
			return nil
		},
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	// Attach user to context if logged in
	app.Use(func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			if u, err := authSvc.CurrentUser(sid); err == nil && u != nil {
				c.Locals("user", u)
			}
		}
		return c.Next()
	})
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			p := string(c.Request().URI().Path())
			return strings.HasPrefix(p, "/static/") || strings.HasPrefix(p, "/media/")
		},
	}))
	// CSRF guards the HTML forms; the JSON API is session-gated instead.
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   false, // set true behind HTTPS
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/api/")
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", map[string]any{"form": c.FormValue("csrf")})
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Security check failed. Please refresh and try again."})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok := c.Locals("csrf"); tok != nil {
			c.Locals("CSRFToken", tok.(string))
		}
		return c.Next()
	})

	// ---------- Static assets ----------
	app.Static("/static", "./web/static")
	app.Static("/media", cfg.MediaDir)

	// ---------- App handlers ----------
	deps := handlers.NewDeps(db, cfg, authSvc)

	// Storefront pages
	app.Get("/", deps.StorefrontHandler.Home)
	app.Get("/search", limiter.New(limiter.Config{Max: 20, Expiration: time.Minute}), deps.StorefrontHandler.Search)
	app.Get("/category/:id", deps.StorefrontHandler.Category)
	app.Get("/product/:id", deps.StorefrontHandler.ProductDetail)
	app.Get("/order/:id", deps.OrderHandler.View)
	app.Get("/orders", handlers.RequireUser(authSvc), deps.OrderHandler.Board)

	// Public API: availability + order intake
	api := app.Group("/api/v1")
	availLimiter := limiter.New(limiter.Config{
		Max:        15,
		Expiration: 30 * time.Second,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|avail"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.availability.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	})
	api.Get("/availability", availLimiter, deps.AvailabilityHandler.Check)
	api.Post("/availability", availLimiter, deps.AvailabilityHandler.CheckOrder)
	api.Post("/orders", deps.OrderHandler.Place)

	// Auth routes (login throttled)
	app.Get("/login", authH.LoginForm)
	app.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).Render("login", fiber.Map{"Err": "Too many attempts. Please try again later."})
		},
	}), authH.Login)
	app.Post("/logout", authH.Logout)

	// Management API (admin only)
	admin := api.Group("", handlers.RequireAdmin(authSvc))
	admin.Get("/dashboard", deps.DashboardHandler.Overview)

	admin.Get("/products", deps.ProductHandler.List)
	admin.Post("/products", deps.ProductHandler.Create)
	admin.Get("/products/:id", deps.ProductHandler.Get)
	admin.Patch("/products/:id", deps.ProductHandler.Update)
	admin.Delete("/products/:id", deps.ProductHandler.Delete)

	admin.Get("/orders", deps.OrderHandler.List)
	admin.Get("/orders/:id", deps.OrderHandler.Get)
	admin.Post("/orders/:id/status", deps.OrderHandler.UpdateStatus)

	admin.Get("/customers", deps.CustomerHandler.List)
	admin.Post("/customers", deps.CustomerHandler.Create)
	admin.Get("/customers/:id", deps.CustomerHandler.Get)
	admin.Get("/customers/:id/orders", deps.CustomerHandler.OrderHistory)
	admin.Put("/customers/:id", deps.CustomerHandler.Update)
	admin.Delete("/customers/:id", deps.CustomerHandler.Delete)

	admin.Get("/finance/entries", deps.FinanceHandler.List)
	admin.Post("/finance/entries", deps.FinanceHandler.Create)
	admin.Delete("/finance/entries/:id", deps.FinanceHandler.Delete)
	admin.Get("/finance/summary", deps.FinanceHandler.Summary)

	admin.Get("/invoices", deps.InvoiceHandler.List)
	admin.Post("/invoices", deps.InvoiceHandler.Create)
	admin.Get("/invoices/:id", deps.InvoiceHandler.Get)
	admin.Post("/invoices/:id/pay", deps.InvoiceHandler.MarkPaid)
	admin.Post("/invoices/:id/void", deps.InvoiceHandler.Void)

	admin.Get("/social-posts", deps.SocialHandler.List)
	admin.Post("/social-posts", deps.SocialHandler.Create)
	admin.Put("/social-posts/:id", deps.SocialHandler.Update)
	admin.Delete("/social-posts/:id", deps.SocialHandler.Delete)

	admin.Get("/notifications", deps.NotificationHandler.List)
	admin.Get("/notifications/unread-count", deps.NotificationHandler.UnreadCount)
	admin.Post("/notifications/read-all", deps.NotificationHandler.MarkAllRead)
	admin.Post("/notifications/:id/read", deps.NotificationHandler.MarkRead)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Page not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
