package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	html "github.com/gofiber/template/html/v2"
	"golang.org/x/crypto/bcrypt"

	"purposefood/internal/http/handlers"
	"purposefood/internal/repos"
	"purposefood/internal/services"
)

func TestSeededPasswordsAreHashed(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	var hashes []string
	if err := db.Select(&hashes, `SELECT password_hash FROM users`); err != nil {
		t.Fatalf("select hashes: %v", err)
	}
	if len(hashes) == 0 {
		t.Fatal("no users seeded")
	}
	for _, h := range hashes {
		if strings.Contains(h, "Passw0rd!") {
			t.Fatal("hash contains plaintext password")
		}
		if !strings.HasPrefix(h, "$2") {
			t.Fatalf("unexpected hash format: %s", h)
		}
		if err := bcrypt.CompareHashAndPassword([]byte(h), []byte("Passw0rd!")); err != nil {
			t.Fatalf("seed hash does not validate known password: %v", err)
		}
	}
}

func TestLoginSuccessFailAndThrottle(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	userRepo := repos.NewUserRepo(db)
	authSvc := &services.AuthService{Users: userRepo}
	authH := &handlers.AuthHandler{Auth: authSvc}
	engine := html.New("../../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Use(csrf.New(csrf.Config{KeyLookup: "form:csrf", CookieName: "csrf_", CookieSameSite: "Lax"}))

	app.Get("/login", authH.LoginForm)
	app.Post("/login", limiter.New(limiter.Config{Max: 2, Expiration: time.Minute}), authH.Login)

	respLogin, _ := app.Test(httptest.NewRequest("GET", "/login", nil))
	csrfTok := extractCookie(respLogin, "csrf_")
	if csrfTok == "" {
		t.Fatal("csrf token missing")
	}

	post := func(password string) *http.Response {
		form := strings.NewReader("csrf=" + csrfTok + "&email=owner@purposefood.test&password=" + password)
		req := httptest.NewRequest("POST", "/login", form)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.AddCookie(&http.Cookie{Name: "csrf_", Value: csrfTok})
		resp, err := app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		return resp
	}

	// wrong password -> 401
	if resp := post("WrongPass1!"); resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad creds, got %d", resp.StatusCode)
	}

	// right password -> redirect home
	if resp := post("Passw0rd!"); resp.StatusCode != http.StatusFound {
		t.Fatalf("expected redirect on success, got %d", resp.StatusCode)
	}

	// third attempt inside the window -> throttled
	if resp := post("WrongPass1!"); resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after throttle, got %d", resp.StatusCode)
	}
}
