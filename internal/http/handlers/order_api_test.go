package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"purposefood/internal/repos"
)

func placeOrder(t *testing.T, app *fiber.App, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/v1/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestOrderIntakeAndConfirmFlow(t *testing.T) {
	app, db, userRepo := newTestApp(t)
	_ = userRepo.BindSession("sid-admin", "u-owner")

	resp := placeOrder(t, app, `{
	  "customer_name": "Ana",
	  "customer_phone": "+5511999990000",
	  "delivery_address": "Rua A 1",
	  "items": [{"product_id":"cake-chocolate","quantity":6}]
	}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var created struct {
		OrderID      string `json:"order_id"`
		Availability struct {
			DeliveryEstimate string `json:"delivery_estimate"`
		} `json:"availability"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatal(err)
	}
	if created.OrderID == "" {
		t.Fatal("missing order_id")
	}
	// 6 requested, 4 on hand, 3h prep
	if created.Availability.DeliveryEstimate != "3-5 hours" {
		t.Fatalf("bad estimate: %s", created.Availability.DeliveryEstimate)
	}

	// intake must not move stock
	prodRepo := repos.NewProductRepo(db)
	p, err := prodRepo.Get("cake-chocolate")
	if err != nil {
		t.Fatal(err)
	}
	if p.StockCurrent != 4 {
		t.Fatalf("stock moved on intake: %d", p.StockCurrent)
	}

	// confirm via the management API
	req := httptest.NewRequest("POST", "/api/v1/orders/"+created.OrderID+"/status", strings.NewReader(`{"status":"confirmed"}`))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: "sid", Value: "sid-admin"})
	resp, err = app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("confirm: expected 200, got %d", resp.StatusCode)
	}

	p, err = prodRepo.Get("cake-chocolate")
	if err != nil {
		t.Fatal(err)
	}
	if p.StockCurrent != -2 {
		t.Fatalf("expected backlog of -2, got %d", p.StockCurrent)
	}

	// the oversold confirm must have raised a production alert
	reqN := httptest.NewRequest("GET", "/api/v1/notifications/unread-count", nil)
	reqN.AddCookie(&http.Cookie{Name: "sid", Value: "sid-admin"})
	respN, err := app.Test(reqN)
	if err != nil {
		t.Fatal(err)
	}
	var count struct {
		Unread int `json:"unread"`
	}
	if err := json.NewDecoder(respN.Body).Decode(&count); err != nil {
		t.Fatal(err)
	}
	if count.Unread < 1 {
		t.Fatalf("expected at least one unread notification, got %d", count.Unread)
	}
}

func TestOrderIntakeValidation(t *testing.T) {
	app, _, _ := newTestApp(t)

	cases := []string{
		// missing name
		`{"items":[{"product_id":"cake-chocolate","quantity":1}]}`,
		// name too long
		`{"customer_name":"` + strings.Repeat("x", 61) + `","items":[{"product_id":"cake-chocolate","quantity":1}]}`,
		// bad phone
		`{"customer_name":"Ana","customer_phone":"nope","items":[{"product_id":"cake-chocolate","quantity":1}]}`,
		// zero quantity
		`{"customer_name":"Ana","items":[{"product_id":"cake-chocolate","quantity":0}]}`,
		// no items
		`{"customer_name":"Ana","items":[]}`,
	}
	for _, body := range cases {
		resp := placeOrder(t, app, body)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", body, resp.StatusCode)
		}
	}
}

func TestOrderIntakeUnknownProduct(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp := placeOrder(t, app, `{"customer_name":"Ana","items":[{"product_id":"no-such-thing","quantity":1}]}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	var body struct {
		Availability struct {
			CanProceed bool `json:"can_proceed"`
		} `json:"availability"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Availability.CanProceed {
		t.Fatal("rejection must carry the availability breakdown")
	}
}
