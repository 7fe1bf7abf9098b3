package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"purposefood/internal/domain"
)

func TestAvailabilityCheckSingleProduct(t *testing.T) {
	app, _, _ := newTestApp(t)

	// seeded: cake-chocolate has 4 on hand
	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/availability?productId=cake-chocolate&qty=2", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var sum domain.OrderAvailabilitySummary
	if err := json.NewDecoder(resp.Body).Decode(&sum); err != nil {
		t.Fatal(err)
	}
	if !sum.CanProceed {
		t.Fatalf("expected can_proceed, got %+v", sum)
	}
	if len(sum.Availability) != 1 || sum.Availability[0].DeliveryType != domain.DeliveryImmediate {
		t.Fatalf("expected immediate line, got %+v", sum.Availability)
	}
	if sum.DeliveryEstimate != "30-60 minutes" {
		t.Fatalf("bad estimate: %s", sum.DeliveryEstimate)
	}
}

func TestAvailabilityCheckRejectsBadProductID(t *testing.T) {
	app, _, _ := newTestApp(t)

	for _, q := range []string{
		"/api/v1/availability",
		"/api/v1/availability?productId=bad%20id",
		"/api/v1/availability?productId=a%3Bb",
	} {
		resp, err := app.Test(httptest.NewRequest("GET", q, nil))
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", q, resp.StatusCode)
		}
	}
}

func TestAvailabilityCheckOrder(t *testing.T) {
	app, _, _ := newTestApp(t)

	// snack-box-20 is seeded empty with 4h prep
	body := `{"items":[{"product_id":"cake-chocolate","quantity":2},{"product_id":"snack-box-20","quantity":1}]}`
	req := httptest.NewRequest("POST", "/api/v1/availability", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var sum domain.OrderAvailabilitySummary
	if err := json.NewDecoder(resp.Body).Decode(&sum); err != nil {
		t.Fatal(err)
	}
	if !sum.CanProceed || !sum.HasOutOfStock {
		t.Fatalf("unexpected summary: %+v", sum)
	}
	if sum.DeliveryEstimate != "4-6 hours" {
		t.Fatalf("bad estimate: %s", sum.DeliveryEstimate)
	}
}

func TestAvailabilityCheckOrderRejectsBadBody(t *testing.T) {
	app, _, _ := newTestApp(t)

	cases := []string{
		`{not json`,
		`{"items":[{"product_id":"","quantity":1}]}`,
		`{"items":[{"product_id":"cake-chocolate","quantity":0}]}`,
	}
	for _, body := range cases {
		req := httptest.NewRequest("POST", "/api/v1/availability", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", body, resp.StatusCode)
		}
	}
}
