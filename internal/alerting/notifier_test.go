package alerting

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

func testNotification(method Method) Notification {
	return Notification{
		ProductID:   "u91",
		ProductName: "Unleaded 91",
		StoreName:   "7-Eleven QV Melbourne",
		Price:       decimal.NewFromFloat(1.80),
		Threshold:   decimal.NewFromFloat(1.85),
		Method:      method,
		OccurredAt:  time.Now(),
	}
}

func TestWebhookNotifierSuccess(t *testing.T) {
	received := make(map[string]string)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST, got %s", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	notifier := NewWebhookNotifier(map[Method]string{MethodEmail: srv.URL}, time.Second, zerolog.Nop())

	if err := notifier.Notify(context.Background(), testNotification(MethodEmail)); err != nil {
		t.Fatalf("Notify should succeed: %v", err)
	}

	if received["product_id"] != "u91" {
		t.Fatalf("payload missing product id: %#v", received)
	}
	if received["price"] != "1.800" {
		t.Fatalf("payload price incorrect: %#v", received)
	}
	if received["message"] == "" {
		t.Fatal("payload message must not be empty")
	}
}

func TestWebhookNotifierGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	notifier := NewWebhookNotifier(map[Method]string{MethodSMS: srv.URL}, time.Second, zerolog.Nop())

	if err := notifier.Notify(context.Background(), testNotification(MethodSMS)); err == nil {
		t.Fatal("non-2xx gateway response must error")
	}
}

func TestWebhookNotifierUnconfiguredMethod(t *testing.T) {
	notifier := NewWebhookNotifier(map[Method]string{MethodEmail: "http://localhost"}, time.Second, zerolog.Nop())

	if err := notifier.Notify(context.Background(), testNotification(MethodSMS)); err == nil {
		t.Fatal("missing gateway for method must error")
	}
}
