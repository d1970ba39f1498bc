package alerting

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Notification carries the context of a triggered alert to a delivery
// gateway.
type Notification struct {
	ProductID   string
	ProductName string
	StoreName   string
	Price       decimal.Decimal
	Threshold   decimal.Decimal
	Method      Method
	OccurredAt  time.Time
}

// Notifier hands a triggered alert to an external delivery channel.
type Notifier interface {
	Notify(ctx context.Context, note Notification) error
}

// WebhookNotifier posts triggered alerts as JSON to a per-method
// gateway endpoint. The gateway owns the actual email/SMS delivery;
// this process never sends either directly.
type WebhookNotifier struct {
	endpoints map[Method]string
	client    *http.Client
	logger    zerolog.Logger
}

// NewWebhookNotifier wires gateway endpoints keyed by method.
func NewWebhookNotifier(endpoints map[Method]string, timeout time.Duration, logger zerolog.Logger) *WebhookNotifier {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &WebhookNotifier{
		endpoints: endpoints,
		client:    &http.Client{Timeout: timeout},
		logger:    logger.With().Str("component", "alert_webhook").Logger(),
	}
}

// Notify posts the alert payload to the gateway configured for the
// notification's method.
func (n *WebhookNotifier) Notify(ctx context.Context, note Notification) error {
	endpoint, ok := n.endpoints[note.Method]
	if !ok || endpoint == "" {
		return fmt.Errorf("no gateway configured for method %q", note.Method)
	}

	payload := map[string]string{
		"product_id": note.ProductID,
		"product":    note.ProductName,
		"store":      note.StoreName,
		"price":      note.Price.StringFixed(3),
		"threshold":  note.Threshold.StringFixed(2),
		"method":     string(note.Method),
		"message":    renderMessage(note),
		"at":         note.OccurredAt.UTC().Format(time.RFC3339),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal alert payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(endpoint, "/"), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create alert request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send alert request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("alert gateway returned status %d", resp.StatusCode)
	}

	n.logger.Info().
		Str("product", note.ProductID).
		Str("method", string(note.Method)).
		Str("price", note.Price.StringFixed(3)).
		Msg("alert dispatched")
	return nil
}

func renderMessage(note Notification) string {
	b := strings.Builder{}
	b.WriteString("[Fuel Price Alert]\n")
	b.WriteString(fmt.Sprintf("%s at %s\n", note.ProductName, note.StoreName))
	b.WriteString(fmt.Sprintf("Price: $%s/litre (threshold $%s)\n", note.Price.StringFixed(3), note.Threshold.StringFixed(2)))
	b.WriteString(fmt.Sprintf("Date: %s\n", note.OccurredAt.UTC().Format("Jan 02, 2006")))
	return b.String()
}

var _ Notifier = (*WebhookNotifier)(nil)
