package alerting

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Method identifies a notification channel.
type Method string

const (
	MethodEmail Method = "email"
	MethodSMS   Method = "sms"
)

// ParseMethod validates a channel name.
func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case MethodEmail, MethodSMS:
		return Method(s), nil
	default:
		return "", fmt.Errorf("unknown alert method %q (want email or sms)", s)
	}
}

// Config is a user's alert setting. It lives for the session only;
// nothing persists it.
type Config struct {
	Enabled   bool
	Threshold decimal.Decimal
	Method    Method
}

// Status is the evaluated outcome of a config against a price. Whether
// a notification actually goes out is the dispatcher's business; this
// only says whether it should.
type Status struct {
	Active          bool
	Triggered       bool
	DescribedAction string
}

// Evaluate decides if the alert condition holds for currentPrice.
// Triggered requires the config to be enabled and the price to sit
// strictly below the threshold.
func Evaluate(cfg Config, currentPrice decimal.Decimal) Status {
	status := Status{Active: cfg.Enabled}
	if !status.Active {
		status.DescribedAction = "Configure alerts to get notified when prices drop"
		return status
	}

	status.Triggered = currentPrice.LessThan(cfg.Threshold)
	status.DescribedAction = fmt.Sprintf(
		"You'll be notified via %s when price drops below $%s/litre",
		cfg.Method, cfg.Threshold.StringFixed(2),
	)
	return status
}
