package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// SubscriptionInterval is a recurring delivery frequency. The zero value means a one-time purchase.
type SubscriptionInterval string

const (
	IntervalNone     SubscriptionInterval = ""
	IntervalWeekly   SubscriptionInterval = "weekly"
	IntervalBiweekly SubscriptionInterval = "biweekly"
	IntervalMonthly  SubscriptionInterval = "monthly"
)

var hundred = decimal.NewFromInt(100)

// ParseInterval accepts the wire names plus "none" and "one-time" for a one-time purchase.
func ParseInterval(value string) (SubscriptionInterval, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "none", "null", "one-time":
		return IntervalNone, nil
	case string(IntervalWeekly):
		return IntervalWeekly, nil
	case string(IntervalBiweekly):
		return IntervalBiweekly, nil
	case string(IntervalMonthly):
		return IntervalMonthly, nil
	default:
		return IntervalNone, fmt.Errorf("unknown subscription interval %q", value)
	}
}

// IsSubscription reports whether the interval carries a recurring delivery.
func (i SubscriptionInterval) IsSubscription() bool {
	return i != IntervalNone
}

// Valid reports whether i is none or a known interval.
func (i SubscriptionInterval) Valid() bool {
	switch i {
	case IntervalNone, IntervalWeekly, IntervalBiweekly, IntervalMonthly:
		return true
	default:
		return false
	}
}

// DiscountPercent is the tiered subscription discount: 20 weekly, 15 biweekly, 10 monthly.
func (i SubscriptionInterval) DiscountPercent() int64 {
	switch i {
	case IntervalWeekly:
		return 20
	case IntervalBiweekly:
		return 15
	case IntervalMonthly:
		return 10
	default:
		return 0
	}
}

// Discount returns amount × DiscountPercent / 100 without rounding.
func (i SubscriptionInterval) Discount(amount decimal.Decimal) decimal.Decimal {
	pct := i.DiscountPercent()
	if pct == 0 {
		return decimal.Zero
	}
	return amount.Mul(decimal.NewFromInt(pct)).Div(hundred)
}

// Apply returns amount with the interval discount taken off.
func (i SubscriptionInterval) Apply(amount decimal.Decimal) decimal.Decimal {
	return amount.Sub(i.Discount(amount))
}

func (i SubscriptionInterval) String() string {
	if i == IntervalNone {
		return "none"
	}
	return string(i)
}

// MarshalJSON encodes a one-time purchase as null.
func (i SubscriptionInterval) MarshalJSON() ([]byte, error) {
	if i == IntervalNone {
		return []byte("null"), nil
	}
	return json.Marshal(string(i))
}

// UnmarshalJSON accepts null, an empty string, or a known interval name.
func (i *SubscriptionInterval) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*i = IntervalNone
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode subscription interval: %w", err)
	}
	if raw == "" {
		*i = IntervalNone
		return nil
	}
	parsed := SubscriptionInterval(raw)
	if !parsed.Valid() {
		return fmt.Errorf("unknown subscription interval %q", raw)
	}
	*i = parsed
	return nil
}

// SubscriptionPlan describes one recurring delivery option shown to shoppers.
type SubscriptionPlan struct {
	ID          string               `json:"id" yaml:"id"`
	Name        string               `json:"name" yaml:"name"`
	Interval    SubscriptionInterval `json:"interval" yaml:"interval"`
	Discount    int64                `json:"discount" yaml:"discount"`
	Description string               `json:"description" yaml:"description"`
}

// Price is the product's unit price under this plan.
func (p SubscriptionPlan) Price(product Product) decimal.Decimal {
	discount := product.Price.Mul(decimal.NewFromInt(p.Discount)).Div(hundred)
	return product.Price.Sub(discount)
}
