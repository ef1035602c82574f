package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ShippingMethod is the delivery speed chosen on the shipping step.
type ShippingMethod string

const (
	ShippingStandard ShippingMethod = "standard"
	ShippingExpress  ShippingMethod = "express"
)

// DefaultFreeShippingThreshold is the subtotal at which shipping becomes free.
var DefaultFreeShippingThreshold = decimal.NewFromInt(50)

// ShippingOption describes a method as offered to shoppers.
type ShippingOption struct {
	Method  ShippingMethod  `json:"method"`
	Name    string          `json:"name"`
	Rate    decimal.Decimal `json:"rate"`
	MinDays int             `json:"minBusinessDays"`
	MaxDays int             `json:"maxBusinessDays"`
}

var shippingOptions = []ShippingOption{
	{Method: ShippingStandard, Name: "Standard Shipping", Rate: decimal.RequireFromString("5.99"), MinDays: 5, MaxDays: 8},
	{Method: ShippingExpress, Name: "Express Shipping", Rate: decimal.RequireFromString("12.99"), MinDays: 2, MaxDays: 3},
}

// ParseShippingMethod accepts a known method. Empty means standard.
func ParseShippingMethod(value string) (ShippingMethod, error) {
	if value == "" {
		return ShippingStandard, nil
	}
	for _, option := range shippingOptions {
		if string(option.Method) == value {
			return option.Method, nil
		}
	}
	return "", fmt.Errorf("unknown shipping method %q", value)
}

// ShippingPolicy prices delivery from the cart subtotal.
type ShippingPolicy struct {
	FreeShippingThreshold decimal.Decimal
}

// NewShippingPolicy uses the default threshold when threshold is not positive.
func NewShippingPolicy(threshold decimal.Decimal) ShippingPolicy {
	if !threshold.IsPositive() {
		threshold = DefaultFreeShippingThreshold
	}
	return ShippingPolicy{FreeShippingThreshold: threshold}
}

// FreeShipping reports whether subtotal reaches the threshold. The subtotal is undiscounted.
func (p ShippingPolicy) FreeShipping(subtotal decimal.Decimal) bool {
	return subtotal.GreaterThanOrEqual(p.FreeShippingThreshold)
}

// Cost is zero under free shipping and the method's flat rate otherwise.
func (p ShippingPolicy) Cost(method ShippingMethod, subtotal decimal.Decimal) decimal.Decimal {
	if p.FreeShipping(subtotal) {
		return decimal.Zero
	}
	return Option(method).Rate
}

// Options lists the available methods, standard first.
func (p ShippingPolicy) Options() []ShippingOption {
	out := make([]ShippingOption, len(shippingOptions))
	copy(out, shippingOptions)
	return out
}

// Option returns the option for method, falling back to standard.
func Option(method ShippingMethod) ShippingOption {
	for _, option := range shippingOptions {
		if option.Method == method {
			return option
		}
	}
	return shippingOptions[0]
}
