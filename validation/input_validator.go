package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/yourusername/exchange-core/models"
)

const (
	MaxPriceTicks = int64(1_000_000_000_000) // 10^10 currency units at 2dp
	MaxQuantity   = int64(1_000_000_000)

	MaxSymbolLength  = 20
	MaxOrderIDLength = 64

	SymbolPattern  = `^[A-Z0-9]+$`
	OrderIDPattern = `^[a-zA-Z0-9_-]+$`
)

var (
	symbolRegex  = regexp.MustCompile(SymbolPattern)
	orderIDRegex = regexp.MustCompile(OrderIDPattern)

	ErrMalformedRecord    = errors.New("malformed record")
	ErrInvalidPrice       = errors.New("invalid price")
	ErrPriceOutOfRange    = errors.New("price out of valid range")
	ErrInvalidQuantity    = errors.New("invalid quantity")
	ErrQuantityOutOfRange = errors.New("quantity out of valid range")
	ErrInvalidSymbol      = errors.New("invalid symbol format or length")
	ErrInvalidOrderID     = errors.New("invalid order id format or length")
	ErrInvalidSide        = errors.New("invalid order side")
	ErrDuplicateOrderID   = errors.New("duplicate order id")
)

// ValidatePrice validates a fixed-point price in ticks
func ValidatePrice(price models.Price) error {
	if price <= 0 {
		return fmt.Errorf("%w: price must be positive, got %s", ErrInvalidPrice, price)
	}
	if int64(price) > MaxPriceTicks {
		return fmt.Errorf("%w: price %s exceeds maximum", ErrPriceOutOfRange, price)
	}
	return nil
}

// ValidateQuantity validates an order quantity
func ValidateQuantity(quantity int64) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive, got %d", ErrInvalidQuantity, quantity)
	}
	if quantity > MaxQuantity {
		return fmt.Errorf("%w: quantity %d exceeds maximum %d", ErrQuantityOutOfRange, quantity, MaxQuantity)
	}
	return nil
}

// ValidateSymbol validates trading symbol format and length
func ValidateSymbol(symbol string) error {
	if symbol == "" {
		return fmt.Errorf("%w: symbol cannot be empty", ErrInvalidSymbol)
	}

	if len(symbol) > MaxSymbolLength {
		return fmt.Errorf("%w: symbol length %d exceeds maximum %d",
			ErrInvalidSymbol, len(symbol), MaxSymbolLength)
	}

	if !symbolRegex.MatchString(symbol) {
		return fmt.Errorf("%w: symbol must contain only uppercase letters and numbers",
			ErrInvalidSymbol)
	}

	return nil
}

// ValidateOrderID validates order ID format and length
func ValidateOrderID(orderID string) error {
	if orderID == "" {
		return fmt.Errorf("%w: order id cannot be empty", ErrInvalidOrderID)
	}

	if len(orderID) > MaxOrderIDLength {
		return fmt.Errorf("%w: order id length %d exceeds maximum %d",
			ErrInvalidOrderID, len(orderID), MaxOrderIDLength)
	}

	if !utf8.ValidString(orderID) {
		return fmt.Errorf("%w: order id contains invalid UTF-8", ErrInvalidOrderID)
	}

	if !orderIDRegex.MatchString(orderID) {
		return fmt.Errorf("%w: order id must contain only alphanumeric characters, underscores, and hyphens",
			ErrInvalidOrderID)
	}

	return nil
}

// ParseSide parses and validates an order side (buy/sell)
func ParseSide(side string) (models.Side, error) {
	switch models.Side(strings.ToLower(strings.TrimSpace(side))) {
	case models.SideBuy:
		return models.SideBuy, nil
	case models.SideSell:
		return models.SideSell, nil
	default:
		return "", fmt.Errorf("%w: side must be 'buy' or 'sell', got %q", ErrInvalidSide, side)
	}
}

// ParseQuantity parses and validates a positive integer quantity string
func ParseQuantity(s string) (int64, error) {
	quantity, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrInvalidQuantity, s)
	}
	if err := ValidateQuantity(quantity); err != nil {
		return 0, err
	}
	return quantity, nil
}

// ValidateOrder performs comprehensive validation on an order before it
// may enter a book. No book state is touched on failure.
func ValidateOrder(order *models.Order) error {
	if err := ValidateOrderID(order.ID); err != nil {
		return err
	}
	if err := ValidateSymbol(order.Symbol); err != nil {
		return err
	}
	if !order.Side.IsValid() {
		return fmt.Errorf("%w: got %q", ErrInvalidSide, order.Side)
	}
	if err := ValidatePrice(order.Price); err != nil {
		return err
	}
	if err := ValidateQuantity(order.Quantity); err != nil {
		return err
	}
	return nil
}

// SanitizeString removes control characters and limits length
func SanitizeString(s string, maxLen int) string {
	var result strings.Builder
	for _, r := range s {
		if r >= 32 || r == '\n' || r == '\t' {
			result.WriteRune(r)
		}
	}

	str := result.String()
	if len(str) > maxLen {
		str = str[:maxLen]
	}

	return str
}
