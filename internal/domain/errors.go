package domain

import (
	"errors"
	"fmt"
)

// ErrNoData matches any NoDataError via errors.Is.
var ErrNoData = errors.New("no price data")

// NoDataError means no vendor path produced a price series for the symbol.
type NoDataError struct {
	Symbol string
}

func (e *NoDataError) Error() string {
	return fmt.Sprintf("No price data found for %s. The symbol may not be supported. Try a different ticker.", e.Symbol)
}

func (e *NoDataError) Is(target error) bool {
	return target == ErrNoData
}

// ConfigError is a missing or placeholder credential for a hard dependency.
type ConfigError struct {
	Key     string
	Message string
}

func (e *ConfigError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Key + " is not configured."
}

// VendorErrorKind tags how an upstream vendor call failed.
type VendorErrorKind int

const (
	// VendorRateLimited is a rate-limit note embedded in a 200 response.
	VendorRateLimited VendorErrorKind = iota + 1
	// VendorRejected is an explicit vendor error message.
	VendorRejected
	// VendorCredential is an informational notice, usually about the API key.
	VendorCredential
	// VendorUnavailable covers transport failures, non-2xx statuses and
	// undecodable bodies.
	VendorUnavailable
)

func (k VendorErrorKind) String() string {
	switch k {
	case VendorRateLimited:
		return "rate_limited"
	case VendorRejected:
		return "rejected"
	case VendorCredential:
		return "credential"
	case VendorUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// VendorError is a failure reported by, or while talking to, an external vendor.
// Message is safe to show to end users.
type VendorError struct {
	Vendor  string
	Kind    VendorErrorKind
	Message string
	Err     error
}

func (e *VendorError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Vendor, e.Err)
	}
	return e.Vendor + " request failed"
}

func (e *VendorError) Unwrap() error {
	return e.Err
}

const genericPriceFailure = "Could not fetch price data. Please try again."

// UserMessage returns the message that should be surfaced to API callers.
// Typed failures keep their own wording; anything else gets a generic hint.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var cfgErr *ConfigError
	if errors.As(err, &cfgErr) {
		return cfgErr.Error()
	}
	var noData *NoDataError
	if errors.As(err, &noData) {
		return noData.Error()
	}
	var vendorErr *VendorError
	if errors.As(err, &vendorErr) && vendorErr.Message != "" {
		return vendorErr.Message
	}
	return genericPriceFailure
}
