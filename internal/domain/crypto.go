package domain

import (
	"regexp"
	"strings"
)

// KnownCrypto lists symbols that are tried against the digital-currency
// endpoint before the equity endpoint.
var KnownCrypto = []string{
	"BTC", "ETH", "XRP", "DOGE", "ADA", "SOL", "AVAX", "MATIC", "LINK", "DOT",
	"UNI", "LTC", "BCH", "ATOM", "XLM", "ALGO", "VET", "FIL", "TRX", "ETC",
	"XMR", "APE", "SHIB", "NEAR", "AAVE", "GRT", "ICP", "AXS", "SAND", "MANA",
	"CRV", "MKR", "SNX", "COMP", "YFI", "BAT", "ZEC", "DASH", "EOS", "XTZ",
	"THETA", "FTM", "HBAR", "ONE", "CELO", "KAVA", "ZIL", "ENJ", "CHZ", "FLOW",
	"AR", "RUNE", "KSM",
}

var knownCryptoSet map[string]struct{}

var cryptoLikeRx = regexp.MustCompile(`^[A-Z]{3,5}$`)

func init() {
	knownCryptoSet = make(map[string]struct{}, len(KnownCrypto))
	for _, sym := range KnownCrypto {
		knownCryptoSet[sym] = struct{}{}
	}
}

// NormalizeSymbol trims and upper-cases a ticker symbol.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// IsKnownCrypto reports whether a normalised symbol is on the crypto allow-list.
func IsKnownCrypto(symbol string) bool {
	_, ok := knownCryptoSet[symbol]
	return ok
}

// LooksLikeCrypto reports whether a normalised symbol is 3-5 upper-case letters,
// the shape used for the last-resort digital-currency lookup.
func LooksLikeCrypto(symbol string) bool {
	return cryptoLikeRx.MatchString(symbol)
}
