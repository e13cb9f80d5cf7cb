// Package domain holds the canonical Listing value type and the small set
// of enums and invariants the Normalizer produces and every downstream
// component consumes. Nothing outside the Normalizer constructs a Listing
// directly.
package domain

// Intent is the nature of the interaction a listing describes.
type Intent string

const (
	IntentProduct Intent = "product"
	IntentService Intent = "service"
	IntentMutual  Intent = "mutual"
)

// Subintent is the role a listing plays within its Intent.
type Subintent string

const (
	SubintentBuy      Subintent = "buy"
	SubintentSell     Subintent = "sell"
	SubintentSeek     Subintent = "seek"
	SubintentProvide  Subintent = "provide"
	SubintentExchange Subintent = "exchange"
)

// LocationMode selects how a listing's location categorical values are
// interpreted by the matcher.
type LocationMode string

const (
	LocationNearMe     LocationMode = "near_me"
	LocationExplicit   LocationMode = "explicit"
	LocationTargetOnly LocationMode = "target_only"
	LocationRoute      LocationMode = "route"
	LocationGlobal     LocationMode = "global"
)

// validIntentPairs enumerates the exact (intent, subintent) combinations
// permitted. Inverse pairing for matching is derived by
// InverseSubintent, not duplicated.
var validIntentPairs = map[Intent]map[Subintent]bool{
	IntentProduct: {SubintentBuy: true, SubintentSell: true},
	IntentService: {SubintentSeek: true, SubintentProvide: true},
	IntentMutual:  {SubintentExchange: true},
}

// ValidIntentSubintent reports whether (intent, subintent) is one of
// the five permitted pairs.
func ValidIntentSubintent(intent Intent, sub Subintent) bool {
	subs, ok := validIntentPairs[intent]
	return ok && subs[sub]
}

// InverseSubintent returns the subintent that inversely matches sub
// within intent: buy pairs with sell, seek with provide. Mutual has no
// inverse; it is symmetric and this function is never consulted for
// IntentMutual.
func InverseSubintent(intent Intent, sub Subintent) (Subintent, bool) {
	switch intent {
	case IntentProduct:
		switch sub {
		case SubintentBuy:
			return SubintentSell, true
		case SubintentSell:
			return SubintentBuy, true
		}
	case IntentService:
		switch sub {
		case SubintentSeek:
			return SubintentProvide, true
		case SubintentProvide:
			return SubintentSeek, true
		}
	}
	return "", false
}
