package normalize

import (
	"testing"

	"github.com/brain2/matchcore/internal/domain"
)

func validProductRaw() RawListing {
	return RawListing{
		ID:        "l1",
		Intent:    "Product",
		Subintent: " Buy ",
		Domain:    "Electronics",
		Items: []RawItem{{
			Type:        "Smartphone",
			Categorical: map[string]interface{}{"Brand": "Apple"},
			Max:         map[string]interface{}{"price": 100000.0},
			Range:       map[string]interface{}{"storage": []interface{}{256.0, 256.0}},
		}},
		Other: RawConstraint{"min": map[string]interface{}{"rating": 4.0}},
	}
}

func TestNormalize_Valid(t *testing.T) {
	n := New()
	l, err := n.Normalize(validProductRaw())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Intent != domain.IntentProduct || l.Subintent != domain.SubintentBuy {
		t.Fatalf("got intent=%s subintent=%s", l.Intent, l.Subintent)
	}
	if _, ok := l.Domain["electronics"]; !ok {
		t.Fatalf("domain not lowercased/present: %#v", l.Domain)
	}
	if l.Items[0].Categorical["brand"] != "apple" {
		t.Fatalf("categorical not lowercased: %#v", l.Items[0].Categorical)
	}
	if l.LocationMode != domain.LocationGlobal {
		t.Fatalf("expected default location_mode global, got %s", l.LocationMode)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	n := New()
	raw := validProductRaw()
	l1, err := n.Normalize(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Re-feeding the already-canonical strings must be a no-op: every
	// string is already lower/trimmed, every set already deduplicated.
	raw2 := raw
	raw2.Intent = string(l1.Intent)
	raw2.Subintent = string(l1.Subintent)
	l2, err := n.Normalize(raw2)
	if err != nil {
		t.Fatalf("unexpected error on re-normalize: %v", err)
	}
	if l1.Intent != l2.Intent || l1.Subintent != l2.Subintent {
		t.Fatalf("normalize not idempotent: %#v vs %#v", l1, l2)
	}
}

func TestNormalize_InvalidIntentPair(t *testing.T) {
	n := New()
	raw := validProductRaw()
	raw.Subintent = "seek"
	_, err := n.Normalize(raw)
	if err == nil {
		t.Fatal("expected I-04 error for invalid (intent,subintent) pair")
	}
}

func TestNormalize_EmptyDomain(t *testing.T) {
	n := New()
	raw := validProductRaw()
	raw.Domain = nil
	_, err := n.Normalize(raw)
	if err == nil {
		t.Fatal("expected I-05 error for empty domain")
	}
}

func TestNormalize_RangeBounds(t *testing.T) {
	n := New()
	raw := validProductRaw()
	raw.Items[0].Range = map[string]interface{}{"storage": []interface{}{256.0, 128.0}}
	_, err := n.Normalize(raw)
	if err == nil {
		t.Fatal("expected I-06 error for lo > hi")
	}
}

func TestNormalize_UnrecognizedConstraintKey(t *testing.T) {
	n := New()
	raw := validProductRaw()
	raw.Other = RawConstraint{"exact": map[string]interface{}{"rating": 4.0}}
	_, err := n.Normalize(raw)
	if err == nil {
		t.Fatal("expected I-02 error for unrecognized constraint key")
	}
}

func TestNormalize_MutualUsesCategory(t *testing.T) {
	n := New()
	raw := RawListing{
		ID:        "m1",
		Intent:    "mutual",
		Subintent: "exchange",
		Category:  []interface{}{"roommate"},
		Other:     RawConstraint{"categorical": map[string]interface{}{"diet": "vegetarian"}},
		Self:      RawConstraint{"categorical": map[string]interface{}{"diet": "vegetarian"}},
	}
	l, err := n.Normalize(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(l.Domain) != 0 {
		t.Fatalf("domain must be empty for mutual intent, got %#v", l.Domain)
	}
	if _, ok := l.Category["roommate"]; !ok {
		t.Fatalf("expected category roommate present: %#v", l.Category)
	}
}
