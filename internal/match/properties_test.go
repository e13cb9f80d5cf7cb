package match

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/brain2/matchcore/internal/domain"
)

// genConstraint builds a small random Constraint over a fixed attribute
// universe, keeping the generated space small enough that categorical
// and numeric checks exercise both the pass and fail paths often.
func genConstraint(t *rapid.T, attrs []string) domain.Constraint {
	c := domain.NewConstraint()
	for _, a := range attrs {
		switch rapid.IntRange(0, 3).Draw(t, "mode-"+a) {
		case 1:
			c.Categorical[a] = rapid.SampledFrom([]string{"x", "y", "z"}).Draw(t, "cat-"+a)
		case 2:
			c.Min[a] = rapid.Float64Range(0, 10).Draw(t, "min-"+a)
		case 3:
			lo := rapid.Float64Range(0, 5).Draw(t, "lo-"+a)
			hi := lo + rapid.Float64Range(0, 5).Draw(t, "span-"+a)
			c.Range[a] = domain.Range{Lo: lo, Hi: hi}
		}
	}
	return c
}

func genItem(t *rapid.T) domain.Item {
	c := genConstraint(t, []string{"price", "storage"})
	return domain.Item{
		Type:           rapid.SampledFrom([]string{"phone", "charger", "case"}).Draw(t, "type"),
		Categorical:    c.Categorical,
		Min:            c.Min,
		Max:            c.Max,
		Range:          c.Range,
		ItemExclusions: map[string]struct{}{},
	}
}

func genListing(t *rapid.T, intent domain.Intent) domain.Listing {
	var sub domain.Subintent
	switch intent {
	case domain.IntentProduct:
		sub = rapid.SampledFrom([]domain.Subintent{domain.SubintentBuy, domain.SubintentSell}).Draw(t, "sub")
	case domain.IntentService:
		sub = rapid.SampledFrom([]domain.Subintent{domain.SubintentSeek, domain.SubintentProvide}).Draw(t, "sub")
	default:
		sub = domain.SubintentExchange
	}

	n := rapid.IntRange(0, 3).Draw(t, "nitems")
	items := make([]domain.Item, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, genItem(t))
	}

	l := domain.Listing{
		Intent:       intent,
		Subintent:    sub,
		Items:        items,
		Other:        genConstraint(t, []string{"rating", "payment"}),
		Self:         genConstraint(t, []string{"rating", "payment"}),
		Location:     genConstraint(t, []string{"city"}),
		LocationMode: domain.LocationGlobal,

		ItemExclusions:     map[string]struct{}{},
		OtherExclusions:    map[string]struct{}{},
		SelfExclusions:     map[string]struct{}{},
		LocationExclusions: map[string]struct{}{},
	}
	if intent == domain.IntentMutual {
		l.Category = set(rapid.SampledFrom([]string{"roommate", "barter"}).Draw(t, "category"))
		l.Domain = map[string]struct{}{}
	} else {
		l.Domain = set(rapid.SampledFrom([]string{"electronics", "services"}).Draw(t, "domain"))
		l.Category = map[string]struct{}{}
	}
	return l
}

// For product/service listings, Matches is independent of B's item
// ordering.
func TestProperty_ItemOrderIndependence(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		m := New(nil, nil)
		a := genListing(t, domain.IntentProduct)
		b := genListing(t, domain.IntentProduct)
		b.Domain = a.Domain
		b.Subintent = domain.SubintentSell
		if a.Subintent == domain.SubintentSell {
			b.Subintent = domain.SubintentBuy
		}

		want := m.Matches(a, b)

		shuffled := make([]domain.Item, len(b.Items))
		copy(shuffled, b.Items)
		for i := len(shuffled) - 1; i > 0; i-- {
			j := rapid.IntRange(0, i).Draw(t, "swap")
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		}
		b.Items = shuffled

		got := m.Matches(a, b)
		if got != want {
			t.Fatalf("item order changed match result: want %v got %v", want, got)
		}
	})
}

// For mutual intent, Matches(A,B) == Matches(B,A).
func TestProperty_MutualSymmetry(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		m := New(nil, nil)
		a := genListing(t, domain.IntentMutual)
		b := genListing(t, domain.IntentMutual)
		if rapid.Bool().Draw(t, "shareCategory") {
			b.Category = a.Category
		}
		if m.Matches(a, b) != m.Matches(b, a) {
			t.Fatalf("mutual symmetry violated for a=%+v b=%+v", a, b)
		}
	})
}

// An empty other-constraint must vacuously pass regardless of B.
func TestProperty_EmptyOtherCategoricalVacuous(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		m := New(nil, nil)
		a := genListing(t, domain.IntentProduct)
		a.Other.Categorical = map[string]string{}
		a.Other.Min = map[string]float64{}
		a.Other.Max = map[string]float64{}
		a.Other.Range = map[string]domain.Range{}
		a.OtherExclusions = map[string]struct{}{}
		a.Items = nil
		a.LocationExclusions = map[string]struct{}{}
		a.Location = domain.NewConstraint()
		b := genListing(t, domain.IntentProduct)
		b.Domain = a.Domain
		if a.Subintent == domain.SubintentBuy {
			b.Subintent = domain.SubintentSell
		} else {
			b.Subintent = domain.SubintentBuy
		}
		b.Items = nil
		if !m.Matches(a, b) {
			t.Fatalf("empty other constraint (with no items/location/exclusions) must vacuously pass")
		}
	})
}

// Any overlap between A.other_exclusions and the flattened values of
// B.self.categorical rejects regardless of how much categorical
// agreement otherwise exists.
func TestProperty_ExclusionAlwaysRejects(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		m := New(nil, nil)
		a := genListing(t, domain.IntentProduct)
		b := genListing(t, domain.IntentProduct)
		b.Domain = a.Domain
		if a.Subintent == domain.SubintentBuy {
			b.Subintent = domain.SubintentSell
		} else {
			b.Subintent = domain.SubintentBuy
		}
		if len(b.Self.Categorical) == 0 {
			b.Self.Categorical["payment"] = "x"
		}
		a.Other.Categorical = map[string]string{}
		a.Other.Min = map[string]float64{}
		a.Other.Max = map[string]float64{}
		a.Other.Range = map[string]domain.Range{}
		var banned string
		for _, v := range b.Self.Categorical {
			banned = v
			break
		}
		a.OtherExclusions = set(banned)
		if m.Matches(a, b) {
			t.Fatalf("overlapping other_exclusions must reject regardless of other agreement")
		}
	})
}
