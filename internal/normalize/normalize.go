// Package normalize validates a raw, loosely-typed listing value and
// produces the canonical domain.Listing every downstream component
// consumes, or a tagged error citing the field path and invariant that
// rejected it.
package normalize

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/brain2/matchcore/internal/domain"
	"github.com/brain2/matchcore/internal/matcherr"
)

// Normalizer canonicalizes raw listings. It is stateless and safe for
// concurrent use.
type Normalizer struct {
	validate *validator.Validate
}

// New constructs a Normalizer. The validator.Validate instance caches
// struct metadata, so it is built once and reused.
func New() *Normalizer {
	return &Normalizer{validate: validator.New()}
}

// Normalize runs struct-tag shape validation, then the semantic
// invariant checks, producing a canonical domain.Listing. The first
// error aborts.
func (n *Normalizer) Normalize(raw RawListing) (domain.Listing, error) {
	if err := n.validate.Struct(raw); err != nil {
		return domain.Listing{}, matcherr.Normalization("", "MissingField", fmt.Sprintf("shape validation failed: %v", err))
	}

	intent := domain.Intent(lower(raw.Intent))
	subintent := domain.Subintent(lower(raw.Subintent))
	if !domain.ValidIntentSubintent(intent, subintent) {
		return domain.Listing{}, matcherr.Normalization("intent,subintent", "I-04",
			fmt.Sprintf("invalid (intent,subintent) pair: (%s,%s)", intent, subintent))
	}

	domainSet, err := toStringSet("domain", raw.Domain)
	if err != nil {
		return domain.Listing{}, err
	}
	categorySet, err := toStringSet("category", raw.Category)
	if err != nil {
		return domain.Listing{}, err
	}

	switch intent {
	case domain.IntentProduct, domain.IntentService:
		if len(domainSet) == 0 {
			return domain.Listing{}, matcherr.Normalization("domain", "I-05", "domain must be non-empty for product/service intent")
		}
		categorySet = map[string]struct{}{}
	case domain.IntentMutual:
		if len(categorySet) == 0 {
			return domain.Listing{}, matcherr.Normalization("category", "I-05", "category must be non-empty for mutual intent")
		}
		domainSet = map[string]struct{}{}
	}

	items := make([]domain.Item, 0, len(raw.Items))
	for i, ri := range raw.Items {
		it, err := normalizeItem(fmt.Sprintf("items[%d]", i), ri)
		if err != nil {
			return domain.Listing{}, err
		}
		items = append(items, it)
	}

	other, err := normalizeConstraint("other", raw.Other)
	if err != nil {
		return domain.Listing{}, err
	}
	self, err := normalizeConstraint("self", raw.Self)
	if err != nil {
		return domain.Listing{}, err
	}
	location, err := normalizeConstraint("location", raw.Location)
	if err != nil {
		return domain.Listing{}, err
	}

	locMode := domain.LocationMode(lower(raw.LocationMode))
	if locMode == "" {
		locMode = domain.LocationGlobal
	}
	if !validLocationMode(locMode) {
		return domain.Listing{}, matcherr.Normalization("location_mode", "I-02", fmt.Sprintf("unrecognized location_mode %q", locMode))
	}

	itemExcl, err := toStringSet("item_exclusions", raw.ItemExclusions)
	if err != nil {
		return domain.Listing{}, err
	}
	otherExcl, err := toStringSet("other_exclusions", raw.OtherExclusions)
	if err != nil {
		return domain.Listing{}, err
	}
	selfExcl, err := toStringSet("self_exclusions", raw.SelfExclusions)
	if err != nil {
		return domain.Listing{}, err
	}
	locExcl, err := toStringSet("location_exclusions", raw.LocationExclusions)
	if err != nil {
		return domain.Listing{}, err
	}

	return domain.Listing{
		ID:                 raw.ID,
		Intent:             intent,
		Subintent:          subintent,
		Domain:             domainSet,
		Category:           categorySet,
		Items:              items,
		Other:              other,
		Self:               self,
		Location:           location,
		LocationMode:       locMode,
		ItemExclusions:     toStructSet(itemExcl),
		OtherExclusions:    toStructSet(otherExcl),
		SelfExclusions:     toStructSet(selfExcl),
		LocationExclusions: toStructSet(locExcl),
	}, nil
}

func normalizeItem(path string, ri RawItem) (domain.Item, error) {
	if strings.TrimSpace(ri.Type) == "" {
		return domain.Item{}, matcherr.Normalization(path+".type", "MissingField", "item type is required")
	}
	categorical, err := toStringMap(path+".categorical", ri.Categorical)
	if err != nil {
		return domain.Item{}, err
	}
	min, err := toFloatMap(path+".min", ri.Min)
	if err != nil {
		return domain.Item{}, err
	}
	max, err := toFloatMap(path+".max", ri.Max)
	if err != nil {
		return domain.Item{}, err
	}
	rng, err := toRangeMap(path+".range", ri.Range)
	if err != nil {
		return domain.Item{}, err
	}
	excl, err := toStringSet(path+".item_exclusions", ri.ItemExclusions)
	if err != nil {
		return domain.Item{}, err
	}
	return domain.Item{
		Type:           lower(ri.Type),
		Categorical:    categorical,
		Min:            min,
		Max:            max,
		Range:          rng,
		ItemExclusions: toStructSet(excl),
	}, nil
}

func normalizeConstraint(path string, raw RawConstraint) (domain.Constraint, error) {
	for k := range raw {
		if !recognizedConstraintKeys[k] {
			return domain.Constraint{}, matcherr.Normalization(path+"."+k, "I-02", fmt.Sprintf("unrecognized constraint key %q", k))
		}
	}
	c := domain.NewConstraint()
	if v, ok := raw["categorical"]; ok {
		m, ok := v.(map[string]interface{})
		if !ok {
			return domain.Constraint{}, matcherr.Normalization(path+".categorical", "TypeMismatch", "categorical must be a map")
		}
		cat, err := toStringMap(path+".categorical", m)
		if err != nil {
			return domain.Constraint{}, err
		}
		c.Categorical = cat
	}
	if v, ok := raw["min"]; ok {
		m, ok := v.(map[string]interface{})
		if !ok {
			return domain.Constraint{}, matcherr.Normalization(path+".min", "TypeMismatch", "min must be a map")
		}
		fm, err := toFloatMap(path+".min", m)
		if err != nil {
			return domain.Constraint{}, err
		}
		c.Min = fm
	}
	if v, ok := raw["max"]; ok {
		m, ok := v.(map[string]interface{})
		if !ok {
			return domain.Constraint{}, matcherr.Normalization(path+".max", "TypeMismatch", "max must be a map")
		}
		fm, err := toFloatMap(path+".max", m)
		if err != nil {
			return domain.Constraint{}, err
		}
		c.Max = fm
	}
	if v, ok := raw["range"]; ok {
		m, ok := v.(map[string]interface{})
		if !ok {
			return domain.Constraint{}, matcherr.Normalization(path+".range", "TypeMismatch", "range must be a map")
		}
		rm, err := toRangeMap(path+".range", m)
		if err != nil {
			return domain.Constraint{}, err
		}
		c.Range = rm
	}
	return c, nil
}

func validLocationMode(m domain.LocationMode) bool {
	switch m {
	case domain.LocationNearMe, domain.LocationExplicit, domain.LocationTargetOnly, domain.LocationRoute, domain.LocationGlobal:
		return true
	}
	return false
}

func lower(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
