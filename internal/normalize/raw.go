package normalize

// RawListing is the loosely-typed shape upstream extraction hands the
// Normalizer. Set-typed fields accept either a scalar or an array;
// constraint fields accept only the four recognized sub-keys.
// go-playground/validator checks the shape that can be expressed
// declaratively; everything semantic (invariant checks, coercion,
// lowercasing) is done by hand in normalize.go.
type RawListing struct {
	ID        string      `json:"id"`
	Intent    string      `json:"intent" validate:"required"`
	Subintent string      `json:"subintent" validate:"required"`
	Domain    interface{} `json:"domain"`
	Category  interface{} `json:"category"`

	Items []RawItem `json:"items" validate:"dive"`

	Other    RawConstraint `json:"other"`
	Self     RawConstraint `json:"self"`
	Location RawConstraint `json:"location"`

	LocationMode string `json:"location_mode"`

	ItemExclusions     interface{} `json:"item_exclusions"`
	OtherExclusions    interface{} `json:"other_exclusions"`
	SelfExclusions     interface{} `json:"self_exclusions"`
	LocationExclusions interface{} `json:"location_exclusions"`
}

// RawItem is one element of the raw items array.
type RawItem struct {
	Type           string                 `json:"type" validate:"required"`
	Categorical    map[string]interface{} `json:"categorical"`
	Min            map[string]interface{} `json:"min"`
	Max            map[string]interface{} `json:"max"`
	Range          map[string]interface{} `json:"range"`
	ItemExclusions interface{}            `json:"item_exclusions"`
}

// RawConstraint is the raw {categorical, min, max, range} tuple, plus
// whatever other top-level keys the caller sent — normalizeConstraint
// rejects any unrecognized key, catching an "exact" key or any other
// unsupported mode rather than silently dropping it. Exact values are
// expressed as range=[x,x].
type RawConstraint map[string]interface{}

// recognizedConstraintKeys is the exact permitted mode set.
var recognizedConstraintKeys = map[string]bool{
	"categorical": true,
	"min":         true,
	"max":         true,
	"range":       true,
}
