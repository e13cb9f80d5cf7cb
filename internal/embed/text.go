package embed

import (
	"fmt"
	"sort"
	"strings"

	"github.com/brain2/matchcore/internal/domain"
)

// BuildText constructs the embedding text for a listing: a
// deterministic keyword concatenation for product/service, and a
// natural-language phrasing for mutual. Both strategies are dynamic
// over attribute names — nothing here is hard-coded to a specific
// vocabulary.
func BuildText(l domain.Listing, tk *Tokenizer) string {
	switch l.Intent {
	case domain.IntentMutual:
		return buildMutualText(l, tk)
	default:
		return buildProductServiceText(l)
	}
}

// buildProductServiceText concatenates intent, subintent, the sorted
// domain set, and for every item its type followed by every
// categorical key/value and every numeric constraint key as a bare
// token. Numeric values themselves are never embedded.
func buildProductServiceText(l domain.Listing) string {
	var sb strings.Builder
	sb.WriteString(string(l.Intent))
	sb.WriteByte(' ')
	sb.WriteString(string(l.Subintent))
	for _, d := range l.DomainSlice() {
		sb.WriteByte(' ')
		sb.WriteString(d)
	}
	for _, it := range l.Items {
		sb.WriteByte(' ')
		sb.WriteString(it.Type)
		for _, k := range sortedStringMapKeys(it.Categorical) {
			sb.WriteByte(' ')
			sb.WriteString(k)
			sb.WriteByte(' ')
			sb.WriteString(it.Categorical[k])
		}
		for _, k := range sortedFloatMapKeys(it.Min) {
			sb.WriteByte(' ')
			sb.WriteString(k)
		}
		for _, k := range sortedFloatMapKeys(it.Max) {
			sb.WriteByte(' ')
			sb.WriteString(k)
		}
		for _, k := range sortedRangeMapKeys(it.Range) {
			sb.WriteByte(' ')
			sb.WriteString(k)
		}
	}
	return sb.String()
}

// buildMutualText produces the natural-language phrasing for mutual
// listings: categories, offered items, wanted other-attributes, and
// self-attributes, run through the tokenizer so the resulting text
// stays free of stop-word noise before embedding.
func buildMutualText(l domain.Listing, tk *Tokenizer) string {
	cats := strings.Join(l.CategorySlice(), " and ")

	var offering []string
	for _, it := range l.Items {
		offering = append(offering, it.Type)
	}

	var wanting []string
	for _, k := range sortedStringMapKeys(l.Other.Categorical) {
		wanting = append(wanting, fmt.Sprintf("%s %s", k, l.Other.Categorical[k]))
	}

	var attrs []string
	for _, k := range sortedStringMapKeys(l.Self.Categorical) {
		attrs = append(attrs, fmt.Sprintf("%s %s", k, l.Self.Categorical[k]))
	}

	phrase := fmt.Sprintf(
		"mutual exchange in categories: %s offering %s wanting %s with attributes %s",
		cats, strings.Join(offering, ", "), strings.Join(wanting, ", "), strings.Join(attrs, ", "),
	)
	if tk == nil {
		return phrase
	}
	return strings.Join(tk.SignificantWords(phrase), " ")
}

func sortedStringMapKeys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sortedFloatMapKeys(m map[string]float64) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sortedRangeMapKeys(m map[string]domain.Range) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
