package matchcore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInMemory_EndToEnd(t *testing.T) {
	ctx := context.Background()

	graph, err := NewImplicationGraph([]ImplicationEdge{{From: "smartphone", To: "phone"}})
	require.NoError(t, err)

	c, err := NewInMemory(64, graph, nil)
	require.NoError(t, err)

	sell := RawListing{
		ID:        "sell-1",
		Intent:    "product",
		Subintent: "sell",
		Domain:    "electronics",
		Items:     []RawItem{{Type: "smartphone", Categorical: map[string]interface{}{"brand": "apple"}}},
	}
	id, err := c.Ingest(ctx, sell)
	require.NoError(t, err)
	assert.Equal(t, "sell-1", id)

	buy := RawListing{
		Intent:    "product",
		Subintent: "buy",
		Domain:    "electronics",
		Items:     []RawItem{{Type: "smartphone"}},
	}
	results, err := c.Query(ctx, buy, 10)
	require.NoError(t, err)

	found := false
	for _, r := range results {
		if r.ListingID == "sell-1" {
			found = true
			assert.Equal(t, 1, r.Rank)
		}
	}
	assert.True(t, found, "expected ingested seller to be returned for a matching buyer query")
}

func TestNewInMemory_ImplicationSatisfiesRequirement(t *testing.T) {
	ctx := context.Background()
	graph, err := NewImplicationGraph([]ImplicationEdge{{From: "smartphone", To: "phone"}})
	require.NoError(t, err)

	c, err := NewInMemory(64, graph, nil)
	require.NoError(t, err)

	sell := RawListing{
		ID:        "sell-2",
		Intent:    "product",
		Subintent: "sell",
		Domain:    "electronics",
		Items:     []RawItem{{Type: "gadget", Categorical: map[string]interface{}{"kind": "smartphone"}}},
	}
	_, err = c.Ingest(ctx, sell)
	require.NoError(t, err)

	buy := RawListing{
		Intent:    "product",
		Subintent: "buy",
		Domain:    "electronics",
		Items:     []RawItem{{Type: "gadget", Categorical: map[string]interface{}{"kind": "phone"}}},
	}
	results, err := c.Query(ctx, buy, 10)
	require.NoError(t, err)

	found := false
	for _, r := range results {
		if r.ListingID == "sell-2" {
			found = true
		}
	}
	assert.True(t, found, "candidate value smartphone should satisfy required phone via implication")
}
