package embed

import (
	"context"
	"math"
	"testing"
)

func TestHashingEmbedder_Deterministic(t *testing.T) {
	e := NewHashingEmbedder(64)
	v1, err := e.Embed(context.Background(), "product buy electronics smartphone brand apple")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v2, err := e.Embed(context.Background(), "product buy electronics smartphone brand apple")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(v1) != 64 {
		t.Fatalf("expected dimension 64, got %d", len(v1))
	}
	for i := range v1 {
		if v1[i] != v2[i] {
			t.Fatalf("same text produced different vectors at index %d", i)
		}
	}
}

func TestHashingEmbedder_Normalized(t *testing.T) {
	e := NewHashingEmbedder(32)
	v, err := e.Embed(context.Background(), "roommate vegetarian non smoking bangalore")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var mag float64
	for _, x := range v {
		mag += x * x
	}
	if math.Abs(mag-1.0) > 1e-9 {
		t.Fatalf("expected unit vector, got magnitude^2 %v", mag)
	}
}

func TestHashingEmbedder_DistinctTextsDiffer(t *testing.T) {
	e := NewHashingEmbedder(64)
	v1, _ := e.Embed(context.Background(), "electronics smartphone")
	v2, _ := e.Embed(context.Background(), "furniture wardrobe teak")
	same := true
	for i := range v1 {
		if v1[i] != v2[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("expected different texts to hash to different vectors")
	}
}
