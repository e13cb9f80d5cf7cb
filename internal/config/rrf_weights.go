package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/brain2/matchcore/internal/domain"
	"github.com/brain2/matchcore/internal/matcherr"
	"github.com/brain2/matchcore/internal/rank"
)

// yamlWeights mirrors the on-disk shape of an RRF weight override
// file: one method->weight map per intent name.
type yamlWeights struct {
	Product map[string]float64 `yaml:"product"`
	Service map[string]float64 `yaml:"service"`
	Mutual  map[string]float64 `yaml:"mutual"`
}

func loadRRFWeightsYAML(path string) (map[domain.Intent]rank.Weights, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, matcherr.Config("failed to read RRF weights file", err)
	}
	var doc yamlWeights
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, matcherr.Config("failed to parse RRF weights file", err)
	}
	return map[domain.Intent]rank.Weights{
		domain.IntentProduct: rank.Weights(doc.Product),
		domain.IntentService: rank.Weights(doc.Service),
		domain.IntentMutual:  rank.Weights(doc.Mutual),
	}, nil
}
