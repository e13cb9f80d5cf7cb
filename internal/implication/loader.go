package implication

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/brain2/matchcore/internal/matcherr"
)

// yamlDocument is the on-disk shape of the implication graph source:
// a flat list of {from, to} edges, e.g.
//
//	edges:
//	  - from: smartphone
//	    to: phone
//	  - from: organic
//	    to: vegetarian
type yamlDocument struct {
	Edges []struct {
		From string `yaml:"from"`
		To   string `yaml:"to"`
	} `yaml:"edges"`
}

// LoadYAML reads the term-implication graph from a YAML file. A
// missing, unparsable, or empty source is a ConfigError: a deployment
// that wants plain string-equality implication passes no graph at all
// rather than an empty one.
func LoadYAML(path string) (*Graph, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, matcherr.Config(fmt.Sprintf("failed to read implication graph source %q", path), err)
	}
	var doc yamlDocument
	if err := yaml.Unmarshal(bytes, &doc); err != nil {
		return nil, matcherr.Config(fmt.Sprintf("failed to parse implication graph source %q", path), err)
	}
	if len(doc.Edges) == 0 {
		return nil, matcherr.Config(fmt.Sprintf("implication graph source %q contains no edges", path), nil)
	}
	edges := make([]Edge, 0, len(doc.Edges))
	for _, e := range doc.Edges {
		edges = append(edges, Edge{From: e.From, To: e.To})
	}
	g, err := New(edges)
	if err != nil {
		return nil, err
	}
	return g, nil
}
