package mappings

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/meridian-grc/resilscore/pkg/catalog"
)

type pairKey struct {
	src, dst catalog.Framework
}

// Graph is the loaded cross-framework mapping graph. Bidirectional
// edges are indexed from both directions at construction time; after
// that the graph is read-only.
type Graph struct {
	edges  []CrossFrameworkMapping
	byPair map[pairKey][]CrossFrameworkMapping
}

// NewGraph indexes the given edges. Coverage percentages are clamped to
// [0,100] and confidences to [0,1]; a lookup for a pair with no edges
// returns nil rather than an error.
func NewGraph(edges []CrossFrameworkMapping) *Graph {
	g := &Graph{byPair: make(map[pairKey][]CrossFrameworkMapping)}
	for _, e := range edges {
		if e.CoveragePercentage < 0 {
			e.CoveragePercentage = 0
		}
		if e.CoveragePercentage > 100 {
			e.CoveragePercentage = 100
		}
		if e.Confidence < 0 {
			e.Confidence = 0
		}
		if e.Confidence > 1 {
			e.Confidence = 1
		}
		g.edges = append(g.edges, e)
		key := pairKey{e.SourceFramework, e.TargetFramework}
		g.byPair[key] = append(g.byPair[key], e)
		if e.Bidirectional {
			rev := e.Reversed()
			revKey := pairKey{rev.SourceFramework, rev.TargetFramework}
			g.byPair[revKey] = append(g.byPair[revKey], rev)
		}
	}
	return g
}

// Edges returns every edge as loaded (bidirectional edges once).
func (g *Graph) Edges() []CrossFrameworkMapping {
	out := make([]CrossFrameworkMapping, len(g.edges))
	copy(out, g.edges)
	return out
}

// Between returns all edges from src to dst, including the reverse
// direction of bidirectional edges.
func (g *Graph) Between(src, dst catalog.Framework) []CrossFrameworkMapping {
	return g.byPair[pairKey{src, dst}]
}

// FromRequirement returns every edge leaving one requirement of the
// source framework, across all target frameworks.
func (g *Graph) FromRequirement(src catalog.Framework, requirementID string) []CrossFrameworkMapping {
	var out []CrossFrameworkMapping
	for key, edges := range g.byPair {
		if key.src != src {
			continue
		}
		for _, e := range edges {
			if e.SourceRequirementID == requirementID {
				out = append(out, e)
			}
		}
	}
	return out
}

// IntoRequirement returns every edge arriving at one requirement of the
// target framework.
func (g *Graph) IntoRequirement(dst catalog.Framework, requirementID string) []CrossFrameworkMapping {
	var out []CrossFrameworkMapping
	for key, edges := range g.byPair {
		if key.dst != dst {
			continue
		}
		for _, e := range edges {
			if e.TargetRequirementID == requirementID {
				out = append(out, e)
			}
		}
	}
	return out
}

type crosswalkFile struct {
	Version  string                  `yaml:"version"`
	Mappings []CrossFrameworkMapping `yaml:"mappings"`
}

// LoadGraph reads a mapping graph version from a YAML file.
func LoadGraph(filepath string) (*Graph, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read crosswalk file: %w", err)
	}

	var file crosswalkFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse crosswalk YAML: %w", err)
	}

	return NewGraph(file.Mappings), nil
}
