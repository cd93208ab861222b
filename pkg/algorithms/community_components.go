package algorithms

import "github.com/dd0wney/cluso-coretweet/pkg/graph"

// ConnectedComponents returns the components of g as a partition, largest
// first. Modularity is scored at resolution 1.
func ConnectedComponents(g *graph.Graph) *CommunityDetectionResult {
	labels := make([]int, g.Order())
	for c, members := range g.ComponentIndices() {
		for _, idx := range members {
			labels[idx] = c
		}
	}

	result := newPartition(g, labels, MethodComponents)
	result.Resolution = 1.0
	compact, _ := compactLabels(g, result.Membership)
	result.Modularity, result.ModularityDefined = modularityOf(g, compact, 1.0)
	return result
}
