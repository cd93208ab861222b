package algorithms

import (
	"container/heap"
	"slices"
)

// RankedNode is a vertex with its score
type RankedNode struct {
	ID    string  `json:"id"`
	Score float64 `json:"score"`
}

// rankedNodeHeap is a min-heap whose root is the weakest kept entry:
// lowest score, and among equal scores the largest id.
type rankedNodeHeap []RankedNode

func (h rankedNodeHeap) Len() int { return len(h) }
func (h rankedNodeHeap) Less(i, j int) bool {
	return worse(h[i], h[j])
}
func (h rankedNodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *rankedNodeHeap) Push(x any) {
	*h = append(*h, x.(RankedNode))
}

func (h *rankedNodeHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}

func worse(a, b RankedNode) bool {
	if a.Score != b.Score {
		return a.Score < b.Score
	}
	return a.ID > b.ID
}

// TopNodes returns the n highest scores, ordered by score descending and
// then id ascending. It runs in O(V log n).
func TopNodes(scores map[string]float64, n int) []RankedNode {
	if n <= 0 {
		return nil
	}

	h := make(rankedNodeHeap, 0, n)
	for id, score := range scores {
		rn := RankedNode{ID: id, Score: score}
		if h.Len() < n {
			heap.Push(&h, rn)
		} else if worse(h[0], rn) {
			h[0] = rn
			heap.Fix(&h, 0)
		}
	}

	result := make([]RankedNode, h.Len())
	for i := h.Len() - 1; i >= 0; i-- {
		result[i] = heap.Pop(&h).(RankedNode)
	}
	return result
}

// RankAll orders every vertex by score descending, then id ascending
func RankAll(scores map[string]float64) []RankedNode {
	out := make([]RankedNode, 0, len(scores))
	for id, s := range scores {
		out = append(out, RankedNode{ID: id, Score: s})
	}
	slices.SortFunc(out, func(a, b RankedNode) int {
		switch {
		case worse(b, a):
			return -1
		case worse(a, b):
			return 1
		}
		return 0
	})
	return out
}
