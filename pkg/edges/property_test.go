package edges

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// genRecords produces small retweet logs over a handful of actors and authors
// so pairs collide often.
func genRecords() gopter.Gen {
	return gen.SliceOf(gen.Struct(reflect.TypeOf(rawRecord{}), map[string]gopter.Gen{
		"Actor":  gen.IntRange(0, 6),
		"Author": gen.IntRange(0, 7),
		"Kind":   gen.IntRange(0, 3),
	}))
}

type rawRecord struct {
	Actor  int
	Author int
	Kind   int
}

func toRecords(raw []rawRecord) []InteractionRecord {
	out := make([]InteractionRecord, 0, len(raw))
	for _, r := range raw {
		kind := ReferenceRetweeted
		if r.Kind == 0 {
			kind = "quoted"
		}
		out = append(out, InteractionRecord{
			ActorID:            fmt.Sprintf("r%d", r.Actor),
			ReferencedAuthorID: fmt.Sprintf("a%d", r.Author),
			ReferenceType:      kind,
		})
	}
	return out
}

// bruteForceWeights recomputes co-occurrence counts directly from the
// retained author set.
func bruteForceWeights(records []InteractionRecord, retained map[string]bool) map[[2]string]int {
	retweeted := make(map[string]map[string]bool)
	for _, r := range records {
		if !r.IsRetweet() || !retained[r.ReferencedAuthorID] {
			continue
		}
		if retweeted[r.ActorID] == nil {
			retweeted[r.ActorID] = make(map[string]bool)
		}
		retweeted[r.ActorID][r.ReferencedAuthorID] = true
	}

	weights := make(map[[2]string]int)
	for _, authors := range retweeted {
		for a := range authors {
			for b := range authors {
				if a < b {
					weights[[2]string{a, b}]++
				}
			}
		}
	}
	return weights
}

func TestBuild_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("edge weights equal brute-force co-occurrences", prop.ForAll(
		func(raw []rawRecord, topK int) bool {
			records := toRecords(raw)
			result, err := Build(records, BuildOptions{TopK: topK})
			if err != nil {
				return false
			}

			retained := make(map[string]bool)
			for _, a := range result.Authors {
				retained[a.ID] = true
			}
			want := bruteForceWeights(records, retained)

			if len(want) != len(result.Edges) {
				return false
			}
			var sum int64
			for _, e := range result.Edges {
				if e.Source >= e.Target || e.Weight < 1 {
					return false
				}
				if want[[2]string{e.Source, e.Target}] != e.Weight {
					return false
				}
				sum += int64(e.Weight)
			}
			return sum == result.Stats.PairIncrements
		},
		genRecords(),
		gen.IntRange(1, 10),
	))

	properties.Property("retained authors never exceed top-k", prop.ForAll(
		func(raw []rawRecord, topK int) bool {
			result, err := Build(toRecords(raw), BuildOptions{TopK: topK})
			return err == nil && len(result.Authors) <= topK
		},
		genRecords(),
		gen.IntRange(1, 10),
	))

	properties.TestingRun(t)
}
