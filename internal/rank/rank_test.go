package rank

import (
	"testing"

	"github.com/lexiserve/lexiserve/internal/search"
	"github.com/lexiserve/lexiserve/internal/store"
)

func TestWeightsSumToOne(t *testing.T) {
	for _, cat := range []search.QueryLengthCategory{search.VeryShort, search.Short, search.Medium, search.Long} {
		var sum float64
		for _, w := range WeightsFor(cat) {
			sum += w
		}
		if diff := sum - 1.0; diff > 1e-9 || diff < -1e-9 {
			t.Fatalf("category %v weights sum to %v, want 1.0", cat, sum)
		}
	}
}

func TestCollectRetainsMaxPerAlgorithm(t *testing.T) {
	matches := map[search.Algorithm][]search.Match{
		search.Prefix: {
			{Handle: 1, Text: "hello", Normalized: 0.6},
			{Handle: 1, Text: "hello", Normalized: 0.9},
		},
	}
	cands := Collect(matches)
	c, ok := cands[1]
	if !ok {
		t.Fatal("expected handle 1 present")
	}
	if c.AltScores[search.Prefix] != 0.9 {
		t.Fatalf("expected max score 0.9 retained, got %v", c.AltScores[search.Prefix])
	}
}

func TestAlgScoreMissingContributesZero(t *testing.T) {
	scores := map[search.Algorithm]float64{search.Prefix: 1.0}
	got := AlgScore(scores, search.VeryShort)
	want := WeightsFor(search.VeryShort)[search.Prefix]
	if got != want {
		t.Fatalf("expected %v (only prefix contributes), got %v", want, got)
	}
}

func TestMetadataAdjustmentNewerAndMoreFrequentRanksHigher(t *testing.T) {
	base := MetadataAdjustment(1, 365, 5, 5, 20)
	frequent := MetadataAdjustment(100, 365, 5, 5, 20)
	if frequent <= base {
		t.Fatalf("expected higher frequency to increase adjustment: base=%v frequent=%v", base, frequent)
	}
	newer := MetadataAdjustment(1, 0, 5, 5, 20)
	if newer <= base {
		t.Fatalf("expected newer entry to increase adjustment: base=%v newer=%v", base, newer)
	}
}

func TestMetadataAdjustmentLengthPenaltyAppliesPastThreshold(t *testing.T) {
	short := MetadataAdjustment(1, 0, 4, 4, 20)  // textLen == queryLen, no penalty
	long := MetadataAdjustment(1, 0, 20, 4, 20)  // textLen > 3*queryLen, penalty applies
	if long >= short {
		t.Fatalf("expected length penalty to reduce adjustment: short=%v long=%v", short, long)
	}
}

func TestFuseOrdersByScore(t *testing.T) {
	cands := map[store.Handle]*Candidate{
		1: {Handle: 1, Text: "aaa", Frequency: 1, AgeDays: 10, AltScores: map[search.Algorithm]float64{search.Prefix: 1.0}},
		2: {Handle: 2, Text: "bbb", Frequency: 1, AgeDays: 10, AltScores: map[search.Algorithm]float64{search.Prefix: 0.1}},
	}
	ranked := Fuse(cands, 3, 10, search.VeryShort, 10)
	if len(ranked) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(ranked))
	}
	if ranked[0].Handle != 1 {
		t.Fatalf("expected handle 1 (higher prefix score) to rank first, got %v", ranked[0].Handle)
	}
}

func TestFuseTruncatesToLimit(t *testing.T) {
	cands := map[store.Handle]*Candidate{}
	for i := store.Handle(0); i < 5; i++ {
		cands[i] = &Candidate{Handle: i, Text: "x", Frequency: 1, AltScores: map[search.Algorithm]float64{search.Prefix: float64(i)}}
	}
	ranked := Fuse(cands, 1, 10, search.VeryShort, 2)
	if len(ranked) != 2 {
		t.Fatalf("expected truncation to 2, got %d", len(ranked))
	}
}

func TestFuseHigherFrequencyRanksFirst(t *testing.T) {
	same := map[search.Algorithm]float64{search.Prefix: 1.0}
	cands := map[store.Handle]*Candidate{
		1: {Handle: 1, Text: "zzz", Frequency: 5, AgeDays: 1, AltScores: same},
		2: {Handle: 2, Text: "aaa", Frequency: 10, AgeDays: 1, AltScores: same},
	}
	ranked := Fuse(cands, 3, 10, search.VeryShort, 10)
	if ranked[0].Handle != 2 {
		t.Fatalf("expected handle 2 (higher frequency) to rank first, got %v", ranked[0].Handle)
	}
}
