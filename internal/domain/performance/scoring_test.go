package performance

import (
	"math"
	"math/rand"
	"testing"
)

func TestScoreRow(t *testing.T) {
	row := ScoreRow(AppraisalKRAScore{Target: 50, Weight: 20, Achievement: 25})
	if row.RawScore != 50 {
		t.Fatalf("expected raw score 50, got %v", row.RawScore)
	}
	if row.WeightedRawScore != 10 {
		t.Fatalf("expected weighted score 10, got %v", row.WeightedRawScore)
	}
}

func TestScoreRowZeroTarget(t *testing.T) {
	row := ScoreRow(AppraisalKRAScore{Target: 0, Weight: 30, Achievement: 12})
	if row.RawScore != 0 || row.WeightedRawScore != 0 {
		t.Fatalf("expected zero scores, got %+v", row)
	}
	if math.IsNaN(row.RawScore) || math.IsInf(row.RawScore, 0) {
		t.Fatalf("expected finite raw score, got %v", row.RawScore)
	}
}

func TestComputeScoreIsUncapped(t *testing.T) {
	bands := MustRatingBands(DefaultRatingBands)
	result := ComputeScore([]AppraisalKRAScore{
		{ID: "a", Weight: 60, Target: 10, Achievement: 20},
		{ID: "b", Weight: 40, Target: 10, Achievement: 10},
	}, bands)
	if result.TotalScore != 160 {
		t.Fatalf("expected total 160, got %v", result.TotalScore)
	}
	if result.FinalRating != "Outstanding" {
		t.Fatalf("expected Outstanding, got %q", result.FinalRating)
	}
}

func TestComputeScoreSumProperty(t *testing.T) {
	bands := MustRatingBands(DefaultRatingBands)
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		rows := make([]AppraisalKRAScore, 1+rng.Intn(12))
		for j := range rows {
			rows[j] = AppraisalKRAScore{
				Weight:      rng.Float64() * 100,
				Target:      float64(rng.Intn(4)) * rng.Float64() * 200,
				Achievement: rng.Float64() * 300,
			}
		}
		result := ComputeScore(rows, bands)
		var sum float64
		for _, row := range result.Rows {
			sum += row.WeightedRawScore
		}
		if sum != result.TotalScore {
			t.Fatalf("iteration %d: total %v differs from row sum %v", i, result.TotalScore, sum)
		}
		if result.FinalRating != bands.Rate(result.TotalScore) {
			t.Fatalf("iteration %d: rating %q does not match band table", i, result.FinalRating)
		}
	}
}

func TestRatingBandsRate(t *testing.T) {
	bands := MustRatingBands(DefaultRatingBands)
	cases := []struct {
		score float64
		want  string
	}{
		{score: 120, want: "Outstanding"},
		{score: 95, want: "Outstanding"},
		{score: 94.99, want: "Excellent"},
		{score: 75, want: "Very Good"},
		{score: 65, want: "Good"},
		{score: 50, want: "Fair"},
		{score: 10, want: "Poor"},
		{score: -5, want: "Poor"},
	}
	for _, tc := range cases {
		if got := bands.Rate(tc.score); got != tc.want {
			t.Fatalf("score %v: expected %q, got %q", tc.score, tc.want, got)
		}
	}
}

func TestNewRatingBandsValidates(t *testing.T) {
	if _, err := NewRatingBands(nil); err == nil {
		t.Fatal("expected error for empty table")
	}
	if _, err := NewRatingBands([]RatingBand{{MinScore: 10, Label: " "}}); err == nil {
		t.Fatal("expected error for empty label")
	}
	if _, err := NewRatingBands([]RatingBand{{MinScore: 10, Label: "A"}, {MinScore: 10, Label: "B"}}); err == nil {
		t.Fatal("expected error for duplicate minimum")
	}

	bands, err := NewRatingBands([]RatingBand{{MinScore: 0, Label: "Low"}, {MinScore: 50, Label: "High"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := bands.Bands(); got[0].Label != "High" || got[1].Label != "Low" {
		t.Fatalf("expected bands sorted highest first, got %+v", got)
	}
}

func TestValidateWeights(t *testing.T) {
	if ValidateWeights(kras(40, 30, 20)).Valid {
		t.Fatal("expected 40/30/20 to be invalid")
	}
	if !ValidateWeights(kras(40, 30, 30)).Valid {
		t.Fatal("expected 40/30/30 to be valid")
	}
	if !ValidateWeights(kras(33.3333333, 33.3333333, 33.3333334)).Valid {
		t.Fatal("expected rounding within epsilon to be valid")
	}
	result := ValidateWeights(nil)
	if result.Valid || len(result.Issues) != 1 {
		t.Fatalf("expected empty entries to be invalid, got %+v", result)
	}
}

func TestValidateContractReportsEveryBlocker(t *testing.T) {
	result := ValidateContract(Contract{KRAEntries: kras(50)})
	if result.Valid || len(result.Issues) != 2 {
		t.Fatalf("expected two issues, got %+v", result)
	}
	if result.TotalWeight != 50 {
		t.Fatalf("expected total weight 50, got %v", result.TotalWeight)
	}
}
