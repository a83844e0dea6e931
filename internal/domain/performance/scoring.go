package performance

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// RatingBand maps every total score at or above MinScore (and below the next
// band) to Label.
type RatingBand struct {
	MinScore float64 `json:"minScore" yaml:"minScore"`
	Label    string  `json:"label" yaml:"label"`
}

// RatingBands is the ordered band table used to turn a total score into a
// rating. Build it with NewRatingBands so it is validated and sorted.
type RatingBands struct {
	bands []RatingBand
}

// DefaultRatingBands is provisional until the cut-offs are agreed; deployments
// override it with RATING_BANDS_FILE.
var DefaultRatingBands = []RatingBand{
	{MinScore: 95, Label: "Outstanding"},
	{MinScore: 85, Label: "Excellent"},
	{MinScore: 75, Label: "Very Good"},
	{MinScore: 65, Label: "Good"},
	{MinScore: 50, Label: "Fair"},
	{MinScore: 0, Label: "Poor"},
}

func NewRatingBands(bands []RatingBand) (RatingBands, error) {
	if len(bands) == 0 {
		return RatingBands{}, fmt.Errorf("rating bands: at least one band is required")
	}
	sorted := append([]RatingBand(nil), bands...)
	seen := map[float64]struct{}{}
	for i := range sorted {
		sorted[i].Label = strings.TrimSpace(sorted[i].Label)
		if sorted[i].Label == "" {
			return RatingBands{}, fmt.Errorf("rating bands: band %d has an empty label", i)
		}
		if math.IsNaN(sorted[i].MinScore) || math.IsInf(sorted[i].MinScore, 0) {
			return RatingBands{}, fmt.Errorf("rating bands: band %q has a non-finite minimum", sorted[i].Label)
		}
		if _, ok := seen[sorted[i].MinScore]; ok {
			return RatingBands{}, fmt.Errorf("rating bands: duplicate minimum %v", sorted[i].MinScore)
		}
		seen[sorted[i].MinScore] = struct{}{}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MinScore > sorted[j].MinScore
	})
	return RatingBands{bands: sorted}, nil
}

func MustRatingBands(bands []RatingBand) RatingBands {
	out, err := NewRatingBands(bands)
	if err != nil {
		panic(err)
	}
	return out
}

// Rate returns the label of the highest band whose minimum does not exceed
// score. Scores under the lowest band fall into the lowest band.
func (r RatingBands) Rate(score float64) string {
	if len(r.bands) == 0 {
		return ""
	}
	for _, band := range r.bands {
		if score >= band.MinScore {
			return band.Label
		}
	}
	return r.bands[len(r.bands)-1].Label
}

// Bands returns the table, highest minimum first.
func (r RatingBands) Bands() []RatingBand {
	return append([]RatingBand(nil), r.bands...)
}

// ScoreRow fills in the derived scores of one KRA row. A non-positive
// target scores zero rather than failing.
func ScoreRow(row AppraisalKRAScore) AppraisalKRAScore {
	if row.Target > 0 {
		ratio := row.Achievement / row.Target
		row.RawScore = ratio * 100
		row.WeightedRawScore = ratio * row.Weight
		return row
	}
	row.RawScore = 0
	row.WeightedRawScore = 0
	return row
}

// ComputeScore scores every row and sums the weighted scores. The total is
// not capped, so achievements above target raise it past the weight sum.
func ComputeScore(rows []AppraisalKRAScore, bands RatingBands) ScoreResult {
	result := ScoreResult{Rows: make([]AppraisalKRAScore, 0, len(rows))}
	for _, row := range rows {
		scored := ScoreRow(row)
		result.Rows = append(result.Rows, scored)
		result.TotalScore += scored.WeightedRawScore
	}
	result.FinalRating = bands.Rate(result.TotalScore)
	return result
}

// ScoreAppraisal is ComputeScore over an appraisal's own rows.
func ScoreAppraisal(appraisal Appraisal, bands RatingBands) ScoreResult {
	return ComputeScore(appraisal.KRAScoring, bands)
}

func applyScore(appraisal *Appraisal, bands RatingBands) {
	result := ScoreAppraisal(*appraisal, bands)
	appraisal.KRAScoring = result.Rows
	appraisal.TotalScore = result.TotalScore
	appraisal.FinalRating = result.FinalRating
}

// ValidateWeights checks that KRA weights add up to 100 within weightEpsilon.
func ValidateWeights(entries []KRAEntry) ValidationResult {
	result := ValidationResult{}
	for _, entry := range entries {
		result.TotalWeight += entry.Weight
	}
	result.Valid = math.Abs(result.TotalWeight-requiredWeightTotal) <= weightEpsilon
	if !result.Valid {
		result.Issues = append(result.Issues, fmt.Sprintf("weights must total 100 (got %g)", result.TotalWeight))
	}
	return result
}

// ValidateContract reports every submit blocker of a contract without
// changing it.
func ValidateContract(contract Contract) ValidationResult {
	result := ValidateWeights(contract.KRAEntries)
	if !contract.EmployeeSigned {
		result.Valid = false
		result.Issues = append(result.Issues, "signature required")
	}
	return result
}
