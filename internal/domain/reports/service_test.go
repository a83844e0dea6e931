package reports

import "testing"

func TestBuildSummaryWithRatings(t *testing.T) {
	summary := buildSummary(
		[]statusCount{{Status: "APPROVED", Count: 3}, {Status: "DRAFT", Count: 1}},
		[]statusCount{{Status: "SUBMITTED", Count: 5}},
		[]statusCount{{Status: "CERTIFIED", Count: 3}, {Status: "SUBMITTED", Count: 1}},
		[]ratedAppraisal{{Rating: "Excellent", Score: 88}, {Rating: "Good", Score: 70}, {Rating: "Excellent", Score: 91}},
	)
	if summary.Contracts["APPROVED"] != 3 || summary.Contracts["DRAFT"] != 1 {
		t.Fatalf("unexpected contract counts: %+v", summary.Contracts)
	}
	if summary.MonthlyReviews["SUBMITTED"] != 5 {
		t.Fatalf("unexpected monthly counts: %+v", summary.MonthlyReviews)
	}
	if summary.CertifiedCount != 3 {
		t.Fatalf("expected 3 certified, got %d", summary.CertifiedCount)
	}
	if summary.RatingDistribution["Excellent"] != 2 || summary.RatingDistribution["Good"] != 1 {
		t.Fatalf("unexpected rating distribution: %+v", summary.RatingDistribution)
	}
	if summary.AverageTotalScore != 83 {
		t.Fatalf("expected average 83, got %v", summary.AverageTotalScore)
	}
	if summary.CompletionRate != 0.75 {
		t.Fatalf("expected completion rate 0.75, got %v", summary.CompletionRate)
	}
}

func TestBuildSummaryHandlesNoAppraisals(t *testing.T) {
	summary := buildSummary(nil, nil, nil, nil)
	if summary.CompletionRate != 0 || summary.AverageTotalScore != 0 {
		t.Fatalf("expected zero rates, got %+v", summary)
	}
	if len(summary.RatingDistribution) != 0 {
		t.Fatalf("expected empty rating distribution, got %+v", summary.RatingDistribution)
	}
}
