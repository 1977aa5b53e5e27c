package fraud_service

import (
	"context"
	"errors"
	"testing"
	"time"

	"product-auth-system/model"
)

// scriptedAssessor returns a fixed verdict or error and counts calls
type scriptedAssessor struct {
	verdict *Verdict
	err     error
	calls   int
}

func (s *scriptedAssessor) Assess(_ context.Context, _ *model.Tag, _ ScanLocation, _ ScanHistorySummary) (*Verdict, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.verdict, nil
}

func testTag(country string) *model.Tag {
	tag := &model.Tag{Code: "TAG-FRAUD01"}
	tag.SetMetadataMap(map[string]string{
		model.MetaKeyRegion:  "southeast-asia",
		model.MetaKeyCountry: country,
	})
	return tag
}

func lowVerdict() *Verdict {
	return &Verdict{RiskLevel: RiskLevelLow, RiskScore: 10, LocationMatch: true}
}

func TestAssess_CachesByLocationFingerprint(t *testing.T) {
	assessor := &scriptedAssessor{verdict: lowVerdict()}
	service := NewFraudService(assessor, NewMemoryRiskCache(0), 5*time.Minute)

	input := AssessInput{Tag: testTag("id"), Location: ScanLocation{LocationName: "Jakarta, Indonesia"}}

	first, err := service.Assess(context.Background(), input)
	if err != nil {
		t.Fatalf("Assess failed: %v", err)
	}
	if first.FromCache {
		t.Error("First assessment must not come from cache")
	}

	second, err := service.Assess(context.Background(), input)
	if err != nil {
		t.Fatalf("Assess failed: %v", err)
	}
	if !second.FromCache {
		t.Error("Repeat assessment from the same place must come from cache")
	}
	if assessor.calls != 1 {
		t.Errorf("Expected 1 assessor call, got %d", assessor.calls)
	}
}

func TestAssess_LocationChangeBypassesCache(t *testing.T) {
	assessor := &scriptedAssessor{verdict: lowVerdict()}
	service := NewFraudService(assessor, NewMemoryRiskCache(0), 5*time.Minute)

	tag := testTag("id")

	if _, err := service.Assess(context.Background(), AssessInput{
		Tag: tag, Location: ScanLocation{LocationName: "Jakarta, Indonesia"},
	}); err != nil {
		t.Fatalf("Assess failed: %v", err)
	}

	// Same tag, different place: the cached Jakarta verdict must not answer a Lagos scan
	result, err := service.Assess(context.Background(), AssessInput{
		Tag: tag, Location: ScanLocation{LocationName: "Lagos, Nigeria"},
	})
	if err != nil {
		t.Fatalf("Assess failed: %v", err)
	}
	if result.FromCache {
		t.Error("A scan from a new location must trigger a fresh assessment")
	}
	if assessor.calls != 2 {
		t.Errorf("Expected 2 assessor calls, got %d", assessor.calls)
	}
}

func TestAssess_NewLocationSupersedesCachedVerdict(t *testing.T) {
	assessor := &scriptedAssessor{verdict: lowVerdict()}
	service := NewFraudService(assessor, NewMemoryRiskCache(0), 5*time.Minute)

	tag := testTag("id")
	jakarta := ScanLocation{LocationName: "Jakarta, Indonesia"}
	lagos := ScanLocation{LocationName: "Lagos, Nigeria"}

	if _, err := service.Assess(context.Background(), AssessInput{Tag: tag, Location: jakarta}); err != nil {
		t.Fatalf("Assess failed: %v", err)
	}
	if _, err := service.Assess(context.Background(), AssessInput{Tag: tag, Location: lagos}); err != nil {
		t.Fatalf("Assess failed: %v", err)
	}

	// The Lagos assessment replaced the tag's entry, so returning to Jakarta
	// within the TTL must be assessed fresh, not served from the old verdict
	result, err := service.Assess(context.Background(), AssessInput{Tag: tag, Location: jakarta})
	if err != nil {
		t.Fatalf("Assess failed: %v", err)
	}
	if result.FromCache {
		t.Error("Superseded verdict must not be served after the location moved away and back")
	}
	if assessor.calls != 3 {
		t.Errorf("Expected 3 assessor calls, got %d", assessor.calls)
	}
}

func TestAssess_CoordinateRoundingSharesVerdict(t *testing.T) {
	assessor := &scriptedAssessor{verdict: lowVerdict()}
	service := NewFraudService(assessor, NewMemoryRiskCache(0), 5*time.Minute)
	tag := testTag("id")

	lat1, lon1 := -6.2081, 106.8451
	lat2, lon2 := -6.2089, 106.8459 // a few hundred meters away

	if _, err := service.Assess(context.Background(), AssessInput{
		Tag: tag, Location: ScanLocation{Latitude: &lat1, Longitude: &lon1},
	}); err != nil {
		t.Fatalf("Assess failed: %v", err)
	}

	result, err := service.Assess(context.Background(), AssessInput{
		Tag: tag, Location: ScanLocation{Latitude: &lat2, Longitude: &lon2},
	})
	if err != nil {
		t.Fatalf("Assess failed: %v", err)
	}
	if !result.FromCache {
		t.Error("Nearby coordinates should share one fingerprint")
	}
}

func TestAssess_ExpiredEntryIsReassessed(t *testing.T) {
	assessor := &scriptedAssessor{verdict: lowVerdict()}
	service := NewFraudService(assessor, NewMemoryRiskCache(0), 10*time.Millisecond)

	input := AssessInput{Tag: testTag("id"), Location: ScanLocation{LocationName: "Jakarta"}}

	if _, err := service.Assess(context.Background(), input); err != nil {
		t.Fatalf("Assess failed: %v", err)
	}

	time.Sleep(20 * time.Millisecond)

	result, err := service.Assess(context.Background(), input)
	if err != nil {
		t.Fatalf("Assess failed: %v", err)
	}
	if result.FromCache {
		t.Error("Expired verdict must not be served from cache")
	}
	if assessor.calls != 2 {
		t.Errorf("Expected 2 assessor calls, got %d", assessor.calls)
	}
}

func TestAssess_AssessorFailureFallsBack(t *testing.T) {
	assessor := &scriptedAssessor{err: errors.New("model unavailable")}
	service := NewFraudService(assessor, NewMemoryRiskCache(0), 5*time.Minute)

	result, err := service.Assess(context.Background(), AssessInput{
		Tag:      testTag("id"),
		Location: ScanLocation{LocationName: "Lagos, Nigeria"},
	})
	if err != nil {
		t.Fatalf("Assessor failure must not fail the scan, got %v", err)
	}

	// Fallback rules: Lagos against an Indonesian tag is a mismatch
	if !result.Verdict.IsSuspicious {
		t.Error("Expected fallback verdict to flag the mismatch")
	}
	if result.Verdict.RiskLevel != RiskLevelMedium || result.Verdict.RiskScore != 40 {
		t.Errorf("Expected medium/40 fallback verdict, got %s/%d", result.Verdict.RiskLevel, result.Verdict.RiskScore)
	}
}

func TestAssess_NilAssessorUsesFallback(t *testing.T) {
	service := NewFraudService(nil, NewMemoryRiskCache(0), 5*time.Minute)

	result, err := service.Assess(context.Background(), AssessInput{
		Tag:      testTag("id"),
		Location: ScanLocation{LocationName: "Jakarta, Indonesia"},
	})
	if err != nil {
		t.Fatalf("Assess failed: %v", err)
	}
	if result.Verdict.IsSuspicious {
		t.Errorf("Expected matching location to pass, got %+v", result.Verdict)
	}
}

func TestInvalidate_DropsOnlyThatTag(t *testing.T) {
	assessor := &scriptedAssessor{verdict: lowVerdict()}
	service := NewFraudService(assessor, NewMemoryRiskCache(0), 5*time.Minute)

	tagA := testTag("id")
	tagB := testTag("id")
	tagB.Code = "TAG-FRAUD02"
	location := ScanLocation{LocationName: "Jakarta"}

	service.Assess(context.Background(), AssessInput{Tag: tagA, Location: location})
	service.Assess(context.Background(), AssessInput{Tag: tagB, Location: location})

	if err := service.Invalidate(context.Background(), tagA.Code); err != nil {
		t.Fatalf("Invalidate failed: %v", err)
	}

	resultA, _ := service.Assess(context.Background(), AssessInput{Tag: tagA, Location: location})
	if resultA.FromCache {
		t.Error("Expected invalidated tag to be reassessed")
	}
	resultB, _ := service.Assess(context.Background(), AssessInput{Tag: tagB, Location: location})
	if !resultB.FromCache {
		t.Error("Expected other tag's verdict to survive")
	}
}

func TestLevelForScore_Bands(t *testing.T) {
	cases := []struct {
		score int
		level string
	}{
		{0, RiskLevelLow},
		{25, RiskLevelLow},
		{26, RiskLevelMedium},
		{50, RiskLevelMedium},
		{51, RiskLevelHigh},
		{75, RiskLevelHigh},
		{76, RiskLevelCritical},
		{100, RiskLevelCritical},
	}
	for _, c := range cases {
		if got := LevelForScore(c.score); got != c.level {
			t.Errorf("LevelForScore(%d) = %s, want %s", c.score, got, c.level)
		}
	}
}
