package fraud_service

import (
	"context"
	"log"
	"time"

	"product-auth-system/model"
)

// AssessInput everything the assessors need to judge one scan
type AssessInput struct {
	Tag      *model.Tag
	Location ScanLocation
	History  ScanHistorySummary
}

// FraudService answers "how risky is this scan" with a short-lived cached
// verdict. Verdicts are keyed by tag code plus location fingerprint, so a
// repeat scan from the same place reuses the verdict while a location change
// forces a fresh assessment.
type FraudService struct {
	assessor Assessor
	fallback Assessor
	cache    RiskCache
	ttl      time.Duration
}

// NewFraudService create fraud service instance. assessor may be nil, in
// which case every assessment uses the rule-based fallback.
func NewFraudService(assessor Assessor, cache RiskCache, ttl time.Duration) *FraudService {
	return &FraudService{
		assessor: assessor,
		fallback: NewFallbackAssessor(),
		cache:    cache,
		ttl:      ttl,
	}
}

// Assess returns the risk verdict for a scan, serving from cache when the
// same tag was recently assessed at the same place. Assessor failures are
// absorbed into a fallback verdict; this path never fails the scan.
func (s *FraudService) Assess(ctx context.Context, input AssessInput) (*Assessment, error) {
	fingerprint := input.Location.Fingerprint()

	if verdict, expiresAt, ok := s.cache.Get(ctx, input.Tag.Code, fingerprint); ok {
		return &Assessment{Verdict: verdict, FromCache: true, ExpiresAt: expiresAt}, nil
	}

	verdict := s.assess(ctx, input)

	if err := s.cache.Set(ctx, input.Tag.Code, fingerprint, verdict, s.ttl); err != nil {
		log.Printf("Warning: failed to cache risk verdict for tag %s: %v", input.Tag.Code, err)
	}

	return &Assessment{
		Verdict:   verdict,
		FromCache: false,
		ExpiresAt: time.Now().Add(s.ttl),
	}, nil
}

func (s *FraudService) assess(ctx context.Context, input AssessInput) *Verdict {
	if s.assessor != nil {
		verdict, err := s.assessor.Assess(ctx, input.Tag, input.Location, input.History)
		if err == nil {
			return verdict
		}
		log.Printf("Warning: risk assessor failed for tag %s, using fallback rules: %v", input.Tag.Code, err)
	}

	verdict, _ := s.fallback.Assess(ctx, input.Tag, input.Location, input.History)
	return verdict
}

// Invalidate drops cached verdicts for one tag, e.g. after a revoke
func (s *FraudService) Invalidate(ctx context.Context, tagCode string) error {
	return s.cache.Invalidate(ctx, tagCode)
}

// ClearAll drops every cached verdict
func (s *FraudService) ClearAll(ctx context.Context) error {
	return s.cache.ClearAll(ctx)
}

// CleanupExpired evicts expired entries from backends that need it
func (s *FraudService) CleanupExpired(ctx context.Context) int {
	return s.cache.CleanupExpired(ctx)
}
