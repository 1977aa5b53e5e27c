package fraud_service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"product-auth-system/database"
	"product-auth-system/model"
)

// ErrTagNotFound scanned code does not resolve to a tag
var ErrTagNotFound = errors.New("tag not found")

// recentLocationLimit how many past scans feed the assessor
const recentLocationLimit = 10

// ScanService records consumer scans and drives the risk assessment for each
type ScanService struct {
	db    database.Database
	fraud *FraudService
}

// NewScanService create scan service instance
func NewScanService(db database.Database, fraud *FraudService) *ScanService {
	return &ScanService{db: db, fraud: fraud}
}

// ScanResult assessment plus the scanned tag
type ScanResult struct {
	Tag        *model.Tag
	Assessment *Assessment
}

// AssessScan resolves the scanned code, records the scan event, and returns
// the fraud-risk assessment. A revoked tag short-circuits to a critical
// verdict without consulting the assessor.
func (s *ScanService) AssessScan(ctx context.Context, code string, location ScanLocation) (*ScanResult, error) {
	tag, err := s.db.GetTagByCode(code)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, fmt.Errorf("failed to load tag: %w", err)
	}

	event := &model.ScanEvent{
		TagCode:      tag.Code,
		LocationName: location.LocationName,
		Latitude:     location.Latitude,
		Longitude:    location.Longitude,
		ScannedAt:    time.Now(),
	}
	if err := s.db.CreateScanEvent(event); err != nil {
		// The assessment is still worth returning; history is just one scan short.
		log.Printf("Warning: failed to record scan event for tag %s: %v", tag.Code, err)
	}

	if tag.IsRevoked() {
		return &ScanResult{
			Tag: tag,
			Assessment: &Assessment{
				Verdict: &Verdict{
					IsSuspicious:   true,
					RiskLevel:      RiskLevelCritical,
					RiskScore:      95,
					Reasons:        []string{"tag has been revoked: " + tag.RevokeReason},
					Recommendation: "Do not trust this product. The brand has invalidated this tag.",
				},
				FromCache: false,
				ExpiresAt: time.Now(),
			},
		}, nil
	}

	history, err := s.buildHistory(tag.Code)
	if err != nil {
		log.Printf("Warning: failed to build scan history for tag %s: %v", tag.Code, err)
		history = ScanHistorySummary{}
	}

	assessment, err := s.fraud.Assess(ctx, AssessInput{
		Tag:      tag,
		Location: location,
		History:  history,
	})
	if err != nil {
		return nil, err
	}
	return &ScanResult{Tag: tag, Assessment: assessment}, nil
}

// buildHistory aggregates past scans of the tag for the assessor
func (s *ScanService) buildHistory(tagCode string) (ScanHistorySummary, error) {
	total, err := s.db.CountScanEventsByTagCode(tagCode)
	if err != nil {
		return ScanHistorySummary{}, err
	}
	last24h, err := s.db.CountScanEventsByTagCodeSince(tagCode, time.Now().Add(-24*time.Hour))
	if err != nil {
		return ScanHistorySummary{}, err
	}
	recent, err := s.db.GetRecentScanEvents(tagCode, recentLocationLimit)
	if err != nil {
		return ScanHistorySummary{}, err
	}

	locations := make([]ScanLocation, 0, len(recent))
	for _, event := range recent {
		locations = append(locations, ScanLocation{
			LocationName: event.LocationName,
			Latitude:     event.Latitude,
			Longitude:    event.Longitude,
		})
	}

	return ScanHistorySummary{
		TotalScans:      total,
		ScansLast24h:    last24h,
		RecentLocations: locations,
	}, nil
}
