package fraud_service

import (
	"fmt"
	"strings"
	"time"
)

// Risk level bands over the 0-100 score range
const (
	RiskLevelLow      = "low"      // 0-25
	RiskLevelMedium   = "medium"   // 26-50
	RiskLevelHigh     = "high"     // 51-75
	RiskLevelCritical = "critical" // 76-100
)

// LevelForScore maps a 0-100 risk score to its band
func LevelForScore(score int) string {
	switch {
	case score <= 25:
		return RiskLevelLow
	case score <= 50:
		return RiskLevelMedium
	case score <= 75:
		return RiskLevelHigh
	default:
		return RiskLevelCritical
	}
}

// Verdict fraud-risk verdict for a scan
type Verdict struct {
	IsSuspicious   bool     `json:"isSuspicious"`
	RiskLevel      string   `json:"riskLevel"` // low/medium/high/critical
	RiskScore      int      `json:"riskScore"` // 0-100
	Reasons        []string `json:"reasons"`
	Recommendation string   `json:"recommendation"`
	LocationMatch  bool     `json:"locationMatch"`
	ChannelMatch   bool     `json:"channelMatch"`
	MarketMatch    bool     `json:"marketMatch"`
}

// Assessment verdict plus cache provenance
type Assessment struct {
	Verdict   *Verdict  `json:"verdict"`
	FromCache bool      `json:"from_cache"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ScanLocation where a scan happened. Coordinates are optional; the name is
// used when they are absent.
type ScanLocation struct {
	LocationName string   `json:"location_name"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
}

// Fingerprint reduces a location to a coarse cache key. Coordinates are
// rounded to two decimals (roughly a kilometer), so nearby repeat scans share
// one cached verdict while a real move invalidates it.
func (l ScanLocation) Fingerprint() string {
	if l.Latitude != nil && l.Longitude != nil {
		return fmt.Sprintf("%.2f,%.2f", *l.Latitude, *l.Longitude)
	}
	return strings.ToLower(strings.TrimSpace(l.LocationName))
}

// ScanHistorySummary aggregate scan history handed to the assessor
type ScanHistorySummary struct {
	TotalScans      int64          `json:"total_scans"`
	ScansLast24h    int64          `json:"scans_last_24h"`
	RecentLocations []ScanLocation `json:"recent_locations"`
}
