package fraud_service

import (
	"context"
	"fmt"
	"strings"

	"product-auth-system/model"
)

// regionKeywords maps a declared country code to location-name keywords that
// count as a match. Deliberately coarse; the rule assessor only has to catch
// the obvious wrong-continent case when the model is unavailable.
var regionKeywords = map[string][]string{
	"id": {"indonesia", "jakarta", "surabaya", "bandung", "medan", "bali", "denpasar"},
	"sg": {"singapore"},
	"my": {"malaysia", "kuala lumpur", "penang", "johor"},
	"th": {"thailand", "bangkok", "phuket", "chiang mai"},
	"vn": {"vietnam", "hanoi", "ho chi minh", "saigon", "da nang"},
	"ph": {"philippines", "manila", "cebu", "davao"},
	"cn": {"china", "beijing", "shanghai", "shenzhen", "guangzhou"},
	"jp": {"japan", "tokyo", "osaka", "kyoto"},
	"kr": {"korea", "seoul", "busan"},
	"us": {"united states", "usa", "new york", "los angeles", "chicago", "san francisco"},
	"gb": {"united kingdom", "uk", "london", "manchester"},
	"de": {"germany", "berlin", "munich", "hamburg"},
	"fr": {"france", "paris", "lyon", "marseille"},
	"ng": {"nigeria", "lagos", "abuja"},
	"in": {"india", "mumbai", "delhi", "bangalore", "chennai"},
	"au": {"australia", "sydney", "melbourne", "brisbane"},
}

// FallbackAssessor rule-based assessor used when the LLM is disabled or fails.
// A location that names a place outside the declared country is flagged at
// medium risk; anything else passes at low risk.
type FallbackAssessor struct{}

// NewFallbackAssessor create rule-based assessor instance
func NewFallbackAssessor() *FallbackAssessor {
	return &FallbackAssessor{}
}

// Assess applies the keyword rules. Never returns an error.
func (f *FallbackAssessor) Assess(_ context.Context, tag *model.Tag, location ScanLocation, _ ScanHistorySummary) (*Verdict, error) {
	intent := tag.DistributionIntent()
	locationMatch := matchesCountry(intent.Country, location.LocationName)

	if !locationMatch {
		return &Verdict{
			IsSuspicious: true,
			RiskLevel:    RiskLevelMedium,
			RiskScore:    40,
			Reasons: []string{
				fmt.Sprintf("scan location %q does not match declared distribution country %q",
					location.LocationName, intent.Country),
			},
			Recommendation: "Verify the point of sale with the distributor before trusting this tag.",
			LocationMatch:  false,
			ChannelMatch:   true,
			MarketMatch:    true,
		}, nil
	}

	return &Verdict{
		IsSuspicious:   false,
		RiskLevel:      RiskLevelLow,
		RiskScore:      10,
		Reasons:        []string{"scan location is consistent with the declared distribution intent"},
		Recommendation: "No action needed.",
		LocationMatch:  true,
		ChannelMatch:   true,
		MarketMatch:    true,
	}, nil
}

// matchesCountry reports whether the location name is plausibly inside the
// declared country. Unknown countries and empty inputs pass open.
func matchesCountry(country, locationName string) bool {
	country = strings.ToLower(strings.TrimSpace(country))
	locationName = strings.ToLower(strings.TrimSpace(locationName))
	if country == "" || locationName == "" {
		return true
	}

	keywords, ok := regionKeywords[country]
	if !ok {
		return true
	}
	for _, kw := range keywords {
		if strings.Contains(locationName, kw) {
			return true
		}
	}
	return false
}
