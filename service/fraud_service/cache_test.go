package fraud_service

import (
	"context"
	"testing"
	"time"
)

func TestMemoryCache_SetGet(t *testing.T) {
	cache := NewMemoryRiskCache(0)
	ctx := context.Background()
	verdict := &Verdict{RiskLevel: RiskLevelLow, RiskScore: 5}

	if err := cache.Set(ctx, "TAG-A", "jakarta", verdict, time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, expiresAt, ok := cache.Get(ctx, "TAG-A", "jakarta")
	if !ok {
		t.Fatal("Expected cache hit")
	}
	if got.RiskScore != 5 {
		t.Errorf("Expected score 5, got %d", got.RiskScore)
	}
	if !expiresAt.After(time.Now()) {
		t.Error("Expected expiry in the future")
	}

	if _, _, ok := cache.Get(ctx, "TAG-A", "surabaya"); ok {
		t.Error("Different fingerprint must miss")
	}
	if _, _, ok := cache.Get(ctx, "TAG-B", "jakarta"); ok {
		t.Error("Different tag must miss")
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	cache := NewMemoryRiskCache(0)
	ctx := context.Background()

	cache.Set(ctx, "TAG-A", "jakarta", &Verdict{}, 10*time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	if _, _, ok := cache.Get(ctx, "TAG-A", "jakarta"); ok {
		t.Error("Expected expired entry to miss")
	}
}

func TestMemoryCache_SetReplaces(t *testing.T) {
	cache := NewMemoryRiskCache(0)
	ctx := context.Background()

	cache.Set(ctx, "TAG-A", "jakarta", &Verdict{RiskScore: 10}, time.Minute)
	cache.Set(ctx, "TAG-A", "jakarta", &Verdict{RiskScore: 80}, time.Minute)

	got, _, ok := cache.Get(ctx, "TAG-A", "jakarta")
	if !ok {
		t.Fatal("Expected cache hit")
	}
	if got.RiskScore != 80 {
		t.Errorf("Expected replaced verdict with score 80, got %d", got.RiskScore)
	}
}

func TestMemoryCache_NewFingerprintSupersedes(t *testing.T) {
	cache := NewMemoryRiskCache(0)
	ctx := context.Background()

	cache.Set(ctx, "TAG-A", "jakarta", &Verdict{RiskScore: 10}, time.Minute)
	cache.Set(ctx, "TAG-A", "lagos", &Verdict{RiskScore: 40}, time.Minute)

	// One entry per tag: the old location's verdict is gone
	if _, _, ok := cache.Get(ctx, "TAG-A", "jakarta"); ok {
		t.Error("Expected superseded fingerprint to miss")
	}
	got, _, ok := cache.Get(ctx, "TAG-A", "lagos")
	if !ok {
		t.Fatal("Expected hit for the current fingerprint")
	}
	if got.RiskScore != 40 {
		t.Errorf("Expected score 40, got %d", got.RiskScore)
	}
}

func TestMemoryCache_CleanupExpired(t *testing.T) {
	cache := NewMemoryRiskCache(0)
	ctx := context.Background()

	cache.Set(ctx, "TAG-A", "jakarta", &Verdict{}, 5*time.Millisecond)
	cache.Set(ctx, "TAG-B", "lagos", &Verdict{}, time.Minute)
	time.Sleep(10 * time.Millisecond)

	if removed := cache.CleanupExpired(ctx); removed != 1 {
		t.Errorf("Expected 1 entry removed, got %d", removed)
	}
	if _, _, ok := cache.Get(ctx, "TAG-B", "lagos"); !ok {
		t.Error("Live entry must survive cleanup")
	}
}

func TestMemoryCache_ClearAll(t *testing.T) {
	cache := NewMemoryRiskCache(0)
	ctx := context.Background()

	cache.Set(ctx, "TAG-A", "jakarta", &Verdict{}, time.Minute)
	cache.Set(ctx, "TAG-B", "lagos", &Verdict{}, time.Minute)

	if err := cache.ClearAll(ctx); err != nil {
		t.Fatalf("ClearAll failed: %v", err)
	}
	if _, _, ok := cache.Get(ctx, "TAG-A", "jakarta"); ok {
		t.Error("Expected empty cache after ClearAll")
	}
}

func TestFingerprint(t *testing.T) {
	lat, lon := -6.20881, 106.84559
	loc := ScanLocation{LocationName: "ignored when coords set", Latitude: &lat, Longitude: &lon}
	if got := loc.Fingerprint(); got != "-6.21,106.85" {
		t.Errorf("Expected rounded coordinate fingerprint, got %q", got)
	}

	named := ScanLocation{LocationName: "  Jakarta, Indonesia "}
	if got := named.Fingerprint(); got != "jakarta, indonesia" {
		t.Errorf("Expected normalized name fingerprint, got %q", got)
	}
}
