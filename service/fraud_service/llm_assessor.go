package fraud_service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/imroc/req"
	"github.com/tidwall/gjson"

	"product-auth-system/model"
)

// Assessor produces a fraud-risk verdict for a single scan
type Assessor interface {
	Assess(ctx context.Context, tag *model.Tag, location ScanLocation, history ScanHistorySummary) (*Verdict, error)
}

// LLMAssessor asks a chat-completions endpoint to judge the scan. The model
// answer is parsed tolerantly; any failure is returned so the caller can fall
// back to the rule-based assessor.
type LLMAssessor struct {
	apiUrl string
	apiKey string
	model  string
	client *req.Req
}

// NewLLMAssessor create LLM assessor instance
func NewLLMAssessor(apiUrl, apiKey, modelName string, timeout time.Duration) *LLMAssessor {
	r := req.New()
	r.SetTimeout(timeout)

	return &LLMAssessor{
		apiUrl: apiUrl,
		apiKey: apiKey,
		model:  modelName,
		client: r,
	}
}

const assessorSystemPrompt = `You are a product-authentication fraud analyst. ` +
	`Given a tag's declared distribution intent and a scan's location and history, ` +
	`judge whether the scan is suspicious. Respond with a single JSON object: ` +
	`{"isSuspicious": bool, "riskLevel": "low"|"medium"|"high"|"critical", ` +
	`"riskScore": 0-100, "reasons": [string], "recommendation": string, ` +
	`"locationMatch": bool, "channelMatch": bool, "marketMatch": bool}. No other text.`

// Assess submits the scan context to the model and parses its verdict
func (a *LLMAssessor) Assess(ctx context.Context, tag *model.Tag, location ScanLocation, history ScanHistorySummary) (*Verdict, error) {
	prompt, err := buildPrompt(tag, location, history)
	if err != nil {
		return nil, fmt.Errorf("failed to build assessor prompt: %w", err)
	}

	body := map[string]interface{}{
		"model": a.model,
		"messages": []map[string]string{
			{"role": "system", "content": assessorSystemPrompt},
			{"role": "user", "content": prompt},
		},
		"temperature": 0,
	}

	header := req.Header{
		"Authorization": "Bearer " + a.apiKey,
		"Content-Type":  "application/json",
	}

	resp, err := a.client.Post(a.apiUrl, ctx, header, req.BodyJSON(&body))
	if err != nil {
		return nil, fmt.Errorf("assessor request failed: %w", err)
	}

	raw, err := resp.ToString()
	if err != nil {
		return nil, fmt.Errorf("failed to read assessor response: %w", err)
	}
	if code := resp.Response().StatusCode; code != http.StatusOK {
		return nil, fmt.Errorf("assessor returned http status %d: %s", code, raw)
	}

	content := gjson.Get(raw, "choices.0.message.content").String()
	if content == "" {
		return nil, fmt.Errorf("assessor response missing content: %s", raw)
	}
	return parseVerdict(content)
}

// buildPrompt serializes the scan context for the model
func buildPrompt(tag *model.Tag, location ScanLocation, history ScanHistorySummary) (string, error) {
	payload := map[string]interface{}{
		"tag_code":     tag.Code,
		"distribution": tag.DistributionIntent(),
		"scan": map[string]interface{}{
			"location_name": location.LocationName,
			"latitude":      location.Latitude,
			"longitude":     location.Longitude,
		},
		"history": history,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// parseVerdict extracts the verdict JSON from a model answer that may carry
// surrounding prose or a markdown fence.
func parseVerdict(content string) (*Verdict, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("assessor answer contains no JSON object: %s", content)
	}
	blob := content[start : end+1]

	if !gjson.Valid(blob) {
		return nil, fmt.Errorf("assessor answer is not valid JSON: %s", blob)
	}

	var verdict Verdict
	if err := json.Unmarshal([]byte(blob), &verdict); err != nil {
		return nil, fmt.Errorf("failed to decode assessor verdict: %w", err)
	}

	// Normalize: score wins over a band the model got wrong
	if verdict.RiskScore < 0 {
		verdict.RiskScore = 0
	}
	if verdict.RiskScore > 100 {
		verdict.RiskScore = 100
	}
	verdict.RiskLevel = LevelForScore(verdict.RiskScore)
	return &verdict, nil
}
