package quote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
)

const geminiGenerateURL = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent"

const narrativePromptPrefix = "根據以下資料用基本面與技術分析這檔股票目前狀況，內容要在100字內:\n "

// GeminiNarrator appends a short AI comment to technical-analysis replies.
type GeminiNarrator struct {
	httpClient *http.Client
	apiKey     string
	model      string
}

// NewGeminiNarrator returns nil when no API key is configured, which
// disables the narrative appendix.
func NewGeminiNarrator(apiKey, model string, timeout time.Duration) *GeminiNarrator {
	if apiKey == "" {
		return nil
	}
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	return &GeminiNarrator{
		httpClient: &http.Client{Timeout: timeout},
		apiKey:     apiKey,
		model:      model,
	}
}

// Narrate asks the model for a <=100-character take on the formatted
// technical block.
func (g *GeminiNarrator) Narrate(ctx context.Context, technicalBlock string) (string, error) {
	payload := map[string]any{
		"contents": []map[string]any{
			{"parts": []map[string]string{{"text": narrativePromptPrefix + technicalBlock}}},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf(geminiGenerateURL, g.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini generateContent: status %d", resp.StatusCode)
	}
	raw, err := readAll(resp)
	if err != nil {
		return "", err
	}
	return gjson.GetBytes(raw, "candidates.0.content.parts.0.text").String(), nil
}
