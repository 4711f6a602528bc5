package triage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const geminiAPIURL = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.5-flash-lite:generateContent"

const triagePrompt = `You are a medical triage assistant. Analyze the following symptoms and provide:
1. Severity (Low, Medium, High, Critical)
2. Recommended Department. MUST be one of: [General, Cardiology, Neurology, Orthopedics].
   If the condition is critical/emergency, choose the most relevant specialist (e.g. Cardiology for heart attack) or 'General'.
3. Brief Summary (1 sentence)

Symptoms: %s

Output JSON format:
{
    "severity": "...",
    "department": "...",
    "summary": "..."
}`

// GeminiClassifier calls the Gemini generateContent API with a structured
// triage prompt and parses the JSON block out of the response text.
type GeminiClassifier struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewGeminiClassifier(apiKey string) *GeminiClassifier {
	return &GeminiClassifier{
		apiKey:  apiKey,
		baseURL: geminiAPIURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (c *GeminiClassifier) AnalyzeSymptoms(ctx context.Context, symptoms string) (Result, error) {
	if c.apiKey == "" {
		return Result{}, fmt.Errorf("gemini api key not configured")
	}

	reqBody := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: fmt.Sprintf(triagePrompt, symptoms)}}},
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return Result{}, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return Result{}, fmt.Errorf("gemini api error: %s - %s", resp.Status, string(body))
	}

	var gr geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return Result{}, err
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return Result{}, fmt.Errorf("gemini returned no candidates")
	}

	return parseClassification(gr.Candidates[0].Content.Parts[0].Text)
}

// parseClassification extracts the JSON object from the model's text,
// tolerating markdown code fences around it, and validates both enum
// fields. An out-of-enum value counts as a parse failure so the fallback
// takes over.
func parseClassification(text string) (Result, error) {
	var r Result
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &r); err != nil {
		return Result{}, fmt.Errorf("malformed classification response: %w", err)
	}
	if !validSeverity(r.Severity) {
		return Result{}, fmt.Errorf("classification severity %q not recognized", r.Severity)
	}
	if !validDepartment(r.Department) {
		return Result{}, fmt.Errorf("classification department %q not recognized", r.Department)
	}
	return r, nil
}

func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	}
	return strings.TrimSpace(text)
}
