package gemini

import (
	"Donation-Hub/domain"
	"Donation-Hub/internal/utils"
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const describePrompt = "Describe the item in this image for a donation listing. " +
	"Mention what the item is, its apparent condition and any visible details " +
	"a charity would need. Respond with plain text only, at most three sentences."

type (
	// ImageDescriber turns an image into a short listing description.
	ImageDescriber interface {
		Describe(ctx context.Context, image []byte, mimeType string) (string, error)
	}

	Config struct {
		APIKey  string
		Model   string
		BaseURL string
		Timeout time.Duration
	}

	geminiService struct {
		config     Config
		httpClient *http.Client
	}

	generateResponse struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
)

func LoadConfig() Config {
	return Config{
		APIKey:  utils.GetConfig("GEMINI_API_KEY"),
		Model:   utils.GetConfig("GEMINI_MODEL"),
		BaseURL: utils.GetConfig("GEMINI_BASE_URL"),
		Timeout: 30 * time.Second,
	}
}

func NewGeminiService(config Config) ImageDescriber {
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	return &geminiService{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
	}
}

func (s *geminiService) Describe(ctx context.Context, image []byte, mimeType string) (string, error) {
	if s.config.APIKey == "" {
		return "", fmt.Errorf("%w: GEMINI_API_KEY not set", domain.ErrUpstream)
	}
	if s.config.Model == "" {
		return "", fmt.Errorf("%w: GEMINI_MODEL not set", domain.ErrUpstream)
	}
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	requestBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]interface{}{
					{
						"text": describePrompt,
					},
					{
						"inline_data": map[string]interface{}{
							"mime_type": mimeType,
							"data":      base64.StdEncoding.EncodeToString(image),
						},
					},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"temperature": 0.4,
			"topP":        0.8,
			"topK":        40,
		},
	}

	requestJSON, err := json.Marshal(requestBody)
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", s.config.BaseURL, s.config.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(requestJSON))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", s.config.APIKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: gemini request failed: %v", domain.ErrUpstream, transportCause(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("%w: gemini API error: %s - %s", domain.ErrUpstream, resp.Status, strings.TrimSpace(string(bodyBytes)))
	}

	var geminiResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&geminiResp); err != nil {
		return "", fmt.Errorf("%w: decode gemini response: %v", domain.ErrUpstream, err)
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return "", domain.ErrGeminiFailed
	}

	text := strings.TrimSpace(geminiResp.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", domain.ErrGeminiFailed
	}
	return text, nil
}

// transportCause strips the request URL from client errors so the
// endpoint never ends up in a response body.
func transportCause(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}
