package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mcoot/bingo-challenge-go/internal/model"
)

// maxRawAttached caps how much of a bad upstream payload is kept for
// diagnostics
const maxRawAttached = 2000

// maxNotesLen caps the model's free-form notes
const maxNotesLen = 200

// Config holds settings for the OpenAI-backed vision client
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// DefaultConfig returns sensible defaults for the OpenAI client
func DefaultConfig() Config {
	return Config{
		Model:   "gpt-4.1-mini",
		BaseURL: "https://api.openai.com/v1",
		Timeout: 30 * time.Second,
	}
}

// OpenAIClient implements Client against the OpenAI Responses API
type OpenAIClient struct {
	cfg        Config
	httpClient *http.Client
	logger     *slog.Logger
}

// Ensure OpenAIClient implements the interface
var _ Client = (*OpenAIClient)(nil)

// NewOpenAIClient creates a vision client backed by the OpenAI API
func NewOpenAIClient(cfg Config, logger *slog.Logger) *OpenAIClient {
	if cfg.Model == "" {
		cfg.Model = DefaultConfig().Model
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultConfig().BaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	return &OpenAIClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

const detectMarksPrompt = "You are given a photo of a paper bingo card. " +
	"The card contains a 5x5 grid of squares. " +
	"TASK 1: Find the week identifier on the card. Look for text like 'Week 1', 'Week 2', 'WEEK 3', etc. " +
	"Return the week as 'week1', 'week2', etc. (lowercase, no space). If not found, use null. " +
	"TASK 2: Detect which grid cells contain a clear handwritten mark such as an X, checkmark, or filled/scribbled area. " +
	"Ignore printed text, titles, logos, cell borders, and shadows. " +
	"Be CONSERVATIVE: only report marks you are confident about. " +
	"If a cell has no obvious handwritten mark, do NOT include it. " +
	"Shadows, glare, printing artifacts, and smudges are NOT marks. " +
	"If the card appears blank or you see no clear marks, return an empty marked_cells array. " +
	"Return JSON only with schema: { week: string|null, marked_cells: [{r:0..4,c:0..4}], confidence: 0..1, notes: string }. " +
	"Use 0-based row and column indices with top-left as r=0,c=0. " +
	"Do not include any extra keys."

const readCellsPrompt = "You are given an image of a bingo card with a 5x5 grid. " +
	"Extract the text from each cell, reading left-to-right, top-to-bottom. " +
	"Return JSON: {\"cells\": [\"cell 0 text\", \"cell 1 text\", ..., \"cell 24 text\"]} " +
	"Include exactly 25 strings. If a cell is empty or unreadable, use an empty string."

// DetectMarks asks the model for handwritten marks on a card photo
func (c *OpenAIClient) DetectMarks(ctx context.Context, image []byte, contentType string) (*model.ScanResult, error) {
	var parsed struct {
		Week        *string `json:"week"`
		MarkedCells []struct {
			R json.Number `json:"r"`
			C json.Number `json:"c"`
		} `json:"marked_cells"`
		Confidence *float64 `json:"confidence"`
		Notes      string   `json:"notes"`
	}

	if err := c.ask(ctx, detectMarksPrompt, image, contentType, &parsed); err != nil {
		return nil, err
	}

	result := &model.ScanResult{
		Confidence: 0.5,
		Notes:      parsed.Notes,
	}
	if len(result.Notes) > maxNotesLen {
		result.Notes = result.Notes[:maxNotesLen]
	}
	if parsed.Confidence != nil {
		result.Confidence = clamp(*parsed.Confidence, 0, 1)
	}
	if parsed.Week != nil {
		result.Week = strings.ToLower(strings.Join(strings.Fields(*parsed.Week), ""))
	}

	// Non-integer coordinates are dropped here; range validation is the
	// caller's concern
	for _, cell := range parsed.MarkedCells {
		r, errR := cell.R.Int64()
		col, errC := cell.C.Int64()
		if errR != nil || errC != nil {
			continue
		}
		result.Cells = append(result.Cells, model.Position{Row: int(r), Col: int(col)})
	}

	return result, nil
}

// ReadCardCells asks the model for the printed text of each cell
func (c *OpenAIClient) ReadCardCells(ctx context.Context, image []byte, contentType string) ([]string, error) {
	var parsed struct {
		Cells []string `json:"cells"`
	}

	if err := c.ask(ctx, readCellsPrompt, image, contentType, &parsed); err != nil {
		return nil, err
	}

	if len(parsed.Cells) != model.CellCount {
		return nil, &UpstreamError{
			Reason: "invalid_cells_array",
			Raw:    truncate(fmt.Sprintf("%v", parsed.Cells)),
		}
	}

	return parsed.Cells, nil
}

// ask sends one image-plus-prompt request and decodes the JSON the model
// returns into out
func (c *OpenAIClient) ask(ctx context.Context, prompt string, image []byte, contentType string, out any) error {
	if contentType == "" {
		contentType = "image/jpeg"
	}
	imageURL := fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(image))

	reqBody := map[string]any{
		"model": c.cfg.Model,
		"input": []map[string]any{
			{
				"role": "user",
				"content": []map[string]any{
					{"type": "input_text", "text": prompt},
					{"type": "input_image", "image_url": imageURL},
				},
			},
		},
		"text": map[string]any{"format": map[string]any{"type": "json_object"}},
	}

	data, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal vision request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/responses", bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create vision request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &UpstreamError{Reason: "request_failed", Raw: truncate(err.Error())}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &UpstreamError{Status: resp.StatusCode, Reason: "read_failed"}
	}

	if resp.StatusCode != http.StatusOK {
		return &UpstreamError{Status: resp.StatusCode, Reason: "bad_status", Raw: truncate(string(body))}
	}

	raw := extractResponseText(body)
	cleaned := stripJSONFences(raw)

	if err := json.Unmarshal([]byte(cleaned), out); err != nil {
		c.logger.Warn("vision response was not valid JSON",
			slog.String("raw", truncate(raw)),
		)
		return &UpstreamError{Status: resp.StatusCode, Reason: "bad_json", Raw: truncate(raw)}
	}

	return nil
}

// extractResponseText pulls the model's output text from a Responses API
// payload. Some responses carry a convenience output_text string, others
// only the output message array.
func extractResponseText(body []byte) string {
	var data struct {
		OutputText string `json:"output_text"`
		Output     []struct {
			Type    string `json:"type"`
			Content []struct {
				Text string `json:"text"`
			} `json:"content"`
		} `json:"output"`
	}
	if err := json.Unmarshal(body, &data); err != nil {
		return ""
	}

	if text := strings.TrimSpace(data.OutputText); text != "" {
		return text
	}

	var chunks []string
	for _, item := range data.Output {
		if item.Type != "message" {
			continue
		}
		for _, part := range item.Content {
			if part.Text != "" {
				chunks = append(chunks, part.Text)
			}
		}
	}
	return strings.TrimSpace(strings.Join(chunks, ""))
}

// stripJSONFences removes markdown code fences and keeps the first
// object-looking block when the model returns surrounding prose
func stripJSONFences(s string) string {
	t := strings.TrimSpace(s)

	if strings.HasPrefix(t, "```") {
		t = strings.TrimPrefix(t, "```")
		if idx := strings.IndexByte(t, '\n'); idx >= 0 && !strings.HasPrefix(t, "{") {
			t = t[idx+1:]
		}
		t = strings.TrimSuffix(strings.TrimSpace(t), "```")
		t = strings.TrimSpace(t)
	}

	firstBrace := strings.IndexByte(t, '{')
	lastBrace := strings.LastIndexByte(t, '}')
	if firstBrace >= 0 && lastBrace > firstBrace {
		t = t[firstBrace : lastBrace+1]
	}

	return t
}

func truncate(s string) string {
	if len(s) > maxRawAttached {
		return s[:maxRawAttached]
	}
	return s
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
