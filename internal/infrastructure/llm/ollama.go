package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"screenhub/internal/config"
)

var (
	// ErrUnavailable means the model endpoint could not be reached at all.
	ErrUnavailable = errors.New("question generator unavailable")
	// ErrUnusableOutput means the model answered but nothing parseable came
	// back, even through the fallback.
	ErrUnusableOutput = errors.New("question generator returned unusable output")
)

// QuestionGenerator produces screening question texts from a job
// description.
type QuestionGenerator interface {
	GenerateQuestions(ctx context.Context, jobDescription string) ([]string, error)
}

type OllamaClient struct {
	baseURL string
	model   string
	client  *http.Client
	logger  *log.Logger
}

func NewOllamaClient(cfg config.OllamaConfig, logger *log.Logger) *OllamaClient {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		return nil
	}
	return &OllamaClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   cfg.Model,
		client:  &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}
}

const generatePrompt = `Based on the following job description, generate 5 relevant text-based screening questions for a potential candidate.

IMPORTANT INSTRUCTIONS:
- You MUST return ONLY a valid JSON array of objects.
- Each object in the array must have a single key named "question_text".
- Do NOT include any introductory text, explanations, numbering, or markdown in your response.

EXAMPLE FORMAT:
[
    {"question_text": "What is your experience with Go?"},
    {"question_text": "Describe a service you ran in production."}
]

JOB DESCRIPTION:
%s`

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Message chatMessage `json:"message"`
}

func (c *OllamaClient) GenerateQuestions(ctx context.Context, jobDescription string) ([]string, error) {
	if c == nil || c.client == nil {
		return nil, ErrUnavailable
	}

	body := chatRequest{
		Model:    c.model,
		Messages: []chatMessage{{Role: "user", Content: fmt.Sprintf(generatePrompt, jobDescription)}},
		Stream:   false,
	}
	b, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		if c.logger != nil {
			c.logger.Printf("[LLM] chat request failed: %v", err)
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if c.logger != nil {
			c.logger.Printf("[LLM] chat request status=%d body=%q", resp.StatusCode, strings.TrimSpace(string(rb)))
		}
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnusableOutput, err)
	}

	questions := ParseQuestionTexts(out.Message.Content)
	if len(questions) == 0 {
		return nil, ErrUnusableOutput
	}
	return questions, nil
}

type generatedQuestion struct {
	QuestionText string `json:"question_text"`
}

// ParseQuestionTexts extracts question texts from raw model output. It first
// expects a JSON array of {question_text}; when the model ignores its
// instructions, it falls back to taking lines that contain a question mark.
func ParseQuestionTexts(raw string) []string {
	raw = stripFences(raw)

	var parsed []generatedQuestion
	if err := json.Unmarshal([]byte(raw), &parsed); err == nil {
		out := make([]string, 0, len(parsed))
		for _, q := range parsed {
			text := strings.TrimSpace(q.QuestionText)
			if text == "" {
				continue
			}
			out = append(out, text)
		}
		if len(out) > 0 {
			return out
		}
	}

	var out []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !strings.Contains(line, "?") {
			continue
		}
		out = append(out, line)
	}
	return out
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
