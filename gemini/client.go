package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/vertexai/genai"

	"github.com/cvmate/backend/config"
	"github.com/cvmate/backend/models"
)

// Client wraps the Vertex AI Gemini client. All calls are bounded by the
// configured timeout; callers decide whether a failure is surfaced or
// absorbed with fallback content.
type Client struct {
	client    *genai.Client
	modelName string
	timeout   time.Duration
}

// NewClient creates a new Gemini client
func NewClient(ctx context.Context, cfg *config.Config) (*Client, error) {
	client, err := genai.NewClient(ctx, cfg.ProjectID, cfg.Location)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{
		client:    client,
		modelName: cfg.GeminiModel,
		timeout:   time.Duration(cfg.GeminiTimeoutSeconds) * time.Second,
	}, nil
}

// Close closes the Gemini client
func (c *Client) Close() error {
	return c.client.Close()
}

func (c *Client) model() *genai.GenerativeModel {
	model := c.client.GenerativeModel(c.modelName)
	model.SetTemperature(0.7)
	model.SetTopP(0.8)
	model.SetMaxOutputTokens(2048)
	return model
}

// Chat sends a conversation window to Gemini and returns the next
// assistant reply. The first system turn becomes the system instruction;
// the final turn must be the pending user message.
func (c *Client) Chat(ctx context.Context, turns []models.ChatTurn) (string, error) {
	if len(turns) == 0 {
		return "", errors.New("empty conversation window")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	model := c.model()

	var history []*genai.Content
	for _, turn := range turns[:len(turns)-1] {
		switch turn.Role {
		case models.TurnSystem:
			model.SystemInstruction = &genai.Content{
				Parts: []genai.Part{genai.Text(turn.Content)},
			}
		case models.TurnAssistant:
			history = append(history, &genai.Content{
				Role:  "model",
				Parts: []genai.Part{genai.Text(turn.Content)},
			})
		default:
			history = append(history, &genai.Content{
				Role:  "user",
				Parts: []genai.Part{genai.Text(turn.Content)},
			})
		}
	}

	last := turns[len(turns)-1]
	if last.Role != models.TurnUser {
		return "", errors.New("conversation window must end with a user turn")
	}

	session := model.StartChat()
	session.History = history

	resp, err := session.SendMessage(ctx, genai.Text(last.Content))
	if err != nil {
		return "", fmt.Errorf("failed to generate reply: %w", err)
	}

	text := extractText(resp)
	if text == "" {
		return "", errors.New("no response from Gemini")
	}

	return text, nil
}

// Generate sends a single prompt and returns the raw text reply.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.model().GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text := extractText(resp)
	if text == "" {
		return "", errors.New("no response from Gemini")
	}

	return text, nil
}

// EnhanceText rewrites a piece of resume text to be more impactful.
func (c *Client) EnhanceText(ctx context.Context, text, kind string) (string, error) {
	if kind == "" {
		kind = "text"
	}

	prompt := fmt.Sprintf(`Act as a professional resume writer. Enhance the following %s to be more impactful.
- Use strong action verbs.
- Quantify results where possible.
- Fix grammar and improve flow.
- Keep it concise and professional.

Original Text: "%s"

Return ONLY the enhanced text, no explanation.`, kind, text)

	return c.Generate(ctx, prompt)
}

// AnalyzeResume scores a serialized resume for ATS compatibility.
func (c *Client) AnalyzeResume(ctx context.Context, resumeJSON string) (*models.ResumeAnalysis, error) {
	// Keep the prompt bounded for very large resumes
	if len(resumeJSON) > 3000 {
		resumeJSON = resumeJSON[:3000]
	}

	prompt := fmt.Sprintf(`Analyze this resume JSON data for ATS (Applicant Tracking System) compatibility and general quality.
Return a JSON object with:
1. "score" (0-100)
2. "strengths" (array of strings)
3. "improvements" (array of strings)
4. "summary" (short feedback)

Resume Data:
%s

Return ONLY the JSON object, no markdown formatting, no explanation.`, resumeJSON)

	reply, err := c.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var analysis models.ResumeAnalysis
	if err := json.Unmarshal([]byte(cleanJSON(reply)), &analysis); err != nil {
		return nil, fmt.Errorf("failed to parse analysis JSON: %w", err)
	}

	return &analysis, nil
}

// SummarizeArticle produces a three-line summary of article content.
func (c *Client) SummarizeArticle(ctx context.Context, content string) (string, error) {
	if len(content) > 1000 {
		content = content[:1000]
	}

	return c.Generate(ctx, fmt.Sprintf("Summarize this article in 3 lines: %s", content))
}

// Helper functions

func extractText(resp *genai.GenerateContentResponse) string {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return sb.String()
}

func cleanJSON(text string) string {
	// Remove markdown code blocks if present
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
