package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/daveklee/calorieclimb.com/models"
)

const (
	DefaultNarrativeBaseURL = "https://api.perplexity.ai"
	DefaultNarrativeModel   = "llama-3.1-sonar-small-128k-online"

	narrativeSystemPrompt = "You are a fun, educational nutrition assistant for kids. Always be encouraging, use simple language, and make learning about food fun and engaging. Keep responses to 2-3 sentences maximum."
	narrativeFallback     = "Great choice! Keep exploring different foods!"
)

// NarrativeSource writes a short kid-friendly message about a move.
type NarrativeSource interface {
	Generate(ctx context.Context, req models.NarrativeRequest) (string, error)
}

// NarrativeService talks to an OpenAI-compatible chat completions API.
type NarrativeService struct {
	client  *http.Client
	baseURL string
	token   string
	model   string
}

func NewNarrativeService(baseURL, token, model string) *NarrativeService {
	if baseURL == "" {
		baseURL = DefaultNarrativeBaseURL
	}
	if model == "" {
		model = DefaultNarrativeModel
	}
	return &NarrativeService{
		client:  &http.Client{Timeout: 15 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		model:   model,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

func (n *NarrativeService) Generate(ctx context.Context, nr models.NarrativeRequest) (string, error) {
	if n.token == "" {
		return "", fmt.Errorf("narrative API token not set")
	}

	prompt := buildFeedbackPrompt(nr)
	if nr.Mode == models.NarrativeGameOver {
		prompt = buildGameOverPrompt(nr)
	}

	b, err := json.Marshal(chatRequest{
		Model: n.model,
		Messages: []chatMessage{
			{Role: "system", Content: narrativeSystemPrompt},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   150,
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal narrative payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.baseURL+"/chat/completions", bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("failed to create narrative request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+n.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("narrative request error: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read narrative response error: %w", err)
	}

	// Non-200: surface the provider's error text, which comes either as
	// {"error": "..."} or {"error": {"message": "..."}}.
	if resp.StatusCode != http.StatusOK {
		msg := gjson.GetBytes(body, "error.message").String()
		if msg == "" {
			msg = gjson.GetBytes(body, "error").String()
		}
		if msg == "" {
			msg = string(body)
		}
		return "", fmt.Errorf("narrative api error (%d): %s", resp.StatusCode, msg)
	}

	msg := strings.TrimSpace(gjson.GetBytes(body, "choices.0.message.content").String())
	if msg == "" {
		return narrativeFallback, nil
	}
	return msg, nil
}

func buildFeedbackPrompt(r models.NarrativeRequest) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "A kid just chose to eat %q which has %d calories. ", r.CurrentFood, r.CurrentCalories)
	if r.PreviousFood != nil && r.PreviousCalories != nil {
		fmt.Fprintf(&sb, "Before this, they ate %q which had %d calories. ", *r.PreviousFood, *r.PreviousCalories)
		if r.CurrentCalories > *r.PreviousCalories {
			sb.WriteString("The new food has more calories, so the game continues! ")
		}
	}
	if r.IsHealthy {
		sb.WriteString("This is a healthy choice! ")
	} else {
		sb.WriteString("This isn't the healthiest option, but it's okay sometimes! ")
	}
	sb.WriteString("Give a fun, encouraging response about this food choice that teaches kids about nutrition. Keep it simple and positive!")
	return sb.String()
}

func buildGameOverPrompt(r models.NarrativeRequest) string {
	return fmt.Sprintf("A kid's nutrition game just ended. %s They ate %d total calories from these foods: %s. Give a fun, educational message about what happened and encourage them to try again with healthier choices. Keep it positive and kid-friendly, 2-3 sentences max.",
		r.Reason, r.TotalCalories, strings.Join(r.FoodsEaten, ", "))
}
