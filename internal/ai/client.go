package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

// DefaultModel is used when the settings carry no model name.
const DefaultModel = "gemini-2.0-flash"

// DefaultTimeout bounds a single assistant call.
const DefaultTimeout = 30 * time.Second

const systemPrompt = "Você é um analista financeiro. Responda em português, " +
	"de forma objetiva, usando apenas os dados do resumo abaixo. " +
	"Se o resumo não cobrir a pergunta, diga isso explicitamente."

// Generator is the outbound model call. The concrete implementation talks to
// Gemini; tests stub it.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Client asks a question against a prepared financial context.
type Client struct {
	gen     Generator
	timeout time.Duration
}

// NewClient builds a client over any Generator. A non-positive timeout falls
// back to DefaultTimeout.
func NewClient(gen Generator, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{gen: gen, timeout: timeout}
}

// Ask sends the context plus question as a single prompt and returns the
// assistant's display text verbatim.
func (c *Client) Ask(ctx context.Context, financialContext, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", fmt.Errorf("ask: empty question")
	}

	prompt := systemPrompt + "\n\n" + financialContext + "\nPERGUNTA: " + question

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	answer, err := c.gen.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("ask: generate: %w", err)
	}
	if strings.TrimSpace(answer) == "" {
		return "", fmt.Errorf("ask: empty response from model")
	}
	return answer, nil
}

// GeminiGenerator is the production Generator backed by google.golang.org/genai.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator creates the Gemini-backed generator. Credentials come
// from the environment, as the SDK resolves them.
func NewGeminiGenerator(ctx context.Context, model string) (*GeminiGenerator, error) {
	if model == "" {
		model = DefaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &GeminiGenerator{client: client, model: model}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}
