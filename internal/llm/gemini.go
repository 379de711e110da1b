package llm

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"
)

const adviseTimeout = 30 * time.Second

const advisePrompt = `Você é um consultor financeiro pessoal. Analise o resumo
financeiro abaixo e responda em português com recomendações práticas e
objetivas: onde cortar gastos, como lidar com as dívidas e quanto poupar.

%s`

// GeminiAdvisor generates recommendations with the Gemini API.
type GeminiAdvisor struct {
	client *genai.Client
	model  string
}

func NewGeminiAdvisor(ctx context.Context, apiKey, model string) (*GeminiAdvisor, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: api key not set")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	return &GeminiAdvisor{client: client, model: model}, nil
}

func (g *GeminiAdvisor) Advise(ctx context.Context, summary string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, adviseTimeout)
	defer cancel()
	resp, err := g.client.Models.GenerateContent(ctx, g.model,
		genai.Text(fmt.Sprintf(advisePrompt, summary)), nil)
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	return resp.Text(), nil
}
