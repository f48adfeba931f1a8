package concierge

import (
	"context"
	"fmt"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"railbot/models"
)

// GeminiClient wraps the generative model used for concierge turns.
type GeminiClient struct {
	client    *genai.Client
	modelName string
}

// NewGeminiClient connects to the Gemini API.
func NewGeminiClient(ctx context.Context, apiKey, modelName string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiClient{client: client, modelName: modelName}, nil
}

// Close releases the underlying connection.
func (g *GeminiClient) Close() error {
	return g.client.Close()
}

// startChat builds a chat session with the concierge instruction, the railway
// tools and the given history window.
func (g *GeminiClient) startChat(systemInstruction string, history []*genai.Content) *genai.ChatSession {
	model := g.client.GenerativeModel(g.modelName)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemInstruction)}}
	model.Tools = []*genai.Tool{railwayTools()}
	model.SetTemperature(0.7)

	cs := model.StartChat()
	cs.History = history
	return cs
}

// chatHistory converts persisted turns into model history, one user/model
// content pair per turn.
func chatHistory(turns []models.ChatTurn) []*genai.Content {
	history := make([]*genai.Content, 0, 2*len(turns))
	for _, turn := range turns {
		history = append(history,
			&genai.Content{Role: "user", Parts: []genai.Part{genai.Text(turn.User)}},
			&genai.Content{Role: "model", Parts: []genai.Part{genai.Text(turn.Bot)}},
		)
	}
	return history
}
