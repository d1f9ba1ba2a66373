package recommend

import (
	"context"
	"fmt"
	"strings"

	"staywise/models"
	"staywise/services/availability"
	"staywise/utils"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiClient wraps the generative model used for room recommendations.
type GeminiClient struct {
	model *genai.GenerativeModel
}

func NewGeminiClient(apiKey string) *GeminiClient {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		panic(fmt.Sprintf("failed to create Gemini client: %v", err))
	}

	model := client.GenerativeModel("models/gemini-1.5-pro")
	return &GeminiClient{model: model}
}

func (g *GeminiClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate error: %w", err)
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return sb.String(), nil
}

// ContentGenerator abstracts the model call for tests.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Service turns the available-room list and the client's stated preferences
// into a natural-language recommendation.
type Service struct {
	Availability *availability.Resolver
	Generator    ContentGenerator
}

func NewService(resolver *availability.Resolver, generator ContentGenerator) *Service {
	return &Service{Availability: resolver, Generator: generator}
}

func (s *Service) RecommendRooms(ctx context.Context, startDate, endDate string, minOccupancy int, preferences string) (string, error) {
	quotes, err := s.Availability.Search(ctx, startDate, endDate, minOccupancy)
	if err != nil {
		return "", err
	}

	text, err := s.Generator.GenerateContent(ctx, buildPrompt(quotes, preferences))
	if err != nil {
		return "", utils.NewDomainError(utils.KindUpstream, "recommendation service unavailable")
	}
	return text, nil
}

func buildPrompt(quotes []models.RoomQuote, preferences string) string {
	var sb strings.Builder
	sb.WriteString("Available rooms:\n")
	for _, q := range quotes {
		sb.WriteString(fmt.Sprintf("Room %s on floor %d, max occupancy: %d, type %s, price for the stay: %d.\n",
			q.Room.RoomNr, q.Room.Floor, q.Room.MaxOccupancy, q.Room.RoomType, q.Price))
	}
	sb.WriteString("\nClient preferences: ")
	sb.WriteString(preferences)
	sb.WriteString("\nRecommend the best room for the client.")
	return sb.String()
}
