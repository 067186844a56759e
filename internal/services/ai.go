package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/codebusters-club/recruitment-api/internal/constants"
	"github.com/sashabaranov/go-openai"
)

type AIService struct {
	client *openai.Client
}

// GeneratedTaskDraft is one coding-task draft extracted by the model. Drafts
// go through admin review before entering the catalog.
type GeneratedTaskDraft struct {
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Difficulty       string   `json:"difficulty"`
	Category         string   `json:"category"`
	ProblemStatement string   `json:"problem_statement"`
	Tags             []string `json:"tags"`
}

func NewAIService(apiKey string) *AIService {
	return &AIService{
		client: openai.NewClient(apiKey),
	}
}

// GenerateTaskDrafts analyzes free-form text (a syllabus, a job description,
// interview notes) and drafts coding tasks from it using OpenAI GPT.
func (s *AIService) GenerateTaskDrafts(ctx context.Context, text string) ([]GeneratedTaskDraft, error) {
	if s.client == nil {
		return nil, fmt.Errorf("OpenAI client not initialized")
	}

	prompt := fmt.Sprintf(`You are an assistant that drafts coding challenges for a student club's recruitment process.

Extract concrete coding task ideas from the following text:

%s

Return a JSON array of drafts in exactly this shape:
[
  {
    "title": "short task title",
    "description": "one-paragraph summary of the task",
    "difficulty": "Easy, Medium or Hard",
    "category": "Programming, Algorithm, Database, Web Development, System Design or Other",
    "problem_statement": "the full problem statement a candidate would read",
    "tags": ["lowercase", "topic", "tags"]
  }
]

Rules:
- Return an empty array [] if the text contains no usable task ideas
- Difficulty and category must use exactly one of the listed values
- Return at most %d drafts
- Return the JSON only, with no surrounding prose`, text, constants.MaxAIGeneratedTasks)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)

	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	content := resp.Choices[0].Message.Content

	var drafts []GeneratedTaskDraft
	if err := json.Unmarshal([]byte(content), &drafts); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	if len(drafts) > constants.MaxAIGeneratedTasks {
		drafts = drafts[:constants.MaxAIGeneratedTasks]
	}

	return drafts, nil
}
