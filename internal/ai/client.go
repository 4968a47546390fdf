// Package ai wraps the hosted Gemini model: structured project-detail
// generation and freeform playground text. Each call is one
// request/response round trip with no retry, caching or streaming.
package ai

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

const defaultModel = "gemini-2.5-flash"

const projectSystemPrompt = `You are an expert project manager. A user will provide a prompt describing a project.
Your task is to analyze the prompt and extract the following information:
1. A clear and concise project 'name'.
2. A one or two sentence 'description' of the project.
3. The project's current 'status'. The options are "Not Started", "In Progress", or "Completed". Default to "Not Started" if the user does not specify a status.

Analyze the user's prompt carefully to generate the most accurate project details.`

const playgroundSystemPrompt = `You are a helpful assistant. Please respond to the user's prompt.`

// projectDetailsSchema is attached to the generation request as the
// output contract; the model must answer with a conforming JSON
// object or the call fails.
var projectDetailsSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"name": {
			Type:        genai.TypeString,
			Description: "A concise and clear name for the project, derived from the user prompt.",
		},
		"description": {
			Type:        genai.TypeString,
			Description: "A one or two sentence description of the project.",
		},
		"status": {
			Type:        genai.TypeString,
			Enum:        []string{"Not Started", "In Progress", "Completed"},
			Description: `The current status of the project. Default to "Not Started" unless specified otherwise.`,
		},
	},
	Required: []string{"name", "description", "status"},
}

// Client talks to the Gemini API.
type Client struct {
	genai *genai.Client
	model string
}

// NewClient creates a Gemini client. The API key is required; absence
// must disable the AI flows explicitly rather than letting them
// silently no-op.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	if model == "" {
		model = defaultModel
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{genai: gc, model: model}, nil
}

// GenerateProjectDetails turns one free-text prompt into structured
// project details matching the attached schema.
func (c *Client) GenerateProjectDetails(ctx context.Context, prompt string) (*ProjectDetails, error) {
	resp, err := c.genai.Models.GenerateContent(ctx,
		c.model,
		genai.Text("User Prompt: "+prompt),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(projectSystemPrompt, genai.RoleUser),
			ResponseMIMEType:  "application/json",
			ResponseSchema:    projectDetailsSchema,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("generate project details: %w", err)
	}
	return ParseProjectDetails(resp.Text())
}

// SimpleText answers a freeform playground prompt with plain text.
func (c *Client) SimpleText(ctx context.Context, prompt string) (string, error) {
	resp, err := c.genai.Models.GenerateContent(ctx,
		c.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(playgroundSystemPrompt, genai.RoleUser),
		},
	)
	if err != nil {
		return "", fmt.Errorf("generate text: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", ErrNoOutput
	}
	return text, nil
}
