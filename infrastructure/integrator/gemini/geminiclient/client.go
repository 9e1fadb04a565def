package geminiclient

import (
	"context"
	"errors"
	"time"

	"github.com/vfg2006/agency-ratecard-api/internal/config"
	"google.golang.org/genai"
)

var ErrMissingAPIKey = errors.New("gemini: api key is not configured")

// InlineFile is a binary attachment sent alongside the prompt.
type InlineFile struct {
	Data     []byte
	MimeType string
}

// Request is a single JSON-mode generation call.
type Request struct {
	Model             string
	SystemInstruction string
	Prompt            string
	Files             []InlineFile
	Schema            *genai.Schema
}

type Client interface {
	// GenerateJSON returns the raw text of the first candidate.
	GenerateJSON(ctx context.Context, req Request) (string, error)
}

type GeminiClient struct {
	models  *genai.Models
	timeout time.Duration
}

func NewClient(ctx context.Context, cfg config.Gemini) (Client, error) {
	return newClient(ctx, cfg, genai.HTTPOptions{})
}

func newClient(ctx context.Context, cfg config.Gemini, httpOptions genai.HTTPOptions) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: httpOptions,
	})
	if err != nil {
		return nil, err
	}

	return &GeminiClient{
		models:  client.Models,
		timeout: cfg.Timeout,
	}, nil
}

func (c *GeminiClient) GenerateJSON(ctx context.Context, req Request) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	parts := []*genai.Part{genai.NewPartFromText(req.Prompt)}
	for _, file := range req.Files {
		parts = append(parts, genai.NewPartFromBytes(file.Data, file.MimeType))
	}

	generationConfig := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   req.Schema,
	}
	if req.SystemInstruction != "" {
		generationConfig.SystemInstruction = genai.NewContentFromText(req.SystemInstruction, genai.RoleUser)
	}

	resp, err := c.models.GenerateContent(ctx, req.Model,
		[]*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)},
		generationConfig,
	)
	if err != nil {
		return "", err
	}

	return resp.Text(), nil
}

type unavailableClient struct {
	err error
}

// Unavailable returns a Client that fails every call with err. It keeps the API
// serving catalog and history routes when no key is configured.
func Unavailable(err error) Client {
	return unavailableClient{err: err}
}

func (c unavailableClient) GenerateJSON(context.Context, Request) (string, error) {
	return "", c.err
}
