package llm

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net"
	"strings"

	"google.golang.org/genai"

	"scholar-ai/backend/internal/model"
)

// Failure variants for engine calls. Classification happens exactly once, at
// this boundary; callers branch with errors.Is instead of re-parsing error
// text.
var (
	// ErrCredential covers a missing, invalid or rejected API key.
	ErrCredential = errors.New("llm: invalid or missing credential")
	// ErrConnectivity covers transport-level failures reaching the engine.
	ErrConnectivity = errors.New("llm: engine unreachable")
	// ErrEmptyResponse covers a transport-level success that carried no text.
	ErrEmptyResponse = errors.New("llm: empty response from engine")
)

// Message is one role-tagged history entry, using this application's roles.
// The provider maps them to the engine's wire roles.
type Message struct {
	Role    model.Role
	Content string
}

// GenerateRequest describes one whole request/response cycle with the engine.
type GenerateRequest struct {
	SystemInstruction string
	History           []Message
	Prompt            string
	Attachment        *model.AttachmentPayload
	Temperature       float32
	TopP              float32
	EnableSearch      bool
}

// GenerateResponse is the awaited-whole result of a generate call.
type GenerateResponse struct {
	Text          string
	GroundingURLs []model.GroundingURL
}

// Provider defines the interface for interacting with the remote engine.
type Provider interface {
	Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error)
}

type geminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider creates a Provider backed by the Gemini API.
func NewGeminiProvider(ctx context.Context, apiKey, modelName string) (Provider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Gemini client: %w", err)
	}
	return &geminiProvider{client: client, model: modelName}, nil
}

func (p *geminiProvider) Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error) {
	contents, err := buildContents(req)
	if err != nil {
		return nil, err
	}

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(req.SystemInstruction, genai.RoleUser),
		Temperature:       genai.Ptr(req.Temperature),
		TopP:              genai.Ptr(req.TopP),
	}
	if req.EnableSearch {
		cfg.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.model, contents, cfg)
	if err != nil {
		return nil, classifyErr(err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyResponse
	}

	return &GenerateResponse{
		Text:          text,
		GroundingURLs: extractGrounding(resp),
	}, nil
}

// buildContents converts history plus the current prompt (and optional inline
// attachment) into engine contents. The internal assistant role maps to the
// engine's "model" role; user stays user.
func buildContents(req *GenerateRequest) ([]*genai.Content, error) {
	var contents []*genai.Content
	for _, m := range req.History {
		contents = append(contents, genai.NewContentFromText(m.Content, wireRole(m.Role)))
	}

	parts := []*genai.Part{genai.NewPartFromText(req.Prompt)}
	if req.Attachment != nil {
		raw, err := base64.StdEncoding.DecodeString(req.Attachment.Data)
		if err != nil {
			return nil, fmt.Errorf("could not decode attachment payload: %w", err)
		}
		parts = append(parts, genai.NewPartFromBytes(raw, req.Attachment.MIMEType))
	}
	contents = append(contents, genai.NewContentFromParts(parts, genai.RoleUser))

	return contents, nil
}

func wireRole(r model.Role) genai.Role {
	if r == model.RoleAssistant {
		return genai.RoleModel
	}
	return genai.RoleUser
}

// extractGrounding pulls web citations out of the response metadata, keeping
// only chunks that actually carry a web URI and preserving their order. A
// chunk with no title falls back to its URI.
func extractGrounding(resp *genai.GenerateContentResponse) []model.GroundingURL {
	if len(resp.Candidates) == 0 || resp.Candidates[0].GroundingMetadata == nil {
		return nil
	}

	var urls []model.GroundingURL
	for _, chunk := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
		if chunk == nil || chunk.Web == nil || chunk.Web.URI == "" {
			continue
		}
		title := chunk.Web.Title
		if title == "" {
			title = chunk.Web.URI
		}
		urls = append(urls, model.GroundingURL{URI: chunk.Web.URI, Title: title})
	}
	return urls
}

// classifyErr tags an engine call failure once, at the boundary. Beyond the
// typed network check this is substring matching on the engine's error text,
// which is the only signal the API exposes for credential problems.
func classifyErr(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", ErrConnectivity, err)
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "API_KEY") ||
		strings.Contains(msg, "API key") ||
		strings.Contains(msg, "PERMISSION_DENIED") ||
		strings.Contains(msg, "UNAUTHENTICATED"):
		return fmt.Errorf("%w: %v", ErrCredential, err)
	case strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "no such host") ||
		strings.Contains(msg, "context deadline exceeded"):
		return fmt.Errorf("%w: %v", ErrConnectivity, err)
	default:
		return err
	}
}
