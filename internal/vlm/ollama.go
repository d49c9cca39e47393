package vlm

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/agent-api/core/pkg/agent"
	"github.com/agent-api/core/types"
	"github.com/agent-api/ollama"
)

const systemPrompt = "You are a visual analysis assistant specialized in egocentric construction footage. Follow the analysis instructions exactly and answer in the requested format."

// OllamaOptions configure the Ollama-backed adapter.
type OllamaOptions struct {
	BaseURL string
	Port    int
	Model   string
}

// OllamaClient adapts an Ollama vision model to the Client capability.
type OllamaClient struct {
	agent  *agent.DefaultAgent
	logger *slog.Logger
}

// NewOllamaClient initializes the adapter. An unreachable service is fatal
// here: no chunk could possibly succeed against a dead endpoint.
func NewOllamaClient(ctx context.Context, opts OllamaOptions, logger *slog.Logger) (*OllamaClient, error) {
	// Check if Ollama is running before wiring the provider.
	probe := fmt.Sprintf("%s:%d/api/tags", opts.BaseURL, opts.Port)
	if _, err := exec.Command("curl", "-s", probe).Output(); err != nil {
		return nil, fmt.Errorf("ollama is not reachable at %s: %w", probe, err)
	}

	provider := ollama.NewProvider(&ollama.ProviderOpts{
		Logger:  logger,
		BaseURL: opts.BaseURL,
		Port:    opts.Port,
	})
	provider.UseModel(ctx, &types.Model{ID: opts.Model})

	agentConf := &agent.NewAgentConfig{
		Provider:     provider,
		Logger:       logger,
		SystemPrompt: systemPrompt,
	}
	return &OllamaClient{agent: agent.NewAgent(agentConf), logger: logger}, nil
}

// Infer submits the chunk's frames and prompt, returning the model's text.
// The agent-api Ollama provider pins generation parameters at the provider
// level; the requested params are surfaced in debug logs for diagnosis.
func (c *OllamaClient) Infer(ctx context.Context, req Request) (string, error) {
	c.logger.Debug("submitting inference request",
		"images", len(req.Images),
		"temperature", req.Params.Temperature,
		"max_output_tokens", req.Params.MaxOutputTokens)

	runOpts := []agent.RunOptionFunc{agent.WithInput(req.Prompt)}
	for _, img := range req.Images {
		runOpts = append(runOpts, agent.WithImagePath(img))
	}

	response := c.agent.Run(ctx, runOpts...)
	if response.Err != nil {
		return "", classifyErr(response.Err)
	}
	if len(response.Messages) == 0 {
		return "", &ServiceError{Message: "no response messages received from model"}
	}

	content := strings.TrimSpace(response.Messages[len(response.Messages)-1].Content)
	c.logger.Debug("raw response content", "content", content)
	return content, nil
}
