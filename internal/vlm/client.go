// Package vlm is the boundary to the external multimodal inference service.
// The pipeline depends only on the Client capability: given ordered images
// and a prompt, return text. Concrete adapters live alongside it.
package vlm

import "context"

// Params are the generation parameters sent with each request.
type Params struct {
	Temperature     float64
	MaxOutputTokens int
}

// Request is one inference call: ordered image paths plus a text prompt.
type Request struct {
	Images []string
	Prompt string
	Params Params
}

// Client is the single capability the pipeline requires of a backing model.
// Implementations return *RateLimitError when the service signals quota
// exhaustion and *ServiceError for any other remote failure.
type Client interface {
	Infer(ctx context.Context, req Request) (string, error)
}
