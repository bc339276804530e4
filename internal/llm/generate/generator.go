package generate

import "context"

// Generator is the capability boundary to the remote text-generation
// provider: one prompt in, one generated text out. Tests substitute a
// deterministic in-memory implementation.
type Generator interface {
	Generate(ctx context.Context, system, user string) (string, error)
}

// Params are the generation parameters shared by every backend.
type Params struct {
	DecodingMethod string
	MaxNewTokens   int
}

func DefaultParams() Params {
	return Params{
		DecodingMethod: "greedy",
		MaxNewTokens:   512,
	}
}
