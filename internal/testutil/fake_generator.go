// Package testutil provides a deterministic stand-in for the remote
// generation endpoint so tests never touch the network.
package testutil

import (
	"context"
	"fmt"
	"sync"
)

// GeneratorCall records one prompt pair handed to the fake.
type GeneratorCall struct {
	System string
	User   string
}

// FakeGenerator implements generate.Generator. When GenerateFunc is unset it
// returns a deterministic summary derived from the call count.
type FakeGenerator struct {
	GenerateFunc func(ctx context.Context, system, user string) (string, error)

	mu    sync.Mutex
	calls []GeneratorCall
}

func (f *FakeGenerator) Generate(ctx context.Context, system, user string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, GeneratorCall{System: system, User: user})
	n := len(f.calls)
	f.mu.Unlock()

	if f.GenerateFunc != nil {
		return f.GenerateFunc(ctx, system, user)
	}
	return fmt.Sprintf("generated summary %d", n), nil
}

// Calls returns a copy of the recorded prompt pairs in call order.
func (f *FakeGenerator) Calls() []GeneratorCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]GeneratorCall, len(f.calls))
	copy(out, f.calls)
	return out
}
