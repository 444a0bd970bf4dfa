package llm

import (
	"context"
	"os/exec"
	"strings"

	"github.com/dhabedank/retailer-check/internal/core"
)

// CodexCLIAdapter uses the Codex CLI for completion.
type CodexCLIAdapter struct {
	model string
	bin   string
}

// NewCodexCLIAdapter creates a Codex CLI adapter.
func NewCodexCLIAdapter(config Config) *CodexCLIAdapter {
	return &CodexCLIAdapter{
		model: config.modelOr("gpt-4o"),
		bin:   "codex",
	}
}

func (a *CodexCLIAdapter) Name() string {
	return "codex-cli"
}

func (a *CodexCLIAdapter) Model() string {
	return a.model
}

// IsAvailable checks if the codex CLI is installed.
func (a *CodexCLIAdapter) IsAvailable() bool {
	_, err := exec.LookPath(a.bin)
	return err == nil
}

func (a *CodexCLIAdapter) Complete(ctx context.Context, req core.CompletionRequest) (string, error) {
	cmd := exec.CommandContext(ctx, a.bin,
		"--model", a.model,
		"--quiet",
	)
	cmd.Stdin = strings.NewReader(req.Prompt)

	return runCLI(cmd, "codex CLI")
}
