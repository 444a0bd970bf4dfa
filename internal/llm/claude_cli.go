package llm

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/dhabedank/retailer-check/internal/core"
)

// ClaudeCLIAdapter uses the Claude Code CLI for completion.
// Users who have it installed are already authenticated.
type ClaudeCLIAdapter struct {
	model string
	bin   string
}

// NewClaudeCLIAdapter creates a Claude CLI adapter.
func NewClaudeCLIAdapter(config Config) *ClaudeCLIAdapter {
	return &ClaudeCLIAdapter{
		model: config.modelOr(defaultAnthropicModel),
		bin:   "claude",
	}
}

func (a *ClaudeCLIAdapter) Name() string {
	return "claude-cli"
}

func (a *ClaudeCLIAdapter) Model() string {
	return a.model
}

// IsAvailable checks if the claude CLI is installed.
func (a *ClaudeCLIAdapter) IsAvailable() bool {
	_, err := exec.LookPath(a.bin)
	return err == nil
}

func (a *ClaudeCLIAdapter) Complete(ctx context.Context, req core.CompletionRequest) (string, error) {
	// claude --model <model> --print --output-format text, prompt on stdin
	cmd := exec.CommandContext(ctx, a.bin,
		"--model", a.model,
		"--print",
		"--output-format", "text",
	)
	cmd.Stdin = strings.NewReader(req.Prompt)

	return runCLI(cmd, "claude CLI")
}

// runCLI runs cmd and returns its stdout as an answer.
func runCLI(cmd *exec.Cmd, what string) (string, error) {
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", fmt.Errorf("%s failed: %s", what, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("%s failed: %w", what, err)
	}
	return answerText(string(output)), nil
}
