package thumbnail

import (
	"context"
	"errors"
	"fmt"

	"github.com/nguyentantai21042004/tts-flow/pkg/executor"
)

// cliModel pipes the prompt into the Gemini CLI and returns its stdout.
type cliModel struct {
	exec   executor.Executor
	binary string
}

func (m *cliModel) Complete(ctx context.Context, prompt string) (string, error) {
	out, err := m.exec.ExecuteWithInput(ctx, prompt, m.binary)
	if err != nil {
		if errors.Is(err, executor.ErrNotFound) {
			return "", fmt.Errorf("make sure the Gemini CLI is installed and in your PATH: %w", err)
		}
		return "", fmt.Errorf("execute gemini cli: %w", err)
	}
	return out, nil
}
