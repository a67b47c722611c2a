package interactive

import (
	"context"
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"

	"github.com/agentnft/beaconctl/internal/domain"
	"github.com/agentnft/beaconctl/internal/usecase"
)

// PromptConfirmer asks a yes/no question on the terminal
type PromptConfirmer struct{}

// NewPromptConfirmer creates a confirmer on the process terminal
func NewPromptConfirmer() *PromptConfirmer {
	return &PromptConfirmer{}
}

// Confirm returns true only for an explicit yes
func (c *PromptConfirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	p := promptui.Prompt{
		Label:     prompt,
		IsConfirm: true,
	}

	_, err := p.Run()
	return answer(err)
}

// answer maps the result of a confirm prompt. A "no" (or bare Enter) is a
// regular decline; Ctrl-C and Ctrl-D abort.
func answer(err error) (bool, error) {
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, promptui.ErrAbort):
		return false, nil
	case errors.Is(err, promptui.ErrInterrupt), errors.Is(err, promptui.ErrEOF):
		return false, domain.ErrAborted
	default:
		return false, fmt.Errorf("confirmation prompt failed: %w", err)
	}
}

// Ensure the adapter implements the interface
var _ usecase.Confirmer = (*PromptConfirmer)(nil)
