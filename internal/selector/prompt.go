package selector

import (
	"errors"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/mattn/go-isatty"
)

const maxVisibleItems = 10

// PromptChooser renders menus with promptui. Menus are drawn on Stdout,
// which is normally os.Stderr so that they do not mix with device data.
type PromptChooser struct {
	Stdin  *os.File
	Stdout *os.File
}

// NewPromptChooser returns a PromptChooser reading keys from stdin and drawing
// on out. It fails with ErrNotInteractive if stdin is not a terminal.
func NewPromptChooser(stdin, out *os.File) (*PromptChooser, error) {
	fd := stdin.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return nil, ErrNotInteractive
	}
	return &PromptChooser{Stdin: stdin, Stdout: out}, nil
}

func (p *PromptChooser) Choose(label string, items []string, def int) (int, error) {
	size := len(items)
	if size > maxVisibleItems {
		size = maxVisibleItems
	}
	if size == 0 {
		// promptui cannot render an empty list
		return -1, errors.New(label + ": nothing to choose from")
	}

	scroll := 0
	if def >= size {
		scroll = def - size + 1
	}

	sel := promptui.Select{
		Label:  label,
		Items:  items,
		Size:   size,
		Stdin:  p.Stdin,
		Stdout: p.Stdout,
	}
	i, _, err := sel.RunCursorAt(def, scroll)
	switch {
	case errors.Is(err, promptui.ErrInterrupt), errors.Is(err, promptui.ErrEOF), errors.Is(err, promptui.ErrAbort):
		return -1, ErrCancelled
	case err != nil:
		return -1, err
	}
	return i, nil
}
