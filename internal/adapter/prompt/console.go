// Package prompt asks the operator questions on a terminal.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"kasubs/internal/domain/ports"
)

// Console implements ports.Confirmer over a reader/writer pair, usually
// stdin and stderr.
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

var _ ports.Confirmer = (*Console)(nil)

// NewConsole creates a console confirmer.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out}
}

// Confirm prints question and reads answers until one is "yes" or "no".
// Input ending without an answer counts as "no".
func (c *Console) Confirm(ctx context.Context, question string) (bool, error) {
	fmt.Fprintf(c.out, "%s [yes/no]\n", question)
	for {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		fmt.Fprint(c.out, "--> ")

		line, err := c.in.ReadString('\n')
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "yes", "y":
			return true, nil
		case "no", "n":
			return false, nil
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(c.out)
				return false, nil
			}
			return false, fmt.Errorf("read answer: %w", err)
		}
		fmt.Fprintln(c.out, "Please enter yes or no.")
	}
}
