package review

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNoAnswer is returned when input ends before an answer is given
var ErrNoAnswer = errors.New("no answer: input closed")

// Prompt asks a human on the terminal. An answer of "y" (any case) means
// complete; anything else means incomplete.
type Prompt struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompt creates a prompt reviewer reading answers from in and writing
// questions to out
func NewPrompt(in io.Reader, out io.Writer) *Prompt {
	return &Prompt{in: bufio.NewReader(in), out: out}
}

// EntityStarted prints the entity heading
func (p *Prompt) EntityStarted(entity string) {
	fmt.Fprintf(p.out, "\nEntity: %s\n", entity)
}

// Skipped notes a predicate that has no values
func (p *Prompt) Skipped(entity, predicate string) {
	fmt.Fprintf(p.out, "  Predicate '%s' has no values (not closed)\n", predicate)
}

// Review shows the values and reads a y/n answer
func (p *Prompt) Review(ctx context.Context, item Item) (bool, error) {
	fmt.Fprintf(p.out, "  Predicate: %s\n", item.Predicate)
	fmt.Fprintf(p.out, "  Values:\n")
	for _, v := range item.Values {
		fmt.Fprintf(p.out, "    - %s\n", v)
	}
	fmt.Fprintf(p.out, "  Is this predicate complete? (y/n): ")

	line, err := p.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return false, fmt.Errorf("read answer: %w", err)
		}
		if line == "" {
			return false, ErrNoAnswer
		}
	}
	return strings.ToLower(strings.TrimSpace(line)) == "y", nil
}
