package interactive

import (
	"context"
	"fmt"
	"io"

	"github.com/chzyer/readline"
)

// Prompt reads commands from the terminal with line editing and history.
type Prompt struct {
	rl *readline.Instance
}

// New creates a prompt on the process terminal.
func New() (*Prompt, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "countdown> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete: readline.NewPrefixCompleter(
			readline.PcItem("start"),
			readline.PcItem("status"),
			readline.PcItem("up"),
			readline.PcItem("tick"),
			readline.PcItem("duration"),
			readline.PcItem("help"),
			readline.PcItem("quit"),
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	return &Prompt{rl: rl}, nil
}

// Stdout returns a writer that properly coordinates with the readline input.
// Use this for log output to avoid interfering with the command prompt.
func (p *Prompt) Stdout() io.Writer {
	return p.rl.Stdout()
}

// Stderr returns a writer that properly coordinates with the readline input.
func (p *Prompt) Stderr() io.Writer {
	return p.rl.Stderr()
}

// Close releases the terminal. It is safe to call after Run returns.
func (p *Prompt) Close() error {
	return p.rl.Close()
}

// Run reads and executes commands until quit, EOF or ctx is done.
func (p *Prompt) Run(ctx context.Context, cancel context.CancelFunc, s *Session) {
	defer p.rl.Close()

	printHelp(p.rl.Stdout())

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := p.rl.Readline()
		if err != nil {
			// Ctrl-C clears the line; EOF exits.
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(p.rl.Stdout(), "Exiting...")
			cancel()
			return
		}

		if s.Exec(line, p.rl.Stdout()) {
			fmt.Fprintln(p.rl.Stdout(), "Exiting...")
			cancel()
			return
		}
	}
}
