package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
)

func shellCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Run commands interactively",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rl, err := readline.NewEx(&readline.Config{
				Prompt:            "\033[1;36mbooking>\033[0m ",
				HistoryFile:       filepath.Join(a.opts.SessionDir, "history"),
				InterruptPrompt:   "^C",
				EOFPrompt:         "exit",
				HistorySearchFold: true,
			})
			if err != nil {
				return fmt.Errorf("failed to initialize readline: %w", err)
			}
			defer rl.Close()

			a.rl = rl
			defer func() { a.rl = nil }()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Type 'help' for commands, 'exit' to quit.")

			defaults := a.opts

			for {
				line, err := rl.Readline()
				if errors.Is(err, readline.ErrInterrupt) {
					continue
				}
				if errors.Is(err, io.EOF) {
					return nil
				}
				if err != nil {
					return err
				}

				args, err := splitArgs(line)
				if err != nil {
					fmt.Fprintf(out, "Error: %v\n", err)
					continue
				}
				if len(args) == 0 {
					continue
				}

				switch args[0] {
				case "exit", "quit", `\q`:
					return nil
				case "shell":
					continue
				}

				if err := a.runLine(cmd.Context(), defaults, args, out); err != nil {
					fmt.Fprintf(out, "Error: %v\n", err)
				}
			}
		},
	}
}

// runLine executes one shell line. Flags given on the line apply to that line
// only, everything else keeps the options the shell was started with.
func (a *App) runLine(ctx context.Context, defaults Options, args []string, out io.Writer) error {
	sub := NewRootCommand(a)
	// NewRootCommand resets the flag targets to their defaults
	a.opts = defaults
	defer func() { a.opts = defaults }()

	sub.SetArgs(args)
	sub.SetOut(out)
	sub.SetErr(out)

	return sub.ExecuteContext(ctx)
}

// splitArgs splits a shell line on spaces, honouring single and double quotes.
func splitArgs(line string) ([]string, error) {
	var (
		args    []string
		current strings.Builder
		quote   rune
		inArg   bool
	)

	for _, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
				continue
			}
			current.WriteRune(r)
		case r == '"' || r == '\'':
			quote = r
			inArg = true
		case r == ' ' || r == '\t':
			if inArg {
				args = append(args, current.String())
				current.Reset()
				inArg = false
			}
		default:
			current.WriteRune(r)
			inArg = true
		}
	}

	if quote != 0 {
		return nil, errors.New("unterminated quote")
	}
	if inArg {
		args = append(args, current.String())
	}

	return args, nil
}
