package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/freand76/kalkon/internal/app"
	"github.com/freand76/kalkon/internal/domain"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd wires the cobra root command. Without arguments the root
// starts the interactive session on a terminal and batch evaluation on
// a pipe; with arguments it evaluates them as a single expression.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	container, err := app.BuildContainer(ctx, opts.Verbose)
	if err != nil {
		return nil, err
	}
	container.Doctor.Prompter = NewPrompter(nil, nil)

	render := NewRenderer(container.Config.GetColorMode(), os.Stdout)
	evalCmd := newEvalCommand(container, render)

	root := &cobra.Command{
		Use:   "kalkon [expression]",
		Short: "kalkon - calculator for terminal people",
		Long: "kalkon evaluates arithmetic, bitwise and function expressions with\n" +
			"configurable precision, variables and hex/bin display modes. Run it\n" +
			"without arguments for an interactive session, pipe expressions into\n" +
			"it, or pass one expression as arguments.",
		// ArbitraryArgs lets positional arguments that name no
		// subcommand reach RunE as an expression.
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return evalLine(container.Calc, render, cmd, strings.Join(args, " "), true, false)
			}
			if isatty.IsTerminal(os.Stdin.Fd()) {
				return RunREPL(container.Calc, render, os.Stdin, cmd.OutOrStdout())
			}
			return RunPipe(container.Calc, os.Stdin, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		return container.Close()
	}

	root.AddCommand(evalCmd)
	root.AddCommand(newLogCommand(container))
	root.AddCommand(newConfigCommand(container))
	root.AddCommand(newDoctorCommand(container, render))
	root.AddCommand(newVersionCommand())
	return root, nil
}

func newEvalCommand(container *app.Container, render *Renderer) *cobra.Command {
	var previewOnly bool
	var copyResult bool

	cmd := &cobra.Command{
		Use:   "eval [expression]",
		Short: "Evaluate a single expression",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return evalLine(container.Calc, render, cmd, strings.Join(args, " "), !previewOnly, copyResult)
		},
	}

	cmd.Flags().BoolVarP(&previewOnly, "preview-only", "p", false, "Evaluate without recording history or the session log")
	cmd.Flags().BoolVarP(&copyResult, "copy", "c", false, "Copy the result to the clipboard")
	return cmd
}

// evalLine evaluates one expression and prints the result. Input
// mistakes come back as the command error so the exit code reflects
// them.
func evalLine(calc domain.CalcService, render *Renderer, cmd *cobra.Command, expression string, commit, copyResult bool) error {
	resp, err := calc.Evaluate(domain.CalcRequest{
		Expression: expression,
		Commit:     commit,
	})
	if err != nil {
		return err
	}
	if resp.IsError {
		return errors.New(resp.Status)
	}
	fmt.Fprintln(cmd.OutOrStdout(), render.Result(resp.Result))
	if copyResult {
		if err := NewClipboard().Copy(resp.Result); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "clipboard: %v\n", err)
		}
	}
	return nil
}
