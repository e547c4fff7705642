package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/dshills/mentions/internal/app"
	"github.com/dshills/mentions/internal/engine/buffer"
)

func newScanCommand(flags *globalFlags) *cobra.Command {
	var count bool

	cmd := &cobra.Command{
		Use:   "scan [file]",
		Short: "List the trigger spans in a document",
		Long: `List every trigger span in file, or standard input when no file is given,
one per line as line:column, followed by the span text.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flags.options(cmd)
			opts.LogOutput = cmd.ErrOrStderr()
			return runScan(cmd, args, opts, count)
		},
	}
	cmd.Flags().BoolVar(&count, "count", false, "print only the number of spans")
	return cmd
}

func runScan(cmd *cobra.Command, args []string, opts app.Options, count bool) error {
	cfg, err := app.ResolveConfig(opts)
	if err != nil {
		return err
	}
	logger, closer, err := app.NewLogger(cfg, opts.LogOutput)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}
	logger = logger.WithComponent("scan")

	doc, name, err := readDocument(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}
	matcher, err := cfg.Matcher()
	if err != nil {
		return err
	}

	spans := app.Scan(doc, matcher)
	logger.Debug("%s: %d span(s) in %d block(s)", name, len(spans), doc.BlockCount())

	out := cmd.OutOrStdout()
	if count {
		_, err := fmt.Fprintln(out, len(spans))
		return err
	}

	r := lipgloss.NewRenderer(out)
	posStyle := r.NewStyle().Faint(true)
	spanStyle := r.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))

	for _, s := range spans {
		line := s.Block + 1
		col := int(s.Range.Start-doc.BlockRange(s.Block).Start) + 1
		pos := posStyle.Render(fmt.Sprintf("%d:%d", line, col))
		if _, err := fmt.Fprintf(out, "%s\t%s\n", pos, spanStyle.Render(doc.Slice(s.Range.Start, s.Range.End))); err != nil {
			return err
		}
	}
	return nil
}

// readDocument reads the file named by args, or in when there is none.
func readDocument(in io.Reader, args []string) (buffer.Document, string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(in)
		if err != nil {
			return buffer.Document{}, "", fmt.Errorf("reading stdin: %w", err)
		}
		return buffer.NewDocument(string(data)), "<stdin>", nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return buffer.Document{}, "", &app.FileError{Op: "open", Path: args[0], Err: err}
	}
	return buffer.NewDocument(string(data)), args[0], nil
}
