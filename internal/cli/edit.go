package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/mentions/internal/app"
	"github.com/dshills/mentions/internal/renderer/backend"
)

func newEditCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "edit [file]",
		Short: "Open the terminal composer",
		Long: `Open file in the terminal composer. A missing file is created on save.

Keys:
  Up/Down, Ctrl+P/Ctrl+N   move through suggestions
  Tab, Enter               complete the mention
  Escape                   hide suggestions until the next mention
  Ctrl+S                   save
  Ctrl+Q, Ctrl+C           quit`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flags.options(cmd)
			if len(args) == 1 {
				opts.File = args[0]
			}
			return runEdit(opts)
		},
	}
}

func runEdit(opts app.Options) error {
	application, err := app.New(opts)
	if err != nil {
		return err
	}
	defer application.Close()

	term, err := backend.NewTerminal()
	if err != nil {
		return err
	}
	if err := application.SetBackend(term); err != nil {
		return err
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)
	go func() {
		if _, ok := <-signals; ok {
			_ = application.Quit()
		}
	}()

	return application.Run()
}
