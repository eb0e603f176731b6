package commands

import (
	"Checklister/internal/cli/bootstrap"
	"Checklister/internal/cli/prompt"
	"Checklister/internal/config"
	"flag"
	"fmt"
	"io"
	"strconv"
)

// openApp собирает клиента; уведомления печатаются сразу в Out.
func openApp(cfg *config.Config) (*bootstrap.App, error) {
	app, err := bootstrap.NewApp(cfg)
	if err != nil {
		return nil, err
	}
	app.Snackbar.OnChange = func(msg string) {
		if msg != "" {
			fmt.Fprintln(Out, msg)
		}
	}
	return app, nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrUsage
	}
	return id, nil
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// confirmer спрашивает в терминале, либо соглашается сразу при --yes.
func confirmer(yes bool) prompt.Confirmer {
	if yes {
		return prompt.Yes
	}
	return &prompt.ReaderConfirmer{In: In, Out: Out}
}
