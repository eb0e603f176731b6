package commands

import (
	"Checklister/internal/cli/tui"
	"Checklister/internal/config"
	"context"
)

type tuiCmd struct{}

func (tuiCmd) Name() string        { return "tui" }
func (tuiCmd) Description() string { return "Interactive checklist list" }
func (tuiCmd) Usage() string       { return "tui" }

func (tuiCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	app, err := openApp(cfg)
	if err != nil {
		return err
	}
	defer app.Close()
	// уведомления рисует сам экран
	app.Snackbar.OnChange = nil
	return tui.Run(ctx, tui.Deps{
		List:      app.List,
		Submitter: app.Submitter,
		Snackbar:  app.Snackbar,
		UploadURL: app.API.PublicUploadURL,
	})
}

func init() { RegisterCmd(tuiCmd{}) }
