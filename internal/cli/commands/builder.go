package commands

import (
	"Checklister/internal/cli/bootstrap"
	"Checklister/internal/cli/builder"
	"Checklister/internal/cli/views"
	"Checklister/internal/config"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
)

var errInvalid = errors.New("checklist is invalid")

type createCmd struct{}

func (createCmd) Name() string        { return "create" }
func (createCmd) Description() string { return "Create a checklist from flags or a YAML/JSON file" }
func (createCmd) Usage() string {
	return "create [--from file] [--title T] [--description D] [--category C] [--item C/I] [--attach C/I=path]"
}

func (createCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := newFlagSet("create")
	df := bindDraftFlags(fs, false)
	if err := fs.Parse(args); err != nil || fs.NArg() != 0 {
		return ErrUsage
	}
	d := builder.NewDraft()
	if err := df.apply(d); err != nil {
		return err
	}
	app, err := openApp(cfg)
	if err != nil {
		return err
	}
	defer app.Close()
	return submit(ctx, app, d)
}

type editCmd struct{}

func (editCmd) Name() string        { return "edit" }
func (editCmd) Description() string { return "Edit a checklist; uploaded files of kept items stay" }
func (editCmd) Usage() string {
	return "edit [create flags] [--remove-category C] [--remove-item C/I] [--rename-category Old=New] [--rename-item C/Old=New] [--detach C/I] <id>"
}

func (editCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := newFlagSet("edit")
	df := bindDraftFlags(fs, true)
	if err := fs.Parse(args); err != nil || fs.NArg() != 1 {
		return ErrUsage
	}
	id, err := parseID(fs.Arg(0))
	if err != nil {
		return err
	}
	app, err := openApp(cfg)
	if err != nil {
		return err
	}
	defer app.Close()
	if err := app.List.Load(ctx); err != nil {
		return err
	}
	d, err := app.List.Edit(id)
	if errors.Is(err, views.ErrNotInList) {
		return fmt.Errorf("checklist %d not found", id)
	}
	if err != nil {
		return err
	}
	if err := df.apply(d); err != nil {
		return err
	}
	return submit(ctx, app, d)
}

// submit отправляет черновик и показывает результат так, как его открыл бы список.
func submit(ctx context.Context, app *bootstrap.App, d *builder.Draft) error {
	var mu sync.Mutex
	app.Submitter.OnProgress = func(key string, pct int) {
		if pct < 100 {
			return
		}
		if it, ok := d.Item(key); ok {
			mu.Lock()
			fmt.Fprintln(Out, views.RenderProgress(filepath.Base(it.PendingFile), pct))
			mu.Unlock()
		}
	}
	res, err := app.Submitter.Submit(ctx, d)
	var verr *builder.ValidationError
	if errors.As(err, &verr) {
		fmt.Fprintln(Out, views.RenderValidation(verr, d))
		return errInvalid
	}
	if res == nil {
		return err
	}
	app.List.Open(res.Checklist)
	if c, ok := app.List.Viewing(); ok {
		fmt.Fprintln(Out, views.RenderCard(c))
		fmt.Fprintln(Out, views.RenderPanel(c, app.API.PublicUploadURL))
	}
	return err
}

type rmUploadCmd struct{}

func (rmUploadCmd) Name() string        { return "rm-upload" }
func (rmUploadCmd) Description() string { return "Remove an uploaded file from a checklist item" }
func (rmUploadCmd) Usage() string       { return "rm-upload [--yes] <checklist-id> <upload-id>" }

func (rmUploadCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := newFlagSet("rm-upload")
	yes := fs.Bool("yes", false, "do not ask for confirmation")
	if err := fs.Parse(args); err != nil || fs.NArg() != 2 {
		return ErrUsage
	}
	checklistID, err := parseID(fs.Arg(0))
	if err != nil {
		return err
	}
	uploadID, err := parseID(fs.Arg(1))
	if err != nil {
		return err
	}
	app, err := openApp(cfg)
	if err != nil {
		return err
	}
	defer app.Close()
	fresh, err := app.Submitter.RemoveUpload(ctx, confirmer(*yes), checklistID, uploadID)
	if errors.Is(err, builder.ErrCancelled) {
		fmt.Fprintln(Out, "Cancelled")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(Out, views.RenderPanel(fresh, app.API.PublicUploadURL))
	return nil
}

func init() {
	RegisterCmd(createCmd{})
	RegisterCmd(editCmd{})
	RegisterCmd(rmUploadCmd{})
}
