package commands

import (
	"Checklister/internal/cli/views"
	"Checklister/internal/config"
	"context"
	"errors"
	"fmt"
)

type listCmd struct{}

func (listCmd) Name() string        { return "list" }
func (listCmd) Description() string { return "List all checklists" }
func (listCmd) Usage() string       { return "list" }

func (listCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	app, err := openApp(cfg)
	if err != nil {
		return err
	}
	defer app.Close()
	if err := app.List.Load(ctx); err != nil {
		return err
	}
	fmt.Fprintln(Out, views.RenderList(app.List.Items()))
	return nil
}

type showCmd struct{}

func (showCmd) Name() string        { return "show" }
func (showCmd) Description() string { return "Show a checklist with its items and files" }
func (showCmd) Usage() string       { return "show <id>" }

func (showCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	id, err := parseID(args[0])
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
	c, err := app.List.View(id)
	if errors.Is(err, views.ErrNotInList) {
		return fmt.Errorf("checklist %d not found", id)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(Out, views.RenderCard(c))
	fmt.Fprintln(Out, views.RenderPanel(c, app.API.PublicUploadURL))
	return nil
}

type deleteCmd struct{}

func (deleteCmd) Name() string        { return "delete" }
func (deleteCmd) Description() string { return "Delete a checklist (asks for confirmation)" }
func (deleteCmd) Usage() string       { return "delete [--yes] <id>" }

func (deleteCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := newFlagSet("delete")
	yes := fs.Bool("yes", false, "do not ask for confirmation")
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
	err = app.List.Delete(ctx, confirmer(*yes), id)
	if errors.Is(err, views.ErrCancelled) {
		fmt.Fprintln(Out, "Cancelled")
		return nil
	}
	return err
}

type cloneCmd struct{}

func (cloneCmd) Name() string        { return "clone" }
func (cloneCmd) Description() string { return "Clone a checklist" }
func (cloneCmd) Usage() string       { return "clone <id>" }

func (cloneCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	app, err := openApp(cfg)
	if err != nil {
		return err
	}
	defer app.Close()
	cp, err := app.List.Clone(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintln(Out, views.RenderCard(cp))
	return nil
}

type publishCmd struct{}

func (publishCmd) Name() string        { return "publish" }
func (publishCmd) Description() string { return "Make a checklist public and copy its link" }
func (publishCmd) Usage() string       { return "publish <id>" }

func (publishCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	id, err := parseID(args[0])
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
	link, err := app.List.MakePublic(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintln(Out, link)
	return nil
}

type linkCmd struct{}

func (linkCmd) Name() string        { return "link" }
func (linkCmd) Description() string { return "Copy the public link of a public checklist" }
func (linkCmd) Usage() string       { return "link <id>" }

func (linkCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	id, err := parseID(args[0])
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
	link, err := app.List.CopyPublicLink(id)
	if err != nil {
		return err
	}
	fmt.Fprintln(Out, link)
	return nil
}

type publicCmd struct{}

func (publicCmd) Name() string        { return "public" }
func (publicCmd) Description() string { return "Open a public checklist by id or link" }
func (publicCmd) Usage() string       { return "public <public-id|url>" }

func (publicCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	app, err := openApp(cfg)
	if err != nil {
		return err
	}
	defer app.Close()
	if _, err := app.Public.Fetch(ctx, args[0]); err != nil {
		return errors.New(app.Public.Err())
	}
	fmt.Fprintln(Out, app.Public.Render())
	return nil
}

func init() {
	RegisterCmd(listCmd{})
	RegisterCmd(showCmd{})
	RegisterCmd(deleteCmd{})
	RegisterCmd(cloneCmd{})
	RegisterCmd(publishCmd{})
	RegisterCmd(linkCmd{})
	RegisterCmd(publicCmd{})
}
