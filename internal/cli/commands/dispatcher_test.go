package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"

	"Checklister/internal/config"
)

// fakeCmd позволяет управлять возвратом ошибок из Run
type fakeCmd struct {
	name, usage, desc string
	run               func(ctx context.Context, cfg *config.Config, args []string) error
}

func (f fakeCmd) Name() string        { return f.name }
func (f fakeCmd) Description() string { return f.desc }
func (f fakeCmd) Usage() string       { return f.usage }
func (f fakeCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	return f.run(ctx, cfg, args)
}

func TestDispatcher_HelpAndUnknown(t *testing.T) {
	out := withStdoutCapture(t, func() { _ = Dispatch(context.Background(), &config.Config{}, []string{}) })
	if !strings.Contains(out, "Checklister CLI") {
		t.Fatalf("global help expected")
	}
	for _, name := range []string{"login", "create", "edit", "delete", "publish", "public", "rm-upload", "tui"} {
		if !strings.Contains(out, name) {
			t.Fatalf("command %q missing from help:\n%s", name, out)
		}
	}

	out = withStdoutCapture(t, func() { _ = Dispatch(context.Background(), &config.Config{}, []string{"help"}) })
	if !strings.Contains(out, "Usage:") {
		t.Fatalf("usage expected")
	}

	out = withStdoutCapture(t, func() {
		if code := Dispatch(context.Background(), &config.Config{}, []string{"help", "delete"}); code != 0 {
			t.Fatalf("expected 0 for help delete, got %d", code)
		}
	})
	if !strings.Contains(out, "Usage: delete [--yes] <id>") {
		t.Fatalf("delete usage expected, got: %s", out)
	}

	out = withStdoutCapture(t, func() { _ = Dispatch(context.Background(), &config.Config{}, []string{"help", "nope"}) })
	if !strings.Contains(out, "Unknown command") {
		t.Fatalf("unknown command message expected")
	}

	withStdoutCapture(t, func() {
		if code := Dispatch(context.Background(), &config.Config{}, []string{"no-such"}); code != 2 {
			t.Fatalf("expected 2 for unknown command, got %d", code)
		}
	})
}

func TestDispatcher_RunPaths(t *testing.T) {
	cmdOK := fakeCmd{name: "x", usage: "x", desc: "", run: func(_ context.Context, _ *config.Config, _ []string) error { return nil }}
	RegisterCmd(cmdOK)
	if code := Dispatch(context.Background(), &config.Config{}, []string{"x"}); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}

	cmdUsage := fakeCmd{name: "u", usage: "u <arg>", desc: "", run: func(_ context.Context, _ *config.Config, _ []string) error { return ErrUsage }}
	RegisterCmd(cmdUsage)
	out := withStdoutCapture(t, func() { _ = Dispatch(context.Background(), &config.Config{}, []string{"u"}) })
	if !strings.Contains(out, "Usage: u <arg>") {
		t.Fatalf("usage text expected")
	}

	cmdErr := fakeCmd{name: "e", usage: "e", desc: "", run: func(_ context.Context, _ *config.Config, _ []string) error { return fmt.Errorf("boom") }}
	RegisterCmd(cmdErr)
	out = withStdoutCapture(t, func() { _ = Dispatch(context.Background(), &config.Config{}, []string{"e"}) })
	if !strings.Contains(out, "e error: boom") {
		t.Fatalf("error line expected, got: %s", out)
	}
}

func TestDispatcher_HelpFlagUsesArgs(t *testing.T) {
	ran := false
	RegisterCmd(fakeCmd{name: "h", usage: "h <id>", desc: "", run: func(_ context.Context, _ *config.Config, _ []string) error {
		ran = true
		return nil
	}})

	out := withStdoutCapture(t, func() {
		if code := Dispatch(context.Background(), &config.Config{}, []string{"h", "7", "--help"}); code != 0 {
			t.Fatalf("expected 0 for command help, got %d", code)
		}
	})
	if ran {
		t.Fatalf("command must not run when help is requested")
	}
	if !strings.Contains(out, "Usage: h <id>") {
		t.Fatalf("command usage expected, got: %s", out)
	}

	out = withStdoutCapture(t, func() {
		if code := Dispatch(context.Background(), &config.Config{}, []string{"-h"}); code != 0 {
			t.Fatalf("expected 0 for global help, got %d", code)
		}
	})
	if !strings.Contains(out, "Checklister CLI") {
		t.Fatalf("global help expected, got: %s", out)
	}

	// флаги процесса не влияют на разбор переданных аргументов
	oldArgs := os.Args
	os.Args = []string{"checklister", "--help"}
	t.Cleanup(func() { os.Args = oldArgs })
	withStdoutCapture(t, func() { _ = Dispatch(context.Background(), &config.Config{}, []string{"h", "7"}) })
	if !ran {
		t.Fatalf("command must run when its own args carry no help flag")
	}
}

func TestDispatcher_ValidationErrorPrintedOnce(t *testing.T) {
	RegisterCmd(fakeCmd{name: "v", usage: "v", desc: "", run: func(_ context.Context, _ *config.Config, _ []string) error {
		fmt.Fprintln(Out, "Title is required")
		return errInvalid
	}})
	code := 0
	out := withStdoutCapture(t, func() { code = Dispatch(context.Background(), &config.Config{}, []string{"v"}) })
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if strings.Contains(out, "v error:") {
		t.Fatalf("validation must not be reported as a generic error: %s", out)
	}
}

func TestCommands_UsageErrors(t *testing.T) {
	cfg := &config.Config{ServerURL: "http://127.0.0.1:1"}
	cases := [][]string{
		{"login"},
		{"show", "abc"},
		{"delete"},
		{"clone", "0"},
		{"edit", "--nope", "1"},
		{"create", "extra"},
		{"rm-upload", "1"},
		{"public"},
	}
	for _, args := range cases {
		code := 0
		withStdoutCapture(t, func() { code = Dispatch(context.Background(), cfg, args) })
		if code != 2 {
			t.Fatalf("%v: expected usage exit 2, got %d", args, code)
		}
	}
}
