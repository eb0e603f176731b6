// Package bootstrap собирает зависимости клиента из конфигурации.
package bootstrap

import (
	"Checklister/internal/cli/api"
	"Checklister/internal/cli/builder"
	"Checklister/internal/cli/notify"
	fsrepo "Checklister/internal/cli/repo/fs"
	"Checklister/internal/cli/store"
	"Checklister/internal/cli/views"
	"Checklister/internal/config"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// App — клиент целиком: API, сторы, уведомления и экраны.
type App struct {
	API        *api.Client
	Users      *store.UserStore
	Checklists *store.ChecklistStore
	Snackbar   *notify.Snackbar
	List       *views.ListView
	Public     *views.PublicView
	Submitter  *builder.Submitter
	Logger     *zap.SugaredLogger
}

// NewApp создаёт клиента и восстанавливает сохранённого пользователя.
// Вызывающий должен вызвать Close.
func NewApp(cfg *config.Config, opts ...api.Option) (*App, error) {
	logger := zap.NewNop().Sugar()
	if cfg.Verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return nil, fmt.Errorf("init logger: %w", err)
		}
		logger = l.Sugar()
	}

	client := api.NewClient(cfg.ServerURL, append([]api.Option{api.WithLogger(logger)}, opts...)...)
	users := store.NewUserStore(client, fsrepo.UserFSStore{Path: cfg.UserFile})
	if err := users.Restore(); err != nil {
		return nil, fmt.Errorf("load current user: %w", err)
	}

	snack := notify.NewSnackbar(time.Duration(cfg.SnackbarMS) * time.Millisecond)
	checklists := store.NewChecklistStore()
	return &App{
		API:        client,
		Users:      users,
		Checklists: checklists,
		Snackbar:   snack,
		List:       views.NewListView(client, checklists, snack),
		Public:     views.NewPublicView(client),
		Submitter:  builder.NewSubmitter(client, snack, users, cfg.UploadWorkers),
		Logger:     logger,
	}, nil
}

func (a *App) Close() {
	a.Snackbar.Close()
	_ = a.Logger.Sync()
}
