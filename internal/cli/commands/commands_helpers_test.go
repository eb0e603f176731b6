package commands

import (
	"Checklister/internal/config"
	"Checklister/internal/handlers"
	"Checklister/internal/middleware"
	"Checklister/internal/repo"
	"Checklister/internal/service"
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newBackend поднимает настоящий сервер на sqlite во временном каталоге
// и возвращает конфиг клиента, смотрящий на него.
func newBackend(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	db, err := repo.InitDB(filepath.Join(dir, "cli.db"))
	require.NoError(t, err)

	logger := zap.NewNop().Sugar()
	middleware.SetLogger(logger)
	srvCfg := &config.Config{PublicBaseURL: "http://share.test", UploadDir: filepath.Join(dir, "uploads"), UploadMaxMB: 1}
	h := handlers.NewHandler(
		service.NewChecklistService(repo.NewChecklistRepository(db), srvCfg.PublicBaseURL, logger),
		service.NewUploadService(repo.NewUploadRepository(db), srvCfg.UploadDir, srvCfg.UploadMaxMB, logger),
		service.NewUserService(repo.NewUserRepository(db)),
		logger,
		srvCfg,
	)
	srv := httptest.NewServer(h.Router)
	t.Cleanup(srv.Close)

	return &config.Config{
		ServerURL:     srv.URL,
		UserFile:      filepath.Join(dir, "client", "current_user.json"),
		UploadWorkers: 2,
		SnackbarMS:    50,
	}
}

// перехват stdout на время теста
func withStdoutCapture(t *testing.T, fn func()) string {
	t.Helper()
	old := Out
	var buf bytes.Buffer
	Out = &buf
	defer func() { Out = old }()
	fn()
	return buf.String()
}

// withStdin подставляет ответы на подтверждения.
func withStdin(t *testing.T, answers string) {
	t.Helper()
	old := In
	In = strings.NewReader(answers)
	t.Cleanup(func() { In = old })
}

// run выполняет команду через диспетчер и возвращает код и вывод.
func run(t *testing.T, cfg *config.Config, args ...string) (int, string) {
	t.Helper()
	var code int
	out := withStdoutCapture(t, func() { code = Dispatch(context.Background(), cfg, args) })
	return code, out
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}
