package handlers_test

import (
	"Checklister/internal/config"
	"Checklister/internal/handlers"
	"Checklister/internal/middleware"
	"Checklister/internal/repo"
	"Checklister/internal/service"
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testServer struct {
	*httptest.Server
	uploadDir string
}

// newTestServer поднимает полный стек: sqlite во временном каталоге, сервисы, роутер.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	dir := t.TempDir()
	db, err := repo.InitDB(filepath.Join(dir, "h.db"))
	require.NoError(t, err)

	logger := zap.NewNop().Sugar()
	middleware.SetLogger(logger)
	cfg := &config.Config{PublicBaseURL: "http://share.test", UploadDir: filepath.Join(dir, "uploads"), UploadMaxMB: 1}

	h := handlers.NewHandler(
		service.NewChecklistService(repo.NewChecklistRepository(db), cfg.PublicBaseURL, logger),
		service.NewUploadService(repo.NewUploadRepository(db), cfg.UploadDir, cfg.UploadMaxMB, logger),
		service.NewUserService(repo.NewUserRepository(db)),
		logger,
		cfg,
	)
	srv := httptest.NewServer(h.Router)
	t.Cleanup(srv.Close)
	return &testServer{Server: srv, uploadDir: cfg.UploadDir}
}

func (s *testServer) do(t *testing.T, method, path string, body any) (*http.Response, []byte) {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, s.URL+path, rdr)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func (s *testServer) upload(t *testing.T, itemID int64, filename string, content []byte) (*http.Response, []byte) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, _ = fw.Write(content)
	require.NoError(t, mw.Close())

	resp, err := http.Post(s.URL+"/items/"+itoa(itemID)+"/upload", mw.FormDataContentType(), &buf)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	return resp, data
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }

func decodeChecklist(t *testing.T, data []byte) handlers.ChecklistDTO {
	t.Helper()
	var c handlers.ChecklistDTO
	require.NoError(t, json.Unmarshal(data, &c), string(data))
	return c
}

func detail(t *testing.T, data []byte) string {
	t.Helper()
	var e handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(data, &e), string(data))
	return e.Detail
}

var moveOut = map[string]any{
	"title":       "Move-out",
	"description": "",
	"categories": []map[string]any{
		{"name": "Kitchen", "items": []map[string]any{{"name": "Clean oven"}, {"name": "Defrost fridge"}}},
	},
}

func TestRoot_Banner(t *testing.T) {
	s := newTestServer(t)
	resp, data := s.do(t, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(data), "Checklist Builder API")
}

func TestCORS_PreflightAndActualRequest(t *testing.T) {
	s := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, s.URL+"/checklists", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), http.MethodPost)

	req, err = http.NewRequest(http.MethodGet, s.URL+"/checklists", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:5173")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestChecklists_CreateGetListDelete(t *testing.T) {
	s := newTestServer(t)

	resp, data := s.do(t, http.MethodPost, "/checklists", moveOut)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	created := decodeChecklist(t, data)
	assert.NotZero(t, created.ID)
	assert.NotEmpty(t, created.PublicID)
	assert.False(t, created.IsPublic)
	require.Len(t, created.Categories, 1)
	require.Len(t, created.Categories[0].Items, 2)
	assert.Equal(t, "Defrost fridge", created.Categories[0].Items[1].Name)
	assert.NotNil(t, created.Categories[0].Items[0].Uploads)

	resp, data = s.do(t, http.MethodGet, "/checklists/"+itoa(created.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, created, decodeChecklist(t, data))

	resp, data = s.do(t, http.MethodGet, "/checklists", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []handlers.ChecklistDTO
	require.NoError(t, json.Unmarshal(data, &list))
	assert.Len(t, list, 1)

	resp, data = s.do(t, http.MethodDelete, "/checklists/"+itoa(created.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"ok":true}`, string(data))

	resp, data = s.do(t, http.MethodGet, "/checklists/"+itoa(created.ID), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Checklist not found", detail(t, data))
}

func TestChecklists_CreateValidationAndBadID(t *testing.T) {
	s := newTestServer(t)

	resp, data := s.do(t, http.MethodPost, "/checklists", map[string]any{"title": ""})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "Title is required", detail(t, data))

	resp, _ = s.do(t, http.MethodGet, "/checklists/abc", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestChecklists_UpdateKeepsUploadsOfKeptItems(t *testing.T) {
	s := newTestServer(t)

	_, data := s.do(t, http.MethodPost, "/checklists", moveOut)
	c := decodeChecklist(t, data)
	oven := c.Categories[0].Items[0]

	resp, data := s.upload(t, oven.ID, "receipt.txt", []byte("paid"))
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))

	upd := map[string]any{
		"title": "Move-out v2",
		"categories": []map[string]any{
			{"id": c.Categories[0].ID, "name": "Kitchen", "items": []map[string]any{
				{"id": oven.ID, "name": "Clean oven"},
			}},
			{"name": "Hall", "items": []map[string]any{{"name": "Sweep"}}},
		},
	}
	resp, data = s.do(t, http.MethodPut, "/checklists/"+itoa(c.ID), upd)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	got := decodeChecklist(t, data)
	assert.Equal(t, "Move-out v2", got.Title)
	require.Len(t, got.Categories, 2)
	require.Len(t, got.Categories[0].Items, 1)
	assert.Len(t, got.Categories[0].Items[0].Uploads, 1)
	assert.Equal(t, "Sweep", got.Categories[1].Items[0].Name)

	// без id категории и пункты пересоздаются — загрузки пропадают
	resp, data = s.do(t, http.MethodPut, "/checklists/"+itoa(c.ID), moveOut)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got = decodeChecklist(t, data)
	assert.Empty(t, got.Categories[0].Items[0].Uploads)

	resp, _ = s.do(t, http.MethodPut, "/checklists/999", moveOut)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestChecklists_CloneAndPublish(t *testing.T) {
	s := newTestServer(t)

	_, data := s.do(t, http.MethodPost, "/checklists", moveOut)
	c := decodeChecklist(t, data)

	resp, data := s.do(t, http.MethodPost, "/checklists/"+itoa(c.ID)+"/clone", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	clone := decodeChecklist(t, data)
	assert.Equal(t, "Move-out (Clone)", clone.Title)
	assert.NotEqual(t, c.ID, clone.ID)
	assert.NotEqual(t, c.PublicID, clone.PublicID)
	assert.Len(t, clone.Categories[0].Items, 2)

	// приватный чек-лист публично не виден
	resp, _ = s.do(t, http.MethodGet, "/public/"+c.PublicID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, data = s.do(t, http.MethodPost, "/checklists/"+itoa(c.ID)+"/make_public", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var mp struct {
		PublicURL string `json:"public_url"`
	}
	require.NoError(t, json.Unmarshal(data, &mp))
	assert.Equal(t, "http://share.test/public/"+c.PublicID, mp.PublicURL)

	for _, path := range []string{"/public/", "/checklists/public/"} {
		resp, data = s.do(t, http.MethodGet, path+c.PublicID, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode, path)
		pub := decodeChecklist(t, data)
		assert.True(t, pub.IsPublic)
		assert.Equal(t, "Move-out", pub.Title)
	}

	resp, _ = s.do(t, http.MethodPost, "/checklists/404/clone", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUploads_LifecycleAndPublicServing(t *testing.T) {
	s := newTestServer(t)

	_, data := s.do(t, http.MethodPost, "/checklists", moveOut)
	c := decodeChecklist(t, data)
	itemID := c.Categories[0].Items[1].ID

	resp, data := s.upload(t, itemID, "manual.txt", []byte("defrost for 6 hours"))
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	var up handlers.UploadDTO
	require.NoError(t, json.Unmarshal(data, &up))
	assert.Equal(t, "manual.txt", up.Filename)
	assert.True(t, strings.HasPrefix(up.Path, s.uploadDir))
	assert.False(t, up.UploadedAt.IsZero())

	// файл приватного чек-листа — 403
	resp, data = s.do(t, http.MethodGet, "/public_uploads/"+itoa(up.ID), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Checklist is not public", detail(t, data))

	s.do(t, http.MethodPost, "/checklists/"+itoa(c.ID)+"/make_public", nil)
	resp, data = s.do(t, http.MethodGet, "/public_uploads/"+itoa(up.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "defrost for 6 hours", string(data))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "manual.txt")

	resp, data = s.do(t, http.MethodDelete, "/uploads/"+itoa(up.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"ok":true}`, string(data))

	resp, data = s.do(t, http.MethodDelete, "/uploads/"+itoa(up.ID), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "File not found", detail(t, data))
}

func TestUploads_Rejections(t *testing.T) {
	s := newTestServer(t)

	_, data := s.do(t, http.MethodPost, "/checklists", moveOut)
	c := decodeChecklist(t, data)
	itemID := c.Categories[0].Items[0].ID

	resp, data := s.upload(t, itemID, "virus.exe", []byte("MZ"))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid file type", detail(t, data))

	resp, data = s.upload(t, itemID, "huge.txt", bytes.Repeat([]byte("a"), 1<<20+10))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "File too large", detail(t, data))

	resp, data = s.upload(t, 4242, "a.txt", []byte("a"))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Item not found", detail(t, data))
}

func TestUsers_LoginOrRegister(t *testing.T) {
	s := newTestServer(t)

	resp, data := s.do(t, http.MethodPost, "/users?username=alice", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	var u handlers.UserDTO
	require.NoError(t, json.Unmarshal(data, &u))
	assert.NotZero(t, u.ID)
	assert.Equal(t, service.HashUsername("alice"), u.UsernameHash)

	// повторный вход возвращает того же пользователя
	_, data = s.do(t, http.MethodPost, "/users?username=alice", nil)
	var again handlers.UserDTO
	require.NoError(t, json.Unmarshal(data, &again))
	assert.Equal(t, u.ID, again.ID)

	resp, _ = s.do(t, http.MethodPost, "/users", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}
