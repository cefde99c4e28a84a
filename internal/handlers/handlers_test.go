package handlers_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/glebarez/go-sqlite"
	"github.com/stretchr/testify/require"

	"github.com/pacifichome/smarthome-admin/internal/auth"
	"github.com/pacifichome/smarthome-admin/internal/config"
	"github.com/pacifichome/smarthome-admin/internal/handlers"
	"github.com/pacifichome/smarthome-admin/internal/models"
	"github.com/pacifichome/smarthome-admin/internal/routes"
	"github.com/pacifichome/smarthome-admin/internal/store"
	"github.com/pacifichome/smarthome-admin/internal/uploads"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testSchema = `
CREATE TABLE categories (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	name       TEXT NOT NULL,
	slug       TEXT NOT NULL DEFAULT '',
	parent_id  INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	UNIQUE (name, parent_id)
);
CREATE TABLE products (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	name           TEXT NOT NULL,
	sku            TEXT NOT NULL DEFAULT '',
	price          TEXT NOT NULL DEFAULT '0',
	stock_quantity INTEGER NOT NULL DEFAULT 0,
	description    TEXT NOT NULL DEFAULT '',
	image_path     TEXT NOT NULL DEFAULT '',
	images_json    TEXT NOT NULL DEFAULT '',
	created_at     DATETIME NOT NULL,
	updated_at     DATETIME NOT NULL
);
CREATE TABLE product_categories (
	product_id  INTEGER NOT NULL,
	category_id INTEGER NOT NULL,
	PRIMARY KEY (product_id, category_id)
);
CREATE TABLE users (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	username      TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	role          TEXT NOT NULL DEFAULT 'admin',
	created_at    DATETIME NOT NULL
);
CREATE TABLE videos (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	title       TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	url         TEXT NOT NULL DEFAULT '',
	thm         TEXT NOT NULL DEFAULT '',
	created_at  DATETIME NOT NULL
);
CREATE TABLE orders (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	order_date     DATETIME NOT NULL,
	customer_name  TEXT,
	customer_phone TEXT,
	contacted      INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE order_items (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	order_id   INTEGER NOT NULL,
	product_id INTEGER NOT NULL,
	quantity   INTEGER NOT NULL DEFAULT 1
);
`

// testApp is a fully wired API over an in-memory database and temp upload
// directories.
type testApp struct {
	router *gin.Engine
	h      *handlers.Handlers
	store  *store.Store
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	_, err = db.Exec(testSchema)
	require.NoError(t, err)

	cfg := config.Config{
		ImageDir:        t.TempDir(),
		VideoDir:        t.TempDir(),
		BaseImageURL:    "http://api.test/images/",
		BaseVideoURL:    "http://api.test/videos/",
		DefaultThumbURL: "http://api.test/videos/default.jpg",
		JWTSecret:       "test-secret",
	}

	images, err := uploads.NewStore(cfg.ImageDir)
	require.NoError(t, err)
	videos, err := uploads.NewStore(cfg.VideoDir)
	require.NoError(t, err)

	st := store.New(db)
	h := handlers.New(st, images, videos, auth.NewManager(cfg.JWTSecret), cfg)
	return &testApp{router: routes.SetupRouter(h), h: h, store: st}
}

func (a *testApp) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) postJSON(t *testing.T, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	return a.do(t, req)
}

func (a *testApp) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	return a.do(t, httptest.NewRequest(http.MethodGet, path, nil))
}

func (a *testApp) delete(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	return a.do(t, httptest.NewRequest(http.MethodDelete, path, nil))
}

// uploadFile is one file attached to a multipart request.
type uploadFile struct {
	field    string
	filename string
	content  []byte
}

func multipartRequest(t *testing.T, path string, fields map[string]string, files []uploadFile) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, w.WriteField(key, value))
	}
	for _, f := range files {
		part, err := w.CreateFormFile(f.field, f.filename)
		require.NoError(t, err)
		_, err = io.Copy(part, bytes.NewReader(f.content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func productData(t *testing.T, payload map[string]interface{}) string {
	t.Helper()
	b, err := json.Marshal(payload)
	require.NoError(t, err)
	return string(b)
}

func (a *testApp) seedCategory(t *testing.T, name string) int64 {
	t.Helper()
	id, err := a.store.CreateCategory(context.Background(), name, 0)
	require.NoError(t, err)
	return id
}

func (a *testApp) seedUser(t *testing.T, username, plaintext string) {
	t.Helper()
	var pw models.Password
	require.NoError(t, pw.Set(plaintext))
	_, err := a.store.DB.Exec(
		`INSERT INTO users (username, password_hash, role, created_at) VALUES (?, ?, 'admin', ?)`,
		username, pw.Hash, time.Now())
	require.NoError(t, err)
}

func (a *testApp) token(t *testing.T) string {
	t.Helper()
	token, err := a.h.Tokens.GenerateToken(1)
	require.NoError(t, err)
	return token
}

func storedName(t *testing.T, url, base string) string {
	t.Helper()
	require.True(t, strings.HasPrefix(url, base), url)
	return strings.TrimPrefix(url, base)
}
