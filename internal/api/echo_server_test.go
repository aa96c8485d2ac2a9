package api

import (
	"encoding/binary"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v5"

	"github.com/samcharles93/dvfile/internal/dvtest"
)

type testServer struct {
	e       *echo.Echo
	server  *Server
	dataDir string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	dir := t.TempDir()
	ref := dvtest.Reference()
	if err := os.WriteFile(filepath.Join(dir, "ref.dv"), ref.Bytes(), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "junk.dv"), make([]byte, 2048), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	server, err := NewServer(nil, Config{DataDir: dir, ClipPercent: 0.5})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	t.Cleanup(func() { _ = server.Close() })
	e := echo.New()
	server.Register(e)
	return &testServer{e: e, server: server, dataDir: dir}
}

func (ts *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	ts.e.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return out
}

func (ts *testServer) open(t *testing.T, path string) FileInfo {
	t.Helper()
	rec := ts.do(t, http.MethodPost, "/v1/files", fmt.Sprintf(`{"path":%q}`, path))
	if rec.Code != http.StatusCreated {
		t.Fatalf("open status: got %d body=%s", rec.Code, rec.Body.String())
	}
	return decodeBody[FileInfo](t, rec)
}

func TestOpenGetListCloseLifecycle(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	info := ts.open(t, "ref.dv")
	if !strings.HasPrefix(info.ID, "dvf_") {
		t.Fatalf("unexpected id %q", info.ID)
	}
	if info.NX != 32 || info.NY != 32 || info.NZ != 18 || info.Planes != 3 {
		t.Fatalf("unexpected dimensions: %+v", info)
	}
	if info.Mode != 6 || info.PixelType != "UINT16" || info.ByteOrder != "little-endian" {
		t.Fatalf("unexpected pixel info: %+v", info)
	}
	if info.Min != 215 || info.Max != 1743 {
		t.Fatalf("unexpected stats: min=%v max=%v", info.Min, info.Max)
	}

	rec := ts.do(t, http.MethodGet, "/v1/files/"+info.ID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get status: got %d", rec.Code)
	}
	if got := decodeBody[FileInfo](t, rec); got.Path != filepath.Join(ts.dataDir, "ref.dv") {
		t.Fatalf("unexpected path %q", got.Path)
	}

	second := ts.open(t, filepath.Join(ts.dataDir, "ref.dv"))
	list := decodeBody[FileList](t, ts.do(t, http.MethodGet, "/v1/files", ""))
	if len(list.Data) != 2 {
		t.Fatalf("expected 2 files, got %d", len(list.Data))
	}

	rec = ts.do(t, http.MethodDelete, "/v1/files/"+info.ID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status: got %d", rec.Code)
	}
	if del := decodeBody[DeleteResponse](t, rec); !del.Deleted || del.ID != info.ID {
		t.Fatalf("unexpected delete response %+v", del)
	}
	if rec := ts.do(t, http.MethodDelete, "/v1/files/"+info.ID, ""); rec.Code != http.StatusNotFound {
		t.Fatalf("second delete: got %d", rec.Code)
	}
	if rec := ts.do(t, http.MethodGet, "/v1/files/"+info.ID, ""); rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete: got %d", rec.Code)
	}

	list = decodeBody[FileList](t, ts.do(t, http.MethodGet, "/v1/files", ""))
	if len(list.Data) != 1 || list.Data[0].ID != second.ID {
		t.Fatalf("unexpected list after delete: %+v", list.Data)
	}
}

func TestOpenRejectsBadPaths(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	cases := map[string]struct {
		body string
		code int
	}{
		"escape":       {`{"path":"../ref.dv"}`, http.StatusBadRequest},
		"absolute":     {`{"path":"/etc/passwd"}`, http.StatusBadRequest},
		"empty":        {`{"path":""}`, http.StatusBadRequest},
		"bad json":     {`{"path":`, http.StatusBadRequest},
		"unknown":      {`{"file":"ref.dv"}`, http.StatusBadRequest},
		"missing":      {`{"path":"nope.dv"}`, http.StatusNotFound},
		"wrong format": {`{"path":"junk.dv"}`, http.StatusUnprocessableEntity},
	}
	for name, tc := range cases {
		rec := ts.do(t, http.MethodPost, "/v1/files", tc.body)
		if rec.Code != tc.code {
			t.Errorf("%s: got %d want %d body=%s", name, rec.Code, tc.code, rec.Body.String())
		}
	}
	if n := len(ts.server.store.List()); n != 0 {
		t.Fatalf("failed opens left %d files in the store", n)
	}
}

func TestOpenFollowsSymlinksOnlyInsideDataDir(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	outside := filepath.Join(t.TempDir(), "outside.dv")
	if err := os.WriteFile(outside, dvtest.Reference().Bytes(), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if err := os.Symlink(outside, filepath.Join(ts.dataDir, "escape.dv")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	if err := os.Symlink(filepath.Join(ts.dataDir, "ref.dv"), filepath.Join(ts.dataDir, "alias.dv")); err != nil {
		t.Fatalf("symlink: %v", err)
	}

	rec := ts.do(t, http.MethodPost, "/v1/files", `{"path":"escape.dv"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("escape via symlink: got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "outside the data directory") {
		t.Fatalf("unexpected error body: %s", rec.Body.String())
	}
	ts.open(t, "alias.dv")
}

func TestSizes(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	info := ts.open(t, "ref.dv")

	got := decodeBody[SizesResponse](t, ts.do(t, http.MethodGet, "/v1/files/"+info.ID+"/sizes", ""))
	var names []string
	for _, s := range got.Sizes {
		names = append(names, fmt.Sprintf("%s=%d", s.Name, s.Size))
	}
	if want := "C=3 T=2 Z=3 Y=32 X=32"; strings.Join(names, " ") != want {
		t.Fatalf("sizes: got %v want %s", names, want)
	}
}

func TestSectionRawAndJSON(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	info := ts.open(t, "ref.dv")
	base := "/v1/files/" + info.ID + "/sections"

	rec := ts.do(t, http.MethodGet, base+"?t=0&c=0&z=1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("raw status: got %d body=%s", rec.Code, rec.Body.String())
	}
	body := rec.Body.Bytes()
	if len(body) != 32*32*2 {
		t.Fatalf("raw length: got %d", len(body))
	}
	if v := binary.LittleEndian.Uint16(body); v != 522 {
		t.Fatalf("first raw sample: got %d want 522", v)
	}
	if got := rec.Header().Get("X-DV-Pixel-Type"); got != "UINT16" {
		t.Fatalf("pixel type header: got %q", got)
	}

	sec := decodeBody[SectionResponse](t, ts.do(t, http.MethodGet, base+"?format=json", ""))
	if len(sec.Samples) != 32*32 || sec.Samples[0] != 326 || sec.Samples[2] != 284 {
		t.Fatalf("json section: got %d samples starting %v", len(sec.Samples), sec.Samples[:3])
	}
}

func TestSectionErrors(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	info := ts.open(t, "ref.dv")
	base := "/v1/files/" + info.ID + "/sections"

	cases := []struct {
		path string
		code int
	}{
		{base + "?t=2", http.StatusBadRequest},
		{base + "?c=3", http.StatusBadRequest},
		{base + "?z=-1", http.StatusBadRequest},
		{base + "?z=abc", http.StatusBadRequest},
		{base + "?format=webp", http.StatusBadRequest},
		{base + "?format=png&clip=60", http.StatusBadRequest},
		{"/v1/files/missing/sections", http.StatusNotFound},
	}
	for _, tc := range cases {
		if rec := ts.do(t, http.MethodGet, tc.path, ""); rec.Code != tc.code {
			t.Errorf("%s: got %d want %d body=%s", tc.path, rec.Code, tc.code, rec.Body.String())
		}
	}

	rec := ts.do(t, http.MethodGet, base+"?c=3", "")
	body := decodeBody[map[string]ErrorBody](t, rec)
	if !strings.Contains(body["error"].Message, "Wavelength") {
		t.Fatalf("expected axis in message, got %q", body["error"].Message)
	}
}

func TestSectionImage(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	info := ts.open(t, "ref.dv")

	rec := ts.do(t, http.MethodGet, "/v1/files/"+info.ID+"/sections?t=1&c=2&z=2&format=png&scale=0.5", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("png status: got %d body=%s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get(echo.HeaderContentType); ct != "image/png" {
		t.Fatalf("content type: got %q", ct)
	}
	if !strings.HasPrefix(rec.Body.String(), "\x89PNG") {
		t.Fatal("body is not a PNG")
	}
}

func TestVersion(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/v1/version", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("version status: got %d", rec.Code)
	}
	if v := decodeBody[VersionResponse](t, rec); v.Version == "" {
		t.Fatal("empty version")
	}
}

func TestResolvePath(t *testing.T) {
	t.Parallel()
	root := filepath.Join(string(filepath.Separator), "data")

	good := []struct{ in, want string }{
		{"a.dv", filepath.Join(root, "a.dv")},
		{"sub/../b.dv", filepath.Join(root, "b.dv")},
		{filepath.Join(root, "c", "d.dv"), filepath.Join(root, "c", "d.dv")},
	}
	for _, tc := range good {
		got, err := resolvePath(root, tc.in)
		if err != nil || got != tc.want {
			t.Errorf("resolvePath(%q) = %q, %v; want %q", tc.in, got, err, tc.want)
		}
	}
	for _, bad := range []string{"", "..", "../x.dv", "/elsewhere/x.dv", root} {
		if _, err := resolvePath(root, bad); err == nil {
			t.Errorf("resolvePath(%q) succeeded", bad)
		}
	}
}
