package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"clipcast/config"
	"clipcast/logging"
	"clipcast/project"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	assets := t.TempDir()
	if err := os.MkdirAll(filepath.Join(assets, "footage"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(assets, "footage", "a.jpg"), []byte("jpg"), 0o644); err != nil {
		t.Fatal(err)
	}

	reg := project.Registry{
		"demo": {
			Name: "Demo",
			Clips: []project.Clip{
				{Type: project.ClipFootagesAroundTitle, Title: "HELLO", Duration: 3},
				{Type: project.ClipTweet, Tweet: &project.TweetItem{Name: "a"}, Duration: 2},
			},
		},
	}

	cfg := config.Default()
	cfg.AssetsDir = assets
	return New(cfg, reg, logging.New("error"))
}

func postJSON(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	buf, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func getPath(h http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealthz(t *testing.T) {
	h := testServer(t).routes()
	rec := getPath(h, "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestIndexServesPlayerPage(t *testing.T) {
	h := testServer(t).routes()
	rec := getPath(h, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte("window.seekTo")) {
		t.Error("player page missing seekTo contract")
	}
	// Doc scroll targets are selected by the section index the server
	// computes, not by heading position.
	if !bytes.Contains(rec.Body.Bytes(), []byte(`data-section="${st.sectionIndex}"`)) {
		t.Error("player page missing section-indexed scroll targeting")
	}
	if bytes.Contains(rec.Body.Bytes(), []byte("st.sectionIndex - 1")) {
		t.Error("player page must not offset the section index")
	}
}

func TestListProjects(t *testing.T) {
	h := testServer(t).routes()
	rec := getPath(h, "/api/projects")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var out struct {
		Projects []projectSummary `json:"projects"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if len(out.Projects) != 1 || out.Projects[0].ID != "demo" || out.Projects[0].Clips != 2 {
		t.Errorf("projects = %+v", out.Projects)
	}
}

func TestLoadUnknownProject(t *testing.T) {
	h := testServer(t).routes()
	rec := postJSON(t, h, "/api/load", loadRequest{Project: "nope"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestStateRequiresLoadedProject(t *testing.T) {
	h := testServer(t).routes()
	if rec := getPath(h, "/api/state"); rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	if rec := postJSON(t, h, "/api/seek", seekRequest{T: 1}); rec.Code != http.StatusConflict {
		t.Fatalf("seek status = %d, want 409", rec.Code)
	}
}

func TestLoadSeekAndClip(t *testing.T) {
	h := testServer(t).routes()

	rec := postJSON(t, h, "/api/load", loadRequest{Project: "demo", Mode: "render"})
	if rec.Code != http.StatusOK {
		t.Fatalf("load status = %d: %s", rec.Code, rec.Body)
	}

	rec = postJSON(t, h, "/api/seek", seekRequest{T: 1.0})
	var resp stateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.ClipIndex != 0 || resp.Elapsed != 1.0 || resp.Duration != 3 {
		t.Errorf("seek: %+v", resp)
	}
	if resp.State.Phase != "visible" {
		t.Errorf("phase at t=1 = %q", resp.State.Phase)
	}

	rec = postJSON(t, h, "/api/clip", clipRequest{Index: 1})
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.ClipIndex != 1 || resp.Elapsed != 0 || resp.Duration != 2 {
		t.Errorf("clip: %+v", resp)
	}
	if resp.State.Tweet == nil {
		t.Error("tweet clip should carry tweet state")
	}
}

func TestRenderModeIgnoresAdvance(t *testing.T) {
	h := testServer(t).routes()
	postJSON(t, h, "/api/load", loadRequest{Project: "demo", Mode: "render"})
	postJSON(t, h, "/api/play", playRequest{Playing: true})

	rec := postJSON(t, h, "/api/advance", advanceRequest{Dt: 0.5})
	var resp stateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Elapsed != 0 || resp.Playing {
		t.Errorf("render mode advanced: %+v", resp)
	}
}

func TestStaticAssets(t *testing.T) {
	h := testServer(t).routes()
	rec := getPath(h, "/footage/a.jpg")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Body.String() != "jpg" {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestListenWalksPastBusyPort(t *testing.T) {
	// Occupy a port, then ask the server to start there.
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer busy.Close()
	port := busy.Addr().(*net.TCPAddr).Port

	srv := testServer(t)
	srv.cfg.Port = port
	srv.cfg.PortAttempts = 5

	bound, err := srv.Listen()
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	defer srv.listener.Close()
	if bound <= port || bound >= port+5 {
		t.Errorf("bound port %d, want in (%d, %d)", bound, port, port+5)
	}
	if _, err := net.Dial("tcp", fmt.Sprintf("127.0.0.1:%d", bound)); err != nil {
		t.Errorf("dial bound port: %v", err)
	}
}
