package updater

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func releaseServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchRelease(t *testing.T) {
	srv := releaseServer(t, http.StatusOK, `{
		"tag_name": "v1.4.0",
		"html_url": "https://example.com/releases/v1.4.0",
		"assets": [
			{"name": "giro_linux_amd64.tar.gz", "browser_download_url": "https://example.com/a.tar.gz", "size": 10}
		]
	}`)

	u := New("1.0.0")
	release, err := u.fetchRelease(srv.URL)
	if err != nil {
		t.Fatalf("fetchRelease failed: %v", err)
	}
	if release.Version != "v1.4.0" {
		t.Errorf("Version = %q", release.Version)
	}
	if len(release.Assets) != 1 || release.Assets[0].Name != "giro_linux_amd64.tar.gz" {
		t.Errorf("Assets = %+v", release.Assets)
	}
}

func TestFetchReleaseMirrorRewrite(t *testing.T) {
	srv := releaseServer(t, http.StatusOK, `{
		"tag_name": "v1.4.0",
		"assets": [{"name": "giro_linux_amd64.tar.gz", "browser_download_url": "https://github.example/a.tar.gz"}]
	}`)

	u := New("1.0.0", WithMirror("https://mirror.internal/giro/"))
	release, err := u.fetchRelease(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	want := "https://mirror.internal/giro/giro_linux_amd64.tar.gz"
	if got := release.Assets[0].DownloadURL; got != want {
		t.Errorf("DownloadURL = %q, want %q", got, want)
	}
}

func TestFetchReleaseErrors(t *testing.T) {
	u := New("1.0.0")

	srv := releaseServer(t, http.StatusNotFound, "")
	if _, err := u.fetchRelease(srv.URL); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("404 error = %v", err)
	}

	srv = releaseServer(t, http.StatusForbidden, "")
	if _, err := u.fetchRelease(srv.URL); err == nil || !strings.Contains(err.Error(), "rate limit") {
		t.Errorf("403 error = %v", err)
	}

	srv = releaseServer(t, http.StatusOK, "not json")
	if _, err := u.fetchRelease(srv.URL); err == nil {
		t.Error("malformed JSON accepted")
	}
}
