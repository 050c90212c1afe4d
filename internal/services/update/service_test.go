package update

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tbielski/sessiondeck/internal/models"
)

func TestCompareVersions(t *testing.T) {
	cases := []struct {
		a, b string
		want int // sign only
	}{
		{"1.2.3", "1.2.3", 0},
		{"v1.2.3", "1.2.3", 0},
		{"1.3.0", "1.2.9", 1},
		{"1.2", "1.2.0", 0},
		{"2.0.0", "1.99.99", 1},
		{"0.9.1", "1.0.0", -1},
		{"1.2.3", "", 1},
	}

	for _, c := range cases {
		got := CompareVersions(c.a, c.b)
		switch {
		case c.want == 0 && got != 0:
			t.Errorf("CompareVersions(%q, %q) = %d, want 0", c.a, c.b, got)
		case c.want > 0 && got <= 0:
			t.Errorf("CompareVersions(%q, %q) = %d, want > 0", c.a, c.b, got)
		case c.want < 0 && got >= 0:
			t.Errorf("CompareVersions(%q, %q) = %d, want < 0", c.a, c.b, got)
		}
	}
}

func TestInstalledFromManifest(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "package.json")
	content := `{"name": "some-agent-cli", "version": "3.4.5", "private": true}`
	if err := os.WriteFile(manifest, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}

	if got := InstalledFromManifest(manifest); got != "3.4.5" {
		t.Errorf("InstalledFromManifest = %q, want 3.4.5", got)
	}

	if got := InstalledFromManifest(filepath.Join(dir, "missing.json")); got != "" {
		t.Errorf("missing manifest = %q, want empty", got)
	}
}

func TestCheck_UpdateAvailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"tag_name": "v2.0.0"}`))
	}))
	defer server.Close()

	svc := New(Config{URL: server.URL, Installed: "1.0.0", Timeout: 2 * time.Second})
	info := svc.Check(context.Background())

	if info.State != models.UpdateAvailable {
		t.Errorf("State = %v, want UpdateAvailable", info.State)
	}
	if info.Latest != "2.0.0" {
		t.Errorf("Latest = %q, want 2.0.0", info.Latest)
	}

	// Started and completed events are queued in order.
	ev := <-svc.Events()
	if ev.Type != EventCheckStarted {
		t.Errorf("first event = %v, want EventCheckStarted", ev.Type)
	}
	ev = <-svc.Events()
	if ev.Type != EventCheckCompleted {
		t.Errorf("second event = %v, want EventCheckCompleted", ev.Type)
	}
}

func TestCheck_UpToDate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"tag_name": "v1.0.0"}`))
	}))
	defer server.Close()

	svc := New(Config{URL: server.URL, Installed: "1.0.0", Timeout: 2 * time.Second})
	info := svc.Check(context.Background())

	if info.State != models.UpdateCurrent {
		t.Errorf("State = %v, want UpdateCurrent", info.State)
	}
}

func TestCheck_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := New(Config{URL: server.URL, Installed: "1.0.0", Timeout: 2 * time.Second})
	info := svc.Check(context.Background())

	if info.State != models.UpdateFailed {
		t.Errorf("State = %v, want UpdateFailed", info.State)
	}
	if info.Err == nil {
		t.Error("Err should be set on failure")
	}
}

func TestCheck_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(300 * time.Millisecond)
		_, _ = w.Write([]byte(`{"tag_name": "v9.9.9"}`))
	}))
	defer server.Close()

	svc := New(Config{URL: server.URL, Installed: "1.0.0", Timeout: 50 * time.Millisecond})
	info := svc.Check(context.Background())

	if info.State != models.UpdateFailed {
		t.Errorf("State = %v, want UpdateFailed on timeout", info.State)
	}
}
