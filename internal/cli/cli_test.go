package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/depscope/pkg/errors"
	"github.com/matzehuels/depscope/pkg/pipeline"
)

// fakeServices serves a one-package repository at acme/web along with the
// registry and OSV endpoints, and points the config at it.
func fakeServices(t *testing.T) {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/gh/repos/acme/web/contents/package.json", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"dependencies":{"left-pad":"^1.3.0"}}`)
	})
	mux.HandleFunc("/npm/left-pad", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"dist-tags":{"latest":"1.3.0"}}`)
	})
	mux.HandleFunc("/osv", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"results":[{}]}`)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("DEPSCOPE_GITHUB_API_URL", server.URL+"/gh")
	t.Setenv("DEPSCOPE_REGISTRY_URL", server.URL+"/npm")
	t.Setenv("DEPSCOPE_OSV_URL", server.URL+"/osv")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	for _, name := range []string{"analyze", "history", "serve", "completion"} {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	if root.PersistentFlags().Lookup("config") == nil {
		t.Error("--config flag missing")
	}
}

func TestAnalyzeCommand_JSON(t *testing.T) {
	fakeServices(t)

	out, err := execute(t, "analyze", "https://github.com/acme/web", "-f", "json", "--no-history")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}

	var got pipeline.Result
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if len(got.Packages) != 1 || got.Packages[0].Name != "left-pad" {
		t.Errorf("packages = %+v", got.Packages)
	}
	if got.DependencyTree != nil {
		t.Errorf("dependencyTree = %+v, want null", got.DependencyTree)
	}
}

func TestAnalyzeCommand_TextToFile(t *testing.T) {
	fakeServices(t)
	path := filepath.Join(t.TempDir(), "report.txt")

	out, err := execute(t, "analyze", "https://github.com/acme/web", "-o", path, "--no-history")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if !strings.Contains(out, "Report written to "+path) {
		t.Errorf("stdout = %q", out)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "acme/web") || !strings.Contains(string(data), "No known vulnerabilities") {
		t.Errorf("report = %q", data)
	}
}

func TestAnalyzeCommand_Errors(t *testing.T) {
	fakeServices(t)

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"bad format", []string{"analyze", "https://github.com/acme/web", "-f", "xml"}, errors.ErrCodeInvalidFormat},
		{"bad url", []string{"analyze", "https://example.com/acme/web", "--no-history"}, errors.ErrCodeInvalidURL},
		{"no manifest", []string{"analyze", "https://github.com/acme/api", "--no-history"}, errors.ErrCodeManifestNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestAnalyzeThenHistory(t *testing.T) {
	fakeServices(t)
	t.Setenv("DEPSCOPE_HISTORY_BACKEND", "file")
	t.Setenv("DEPSCOPE_HISTORY_URI", t.TempDir())

	if _, err := execute(t, "analyze", "https://github.com/acme/web", "-f", "json"); err != nil {
		t.Fatalf("analyze: %v", err)
	}

	out, err := execute(t, "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if !strings.Contains(out, "github:acme/web") || !strings.Contains(out, "1 packages") {
		t.Errorf("history = %q", out)
	}

	out, err = execute(t, "history", "-f", "yaml")
	if err != nil {
		t.Fatalf("history yaml: %v", err)
	}
	if !strings.Contains(out, "sourceType: git") {
		t.Errorf("history yaml = %q", out)
	}
}

func TestHistoryCommand_Empty(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	out, err := execute(t, "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if !strings.Contains(out, "No analyses recorded") {
		t.Errorf("history = %q", out)
	}
}

func TestCompletionCommand(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		out, err := execute(t, "completion", shell)
		if err != nil {
			t.Errorf("completion %s: %v", shell, err)
		}
		if !strings.Contains(out, "depscope") {
			t.Errorf("completion %s output does not mention depscope", shell)
		}
	}
}
