package assets

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
)

// captureOutput helps capture stdout during command execution.
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	return buf.String()
}

func TestListAssets_TableOutput(t *testing.T) {
	summaries := []map[string]any{
		{"id": 1, "code": "TR-100", "plant": "north", "status": "Active", "openIssuesCount": 2, "commentsCount": 1},
		{"id": 2, "code": "TR-200", "plant": "south", "status": "Spare", "openIssuesCount": 0, "commentsCount": 0},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/assets/fetch-all" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		_ = json.NewEncoder(w).Encode(summaries)
	}))
	defer srv.Close()

	_ = os.Setenv("FLEET_API_URL", srv.URL)
	defer os.Unsetenv("FLEET_API_URL")

	cmd := listAssetsCmd()

	out := captureOutput(t, func() {
		cmd.Run(cmd, []string{})
	})

	if !strings.Contains(out, "TR-100") || !strings.Contains(out, "TR-200") {
		t.Fatalf("expected asset codes in output, got: %s", out)
	}
}

func TestUpdateAsset_ClearOperatorSendsNull(t *testing.T) {
	var received map[string]json.RawMessage

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/assets/update" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"id": 5})
	}))
	defer srv.Close()

	_ = os.Setenv("FLEET_API_URL", srv.URL)
	defer os.Unsetenv("FLEET_API_URL")

	cmd := updateAssetCmd()
	_ = cmd.Flags().Set("id", "5")
	_ = cmd.Flags().Set("user", "u-1")
	_ = cmd.Flags().Set("clear-operator", "true")

	captureOutput(t, func() {
		cmd.Run(cmd, []string{})
	})

	raw, ok := received["assignedOperator"]
	if !ok {
		t.Fatal("expected assignedOperator key in request body")
	}
	if string(raw) != "null" {
		t.Fatalf("expected explicit null, got %s", raw)
	}
	if _, ok := received["status"]; ok {
		t.Fatal("status flag was not set; key must be absent")
	}
}

func TestGetAsset_SendsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-API-Token"); got != "cli-token" {
			t.Fatalf("expected token header, got %q", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"id": 3, "code": "TR-300"})
	}))
	defer srv.Close()

	_ = os.Setenv("FLEET_API_URL", srv.URL)
	_ = os.Setenv("FLEET_API_TOKEN", "cli-token")
	defer os.Unsetenv("FLEET_API_URL")
	defer os.Unsetenv("FLEET_API_TOKEN")

	cmd := getAssetCmd()
	_ = cmd.Flags().Set("id", "3")

	out := captureOutput(t, func() {
		cmd.Run(cmd, []string{})
	})

	if !strings.Contains(out, "TR-300") {
		t.Fatalf("expected asset code in output, got: %s", out)
	}
}
