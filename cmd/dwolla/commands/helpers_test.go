package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// seenRequest is what the test API saw.
type seenRequest struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

// testAPI is a minimal Dwolla API answering the calls made by the commands.
type testAPI struct {
	*httptest.Server

	mu         sync.Mutex
	tokenCalls int
	requests   []seenRequest
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	api := &testAPI{}
	api.Server = httptest.NewServer(http.HandlerFunc(api.handle))
	t.Cleanup(api.Close)

	return api
}

func (a *testAPI) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	a.mu.Lock()
	a.requests = append(a.requests, seenRequest{Method: r.Method, Path: r.URL.Path, Header: r.Header.Clone(), Body: body})
	a.mu.Unlock()

	route := r.Method + " " + r.URL.Path

	switch route {
	case "POST /token":
		a.mu.Lock()
		a.tokenCalls++
		a.mu.Unlock()

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"access_token": "token-1",
			"token_type":   "bearer",
			"expires_in":   3600,
		})
	case "GET /":
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"_links": map[string]interface{}{
				"customers": map[string]string{"href": a.URL + "/customers"},
				"events":    map[string]string{"href": a.URL + "/events"},
			},
		})
	case "GET /customers":
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"_embedded": map[string]interface{}{
				"customers": []map[string]string{
					{"id": "c1", "firstName": "Jane", "lastName": "Doe", "email": "jane@example.com", "status": "verified"},
				},
			},
			"total": 1,
		})
	case "GET /customers/c1":
		writeJSON(w, http.StatusOK, map[string]string{
			"id": "c1", "firstName": "Jane", "lastName": "Doe", "email": "jane@example.com", "status": "verified",
		})
	case "POST /transfers":
		w.Header().Set("Location", a.URL+"/transfers/t1")
		w.WriteHeader(http.StatusCreated)
	case "GET /accounts/a1":
		writeJSON(w, http.StatusOK, map[string]string{"id": "a1"})
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"code": "NotFound", "message": "The requested resource was not found."})
	}
}

func (a *testAPI) tokenRequests() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.tokenCalls
}

func (a *testAPI) requestsTo(method, path string) []seenRequest {
	a.mu.Lock()
	defer a.mu.Unlock()

	var matched []seenRequest

	for _, request := range a.requests {
		if request.Method == method && request.Path == path {
			matched = append(matched, request)
		}
	}

	return matched
}

func writeJSON(w http.ResponseWriter, status int, value interface{}) {
	w.Header().Set("Content-Type", "application/vnd.dwolla.v1.hal+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// setupCLI points the global configuration at api and a temporary config
// file, returning the directory holding it.
func setupCLI(t *testing.T, api *testAPI) string {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	viper.SetConfigFile(filepath.Join(dir, "config.yml"))
	viper.Set("output", OutputFormatJSON)

	if api != nil {
		viper.Set("api_endpoint", api.URL)
		viper.Set("client_id", "key")
		viper.Set("client_secret", "secret")
	}

	return dir
}

// execute runs the CLI with args and returns what it printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := &cobra.Command{Use: "dwolla", SilenceUsage: true, SilenceErrors: true}
	root.AddCommand(NewVersionCommand("1.2.3", "abc123", "2026-01-02"))

	for _, newCommand := range Registry() {
		root.AddCommand(newCommand())
	}

	var out bytes.Buffer

	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetIn(bytes.NewReader(nil))
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())

	return out.String(), err
}

// findSubcommand finds a subcommand by name within a cobra command.
func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, c := range cmd.Commands() {
		if c.Name() == name {
			return c
		}
	}

	return nil
}
