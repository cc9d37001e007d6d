package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/oauth2"

	"taskflow/internal/api"
	"taskflow/internal/config"
	"taskflow/internal/service"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{Dir: t.TempDir()}
}

func TestBearerInjection(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	cfg := testConfig(t)
	client := api.NewWithHTTPClient(cfg, srv.URL, srv.Client())

	// Anonymous requests carry no credential at all.
	if _, err := client.ListTasks(context.Background()); err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("anonymous request carried Authorization %q", gotAuth)
	}

	client.SetToken("tok-123")
	if _, err := client.ListTasks(context.Background()); err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("expected bearer header, got %q", gotAuth)
	}
}

func TestLoginDecodesPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/login" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["email"] != "a@b.c" || body["password"] != "secret" {
			t.Errorf("unexpected body: %v", body)
		}
		json.NewEncoder(w).Encode(service.Credentials{
			Token: "issued-token",
			User:  service.User{ID: "u1", Name: "A", Email: "a@b.c"},
		})
	}))
	defer srv.Close()

	client := api.NewWithHTTPClient(testConfig(t), srv.URL, srv.Client())
	creds, err := client.Login(context.Background(), "a@b.c", "secret")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if creds.Token != "issued-token" || creds.User.Email != "a@b.c" {
		t.Errorf("unexpected credentials: %+v", creds)
	}
}

func TestErrorNormalization(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"server message preferred", http.StatusBadRequest, `{"message":"User already exists!"}`, "User already exists!"},
		{"generic fallback on empty body", http.StatusInternalServerError, ``, api.GenericErrorMessage},
		{"generic fallback on junk body", http.StatusBadGateway, `<html>boom</html>`, api.GenericErrorMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := api.NewWithHTTPClient(testConfig(t), srv.URL, srv.Client())
			err := client.Register(context.Background(), "A", "a@b.c", "secret")
			if err == nil {
				t.Fatal("expected error")
			}

			apiErr, ok := err.(*api.Error)
			if !ok {
				t.Fatalf("expected *api.Error, got %T", err)
			}
			if apiErr.StatusCode != tt.status {
				t.Errorf("status: want %d, got %d", tt.status, apiErr.StatusCode)
			}
			if apiErr.Message != tt.wantMsg {
				t.Errorf("message: want %q, got %q", tt.wantMsg, apiErr.Message)
			}
		})
	}
}

// A 401 from any operation erases the stored credential, even when the
// failing call has nothing to do with the session.
func TestUnauthorizedErasesCredential(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Token is invalid!"}`))
	}))
	defer srv.Close()

	cfg := testConfig(t)
	if err := cfg.SaveToken(&oauth2.Token{AccessToken: "stale", TokenType: "Bearer"}); err != nil {
		t.Fatal(err)
	}

	client := api.NewWithHTTPClient(cfg, srv.URL, srv.Client())
	client.SetToken("stale")

	_, err := client.CreateTask(context.Background(), service.TaskDraft{
		Title:       "Buy milk",
		Description: "2%",
		Priority:    service.PriorityLow,
		Status:      service.StatusNotStarted,
	})
	if err == nil {
		t.Fatal("expected error")
	}

	apiErr, ok := err.(*api.Error)
	if !ok || !apiErr.IsAuth() {
		t.Fatalf("expected auth error, got %v", err)
	}
	if cfg.HasToken() {
		t.Error("stored credential not erased on 401")
	}
	if client.HasToken() {
		t.Error("in-memory credential not erased on 401")
	}
}

func TestNonAuthFailureKeepsCredential(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"boom"}`))
	}))
	defer srv.Close()

	cfg := testConfig(t)
	if err := cfg.SaveToken(&oauth2.Token{AccessToken: "good", TokenType: "Bearer"}); err != nil {
		t.Fatal(err)
	}

	client := api.NewWithHTTPClient(cfg, srv.URL, srv.Client())
	client.SetToken("good")

	if _, err := client.ListTasks(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if !cfg.HasToken() {
		t.Error("credential erased on non-auth failure")
	}
	if !client.HasToken() {
		t.Error("in-memory credential dropped on non-auth failure")
	}
}

// The update contract is replace, not merge: the whole snapshot goes out.
func TestUpdateTaskSendsFullSnapshot(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("expected PUT, got %s", r.Method)
		}
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(service.Task{ID: "5", Title: "Buy milk", Description: "2%", Priority: service.PriorityLow, Status: service.StatusCompleted})
	}))
	defer srv.Close()

	client := api.NewWithHTTPClient(testConfig(t), srv.URL, srv.Client())
	task, err := client.UpdateTask(context.Background(), "5", service.TaskDraft{
		Title:       "Buy milk",
		Description: "2%",
		Priority:    service.PriorityLow,
		Status:      service.StatusCompleted,
	})
	if err != nil {
		t.Fatalf("UpdateTask failed: %v", err)
	}
	if gotPath != "/tasks/5" {
		t.Errorf("unexpected path: %s", gotPath)
	}
	for _, field := range []string{"title", "description", "priority", "status"} {
		if _, ok := gotBody[field]; !ok {
			t.Errorf("full snapshot missing field %q: %v", field, gotBody)
		}
	}
	if task.Status != service.StatusCompleted {
		t.Errorf("unexpected result: %+v", task)
	}
}

func TestListTasksPreservesServerOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"id":"b","title":"second","description":"x","priority":"low","status":"not-started"},
			{"id":"a","title":"first","description":"x","priority":"low","status":"not-started"}
		]`))
	}))
	defer srv.Close()

	client := api.NewWithHTTPClient(testConfig(t), srv.URL, srv.Client())
	tasks, err := client.ListTasks(context.Background())
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(tasks) != 2 || tasks[0].ID != "b" || tasks[1].ID != "a" {
		t.Errorf("server order not preserved: %+v", tasks)
	}
}

func TestStatsDecoding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tasks/stats" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{
			"total_tasks": 4,
			"tasks_by_status": {"not-started":1,"in-progress":1,"completed":2},
			"tasks_by_priority": {"low":2,"medium":1,"high":1},
			"completion_rate": 50.0
		}`))
	}))
	defer srv.Close()

	client := api.NewWithHTTPClient(testConfig(t), srv.URL, srv.Client())
	stats, err := client.TaskStats(context.Background())
	if err != nil {
		t.Fatalf("TaskStats failed: %v", err)
	}
	if stats.TotalTasks != 4 || stats.CompletionRate != 50.0 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if stats.TasksByStatus[service.StatusCompleted] != 2 {
		t.Errorf("status map not decoded: %v", stats.TasksByStatus)
	}
}

func TestResetPasswordPaths(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.Write([]byte(`{"message":"ok"}`))
	}))
	defer srv.Close()

	client := api.NewWithHTTPClient(testConfig(t), srv.URL, srv.Client())
	if _, err := client.RequestPasswordReset(context.Background(), "a@b.c"); err != nil {
		t.Fatal(err)
	}
	if _, err := client.CompletePasswordReset(context.Background(), "tok", "newpw"); err != nil {
		t.Fatal(err)
	}

	want := []string{"/auth/reset-password", "/auth/reset-password/tok"}
	for i, p := range want {
		if paths[i] != p {
			t.Errorf("path %d: want %s, got %s", i, p, paths[i])
		}
	}
}
