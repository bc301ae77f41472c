package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"chatads/internal/models"
)

func TestChatCompletion(t *testing.T) {
	var gotAuth, gotPath string
	var gotBody chatRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		fmt.Fprint(w, `{"choices":[{"message":{"content":"Try merino wool socks."}}]}`)
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "sk-test", "gpt-3.5-turbo")
	reply, err := c.ChatCompletion(context.Background(), []models.Message{
		{Role: models.RoleUser, Content: "What socks are good for hiking?"},
	})
	if err != nil {
		t.Fatalf("ChatCompletion: %v", err)
	}

	if reply != "Try merino wool socks." {
		t.Errorf("reply = %q", reply)
	}
	if gotAuth != "Bearer sk-test" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotPath != "/v1/chat/completions" {
		t.Errorf("path = %q", gotPath)
	}
	if gotBody.Model != "gpt-3.5-turbo" {
		t.Errorf("model = %q", gotBody.Model)
	}
	if len(gotBody.Messages) != 1 || gotBody.Messages[0].Role != "user" {
		t.Errorf("messages = %+v", gotBody.Messages)
	}
}

func TestChatCompletionMapsAdRole(t *testing.T) {
	var gotBody chatRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		fmt.Fprint(w, `{"choices":[{"message":{"content":"ok"}}]}`)
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "sk-test", "gpt-3.5-turbo")
	_, err := c.ChatCompletion(context.Background(), []models.Message{
		{Role: models.RoleUser, Content: "hi"},
		{Role: models.RoleAd, Content: "Sponsored: Laptop World"},
		{Role: models.RoleAssistant, Content: "hello"},
	})
	if err != nil {
		t.Fatalf("ChatCompletion: %v", err)
	}

	roles := make([]string, 0, len(gotBody.Messages))
	for _, m := range gotBody.Messages {
		roles = append(roles, m.Role)
	}
	want := []string{"user", "assistant", "assistant"}
	for i := range want {
		if roles[i] != want[i] {
			t.Fatalf("roles = %v, want %v", roles, want)
		}
	}
}

func TestChatCompletionInvalidKey(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"bad key"}`, http.StatusUnauthorized)
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "sk-bad", "gpt-3.5-turbo")
	_, err := c.ChatCompletion(context.Background(), []models.Message{
		{Role: models.RoleUser, Content: "hi"},
	})
	if !errors.Is(err, ErrInvalidAPIKey) {
		t.Errorf("err = %v, want ErrInvalidAPIKey", err)
	}
}

func TestChatCompletionNoChoices(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices":[]}`)
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "sk-test", "gpt-3.5-turbo")
	if _, err := c.ChatCompletion(context.Background(), []models.Message{
		{Role: models.RoleUser, Content: "hi"},
	}); err == nil {
		t.Error("empty choices should be an error")
	}
}

func TestChatCompletionServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "sk-test", "gpt-3.5-turbo")
	if _, err := c.ChatCompletion(context.Background(), []models.Message{
		{Role: models.RoleUser, Content: "hi"},
	}); err == nil {
		t.Error("5xx should be an error")
	}
}
