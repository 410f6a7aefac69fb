package engine

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/codepane-dev/codepane/internal/assist"
	"github.com/codepane-dev/codepane/internal/assist/completion"
)

type fakeSurface struct {
	markup   string
	readErr  error
	writes   []string
	writeErr error
}

func (f *fakeSurface) ReadMarkup() (string, error) {
	return f.markup, f.readErr
}

func (f *fakeSurface) WriteCode(code string) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.writes = append(f.writes, code)
	return nil
}

// fakeClient counts calls and records every request it receives.
type fakeClient struct {
	calls    int
	models   []string
	requests [][]completion.Message
	reply    string
	err      error
	onCall   func()
}

func (f *fakeClient) Complete(ctx context.Context, model string, messages []completion.Message) (string, error) {
	f.calls++
	f.models = append(f.models, model)
	f.requests = append(f.requests, messages)
	if f.onCall != nil {
		f.onCall()
	}
	return f.reply, f.err
}

func withKey() CredentialSource {
	return CredentialFunc(func() (string, bool) { return "test-key", true })
}

func withoutKey() CredentialSource {
	return CredentialFunc(func() (string, bool) { return "", false })
}

func newTestEngine(client completion.Client, creds CredentialSource, surface *fakeSurface) *Engine {
	page := assist.PageContext{
		ProblemStatement:    "Reverse a string",
		ProgrammingLanguage: "Go",
	}
	instruction := "Lang: {{programming_language}} Problem: {{problem_statement}} Code: {{user_code}}"
	return New(assist.NewSession(assist.DefaultModel), page, instruction, surface, creds, client)
}

func TestSubmitAppendsUserThenAssistant(t *testing.T) {
	client := &fakeClient{reply: `{"output":"hello","code":"int x=1;"}`}
	eng := newTestEngine(client, withKey(), &fakeSurface{})

	reply, err := eng.Submit(context.Background(), "help me")
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if reply == nil {
		t.Fatal("Submit() returned no reply")
	}
	if reply.Text != "hello" || reply.Code != "int x=1;" {
		t.Errorf("reply = %q/%q, want %q/%q", reply.Text, reply.Code, "hello", "int x=1;")
	}

	history := eng.Session().History()
	if len(history) != 2 {
		t.Fatalf("history length = %d, want 2", len(history))
	}
	if history[0].Role != assist.RoleUser || history[0].Kind != assist.KindPlainText || history[0].Text != "help me" {
		t.Errorf("first entry = %+v, want plain-text user message", history[0])
	}
	if history[1].Role != assist.RoleAssistant || history[1].Kind != assist.KindRichText {
		t.Errorf("second entry = %+v, want rich-text assistant message", history[1])
	}
	if got := eng.Session().Status(); got != assist.StatusIdle {
		t.Errorf("status after turn = %v, want idle", got)
	}
}

func TestSubmitEmptyInputIsNoOp(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "spaces", input: "   "},
		{name: "whitespace mix", input: " \t\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{reply: `{"output":"hi"}`}
			eng := newTestEngine(client, withKey(), &fakeSurface{})

			reply, err := eng.Submit(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("Submit() error = %v", err)
			}
			if reply != nil {
				t.Errorf("Submit() reply = %+v, want nil", reply)
			}
			if client.calls != 0 {
				t.Errorf("client calls = %d, want 0", client.calls)
			}
			if n := eng.Session().MessageCount(); n != 0 {
				t.Errorf("history length = %d, want 0", n)
			}
			if got := eng.Session().Status(); got != assist.StatusIdle {
				t.Errorf("status = %v, want idle", got)
			}
		})
	}
}

func TestSubmitRejectsSecondTurnInFlight(t *testing.T) {
	client := &fakeClient{reply: `{"output":"first"}`}
	eng := newTestEngine(client, withKey(), &fakeSurface{})

	// Re-submit while the first turn is suspended at the network call.
	var inFlightErr error
	client.onCall = func() {
		client.onCall = nil
		_, inFlightErr = eng.Submit(context.Background(), "second")
	}

	if _, err := eng.Submit(context.Background(), "first"); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if !errors.Is(inFlightErr, assist.ErrTurnInFlight) {
		t.Errorf("in-flight Submit() error = %v, want ErrTurnInFlight", inFlightErr)
	}
	if client.calls != 1 {
		t.Errorf("client calls = %d, want 1", client.calls)
	}

	var users int
	for _, m := range eng.Session().History() {
		if m.Role == assist.RoleUser {
			users++
		}
	}
	if users != 1 {
		t.Errorf("user messages in history = %d, want 1", users)
	}
}

func TestSubmitMissingCredential(t *testing.T) {
	client := &fakeClient{reply: `{"output":"hi"}`}
	eng := newTestEngine(client, withoutKey(), &fakeSurface{})

	_, err := eng.Submit(context.Background(), "help")
	if !errors.Is(err, assist.ErrMissingCredential) {
		t.Fatalf("Submit() error = %v, want ErrMissingCredential", err)
	}
	if client.calls != 0 {
		t.Errorf("client calls = %d, want 0 (no network call before key check)", client.calls)
	}
	if got := eng.Session().Status(); got != assist.StatusIdle {
		t.Errorf("status = %v, want idle", got)
	}

	// The user message stays; no assistant message follows it.
	history := eng.Session().History()
	if len(history) != 1 || history[0].Role != assist.RoleUser {
		t.Errorf("history = %+v, want exactly the user message", history)
	}
}

func TestSubmitTransportFailure(t *testing.T) {
	client := &fakeClient{err: fmt.Errorf("connection refused")}
	eng := newTestEngine(client, withKey(), &fakeSurface{})

	_, err := eng.Submit(context.Background(), "help")
	if err == nil {
		t.Fatal("Submit() error = nil, want transport failure")
	}
	history := eng.Session().History()
	if len(history) != 1 || history[0].Role != assist.RoleUser {
		t.Errorf("history = %+v, want exactly the user message", history)
	}
	if got := eng.Session().Status(); got != assist.StatusIdle {
		t.Errorf("status = %v, want idle", got)
	}

	// The session is usable again after the failure.
	client.err = nil
	client.reply = `{"output":"recovered"}`
	if _, err := eng.Submit(context.Background(), "again"); err != nil {
		t.Fatalf("Submit() after failure error = %v", err)
	}
}

func TestSubmitEmptyReplyAppendsNothing(t *testing.T) {
	client := &fakeClient{reply: ""}
	eng := newTestEngine(client, withKey(), &fakeSurface{})

	reply, err := eng.Submit(context.Background(), "help")
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if reply != nil {
		t.Errorf("Submit() reply = %+v, want nil", reply)
	}
	if n := eng.Session().MessageCount(); n != 1 {
		t.Errorf("history length = %d, want 1 (user message only)", n)
	}
}

func TestSubmitFallbackReply(t *testing.T) {
	client := &fakeClient{reply: "not json at all"}
	eng := newTestEngine(client, withKey(), &fakeSurface{})

	reply, err := eng.Submit(context.Background(), "help")
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if reply == nil {
		t.Fatal("Submit() returned no reply")
	}
	if reply.Text != "not json at all" || reply.HasCode() {
		t.Errorf("reply = %q/%q, want raw text and no code", reply.Text, reply.Code)
	}
}

func TestSubmitRequestShape(t *testing.T) {
	client := &fakeClient{reply: `{"output":"first answer"}`}
	eng := newTestEngine(client, withKey(), &fakeSurface{markup: "func f(){}"})

	if _, err := eng.Submit(context.Background(), "question one"); err != nil {
		t.Fatalf("first Submit() error = %v", err)
	}
	if _, err := eng.Submit(context.Background(), "question two"); err != nil {
		t.Fatalf("second Submit() error = %v", err)
	}

	if len(client.requests) != 2 {
		t.Fatalf("requests = %d, want 2", len(client.requests))
	}

	first := client.requests[0]
	if len(first) != 2 {
		t.Fatalf("first request length = %d, want 2", len(first))
	}
	wantSystem := "Lang: Go Problem: Reverse a string Code: func f(){}"
	if first[0].Role != completion.RoleSystem || first[0].Content != wantSystem {
		t.Errorf("first request system = %q/%q, want system/%q", first[0].Role, first[0].Content, wantSystem)
	}
	if first[1].Role != completion.RoleUser || first[1].Content != "question one" {
		t.Errorf("first request trailing = %q/%q, want user/question one", first[1].Role, first[1].Content)
	}

	// Second request: system, both prior turns, then the new message. The
	// just-appended user message must appear once, as the trailing entry.
	second := client.requests[1]
	want := []completion.Message{
		{Role: completion.RoleSystem, Content: wantSystem},
		{Role: completion.RoleUser, Content: "question one"},
		{Role: completion.RoleAssistant, Content: "first answer"},
		{Role: completion.RoleUser, Content: "question two"},
	}
	if len(second) != len(want) {
		t.Fatalf("second request length = %d, want %d", len(second), len(want))
	}
	for i, m := range want {
		if second[i] != m {
			t.Errorf("second request[%d] = %+v, want %+v", i, second[i], m)
		}
	}
}

func TestSetModel(t *testing.T) {
	client := &fakeClient{reply: `{"output":"ok"}`}
	eng := newTestEngine(client, withKey(), &fakeSurface{})

	if err := eng.SetModel("no-such-model"); err == nil {
		t.Error("SetModel(no-such-model) error = nil, want error")
	}
	if err := eng.SetModel("gpt-4o"); err != nil {
		t.Fatalf("SetModel(gpt-4o) error = %v", err)
	}

	if _, err := eng.Submit(context.Background(), "hi"); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if len(client.models) != 1 || client.models[0] != "gpt-4o" {
		t.Errorf("model sent = %v, want [gpt-4o]", client.models)
	}
}

func TestApplyCode(t *testing.T) {
	surface := &fakeSurface{}
	eng := newTestEngine(&fakeClient{}, withKey(), surface)

	if err := eng.ApplyCode("x := 1"); err != nil {
		t.Fatalf("ApplyCode() error = %v", err)
	}
	if len(surface.writes) != 1 || surface.writes[0] != "x := 1" {
		t.Errorf("writes = %v, want [x := 1]", surface.writes)
	}

	surface.writeErr = assist.ErrEditorNotFound
	if err := eng.ApplyCode("y := 2"); !errors.Is(err, assist.ErrEditorNotFound) {
		t.Errorf("ApplyCode() error = %v, want ErrEditorNotFound", err)
	}
}
