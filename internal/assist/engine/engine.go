// Package engine drives the conversation session: it turns user input
// into grounded completion requests and folds the replies back into the
// session history.
package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/codepane-dev/codepane/internal/assist"
	"github.com/codepane-dev/codepane/internal/assist/completion"
	"github.com/codepane-dev/codepane/internal/assist/editor"
	"github.com/codepane-dev/codepane/internal/assist/extract"
	"github.com/codepane-dev/codepane/internal/assist/interpret"
	"github.com/codepane-dev/codepane/internal/assist/prompt"
)

// CredentialSource yields the API key, or reports that none is
// configured. Absence is a normal, handled outcome, not an error.
type CredentialSource interface {
	APIKey() (string, bool)
}

// CredentialFunc adapts a function to a CredentialSource.
type CredentialFunc func() (string, bool)

// APIKey implements CredentialSource.
func (f CredentialFunc) APIKey() (string, bool) { return f() }

// Engine orchestrates turns over a single session. All collaborators are
// injected; the engine owns the session exclusively and is the only
// component that mutates it.
type Engine struct {
	session     *assist.Session
	page        assist.PageContext
	instruction string
	surface     editor.Surface
	creds       CredentialSource
	client      completion.Client
}

// New creates an engine for the given session. instruction is the
// template the per-turn system instruction is composed from.
func New(session *assist.Session, page assist.PageContext, instruction string, surface editor.Surface, creds CredentialSource, client completion.Client) *Engine {
	return &Engine{
		session:     session,
		page:        page,
		instruction: instruction,
		surface:     surface,
		creds:       creds,
		client:      client,
	}
}

// Session exposes the session so callers can inspect history and status.
func (e *Engine) Session() *assist.Session {
	return e.session
}

// SetModel switches the model used for subsequent turns. It may be called
// at any time, including while a turn is in flight; the running turn is
// unaffected.
func (e *Engine) SetModel(id string) error {
	if !assist.SupportedModel(id) {
		return fmt.Errorf("unsupported model %q, run 'codepane models' for the available set", id)
	}
	e.session.SelectedModel = id
	return nil
}

// Submit runs one turn: it appends the user message, builds a grounded
// request from the page context and current editor code, performs a
// single completion call, and appends the interpreted assistant reply.
//
// A whitespace-only input is a no-op. A submission while a turn is in
// flight fails with assist.ErrTurnInFlight and leaves the session
// untouched. On any other failure the user message stays in history, no
// assistant message is appended, and the session returns to idle; the
// returned error is the caller's notification channel.
//
// The request history deliberately excludes the just-appended user
// message: it is re-sent as the trailing new message, never duplicated.
func (e *Engine) Submit(ctx context.Context, input string) (*assist.Message, error) {
	if strings.TrimSpace(input) == "" {
		return nil, nil
	}
	if e.session.Status() == assist.StatusAwaitingResponse {
		return nil, assist.ErrTurnInFlight
	}

	prior := e.session.History()
	e.session.Append(assist.NewUserMessage(input))

	if err := e.session.BeginTurn(); err != nil {
		return nil, err
	}
	defer e.session.EndTurn()

	key, ok := e.creds.APIKey()
	if !ok || key == "" {
		return nil, assist.ErrMissingCredential
	}

	markup, err := e.surface.ReadMarkup()
	if err != nil {
		return nil, fmt.Errorf("reading editor: %w", err)
	}
	code := extract.Code(markup)

	system := prompt.Compose(e.instruction, e.page, code)

	messages := make([]completion.Message, 0, len(prior)+2)
	messages = append(messages, completion.Message{Role: completion.RoleSystem, Content: system})
	for _, m := range prior {
		messages = append(messages, completion.Message{Role: string(m.Role), Content: m.Text})
	}
	messages = append(messages, completion.Message{Role: completion.RoleUser, Content: input})

	raw, err := e.client.Complete(ctx, e.session.SelectedModel, messages)
	if err != nil {
		return nil, err
	}

	msg, ok := interpret.Interpret(raw)
	if !ok {
		return nil, nil
	}
	e.session.Append(msg)
	return &msg, nil
}

// ApplyCode writes a returned snippet into the page editor. It is invoked
// independently of the turn protocol, when the user chooses to apply a
// snippet.
func (e *Engine) ApplyCode(code string) error {
	return e.surface.WriteCode(code)
}
