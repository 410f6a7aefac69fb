// Package editor provides the capability through which the assistant
// reaches the host page's code editor, plus an HTML-document-backed
// implementation of it.
package editor

// Surface is the host editor capability injected into the session engine.
// Tests substitute a double; the CLI uses Document.
type Surface interface {
	// ReadMarkup returns the raw markup of the editor's visible line
	// container. An editor with no rendered lines yields an empty
	// string, not an error.
	ReadMarkup() (string, error)

	// WriteCode replaces the editable region's content with code and
	// fires the host editor's change notification. It returns
	// assist.ErrEditorNotFound when the page has no editable region;
	// in that case nothing is mutated.
	WriteCode(code string) error
}
