// Package prompt loads instruction templates and composes the per-turn
// system instruction from page context and editor code.
package prompt

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Template represents the structure of a TOML instruction template file.
type Template struct {
	Instruction string `toml:"instruction"`
}

// DefaultInstruction is the built-in instruction template used when no
// template file is configured. It carries all three page placeholders and
// directs the model to answer with the structured reply object.
const DefaultInstruction = `You are a coding assistant embedded in a programming practice page.
The user is solving the following problem in {{programming_language}}:

{{problem_statement}}

The code currently in the user's editor:

{{user_code}}

Help the user with hints, explanations, and corrections. Always answer
with a single JSON object of the form
{"output": "<your explanation>", "code": "<full replacement code>"}.
Include the "code" field only when you are proposing code the user can
paste into the editor as-is; otherwise omit it.`

// Load reads a template file and returns its contents.
func Load(path string) (*Template, error) {
	var tpl Template
	if _, err := toml.DecodeFile(path, &tpl); err != nil {
		return nil, fmt.Errorf("decoding template file: %w", err)
	}
	if strings.TrimSpace(tpl.Instruction) == "" {
		return nil, fmt.Errorf("template file %s has no instruction", path)
	}
	return &tpl, nil
}

// Find locates a template by name in the given directories and returns its
// path. A ".toml" extension is added when missing. All directories are
// searched; later directories take precedence over earlier ones.
func Find(name string, dirs []string) (string, error) {
	file := name
	if !strings.HasSuffix(file, ".toml") {
		file = file + ".toml"
	}

	var found string
	for _, dir := range dirs {
		candidate := filepath.Join(dir, file)
		if _, err := os.Stat(candidate); err == nil {
			found = candidate
		}
	}

	if found == "" {
		return "", fmt.Errorf("template %q not found in any of the template directories: %v", name, dirs)
	}
	return found, nil
}

// List returns the names of all template files found under the given
// directories, relative to their directory root and without the ".toml"
// extension. Duplicate names from earlier directories are shadowed.
func List(dirs []string) ([]string, error) {
	seen := make(map[string]bool)
	var names []string

	for _, dir := range dirs {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			continue
		}
		err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() || !strings.HasSuffix(info.Name(), ".toml") {
				return nil
			}
			rel, err := filepath.Rel(dir, path)
			if err != nil {
				return err
			}
			name := strings.TrimSuffix(rel, ".toml")
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scanning template directory %s: %w", dir, err)
		}
	}

	return names, nil
}
