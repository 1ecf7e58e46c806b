package annotator

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"autotyper/internal/report"
)

// stubCompleter answers signature prompts and typing-import prompts with
// canned completions, remembering everything it was asked.
type stubCompleter struct {
	signature string
	typing    string
	err       error
	prompts   []string
}

func (s *stubCompleter) CompleteOrShorten(_ context.Context, promptText string) (string, error) {
	s.prompts = append(s.prompts, promptText)
	if s.err != nil {
		return "", s.err
	}
	if strings.HasSuffix(promptText, "from typing import") {
		return s.typing, nil
	}
	return s.signature, nil
}

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestAnnotator(oracle Completer, opts Options) *Annotator {
	return New(oracle, report.New(&bytes.Buffer{}), opts)
}

const sampleSource = `import os

def add(a, b):
    return a + b
`

func TestAnnotateFileSplicesCompletion(t *testing.T) {
	t.Parallel()

	oracle := &stubCompleter{
		signature: " int, b: int) -> int:",
		typing:    " List",
	}
	path := writeSource(t, t.TempDir(), "sample.py", sampleSource)

	if err := newTestAnnotator(oracle, Options{}).AnnotateFile(context.Background(), path); err != nil {
		t.Fatalf("AnnotateFile: %v", err)
	}

	outPath := filepath.Join(filepath.Dir(path), "sample_typed.py")
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("annotated output not written: %v", err)
	}

	want := `from typing import List
import os

def add(a: int, b: int) -> int:
    return a + b
`
	if string(data) != want {
		t.Fatalf("annotated file:\n%q\nwant:\n%q", data, want)
	}

	// The signature prompt puts the body first, then preamble and seed.
	if len(oracle.prompts) != 2 {
		t.Fatalf("oracle saw %d prompts, want 2", len(oracle.prompts))
	}
	wantPrompt := "    return a + b\n\nfrom typing import *\nimport os\n\ndef add(a:"
	if oracle.prompts[0] != wantPrompt {
		t.Fatalf("signature prompt:\n%q\nwant:\n%q", oracle.prompts[0], wantPrompt)
	}
}

func TestAnnotateFileOracleFailureLeavesFunctionUnchanged(t *testing.T) {
	t.Parallel()

	oracle := &stubCompleter{err: errors.New("oracle down")}
	path := writeSource(t, t.TempDir(), "sample.py", sampleSource)

	if err := newTestAnnotator(oracle, Options{}).AnnotateFile(context.Background(), path); err != nil {
		t.Fatalf("AnnotateFile: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(filepath.Dir(path), "sample_typed.py"))
	if err != nil {
		t.Fatal(err)
	}

	// Signature untouched, typing import falls back to a star import.
	want := `from typing import *
import os

def add(a, b):
    return a + b
`
	if string(data) != want {
		t.Fatalf("annotated file:\n%q\nwant:\n%q", data, want)
	}
}

func TestAnnotateFileInPlace(t *testing.T) {
	t.Parallel()

	oracle := &stubCompleter{
		signature: " int, b: int) -> int:",
		typing:    " List",
	}
	path := writeSource(t, t.TempDir(), "sample.py", sampleSource)

	if err := newTestAnnotator(oracle, Options{InPlace: true}).AnnotateFile(context.Background(), path); err != nil {
		t.Fatalf("AnnotateFile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "def add(a: int, b: int) -> int:") {
		t.Fatalf("in-place annotation missing: %q", data)
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(path), "sample_typed.py")); !os.IsNotExist(err) {
		t.Fatal("in-place mode still wrote a suffixed copy")
	}
}

func TestAnnotateFileFullyTypedOnlyRewritesTypingImport(t *testing.T) {
	t.Parallel()

	oracle := &stubCompleter{typing: " Dict, Optional"}
	source := `from typing import *

def mul(a: int, b: int) -> int:
    return a * b
`
	path := writeSource(t, t.TempDir(), "typed.py", source)

	if err := newTestAnnotator(oracle, Options{}).AnnotateFile(context.Background(), path); err != nil {
		t.Fatalf("AnnotateFile: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(filepath.Dir(path), "typed_typed.py"))
	if err != nil {
		t.Fatal(err)
	}

	want := `from typing import Dict, Optional

def mul(a: int, b: int) -> int:
    return a * b
`
	if string(data) != want {
		t.Fatalf("annotated file:\n%q\nwant:\n%q", data, want)
	}
	if len(oracle.prompts) != 1 {
		t.Fatalf("oracle saw %d prompts, want only the typing import", len(oracle.prompts))
	}
}

func TestAnnotatePathDirectorySkipsBrokenFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeSource(t, dir, "good.py", sampleSource)
	writeSource(t, dir, "broken.py", "def broken(:\n")

	var out bytes.Buffer
	oracle := &stubCompleter{
		signature: " int, b: int) -> int:",
		typing:    " List",
	}
	annot := New(oracle, report.New(&out), Options{})

	if err := annot.AnnotatePath(context.Background(), dir); err != nil {
		t.Fatalf("AnnotatePath: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "good_typed.py")); err != nil {
		t.Fatalf("good file not annotated: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "broken_typed.py")); !os.IsNotExist(err) {
		t.Fatal("broken file should have been skipped")
	}
	if !strings.Contains(out.String(), "broken.py") {
		t.Fatalf("skip was not reported: %q", out.String())
	}
}
