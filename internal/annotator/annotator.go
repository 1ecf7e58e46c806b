// Package annotator drives the per-file annotation pipeline: scan for
// incompletely typed functions, ask the oracle for the missing pieces and
// splice the results back into the file.
package annotator

import (
	"context"
	"fmt"
	"os"

	"autotyper/internal/analyzer"
	"autotyper/internal/parser"
	"autotyper/internal/prompt"
	"autotyper/internal/report"
	"autotyper/internal/rewriter"
	"autotyper/internal/utils"
)

// Completer is the completion oracle the pipeline depends on.
type Completer interface {
	CompleteOrShorten(ctx context.Context, promptText string) (string, error)
}

// Options controls where annotated output goes.
type Options struct {
	InPlace      bool
	NamingFormat string // used when not editing in place
}

// DefaultNamingFormat mirrors the historical output convention.
const DefaultNamingFormat = "{filename}_typed.{ext}"

// Annotator processes files one at a time, functions one at a time. A
// failed completion leaves that function unmodified and never aborts the
// file or the run.
type Annotator struct {
	oracle   Completer
	reporter *report.Reporter
	opts     Options
}

func New(oracle Completer, reporter *report.Reporter, opts Options) *Annotator {
	if opts.NamingFormat == "" {
		opts.NamingFormat = DefaultNamingFormat
	}
	return &Annotator{oracle: oracle, reporter: reporter, opts: opts}
}

// AnnotatePath annotates a single file, or every Python file under a
// directory. In directory mode a file that fails to parse is reported and
// skipped; the batch continues.
func (a *Annotator) AnnotatePath(ctx context.Context, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return a.AnnotateFile(ctx, path)
	}

	files, err := utils.PythonFiles(path)
	if err != nil {
		return err
	}
	for _, file := range files {
		if err := a.AnnotateFile(ctx, file); err != nil {
			a.reporter.Warnf("✗ %s: %v", file, err)
		}
	}
	return nil
}

// AnnotateFile runs the full pipeline over one file.
func (a *Annotator) AnnotateFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	content := string(data)

	tree, err := parser.Parse(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	defer tree.Close()

	firstImport, hasImport := tree.FirstImportLine()
	edit := rewriter.NewFileEdit(content)

	ranges, diags := analyzer.ScanTree(tree)
	a.reporter.Diagnostics(diags)

	for _, sig := range ranges {
		a.reporter.Range(path, sig)

		seed := ""
		switch sig.Typedness {
		case analyzer.MissingArgs:
			seed = prompt.SeedForArgs(sig.Fn)
		case analyzer.MissingReturn:
			seed = prompt.SeedForReturn(sig.Fn)
		default:
			a.reporter.Skip()
			continue
		}
		a.reporter.Seed(seed)

		prepped := prompt.Build(content, sig, seed, importLineArg(firstImport, hasImport))
		completion, err := a.oracle.CompleteOrShorten(ctx, prepped)
		if err != nil {
			a.reporter.Warnf("failed to find completion: %v", err)
			a.reporter.Warnf("using original function")
			continue
		}

		a.reporter.Completion(completion)
		edit.ReplaceRange(sig.StartLine, sig.EndLine, seed+completion+"\n")
	}

	a.completeTypingImport(ctx, tree, content, edit, firstImport, hasImport)

	return a.write(path, edit.Content())
}

// completeTypingImport synthesizes a precise typing import for the whole
// file and installs it, replacing an existing typing import or inserting
// above the first import. On oracle failure it falls back to a star import.
func (a *Annotator) completeTypingImport(ctx context.Context, tree *parser.Tree, content string, edit *rewriter.FileEdit, firstImport int, hasImport bool) {
	completion, err := a.oracle.CompleteOrShorten(ctx, content+"\nfrom typing import")
	if err != nil {
		a.reporter.Warnf("failed to complete typing import: %v", err)
		a.reporter.Warnf("using from typing import * instead")
		completion = " *"
	}
	importLine := "from typing import" + completion + "\n"

	if typingLine, ok := tree.TypingImportLine(); ok {
		edit.ReplaceRange(typingLine, typingLine, importLine)
		return
	}
	if hasImport {
		edit.InsertBefore(firstImport, importLine)
		return
	}
	edit.InsertBefore(1, importLine)
}

func (a *Annotator) write(path, content string) error {
	outPath := path
	if !a.opts.InPlace {
		outPath = rewriter.OutputPath(path, a.opts.NamingFormat)
	}
	if err := os.WriteFile(outPath, []byte(content), 0o644); err != nil {
		return err
	}
	a.reporter.Infof("✓ Wrote %s", outPath)
	return nil
}

func importLineArg(line int, ok bool) int {
	if !ok {
		return 0
	}
	return line
}
