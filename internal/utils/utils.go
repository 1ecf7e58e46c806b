// Package utils holds file-system helpers for walking Python sources.
package utils

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var excludedDirs = map[string]bool{
	".git":        true,
	".venv":       true,
	"venv":        true,
	"__pycache__": true,
	".tox":        true,
	".mypy_cache": true,
	"node_modules": true,
	"dist":        true,
	"build":       true,
}

// PythonFiles walks rootPath recursively and returns every .py file,
// skipping well-known heavy directories and paths matched by a minimal
// subset of root-level .gitignore rules.
func PythonFiles(rootPath string) ([]string, error) {
	var files []string
	ignorePatterns := loadGitIgnorePatterns(rootPath)

	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath, relErr := filepath.Rel(rootPath, path)
		if relErr != nil {
			relPath = path
		}
		relPath = filepath.ToSlash(relPath)

		if d.IsDir() {
			if excludedDirs[d.Name()] {
				return filepath.SkipDir
			}
			if isIgnoredPath(relPath, ignorePatterns) {
				return filepath.SkipDir
			}
			return nil
		}

		if isIgnoredPath(relPath, ignorePatterns) {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".py") {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// loadGitIgnorePatterns reads the root-level .gitignore (if present) and
// returns its non-empty, non-comment patterns.
func loadGitIgnorePatterns(rootPath string) []string {
	data, err := os.ReadFile(filepath.Join(rootPath, ".gitignore"))
	if err != nil {
		return nil
	}

	var patterns []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	return patterns
}

// isIgnoredPath applies a minimal subset of .gitignore semantics, enough
// to skip generated trees and common file patterns. Patterns are treated
// as root-relative against relPath.
func isIgnoredPath(relPath string, patterns []string) bool {
	relPath = strings.TrimPrefix(relPath, "./")
	if relPath == "" || relPath == "." {
		return false
	}
	relPath = filepath.ToSlash(relPath)

	for _, pattern := range patterns {
		p := filepath.ToSlash(strings.TrimSpace(pattern))
		if p == "" {
			continue
		}

		// Directory-style pattern, e.g. "generated/".
		if strings.HasSuffix(p, "/") {
			dir := strings.TrimPrefix(strings.TrimSuffix(p, "/"), "./")
			if relPath == dir || strings.HasPrefix(relPath, dir+"/") {
				return true
			}
			continue
		}

		if ok, _ := filepath.Match(p, relPath); ok {
			return true
		}

		// Bare name pattern without slashes or wildcards matches any
		// path segment.
		if !strings.Contains(p, "/") && !strings.ContainsAny(p, "*?[") {
			if strings.Contains("/"+relPath+"/", "/"+p+"/") {
				return true
			}
		}
	}
	return false
}
