package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bgaffney/scalpel/pkg/config"
	"github.com/bgaffney/scalpel/pkg/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func relPaths(t *testing.T, root string, files []string) []string {
	t.Helper()
	out := make([]string, 0, len(files))
	for _, f := range files {
		rel, err := filepath.Rel(root, f)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func TestScanDir(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"main.py":                     "x = 1\n",
		"src/service.ts":              "const a = 1;\n",
		"src/service.test.ts":         "const a = 1;\n",
		"src/types.d.ts":              "export type X = number;\n",
		"node_modules/lib/index.js":   "var x = 1;\n",
		"__pycache__/cached.py":       "x = 1\n",
		"README.md":                   "# readme\n",
		"internal/handler.go":         "package handler\n",
		"internal/handler_test.go":    "package handler\n",
		"vendor/dep/dep.go":           "package dep\n",
		"scripts/build.sh":            "echo hi\n",
	})

	s := New(nil)
	files, err := s.ScanDir(root)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"internal/handler.go",
		"main.py",
		"src/service.ts",
	}, relPaths(t, root, files))
}

func TestScanDir_GitignorePatterns(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".gitignore":       "generated/\nscratch.py\n",
		"main.py":          "x = 1\n",
		"scratch.py":       "x = 1\n",
		"generated/gen.py": "x = 1\n",
	})
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".git"), 0o755))

	s := New(nil)
	files, err := s.ScanDir(root)
	require.NoError(t, err)

	assert.Equal(t, []string{"main.py"}, relPaths(t, root, files))
}

func TestScanDir_GitignoreDisabled(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".gitignore": "scratch.py\n",
		"main.py":    "x = 1\n",
		"scratch.py": "x = 1\n",
	})
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".git"), 0o755))

	cfg := config.DefaultConfig()
	cfg.Exclude.Gitignore = false

	files, err := New(cfg).ScanDir(root)
	require.NoError(t, err)

	assert.Equal(t, []string{"main.py", "scratch.py"}, relPaths(t, root, files))
}

func TestScanDir_CustomExcludes(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"keep.py":          "x = 1\n",
		"skip_me.py":       "x = 1\n",
		"legacy/old.py":    "x = 1\n",
	})

	cfg := config.DefaultConfig()
	cfg.Exclude.Patterns = append(cfg.Exclude.Patterns, "skip_*.py")
	cfg.Exclude.Dirs = append(cfg.Exclude.Dirs, "legacy")

	files, err := New(cfg).ScanDir(root)
	require.NoError(t, err)

	assert.Equal(t, []string{"keep.py"}, relPaths(t, root, files))
}

func TestScanFile(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"main.py":   "x = 1\n",
		"notes.txt": "hello\n",
	})

	s := New(nil)

	ok, err := s.ScanFile(filepath.Join(root, "main.py"))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.ScanFile(filepath.Join(root, "notes.txt"))
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = s.ScanFile(root)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = s.ScanFile(filepath.Join(root, "missing.py"))
	assert.Error(t, err)
}

func TestGroupByLanguage(t *testing.T) {
	s := New(nil)
	groups := s.GroupByLanguage([]string{
		"a.py", "b.py", "c.ts", "d.go", "e.txt",
	})

	assert.Equal(t, []string{"a.py", "b.py"}, groups[parser.LangPython])
	assert.Equal(t, []string{"c.ts"}, groups[parser.LangTypeScript])
	assert.Equal(t, []string{"d.go"}, groups[parser.LangGo])
	assert.NotContains(t, groups, parser.LangUnknown)
}
