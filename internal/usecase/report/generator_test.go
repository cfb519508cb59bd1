package report

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estrutura/internal/domain/model"
	"estrutura/internal/infrastructure/filesystem"
)

const testExecutable = "/usr/local/bin/estrutura"

func newTestGenerator() *Generator {
	scanner := filesystem.NewScanner(nil,
		filesystem.WithFileFilter(SelfExcludedNames(testExecutable).Predicate()))
	return NewGenerator(scanner, nil)
}

func writeTree(t *testing.T, root string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		full := filepath.Join(root, filepath.FromSlash(p))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte(p), 0644))
	}
}

// readBody はヘッダーを除いたレポート本文を返します
func readBody(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	parts := strings.SplitN(string(data), "\n\n", 2)
	require.Len(t, parts, 2, "ヘッダーの後の空行がない")
	return parts[1]
}

func TestGenerator_CreateOutputFile(t *testing.T) {
	tempDir := t.TempDir()
	existing := filepath.Join(tempDir, ReportFileName)
	require.NoError(t, os.WriteFile(existing, []byte("conteúdo antigo"), 0644))

	file, path, err := newTestGenerator().CreateOutputFile(tempDir)
	require.NoError(t, err)
	defer file.Close()

	assert.Equal(t, existing, path)
	info, err := file.Stat()
	require.NoError(t, err)
	assert.Zero(t, info.Size(), "既存のファイルは切り詰められる")
}

func TestGenerator_CreateOutputFile_MissingDir(t *testing.T) {
	_, _, err := newTestGenerator().CreateOutputFile(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestGenerator_WriteHeader(t *testing.T) {
	var buf strings.Builder
	require.NoError(t, newTestGenerator().WriteHeader(&buf, "/home/moveirama"))

	want := "ESTRUTURA DE PASTAS E ARQUIVOS - MOVEIRAMA\n" +
		"Raiz: /home/moveirama\n" +
		"--------------------------------------------------\n" +
		"\n"
	assert.Equal(t, want, buf.String())
}

func TestFormatEntry(t *testing.T) {
	tests := []struct {
		name  string
		entry model.FileSystemEntry
		want  string
	}{
		{
			name:  "ルート",
			entry: model.FileSystemEntry{Name: "projeto", IsDir: true, IsRoot: true},
			want:  "[RAIZ]",
		},
		{
			name:  "深さ1のフォルダ",
			entry: model.FileSystemEntry{Name: "src", IsDir: true, Depth: 1},
			want:  "    📂 src/",
		},
		{
			name:  "深さ3のフォルダ",
			entry: model.FileSystemEntry{Name: "ui", IsDir: true, Depth: 3},
			want:  "            📂 ui/",
		},
		{
			name:  "ルート直下のファイル",
			entry: model.FileSystemEntry{Name: "package.json", Depth: 1},
			want:  "    📄 package.json",
		},
		{
			name:  "深さ2のファイル",
			entry: model.FileSystemEntry{Name: "page.tsx", Depth: 2},
			want:  "        📄 page.tsx",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatEntry(tt.entry))
		})
	}
}

func TestGenerator_WriteListing(t *testing.T) {
	var buf strings.Builder
	err := newTestGenerator().WriteListing(&buf, model.DirectoryListing{
		Path:  "/test/sub",
		Name:  "sub",
		Depth: 1,
		Files: []string{"b.txt"},
	})
	require.NoError(t, err)
	assert.Equal(t, "    📂 sub/\n        📄 b.txt\n", buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disco cheio") }

func TestGenerator_WriteListing_WriteError(t *testing.T) {
	err := newTestGenerator().WriteListing(failingWriter{}, model.DirectoryListing{Name: "x", IsRoot: true})
	assert.EqualError(t, err, "disco cheio")
}

func TestGenerator_Generate(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a.txt", "notes.md", "sub/b.txt")

	path, err := newTestGenerator().Generate(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, ReportFileName), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	want := "ESTRUTURA DE PASTAS E ARQUIVOS - MOVEIRAMA\n" +
		"Raiz: " + root + "\n" +
		"--------------------------------------------------\n" +
		"\n" +
		"[RAIZ]\n" +
		"    📄 a.txt\n" +
		"    📄 notes.md\n" +
		"    📂 sub/\n" +
		"        📄 b.txt\n"
	assert.Equal(t, want, string(data))
}

func TestGenerator_Generate_ExcludedEntries(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"README.md",
		"estrutura",
		".git/HEAD",
		".git/refs/heads/main",
		"__pycache__/mod.pyc",
		"src/app/page.tsx",
		"src/app/__tests__/page.test.tsx",
		"src/estrutura_pastas.txt",
	)

	path, err := newTestGenerator().Generate(context.Background(), root)
	require.NoError(t, err)

	body := readBody(t, path)
	for _, hidden := range []string{".git", "HEAD", "refs", "__pycache__", "mod.pyc", "__tests__", "page.test.tsx", "estrutura_pastas.txt", "📄 estrutura\n"} {
		assert.NotContains(t, body, hidden)
	}

	want := "[RAIZ]\n" +
		"    📄 README.md\n" +
		"    📂 src/\n" +
		"        📂 app/\n" +
		"            📄 page.tsx\n"
	assert.Equal(t, want, body)
}

func TestGenerator_Generate_Counts(t *testing.T) {
	root := t.TempDir()
	files := []string{
		"one.txt",
		"two.txt",
		"d1/three.txt",
		"d1/d2/four.txt",
		"d1/d2/d3/five.txt",
		"d4/six.txt",
		"d4/estrutura_pastas.txt",
	}
	writeTree(t, root, files...)

	path, err := newTestGenerator().Generate(context.Background(), root)
	require.NoError(t, err)

	var folderLines, fileLines int
	for _, line := range strings.Split(readBody(t, path), "\n") {
		switch {
		case line == RootLabel, strings.Contains(line, FolderGlyph):
			folderLines++
		case strings.Contains(line, FileGlyph):
			fileLines++
		}
	}

	// root, d1, d2, d3, d4
	assert.Equal(t, 5, folderLines)
	// 生成したファイルから d4/estrutura_pastas.txt を除いた数
	assert.Equal(t, len(files)-1, fileLines)
}

func TestGenerator_Generate_Idempotent(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "z.txt", "a.txt", "m/k.txt", "b/c/d.txt")
	generator := newTestGenerator()

	path, err := generator.Generate(context.Background(), root)
	require.NoError(t, err)
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = generator.Generate(context.Background(), root)
	require.NoError(t, err)
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
	assert.NotContains(t, string(second), "📄 "+ReportFileName)
}

func TestGenerator_Generate_RelativeRoot(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a.txt")

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(root))
	t.Cleanup(func() { os.Chdir(wd) })

	path, err := newTestGenerator().Generate(context.Background(), ".")
	require.NoError(t, err)

	abs, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(abs, ReportFileName), got)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "    📄 a.txt\n")
}

func TestGenerator_Generate_InvalidRoot(t *testing.T) {
	_, err := newTestGenerator().Generate(context.Background(), filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestGenerator_Generate_Cancelled(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a.txt")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestGenerator().Generate(ctx, root)
	assert.ErrorIs(t, err, context.Canceled)

	// ヘッダーまでは書き込まれている
	data, err := os.ReadFile(filepath.Join(root, ReportFileName))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), Title))
	assert.NotContains(t, string(data), RootLabel)
}
