// Package report はレポート生成機能を提供します
package report

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"estrutura/internal/domain/model"
	"estrutura/internal/domain/rule"
	"estrutura/internal/infrastructure/filesystem"
	"estrutura/internal/infrastructure/logging"
)

// レポートの書式
const (
	ReportFileName = "estrutura_pastas.txt"
	Title          = "ESTRUTURA DE PASTAS E ARQUIVOS - MOVEIRAMA"
	RootLabel      = "[RAIZ]"
	FolderGlyph    = "📂"
	FileGlyph      = "📄"
	IndentUnit     = "    "
	SeparatorWidth = 50
)

// SelfExcludedNames はレポートファイル自身と実行ファイル名からなる除外ファイル名の集合を返します
func SelfExcludedNames(executable string) rule.ExcludedNames {
	return rule.NewExcludedNames(ReportFileName, filepath.Base(executable))
}

// Generator はレポート生成機能を提供します
type Generator struct {
	walker filesystem.FileSystemWalker
	logger logging.Logger
}

// NewGenerator は新しい Generator インスタンスを作成します
func NewGenerator(walker filesystem.FileSystemWalker, logger logging.Logger) *Generator {
	if logger == nil {
		logger = logging.Discard{}
	}
	return &Generator{
		walker: walker,
		logger: logger,
	}
}

// CreateOutputFile は dir にレポートファイルを作成します。既存のファイルは切り詰められます
func (g *Generator) CreateOutputFile(dir string) (*os.File, string, error) {
	outputPath := filepath.Join(dir, ReportFileName)

	outputFile, err := os.Create(outputPath)
	if err != nil {
		return nil, "", fmt.Errorf("出力ファイルの作成に失敗しました: %w", err)
	}

	return outputFile, outputPath, nil
}

// WriteHeader はタイトル、ルートのパス、区切り線と空行を出力します
func (g *Generator) WriteHeader(writer io.Writer, root string) error {
	_, err := fmt.Fprintf(writer, "%s\nRaiz: %s\n%s\n\n", Title, root, strings.Repeat("-", SeparatorWidth))
	return err
}

// WriteListing は1つのディレクトリの行と、その直下のファイルの行を出力します
func (g *Generator) WriteListing(writer io.Writer, listing model.DirectoryListing) error {
	for _, entry := range listing.Entries() {
		if _, err := fmt.Fprintln(writer, FormatEntry(entry)); err != nil {
			return err
		}
	}
	return nil
}

// FormatEntry はエントリの深さに応じたインデントを付与した1行を返します
func FormatEntry(entry model.FileSystemEntry) string {
	if entry.IsDir && entry.IsRoot {
		return RootLabel
	}

	indent := strings.Repeat(IndentUnit, entry.Depth)
	if entry.IsDir {
		return fmt.Sprintf("%s%s %s/", indent, FolderGlyph, entry.Name)
	}
	return fmt.Sprintf("%s%s %s", indent, FileGlyph, entry.Name)
}

// Generate は root を走査してレポートファイルを root に書き出し、そのパスを返します
func (g *Generator) Generate(ctx context.Context, root string) (reportPath string, err error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("絶対パスの取得に失敗しました: %w", err)
	}
	if err := g.walker.ValidateDirectoryPath(absRoot); err != nil {
		return "", fmt.Errorf("調査対象フォルダが無効です: %w", err)
	}

	outputFile, outputPath, err := g.CreateOutputFile(absRoot)
	if err != nil {
		return "", err
	}
	defer func() {
		if cerr := outputFile.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("出力ファイルのクローズに失敗しました: %w", cerr)
		}
	}()
	g.logger.Log(logging.LevelInfo, fmt.Sprintf("出力ファイルを作成しました: %s", outputPath), nil)

	if err := g.WriteHeader(outputFile, absRoot); err != nil {
		return "", fmt.Errorf("ヘッダーの書き込みに失敗しました: %w", err)
	}

	var folders, files int
	err = g.walker.Walk(ctx, absRoot, func(listing model.DirectoryListing) error {
		if err := g.WriteListing(outputFile, listing); err != nil {
			return fmt.Errorf("'%s' の書き込みに失敗しました: %w", listing.Path, err)
		}
		folders++
		files += len(listing.Files)
		return nil
	})
	if err != nil {
		g.logger.Log(logging.LevelError, "フォルダ構造のスキャンに失敗", err)
		return "", err
	}

	g.logger.Log(logging.LevelInfo, fmt.Sprintf("レポートを生成しました: フォルダ %d, ファイル %d", folders, files), nil)
	return outputPath, nil
}
