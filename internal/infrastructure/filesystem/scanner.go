// Package filesystem はファイルシステム操作を提供します
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/karrick/godirwalk"

	"estrutura/internal/domain/model"
	"estrutura/internal/domain/rule"
	"estrutura/internal/infrastructure/logging"
)

// パス検証のエラー
var (
	ErrEmptyPath    = errors.New("ディレクトリパスが指定されていません")
	ErrNotDirectory = errors.New("指定されたパスはディレクトリではありません")
	ErrNotAbsolute  = errors.New("絶対パスで指定してください")
)

// DirectoryValidator はディレクトリの検証機能を提供するインターフェースです
type DirectoryValidator interface {
	ValidateDirectoryPath(path string) error
}

// VisitFunc は訪問したディレクトリごとに呼ばれます。エラーを返すと走査を中断します
type VisitFunc func(listing model.DirectoryListing) error

// FileSystemWalker はディレクトリツリーを上から順に走査するインターフェースです
type FileSystemWalker interface {
	DirectoryValidator
	Walk(ctx context.Context, rootDir string, visit VisitFunc) error
}

// Option は Scanner の設定を変更します
type Option func(*Scanner)

// WithDirectoryFilter は降りないサブディレクトリの判定を設定します
func WithDirectoryFilter(excluded rule.Predicate) Option {
	return func(s *Scanner) {
		s.dirExcluded = excluded
	}
}

// WithFileFilter は一覧に出さないファイルの判定を設定します
func WithFileFilter(excluded rule.Predicate) Option {
	return func(s *Scanner) {
		s.fileExcluded = excluded
	}
}

// Scanner はファイルシステムをスキャンするための構造体です
type Scanner struct {
	logger       logging.Logger
	dirExcluded  rule.Predicate
	fileExcluded rule.Predicate
	scratch      []byte
}

// NewScanner は新しい Scanner インスタンスを作成します。
// 既定では "." と "__" で始まるディレクトリを除外し、ファイルは除外しません
func NewScanner(logger logging.Logger, opts ...Option) *Scanner {
	if logger == nil {
		logger = logging.Discard{}
	}
	s := &Scanner{
		logger:       logger,
		dirExcluded:  rule.HiddenOrDunder,
		fileExcluded: rule.None,
		scratch:      make([]byte, godirwalk.MinimumScratchBufferSize),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ValidateDirectoryPath はパスが有効な絶対パスのディレクトリであることを確認します
func (s *Scanner) ValidateDirectoryPath(path string) error {
	if path == "" {
		return ErrEmptyPath
	}

	fileInfo, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("ディレクトリが存在しません: %w", err)
	}

	if !fileInfo.IsDir() {
		return fmt.Errorf("%s: %w", path, ErrNotDirectory)
	}

	if !filepath.IsAbs(path) {
		return fmt.Errorf("%s: %w", path, ErrNotAbsolute)
	}

	return nil
}

// Walk は rootDir から深さ優先・行きがけ順でディレクトリを訪問します。
// 各ディレクトリの直下の要素は名前順に並べ、ファイルを通知してからサブディレクトリへ降ります。
// シンボリックリンクはたどりません
func (s *Scanner) Walk(ctx context.Context, rootDir string, visit VisitFunc) error {
	if err := s.ValidateDirectoryPath(rootDir); err != nil {
		return err
	}
	return s.walk(ctx, rootDir, 0, visit)
}

func (s *Scanner) walk(ctx context.Context, dir string, depth int, visit VisitFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.logger.Log(logging.LevelDebug, fmt.Sprintf("ディレクトリを走査: %s", dir), nil)

	dirents, err := godirwalk.ReadDirents(dir, s.scratch)
	if err != nil {
		s.logger.Log(logging.LevelError, fmt.Sprintf("ディレクトリ '%s' の読み込みに失敗", dir), err)
		return fmt.Errorf("ディレクトリ '%s' の読み込みに失敗しました: %w", dir, err)
	}
	sort.Sort(dirents)

	listing := model.DirectoryListing{
		Path:   dir,
		Name:   filepath.Base(dir),
		Depth:  depth,
		IsRoot: depth == 0,
	}

	var subdirs []string
	for _, de := range dirents {
		name := de.Name()

		if s.isDirectory(dir, de) {
			switch {
			case de.IsSymlink():
				s.logger.Log(logging.LevelDebug, fmt.Sprintf("ディレクトリへのシンボリックリンクをスキップ: %s", name), nil)
			case s.dirExcluded(name):
				s.logger.Log(logging.LevelDebug, fmt.Sprintf("除外ディレクトリをスキップ: %s", name), nil)
			default:
				subdirs = append(subdirs, name)
			}
			continue
		}

		if s.fileExcluded(name) {
			s.logger.Log(logging.LevelDebug, fmt.Sprintf("除外ファイルをスキップ: %s", filepath.Join(dir, name)), nil)
			continue
		}
		listing.Files = append(listing.Files, name)
	}

	if err := visit(listing); err != nil {
		return err
	}

	for _, name := range subdirs {
		if err := s.walk(ctx, filepath.Join(dir, name), depth+1, visit); err != nil {
			return err
		}
	}
	return nil
}

// isDirectory はリンク先がディレクトリのシンボリックリンクも true とします。
// リンク切れはファイルとして扱います
func (s *Scanner) isDirectory(dir string, de *godirwalk.Dirent) bool {
	if de.IsDir() {
		return true
	}
	if !de.IsSymlink() {
		return false
	}
	info, err := os.Stat(filepath.Join(dir, de.Name()))
	if err != nil {
		return false
	}
	return info.IsDir()
}
