// Package ui はユーザーインターフェース機能を提供します
package ui

import (
	"errors"
	"fmt"

	"github.com/sqweek/dialog"

	"estrutura/internal/infrastructure/filesystem"
)

// ErrCancelled はユーザーがフォルダ選択をキャンセルしたことを表します
var ErrCancelled = errors.New("フォルダの選択がキャンセルされました")

// BrowseFunc はタイトルを受け取り、選択されたディレクトリのパスを返します
type BrowseFunc func(title string) (string, error)

// DirectorySelector はディレクトリ選択機能を提供します
type DirectorySelector struct {
	// validator はディレクトリパスの検証を行うインターフェースです
	validator filesystem.DirectoryValidator
	browse    BrowseFunc
}

// NewDirectorySelector はネイティブのフォルダ選択ダイアログを使う DirectorySelector を作成します
func NewDirectorySelector(validator filesystem.DirectoryValidator) *DirectorySelector {
	return NewDirectorySelectorWith(validator, nativeBrowse)
}

// NewDirectorySelectorWith は任意の BrowseFunc を使う DirectorySelector を作成します
func NewDirectorySelectorWith(validator filesystem.DirectoryValidator, browse BrowseFunc) *DirectorySelector {
	return &DirectorySelector{validator: validator, browse: browse}
}

// SelectDirectory はダイアログを表示してディレクトリを選択します
func (d *DirectorySelector) SelectDirectory(title string) (string, error) {
	selectedDir, err := d.browse(title)
	if err != nil {
		return "", fmt.Errorf("ディレクトリの選択がキャンセルまたはエラーになりました: %w", err)
	}

	if err := d.validator.ValidateDirectoryPath(selectedDir); err != nil {
		return "", fmt.Errorf("無効なディレクトリが選択されました: %w", err)
	}

	return selectedDir, nil
}

func nativeBrowse(title string) (string, error) {
	dir, err := dialog.Directory().Title(title).Browse()
	if errors.Is(err, dialog.ErrCancelled) {
		return "", ErrCancelled
	}
	return dir, err
}
