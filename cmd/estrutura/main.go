// Package main はアプリケーションのエントリーポイントを提供します
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"estrutura/internal/infrastructure/filesystem"
	"estrutura/internal/infrastructure/logging"
	"estrutura/internal/interface/ui"
	"estrutura/internal/usecase/report"
)

const selectTitle = "Selecione a pasta raiz"

// app はコマンドの実行に必要な入出力をまとめます
type app struct {
	stdout     io.Writer
	stderr     io.Writer
	executable string
	browse     ui.BrowseFunc

	root       string
	selectRoot bool
	verbose    bool
}

func newRootCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "estrutura",
		Short: "フォルダとファイルの構成を estrutura_pastas.txt に書き出します",
		Long: `カレントディレクトリ（または --root で指定したフォルダ）以下を走査し、
フォルダとファイルの一覧を深さに応じてインデントして estrutura_pastas.txt に書き出します。
"." または "__" で始まるフォルダは走査しません。`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&a.root, "root", "r", "", "走査するフォルダ（省略時はカレントディレクトリ）")
	cmd.Flags().BoolVarP(&a.selectRoot, "select", "s", false, "ダイアログで走査するフォルダを選択する")
	cmd.Flags().BoolVarP(&a.verbose, "verbose", "v", false, "デバッグログを出力する")
	cmd.MarkFlagsMutuallyExclusive("root", "select")

	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)
	return cmd
}

func (a *app) run(ctx context.Context) error {
	// ロガーの初期化
	logger := logging.NewJSONLogger(a.stderr)
	if a.verbose {
		logger.SetLevel(logging.LevelDebug)
	} else {
		logger.SetLevel(logging.LevelWarn)
	}

	// レポートファイルと実行ファイル自身は一覧に含めない
	scanner := filesystem.NewScanner(logger,
		filesystem.WithFileFilter(report.SelfExcludedNames(a.executable).Predicate()))
	generator := report.NewGenerator(scanner, logger)

	root, err := a.resolveRoot(scanner)
	if err != nil {
		logger.Log(logging.LevelError, "フォルダ選択に失敗", err)
		return err
	}
	logger.Log(logging.LevelInfo, fmt.Sprintf("調査対象: %s", root), nil)

	outputPath, err := generator.Generate(ctx, root)
	if err != nil {
		return err
	}

	logger.Log(logging.LevelInfo, "処理が完了しました", nil)
	newConsole(a.stdout, a.stderr).Success("Sucesso! A estrutura foi salva em: %s", outputPath)
	return nil
}

func (a *app) resolveRoot(validator filesystem.DirectoryValidator) (string, error) {
	switch {
	case a.selectRoot:
		browse := a.browse
		if browse == nil {
			return ui.NewDirectorySelector(validator).SelectDirectory(selectTitle)
		}
		return ui.NewDirectorySelectorWith(validator, browse).SelectDirectory(selectTitle)
	case a.root != "":
		return a.root, nil
	default:
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("カレントディレクトリの取得に失敗しました: %w", err)
		}
		return wd, nil
	}
}

func executableName() string {
	exe, err := os.Executable()
	if err != nil {
		return os.Args[0]
	}
	return exe
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	a := &app{
		stdout:     os.Stdout,
		stderr:     os.Stderr,
		executable: executableName(),
	}
	err := newRootCommand(a).ExecuteContext(ctx)
	stop()

	if err != nil {
		newConsole(os.Stdout, os.Stderr).Error(err)
		os.Exit(1)
	}
}
