package main

import (
	"io"

	"github.com/fatih/color"
)

// console は人間向けの出力を扱います。構造化ログとは別に、結果だけを短く表示します
type console struct {
	out    io.Writer
	errOut io.Writer
}

func newConsole(out, errOut io.Writer) *console {
	return &console{out: out, errOut: errOut}
}

// Success は成功メッセージを緑色で出力します
func (c *console) Success(format string, args ...interface{}) {
	color.New(color.FgGreen).Fprintf(c.out, format+"\n", args...)
}

// Error はエラーメッセージを赤色で出力します
func (c *console) Error(err error) {
	color.New(color.FgRed).Fprintf(c.errOut, "Error: %s\n", err)
}
