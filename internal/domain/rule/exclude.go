// Package rule は走査対象から外す要素の判定ルールを提供します
package rule

import "strings"

// Predicate は名前を受け取り、除外対象であれば true を返す関数です
type Predicate func(name string) bool

// HiddenOrDunder は "." または "__" で始まる名前を除外します（.git, __pycache__ など）
func HiddenOrDunder(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "__")
}

// None はどの名前も除外しません
func None(string) bool { return false }

// ExcludedNames は完全一致で比較する除外ファイル名の集合です
type ExcludedNames map[string]struct{}

// NewExcludedNames は与えられた名前から ExcludedNames を作成します。空文字は無視されます
func NewExcludedNames(names ...string) ExcludedNames {
	set := make(ExcludedNames, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		set[name] = struct{}{}
	}
	return set
}

// Contains は name が集合に含まれるかを返します
func (s ExcludedNames) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// Predicate は集合を Predicate として返します
func (s ExcludedNames) Predicate() Predicate {
	return s.Contains
}
