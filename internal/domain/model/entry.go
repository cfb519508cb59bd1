// package model はドメインモデルを定義します
package model

// FileSystemEntry はレポートの1行に対応する要素（ファイルまたはディレクトリ）を表します
type FileSystemEntry struct {
	// Name は要素のベース名を表します
	Name string
	// IsDir はディレクトリであるかどうかを示します
	IsDir bool
	// IsRoot は走査のルートディレクトリであるかどうかを示します
	IsRoot bool
	// Depth はルートディレクトリからの深さを表します（ルートは0）
	Depth int
}

// DirectoryListing は走査中に訪問した1つのディレクトリを表します
type DirectoryListing struct {
	// Path はディレクトリの絶対パスを表します
	Path string
	// Name はディレクトリのベース名を表します
	Name string
	// Depth はルートディレクトリからの深さを表します
	Depth int
	// IsRoot はルートディレクトリであるかどうかを示します
	IsRoot bool
	// Files は直下にある（除外済みの）ファイル名の一覧です
	Files []string
}

// Entries はディレクトリ自身の行と直下のファイル行を出力順に返します
func (l DirectoryListing) Entries() []FileSystemEntry {
	entries := make([]FileSystemEntry, 0, len(l.Files)+1)
	entries = append(entries, FileSystemEntry{
		Name:   l.Name,
		IsDir:  true,
		IsRoot: l.IsRoot,
		Depth:  l.Depth,
	})
	for _, name := range l.Files {
		entries = append(entries, FileSystemEntry{
			Name:  name,
			Depth: l.Depth + 1,
		})
	}
	return entries
}
