// Package source discovers and loads Ada source files.
package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"

	"github.com/zurustar/ada2c/pkg/fileutil"
)

// EncodingAuto は UTF-8 として妥当ならそのまま、そうでなければ Latin-1 として読む
const EncodingAuto = "auto"

// ErrNoSources は対象のAdaファイルが一つも見つからなかったことを示す
var ErrNoSources = errors.New("no Ada files found")

// File はAdaソースファイルを表す
type File struct {
	Name    string // ファイル名
	Path    string // ローダーのディレクトリからの相対パス
	Content string // UTF-8に変換された内容
	Size    int64  // ファイルサイズ
}

// Loader はAdaソースファイルの検出と読み込みを行う
type Loader struct {
	dir      string
	fsys     fs.FS
	encoding string
}

// NewLoader ディレクトリを起点とするLoaderを作成
func NewLoader(dir, encodingName string) *Loader {
	return NewLoaderFS(os.DirFS(dir), dir, encodingName)
}

// NewLoaderFS 任意のfs.FSを起点とするLoaderを作成（テスト用にも使う）
func NewLoaderFS(fsys fs.FS, dir, encodingName string) *Loader {
	if encodingName == "" {
		encodingName = EncodingAuto
	}
	return &Loader{dir: dir, fsys: fsys, encoding: encodingName}
}

// Dir ローダーの起点ディレクトリを返す
func (l *Loader) Dir() string {
	return l.dir
}

// Find 指定された名前のファイルを大文字小文字を無視して探す
// 見つからない名前は飛ばし、見つかったものを指定順に返す
func (l *Loader) Find(names []string) []string {
	var found []string
	for _, name := range names {
		dir, base := path.Split(filepath.ToSlash(name))
		dir = strings.TrimSuffix(dir, "/")
		if dir == "" {
			dir = "."
		}
		p, err := fileutil.FindFileCaseInsensitiveFS(l.fsys, dir, base)
		if err != nil {
			continue
		}
		found = append(found, p)
	}
	return found
}

// FindAll .adb/.ads ファイルを再帰的に検出（case-insensitive）
// 結果は fs.WalkDir の辞書順
func (l *Loader) FindAll() ([]string, error) {
	var files []string
	err := fs.WalkDir(l.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if fileutil.HasExtFold(p, ".adb", ".ads") {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", l.dir, err)
	}
	return files, nil
}

// Load 単一のファイルを読み込んでUTF-8に変換する
func (l *Loader) Load(name string) (*File, error) {
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", name, err)
	}

	content, err := Decode(data, l.encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to convert encoding for %s: %w", name, err)
	}

	return &File{
		Name:    path.Base(name),
		Path:    name,
		Content: content,
		Size:    int64(len(data)),
	}, nil
}

// LoadAll 複数のファイルを順番に読み込む
func (l *Loader) LoadAll(names []string) ([]File, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoSources, l.dir)
	}

	files := make([]File, 0, len(names))
	for _, name := range names {
		f, err := l.Load(name)
		if err != nil {
			return nil, err
		}
		files = append(files, *f)
	}
	return files, nil
}

// Decode data を指定エンコーディングからUTF-8に変換する
// エンコーディング名は WHATWG のラベル（"utf-8", "iso-8859-1", "shift_jis" など）
func Decode(data []byte, encodingName string) (string, error) {
	if encodingName == "" || strings.EqualFold(encodingName, EncodingAuto) {
		if utf8.Valid(data) {
			return string(data), nil
		}
		return decodeWith(data, charmap.ISO8859_1)
	}

	enc, err := htmlindex.Get(encodingName)
	if err != nil {
		return "", fmt.Errorf("unknown encoding %q: %w", encodingName, err)
	}
	return decodeWith(data, enc)
}

func decodeWith(data []byte, enc encoding.Encoding) (string, error) {
	reader := transform.NewReader(bytes.NewReader(data), enc.NewDecoder())
	out, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("failed to decode: %w", err)
	}
	return string(out), nil
}
