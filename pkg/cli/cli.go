package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Config はコマンドライン引数から解析された設定を保持する
type Config struct {
	Inputs      []string // Adaソースファイルまたはディレクトリ（省略時はマニフェストに従う）
	ConfigPath  string   // ada2c.toml のパス（空の場合は上位ディレクトリを探索）
	OutputDir   string   // 生成ファイルの出力先ディレクトリ
	LogLevel    string   // ログレベル（debug, info, warn, error）
	Jobs        int      // 並列に翻訳するファイル数（0はCPU数）
	Stdout      bool     // 生成結果を標準出力に書き出す
	NoCompare   bool     // 既存のC実装との比較を行わない
	Diagnostics bool     // 抽出できなかった関数を警告として報告する
	ShowHelp    bool     // ヘルプ表示フラグ
}

// boolFlags は値を取らないフラグ
var boolFlags = map[string]bool{
	"stdout":      true,
	"no-compare":  true,
	"diagnostics": true,
	"help":        true,
	"h":           true,
}

// ParseArgs コマンドライン引数を解析してConfigを返す
func ParseArgs(args []string) (*Config, error) {
	// 引数を並べ替え：フラグを前に、位置引数を後ろに
	reorderedArgs := reorderArgs(args)

	fs := flag.NewFlagSet("ada2c", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	config := &Config{}

	fs.StringVar(&config.ConfigPath, "config", "", "ada2c.toml のパス")
	fs.StringVar(&config.ConfigPath, "c", "", "ada2c.toml のパス（短縮形）")
	fs.StringVar(&config.OutputDir, "out", "", "出力先ディレクトリ")
	fs.StringVar(&config.OutputDir, "o", "", "出力先ディレクトリ（短縮形）")
	fs.StringVar(&config.LogLevel, "log-level", "info", "ログレベル（debug, info, warn, error）")
	fs.StringVar(&config.LogLevel, "l", "info", "ログレベル（短縮形）")
	fs.IntVar(&config.Jobs, "jobs", 0, "並列数")
	fs.IntVar(&config.Jobs, "j", 0, "並列数（短縮形）")
	fs.BoolVar(&config.Stdout, "stdout", false, "生成結果を標準出力に書き出す")
	fs.BoolVar(&config.NoCompare, "no-compare", false, "既存実装との比較を行わない")
	fs.BoolVar(&config.Diagnostics, "diagnostics", false, "抽出できなかった関数を報告する")
	fs.BoolVar(&config.ShowHelp, "help", false, "ヘルプを表示")
	fs.BoolVar(&config.ShowHelp, "h", false, "ヘルプを表示（短縮形）")

	if err := fs.Parse(reorderedArgs); err != nil {
		return nil, err
	}

	// 環境変数からログレベルを取得（コマンドラインフラグが優先）
	if !isSet(fs, "log-level", "l") {
		if logLevelEnv := os.Getenv("LOG_LEVEL"); logLevelEnv != "" {
			config.LogLevel = strings.ToLower(logLevelEnv)
		}
	}

	// 環境変数から並列数を取得（コマンドラインフラグが優先）
	if !isSet(fs, "jobs", "j") {
		if jobsEnv := os.Getenv("ADA2C_JOBS"); jobsEnv != "" {
			j, err := strconv.Atoi(jobsEnv)
			if err != nil {
				return nil, fmt.Errorf("invalid ADA2C_JOBS: %q", jobsEnv)
			}
			config.Jobs = j
		}
	}

	// 並列数の検証
	if config.Jobs < 0 {
		return nil, fmt.Errorf("jobs must be non-negative, got %d", config.Jobs)
	}

	// ログレベルの検証
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[config.LogLevel] {
		return nil, fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", config.LogLevel)
	}

	// 位置引数（Adaファイルまたはディレクトリ）
	config.Inputs = fs.Args()

	return config, nil
}

// isSet いずれかの名前のフラグが明示的に指定されたか
func isSet(fs *flag.FlagSet, names ...string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		for _, name := range names {
			if f.Name == name {
				found = true
			}
		}
	})
	return found
}

// reorderArgs 引数を並べ替えて、フラグを前に、位置引数を後ろに配置する
func reorderArgs(args []string) []string {
	var flags []string
	var positional []string

	for i := 0; i < len(args); i++ {
		arg := args[i]

		// "--" 以降はすべて位置引数
		if arg == "--" {
			positional = append(positional, args[i+1:]...)
			break
		}

		// フラグかどうかを判定（-または--で始まる）
		if len(arg) > 1 && arg[0] == '-' {
			flags = append(flags, arg)

			name := strings.TrimLeft(arg, "-")
			if strings.Contains(name, "=") || boolFlags[name] {
				continue
			}

			// 値を取るフラグは次の引数も追加（-j 4 のような場合）
			if i+1 < len(args) {
				i++
				flags = append(flags, args[i])
			}
		} else {
			// 位置引数
			positional = append(positional, arg)
		}
	}

	// フラグを前に、位置引数を後ろに配置（"-" で始まるファイル名を守るため "--" で区切る）
	if len(positional) == 0 {
		return flags
	}
	flags = append(flags, "--")
	return append(flags, positional...)
}

// PrintHelp ヘルプメッセージを表示
func PrintHelp(w io.Writer) {
	fmt.Fprintf(w, `ada2c - Ada to C synchronization tool

Usage:
  ada2c [options] [source.adb | directory ...]

Arguments:
  source.adb    翻訳するAdaファイル（複数指定可）
  directory     ディレクトリを指定した場合、.adb/.ads ファイルをすべて翻訳
                省略時は ada2c.toml の [source] 設定（既定: library.adb, library_c_wrapper.adb）

Options:
  -c, --config <path>         ada2c.toml のパス（既定: 上位ディレクトリを探索）
  -o, --out <dir>             生成ファイルの出力先ディレクトリ
  -l, --log-level <level>     ログレベル: debug, info, warn, error（デフォルト: info）
  -j, --jobs <n>              並列に翻訳するファイル数（デフォルト: CPU数）
  --stdout                    ファイルに書かず標準出力に出力
  --no-compare                既存のC実装との比較を行わない
  --diagnostics               抽出できなかった関数定義を警告として表示
  -h, --help                  このヘルプを表示

Environment Variables:
  LOG_LEVEL=<level>           ログレベル
  ADA2C_JOBS=<n>              並列数

Examples:
  ada2c                               カレントディレクトリの library.adb などを翻訳
  ada2c library.adb -o jni            jni/ に ada_math_generated.{h,c} を生成
  ada2c --stdout src/                 src/ 以下のAdaファイルを翻訳して表示
  LOG_LEVEL=debug ada2c --diagnostics デバッグログと診断を有効化
`)
}
