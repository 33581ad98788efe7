package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/zurustar/ada2c/pkg/cli"
	"github.com/zurustar/ada2c/pkg/consistency"
	"github.com/zurustar/ada2c/pkg/logger"
	"github.com/zurustar/ada2c/pkg/manifest"
	"github.com/zurustar/ada2c/pkg/source"
	"github.com/zurustar/ada2c/pkg/translator"
	"github.com/zurustar/ada2c/pkg/translator/codegen"
)

// Application はアプリケーションのメインロジックを管理する
type Application struct {
	config   *cli.Config
	log      *slog.Logger
	manifest *manifest.Manifest
	stdout   io.Writer
	logOut   io.Writer
	workDir  string
}

// New Applicationを作成
func New() *Application {
	return &Application{
		stdout:  os.Stdout,
		logOut:  os.Stderr,
		workDir: ".",
	}
}

// SetOutput ヘルプや --stdout の出力先を変更する
func (app *Application) SetOutput(w io.Writer) {
	app.stdout = w
}

// SetLogOutput ログの出力先を変更する
func (app *Application) SetLogOutput(w io.Writer) {
	app.logOut = w
}

// SetWorkDir 相対パスとマニフェスト探索の起点を変更する
func (app *Application) SetWorkDir(dir string) {
	app.workDir = dir
}

// Run アプリケーションを実行
func (app *Application) Run(ctx context.Context, args []string) error {
	// 1. コマンドライン引数の解析
	if err := app.parseArgs(args); err != nil {
		return fmt.Errorf("failed to parse args: %w", err)
	}

	if app.config.ShowHelp {
		cli.PrintHelp(app.stdout)
		return nil
	}

	// 2. ロガーの初期化
	if err := app.initLogger(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.log.Info("Ada to C synchronization started")

	// 3. マニフェストの読み込み
	if err := app.loadManifest(); err != nil {
		return fmt.Errorf("failed to load manifest: %w", err)
	}

	// 4. Adaソースの検出と読み込み
	logger.LogPhase("load")
	files, err := app.loadSources()
	if err != nil {
		return fmt.Errorf("failed to load sources: %w", err)
	}

	app.log.Info("Found Ada files", "count", len(files))
	for _, f := range files {
		app.log.Info("Ada file", "name", f.Name, "size", f.Size)
		app.log.Debug("Source content preview", "name", f.Name, "preview", truncate(f.Content, 100))
	}
	logger.LogPhaseComplete("load", "files", len(files))

	// 5. 翻訳
	logger.LogPhase("translate")
	artifacts, err := translator.TranslateSources(ctx, files, app.translatorOptions())
	if err != nil {
		return fmt.Errorf("failed to translate sources: %w", err)
	}

	fns := artifacts.Functions()
	for _, fn := range fns {
		app.log.Info("Function", "signature", fn.Signature(), "symbol", fn.Symbol())
	}
	app.reportDiagnostics(artifacts.Diagnostics())
	logger.LogPhaseComplete("translate", "functions", len(fns))

	if len(fns) == 0 {
		app.log.Warn("No functions found in Ada files, nothing generated")
		return nil
	}

	// 6. 生成ファイルの出力
	if app.config.Stdout {
		fmt.Fprint(app.stdout, artifacts.Header)
		fmt.Fprint(app.stdout, artifacts.Implementation)
	} else if err := app.writeArtifacts(artifacts); err != nil {
		return fmt.Errorf("failed to write generated files: %w", err)
	}

	// 7. 既存実装との比較
	if err := app.compare(artifacts.Implementation); err != nil {
		return fmt.Errorf("failed to compare with existing implementation: %w", err)
	}

	app.log.Info("Ada to C synchronization completed", "functions", len(fns))
	return nil
}

// parseArgs コマンドライン引数を解析
func (app *Application) parseArgs(args []string) error {
	config, err := cli.ParseArgs(args)
	if err != nil {
		return err
	}
	app.config = config
	return nil
}

// initLogger ロガーを初期化
func (app *Application) initLogger() error {
	if err := logger.InitLoggerWithWriter(app.config.LogLevel, app.logOut); err != nil {
		return err
	}
	app.log = logger.GetLogger()
	return nil
}

// loadManifest --config の指定、上位ディレクトリの ada2c.toml、既定値の順に設定を決める
func (app *Application) loadManifest() error {
	if app.config.ConfigPath != "" {
		m, err := manifest.Load(app.resolve(app.config.ConfigPath))
		if err != nil {
			return err
		}
		app.manifest = m
		app.log.Info("Manifest loaded", "dir", m.Dir)
		return nil
	}

	m, err := manifest.FindAndLoad(app.workDir)
	if errors.Is(err, manifest.ErrNotFound) {
		m = manifest.Default()
		m.Dir = app.workDir
		app.log.Debug("No manifest found, using defaults")
	} else if err != nil {
		return err
	} else {
		app.log.Info("Manifest loaded", "dir", m.Dir)
	}

	app.manifest = m
	return nil
}

// loadSources 位置引数またはマニフェストに従ってAdaファイルを読み込む
func (app *Application) loadSources() ([]source.File, error) {
	enc := app.manifest.Source.Encoding

	if len(app.config.Inputs) == 0 {
		loader := source.NewLoader(app.manifest.SourceDir(), enc)

		var names []string
		if len(app.manifest.Source.Files) == 0 {
			// files = [] の場合はディレクトリ内のすべてのAdaファイル
			all, err := loader.FindAll()
			if err != nil {
				return nil, err
			}
			names = all
		} else {
			names = loader.Find(app.manifest.Source.Files)
		}
		return loader.LoadAll(names)
	}

	var files []source.File
	for _, input := range app.config.Inputs {
		p := app.resolve(input)
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", input, err)
		}

		if info.IsDir() {
			loader := source.NewLoader(p, enc)
			names, err := loader.FindAll()
			if err != nil {
				return nil, err
			}
			loaded, err := loader.LoadAll(names)
			if err != nil {
				return nil, err
			}
			files = append(files, loaded...)
			continue
		}

		f, err := source.NewLoader(filepath.Dir(p), enc).Load(filepath.Base(p))
		if err != nil {
			return nil, err
		}
		files = append(files, *f)
	}
	return files, nil
}

// translatorOptions 生成Cファイルが生成ヘッダーをincludeするように名前を設定
func (app *Application) translatorOptions() translator.Options {
	return translator.Options{
		Codegen: codegen.Options{
			HeaderName: app.manifest.Output.Header,
			Generator:  "ada2c",
		},
		Jobs: app.config.Jobs,
	}
}

// writeArtifacts ヘッダーと実装を出力ディレクトリに書き込む
func (app *Application) writeArtifacts(a *translator.Artifacts) error {
	headerPath := app.manifest.HeaderPath()
	implPath := app.manifest.ImplementationPath()
	if app.config.OutputDir != "" {
		dir := app.resolve(app.config.OutputDir)
		headerPath = filepath.Join(dir, app.manifest.Output.Header)
		implPath = filepath.Join(dir, app.manifest.Output.Implementation)
	}

	for _, out := range []struct {
		path    string
		content string
	}{
		{headerPath, a.Header},
		{implPath, a.Implementation},
	} {
		if err := os.MkdirAll(filepath.Dir(out.path), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(out.path, []byte(out.content), 0o644); err != nil {
			return err
		}
		app.log.Info("Generated file", "path", out.path, "size", len(out.content))
	}
	return nil
}

// compare 生成した実装が既存の実装に含まれているかを確認して報告する
func (app *Application) compare(implementation string) error {
	if app.config.NoCompare || !app.manifest.Compare.Enabled {
		return nil
	}

	out := app.manifest.Output
	report, err := consistency.CheckFile(implementation, app.manifest.ReferencePath(), out.Header, out.CanonicalHeader)
	if err != nil {
		return err
	}

	switch {
	case report.Skipped:
		app.log.Debug("Reference implementation not found, comparison skipped", "path", report.Reference)
	case report.Match:
		app.log.Info("Generated code matches existing implementation", "path", report.Reference)
	default:
		app.log.Warn("Generated code differs from existing implementation", "path", report.Reference)
	}
	return nil
}

// reportDiagnostics --diagnostics 指定時に抽出できなかった関数を警告する
func (app *Application) reportDiagnostics(diags []*translator.Diagnostic) {
	if !app.config.Diagnostics {
		return
	}
	for _, d := range diags {
		app.log.Warn("Function definition skipped",
			"file", d.File,
			"function", d.Function,
			"line", d.Line,
			"column", d.Column,
			"reason", d.Message)
		app.log.Debug("Skipped definition context", "context", d.Context)
	}
}

// resolve 作業ディレクトリからの相対パスに変換
func (app *Application) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(app.workDir, p)
}

// truncate 文字列を指定した長さで切り詰める
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
