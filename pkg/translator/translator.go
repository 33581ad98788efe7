// Package translator provides the Ada to C translation pipeline.
// It transforms Ada source text into a C header and implementation through
// these phases:
// 1. Extractor: function definitions are located in the text
// 2. Model: parameters are parsed and each definition becomes a model.Function
// 3. Codegen: prototypes and definitions are rendered, bodies via the idiom table
//
// The pipeline has no error path over text input. Unrecognised types map to
// float, unrecognised bodies become a placeholder, and definitions that do not
// match are skipped (optionally reported as Diagnostics).
package translator

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/zurustar/ada2c/pkg/source"
	"github.com/zurustar/ada2c/pkg/translator/codegen"
	"github.com/zurustar/ada2c/pkg/translator/extractor"
	"github.com/zurustar/ada2c/pkg/translator/model"
)

// Options provides configuration options for translation.
type Options struct {
	// Codegen controls the names written into the artifacts.
	Codegen codegen.Options

	// Jobs limits how many files are translated concurrently.
	// Zero or less means runtime.GOMAXPROCS(0).
	Jobs int
}

// DefaultOptions returns Options with the default artifact names.
func DefaultOptions() Options {
	return Options{Codegen: codegen.DefaultOptions()}
}

// Result is the translation of a single source text.
type Result struct {
	// FileName is the name of the source file, empty for in-memory text
	FileName string
	// Functions are the extracted functions in discovery order
	Functions []model.Function
	// Diagnostics lists the headers that were skipped
	Diagnostics []*Diagnostic
}

// Artifacts is the output of one translation run.
type Artifacts struct {
	Header         string
	Implementation string

	// Files holds the per-file results in input order.
	Files []*Result
}

// Functions returns every translated function in output order.
func (a *Artifacts) Functions() []model.Function {
	var fns []model.Function
	for _, r := range a.Files {
		fns = append(fns, r.Functions...)
	}
	return fns
}

// Diagnostics returns every diagnostic in input order.
func (a *Artifacts) Diagnostics() []*Diagnostic {
	var diags []*Diagnostic
	for _, r := range a.Files {
		diags = append(diags, r.Diagnostics...)
	}
	return diags
}

// Translate extracts and models the functions of one source text.
func Translate(fileName, src string) *Result {
	units, diags := extractor.Scan(src)

	r := &Result{
		FileName:  fileName,
		Functions: make([]model.Function, 0, len(units)),
	}
	for _, u := range units {
		r.Functions = append(r.Functions, model.New(u))
	}
	for _, d := range diags {
		r.Diagnostics = append(r.Diagnostics, newDiagnostic(fileName, src, d))
	}
	return r
}

// TranslateString translates a single in-memory source into artifacts.
func TranslateString(src string, opts Options) *Artifacts {
	return render([]*Result{Translate("", src)}, opts)
}

// TranslateSources translates files concurrently. The artifacts list the
// functions in input order regardless of which file finished first.
// The only error is ctx being cancelled.
func TranslateSources(ctx context.Context, files []source.File, opts Options) (*Artifacts, error) {
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]*Result, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, f := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			// 各ファイルは独立しているので、結果はインデックスで書き込む
			results[i] = Translate(f.Name, f.Content)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return render(results, opts), nil
}

func render(results []*Result, opts Options) *Artifacts {
	a := &Artifacts{Files: results}
	fns := a.Functions()
	a.Header = codegen.Header(fns, opts.Codegen)
	a.Implementation = codegen.Implementation(fns, opts.Codegen)
	return a
}
