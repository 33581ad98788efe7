package translator

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"

	"github.com/zurustar/ada2c/pkg/source"
)

// TestGolden translates testdata/*.txtar archives. Each archive holds
// input.adb and the expected header.h and impl.c.
func TestGolden(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "*.txtar"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Fatal("no golden archives found")
	}

	for _, path := range paths {
		t.Run(strings.TrimSuffix(filepath.Base(path), ".txtar"), func(t *testing.T) {
			ar, err := txtar.ParseFile(path)
			if err != nil {
				t.Fatalf("failed to parse %s: %v", path, err)
			}
			files := map[string]string{}
			for _, f := range ar.Files {
				files[f.Name] = string(f.Data)
			}
			for _, name := range []string{"input.adb", "header.h", "impl.c"} {
				if _, ok := files[name]; !ok {
					t.Fatalf("%s: missing %s", path, name)
				}
			}

			got := TranslateString(files["input.adb"], DefaultOptions())
			if got.Header != files["header.h"] {
				t.Errorf("header mismatch\n--- got ---\n%s\n--- want ---\n%s", got.Header, files["header.h"])
			}
			if got.Implementation != files["impl.c"] {
				t.Errorf("implementation mismatch\n--- got ---\n%s\n--- want ---\n%s", got.Implementation, files["impl.c"])
			}
		})
	}
}

func TestTranslate_ScenarioA(t *testing.T) {
	a := TranslateString("function Add(A, B : Float) return Float is begin return A + B; end Add;", DefaultOptions())
	if !strings.Contains(a.Header, "float ada_add(float a, float b);") {
		t.Errorf("header missing declaration:\n%s", a.Header)
	}
	if !strings.Contains(a.Implementation, "return a + b;") {
		t.Errorf("implementation missing body:\n%s", a.Implementation)
	}
}

func TestTranslate_ScenarioB(t *testing.T) {
	a := TranslateString("function Divide(A, B : Float) return Float is begin return A / B; end Divide;", DefaultOptions())
	guard := strings.Index(a.Implementation, "if (b == 0.0f)")
	nan := strings.Index(a.Implementation, "return NAN;")
	quotient := strings.Index(a.Implementation, "return a / b;")
	if guard < 0 || nan < guard || quotient < nan {
		t.Errorf("zero check must precede the quotient:\n%s", a.Implementation)
	}
}

func TestTranslate_Diagnostics(t *testing.T) {
	src := "function Good(A : Float) return Float is begin return A; end Good;\n" +
		"\n" +
		"function Bad(A : Float) return Float is begin return A; end Other;\n"

	r := Translate("library.adb", src)
	if len(r.Functions) != 1 || r.Functions[0].Name != "Good" {
		t.Fatalf("unexpected functions: %+v", r.Functions)
	}
	if len(r.Diagnostics) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(r.Diagnostics))
	}

	d := r.Diagnostics[0]
	if d.File != "library.adb" || d.Function != "Bad" || d.Line != 3 || d.Column != 1 {
		t.Errorf("unexpected diagnostic: %+v", d)
	}
	msg := d.Error()
	for _, want := range []string{"library.adb: line 3, column 1", "function Bad skipped", "> 3 | function Bad"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() should contain %q:\n%s", want, msg)
		}
	}
}

func TestTranslateSources_PreservesInputOrder(t *testing.T) {
	var files []source.File
	for i := 0; i < 32; i++ {
		name := fmt.Sprintf("F%02d", i)
		files = append(files, source.File{
			Name:    name + ".adb",
			Content: fmt.Sprintf("function %s(A, B : Float) return Float is begin return A * B; end %s;", name, name),
		})
	}

	opts := DefaultOptions()
	opts.Jobs = 4
	a, err := TranslateSources(context.Background(), files, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fns := a.Functions()
	if len(fns) != len(files) {
		t.Fatalf("got %d functions, want %d", len(fns), len(files))
	}
	for i, f := range fns {
		if want := fmt.Sprintf("F%02d", i); f.Name != want {
			t.Errorf("function %d = %s, want %s", i, f.Name, want)
		}
		if a.Files[i].FileName != files[i].Name {
			t.Errorf("result %d file = %s, want %s", i, a.Files[i].FileName, files[i].Name)
		}
	}

	// 逐次処理と同じ成果物になる
	var all strings.Builder
	for _, f := range files {
		all.WriteString(f.Content + "\n")
	}
	seq := TranslateString(all.String(), opts)
	if seq.Header != a.Header || seq.Implementation != a.Implementation {
		t.Error("concurrent translation differs from sequential translation")
	}
}

func TestTranslateSources_Empty(t *testing.T) {
	a, err := TranslateSources(context.Background(), nil, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(a.Functions()) != 0 || len(a.Diagnostics()) != 0 {
		t.Error("expected no functions and no diagnostics")
	}
	if !strings.Contains(a.Header, "#ifndef ADA_MATH_H") {
		t.Errorf("header should still carry the guard:\n%s", a.Header)
	}
}

func TestTranslateSources_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	files := []source.File{{Name: "a.adb", Content: "function A(X : Float) return Float is begin return X; end A;"}}
	if _, err := TranslateSources(ctx, files, DefaultOptions()); err == nil {
		t.Error("expected an error for a cancelled context")
	}
}

func TestGenerateErrorContext(t *testing.T) {
	src := "line1\nline2\nline3\nline4\nline5\nline6"

	got := GenerateErrorContext(src, 3, 2)
	want := "  1 | line1\n" +
		"  2 | line2\n" +
		"> 3 | line3\n" +
		"       ^\n" +
		"  4 | line4\n" +
		"  5 | line5\n"
	if got != want {
		t.Errorf("GenerateErrorContext() =\n%q\nwant\n%q", got, want)
	}

	if GenerateErrorContext("", 1, 1) != "" {
		t.Error("empty source should produce no context")
	}
	if GenerateErrorContext(src, 99, 1) != "" {
		t.Error("line past the end should produce no context")
	}
}
