package pipeline_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-lang/lightc/internal/pipeline"
)

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestCompileSingleFileAccepted(t *testing.T) {
	dir := t.TempDir()
	entry := writeFile(t, dir, "main.lht", `
fn add(a: number, b: number): number { return a + b; }
fn main(): number { return add(1, 2); }
`)
	result, err := pipeline.Compile(pipeline.Options{}, entry)
	require.NoError(t, err)
	assert.False(t, result.Diags.HasErrors(), "%v", result.Diags.Items())
}

func TestCompileReportsTypeErrorsAsDiagnostics(t *testing.T) {
	dir := t.TempDir()
	entry := writeFile(t, dir, "main.lht", `
fn f(b: bool): bool { return b; }
fn main(): number { f(42); return 0; }
`)
	result, err := pipeline.Compile(pipeline.Options{}, entry)
	require.NoError(t, err, "a type error is a diagnostic, not a host error")
	assert.True(t, result.Diags.HasErrors())
}

func TestCompileResolvesImports(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "math.lht", `
export fn square(x: number): number { return x * x; }
`)
	entry := writeFile(t, dir, "main.lht", `
import "math";
fn main(): number { return square(4); }
`)
	result, err := pipeline.Compile(pipeline.Options{}, entry)
	require.NoError(t, err)
	assert.False(t, result.Diags.HasErrors(), "%v", result.Diags.Items())
}

func TestCompileMissingEntryFileErrors(t *testing.T) {
	_, err := pipeline.Compile(pipeline.Options{}, filepath.Join(t.TempDir(), "missing.lht"))
	assert.Error(t, err)
}

func TestCompileSyntaxErrorIsHostError(t *testing.T) {
	dir := t.TempDir()
	entry := writeFile(t, dir, "main.lht", `fn main(): number { return ; }`)
	_, err := pipeline.Compile(pipeline.Options{}, entry)
	assert.Error(t, err)
}

func TestCompileDetectsImportCycle(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.lht", `import "b"; export fn fromA(): number { return 1; }`)
	writeFile(t, dir, "b.lht", `import "a"; export fn fromB(): number { return 2; }`)
	entry := writeFile(t, dir, "main.lht", `import "a"; fn main(): number { return fromA(); }`)
	_, err := pipeline.Compile(pipeline.Options{}, entry)
	assert.Error(t, err)
}
