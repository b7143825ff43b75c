package attachments

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0750))
	require.NoError(t, os.WriteFile(path, []byte("test"), 0600))
	return path
}

func newResolver(t *testing.T) *Resolver {
	t.Helper()
	r, err := NewResolver(nil)
	require.NoError(t, err)
	return r
}

func TestResolve_ExcludesOfficeFormats(t *testing.T) {
	dir := t.TempDir()
	pdf := touch(t, filepath.Join(dir, "0250-20000_drawing.pdf"))
	touch(t, filepath.Join(dir, "0250-20000_quote.xlsx"))

	got := newResolver(t).Resolve("0250-20000", dir)

	assert.Equal(t, []string{pdf}, got)
}

func TestResolve_RecursiveAndCaseInsensitive(t *testing.T) {
	dir := t.TempDir()
	a := touch(t, filepath.Join(dir, "ABC-1_rev2.STEP"))
	b := touch(t, filepath.Join(dir, "sub", "deeper", "abc-1.pdf"))
	touch(t, filepath.Join(dir, "sub", "other.pdf"))
	touch(t, filepath.Join(dir, "sub", "~$abc-1.docx"))

	got := newResolver(t).Resolve("abc-1", dir)
	sort.Strings(got)

	want := []string{a, b}
	sort.Strings(want)
	assert.Equal(t, want, got)
}

func TestResolve_TokenBoundary(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "1000-A.pdf"))
	touch(t, filepath.Join(dir, "X100.pdf"))
	exact := touch(t, filepath.Join(dir, "100_drawing.pdf"))

	got := newResolver(t).Resolve("100", dir)

	assert.Equal(t, []string{exact}, got)
}

func TestResolve_MissingRoot(t *testing.T) {
	got := newResolver(t).Resolve("0250-20000", filepath.Join(t.TempDir(), "missing"))
	assert.Empty(t, got)
}

func TestResolve_RootIsFile(t *testing.T) {
	dir := t.TempDir()
	pdf := touch(t, filepath.Join(dir, "package.pdf"))
	xls := touch(t, filepath.Join(dir, "package.xls"))

	r := newResolver(t)
	assert.Equal(t, []string{pdf}, r.Resolve("anything", pdf))
	assert.Empty(t, r.Resolve("anything", xls))
}

func TestResolve_BlankInputs(t *testing.T) {
	r := newResolver(t)
	assert.Empty(t, r.Resolve("", t.TempDir()))
	assert.Empty(t, r.Resolve("P1", ""))
}

func TestNewResolver_CustomExcludes(t *testing.T) {
	r, err := NewResolver([]string{"*.PDF"})
	require.NoError(t, err)

	assert.True(t, r.Excluded("drawing.pdf"))
	assert.False(t, r.Excluded("quote.xlsx"))

	_, err = NewResolver([]string{"[unclosed"})
	assert.Error(t, err)
}

func TestContainsPartNumber(t *testing.T) {
	tests := []struct {
		name, part string
		want       bool
	}{
		{"0250-20000_drawing.pdf", "0250-20000", true},
		{"0250-20000.pdf", "0250-20000", true},
		{"dwg 0250-20000 rev B.pdf", "0250-20000", true},
		{"10250-20000.pdf", "0250-20000", false},
		{"0250-200001.pdf", "0250-20000", false},
		{"1000-A then 100.pdf", "100", true},
		{"anything.pdf", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ContainsPartNumber(tt.name, tt.part))
		})
	}
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	ok := touch(t, filepath.Join(dir, "valid.txt"))
	missing := filepath.Join(dir, "invalid.txt")

	valid, invalid := Check([]string{ok, missing})

	assert.Equal(t, []string{ok}, valid)
	assert.Equal(t, []string{missing}, invalid)
}
