package wordbank

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDictionary(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dictionary.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Contains(t *testing.T) {
	wb, err := Load(writeDictionary(t, "Apple\ncat\ndog\n"))
	require.NoError(t, err)

	tests := []struct {
		name string
		word string
		want bool
	}{
		{"lower case", "apple", true},
		{"upper case", "APPLE", true},
		{"mixed case", "ApPlE", true},
		{"padded query", "  dog\t", true},
		{"missing word", "bird", false},
		{"prefix only", "app", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, wb.Contains(tt.word))
		})
	}
}

func TestLoad_MergesCaseDuplicates(t *testing.T) {
	wb, err := Load(writeDictionary(t, "Cat\ncat\nCAT\n"))
	require.NoError(t, err)

	assert.Equal(t, 1, wb.Len())
	assert.True(t, wb.Contains("cat"))
}

func TestLoad_TrimsWhitespace(t *testing.T) {
	wb, err := Load(writeDictionary(t, " fish \n\tbird\r\n"))
	require.NoError(t, err)

	assert.True(t, wb.Contains("fish"))
	assert.True(t, wb.Contains("bird"))
	assert.True(t, wb.Contains(" FISH "))
}

func TestLoad_KeepsBlankLines(t *testing.T) {
	wb, err := Load(writeDictionary(t, "one\n\ntwo\n"))
	require.NoError(t, err)

	assert.Equal(t, 3, wb.Len())
	assert.True(t, wb.Contains(""))
}

func TestLoad_MissingFile(t *testing.T) {
	prior := New("cat", "dog")
	path := filepath.Join(t.TempDir(), "missing.txt")

	wb, err := Load(path)
	require.Error(t, err)
	assert.Nil(t, wb)

	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, path, le.Path)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Contains(t, err.Error(), path)

	assert.Equal(t, 2, prior.Len())
	assert.True(t, prior.Contains("cat"))
	assert.True(t, prior.Contains("dog"))
}

func TestLoad_Directory(t *testing.T) {
	_, err := Load(t.TempDir())
	var le *LoadError
	assert.True(t, errors.As(err, &le))
}

func TestLoad_InvalidUTF8(t *testing.T) {
	path := writeDictionary(t, "good\n\xff\xfe\n")

	wb, err := Load(path)
	assert.Nil(t, wb)

	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, path, le.Path)
	assert.Contains(t, err.Error(), "line 2")
}

type recordingProgress struct {
	max     int64
	written int64
}

func (p *recordingProgress) Write(b []byte) (int, error) {
	p.written += int64(len(b))
	return len(b), nil
}

func (p *recordingProgress) ChangeMax64(max int64) { p.max = max }

func TestLoad_WithProgress(t *testing.T) {
	content := "alpha\nbeta\ngamma\n"
	progress := &recordingProgress{}

	wb, err := Load(writeDictionary(t, content), WithProgress(progress))
	require.NoError(t, err)

	assert.Equal(t, 3, wb.Len())
	assert.Equal(t, int64(len(content)), progress.max)
	assert.Equal(t, int64(len(content)), progress.written)
}

func TestRead(t *testing.T) {
	wb, err := Read(strings.NewReader("Über\nNaïve"))
	require.NoError(t, err)

	assert.True(t, wb.Contains("über"))
	assert.True(t, wb.Contains("NAÏVE"))
	assert.False(t, wb.Contains("naive"))
}

func TestRead_LongLine(t *testing.T) {
	long := strings.Repeat("a", 100*1024)
	wb, err := Read(strings.NewReader(long + "\nshort"))
	require.NoError(t, err)

	assert.True(t, wb.Contains(long))
	assert.True(t, wb.Contains("short"))
}

func TestContains_Idempotent(t *testing.T) {
	wb := New("Apple")
	for i := 0; i < 5; i++ {
		assert.True(t, wb.Contains("APPLE"))
		assert.False(t, wb.Contains("pear"))
	}
	assert.Equal(t, 1, wb.Len())
}

func TestContains_NilAndZero(t *testing.T) {
	var nilBank *WordBank
	assert.False(t, nilBank.Contains("cat"))
	assert.Equal(t, 0, nilBank.Len())

	var zero WordBank
	assert.False(t, zero.Contains("cat"))
	assert.Equal(t, 0, zero.Len())
}

func TestContains_ConcurrentReaders(t *testing.T) {
	wb := New("cat", "dog", "fish")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				if !wb.Contains("CAT") || wb.Contains("bird") {
					t.Error("unexpected lookup result")
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{" Fish \n", "fish"},
		{"APPLE", "apple"},
		{"", ""},
		{"\t", ""},
		{"ÉCOLE", "école"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), "Normalize(%q)", tt.in)
	}
}
