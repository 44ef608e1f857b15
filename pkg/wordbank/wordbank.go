package wordbank

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

// maxLineSize caps a single dictionary line. bufio's default of 64KiB is
// too small for some generated word lists.
const maxLineSize = 1024 * 1024

// WordBank is an immutable set of normalized words. The zero value is an
// empty bank. It is safe for concurrent use since nothing mutates it after
// construction.
type WordBank struct {
	words map[string]struct{}
}

// LoadError reports a dictionary that could not be read.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("error loading dictionary: %v", e.Err)
	}
	return fmt.Sprintf("error loading dictionary %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Progress receives the raw bytes of a dictionary file as it is read.
// *progressbar.ProgressBar satisfies it.
type Progress interface {
	io.Writer
	ChangeMax64(int64)
}

type loadOptions struct {
	progress Progress
}

// LoadOption configures Load.
type LoadOption func(*loadOptions)

// WithProgress reports read progress to p, sized to the file length.
func WithProgress(p Progress) LoadOption {
	return func(o *loadOptions) {
		o.progress = p
	}
}

// New builds a bank from the given words.
func New(words ...string) *WordBank {
	wb := &WordBank{words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		wb.words[Normalize(w)] = struct{}{}
	}
	return wb
}

// Load reads a newline-delimited word list from path. Every line is
// normalized and inserted, blank lines included. On failure no bank is
// returned and the error is a *LoadError.
func Load(path string, opts ...LoadOption) (*WordBank, error) {
	var o loadOptions
	for _, opt := range opts {
		opt(&o)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer file.Close()

	var r io.Reader = file
	if o.progress != nil {
		if info, err := file.Stat(); err == nil {
			o.progress.ChangeMax64(info.Size())
		}
		r = io.TeeReader(file, o.progress)
	}

	wb, err := Read(r)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
			return nil, le
		}
		return nil, &LoadError{Path: path, Err: err}
	}
	return wb, nil
}

// Read builds a bank from r using the same rules as Load.
func Read(r io.Reader) (*WordBank, error) {
	words := make(map[string]struct{})
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if !utf8.ValidString(line) {
			return nil, &LoadError{Err: fmt.Errorf("line %d: invalid UTF-8", lineNo)}
		}
		words[Normalize(line)] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, &LoadError{Err: err}
	}

	return &WordBank{words: words}, nil
}

// Contains reports whether word is in the bank, ignoring case and
// surrounding whitespace.
func (wb *WordBank) Contains(word string) bool {
	if wb == nil {
		return false
	}
	_, exists := wb.words[Normalize(word)]
	return exists
}

// Len returns the number of distinct normalized entries.
func (wb *WordBank) Len() int {
	if wb == nil {
		return 0
	}
	return len(wb.words)
}

// Normalize trims surrounding whitespace and lower-cases s. Case mapping is
// the plain Unicode one; no locale rules or accent folding apply.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
