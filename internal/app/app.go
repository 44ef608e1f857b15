package app

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"github.com/NivBraz/spellcheck-service/internal/config"
	"github.com/NivBraz/spellcheck-service/internal/models"
	"github.com/NivBraz/spellcheck-service/pkg/fetcher"
	"github.com/NivBraz/spellcheck-service/pkg/parser"
	"github.com/NivBraz/spellcheck-service/pkg/wordbank"
)

const (
	commandClear = ":clear"
	commandQuit  = ":quit"
)

// App wires the dictionary to the terminal front end
type App struct {
	config   *config.Config
	fetcher  *fetcher.Fetcher
	parser   *parser.Parser
	wordBank *wordbank.WordBank

	title   *color.Color
	correct *color.Color
	wrong   *color.Color
	status  *color.Color
}

type options struct {
	progress io.Writer
}

// Option configures New.
type Option func(*options)

// WithProgressOutput sends the dictionary load progress bar to w.
func WithProgressOutput(w io.Writer) Option {
	return func(o *options) {
		o.progress = w
	}
}

// New creates a new instance of the application. The dictionary is loaded
// here; any error is a *wordbank.LoadError wrapped with context and the
// caller is expected to stop.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	o := options{progress: os.Stderr}
	for _, opt := range opts {
		opt(&o)
	}

	// Validate config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	f := fetcher.New(fetcher.FetcherConfig{
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		Burst:             cfg.RateLimit.Burst,
		Timeout:           time.Duration(cfg.HTTPClient.Timeout) * time.Second,
		UserAgent:         cfg.HTTPClient.UserAgent,
		MaxRetries:        cfg.HTTPClient.MaxRetries,
	})

	bar := progressbar.NewOptions64(-1,
		progressbar.OptionSetWriter(o.progress),
		progressbar.OptionSetDescription("Loading dictionary..."),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	wb, err := loadWordBank(ctx, cfg, f, bar)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize dictionary: %w", err)
	}
	_ = bar.Finish()

	a := &App{
		config:   cfg,
		fetcher:  f,
		parser:   parser.New(),
		wordBank: wb,
		title:    color.New(color.FgBlue, color.Bold),
		correct:  color.New(color.FgGreen, color.Bold),
		wrong:    color.New(color.FgRed, color.Bold),
		status:   color.New(color.Faint, color.Italic),
	}
	if !cfg.Output.Color {
		for _, c := range []*color.Color{a.title, a.correct, a.wrong, a.status} {
			c.DisableColor()
		}
	}
	return a, nil
}

// WordCount returns the number of distinct dictionary entries.
func (a *App) WordCount() int {
	return a.wordBank.Len()
}

// Check validates the query and looks it up.
func (a *App) Check(word string) models.CheckResult {
	word = strings.TrimSpace(word)
	if word == "" {
		return models.CheckResult{Status: models.StatusEmpty}
	}

	res := models.CheckResult{Word: word, Known: a.wordBank.Contains(word)}
	if res.Known {
		res.Status = models.StatusCorrect
	} else {
		res.Status = models.StatusIncorrect
	}
	return res
}

// Render writes a check result the way the interactive session shows it.
func (a *App) Render(w io.Writer, res models.CheckResult) {
	switch res.Status {
	case models.StatusCorrect:
		a.correct.Fprintf(w, "✔ %s\n", res.Message())
	case models.StatusIncorrect:
		a.wrong.Fprintf(w, "✘ %s\n", res.Message())
	default:
		fmt.Fprintln(w, res.Message())
	}
	if a.config.Output.ShowStatus {
		a.status.Fprintln(w, res.StatusLine())
	}
}

// Session reads one query per line from in until EOF, ":quit" or ctx is
// done. ":clear" resets the status line. When ctx ends first, the goroutine
// reading in stays blocked until in returns; callers that keep running
// should close in.
func (a *App) Session(ctx context.Context, in io.Reader, out io.Writer) error {
	a.title.Fprintln(out, "Spelling Checker")
	fmt.Fprintf(out, "%d words loaded. Type a word, %s to reset or %s to exit.\n", a.WordCount(), commandClear, commandQuit)
	a.status.Fprintln(out, "Status: Ready")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	errCh := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		errCh <- scanner.Err()
	}()

	for {
		fmt.Fprint(out, "> ")
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return nil
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(out)
				if err := <-errCh; err != nil {
					return fmt.Errorf("error reading input: %w", err)
				}
				return nil
			}
			switch strings.TrimSpace(line) {
			case commandQuit:
				return nil
			case commandClear:
				a.status.Fprintln(out, "Status: Ready")
			default:
				a.Render(out, a.Check(line))
			}
		}
	}
}

// CheckText reports the words of a text file or web page that are not in
// the dictionary.
func (a *App) CheckText(ctx context.Context, source string) (*models.Report, error) {
	startTime := time.Now()

	words, err := a.readWords(ctx, source)
	if err != nil {
		return nil, err
	}

	frequencies := make(map[string]int)
	report := &models.Report{Source: source}
	for _, word := range words {
		if !isValidWord(word, a.config.TextProcessing.MinWordLength) {
			continue
		}
		report.Stats.TotalWords++
		if a.wordBank.Contains(word) {
			report.Stats.KnownWords++
			continue
		}
		frequencies[word]++
	}

	report.UnknownWords = getTopWords(frequencies, a.config.Output.TopUnknownCount)
	report.Stats.UnknownWords = len(frequencies)
	report.Stats.TimeElapsed = int(time.Since(startTime).Milliseconds())
	return report, nil
}

func (a *App) readWords(ctx context.Context, source string) ([]string, error) {
	if isURL(source) {
		content, err := a.fetcher.Fetch(ctx, source)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %s: %w", source, err)
		}
		if strings.HasSuffix(strings.ToLower(source), ".txt") {
			return a.parser.ParseText(content)
		}
		words, err := a.parser.ParseHTML(content)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", source, err)
		}
		return words, nil
	}

	content, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", source, err)
	}
	switch strings.ToLower(filepath.Ext(source)) {
	case ".html", ".htm":
		words, err := a.parser.ParseHTML(content)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", source, err)
		}
		return words, nil
	default:
		words, err := a.parser.ParseText(content)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", source, err)
		}
		return words, nil
	}
}

// Helper functions

func loadWordBank(ctx context.Context, cfg *config.Config, f *fetcher.Fetcher, bar *progressbar.ProgressBar) (*wordbank.WordBank, error) {
	if cfg.Dictionary.URL == "" {
		return wordbank.Load(cfg.Dictionary.Path, wordbank.WithProgress(bar))
	}

	content, err := f.Fetch(ctx, cfg.Dictionary.URL)
	if err != nil {
		return nil, &wordbank.LoadError{Path: cfg.Dictionary.URL, Err: err}
	}
	bar.ChangeMax64(int64(len(content)))
	wb, err := wordbank.Read(io.TeeReader(bytes.NewReader(content), bar))
	if err != nil {
		var le *wordbank.LoadError
		if errors.As(err, &le) {
			le.Path = cfg.Dictionary.URL
		}
		return nil, err
	}
	return wb, nil
}

func isURL(source string) bool {
	u, err := url.Parse(source)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func isValidWord(word string, minLength int) bool {
	return utf8.RuneCountInString(word) >= minLength
}

func getTopWords(frequencies map[string]int, n int) []models.WordCount {
	// Convert map to slice for sorting
	words := make([]models.WordCount, 0, len(frequencies))
	for word, count := range frequencies {
		words = append(words, models.WordCount{
			Word:  word,
			Count: count,
		})
	}

	// Sort by frequency (descending) and alphabetically for ties
	parser.SortWordCounts(words)

	// Return top N words
	if n > 0 && len(words) > n {
		return words[:n]
	}
	return words
}
