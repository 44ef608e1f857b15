// pkg/parser/parser.go
package parser

import (
	"bufio"
	"bytes"
	"sort"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/NivBraz/spellcheck-service/internal/models"
)

// ignoredElements never contribute visible prose.
const ignoredElements = "script, style, noscript, template"

type Parser struct{}

func New() *Parser {
	return &Parser{}
}

// ParseHTML extracts words from the visible text of an HTML document
func (p *Parser) ParseHTML(content []byte) ([]string, error) {
	root, err := html.Parse(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}
	doc := goquery.NewDocumentFromNode(root)
	doc.Find(ignoredElements).Remove()

	var words []string
	var extractText func(*html.Node)
	extractText = func(n *html.Node) {
		if n.Type == html.TextNode {
			words = appendWords(words, n.Data)
		}
		// Recursively process child nodes
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extractText(c)
		}
	}

	for _, n := range doc.Nodes {
		extractText(n)
	}
	return words, nil
}

// ParseText extracts words from plain text
func (p *Parser) ParseText(content []byte) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		words = appendWords(words, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

func appendWords(words []string, text string) []string {
	for _, word := range strings.Fields(text) {
		word = cleanWord(word)
		if word != "" {
			words = append(words, word)
		}
	}
	return words
}

// cleanWord normalizes and cleans a word. Apostrophes and hyphens survive
// inside a word so "don't" and "well-known" stay as written.
func cleanWord(word string) string {
	// Convert to lowercase
	word = strings.ToLower(word)

	// Remove anything that is not a letter or a word joiner
	word = strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r):
			return r
		case r == '\'' || r == '’':
			return '\''
		case r == '-':
			return r
		}
		return -1
	}, word)

	return strings.Trim(word, "'-")
}

// SortWordCounts sorts word counts by frequency (descending) and alphabetically for ties
func SortWordCounts(words []models.WordCount) {
	sort.Slice(words, func(i, j int) bool {
		if words[i].Count == words[j].Count {
			return words[i].Word < words[j].Word
		}
		return words[i].Count > words[j].Count
	})
}
