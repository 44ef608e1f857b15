package models

// Status is the outcome of checking a single query.
type Status string

const (
	StatusEmpty     Status = "empty"
	StatusCorrect   Status = "correct"
	StatusIncorrect Status = "incorrect"
)

type CheckResult struct {
	Word   string `json:"word"`
	Known  bool   `json:"known"`
	Status Status `json:"status"`
}

// Message is the headline shown for the result.
func (r CheckResult) Message() string {
	switch r.Status {
	case StatusCorrect:
		return "Correct spelling!"
	case StatusIncorrect:
		return "Incorrect spelling!"
	default:
		return "Please enter a word."
	}
}

// StatusLine is the one-line status shown under the result.
func (r CheckResult) StatusLine() string {
	switch r.Status {
	case StatusCorrect:
		return "Status: Word is spelled correctly."
	case StatusIncorrect:
		return "Status: Word is spelled incorrectly."
	default:
		return "Status: No word entered."
	}
}

type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

type Report struct {
	Source       string      `json:"source"`
	UnknownWords []WordCount `json:"unknownWords"`
	Stats        struct {
		TotalWords   int `json:"totalWords"`
		KnownWords   int `json:"knownWords"`
		UnknownWords int `json:"unknownWords"`
		TimeElapsed  int `json:"timeElapsedMs"`
	} `json:"stats"`
}
