// Package counter measures text in the units the CLI reports and validates.
//
// Character counts (UTF-8 runes) gate input length, word counts feed the
// response metadata, and token counts use tiktoken's cl100k_base encoding so
// the numbers line up with what downstream LLM tooling would see.
package counter

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
)

// Stats describes one text in every unit the response metadata carries.
type Stats struct {
	Characters int `json:"characters"`
	Words      int `json:"words"`
	Tokens     int `json:"tokens"`
}

// Characters returns the number of UTF-8 runes in text, not bytes.
func Characters(text string) int {
	return utf8.RuneCountInString(text)
}

// Words returns the number of whitespace-delimited words in text.
func Words(text string) int {
	return len(strings.Fields(text))
}

// Calculator produces Stats; it owns the tiktoken encoding, which is
// expensive to construct and reused across texts.
type Calculator struct {
	encoding *tiktoken.Tiktoken
	mu       sync.RWMutex // protects encoding access across goroutines
}

// NewCalculator initializes a Calculator with the cl100k_base encoding.
func NewCalculator() (*Calculator, error) {
	encoding, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cl100k_base encoding: %w", err)
	}
	return &Calculator{encoding: encoding}, nil
}

// Tokens returns the cl100k_base token count of text. Safe for concurrent use.
func (c *Calculator) Tokens(text string) int {
	if text == "" {
		return 0
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	// nil params mean no special tokens allowed or disallowed
	count := len(c.encoding.Encode(text, nil, nil))
	slog.Debug("Token count calculated", "textLength", len(text), "tokenCount", count)
	return count
}

// Stats measures text in all three units.
func (c *Calculator) Stats(text string) Stats {
	return Stats{
		Characters: Characters(text),
		Words:      Words(text),
		Tokens:     c.Tokens(text),
	}
}
