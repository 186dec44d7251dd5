// Package tokenizer estimates token counts for rendered digest text.
package tokenizer

import (
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// Counter estimates token counts for text content.
type Counter interface {
	Name() string
	CountString(input string) (int, error)
}

const (
	defaultModel        = "gpt-4o"
	defaultEncodingName = "cl100k_base"

	// heuristicBytesPerToken drives the fallback estimate used when no
	// tokenizer is available.
	heuristicBytesPerToken = 4
)

// NewCounter returns a Counter for the requested model, falling back to the
// default encoding when the model is unknown. The returned string is the
// name actually selected.
func NewCounter(model string) (Counter, string, error) {
	selectedModel := strings.TrimSpace(strings.ToLower(model))
	if selectedModel == "" {
		selectedModel = defaultModel
	}

	encoding, encodingError := tiktoken.EncodingForModel(selectedModel)
	if encodingError == nil && encoding != nil {
		return tiktokenCounter{encoding: encoding, name: selectedModel}, selectedModel, nil
	}

	fallbackEncoding, fallbackError := tiktoken.GetEncoding(defaultEncodingName)
	if fallbackError != nil {
		return nil, "", fmt.Errorf("initialize fallback tokenizer: %w", fallbackError)
	}
	return tiktokenCounter{encoding: fallbackEncoding, name: defaultEncodingName}, defaultEncodingName, nil
}

// Estimate runs the counter over the final rendered output. A nil counter or
// a counting failure degrades to the byte-length heuristic.
func Estimate(counter Counter, renderedText string) int {
	if counter != nil {
		tokenCount, countError := counter.CountString(renderedText)
		if countError == nil {
			return tokenCount
		}
	}
	return HeuristicTokenCount(renderedText)
}

// HeuristicTokenCount estimates ceil(len/4) tokens for the given text.
func HeuristicTokenCount(text string) int {
	return (len(text) + heuristicBytesPerToken - 1) / heuristicBytesPerToken
}

// tiktokenCounter counts tokens with a tiktoken encoding.
type tiktokenCounter struct {
	encoding *tiktoken.Tiktoken
	name     string
}

func (counter tiktokenCounter) Name() string {
	return counter.name
}

func (counter tiktokenCounter) CountString(input string) (int, error) {
	return len(counter.encoding.EncodeOrdinary(input)), nil
}
