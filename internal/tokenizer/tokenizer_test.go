package tokenizer

import (
	"errors"
	"testing"
)

// fakeCounter is a deterministic Counter stand-in that avoids loading real
// tokenizer encodings in tests.
type fakeCounter struct {
	count      int
	countError error
}

func (counter fakeCounter) Name() string {
	return "fake"
}

func (counter fakeCounter) CountString(string) (int, error) {
	return counter.count, counter.countError
}

// TestHeuristicTokenCount pins the rounded-up bytes-per-token estimate.
func TestHeuristicTokenCount(t *testing.T) {
	testCases := []struct {
		name     string
		text     string
		expected int
	}{
		{name: "empty", text: "", expected: 0},
		{name: "below one token", text: "abc", expected: 1},
		{name: "exactly one token", text: "abcd", expected: 1},
		{name: "rounds up", text: "abcde", expected: 2},
		{name: "two tokens", text: "abcdefgh", expected: 2},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			result := HeuristicTokenCount(testCase.text)
			if result != testCase.expected {
				t.Fatalf("heuristic for %q: got %d want %d", testCase.text, result, testCase.expected)
			}
		})
	}
}

// TestEstimateUsesCounter verifies a working counter's result is used as-is.
func TestEstimateUsesCounter(t *testing.T) {
	result := Estimate(fakeCounter{count: 42}, "whatever text")
	if result != 42 {
		t.Fatalf("got %d want 42", result)
	}
}

// TestEstimateDegradesToHeuristic verifies nil counters and counting failures
// both fall back to the heuristic.
func TestEstimateDegradesToHeuristic(t *testing.T) {
	const text = "abcdefgh"

	if result := Estimate(nil, text); result != 2 {
		t.Fatalf("nil counter: got %d want 2", result)
	}

	failing := fakeCounter{count: 99, countError: errors.New("encode failed")}
	if result := Estimate(failing, text); result != 2 {
		t.Fatalf("failing counter: got %d want 2", result)
	}
}
