package utils

import (
	"reflect"
	"testing"
	"time"
)

// TestFormatFileSize verifies unit scaling and the compact single-digit
// fraction.
func TestFormatFileSize(t *testing.T) {
	testCases := []struct {
		name      string
		byteCount int64
		expected  string
	}{
		{name: "zero", byteCount: 0, expected: "0b"},
		{name: "negative clamps", byteCount: -5, expected: "0b"},
		{name: "bytes", byteCount: 512, expected: "512b"},
		{name: "exact kilobyte", byteCount: 1024, expected: "1kb"},
		{name: "fractional kilobyte", byteCount: 1536, expected: "1.5kb"},
		{name: "double digit kilobytes", byteCount: 10240, expected: "10kb"},
		{name: "megabytes", byteCount: 15728640, expected: "15mb"},
		{name: "gigabytes", byteCount: 3221225472, expected: "3gb"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			result := FormatFileSize(testCase.byteCount)
			if result != testCase.expected {
				t.Fatalf("FormatFileSize(%d): got %q want %q", testCase.byteCount, result, testCase.expected)
			}
		})
	}
}

// TestFormatTimestamp verifies the minute-precision layout and the zero-time
// special case.
func TestFormatTimestamp(t *testing.T) {
	value := time.Date(2024, time.May, 1, 13, 45, 30, 0, time.Local)
	if result := FormatTimestamp(value); result != "2024-05-01 13:45" {
		t.Fatalf("got %q want %q", result, "2024-05-01 13:45")
	}
	if result := FormatTimestamp(time.Time{}); result != "" {
		t.Fatalf("zero time must render empty, got %q", result)
	}
}

// TestDeduplicatePatterns verifies order-preserving duplicate removal.
func TestDeduplicatePatterns(t *testing.T) {
	result := DeduplicatePatterns([]string{"*.log", "dist/", "*.log", "node_modules/", "dist/"})
	expected := []string{"*.log", "dist/", "node_modules/"}
	if !reflect.DeepEqual(result, expected) {
		t.Fatalf("got %v want %v", result, expected)
	}
}
