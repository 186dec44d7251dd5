package stats

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/SallahBoussettah/repodigest/internal/types"
)

// TestAggregatorCounters verifies file, directory, size, and histogram
// accounting.
func TestAggregatorCounters(t *testing.T) {
	aggregator := NewAggregator()

	aggregator.AddDirectory()
	aggregator.AddDirectory()
	aggregator.AddFile("main.go", 100, "Go", false, true)
	aggregator.AddFile("logo.png", 2048, "", true, false)
	aggregator.AddFile("broken.go", 50, "Go", false, false)

	record := aggregator.Finalize()

	if record.TotalDirectories != 2 {
		t.Fatalf("total directories: got %d want 2", record.TotalDirectories)
	}
	if record.TotalFiles != 3 {
		t.Fatalf("total files: got %d want 3", record.TotalFiles)
	}
	if record.TotalSizeBytes != 2198 {
		t.Fatalf("total size: got %d want 2198", record.TotalSizeBytes)
	}
	if record.TextSizeBytes != 100 {
		t.Fatalf("text size must count only decoded content: got %d want 100", record.TextSizeBytes)
	}
	if record.BinaryFiles != 1 {
		t.Fatalf("binary files: got %d want 1", record.BinaryFiles)
	}
	if record.Languages["Go"] != 2 {
		t.Fatalf("language histogram: got %v", record.Languages)
	}
	if _, hasEmpty := record.Languages[""]; hasEmpty {
		t.Fatalf("files without a detected language must not enter the histogram")
	}
	if record.ProcessingTime <= 0 {
		t.Fatalf("processing time must be stamped on finalize")
	}
}

// TestLargestFilesBoundedAndSorted verifies the top-10 list holds the ten
// largest files sorted descending, regardless of visit order.
func TestLargestFilesBoundedAndSorted(t *testing.T) {
	const fileCount = 50

	sizes := make([]int64, fileCount)
	for sizeIndex := range sizes {
		sizes[sizeIndex] = int64(sizeIndex + 1)
	}

	random := rand.New(rand.NewSource(42))
	for _, permutationSeed := range []int{0, 1, 2} {
		random.Shuffle(len(sizes), func(left, right int) {
			sizes[left], sizes[right] = sizes[right], sizes[left]
		})

		aggregator := NewAggregator()
		for _, sizeValue := range sizes {
			aggregator.AddFile(fmt.Sprintf("file-%03d.txt", sizeValue), sizeValue, "", false, true)
		}
		record := aggregator.Finalize()

		if len(record.LargestFiles) != 10 {
			t.Fatalf("permutation %d: largest files length: got %d want 10", permutationSeed, len(record.LargestFiles))
		}
		for entryIndex, entry := range record.LargestFiles {
			expectedSize := int64(fileCount - entryIndex)
			if entry.SizeBytes != expectedSize {
				t.Fatalf("permutation %d: entry %d: got size %d want %d", permutationSeed, entryIndex, entry.SizeBytes, expectedSize)
			}
		}
	}
}

// TestLargestFilesTieBreak verifies equal sizes order by path for stable
// output.
func TestLargestFilesTieBreak(t *testing.T) {
	aggregator := NewAggregator()
	aggregator.AddFile("b.txt", 10, "", false, true)
	aggregator.AddFile("a.txt", 10, "", false, true)
	record := aggregator.Finalize()

	expected := []types.FileSizeEntry{
		{Path: "a.txt", SizeBytes: 10},
		{Path: "b.txt", SizeBytes: 10},
	}
	for entryIndex, entry := range expected {
		if record.LargestFiles[entryIndex] != entry {
			t.Fatalf("entry %d: got %+v want %+v", entryIndex, record.LargestFiles[entryIndex], entry)
		}
	}
}
