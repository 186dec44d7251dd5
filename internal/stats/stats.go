// Package stats accumulates aggregate counters while a walk proceeds.
package stats

import (
	"sort"
	"sync"
	"time"

	"github.com/SallahBoussettah/repodigest/internal/types"
)

// largestFilesLimit bounds the top-N largest-files list.
const largestFilesLimit = 10

// Aggregator owns the Stats record for one walk. Updates are serialized
// behind a mutex so that concurrent file classification cannot race.
type Aggregator struct {
	mutex     sync.Mutex
	record    types.Stats
	startedAt time.Time
	finalized bool
}

// NewAggregator returns an empty accumulator stamped with the walk start time.
func NewAggregator() *Aggregator {
	return &Aggregator{
		record:    types.Stats{Languages: make(map[string]int)},
		startedAt: time.Now(),
	}
}

// AddDirectory counts one surviving, non-root directory.
func (aggregator *Aggregator) AddDirectory() {
	aggregator.mutex.Lock()
	defer aggregator.mutex.Unlock()
	aggregator.record.TotalDirectories++
}

// AddFile counts one accepted file. Text size accumulates only for files
// whose content was actually decoded; binary and unreadable files contribute
// to the total size alone.
func (aggregator *Aggregator) AddFile(relativePath string, sizeBytes int64, languageName string, isBinary bool, hasTextContent bool) {
	aggregator.mutex.Lock()
	defer aggregator.mutex.Unlock()

	aggregator.record.TotalFiles++
	aggregator.record.TotalSizeBytes += sizeBytes
	if languageName != "" {
		aggregator.record.Languages[languageName]++
	}
	if isBinary {
		aggregator.record.BinaryFiles++
	} else if hasTextContent {
		aggregator.record.TextSizeBytes += sizeBytes
	}

	aggregator.record.LargestFiles = append(aggregator.record.LargestFiles, types.FileSizeEntry{
		Path:      relativePath,
		SizeBytes: sizeBytes,
	})
	if len(aggregator.record.LargestFiles) > largestFilesLimit {
		sortLargestFiles(aggregator.record.LargestFiles)
		aggregator.record.LargestFiles = aggregator.record.LargestFiles[:largestFilesLimit]
	}
}

// Finalize sorts the largest-files list, stamps the elapsed processing time,
// and returns the completed record. It must be called exactly once, after
// the walk has finished.
func (aggregator *Aggregator) Finalize() *types.Stats {
	aggregator.mutex.Lock()
	defer aggregator.mutex.Unlock()

	if !aggregator.finalized {
		sortLargestFiles(aggregator.record.LargestFiles)
		aggregator.record.ProcessingTime = time.Since(aggregator.startedAt)
		aggregator.finalized = true
	}
	return &aggregator.record
}

// sortLargestFiles orders entries by size descending, breaking ties by path
// so the result is stable across enumeration orders.
func sortLargestFiles(entries []types.FileSizeEntry) {
	sort.Slice(entries, func(left, right int) bool {
		if entries[left].SizeBytes != entries[right].SizeBytes {
			return entries[left].SizeBytes > entries[right].SizeBytes
		}
		return entries[left].Path < entries[right].Path
	})
}
