package pipeline

import (
	"bytes"
	"os"

	"github.com/blevesearch/mmap-go"

	"github.com/gquere/ngp/internal/matcher"
	"github.com/gquere/ngp/internal/store"
)

// fileJob is the "current-file record" of spec.md 5: the single piece of
// shared state handed off between the producer, the two workers, and the
// consumer for the duration of one file. A zero-value fileJob (empty
// path) is the poison value that tells workers and the consumer to shut
// down once the walker has no more paths.
type fileJob struct {
	path string
	data mmap.MMap
	size int
	mid  int // split point: byte offset where the second half begins
}

// openAndMap opens path read-only, memory-maps it privately and
// writably (so newline bytes can be overwritten with NUL in place, per
// spec.md 4.B step 2), and locates the split point. ok is false if the
// file should be silently skipped: open/stat/mmap failure, or empty.
func openAndMap(path string) (fileJob, bool) {
	f, err := os.Open(path)
	if err != nil {
		return fileJob{}, false
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.Size() == 0 {
		return fileJob{}, false
	}

	data, err := mmap.Map(f, mmap.COPY, 0)
	if err != nil {
		return fileJob{}, false
	}

	size := len(data)
	mid := size / 2
	if rel := bytes.IndexByte(data[mid:], '\n'); rel >= 0 {
		mid = mid + rel + 1
	} else {
		// No newline at or after the midpoint: the whole file is one
		// half, the second worker gets an empty range.
		mid = size
	}

	return fileJob{path: path, data: data, size: size, mid: mid}, true
}

// workerResult is one worker's contribution to a file: the match lines
// it found (already truncated, with line numbers local to its half) and
// the total number of lines it walked (used by the consumer to offset
// the second half's line numbers).
type workerResult struct {
	entries   []store.Entry
	lineCount int
}

// scanHalf walks half (0 or 1) of job's mapped bytes, overwriting each
// newline with NUL and testing the preceding line against m, exactly as
// ngp.c's worker_thread does.
func scanHalf(job fileJob, half int, m matcher.Matcher) workerResult {
	var start, end int
	if half == 0 {
		start, end = 0, job.mid
	} else {
		start, end = job.mid, job.size
	}

	data := job.data
	p := start
	lineCount := 1
	var entries []store.Entry

	for p < end {
		rel := bytes.IndexByte(data[p:end], '\n')
		if rel < 0 {
			break // trailing partial line with no terminator: not scanned
		}
		lineEnd := p + rel
		data[lineEnd] = 0
		line := data[p:lineEnd]

		if m.Match(line) {
			entries = append(entries, store.Entry{
				Kind: store.KindLine,
				Line: lineCount,
				Text: store.TruncateLine(line),
			})
		}

		lineCount++
		p = lineEnd + 1
	}

	return workerResult{entries: entries, lineCount: lineCount - 1}
}
