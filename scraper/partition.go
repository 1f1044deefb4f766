package scraper

import (
	"context"
	"sync"

	"github.com/EstebanCaso/arkus-scraper-worker/models"
)

// Defaults for the date-window partitioner. A job never spans more than
// MaxSpanDays, which caps the schedule at three blocks.
const (
	DefaultBlockSize = 30
	MaxSpanDays      = 90
)

// Block is a contiguous sub-range of day offsets, inclusive on both ends,
// owned by exactly one page session.
type Block struct {
	Index int
	Start int
	End   int
}

// Days returns the number of days the block covers.
func (b Block) Days() int { return b.End - b.Start + 1 }

// Partition splits a window of totalDays into contiguous, non-overlapping
// blocks covering [0, totalDays-1] exactly. totalDays is clamped to maxSpan
// (MaxSpanDays when non-positive); blockSize defaults when non-positive.
func Partition(totalDays, blockSize, maxSpan int) []Block {
	if totalDays <= 0 {
		return nil
	}
	if maxSpan <= 0 {
		maxSpan = MaxSpanDays
	}
	if totalDays > maxSpan {
		totalDays = maxSpan
	}
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}

	var blocks []Block
	for start := 0; start < totalDays; start += blockSize {
		end := start + blockSize - 1
		if end > totalDays-1 {
			end = totalDays - 1
		}
		blocks = append(blocks, Block{Index: len(blocks), Start: start, End: end})
	}
	return blocks
}

// BlockResult is what one block's worker sends back. Days holds one
// extraction result per day in the block, in day order.
type BlockResult struct {
	Block Block
	Days  []models.ExtractionResult
	Err   error
}

// BlockFunc processes one block and reports its per-day results.
type BlockFunc func(ctx context.Context, b Block) BlockResult

// RunBlocks processes blocks concurrently, at most maxConcurrency at a time,
// and returns results re-ordered by block index — the join barrier that makes
// output deterministic regardless of completion order.
func RunBlocks(ctx context.Context, blocks []Block, maxConcurrency int, fn BlockFunc) []BlockResult {
	ordered := make([]BlockResult, len(blocks))
	if len(blocks) == 0 {
		return ordered
	}

	workers := maxConcurrency
	if workers <= 0 {
		workers = 1
	}
	if workers > len(blocks) {
		workers = len(blocks)
	}

	jobs := make(chan Block)
	results := make(chan BlockResult, len(blocks))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for block := range jobs {
				results <- fn(ctx, block)
			}
		}()
	}

	go func() {
		for _, block := range blocks {
			jobs <- block
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	for result := range results {
		ordered[result.Block.Index] = result
	}

	return ordered
}
