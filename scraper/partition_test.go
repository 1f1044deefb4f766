package scraper

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/EstebanCaso/arkus-scraper-worker/models"
)

func TestPartitionCoversWindowExactly(t *testing.T) {
	for _, totalDays := range []int{1, 3, 29, 30, 31, 60, 89, 90} {
		blocks := Partition(totalDays, 30, 0)
		require.NotEmpty(t, blocks, "totalDays=%d", totalDays)

		next := 0
		for i, b := range blocks {
			require.Equal(t, i, b.Index)
			require.Equal(t, next, b.Start, "blocks must be contiguous")
			require.GreaterOrEqual(t, b.End, b.Start)
			next = b.End + 1
		}
		require.Equal(t, totalDays, next, "union must be exactly [0,totalDays-1]")
	}
}

func TestPartitionClampsToMaxSpan(t *testing.T) {
	blocks := Partition(365, 30, 0)
	require.Len(t, blocks, 3)
	require.Equal(t, MaxSpanDays-1, blocks[len(blocks)-1].End)
}

func TestPartitionHonoursConfiguredSpanCap(t *testing.T) {
	blocks := Partition(365, 30, 10)
	require.Len(t, blocks, 1)
	require.Equal(t, 9, blocks[0].End)

	blocks = Partition(365, 30, 45)
	require.Len(t, blocks, 2)
	require.Equal(t, 44, blocks[len(blocks)-1].End)
}

func TestPartitionZeroDays(t *testing.T) {
	require.Nil(t, Partition(0, 30, 0))
}

func TestPartitionThreeDaysSingleBlock(t *testing.T) {
	blocks := Partition(3, 30, 0)
	require.Len(t, blocks, 1)
	require.Equal(t, 0, blocks[0].Start)
	require.Equal(t, 2, blocks[0].End)
	require.Equal(t, 3, blocks[0].Days())
}

func TestRunBlocksPreservesOrder(t *testing.T) {
	blocks := Partition(90, 30, 0)
	require.Len(t, blocks, 3)

	results := RunBlocks(context.Background(), blocks, 3, func(_ context.Context, b Block) BlockResult {
		// Finish out of submission order on purpose.
		time.Sleep(time.Duration(3-b.Index) * 10 * time.Millisecond)
		return BlockResult{Block: b, Days: []models.ExtractionResult{{Strategy: "rate_table"}}}
	})

	require.Len(t, results, 3)
	for i, r := range results {
		require.Equal(t, i, r.Block.Index, "join barrier must re-order by block range")
	}
}

func TestRunBlocksRespectsConcurrencyBound(t *testing.T) {
	const bound = 2
	blocks := make([]Block, 6)
	for i := range blocks {
		blocks[i] = Block{Index: i, Start: i, End: i}
	}

	var active, peak int32
	var mu sync.Mutex

	RunBlocks(context.Background(), blocks, bound, func(_ context.Context, b Block) BlockResult {
		now := atomic.AddInt32(&active, 1)
		mu.Lock()
		if now > peak {
			peak = now
		}
		mu.Unlock()
		time.Sleep(20 * time.Millisecond)
		atomic.AddInt32(&active, -1)
		return BlockResult{Block: b}
	})

	require.LessOrEqual(t, peak, int32(bound))
}
