package persistence

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bwmarrin/snowflake"
)

// IDAllocator hands out primary keys before an entity is written, so every
// hook that runs during a flush already sees the final id.
type IDAllocator interface {
	NextID() int64
}

// Snowflake layout. Ids are rendered as JSON numbers, so they must stay below
// 2^53 where JavaScript clients still read them exactly. With 12 bits below
// the timestamp that holds for 2^41 ms (about 69 years) past the epoch.
const (
	MaxSafeID = 1<<53 - 1

	snowflakeNodeBits = 5
	snowflakeStepBits = 7
	MaxSnowflakeNode  = 1<<snowflakeNodeBits - 1
)

var (
	snowflakeEpoch = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	layoutOnce     sync.Once
)

// SafeIDHorizon is how long after the epoch snowflake ids stay at or below
// MaxSafeID.
func SafeIDHorizon() time.Duration {
	return time.Duration(MaxSafeID>>(snowflakeNodeBits+snowflakeStepBits)) * time.Millisecond
}

// SnowflakeAllocator issues time-ordered ids. Distinct processes sharing a
// database must use distinct node numbers, 0 through MaxSnowflakeNode. Each
// node issues at most 128 ids per millisecond.
type SnowflakeAllocator struct {
	node *snowflake.Node
}

// NewSnowflakeAllocator fails for nodes outside 0..MaxSnowflakeNode.
func NewSnowflakeAllocator(node int64) (*SnowflakeAllocator, error) {
	// The layout lives in package variables read by NewNode.
	layoutOnce.Do(func() {
		snowflake.Epoch = snowflakeEpoch.UnixMilli()
		snowflake.NodeBits = snowflakeNodeBits
		snowflake.StepBits = snowflakeStepBits
	})
	if node < 0 || node > MaxSnowflakeNode {
		return nil, fmt.Errorf("snowflake node %d: must be between 0 and %d", node, MaxSnowflakeNode)
	}
	n, err := snowflake.NewNode(node)
	if err != nil {
		return nil, fmt.Errorf("snowflake node %d: %w", node, err)
	}
	return &SnowflakeAllocator{node: n}, nil
}

func (a *SnowflakeAllocator) NextID() int64 {
	return a.node.Generate().Int64()
}

// SequenceAllocator counts up from a starting value. Used by tests that want
// predictable ids.
type SequenceAllocator struct {
	last atomic.Int64
}

func NewSequenceAllocator(start int64) *SequenceAllocator {
	a := &SequenceAllocator{}
	a.last.Store(start - 1)
	return a
}

func (a *SequenceAllocator) NextID() int64 {
	return a.last.Add(1)
}
