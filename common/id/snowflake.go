package id

import (
	"fmt"
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	node    *snowflake.Node
	once    sync.Once
	initErr error
)

// Init initializes the Snowflake node with the given node ID.
// Only the first call has an effect; later calls return the first call's error.
func Init(nodeID int64) error {
	once.Do(func() {
		n, err := snowflake.NewNode(nodeID)
		if err != nil {
			initErr = fmt.Errorf("creating snowflake node %d: %w", nodeID, err)
			return
		}
		node = n
	})
	return initErr
}

// New generates a new time-ordered int64 ID. Used for event ids published by
// the moderation pipeline. Panics if Init was never called.
func New() int64 {
	if node == nil {
		panic("id: New called before Init")
	}
	return node.Generate().Int64()
}
