package idutil

import (
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
)

var (
	node     *snowflake.Node
	nodeOnce sync.Once
)

// NextID returns a time-sortable unique int64.
func NextID() int64 {
	nodeOnce.Do(func() {
		var err error
		node, err = snowflake.NewNode(1)
		if err != nil {
			panic(err)
		}
	})

	return node.Generate().Int64()
}

// TimeOf extracts the creation time encoded in a snowflake id.
func TimeOf(id int64) time.Time {
	return time.UnixMilli(snowflake.ParseInt64(id).Time())
}
