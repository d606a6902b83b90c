package badger

import (
	"fmt"

	"github.com/manhaj/coursesearch/core"
)

// Key prefixes for different data types
const (
	catalogEntryPrefix = "catent"
	checkpointPrefix   = "chkpt"
)

// makeEntryKey generates a key for a catalog entry by ID.
func makeEntryKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", catalogEntryPrefix, id))
}

// makeCheckpointKey generates a key for processor checkpoints.
func makeCheckpointKey(processorType string) []byte {
	return []byte(fmt.Sprintf("%s:%s", checkpointPrefix, processorType))
}
