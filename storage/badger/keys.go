package badger

import "github.com/A-makarim/ai-job-assistant/core"

// Key prefix for lane index records.
const laneIndexPrefix = "lanidx"

// makeIndexKey generates the key for a lane's index record.
func makeIndexKey(lane core.Lane) []byte {
	return []byte(laneIndexPrefix + ":" + string(lane))
}

// laneFromIndexKey recovers the lane name from an index key.
func laneFromIndexKey(key []byte) core.Lane {
	return core.Lane(key[len(laneIndexPrefix)+1:])
}
