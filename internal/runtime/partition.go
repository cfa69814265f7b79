package runtime

import "time"

// DefaultPartitionLayout buckets records into daily/hourly output partitions,
// the way time-partitioned ingestion sinks lay out their paths.
const DefaultPartitionLayout = "dt=2006-01-02/hr=15"

// PartitionKey formats an epoch-millisecond timestamp with the given Go time
// layout, rendered in UTC. An empty layout selects DefaultPartitionLayout.
func PartitionKey(millis uint64, layout string) string {
	if layout == "" {
		layout = DefaultPartitionLayout
	}
	return time.UnixMilli(int64(millis)).UTC().Format(layout)
}
