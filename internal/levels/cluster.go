package levels

import (
	"sort"

	"github.com/montanaflynn/stats"
)

// clusterLevels merges nearby prices into representative levels. Values are
// sorted ascending and walked once: a value joins the open cluster while its
// relative distance from the cluster's running average stays within
// threshold, otherwise the cluster closes and emits its average. The walk is
// deterministic; re-clustering an already-clustered set with the same
// threshold yields the same set.
func clusterLevels(values []float64, threshold float64) []float64 {
	if len(values) == 0 {
		return nil
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	var clustered []float64
	cluster := []float64{sorted[0]}

	for _, v := range sorted[1:] {
		avg, err := stats.Mean(cluster)
		if err == nil && avg != 0 && (v-avg)/avg <= threshold {
			cluster = append(cluster, v)
			continue
		}
		if avg, err := stats.Mean(cluster); err == nil {
			clustered = append(clustered, avg)
		}
		cluster = []float64{v}
	}
	if avg, err := stats.Mean(cluster); err == nil {
		clustered = append(clustered, avg)
	}
	return clustered
}
