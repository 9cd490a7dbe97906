package leaderboard

import (
	"math"
	"time"
)

const (
	scoreBaseline  = 2000
	attemptWeight  = 120
	timeWeight     = 0.2
	intervalWeight = 3
)

// ComputeScore converts one completed play into points. attemptTimes must be
// the attempt timestamps in attempt order; completedAt, when non-nil,
// overrides the last attempt as the end of the play. Plays with no attempts
// score nothing and the result never drops below zero.
func ComputeScore(attemptTimes []time.Time, completedAt *time.Time) int {
	n := len(attemptTimes)
	if n == 0 {
		return 0
	}

	end := attemptTimes[n-1]
	if completedAt != nil {
		end = *completedAt
	}
	totalSec := end.Sub(attemptTimes[0]).Seconds()
	if totalSec < 0 {
		totalSec = 0
	}

	avgIntervalSec := 0.0
	if n > 1 {
		var sum float64
		for i := 1; i < n; i++ {
			sum += attemptTimes[i].Sub(attemptTimes[i-1]).Seconds()
		}
		avgIntervalSec = sum / float64(n-1)
	}

	score := float64(scoreBaseline) -
		float64(attemptWeight*n) -
		timeWeight*totalSec -
		intervalWeight*avgIntervalSec
	if score < 0 {
		return 0
	}
	return int(math.Round(score))
}
