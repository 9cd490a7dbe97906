package leaderboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func attemptsAt(start time.Time, offsets ...time.Duration) []time.Time {
	times := make([]time.Time, len(offsets))
	for i, off := range offsets {
		times[i] = start.Add(off)
	}
	return times
}

func TestComputeScoreSingleFastAttempt(t *testing.T) {
	start := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	// One attempt, completion stamped in the same instant: only the
	// per-attempt penalty applies.
	score := ComputeScore(attemptsAt(start, 0), &start)
	assert.Equal(t, 2000-120, score)
}

func TestComputeScoreNoAttempts(t *testing.T) {
	assert.Equal(t, 0, ComputeScore(nil, nil))
}

func TestComputeScoreMonotonicInAttempts(t *testing.T) {
	start := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	prev := ComputeScore(attemptsAt(start, 0), nil)
	offsets := []time.Duration{0}
	for i := 1; i < 10; i++ {
		offsets = append(offsets, time.Duration(i)*10*time.Second)
		score := ComputeScore(attemptsAt(start, offsets...), nil)
		assert.LessOrEqual(t, score, prev, "score rose when attempt %d was added", i+1)
		prev = score
	}
}

func TestComputeScoreMonotonicInElapsedTime(t *testing.T) {
	start := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	quick := ComputeScore(attemptsAt(start, 0, 5*time.Second), nil)
	slow := ComputeScore(attemptsAt(start, 0, 5*time.Minute), nil)
	assert.Less(t, slow, quick)
}

func TestComputeScoreFloorsAtZero(t *testing.T) {
	start := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	// 20 attempts alone exceed the baseline.
	offsets := make([]time.Duration, 20)
	for i := range offsets {
		offsets[i] = time.Duration(i) * time.Minute
	}
	score := ComputeScore(attemptsAt(start, offsets...), nil)
	assert.Equal(t, 0, score)
}

func TestComputeScoreUsesCompletionAsEnd(t *testing.T) {
	start := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	completed := start.Add(2 * time.Minute)

	withoutCompletion := ComputeScore(attemptsAt(start, 0, 30*time.Second), nil)
	withCompletion := ComputeScore(attemptsAt(start, 0, 30*time.Second), &completed)
	assert.Less(t, withCompletion, withoutCompletion)
}
