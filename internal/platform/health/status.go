package health

import (
	"sync"
	"time"
)

// State is the store health as seen by the background checker.
type State int

const (
	StateHealthy State = iota
	StateDegraded
)

func (s State) String() string {
	if s == StateHealthy {
		return "healthy"
	}
	return "degraded"
}

type statusManager struct {
	mu          sync.RWMutex
	state       State
	lastChecked time.Time
	lastError   string
}

var globalStatus = &statusManager{state: StateHealthy}

// GetState returns the current store health.
func GetState() State {
	globalStatus.mu.RLock()
	defer globalStatus.mu.RUnlock()
	return globalStatus.state
}

// Snapshot returns the state plus the last check time and error text.
func Snapshot() (State, time.Time, string) {
	globalStatus.mu.RLock()
	defer globalStatus.mu.RUnlock()
	return globalStatus.state, globalStatus.lastChecked, globalStatus.lastError
}

func update(healthy bool, errText string) {
	globalStatus.mu.Lock()
	defer globalStatus.mu.Unlock()
	globalStatus.lastChecked = time.Now()
	globalStatus.lastError = errText
	if healthy {
		globalStatus.state = StateHealthy
	} else {
		globalStatus.state = StateDegraded
	}
}
