package analyzer

import (
	"sync"
	"time"
)

// TaskStatus represents the state of one document in a batch.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusProcessing TaskStatus = "processing"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusFailed     TaskStatus = "failed"
	TaskStatusSkipped    TaskStatus = "skipped"
)

// ProgressUpdate reports a state change of one document.
type ProgressUpdate struct {
	FileName    string
	Status      TaskStatus
	Message     string
	Completed   int
	Total       int
	ElapsedTime time.Duration
}

// ProgressFunc observes progress updates.
type ProgressFunc func(ProgressUpdate)

// ProgressTracker keeps the latest status of every document in a batch.
// Its Update method can be used directly as a ProgressFunc.
type ProgressTracker struct {
	mu       sync.RWMutex
	started  time.Time
	statuses map[string]TaskStatus
}

// NewProgressTracker creates a tracker whose clock starts now.
func NewProgressTracker() *ProgressTracker {
	return &ProgressTracker{
		started:  time.Now(),
		statuses: make(map[string]TaskStatus),
	}
}

// Update records the status carried by update.
func (pt *ProgressTracker) Update(update ProgressUpdate) {
	pt.mu.Lock()
	defer pt.mu.Unlock()

	pt.statuses[update.FileName] = update.Status
}

func (pt *ProgressTracker) status(fileName string) (TaskStatus, bool) {
	pt.mu.RLock()
	defer pt.mu.RUnlock()

	status, ok := pt.statuses[fileName]
	return status, ok
}

// GetSummary counts documents per status.
func (pt *ProgressTracker) GetSummary() ProgressSummary {
	pt.mu.RLock()
	defer pt.mu.RUnlock()

	summary := ProgressSummary{
		TotalTasks:   len(pt.statuses),
		StatusCounts: make(map[TaskStatus]int),
		ElapsedTime:  time.Since(pt.started),
	}
	for _, status := range pt.statuses {
		summary.StatusCounts[status]++
	}

	return summary
}

// ProgressSummary is a point-in-time view of a ProgressTracker.
type ProgressSummary struct {
	TotalTasks   int
	StatusCounts map[TaskStatus]int
	ElapsedTime  time.Duration
}

// progressCounter numbers completions within one batch.
type progressCounter struct {
	notify    ProgressFunc
	total     int
	completed int
	mu        sync.Mutex
}

func newProgressCounter(notify ProgressFunc, total int) *progressCounter {
	return &progressCounter{notify: notify, total: total}
}

// send forwards an update. Terminal states advance the completed count.
// Calls to notify are serialized.
func (pc *progressCounter) send(update ProgressUpdate) {
	if pc.notify == nil {
		return
	}

	pc.mu.Lock()
	defer pc.mu.Unlock()

	if update.Status == TaskStatusCompleted || update.Status == TaskStatusFailed {
		pc.completed++
	}
	update.Completed = pc.completed
	update.Total = pc.total

	pc.notify(update)
}
