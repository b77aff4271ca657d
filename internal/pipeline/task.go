package pipeline

import "github.com/google/uuid"

// TaskState tracks a file's lifecycle. Every task reaches exactly one of
// the two terminal states.
type TaskState int

const (
	StateDiscovered TaskState = iota
	StateConverting
	StateSucceeded
	StateFailed
)

func (s TaskState) String() string {
	switch s {
	case StateDiscovered:
		return "discovered"
	case StateConverting:
		return "converting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// FileTask is one file's journey through the pipeline, from discovery to
// terminal outcome. RelPath is the path under the input root and is
// mirrored under the output and failed roots.
type FileTask struct {
	ID      string // Correlates progress lines with diagnostic records.
	Path    string // Absolute source path.
	RelPath string
	Size    int64
	State   TaskState
}

func newFileTask(path, rel string, size int64) FileTask {
	return FileTask{
		ID:      uuid.NewString(),
		Path:    path,
		RelPath: rel,
		Size:    size,
		State:   StateDiscovered,
	}
}
