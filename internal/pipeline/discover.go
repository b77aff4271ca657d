package pipeline

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/backmassage/pdfarc/internal/logging"
)

// Discover walks inputRoot and returns the full task list, sorted
// lexicographically by path, before any routing mutates the tree. The walk
// collects only regular files whose (case-insensitive) extension appears in
// exts; symlinks are never followed, so a link pointing outside the root
// cannot widen the batch or recurse. An unreadable directory is logged and
// skipped; only an unreadable inputRoot itself is an error.
func Discover(inputRoot string, exts []string, log *logging.Logger) ([]FileTask, error) {
	extSet := make(map[string]bool, len(exts))
	for _, e := range exts {
		extSet[strings.ToLower(e)] = true
	}

	var tasks []FileTask
	err := filepath.WalkDir(inputRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == inputRoot {
				return err
			}
			log.Warn("Cannot read %s, skipping: %v", path, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		// WalkDir does not follow symlinks into directories; skip
		// symlinked files too so only regular files become tasks.
		if !d.Type().IsRegular() {
			return nil
		}
		if !extSet[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		rel, relErr := filepath.Rel(inputRoot, path)
		if relErr != nil {
			log.Warn("Cannot relativize %s, skipping: %v", path, relErr)
			return nil
		}
		var size int64
		if info, infoErr := d.Info(); infoErr == nil {
			size = info.Size()
		}
		tasks = append(tasks, newFileTask(path, rel, size))
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(tasks, func(i, j int) bool { return tasks[i].Path < tasks[j].Path })
	return tasks, nil
}
