// Package logfinder provides ArcDPS log directory and file detection.
package logfinder

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// EnvLogDir is the environment variable name for specifying log directory.
const EnvLogDir = "EVTC_LOGDIR"

// Sentinel errors.
var (
	ErrLogDirNotFound = errors.New("log directory not found")
	ErrNoLogFiles     = errors.New("no log files found")
)

// logExtensions are the file extensions ArcDPS writes logs with.
// Compressed logs are zip archives named .zevtc; older builds used .zip.
var logExtensions = []string{".evtc", ".zevtc", ".zip"}

// IsLogFile reports whether path has an EVTC log extension.
func IsLogFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range logExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// DefaultLogDirs returns candidate ArcDPS log directories in priority order.
func DefaultLogDirs() []string {
	var homes []string
	if userProfile := os.Getenv("USERPROFILE"); userProfile != "" {
		homes = append(homes, userProfile)
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		homes = append(homes, home)
	}

	var dirs []string
	seen := make(map[string]bool)
	for _, home := range homes {
		dir := filepath.Join(home, "Documents", "arcdps", "arcdps.cbtlogs")
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

// FindLogDir returns the ArcDPS log directory.
//
// Priority:
//  1. explicit (if non-empty)
//  2. EVTC_LOGDIR environment variable
//  3. Auto-detect from DefaultLogDirs()
//
// Returns ErrLogDirNotFound if no valid directory is found.
// The returned path has symlinks resolved for consistency.
func FindLogDir(explicit string) (string, error) {
	if explicit != "" {
		if resolved := resolveAndValidateLogDir(explicit); resolved != "" {
			return resolved, nil
		}
		return "", fmt.Errorf("%w: specified directory is invalid or contains no log files", ErrLogDirNotFound)
	}

	if envDir := os.Getenv(EnvLogDir); envDir != "" {
		if resolved := resolveAndValidateLogDir(envDir); resolved != "" {
			return resolved, nil
		}
		return "", fmt.Errorf("%w: %s environment variable points to invalid directory", ErrLogDirNotFound, EnvLogDir)
	}

	for _, dir := range DefaultLogDirs() {
		if resolved := resolveAndValidateLogDir(dir); resolved != "" {
			return resolved, nil
		}
	}

	return "", ErrLogDirNotFound
}

// ListLogFiles returns every log file under dir, including the per-boss
// subdirectories ArcDPS creates, sorted by modification time (oldest first).
// Files with equal modification times are ordered by path.
func ListLogFiles(dir string) ([]string, error) {
	type fileInfo struct {
		path    string
		modTime int64
	}
	var files []fileInfo

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil // Skip unreadable subtrees
		}
		if d.IsDir() || !IsLogFile(path) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil // Skip files removed while walking
		}
		files = append(files, fileInfo{path: path, modTime: info.ModTime().UnixNano()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing log files: %w", err)
	}

	sort.Slice(files, func(i, j int) bool {
		if files[i].modTime != files[j].modTime {
			return files[i].modTime < files[j].modTime
		}
		return files[i].path < files[j].path
	})

	result := make([]string, len(files))
	for i, f := range files {
		result[i] = f.path
	}
	return result, nil
}

// FindLatestLogFile returns the path to the most recently modified log
// file under dir.
//
// Returns ErrNoLogFiles if no log files are found.
func FindLatestLogFile(dir string) (string, error) {
	files, err := ListLogFiles(dir)
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", ErrNoLogFiles
	}
	return files[len(files)-1], nil
}

// hasLogFile reports whether dir contains at least one log file.
func hasLogFile(dir string) bool {
	found := false
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() && IsLogFile(path) {
			found = true
			return fs.SkipAll
		}
		return nil
	})
	return found
}

// resolveAndValidateLogDir resolves symlinks and validates the directory.
// Returns the resolved path if valid, empty string otherwise.
func resolveAndValidateLogDir(dir string) string {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return ""
	}

	// Resolve symlinks (works with Windows Junctions in Go 1.20+)
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		// Fallback to original path if symlink resolution fails
		// (e.g., permission issues, broken links)
		resolved = dir
	}

	if !hasLogFile(resolved) {
		return ""
	}
	return resolved
}
