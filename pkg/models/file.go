package models

// FileInfo describes one entry found while walking a folder container
type FileInfo struct {
	Path    string // Full file path on disk
	RelPath string // Path relative to the container root, OS separators
	Size    int64
	IsDir   bool
}
