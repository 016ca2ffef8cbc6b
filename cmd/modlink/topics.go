package modlink

import (
	"embed"
	"io/fs"
)

//go:embed topics/*.md
var topicFiles embed.FS

// topicsFS returns the embedded help topics rooted at the topics directory
func topicsFS() fs.FS {
	sub, err := fs.Sub(topicFiles, "topics")
	if err != nil {
		// fs.Sub only fails on an invalid path
		panic(err)
	}
	return sub
}
