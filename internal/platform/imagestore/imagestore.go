// Package imagestore abstracts the external object storage that hosts
// character and franchise images. Uploads happen out of band in the admin
// frontend; the backend only needs to delete images it replaces, addressed
// by the public id embedded in the URL path.
package imagestore

import (
	"strings"

	"github.com/rs/zerolog/log"
)

// Store is the object-storage collaborator.
type Store interface {
	// Delete removes the stored object with the given public id.
	Delete(publicID string) error
}

// PublicIDFromURL derives the storage public id from a delivery URL, i.e.
// the path segments after ".../upload/<version>/" with the file extension
// stripped.
func PublicIDFromURL(url string) string {
	parts := strings.Split(url, "/")
	uploadIdx := -1
	for i, p := range parts {
		if p == "upload" {
			uploadIdx = i
			break
		}
	}
	if uploadIdx < 0 || uploadIdx+2 >= len(parts) {
		return ""
	}
	folderAndFile := strings.Join(parts[uploadIdx+2:], "/")
	if dot := strings.LastIndex(folderAndFile, "."); dot >= 0 {
		folderAndFile = folderAndFile[:dot]
	}
	return folderAndFile
}

// noopStore logs deletions without talking to any storage backend. It is the
// default wiring when no storage credentials are configured.
type noopStore struct{}

func (noopStore) Delete(publicID string) error {
	log.Debug().Str("publicId", publicID).Msg("imagestore: delete skipped (noop store)")
	return nil
}

// Default is the store used when no external backend is configured.
var Default Store = noopStore{}
