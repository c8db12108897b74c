// Copyright (c) 2026 Porchlight. All rights reserved.

/*
Package blob stores uploaded image binaries and hands back public URLs.

Admin forms submit images inline as base64 data URIs; the content services
decode them with [ParseDataURI] and persist the bytes through a [Store]
before the database write. If the store fails, the whole operation aborts —
a content row never references an image that was not written.
*/
package blob

import "context"

// Store is the abstraction over the image binary store.
type Store interface {
	// Put persists data under a name derived from prefix and returns the
	// public URL the stored object is reachable at.
	Put(ctx context.Context, prefix, contentType string, data []byte) (string, error)

	// Remove deletes a previously stored object by its public URL.
	// Removing an unknown URL is not an error.
	Remove(ctx context.Context, url string) error
}
