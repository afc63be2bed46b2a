package domain

import (
	"errors"
	"image"
)

// Origin identifies where an acquired image's bytes came from.
type Origin string

// Acquisition origins.
const (
	OriginNone   Origin = "none"
	OriginLocal  Origin = "local"
	OriginRemote Origin = "remote"
)

// Acquisition is the outcome of the local-first, remote-fallback image
// acquisition. Both failure causes stay separately inspectable even though
// most callers only branch on Acquired.
type Acquisition struct {
	Image     image.Image // Decoded pixels, nil when both attempts failed
	Origin    Origin      // Attempt that produced the image
	LocalErr  error       // Local attempt failure, nil on success
	RemoteErr error       // Remote attempt failure, nil when not attempted
}

// Acquired reports whether either attempt produced a decoded image.
func (a Acquisition) Acquired() bool {
	return a.Image != nil
}

// Cause returns the combined failure cause for logging, or nil when the
// acquisition succeeded.
func (a Acquisition) Cause() error {
	if a.Acquired() {
		return nil
	}
	return errors.Join(a.LocalErr, a.RemoteErr)
}
