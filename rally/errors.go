package rally

import "errors"

var (
	// ErrOutOfSequence is reported when a volley does not carry the next hop number.
	ErrOutOfSequence = errors.New("rally: volley out of sequence")
	// ErrMatchAborted is returned by Play when its context ends before both players stop.
	ErrMatchAborted = errors.New("rally: match aborted")
)
