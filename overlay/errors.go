package overlay

import "errors"

// ErrRollbackLengthMismatch indicates Undo's truncation left a node-keyed
// array at a different length than Apply's pre-call snapshot recorded: a
// fatal programmer error, never a recoverable query outcome.
var ErrRollbackLengthMismatch = errors.New("overlay: rollback left node-keyed arrays at the wrong length")
