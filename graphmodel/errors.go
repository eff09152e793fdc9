package graphmodel

import "errors"

// Sentinel errors for fatal load-time and query-time validation failures.
// A malformed artifact or out-of-range NodeID is a programmer error, not a
// recoverable query outcome.
var (
	// ErrLengthMismatch indicates two node-keyed arrays that must share a
	// length disagree.
	ErrLengthMismatch = errors.New("graphmodel: node-keyed array length mismatch")

	// ErrSubpurposeIndexOutOfRange indicates a SubpurposeScore or the
	// subpurpose-to-purpose lookup referenced an index >= SubpurposesCount.
	ErrSubpurposeIndexOutOfRange = errors.New("graphmodel: subpurpose index out of range")

	// ErrPurposeIndexOutOfRange indicates subpurpose-to-purpose mapped to a
	// value >= PurposesCount.
	ErrPurposeIndexOutOfRange = errors.New("graphmodel: purpose index out of range")

	// ErrTimetableNotSorted indicates a RouteNode's Timetable is not sorted
	// strictly ascending by Leavetime.
	ErrTimetableNotSorted = errors.New("graphmodel: timetable not sorted ascending by leavetime")

	// ErrNodeIDOutOfRange indicates a query or overlay referenced a NodeID
	// beyond the graph's node space.
	ErrNodeIDOutOfRange = errors.New("graphmodel: node id out of range")

	// ErrMissingDecayCurve indicates a mode has no decay curve loaded for
	// a requested time-of-day bucket.
	ErrMissingDecayCurve = errors.New("graphmodel: missing decay curve for bucket")

	// ErrBadDecayCurveLength indicates a decay curve strip's length is not
	// PurposesCount*DecayStride.
	ErrBadDecayCurveLength = errors.New("graphmodel: decay curve has wrong length")
)
