package editor

import "errors"

var (
	// ErrLastBlock is returned when a delete would leave the project without blocks.
	ErrLastBlock = errors.New("projects must have at least one block")

	// ErrBlockNotFound is returned when no block has the requested id.
	ErrBlockNotFound = errors.New("block not found")

	// ErrNotPermutation is returned when a reorder does not name every existing block exactly once.
	ErrNotPermutation = errors.New("order must be a permutation of the current blocks")

	// ErrInvalidSize is returned for an unknown size tag.
	ErrInvalidSize = errors.New("invalid block size")

	// ErrInvalidFields is returned when a scalar field patch is out of range.
	ErrInvalidFields = errors.New("invalid project fields")

	// ErrEmptyImport is returned when an import or media replacement carries no reference.
	ErrEmptyImport = errors.New("media reference is required")

	// ErrUploadInFlight is returned when the block already has an upload outstanding.
	ErrUploadInFlight = errors.New("an upload is already in progress for this block")

	// ErrNotOpen is returned when no editor session exists for the project.
	ErrNotOpen = errors.New("no editor session open for project")
)
