package domain

import "errors"

var (
	ErrScheduleNotFound  = errors.New("schedule not found")
	ErrEntryNotFound     = errors.New("schedule entry not found")
	ErrSongNotFound      = errors.New("song not found")
	ErrScriptureNotFound = errors.New("scripture not found")
	ErrImageNotFound     = errors.New("image not found")
	ErrNoActiveEntry     = errors.New("no entry is currently presented")
	ErrSlideOutOfRange   = errors.New("slide index out of range")
	ErrUnknownItemKind   = errors.New("unknown item kind")
	ErrDuplicateReorder  = errors.New("duplicate entry in reorder set")
)
