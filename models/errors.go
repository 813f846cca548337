package models

import "errors"

var (
	ErrNotFound = errors.New("not found")

	ErrUserNotFound     = notFound("User not found")
	ErrPlaylistNotFound = notFound("Playlist not found")
	ErrSongNotFound     = notFound("Song not found")
	ErrNoImage          = notFound("There is no image associated with this playlist")

	ErrSongExists        = errors.New("Song already exists")
	ErrSongNotInPlaylist = errors.New("Song not in playlist")
)

// notFoundError carries a user facing message and matches ErrNotFound
type notFoundError struct {
	msg string
}

func notFound(msg string) error {
	return &notFoundError{msg}
}

func (e *notFoundError) Error() string {
	return e.msg
}

func (e *notFoundError) Is(target error) bool {
	return target == ErrNotFound
}
