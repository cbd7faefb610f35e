package domain

import "io"

// Upload is a file received with a request, handed to the blob store.
type Upload struct {
	Filename string
	Size     int64
	Content  io.Reader
}
