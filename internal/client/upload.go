package client

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"sync"
)

// multipartUpload streams a single file as a multipart/form-data body.
// Each call to Open yields a fresh body, so the upload can be replayed when a
// redirect is followed. The boundary is fixed per upload so the Content-Type
// header stays valid across attempts.
type multipartUpload struct {
	field    string
	path     string
	boundary string
}

func newMultipartUpload(field, path string) *multipartUpload {
	return &multipartUpload{
		field:    field,
		path:     path,
		boundary: multipart.NewWriter(io.Discard).Boundary(),
	}
}

// ContentType returns the multipart Content-Type header value.
func (u *multipartUpload) ContentType() string {
	return "multipart/form-data; boundary=" + u.boundary
}

// Open returns a body that opens the file on its first Read.
func (u *multipartUpload) Open() (io.Reader, error) {
	return &lazyBody{upload: u}, nil
}

func (u *multipartUpload) write(pw *io.PipeWriter) {
	file, err := os.Open(u.path)
	if err != nil {
		pw.CloseWithError(err)

		return
	}
	defer file.Close()

	writer := multipart.NewWriter(pw)

	err = writer.SetBoundary(u.boundary)
	if err != nil {
		pw.CloseWithError(err)

		return
	}

	part, err := writer.CreateFormFile(u.field, filepath.Base(u.path))
	if err != nil {
		pw.CloseWithError(err)

		return
	}

	_, err = io.Copy(part, file)
	if err != nil {
		pw.CloseWithError(err)

		return
	}

	pw.CloseWithError(writer.Close())
}

// lazyBody starts the pipe writer on the first Read. Closing it before any
// Read never touches the file.
type lazyBody struct {
	upload *multipartUpload

	mu     sync.Mutex
	reader *io.PipeReader
	closed bool
}

func (b *lazyBody) Read(p []byte) (int, error) {
	b.mu.Lock()

	if b.closed {
		b.mu.Unlock()

		return 0, io.ErrClosedPipe
	}

	if b.reader == nil {
		pr, pw := io.Pipe()
		b.reader = pr

		go b.upload.write(pw)
	}

	reader := b.reader
	b.mu.Unlock()

	return reader.Read(p)
}

func (b *lazyBody) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true

	if b.reader != nil {
		return b.reader.Close()
	}

	return nil
}
