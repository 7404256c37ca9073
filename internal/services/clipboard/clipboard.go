// Package clipboard provides access to the system clipboard.
package clipboard

import (
	"github.com/atotto/clipboard"
)

// Reader returns the textual content of the system clipboard.
type Reader interface {
	Read() (string, error)
}

// Service implements Reader using github.com/atotto/clipboard.
type Service struct {
	readAll func() (string, error)
}

// NewService constructs a clipboard service backed by the operating system clipboard.
func NewService() *Service {
	return &Service{readAll: clipboard.ReadAll}
}

// Read returns the clipboard text. An empty clipboard yields an empty string.
func (service *Service) Read() (string, error) {
	if clipboard.Unsupported {
		return "", ErrUnsupported
	}
	return service.readAll()
}

var _ Reader = (*Service)(nil)
