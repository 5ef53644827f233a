package extract

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fsds-tools/reviewmail/internal/ticket"
)

// FileSource adapts the markup extractor to the ticket.Source interface.
// It reads one page export from a file or an io.Reader (stdin).
type FileSource struct {
	Extractor Extractor
	Path      string    // read this file when non-empty
	Reader    io.Reader // used when Path is empty
}

// Name identifies the source.
func (s *FileSource) Name() string { return "file" }

// Fetch parses the markup. The requested number is ignored; the markup
// determines which ticket this is.
func (s *FileSource) Fetch(ctx context.Context, _ int) (*ticket.Record, error) {
	markup, err := s.read()
	if err != nil {
		return nil, err
	}
	return s.Extractor.Extract(markup)
}

func (s *FileSource) read() ([]byte, error) {
	if s.Path != "" {
		data, err := os.ReadFile(s.Path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", s.Path, err)
		}
		return data, nil
	}

	data, err := io.ReadAll(s.Reader)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return nil, fmt.Errorf("no markup provided on stdin")
	}
	return data, nil
}
