package sastask

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/eliahaenggi/h2plan/internal/task"
)

// reader opens filename, transparently gunzipping it if gzipped is set,
// mirroring parsers.reader.
func reader(filename string, gzipped bool) (io.ReadCloser, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	rc := io.ReadCloser(file)
	if gzipped {
		rc, err = gzip.NewReader(rc)
		if err != nil {
			file.Close()
			return nil, err
		}
	}
	return rc, nil
}

// LoadFile parses a SAS+-style task description from filename, taking the
// gzipped argument literally rather than sniffing the extension (following
// parsers.LoadDIMACS's convention). Callers that want extension sniffing
// should use Load.
func LoadFile(filename string, gzipped bool) (*task.Static, error) {
	rc, err := reader(filename, gzipped)
	if err != nil {
		return nil, fmt.Errorf("error reading file %q: %w", filename, err)
	}
	defer rc.Close()

	t, err := ParseSASTask(bufio.NewScanner(rc))
	if err != nil {
		return nil, fmt.Errorf("error parsing file %q: %w", filename, err)
	}
	return t, nil
}

// Load parses a SAS+-style task description from filename, treating a
// ".gz" suffix as a request to gunzip the contents.
func Load(filename string) (*task.Static, error) {
	return LoadFile(filename, strings.HasSuffix(filename, ".gz"))
}
