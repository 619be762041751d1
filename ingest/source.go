package ingest

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// Source yields raw order records one at a time, strictly in the order
// they are meant to receive time priority: arrival order at the source
// defines arrival-sequence order in the engine. Anything that produces
// lines in a defined order can drive the engine identically, whether a
// file, a network feed, or a test harness.
type Source interface {
	// Next returns the next raw record. It returns io.EOF when the
	// source is exhausted.
	Next() (string, error)
}

// ReaderSource yields newline-delimited records from an io.Reader.
// Lines of any length are returned whole; an absurdly long line is
// still just one record, handed to the parser to reject, never a read
// failure that would abort the stream.
type ReaderSource struct {
	reader *bufio.Reader
}

func NewReaderSource(r io.Reader) *ReaderSource {
	return &ReaderSource{reader: bufio.NewReader(r)}
}

func (s *ReaderSource) Next() (string, error) {
	line, err := s.reader.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			// final line without a trailing newline
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// FileSource yields records from an order file, one per line.
type FileSource struct {
	*ReaderSource
	file *os.File
}

func OpenFile(path string) (*FileSource, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &FileSource{
		ReaderSource: NewReaderSource(file),
		file:         file,
	}, nil
}

func (s *FileSource) Close() error {
	return s.file.Close()
}
