package importer

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Row is one record row read from a feed file. Fields is nil for a blank
// line; Number is the 1-based position in the file, header included.
type Row struct {
	Number int
	Fields []string
}

// RowSource streams record rows from a feed file. The header row is consumed
// and discarded by the source; callers only ever see data rows.
type RowSource interface {
	// Next returns the next data row. ok is false once the stream is
	// exhausted or a read error occurred; check Err afterwards.
	Next() (row Row, ok bool)
	Err() error
	Close() error
}

const byteOrderMark = "\uFEFF"

// OpenSource opens path as a row source. XLSX workbooks are read via their
// first sheet; anything else is treated as delimited text.
func OpenSource(path, delimiter string) (RowSource, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("file path is required")
	}
	if delimiter == "" {
		delimiter = ","
	}

	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return openXLSXSource(path)
	}
	return openTextSource(path, delimiter)
}

type textSource struct {
	file       *os.File
	scanner    *bufio.Scanner
	delimiter  string
	line       int
	headerRead bool
}

func openTextSource(path, delimiter string) (*textSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open feed file: %w", err)
	}

	return &textSource{
		file:      f,
		scanner:   bufio.NewScanner(f),
		delimiter: delimiter,
	}, nil
}

// readLine advances to the next physical line. A BOM can only sit at the
// very start of the file, so it is stripped from line 1 and nowhere else.
func (s *textSource) readLine() (string, bool) {
	if !s.scanner.Scan() {
		return "", false
	}
	s.line++

	raw := s.scanner.Text()
	if s.line == 1 {
		raw = strings.TrimPrefix(raw, byteOrderMark)
	}
	return raw, true
}

func (s *textSource) Next() (Row, bool) {
	if !s.headerRead {
		s.headerRead = true
		// Header content is never validated, only discarded.
		if _, ok := s.readLine(); !ok {
			return Row{}, false
		}
	}

	raw, ok := s.readLine()
	if !ok {
		return Row{}, false
	}

	if strings.TrimSpace(raw) == "" {
		return Row{Number: s.line}, true
	}

	// Split never collapses empty trailing fields: "a,," is three fields.
	return Row{Number: s.line, Fields: strings.Split(raw, s.delimiter)}, true
}

func (s *textSource) Err() error {
	if err := s.scanner.Err(); err != nil {
		return fmt.Errorf("failed to read feed file: %w", err)
	}
	return nil
}

func (s *textSource) Close() error { return s.file.Close() }

type xlsxSource struct {
	book       *excelize.File
	rows       *excelize.Rows
	line       int
	readErr    error
	headerRead bool
}

func openXLSXSource(path string) (*xlsxSource, error) {
	book, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx feed: %w", err)
	}

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		_ = book.Close()
		return nil, fmt.Errorf("xlsx feed has no sheets")
	}

	rows, err := book.Rows(sheets[0])
	if err != nil {
		_ = book.Close()
		return nil, fmt.Errorf("failed to read xlsx rows: %w", err)
	}

	return &xlsxSource{book: book, rows: rows}, nil
}

func (s *xlsxSource) Next() (Row, bool) {
	if s.readErr != nil {
		return Row{}, false
	}

	if !s.headerRead {
		s.headerRead = true
		if !s.rows.Next() {
			return Row{}, false
		}
		s.line++
		if _, err := s.rows.Columns(); err != nil {
			s.readErr = err
			return Row{}, false
		}
	}

	if !s.rows.Next() {
		return Row{}, false
	}
	s.line++

	cells, err := s.rows.Columns()
	if err != nil {
		s.readErr = err
		return Row{}, false
	}

	blank := true
	for _, cell := range cells {
		if strings.TrimSpace(cell) != "" {
			blank = false
			break
		}
	}
	if blank {
		return Row{Number: s.line}, true
	}
	return Row{Number: s.line, Fields: cells}, true
}

func (s *xlsxSource) Err() error {
	if s.readErr != nil {
		return fmt.Errorf("failed to read xlsx feed: %w", s.readErr)
	}
	if err := s.rows.Error(); err != nil {
		return fmt.Errorf("failed to read xlsx feed: %w", err)
	}
	return nil
}

func (s *xlsxSource) Close() error {
	_ = s.rows.Close()
	return s.book.Close()
}
