package ingest

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DATReader reads a semicolon-delimited source file record by record.
// Column names are case-normalized to lowercase on open.
type DATReader struct {
	file    *os.File
	csv     *csv.Reader
	columns []string
}

// OpenDAT opens a source file and reads its header. The files are UTF-8
// with a byte order mark, which csv does not strip on its own.
func OpenDAT(path string) (*DATReader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	buf := bufio.NewReader(file)
	head, err := buf.Peek(len(utf8BOM))
	if err == nil && bytes.Equal(head, utf8BOM) {
		buf.Discard(len(utf8BOM))
	}

	r := csv.NewReader(buf)
	r.Comma = ';'
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("error reading header of %s: %v", path, err)
	}

	columns := make([]string, len(header))
	for i, col := range header {
		columns[i] = strings.ToLower(strings.TrimSpace(col))
	}

	return &DATReader{file: file, csv: r, columns: columns}, nil
}

// Columns returns the lowercased column names from the file header.
func (r *DATReader) Columns() []string {
	return r.columns
}

// Read returns the next record, or io.EOF when the file is exhausted.
func (r *DATReader) Read() ([]string, error) {
	record, err := r.csv.Read()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (r *DATReader) Close() error {
	return r.file.Close()
}
