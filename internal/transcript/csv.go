package transcript

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dimchansky/utfbom"

	"github.com/nguyentantai21042004/voice-dataset/internal/fsutil"
)

var header = []string{"filename", "character", "content"}

// utf8BOM is written first so spreadsheet tools pick UTF-8.
const utf8BOM = "\ufeff"

// EncodeCSV writes a BOM, the header and rows to w.
func EncodeCSV(w io.Writer, rows []Row) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{r.Filename, r.Character, r.Content}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSV replaces path with the encoded rows.
func WriteCSV(path string, rows []Row) error {
	var buf bytes.Buffer
	if err := EncodeCSV(&buf, rows); err != nil {
		return fmt.Errorf("encode csv: %w", err)
	}
	return fsutil.WriteFileAtomic(path, buf.Bytes(), 0o644)
}

// DecodeCSV reads rows written by EncodeCSV. A BOM and the header row are
// optional; missing trailing fields are empty.
func DecodeCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(utfbom.SkipOnly(r))
	cr.FieldsPerRecord = -1

	var rows []Row
	first := true
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if first {
			first = false
			if len(rec) > 0 && rec[0] == header[0] {
				continue
			}
		}
		if len(rec) == 0 || rec[0] == "" {
			continue
		}
		row := Row{Filename: rec[0]}
		if len(rec) > 1 {
			row.Character = rec[1]
		}
		if len(rec) > 2 {
			row.Content = rec[2]
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ReadCSV loads a transcript CSV.
func ReadCSV(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open transcript: %w", err)
	}
	defer f.Close()

	rows, err := DecodeCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}
