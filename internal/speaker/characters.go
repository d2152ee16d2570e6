package speaker

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dimchansky/utfbom"
)

// CharacterMap maps a Chinese speaker name to the dataset character label.
type CharacterMap map[string]string

// Lookup returns the label for name. A blank label counts as missing.
func (m CharacterMap) Lookup(name string) (string, bool) {
	label, ok := m[name]
	if !ok || strings.TrimSpace(label) == "" {
		return "", false
	}
	return label, true
}

// Len returns the number of mapped names.
func (m CharacterMap) Len() int {
	return len(m)
}

// LoadCharacterMap reads a CSV with the header "chinese,english". Rows with
// a blank Chinese name are ignored.
func LoadCharacterMap(path string) (CharacterMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open character map: %w", err)
	}
	defer f.Close()

	m, err := ReadCharacterMap(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// ReadCharacterMap parses the character CSV from r.
func ReadCharacterMap(r io.Reader) (CharacterMap, error) {
	cr := csv.NewReader(utfbom.SkipOnly(r))
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return CharacterMap{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	zh, en := columnIndex(header, "chinese", 0), columnIndex(header, "english", 1)

	m := CharacterMap{}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if zh >= len(rec) {
			continue
		}
		name := strings.TrimSpace(rec[zh])
		if name == "" {
			continue
		}
		label := ""
		if en < len(rec) {
			label = strings.TrimSpace(rec[en])
		}
		m[name] = label
	}
	return m, nil
}

func columnIndex(header []string, name string, fallback int) int {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return fallback
}
