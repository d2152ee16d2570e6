package srt

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/dimchansky/utfbom"
	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/transform"
)

// legacyEncodings maps chardet charset names to decoders for subtitle files
// that were not saved as UTF-8.
var legacyEncodings = map[string]encoding.Encoding{
	"GB-18030":  simplifiedchinese.GB18030,
	"Big5":      traditionalchinese.Big5,
	"Shift_JIS": japanese.ShiftJIS,
	"EUC-JP":    japanese.EUCJP,
}

// Decode turns raw subtitle bytes into UTF-8 text with LF line endings.
// A UTF-8 BOM is dropped; non UTF-8 input is detected and converted.
func Decode(raw []byte) (string, error) {
	body, err := io.ReadAll(utfbom.SkipOnly(bytes.NewReader(raw)))
	if err != nil {
		return "", fmt.Errorf("skip bom: %w", err)
	}

	if !utf8.Valid(body) {
		body, err = toUTF8(body)
		if err != nil {
			return "", err
		}
	}

	return strings.ReplaceAll(string(body), "\r\n", "\n"), nil
}

func toUTF8(b []byte) ([]byte, error) {
	res, err := chardet.NewTextDetector().DetectBest(b)
	if err != nil {
		return nil, fmt.Errorf("detect charset: %w", err)
	}
	enc, ok := legacyEncodings[res.Charset]
	if !ok {
		return nil, fmt.Errorf("unsupported charset %q", res.Charset)
	}
	out, err := io.ReadAll(transform.NewReader(bytes.NewReader(b), enc.NewDecoder()))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", res.Charset, err)
	}
	return out, nil
}

// ReadText reads and decodes a subtitle file.
func ReadText(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	text, err := Decode(raw)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", path, err)
	}
	return text, nil
}

// ReadFile reads, decodes and parses a subtitle file, failing on the first
// malformed block.
func ReadFile(path string, opts Options) ([]Block, error) {
	text, err := ReadText(path)
	if err != nil {
		return nil, err
	}
	return Parse(path, text, opts)
}
