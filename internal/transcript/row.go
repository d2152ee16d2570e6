package transcript

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/nguyentantai21042004/voice-dataset/internal/srt"
)

// ErrBadFilename is returned when a clip filename does not follow
// [cdNN-CCCC][start-end].ext.
var ErrBadFilename = errors.New("unrecognized clip filename")

var clipNameRe = regexp.MustCompile(`^\[cd(\d{2})-(\d{4})\]\[(\d{2,}\.\d{2}\.\d{2})-(\d{2,}\.\d{2}\.\d{2})\](\.[A-Za-z0-9]+)$`)

// Row is one dataset entry.
type Row struct {
	Filename  string
	Character string
	Content   string
}

// Clip is the information encoded in a synthesized filename.
type Clip struct {
	CD      int
	Counter int
	Start   srt.Display
	End     srt.Display
	Ext     string
}

// Duration is End minus Start in seconds.
func (c Clip) Duration() float64 {
	return c.End.TotalSeconds() - c.Start.TotalSeconds()
}

// FormatFilename builds "[cdNN-CCCC][start-end]ext" with display-encoded
// start and end.
func FormatFilename(cd, counter int, start, end srt.Timestamp, ext string) string {
	return fmt.Sprintf("[cd%02d-%04d][%s-%s]%s", cd, counter, start.Display(), end.Display(), ext)
}

// ParseFilename decodes a name produced by FormatFilename.
func ParseFilename(name string) (Clip, error) {
	m := clipNameRe.FindStringSubmatch(name)
	if m == nil {
		return Clip{}, fmt.Errorf("%w: %q", ErrBadFilename, name)
	}
	cd, _ := strconv.Atoi(m[1])
	counter, _ := strconv.Atoi(m[2])
	start, err := srt.ParseDisplay(m[3])
	if err != nil {
		return Clip{}, fmt.Errorf("%w: %v", ErrBadFilename, err)
	}
	end, err := srt.ParseDisplay(m[4])
	if err != nil {
		return Clip{}, fmt.Errorf("%w: %v", ErrBadFilename, err)
	}
	return Clip{CD: cd, Counter: counter, Start: start, End: end, Ext: m[5]}, nil
}
