package transcript

import (
	"fmt"
	"regexp"

	"github.com/nguyentantai21042004/voice-dataset/internal/logger"
	"github.com/nguyentantai21042004/voice-dataset/internal/speaker"
)

// DefaultPattern matches the bilingual drama CD subtitles, e.g.
// KAXA-7503CD_bilingual.srt.
const DefaultPattern = `^KAXA-75(?P<cd>\d{2})CD_bilingual\.srt$`

// Options configures a Builder.
type Options struct {
	// Pattern selects subtitle files and must capture the CD index in a
	// group named "cd".
	Pattern string
	// AudioExt is appended to synthesized filenames.
	AudioExt string
}

type implBuilder struct {
	chars    speaker.CharacterMap
	pattern  *regexp.Regexp
	audioExt string
	logger   logger.Logger
}

// New creates a Builder resolving speakers through chars.
func New(chars speaker.CharacterMap, opts Options, log logger.Logger) (Builder, error) {
	if opts.Pattern == "" {
		opts.Pattern = DefaultPattern
	}
	if opts.AudioExt == "" {
		opts.AudioExt = ".ogg"
	}

	re, err := regexp.Compile(opts.Pattern)
	if err != nil {
		return nil, fmt.Errorf("compile pattern: %w", err)
	}
	if re.SubexpIndex("cd") < 0 {
		return nil, fmt.Errorf("pattern %q has no \"cd\" group", opts.Pattern)
	}

	return &implBuilder{
		chars:    chars,
		pattern:  re,
		audioExt: opts.AudioExt,
		logger:   log,
	}, nil
}
