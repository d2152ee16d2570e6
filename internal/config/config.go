package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. DATASET_PATHS_SRT_DIR.
const EnvPrefix = "DATASET"

type Config struct {
	Paths       PathsConfig       `yaml:"paths"`
	Transcript  TranscriptConfig  `yaml:"transcript"`
	Validation  ValidationConfig  `yaml:"validate" envconfig:"validate"`
	FFmpeg      FFmpegConfig      `yaml:"ffmpeg"`
	Whisper     WhisperConfig     `yaml:"whisper"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
}

type PathsConfig struct {
	SrtDir        string `yaml:"srt_dir" split_words:"true"`
	CharactersCSV string `yaml:"characters_csv" split_words:"true"`
	TranscriptCSV string `yaml:"transcript_csv" split_words:"true"`
	CDAudioDir    string `yaml:"cd_audio_dir" split_words:"true"`
	SeparatedDir  string `yaml:"separated_dir" split_words:"true"`
	VocalOutput   string `yaml:"vocal_output" split_words:"true"`
}

type TranscriptConfig struct {
	SrtPattern string `yaml:"srt_pattern" split_words:"true"`
	AudioExt   string `yaml:"audio_ext" split_words:"true" validate:"startswith=."`
	DryRun     bool   `yaml:"dry_run" split_words:"true"`
}

type ValidationConfig struct {
	IgnoreCase    bool `yaml:"ignore_case" split_words:"true"`
	MaxLineLength int  `yaml:"max_line_length" split_words:"true" validate:"gte=1"`
	Recursive     bool `yaml:"recursive"`
}

type FFmpegConfig struct {
	Binary     string `yaml:"binary"`
	SampleRate int    `yaml:"sample_rate" split_words:"true" validate:"gte=8000,lte=192000"`
	Channels   int    `yaml:"channels" validate:"gte=1,lte=2"`
	Codec      string `yaml:"codec"`
}

type WhisperConfig struct {
	BinaryPath string `yaml:"binary_path" split_words:"true"`
	ModelPath  string `yaml:"model_path" split_words:"true"`
	Language   string `yaml:"language"`
	Threads    int    `yaml:"threads" validate:"gte=1"`
}

type LoggingConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent" split_words:"true" validate:"gte=1,lte=64"`
}

var validate = validator.New()

// Load reads the YAML file at path, applies .env and DATASET_* environment
// overrides and validates the result. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// A missing .env is the common case.
	_ = godotenv.Load()

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("env overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate fills defaults and checks value ranges.
func (c *Config) Validate() error {
	c.applyDefaults()

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	re, err := regexp.Compile(c.Transcript.SrtPattern)
	if err != nil {
		return fmt.Errorf("transcript.srt_pattern: %w", err)
	}
	if re.SubexpIndex("cd") < 0 {
		return fmt.Errorf("transcript.srt_pattern must have a named group \"cd\"")
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Paths.SrtDir == "" {
		c.Paths.SrtDir = "drama-cd-transcript"
	}
	if c.Paths.CharactersCSV == "" {
		c.Paths.CharactersCSV = "characters.csv"
	}
	if c.Paths.TranscriptCSV == "" {
		c.Paths.TranscriptCSV = "drama-cd-transcript.csv"
	}
	if c.Paths.CDAudioDir == "" {
		c.Paths.CDAudioDir = "CDs"
	}
	if c.Paths.SeparatedDir == "" {
		c.Paths.SeparatedDir = "separated/htdemucs"
	}
	if c.Paths.VocalOutput == "" {
		c.Paths.VocalOutput = "drama-cd-raw-vocal-output"
	}
	if c.Transcript.SrtPattern == "" {
		c.Transcript.SrtPattern = `^KAXA-75(?P<cd>\d{2})CD_bilingual\.srt$`
	}
	if c.Transcript.AudioExt == "" {
		c.Transcript.AudioExt = ".ogg"
	}
	if c.Validation.MaxLineLength == 0 {
		c.Validation.MaxLineLength = 30
	}
	if c.FFmpeg.Binary == "" {
		c.FFmpeg.Binary = "ffmpeg"
	}
	if c.FFmpeg.SampleRate == 0 {
		c.FFmpeg.SampleRate = 44100
	}
	if c.FFmpeg.Channels == 0 {
		c.FFmpeg.Channels = 1
	}
	if c.FFmpeg.Codec == "" {
		c.FFmpeg.Codec = "libvorbis"
	}
	if c.Whisper.BinaryPath == "" {
		c.Whisper.BinaryPath = "whisper-cli"
	}
	if c.Whisper.ModelPath == "" {
		c.Whisper.ModelPath = "models/ggml-medium.bin"
	}
	if c.Whisper.Language == "" {
		c.Whisper.Language = "ja"
	}
	if c.Whisper.Threads == 0 {
		c.Whisper.Threads = 8
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}
}
