package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"sort"
	"syscall"

	"github.com/nguyentantai21042004/voice-dataset/internal/config"
	"github.com/nguyentantai21042004/voice-dataset/internal/logger"
	"github.com/nguyentantai21042004/voice-dataset/pkg/executor"
)

const (
	exitOK    = 0
	exitFail  = 1
	exitUsage = 2
)

// errUsage marks bad flags or paths.
var errUsage = errors.New("usage error")

// app carries what every command needs.
type app struct {
	cfg    *config.Config
	log    logger.Logger
	exec   executor.Executor
	stdout io.Writer
	stderr io.Writer
}

type command struct {
	summary string
	run     func(ctx context.Context, a *app, args []string) (int, error)
}

var commands = map[string]command{
	"transcript": {"build the transcript CSV from bilingual subtitles", runTranscript},
	"overlaps":   {"report adjacent blocks whose time ranges overlap", runOverlaps},
	"duplicates": {"report blocks sharing the same text", runDuplicates},
	"indices":    {"check (and with -fix renumber) block indices", runIndices},
	"speakers":   {"report missing or unknown speaker labels", runSpeakers},
	"linelength": {"report primary lines longer than a limit", runLineLength},
	"split":      {"split trilingual subtitles into one file per language", runSplit},
	"slice":      {"cut voice clips out of the CD audio", runSlice},
	"divide":     {"move sliced clips into per-character folders", runDivide},
	"whisper":    {"transcribe CD audio with whisper into a transcript CSV", runWhisper},
	"script":     {"export the transcript as a DOCX reading script", runScript},
	"watch":      {"validate subtitles whenever they change", runWatch},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("dataset", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "config.yaml", "path to the YAML config file")
	fs.Usage = func() { usage(stderr, fs) }
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() == 0 {
		usage(stderr, fs)
		return exitUsage
	}

	name := fs.Arg(0)
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n\n", name)
		usage(stderr, fs)
		return exitUsage
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
		return exitUsage
	}

	log := logger.New(cfg.Logging.Level)
	defer logger.Sync(log)

	log.Debug(ctx, "System: %s/%s, CPU cores: %d, max concurrent: %d",
		runtime.GOOS, runtime.GOARCH, runtime.NumCPU(), cfg.Performance.MaxConcurrent)

	a := &app{
		cfg:    cfg,
		log:    log,
		exec:   executor.New(),
		stdout: stdout,
		stderr: stderr,
	}

	code, err := cmd.run(ctx, a, fs.Args()[1:])
	switch {
	case errors.Is(err, flag.ErrHelp):
		return exitOK
	case errors.Is(err, errUsage):
		fmt.Fprintf(stderr, "%s: %v\n", name, err)
		return exitUsage
	case errors.Is(err, context.Canceled):
		log.Info(ctx, "Interrupted")
		return exitFail
	case err != nil:
		log.Error(ctx, "%s: %v", name, err)
		return exitFail
	}
	return code
}

func usage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "Usage: dataset [-config path] <command> [flags] [paths...]")
	fmt.Fprintln(w, "\nCommands:")
	names := make([]string, 0, len(commands))
	for n := range commands {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintf(w, "  %-11s %s\n", n, commands[n].summary)
	}
	fmt.Fprintln(w, "\nGlobal flags:")
	fs.PrintDefaults()
}

// newFlagSet returns a subcommand flag set reporting to a's stderr.
func (a *app) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}

// parseFlags wraps flag errors so they map to the usage exit code.
func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	return nil
}
