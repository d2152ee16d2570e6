package transcript

import (
	"errors"
	"testing"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/nguyentantai21042004/voice-dataset/internal/srt"
)

func TestFormatFilename(t *testing.T) {
	start := srt.NewTimestamp(0, 2, 3, 129)
	end := srt.NewTimestamp(1, 0, 4, 5)

	got := FormatFilename(3, 17, start, end, ".ogg")
	want := "[cd03-0017][02.03.12-60.04.00].ogg"
	if got != want {
		t.Errorf("FormatFilename() = %q, want %q", got, want)
	}
}

func TestParseFilenameRoundTrip(t *testing.T) {
	faker := gofakeit.New(7)

	for i := 0; i < 200; i++ {
		cd := faker.Number(1, 99)
		counter := faker.Number(0, 9999)
		start := srt.NewTimestamp(faker.Number(0, 2), faker.Number(0, 59), faker.Number(0, 59), faker.Number(0, 999))
		end := srt.NewTimestamp(faker.Number(0, 2), faker.Number(0, 59), faker.Number(0, 59), faker.Number(0, 999))

		name := FormatFilename(cd, counter, start, end, ".ogg")
		clip, err := ParseFilename(name)
		if err != nil {
			t.Fatalf("ParseFilename(%q) error = %v", name, err)
		}
		if clip.CD != cd || clip.Counter != counter || clip.Ext != ".ogg" {
			t.Fatalf("ParseFilename(%q) = %+v", name, clip)
		}
		if clip.Start.String() != start.Display() || clip.End.String() != end.Display() {
			t.Fatalf("ParseFilename(%q) times = %s-%s", name, clip.Start, clip.End)
		}
	}
}

func TestParseFilenameRejects(t *testing.T) {
	for _, name := range []string{
		"",
		"clip.ogg",
		"[cd1-0001][00.01.00-00.02.00].ogg",
		"[cd01-001][00.01.00-00.02.00].ogg",
		"[cd01-0001][00.01.00-00.02.00]",
		"[cd01-0001][0.01.00-00.02.00].ogg",
	} {
		if _, err := ParseFilename(name); !errors.Is(err, ErrBadFilename) {
			t.Errorf("ParseFilename(%q) error = %v, want ErrBadFilename", name, err)
		}
	}
}

func TestClipDuration(t *testing.T) {
	clip, err := ParseFilename("[cd01-0000][00.01.50-00.03.00].ogg")
	if err != nil {
		t.Fatal(err)
	}
	if d := clip.Duration(); d < 1.49 || d > 1.51 {
		t.Errorf("Duration() = %v, want 1.5", d)
	}
}
