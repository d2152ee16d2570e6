package validate

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nguyentantai21042004/voice-dataset/internal/speaker"
	"github.com/nguyentantai21042004/voice-dataset/internal/srt"
)

func TestCheckSpeakers(t *testing.T) {
	text := "1\n00:00:01,000 --> 00:00:02,000\nあ\n克托莉：啊\n\n" +
		"2\n00:00:02,000 --> 00:00:03,000\nい\n：咦\n\n" +
		"3\n00:00:03,000 --> 00:00:04,000\nう\n没有冒号\n\n" +
		"4\n00:00:04,000 --> 00:00:05,000\nえ\n路人：诶\n\n" +
		"5\n00:00:05,000 --> 00:00:06,000\nonly one line\n\n" +
		"6\n00:00:06,000 --> 00:00:07,000\nお\n路人: 哦\n"
	blocks, err := srt.Parse("", text, srt.Options{})
	if err != nil {
		t.Fatal(err)
	}

	issues := CheckSpeakers(blocks, speaker.CharacterMap{"克托莉": "Ctoria"})

	type brief struct {
		Kind IssueKind
		Line int
		Name string
	}
	var got []brief
	for _, is := range issues {
		got = append(got, brief{is.Kind, is.Line, is.Name})
	}
	want := []brief{
		{MissingMarker, 14, ""},
		{UnknownSpeaker, 19, "路人"},
		{UnknownSpeaker, 28, "路人"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("CheckSpeakers() mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{"路人"}, UniqueUnknown(issues)); diff != "" {
		t.Errorf("UniqueUnknown() (-want +got):\n%s", diff)
	}
}

func TestCheckLineLength(t *testing.T) {
	blocks := []srt.Block{
		block(1, 0, 1000, strings.Repeat("あ", 30), "x"),
		block(2, 1000, 2000, "  "+strings.Repeat("い", 31)+"  "),
		block(3, 2000, 3000, strings.Repeat("a", 31)),
	}
	blocks[1].TextLine = 7

	got := CheckLineLength("f.srt", blocks, 30)
	if len(got) != 2 {
		t.Fatalf("violations = %d, want 2", len(got))
	}
	if got[0].Index != "2" || got[0].Length != 31 || got[0].Line != 7 || got[0].File != "f.srt" {
		t.Errorf("first violation = %+v", got[0])
	}
	if got[0].Time != "00:00:01,000 --> 00:00:02,000" {
		t.Errorf("Time = %q", got[0].Time)
	}

	if n := len(CheckLineLength("f.srt", blocks, 0)); n != 2 {
		t.Errorf("default max: %d violations, want 2", n)
	}
}
