package presentation

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"touchmax/internal/domain"
	apperrors "touchmax/internal/errors"
	"touchmax/internal/event"
)

func TestPrinterRendersTree(t *testing.T) {
	var buf bytes.Buffer
	printer := Printer{Writer: &buf}

	before := time.Date(2021, 6, 30, 18, 45, 10, 0, time.Local)
	after := before.AddDate(0, 0, 1)
	sub := filepath.Join("root", "album")

	printer.Emit(event.Event{Type: event.DirEntered, Path: "root", Level: 0, IsDir: true})
	printer.Emit(event.Event{Type: event.DirEntered, Path: sub, Level: 1, IsDir: true})
	printer.Emit(event.Event{Type: event.EntryVisited, Path: filepath.Join(sub, "b.jpg")})
	printer.Emit(event.Event{Type: event.FieldChanged, Path: filepath.Join(sub, "b.jpg"), Field: domain.Modified, Before: before, After: after})

	want := JoinLines([]string{
		"",
		"/root/",
		"",
		"\t/album/",
		"b.jpg",
		"\tM: 2021-06-30 18:45:10\t2021-07-01 18:45:10",
		"",
	})
	if buf.String() != want {
		t.Fatalf("unexpected output:\n%q\nwant:\n%q", buf.String(), want)
	}
}

func TestPrinterDryRunMarker(t *testing.T) {
	var buf bytes.Buffer
	printer := Printer{Writer: &buf}

	at := time.Date(2008, 1, 1, 0, 0, 0, 0, time.Local)
	printer.Emit(event.Event{Type: event.FieldChanged, Field: domain.Creation, Before: at, After: at, DryRun: true})

	if !strings.HasSuffix(strings.TrimSpace(buf.String()), "(dry run)") {
		t.Fatalf("expected dry run marker, got %q", buf.String())
	}
	if !strings.HasPrefix(buf.String(), "\tC: ") {
		t.Fatalf("expected creation letter, got %q", buf.String())
	}
}

func TestPrinterQuietKeepsProblems(t *testing.T) {
	var buf bytes.Buffer
	printer := Printer{Writer: &buf, Quiet: true}

	target := time.Date(2024, 3, 1, 10, 0, 0, 0, time.Local)
	printer.Emit(event.Event{Type: event.DirEntered, Path: "root"})
	printer.Emit(event.Event{Type: event.EntryVisited, Path: "notes.txt"})
	printer.Emit(event.Event{Type: event.FieldChanged, Path: "notes.txt", Field: domain.Modified})
	printer.Emit(event.Event{
		Type:   event.FieldFailed,
		Path:   "notes.txt",
		Field:  domain.Creation,
		Target: target,
		Error:  apperrors.Wrap(apperrors.WriteFailure, "set creation", "notes.txt", errors.ErrUnsupported),
	})

	output := buf.String()
	if strings.Contains(output, "root") || strings.Contains(output, "M:") {
		t.Fatalf("quiet output should drop progress, got %q", output)
	}
	if !strings.Contains(output, "Unable to set Creation-Time of notes.txt to 2024-03-01 10:00:00.") {
		t.Fatalf("expected failure line, got %q", output)
	}
	if !strings.Contains(output, "Unable to set timestamp: notes.txt") {
		t.Fatalf("expected user message, got %q", output)
	}
}

func TestPrinterSkippedAndMissing(t *testing.T) {
	var buf bytes.Buffer
	printer := Printer{Writer: &buf}

	printer.Emit(event.Event{Type: event.DirNotFound, Path: "nowhere"})
	printer.Emit(event.Event{
		Type:  event.FieldSkipped,
		Path:  "a.jpg",
		Field: domain.Modified,
		Error: apperrors.Wrap(apperrors.InvalidDate, "resolve modified", "a.jpg", errors.New("day 30 is not valid for 2022-02-01")),
	})

	output := buf.String()
	for _, want := range []string{
		"The directory nowhere does not exist.",
		"Skipped Modified-Time of a.jpg.",
		"Invalid date: day 30 is not valid for 2022-02-01",
	} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected %q in %q", want, output)
		}
	}
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	Printer{Writer: &buf}.PrintSummary(domain.Summary{
		Directories: 3,
		MissingDirs: 1,
		Files:       4,
		Folders:     1,
		Changed:     8,
		Skipped:     1,
		Failed:      1,
	})

	output := buf.String()
	for _, want := range []string{
		"Visited 4 files and 1 folders in 3 directories.",
		"Changed 8 timestamps; 1 skipped, 1 failed.",
		"1 directories were not found.",
	} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected %q in %q", want, output)
		}
	}

	buf.Reset()
	Printer{Writer: &buf}.PrintSummary(domain.Summary{Changed: 2, DryRun: true})
	if !strings.Contains(buf.String(), "Would change 2 timestamps") {
		t.Fatalf("expected dry run summary, got %q", buf.String())
	}
}

func TestPrintSettingsOnlyWhenVerbose(t *testing.T) {
	year := 2008
	traversal := domain.TraversalSpec{RootPath: "photos", Pattern: "*.jpg", SetFiles: true, Recurse: true}
	adjust := domain.AdjustmentSpec{Base: domain.UseNow, Absolute: domain.Absolute{Year: &year}, Relative: domain.Relative{Days: -1}}

	var buf bytes.Buffer
	Printer{Writer: &buf}.PrintSettings(traversal, adjust)
	if buf.Len() != 0 {
		t.Fatalf("expected no output without verbose, got %q", buf.String())
	}

	Printer{Writer: &buf, Verbose: true}.PrintSettings(traversal, adjust)
	output := buf.String()
	for _, want := range []string{"Recurse? YES", "Set folders? NO", "Base: now", "\tyear = 2008", "\tmonth = -", "\tdays = -1", "Pattern: *.jpg"} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected %q in %q", want, output)
		}
	}
}
