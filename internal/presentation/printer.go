package presentation

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"touchmax/internal/domain"
	apperrors "touchmax/internal/errors"
	"touchmax/internal/event"
)

const timeLayout = "2006-01-02 15:04:05"

// Printer writes progress as an indented tree: a header per directory,
// then each entry name followed by one line per changed field.
type Printer struct {
	Writer  io.Writer
	Verbose bool
	// Quiet drops progress lines; problems and the summary still print.
	Quiet bool
}

func (p Printer) Emit(ev event.Event) {
	switch ev.Type {
	case event.DirEntered:
		if p.Quiet {
			return
		}
		fmt.Fprintln(p.Writer)
		fmt.Fprintf(p.Writer, "%s/%s/\n", strings.Repeat("\t", ev.Level), filepath.Base(ev.Path))
	case event.DirNotFound:
		fmt.Fprintf(p.Writer, "The directory %s does not exist.\n", ev.Path)
	case event.ListFailed:
		fmt.Fprintf(p.Writer, "Unable to list %s.\n", ev.Path)
		p.printError(ev.Error)
	case event.EntryVisited:
		if !p.Quiet {
			fmt.Fprintln(p.Writer, filepath.Base(ev.Path))
		}
	case event.FieldChanged:
		if p.Quiet {
			return
		}
		line := fmt.Sprintf("\t%s: %s\t%s", ev.Field.Letter(), formatTime(ev.Before), formatTime(ev.After))
		if ev.DryRun {
			line += "\t(dry run)"
		}
		fmt.Fprintln(p.Writer, line)
	case event.FieldSkipped:
		fmt.Fprintf(p.Writer, "Skipped %s of %s.\n", fieldLabel(ev.Field), filepath.Base(ev.Path))
		p.printError(ev.Error)
	case event.FieldFailed:
		if ev.Target.IsZero() {
			fmt.Fprintf(p.Writer, "Unable to set %s of %s.\n", fieldLabel(ev.Field), filepath.Base(ev.Path))
		} else {
			fmt.Fprintf(p.Writer, "Unable to set %s of %s to %s.\n", fieldLabel(ev.Field), filepath.Base(ev.Path), formatTime(ev.Target))
		}
		p.printError(ev.Error)
	}
}

func (p Printer) printError(err error) {
	if err != nil {
		fmt.Fprintln(p.Writer, apperrors.UserMessage(err))
	}
}

// PrintSettings shows the resolved options before a verbose run.
func (p Printer) PrintSettings(traversal domain.TraversalSpec, adjust domain.AdjustmentSpec) {
	if !p.Verbose {
		return
	}
	fmt.Fprintln(p.Writer, JoinLines(formatSettings(traversal, adjust)))
}

func (p Printer) PrintSummary(s domain.Summary) {
	fmt.Fprintln(p.Writer)
	fmt.Fprintf(p.Writer, "Visited %d files and %d folders in %d directories.\n", s.Files, s.Folders, s.Directories)
	if s.DryRun {
		fmt.Fprintf(p.Writer, "Would change %d timestamps; %d skipped. Nothing was written.\n", s.Changed, s.Skipped)
	} else {
		fmt.Fprintf(p.Writer, "Changed %d timestamps; %d skipped, %d failed.\n", s.Changed, s.Skipped, s.Failed)
	}
	if s.MissingDirs > 0 {
		fmt.Fprintf(p.Writer, "%d directories were not found.\n", s.MissingDirs)
	}
	if s.ListFailed > 0 {
		fmt.Fprintf(p.Writer, "%d directories could not be read.\n", s.ListFailed)
	}
}

func formatSettings(traversal domain.TraversalSpec, adjust domain.AdjustmentSpec) []string {
	abs := adjust.Absolute
	rel := adjust.Relative
	return []string{
		"Recurse? " + yesNo(traversal.Recurse),
		"Set files? " + yesNo(traversal.SetFiles),
		"Set folders? " + yesNo(traversal.SetFolders),
		"Set creation? " + yesNo(traversal.SetCreation),
		"Set modified? " + yesNo(traversal.SetModified),
		"Now: " + formatTime(adjust.Now),
		"Base: " + adjust.Base.String(),
		"Absolute:",
		"\tyear = " + optional(abs.Year),
		"\tmonth = " + optional(abs.Month),
		"\tday = " + optional(abs.Day),
		"\thour = " + optional(abs.Hour),
		"\tminute = " + optional(abs.Minute),
		"Relative:",
		"\tyears = " + strconv.Itoa(rel.Years),
		"\tmonths = " + strconv.Itoa(rel.Months),
		"\tdays = " + strconv.Itoa(rel.Days),
		"\thours = " + strconv.Itoa(rel.Hours),
		"\tminutes = " + strconv.Itoa(rel.Minutes),
		"Directory: " + traversal.RootPath,
		"Pattern: " + traversal.Pattern,
	}
}

func fieldLabel(field domain.Field) string {
	switch field {
	case domain.Creation:
		return "Creation-Time"
	case domain.Modified:
		return "Modified-Time"
	default:
		return field.String()
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(timeLayout)
}

func optional(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

func yesNo(v bool) string {
	if v {
		return "YES"
	}
	return "NO"
}

func JoinLines(lines []string) string {
	return strings.Join(lines, "\n")
}
