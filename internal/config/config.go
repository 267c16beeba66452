package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"touchmax/internal/domain"
	"touchmax/internal/walker"
)

type Config struct {
	RootPath string
	Pattern  string

	Recurse     bool
	SetFiles    bool
	SetFolders  bool
	SetCreation bool
	SetModified bool
	IgnoreCase  bool

	Base     domain.BasePolicy
	Absolute domain.Absolute
	Relative domain.Relative

	DryRun     bool
	Verbose    bool
	Quiet      bool
	TUI        bool
	LogFile    string
	ConfigPath string
}

// Traversal returns the entry selection part of the configuration.
func (c Config) Traversal() domain.TraversalSpec {
	return domain.TraversalSpec{
		RootPath:    c.RootPath,
		Pattern:     c.Pattern,
		SetFiles:    c.SetFiles,
		SetFolders:  c.SetFolders,
		Recurse:     c.Recurse,
		SetCreation: c.SetCreation,
		SetModified: c.SetModified,
		IgnoreCase:  c.IgnoreCase,
		DryRun:      c.DryRun,
	}
}

// Adjustment returns the timestamp rules, with now fixed for the whole run.
func (c Config) Adjustment(now time.Time) domain.AdjustmentSpec {
	return domain.AdjustmentSpec{
		Base:     c.Base,
		Absolute: c.Absolute,
		Relative: c.Relative,
		Now:      now,
	}
}

// Flags binds a Config to a flag set. Call Resolve after parsing.
type Flags struct {
	cfg         Config
	useNow      bool
	useCreation bool
	useModified bool
	useCapture  bool
}

func Bind(fs *pflag.FlagSet) *Flags {
	f := &Flags{}
	c := &f.cfg

	fs.BoolVarP(&c.Recurse, "recurse", "r", false, "process subdirectories recursively")
	fs.BoolVarP(&c.SetFiles, "setfiles", "f", false, "change matching files")
	fs.BoolVarP(&c.SetFolders, "setfolders", "d", false, "change matching folders")
	fs.BoolVarP(&c.SetCreation, "setcreation", "c", false, "change the creation time")
	fs.BoolVarP(&c.SetModified, "setmodified", "w", false, "change the last modified time")

	fs.BoolVar(&f.useNow, "usenow", false, "start from the current time")
	fs.BoolVar(&f.useCreation, "usecreation", false, "start from the entry's creation time")
	fs.BoolVar(&f.useModified, "usemodified", false, "start from the entry's last modified time")
	fs.BoolVar(&f.useCapture, "usecapture", false, "start from the EXIF capture time of images")

	fs.VarP(newComponentFlag(&c.Absolute.Year, &c.Relative.Years), "year", "Y", "set (N, =N) or shift (+N, -N) the year")
	fs.VarP(newComponentFlag(&c.Absolute.Month, &c.Relative.Months), "month", "M", "set (N, =N) or shift (+N, -N) the month")
	fs.VarP(newComponentFlag(&c.Absolute.Day, &c.Relative.Days), "day", "D", "set (N, =N) or shift (+N, -N) the day")
	fs.VarP(newComponentFlag(&c.Absolute.Hour, &c.Relative.Hours), "hour", "h", "set (N, =N) or shift (+N, -N) the hour")
	fs.VarP(newComponentFlag(&c.Absolute.Minute, &c.Relative.Minutes), "minute", "m", "set (N, =N) or shift (+N, -N) the minute")

	fs.BoolVarP(&c.DryRun, "dry-run", "n", false, "show the new timestamps without writing them")
	fs.BoolVar(&c.IgnoreCase, "ignore-case", false, "match the pattern case-insensitively")
	fs.BoolVarP(&c.Verbose, "verbose", "v", false, "verbose output")
	fs.BoolVarP(&c.Quiet, "quiet", "q", false, "only print errors and the summary")
	fs.BoolVar(&c.TUI, "tui", false, "show a live terminal view")
	fs.StringVar(&c.LogFile, "log-file", "", "also write a JSON log to FILE")
	fs.StringVar(&c.ConfigPath, "config", "", "read defaults from FILE instead of the standard location")

	return f
}

// Resolve completes the parsed flags with environment and config file
// defaults, then validates the result. Precedence is flag, environment,
// config file, built-in default.
func (f *Flags) Resolve(fs *pflag.FlagSet, args []string, getenv func(string) string) (Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	cfg := f.cfg

	if !fs.Changed("config") {
		cfg.ConfigPath = envOrEmpty(getenv, "TOUCHMAX_CONFIG")
	}
	file, err := loadFile(cfg.ConfigPath, getenv)
	if err != nil {
		return Config{}, err
	}
	applyDefaults(fs, file.Defaults, &cfg)

	if !fs.Changed("verbose") && envOrEmpty(getenv, "TOUCHMAX_VERBOSE") != "" {
		cfg.Verbose = envTruthy(getenv, "TOUCHMAX_VERBOSE")
	}

	cfg.Base, err = f.basePolicy()
	if err != nil {
		return Config{}, err
	}

	if len(args) != 1 {
		return Config{}, fmt.Errorf("expected exactly one [dir/]pattern argument, got %d", len(args))
	}
	cfg.RootPath, cfg.Pattern = SplitPattern(args[0])
	if _, err := walker.CompilePattern(cfg.Pattern, cfg.IgnoreCase); err != nil {
		return Config{}, err
	}

	if !cfg.SetFiles && !cfg.SetFolders {
		return Config{}, errors.New("nothing to change: give --setfiles and/or --setfolders")
	}
	if !cfg.SetCreation && !cfg.SetModified {
		return Config{}, errors.New("nothing to change: give --setcreation and/or --setmodified")
	}
	if cfg.Verbose && cfg.Quiet {
		return Config{}, errors.New("--verbose and --quiet cannot be combined")
	}

	return cfg, nil
}

func (f *Flags) basePolicy() (domain.BasePolicy, error) {
	base := domain.UseEntryOwnValue
	count := 0
	for _, opt := range []struct {
		set    bool
		policy domain.BasePolicy
	}{
		{f.useNow, domain.UseNow},
		{f.useCreation, domain.UseCreationTime},
		{f.useModified, domain.UseModifiedTime},
		{f.useCapture, domain.UseCaptureTime},
	} {
		if opt.set {
			base = opt.policy
			count++
		}
	}
	if count > 1 {
		return base, errors.New("only one of --usenow, --usecreation, --usemodified and --usecapture may be given")
	}
	return base, nil
}

// SplitPattern separates "[dir/]pattern" into the directory to start in
// and the glob for entry names. The directory defaults to ".".
func SplitPattern(arg string) (dir, pattern string) {
	dir, pattern = filepath.Split(arg)
	if dir == "" {
		return ".", pattern
	}
	return filepath.Clean(dir), pattern
}

// Parse builds a Config from command-line arguments alone, reading the
// environment through os.Getenv.
func Parse(args []string) (Config, error) {
	fs := pflag.NewFlagSet("touchmax", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	flags := Bind(fs)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return flags.Resolve(fs, fs.Args(), os.Getenv)
}

func envOrEmpty(getenv func(string) string, key string) string {
	return strings.TrimSpace(getenv(key))
}

func envTruthy(getenv func(string) string, key string) bool {
	val := strings.ToLower(envOrEmpty(getenv, key))
	return val == "1" || val == "true" || val == "yes" || val == "y"
}
