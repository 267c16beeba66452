package config

import (
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"touchmax/internal/domain"
)

// parse runs the flag set against args with env as the whole environment.
// XDG_CONFIG_HOME points at an empty temp dir unless env sets it.
func parse(t *testing.T, env map[string]string, args ...string) (Config, error) {
	t.Helper()
	if env == nil {
		env = map[string]string{}
	}
	if _, ok := env["XDG_CONFIG_HOME"]; !ok {
		env["XDG_CONFIG_HOME"] = t.TempDir()
	}
	fs := pflag.NewFlagSet("touchmax", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	flags := Bind(fs)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return flags.Resolve(fs, fs.Args(), func(key string) string { return env[key] })
}

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "touchmax", "config.toml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestParseRelativeShift(t *testing.T) {
	cfg, err := parse(t, nil, "-rfw", "-D+1", "photos/*.jpg")
	require.NoError(t, err)

	assert.True(t, cfg.Recurse)
	assert.True(t, cfg.SetFiles)
	assert.True(t, cfg.SetModified)
	assert.False(t, cfg.SetFolders)
	assert.False(t, cfg.SetCreation)
	assert.Equal(t, 1, cfg.Relative.Days)
	assert.True(t, cfg.Absolute.Empty())
	assert.Equal(t, "photos", cfg.RootPath)
	assert.Equal(t, "*.jpg", cfg.Pattern)
	assert.Equal(t, domain.UseEntryOwnValue, cfg.Base)
}

func TestParseAbsoluteForms(t *testing.T) {
	cfg, err := parse(t, nil, "-d", "-c", "-Y2008", "-M=3", "--day", "=15", "-h", "14", "--minute=5", "*")
	require.NoError(t, err)

	require.NotNil(t, cfg.Absolute.Year)
	require.NotNil(t, cfg.Absolute.Month)
	require.NotNil(t, cfg.Absolute.Day)
	require.NotNil(t, cfg.Absolute.Hour)
	require.NotNil(t, cfg.Absolute.Minute)
	assert.Equal(t, 2008, *cfg.Absolute.Year)
	assert.Equal(t, 3, *cfg.Absolute.Month)
	assert.Equal(t, 15, *cfg.Absolute.Day)
	assert.Equal(t, 14, *cfg.Absolute.Hour)
	assert.Equal(t, 5, *cfg.Absolute.Minute)
	assert.Equal(t, domain.Relative{}, cfg.Relative)
	assert.Equal(t, ".", cfg.RootPath)
}

func TestParseNegativeShiftAsSeparateArgument(t *testing.T) {
	cfg, err := parse(t, nil, "-f", "-w", "-M", "-2", "-m", "-30", "*.txt")
	require.NoError(t, err)
	assert.Equal(t, -2, cfg.Relative.Months)
	assert.Equal(t, -30, cfg.Relative.Minutes)
}

func TestParseLastComponentWins(t *testing.T) {
	cfg, err := parse(t, nil, "-fw", "-Y+1", "-Y2010", "*")
	require.NoError(t, err)
	require.NotNil(t, cfg.Absolute.Year)
	assert.Equal(t, 2010, *cfg.Absolute.Year)
	assert.Zero(t, cfg.Relative.Years)

	cfg, err = parse(t, nil, "-fw", "-Y2010", "-Y-1", "*")
	require.NoError(t, err)
	assert.Nil(t, cfg.Absolute.Year)
	assert.Equal(t, -1, cfg.Relative.Years)
}

func TestParseRejectsMalformedComponents(t *testing.T) {
	for _, arg := range []string{"-Yabc", "-Y+-1", "-Y+40000", "-D=", "-M1.5"} {
		t.Run(arg, func(t *testing.T) {
			_, err := parse(t, nil, "-fw", arg, "*")
			assert.Error(t, err)
		})
	}
}

func TestParseValidation(t *testing.T) {
	cases := map[string][]string{
		"no entry kind":        {"-w", "*"},
		"no field":             {"-f", "*"},
		"two base policies":    {"-fw", "--usenow", "--usemodified", "*"},
		"missing pattern":      {"-fw"},
		"two patterns":         {"-fw", "*.jpg", "*.png"},
		"verbose and quiet":    {"-fw", "-v", "-q", "*"},
		"unknown flag":         {"-fw", "--bogus", "*"},
		"explicit config gone": {"-fw", "--config", "/nonexistent/touchmax.toml", "*"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := parse(t, nil, args...)
			assert.Error(t, err)
		})
	}
}

func TestParseRejectsSeparatorInPattern(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("backslash is a path separator on windows")
	}
	_, err := parse(t, nil, "-fw", `a\b`)
	assert.Error(t, err)
}

func TestParseBasePolicies(t *testing.T) {
	cases := map[string]domain.BasePolicy{
		"--usenow":      domain.UseNow,
		"--usecreation": domain.UseCreationTime,
		"--usemodified": domain.UseModifiedTime,
		"--usecapture":  domain.UseCaptureTime,
	}
	for flag, want := range cases {
		cfg, err := parse(t, nil, "-fw", flag, "*")
		require.NoError(t, err, flag)
		assert.Equal(t, want, cfg.Base, flag)
	}
}

func TestConfigFileDefaults(t *testing.T) {
	xdg := t.TempDir()
	writeConfig(t, xdg, `
[defaults]
recurse = true
set_files = true
set_modified = true
ignore_case = true
`)

	cfg, err := parse(t, map[string]string{"XDG_CONFIG_HOME": xdg}, "-D+1", "*.JPG")
	require.NoError(t, err)
	assert.True(t, cfg.Recurse)
	assert.True(t, cfg.SetFiles)
	assert.True(t, cfg.SetModified)
	assert.True(t, cfg.IgnoreCase)

	cfg, err = parse(t, map[string]string{"XDG_CONFIG_HOME": xdg}, "--recurse=false", "*")
	require.NoError(t, err)
	assert.False(t, cfg.Recurse, "flags beat the config file")
}

func TestConfigFileFromEnvAndFlag(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "[defaults]\nset_folders = true\nset_creation = true\n")

	cfg, err := parse(t, map[string]string{"TOUCHMAX_CONFIG": path}, "*")
	require.NoError(t, err)
	assert.True(t, cfg.SetFolders)
	assert.True(t, cfg.SetCreation)
	assert.Equal(t, path, cfg.ConfigPath)

	cfg, err = parse(t, nil, "--config", path, "*")
	require.NoError(t, err)
	assert.True(t, cfg.SetFolders)
}

func TestConfigFileInvalid(t *testing.T) {
	xdg := t.TempDir()
	writeConfig(t, xdg, "[defaults\nrecurse = ")

	_, err := parse(t, map[string]string{"XDG_CONFIG_HOME": xdg}, "-fw", "*")
	assert.Error(t, err)
}

func TestVerbosePrecedence(t *testing.T) {
	xdg := t.TempDir()
	writeConfig(t, xdg, "[defaults]\nverbose = false\n")

	cfg, err := parse(t, map[string]string{"XDG_CONFIG_HOME": xdg, "TOUCHMAX_VERBOSE": "yes"}, "-fw", "*")
	require.NoError(t, err)
	assert.True(t, cfg.Verbose, "env beats the config file")

	cfg, err = parse(t, map[string]string{"XDG_CONFIG_HOME": xdg, "TOUCHMAX_VERBOSE": "0"}, "-fw", "-v", "*")
	require.NoError(t, err)
	assert.True(t, cfg.Verbose, "flag beats env")
}

func TestSpecsFromConfig(t *testing.T) {
	cfg, err := parse(t, nil, "-rdc", "-n", "--ignore-case", "--usenow", "-h", "+3", "album/*")
	require.NoError(t, err)

	now := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	adjust := cfg.Adjustment(now)
	assert.Equal(t, domain.UseNow, adjust.Base)
	assert.Equal(t, now, adjust.Now)
	assert.Equal(t, 3, adjust.Relative.Hours)

	traversal := cfg.Traversal()
	assert.Equal(t, domain.TraversalSpec{
		RootPath:    "album",
		Pattern:     "*",
		SetFolders:  true,
		Recurse:     true,
		SetCreation: true,
		IgnoreCase:  true,
		DryRun:      true,
	}, traversal)
}

func TestParseComponent(t *testing.T) {
	cases := []struct {
		in       string
		n        int
		relative bool
	}{
		{"5", 5, false},
		{"=5", 5, false},
		{"+5", 5, true},
		{"-5", -5, true},
		{"+0", 0, true},
		{"32767", 32767, false},
		{"-32768", -32768, true},
	}
	for _, tc := range cases {
		n, relative, err := ParseComponent(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.n, n, tc.in)
		assert.Equal(t, tc.relative, relative, tc.in)
	}

	for _, bad := range []string{"", "+", "=", "32768", "x1", "1x", "+ 1"} {
		_, _, err := ParseComponent(bad)
		assert.Error(t, err, bad)
	}
}

func TestSplitPattern(t *testing.T) {
	cases := []struct{ in, dir, pattern string }{
		{"*.jpg", ".", "*.jpg"},
		{filepath.Join("photos", "*.jpg"), "photos", "*.jpg"},
		{filepath.Join("a", "b", "c?.txt"), filepath.Join("a", "b"), "c?.txt"},
		{"photos" + string(filepath.Separator), "photos", ""},
	}
	for _, tc := range cases {
		dir, pattern := SplitPattern(tc.in)
		assert.Equal(t, tc.dir, dir, tc.in)
		assert.Equal(t, tc.pattern, pattern, tc.in)
	}
}
