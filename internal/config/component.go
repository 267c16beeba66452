package config

import (
	"fmt"
	"strconv"
	"strings"
)

// componentFlag is a pflag.Value for one date/time component. A leading
// sign makes the value a relative shift; a bare number or a leading "="
// sets the component outright. The last occurrence wins.
type componentFlag struct {
	abs **int
	rel *int
	raw string
}

func newComponentFlag(abs **int, rel *int) *componentFlag {
	return &componentFlag{abs: abs, rel: rel}
}

func (c *componentFlag) String() string { return c.raw }
func (*componentFlag) Type() string     { return "[+-=]N" }

func (c *componentFlag) Set(val string) error {
	n, relative, err := ParseComponent(val)
	if err != nil {
		return err
	}
	c.raw = val
	if relative {
		*c.rel = n
		*c.abs = nil
		return nil
	}
	*c.abs = &n
	*c.rel = 0
	return nil
}

// ParseComponent reads "+N", "-N", "=N" or "N". N must fit in a signed
// 16-bit integer.
func ParseComponent(val string) (n int, relative bool, err error) {
	digits := val
	switch {
	case strings.HasPrefix(val, "+"), strings.HasPrefix(val, "-"):
		relative = true
		digits = val[1:]
	case strings.HasPrefix(val, "="):
		digits = val[1:]
		val = digits
	}
	if digits == "" || strings.TrimLeft(digits, "0123456789") != "" {
		return 0, false, fmt.Errorf("%q is not of the form +N, -N, =N or N", val)
	}

	parsed, err := strconv.ParseInt(val, 10, 16)
	if err != nil {
		return 0, false, fmt.Errorf("%q is out of range", val)
	}
	return int(parsed), relative, nil
}
