// Package options decodes the per-method option strings ("-c 1.0 -e 0.1")
// into typed structs. Each method declares a struct whose go-arg tags name
// the flags and carry the defaults:
//
//	type svrOptions struct {
//		C float64 `arg:"-c,--c" default:"1.0"`
//	}
package options

import (
	"strings"

	"github.com/alexflint/go-arg"
	"github.com/google/shlex"

	"github.com/YuminosukeSato/scibench/pkg/errors"
)

// Mode selects what happens when an option string cannot be decoded.
type Mode int

const (
	// Strict returns a ValidationError.
	Strict Mode = iota
	// Lenient raises an OptionFallbackWarning and uses the defaults.
	Lenient
)

// ModeFor maps the LenientOptions setting to a Mode.
func ModeFor(lenient bool) Mode {
	if lenient {
		return Lenient
	}
	return Strict
}

// Split tokenizes raw with POSIX shell quoting rules. No shell is involved.
func Split(raw string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	args, err := shlex.Split(raw)
	if err != nil {
		return nil, errors.NewValidationError("options", err.Error(), raw)
	}
	return args, nil
}

// Parse decodes raw into a new T for the named method.
func Parse[T any](method, raw string, mode Mode) (T, error) {
	var dest T
	err := decode(method, raw, &dest)
	if err == nil {
		return dest, nil
	}
	if mode == Strict {
		return dest, err
	}

	errors.Warn(errors.NewOptionFallbackWarning(method, raw, err))
	return Defaults[T](method)
}

// Defaults returns T with only its default tags applied.
func Defaults[T any](method string) (T, error) {
	var dest T
	err := decode(method, "", &dest)
	return dest, err
}

func decode(method, raw string, dest any) error {
	args, err := Split(raw)
	if err != nil {
		return err
	}
	p, err := arg.NewParser(arg.Config{Program: method, IgnoreEnv: true}, dest)
	if err != nil {
		return errors.Wrapf(err, "%s: bad option declaration", method)
	}
	if err := p.Parse(args); err != nil {
		if errors.Is(err, arg.ErrHelp) || errors.Is(err, arg.ErrVersion) {
			return errors.NewValidationError("options", "help and version flags are not supported", raw)
		}
		return errors.NewValidationError("options", err.Error(), raw)
	}
	return nil
}
