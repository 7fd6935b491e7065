package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Loader reads Options from a TOML file and the environment.
type Loader struct {
	path      string
	readFile  func(string) ([]byte, error)
	lookupEnv func(string) (string, bool)
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLookupEnv replaces os.LookupEnv as the source of overrides.
func WithLookupEnv(fn func(string) (string, bool)) LoaderOption {
	return func(l *Loader) {
		if fn != nil {
			l.lookupEnv = fn
		}
	}
}

// WithReadFile replaces os.ReadFile.
func WithReadFile(fn func(string) ([]byte, error)) LoaderOption {
	return func(l *Loader) {
		if fn != nil {
			l.readFile = fn
		}
	}
}

// NewLoader creates a loader for path. An empty path skips the file.
func NewLoader(path string, opts ...LoaderOption) *Loader {
	l := &Loader{
		path:      path,
		readFile:  os.ReadFile,
		lookupEnv: os.LookupEnv,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Path returns the file the loader reads.
func (l *Loader) Path() string { return l.path }

// Load reads the file, applies environment overrides and validates the
// result. A file that does not exist yields the defaults.
func (l *Loader) Load() (Options, error) {
	opts := Default()

	if l.path != "" {
		data, err := l.readFile(l.path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Options{}, fmt.Errorf("reading config file %s: %w", l.path, err)
		default:
			if err := decode(l.path, data, &opts); err != nil {
				return Options{}, err
			}
		}
	}

	if err := applyEnv(&opts, l.lookupEnv); err != nil {
		return Options{}, err
	}
	if err := opts.Validate(); err != nil {
		return Options{}, fmt.Errorf("config %s: %w", l.source(), err)
	}
	return opts, nil
}

func (l *Loader) source() string {
	if l.path == "" {
		return "<defaults>"
	}
	return l.path
}

// Load is shorthand for NewLoader(path).Load().
func Load(path string) (Options, error) {
	return NewLoader(path).Load()
}

// Parse decodes TOML from r over the defaults and validates it. The
// environment is not consulted.
func Parse(r io.Reader) (Options, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Options{}, fmt.Errorf("reading config: %w", err)
	}
	opts := Default()
	if err := decode("<reader>", data, &opts); err != nil {
		return Options{}, err
	}
	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

func decode(source string, data []byte, opts *Options) error {
	d := toml.NewDecoder(bytes.NewReader(data))
	d.DisallowUnknownFields()
	err := d.Decode(opts)
	if err == nil {
		return nil
	}

	pe := &ParseError{Path: source, Err: err}
	var derr *toml.DecodeError
	var serr *toml.StrictMissingError
	switch {
	case errors.As(err, &derr):
		pe.Line, pe.Column = derr.Position()
	case errors.As(err, &serr) && len(serr.Errors) > 0:
		pe.Line, pe.Column = serr.Errors[0].Position()
	}
	return pe
}

// Encode writes opts as TOML.
func Encode(w io.Writer, opts Options) error {
	enc := toml.NewEncoder(w)
	enc.SetIndentTables(true)
	return enc.Encode(opts)
}
