package datasource

import (
	"bytes"
	"context"
	"encoding/json"
	"os/exec"
	"regexp"
	"runtime"
	"strings"
	"time"

	"github.com/arthur-debert/barkeep/pkg/errors"
	"github.com/arthur-debert/barkeep/pkg/format"
	"github.com/arthur-debert/barkeep/pkg/logging"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// Output formats of a Command
const (
	FormatJSON   = "json"
	FormatString = "string"
)

// DataKey is the context key command output is stored under
const DataKey = "data"

// CommandOptions control how a Command runs.
type CommandOptions struct {
	// UseShell runs the command line through the platform shell
	UseShell bool

	// Format is FormatJSON or FormatString
	Format string

	// Encoding names the output charset, empty for UTF-8
	Encoding string

	Timeout time.Duration
	Dir     string
}

// Command runs a command line and exposes its output as {data}. JSON output
// that fails to parse yields a nil value rather than an error.
type Command struct {
	line    string
	argv    []string
	opts    CommandOptions
	decoder *encoding.Decoder
}

// NewCommand prepares a command line. Without UseShell the line is split on
// spaces, double quotes group words.
func NewCommand(line string, opts CommandOptions) (*Command, error) {
	if strings.TrimSpace(line) == "" {
		return nil, errors.New(errors.ErrInvalidInput, "command line is empty")
	}
	if opts.Format == "" {
		opts.Format = FormatJSON
	}
	if opts.Format != FormatJSON && opts.Format != FormatString {
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown command output format %q", opts.Format)
	}

	c := &Command{line: line, opts: opts}
	if opts.UseShell {
		c.argv = shellArgv(line)
	} else {
		c.argv = SplitArgs(line)
	}

	if opts.Encoding != "" {
		enc, err := htmlindex.Get(opts.Encoding)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidInput, "unknown encoding %q", opts.Encoding)
		}
		c.decoder = enc.NewDecoder()
	}
	return c, nil
}

func shellArgv(line string) []string {
	if runtime.GOOS == "windows" {
		return []string{"cmd", "/C", line}
	}
	return []string{"sh", "-c", line}
}

// Line returns the command line as configured.
func (c *Command) Line() string {
	return c.line
}

func (c *Command) Fetch(ctx context.Context) (format.Context, error) {
	if c.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.opts.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, c.argv[0], c.argv[1:]...)
	cmd.Dir = c.opts.Dir
	// Shell children may keep stdout open after the shell is killed.
	cmd.WaitDelay = time.Second
	out, err := cmd.Output()
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrSourceFetch, "command %q failed", c.line).
			WithDetail("command", c.line)
	}

	if c.decoder != nil {
		if out, err = c.decoder.Bytes(out); err != nil {
			return nil, errors.Wrapf(err, errors.ErrSourceDecode, "cannot decode output of %q", c.line).
				WithDetail("encoding", c.opts.Encoding)
		}
	}

	if c.opts.Format == FormatString {
		return format.Context{DataKey: strings.TrimSpace(string(out))}, nil
	}

	var data any
	if err := json.Unmarshal(bytes.TrimSpace(out), &data); err != nil {
		logger := logging.GetLogger("datasource")
		logger.Debug().
			Err(err).
			Str("command", c.line).
			Msg("Command output is not JSON")
		data = nil
	}
	return format.Context{DataKey: data}, nil
}

var argPattern = regexp.MustCompile(`"[^"]+"|[^ ]+`)

// SplitArgs splits an action or command line on spaces. Double quoted words
// stay together and lose their quotes.
func SplitArgs(line string) []string {
	words := argPattern.FindAllString(line, -1)
	for i, w := range words {
		words[i] = strings.Trim(w, `"`)
	}
	return words
}
