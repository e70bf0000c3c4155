package configloader

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/yaklabco/gomkd/pkg/config"
	"github.com/yaklabco/gomkd/pkg/fsutil"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// ErrConfigExists is returned by WriteTemplate when the target exists and
// overwriting was neither forced nor confirmed.
var ErrConfigExists = errors.New("configuration file already exists")

// InitOptions controls WriteTemplate.
type InitOptions struct {
	// Path is the file to create; ProjectConfigName when empty.
	Path string

	// Force overwrites an existing file without asking.
	Force bool

	// NonInteractive disables the overwrite prompt (e.g., in CI).
	NonInteractive bool

	// In and Out carry the prompt; os.Stdin and os.Stdout when nil.
	In  io.Reader
	Out io.Writer
}

// WriteTemplate writes the commented default configuration. When the file
// exists it asks before overwriting if stdin is a terminal, and fails
// otherwise unless Force is set. It reports whether an existing file was
// replaced.
func WriteTemplate(ctx context.Context, opts InitOptions) (bool, error) {
	path := opts.Path
	if path == "" {
		path = ProjectConfigName
	}

	exists := fileExists(path)
	if exists && !opts.Force {
		if opts.NonInteractive || (opts.In == nil && !isInteractive()) {
			return false, fmt.Errorf("%w: %s (use --force to overwrite)", ErrConfigExists, path)
		}
		ok, err := promptOverwrite(path, opts.In, opts.Out)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, fmt.Errorf("%w: %s", ErrConfigExists, path)
		}
	}

	if err := fsutil.WriteAtomic(ctx, path, config.GenerateTemplate(), configFilePermissions); err != nil {
		return false, fmt.Errorf("write config: %w", err)
	}
	return exists, nil
}

// promptOverwrite asks the user whether to replace path.
func promptOverwrite(path string, in io.Reader, out io.Writer) (bool, error) {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}

	if _, err := fmt.Fprintf(out, "%s already exists. Overwrite? [y/N] ", path); err != nil {
		return false, fmt.Errorf("write prompt: %w", err)
	}

	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read response: %w", err)
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

// isInteractive returns true if stdin is a terminal.
func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
