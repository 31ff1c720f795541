package cli

import (
	"flag"
	"fmt"
	"io"
	"lucidepre/internal/core/config"
	"lucidepre/internal/core/ports"
)

const versionString = "1.0.0"
const defaultConfigPath = "./" + config.DefaultFileName

type cliOptions struct {
	configPath string
	importMode string
	write      bool
	diff       bool
	watch      bool
	stdin      bool
	path       string
	verbose    bool
	version    bool
	args       []string
}

func parseOptions(args []string, output io.Writer) (cliOptions, error) {
	var opts cliOptions
	fs := flag.NewFlagSet("lucidepre", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringVar(&opts.configPath, "config", defaultConfigPath, "Path to config file")
	fs.StringVar(&opts.importMode, "mode", "", "Import mode for build-qualified frameworks (cjs or esm); overrides import_mode")
	fs.BoolVar(&opts.write, "write", false, "Rewrite files in place")
	fs.BoolVar(&opts.diff, "diff", false, "Print a diff for every file that would change")
	fs.BoolVar(&opts.watch, "watch", false, "Keep running and rewrite files as they change")
	fs.BoolVar(&opts.stdin, "stdin", false, "Rewrite source read from stdin and print it to stdout")
	fs.StringVar(&opts.path, "path", "", "File path used for ignore rules with -stdin")
	fs.BoolVar(&opts.verbose, "verbose", false, "Enable verbose logging")
	fs.BoolVar(&opts.version, "version", false, "Print version and exit")

	if err := fs.Parse(args); err != nil {
		return cliOptions{}, err
	}

	opts.args = fs.Args()
	return opts, nil
}

func (o cliOptions) rewriteMode() (ports.RewriteMode, error) {
	switch {
	case o.write && o.diff:
		return ports.ModeCheck, fmt.Errorf("-write and -diff cannot be combined")
	case o.stdin && (o.write || o.diff || o.watch):
		return ports.ModeCheck, fmt.Errorf("-stdin cannot be combined with -write, -diff or -watch")
	case o.stdin && len(o.args) > 0:
		return ports.ModeCheck, fmt.Errorf("-stdin does not take path arguments")
	case o.write:
		return ports.ModeWrite, nil
	case o.diff:
		return ports.ModeDiff, nil
	default:
		return ports.ModeCheck, nil
	}
}
