// SPDX-License-Identifier: EPL-2.0

// Command wavtool inspects, converts, merges and splits audio files, and
// replays recordings through a capture session.
//
// Usage:
//
//	wavtool [-config file.yaml] <command> [flags] args...
//
// Commands:
//
//	info    print the format of one or more files
//	convert re-encode a file as WAV at another rate, depth or byte order
//	merge   combine files into one multichannel WAV, one channel per input channel
//	split   write every channel of a WAV file to its own mono file
//	level   print the 0-100 volume level of each analysis window
//	record  replay a file through a capture session and export the result
//
// Any input format with a registered decoder (wav, mp3, ogg, aiff) is
// accepted where a command reads audio.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/ik5/wavkit/internal/config"
	"github.com/ik5/wavkit/internal/observe"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: wavtool [-config file.yaml] <command> [flags] args...")
	fmt.Fprintln(w, "commands: info, convert, merge, split, level, record")
}

// run executes one command and returns the process exit code. Errors
// before the logger exists go to stderr as plain text.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("wavtool", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { usage(stderr) }
	configPath := fs.String("config", "", "path to a YAML configuration file")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	if fs.NArg() == 0 {
		usage(stderr)
		return exitUsage
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			fmt.Fprintln(stderr, "wavtool:", err)
			return exitError
		}
	}

	log, err := newLogger(cfg.Log, stderr)
	if err != nil {
		fmt.Fprintln(stderr, "wavtool:", err)
		return exitError
	}
	defer func() { _ = log.Sync() }()

	a := &app{
		cfg:     cfg,
		log:     log,
		metrics: observe.DefaultMetrics(),
		reg:     newRegistry(),
		stdout:  stdout,
		stderr:  stderr,
	}

	name, cmdArgs := fs.Arg(0), fs.Args()[1:]
	cmd, ok := a.commands()[name]
	if !ok {
		fmt.Fprintf(stderr, "wavtool: unknown command %q\n", name)
		usage(stderr)
		return exitUsage
	}

	if err := cmd(ctx, cmdArgs); err != nil {
		if errors.Is(err, flag.ErrHelp) || errors.Is(err, errUsage) {
			return exitUsage
		}
		log.Error("command failed", zap.String("command", name), zap.Error(err))
		return exitError
	}
	return exitOK
}
