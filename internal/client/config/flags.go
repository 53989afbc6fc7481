package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/tapcard/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-u string   API base URL
//	-t duration per-request timeout
//	-d string   session database path
//	-l string   log level
//
// Only these flags are taken from args (see flagx.FilterArgs), so -c/-config
// and anything else on the command line do not interfere. A malformed value
// panics.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-u", "-t", "-d", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIURL, "u", cfg.APIURL, "base URL of the TapCard API")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "per-request timeout")
	fs.StringVar(&cfg.SessionDBPath, "d", cfg.SessionDBPath, "session database path")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
