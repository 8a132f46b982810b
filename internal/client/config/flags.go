package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/callsecure/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-s string   storage driver: sqlite, postgres or memory
//	-d string   database DSN
//	-p string   data directory
//	-w int      success delay in milliseconds
//	-l string   log level
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-s", "-d", "-p", "-w", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.StorageDriver, "s", cfg.StorageDriver, "storage driver (sqlite, postgres, memory)")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.DataDir, "p", cfg.DataDir, "data directory")
	successDelay := fs.Int64("w", cfg.SuccessDelay.Milliseconds(), "delay after successful login (in milliseconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.SuccessDelay = time.Duration(*successDelay) * time.Millisecond
}
