// Package logging builds the hclog logger shared by the CLI and the MCP server.
package logging

import (
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
)

// New returns a logger writing to w (stderr when nil). Unknown levels fall
// back to info. Output always goes to stderr by default because stdout carries
// MCP protocol traffic.
func New(name, level string, w io.Writer) hclog.Logger {
	if w == nil {
		w = os.Stderr
	}
	lvl := hclog.LevelFromString(level)
	if lvl == hclog.NoLevel {
		lvl = hclog.Info
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:            name,
		Level:           lvl,
		Output:          w,
		IncludeLocation: lvl <= hclog.Debug,
	})
}
