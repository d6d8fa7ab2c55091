package main

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

var (
	headingColor = []color.Attribute{color.FgBlue, color.Bold}
	keepColor    = []color.Attribute{color.FgGreen}
	missingColor = []color.Attribute{color.FgYellow}
	ownedColor   = []color.Attribute{color.FgGreen}
)

func shouldColorize(writer io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// paint colours s for writers that are terminals; color's own detection only
// looks at stdout.
func paint(s string, attrs []color.Attribute, enabled bool) string {
	if !enabled || len(attrs) == 0 {
		return s
	}
	c := color.New(attrs...)
	c.EnableColor()
	return c.Sprint(s)
}
