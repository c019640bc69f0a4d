// Package flagx lets several independent loaders share one command line.
// Each loader picks only the flags it owns and parses them with its own
// FlagSet, so unknown flags from other loaders never cause parse errors.
package flagx

import (
	"flag"
	"io"
	"strings"
)

// Pick returns the subset of args made of the named flags and their values.
// Names are given with their dashes ("-c", "--config"). Both "-c value" and
// "-c=value" forms are recognised; a following argument is treated as the
// value only if it does not itself start with a dash.
func Pick(args []string, names ...string) []string {
	owned := make(map[string]bool, len(names))
	for _, n := range names {
		owned[n] = true
	}

	picked := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if name, _, found := strings.Cut(arg, "="); found && strings.HasPrefix(arg, "-") {
			if owned[name] {
				picked = append(picked, arg)
			}
			continue
		}

		if !owned[arg] {
			continue
		}
		picked = append(picked, arg)
		if next := i + 1; next < len(args) && !strings.HasPrefix(args[next], "-") {
			picked = append(picked, args[next])
			i = next
		}
	}
	return picked
}

// ConfigPath extracts the JSON config file given via -c or -config.
// It returns an empty string when neither is present.
func ConfigPath(args []string) string {
	var path string

	fs := flag.NewFlagSet("config-file", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&path, "config", "", "path to JSON config file")
	fs.StringVar(&path, "c", "", "path to JSON config file (short)")
	_ = fs.Parse(Pick(args, "-c", "-config", "--config"))

	return path
}
