// Command biosignal runs the EEG/ECG processing pipeline.
//
// Usage:
//
//	biosignal <command> [flags]
//
// Commands:
//
//	simulate   process a synthetic 2x EEG + ECG stream
//	replay     process a raw EDF recording
//	serve      process raw packets from NATS and publish the results
//	filters    print the channel filter magnitude response
//
// Examples:
//
//	biosignal simulate -duration 20s -heart-rate 65
//	biosignal simulate -realtime -publish-raw
//	biosignal replay -record filtered.edf session.edf
//	biosignal serve -config biosignal.yaml
//	biosignal filters -freqs 10,50,90
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
)

type command struct {
	summary string
	run     func(args []string, stdout, stderr io.Writer) error
}

var commands = map[string]command{
	"simulate": {"process a synthetic 2x EEG + ECG stream", runSimulate},
	"replay":   {"process a raw EDF recording", runReplay},
	"serve":    {"process raw packets from NATS and publish the results", runServe},
	"filters":  {"print the channel filter magnitude response", runFilters},
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return 2
	}

	name := args[0]
	if name == "-h" || name == "-help" || name == "help" {
		usage(stdout)
		return 0
	}
	cmd, ok := commands[name]
	if !ok {
		_, _ = fmt.Fprintf(stderr, "error: unknown command %q\n\n", name)
		usage(stderr)
		return 2
	}

	if err := cmd.run(args[1:], stdout, stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		_, _ = fmt.Fprintf(stderr, "error: %s: %v\n", name, err)
		return 1
	}
	return 0
}

func usage(w io.Writer) {
	_, _ = fmt.Fprintf(w, "Usage: biosignal <command> [flags]\n\nCommands:\n")
	names := make([]string, 0, len(commands))
	for n := range commands {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		_, _ = fmt.Fprintf(w, "  %-9s %s\n", n, commands[n].summary)
	}
	_, _ = fmt.Fprintf(w, "\nRun 'biosignal <command> -h' for command flags.\n")
}
