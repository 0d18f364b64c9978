package main

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-biosignal/dsp/filter/biquad"
	"github.com/cwbudde/algo-biosignal/dsp/filter/exg"
)

var defaultFreqs = "0.5,1,5,10,20,30,45,48,50,52,60,90,120,200,249"

func runFilters(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("filters", flag.ContinueOnError)
	fs.SetOutput(stderr)
	freqList := fs.String("freqs", defaultFreqs, "comma-separated frequencies in Hz")
	if err := fs.Parse(args); err != nil {
		return err
	}

	freqs, err := parseFreqs(*freqList, exg.DesignSampleRate)
	if err != nil {
		return err
	}
	return printFilterResponse(stdout, freqs)
}

func parseFreqs(list string, sampleRate float64) ([]float64, error) {
	var freqs []float64
	for _, field := range strings.Split(list, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		f, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("frequency %q: %w", field, err)
		}
		if f < 0 || f >= sampleRate/2 {
			return nil, fmt.Errorf("frequency %g Hz outside [0, %g)", f, sampleRate/2)
		}
		freqs = append(freqs, f)
	}
	if len(freqs) == 0 {
		return nil, fmt.Errorf("no frequencies given")
	}
	return freqs, nil
}

func printFilterResponse(w io.Writer, freqs []float64) error {
	const sampleRate = exg.DesignSampleRate

	lowpass := exg.Bandpass45()
	notch := biquad.NewChain(exg.Notch50())

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Frequency [Hz]\tLowpass [dB]\tNotch [dB]\tTotal [dB]\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(tw, "--------------\t------------\t----------\t----------\n"); err != nil {
		return err
	}
	for _, f := range freqs {
		lp := lowpass.MagnitudeDB(f, sampleRate)
		n := notch.MagnitudeDB(f, sampleRate)
		if _, err := fmt.Fprintf(tw, "%.1f\t%.2f\t%.2f\t%.2f\n", f, lp, n, lp+n); err != nil {
			return err
		}
	}
	return tw.Flush()
}
