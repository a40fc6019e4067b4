// Command fitsheader prints HDU info and the full header card list of
// a FITS file, for inspecting calibration keywords before conversion.
package main

import (
	"flag"
	"fmt"
	"os"

	"lcexport/internal/fits"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("fitsheader", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: a FITS filepath is required.")
		return 2
	}
	path := fs.Arg(0)

	if _, err := os.Stat(path); err != nil {
		fmt.Fprintf(os.Stderr, "Error: file not found: %s\n", path)
		return 2
	}

	f, err := fits.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening FITS file: %v\n", err)
		return 3
	}
	defer f.Close()

	for i := 0; i < f.NumHDUs(); i++ {
		fmt.Printf("\n=== HDU %d: %s ===\n", i, f.HDUName(i))
		cards, err := f.HeaderCards(i)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading HDU %d header: %v\n", i, err)
			return 4
		}
		for _, c := range cards {
			if c.Comment != "" {
				fmt.Printf("%-8s= %-20v / %s\n", c.Name, c.Value, c.Comment)
			} else {
				fmt.Printf("%-8s= %v\n", c.Name, c.Value)
			}
		}
	}
	return 0
}
