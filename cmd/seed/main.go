// seed turns a catalog CSV (stores, categories, menus) into SQL inserts for the franchise schema.
//
// Usage: go run ./cmd/seed catalog.csv [charset] [out.sql]
// charset defaults to utf-8 (also: shift_jis, euc-jp). Without out.sql the script goes to stdout.
package main

import (
	"fmt"
	"os"

	"github.com/nagane/franchise-api/internal/infrastructure/seed"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: seed catalog.csv [charset] [out.sql]")
		os.Exit(2)
	}
	charset := ""
	if len(os.Args) > 2 {
		charset = os.Args[2]
	}

	f, err := os.Open(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "open catalog: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	catalog, err := seed.Parse(f, charset)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	out := os.Stdout
	if len(os.Args) > 3 {
		out, err = os.Create(os.Args[3])
		if err != nil {
			fmt.Fprintf(os.Stderr, "create output: %v\n", err)
			os.Exit(1)
		}
		defer out.Close()
	}
	if _, err := out.WriteString(catalog.SQL()); err != nil {
		fmt.Fprintf(os.Stderr, "write: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "%d stores, %d categories, %d menus\n", len(catalog.Stores), len(catalog.Categories), len(catalog.Menus))
}
