/*
The schemy command line REPL.
*/
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/glycerine/schemy/schemy"
)

func usage(myflags *flag.FlagSet) {
	fmt.Printf("schemy command line help:\n")
	myflags.PrintDefaults()
	os.Exit(1)
}

func main() {
	cfg := schemy.NewConfig("schemy")
	cfg.DefineFlags()
	err := cfg.Flags.Parse(os.Args[1:])
	if err == flag.ErrHelp {
		usage(cfg.Flags)
	}

	if err != nil {
		panic(err)
	}
	err = cfg.ValidateConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "schemy command line error: '%v'\n", err)
		usage(cfg.Flags)
	}

	// the library does all the heavy lifting.
	schemy.ReplMain(cfg)
}
