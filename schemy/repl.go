package schemy

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"runtime/pprof"
	"strings"
)

func getLine(reader *bufio.Reader) (string, error) {
	line := make([]byte, 0)
	for {
		linepart, hasMore, err := reader.ReadLine()
		if err != nil {
			return "", err
		}
		line = append(line, linepart...)
		if !hasMore {
			break
		}
	}
	return string(line), nil
}

// Repl evaluates one line at a time against a single persistent
// interpreter. Each line is an independent unit of failure: a parse
// or eval error prints its message and the loop continues with the
// environment intact. Void results print nothing.
func Repl(ip *Interpreter, cfg *Config) {
	var reader *bufio.Reader
	if cfg.NoLiner {
		// reader is used if one wishes to drop the liner library.
		// Useful when not under a full terminal, like under test.
		reader = bufio.NewReader(os.Stdin)
	}

	if !cfg.Quiet {
		fmt.Printf("schemy version %s\n", Version())
		fmt.Printf("press tab (repeatedly) to get completion suggestions. Ctrl-d to exit.\n")
	}

	var pr *Prompter
	if !cfg.NoLiner {
		pr = NewPrompter(cfg.Prompt)
		defer pr.Close()
	}

	for {
		var line string
		var err error
		if cfg.NoLiner {
			fmt.Printf("%s", cfg.Prompt)
			line, err = getLine(reader)
		} else {
			line, err = pr.Getline(nil)
		}
		if err == io.EOF {
			fmt.Printf("\n")
			return
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		res, err := ip.EvalString(line)
		if err != nil {
			fmt.Println(err)
			continue
		}
		if _, isVoid := res.(*ValVoid); isVoid {
			continue
		}
		fmt.Println(res.ValueString())
	}
}

// runScript evaluates a file holding exactly one top-level form and
// prints the result's rendering, or the error's message.
func runScript(ip *Interpreter, fname string) {
	src, err := os.ReadFile(fname)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	res, err := ip.EvalString(string(src))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(res.ValueString())
}

// ReplMain is the library entry point for cmd/schemy.
func ReplMain(cfg *Config) {
	ip := NewInterpreter()

	if cfg.Trace {
		Verbose = true
	}

	if cfg.CpuProfile != "" {
		f, err := os.Create(cfg.CpuProfile)
		if err != nil {
			fmt.Println(err)
			os.Exit(-1)
		}
		err = pprof.StartCPUProfile(f)
		if err != nil {
			fmt.Println(err)
			os.Exit(-1)
		}
		defer pprof.StopCPUProfile()
	}

	if cfg.Command != "" {
		res, err := ip.EvalString(cfg.Command)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		if _, isVoid := res.(*ValVoid); !isVoid {
			fmt.Println(res.ValueString())
		}
		return
	}

	args := cfg.Flags.Args()
	if len(args) > 0 {
		runScript(ip, args[0])
	} else {
		Repl(ip, cfg)
	}

	if cfg.MemProfile != "" {
		f, err := os.Create(cfg.MemProfile)
		if err != nil {
			fmt.Println(err)
			os.Exit(-1)
		}
		defer f.Close()

		err = pprof.Lookup("heap").WriteTo(f, 1)
		if err != nil {
			fmt.Println(err)
			os.Exit(-1)
		}
	}
}
