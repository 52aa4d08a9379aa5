package schemy

import (
	"flag"
)

// Config for the schemy repl.
type Config struct {
	CpuProfile string
	MemProfile string
	Command    string
	Quiet      bool
	Trace      bool

	// liner bombs under emacs, avoid it with this flag.
	NoLiner bool
	Prompt  string // default "schemy> "

	Flags *flag.FlagSet
}

func NewConfig(cmdname string) *Config {
	return &Config{
		Flags: flag.NewFlagSet(cmdname, flag.ExitOnError),
	}
}

// call DefineFlags before myflags.Parse()
func (c *Config) DefineFlags() {
	c.Flags.StringVar(&c.CpuProfile, "cpuprofile", "", "write cpu profile to file")
	c.Flags.StringVar(&c.MemProfile, "memprofile", "", "write mem profile to file")
	c.Flags.StringVar(&c.Command, "c", "", "expression to evaluate")
	c.Flags.BoolVar(&c.Quiet, "quiet", false, "start repl without printing the version banner")
	c.Flags.BoolVar(&c.Trace, "trace", false, "trace evaluation (warning: verbose)")
	c.Flags.BoolVar(&c.NoLiner, "noliner", false, "read lines with plain stdin instead of liner")
}

// call c.ValidateConfig() after myflags.Parse()
func (c *Config) ValidateConfig() error {
	if c.Prompt == "" {
		c.Prompt = "schemy> "
	}
	return nil
}
