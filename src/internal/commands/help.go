package commands

import "flag"

func CreateHelpCommand(usage func()) *HelpCommand {
	return &HelpCommand{fs: newFlagSet("help"), usage: usage}
}

// HelpCommand prints the top-level usage.
type HelpCommand struct {
	fs    *flag.FlagSet
	usage func()
}

func (c *HelpCommand) Name() string {
	return c.fs.Name()
}

func (c *HelpCommand) Init(args []string, _ *AppContext) error {
	return parseFlags(c.fs, args)
}

func (c *HelpCommand) Run() error {
	c.usage()
	return nil
}
