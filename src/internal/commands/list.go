package commands

import (
	"github.com/lukassup/route-ctl/src/internal/log"
)

func CreateListCommand() *ListCommand {
	return &ListCommand{baseCommand{fs: newFlagSet("list")}}
}

// ListCommand prints every route in the route file.
type ListCommand struct {
	baseCommand
}

func (c *ListCommand) Init(args []string, ctx *AppContext) error {
	if err := c.init(args, ctx); err != nil {
		return err
	}
	if c.fs.NArg() > 0 {
		return unexpectedArgs(c.fs)
	}
	return nil
}

func (c *ListCommand) Run() error {
	records, err := c.mgr.List()
	if err != nil {
		return err
	}
	log.Infof("Listing %d routes", len(records))
	return writeRoutes(c.ctx.out(), records)
}

func CreateFindCommand() *FindCommand {
	c := &FindCommand{baseCommand: baseCommand{fs: newFlagSet("find")}}
	c.filter.bind(c.fs)
	return c
}

// FindCommand prints the routes matching a filter.
type FindCommand struct {
	baseCommand
	filter filterFlags
	value  string
}

func (c *FindCommand) Init(args []string, ctx *AppContext) error {
	if err := c.init(args, ctx); err != nil {
		return err
	}
	value, err := positional(c.fs, "VALUE")
	if err != nil {
		return err
	}
	c.value = value
	return nil
}

func (c *FindCommand) Run() error {
	f, err := c.filter.filter(c.value)
	if err != nil {
		return err
	}
	found, err := c.mgr.Find(f)
	if err != nil {
		return err
	}
	return writeRoutes(c.ctx.out(), found)
}

func CreateDeleteCommand() *DeleteCommand {
	c := &DeleteCommand{baseCommand: baseCommand{fs: newFlagSet("delete")}}
	c.filter.bind(c.fs)
	return c
}

// DeleteCommand removes the routes matching a filter and prints the rest.
type DeleteCommand struct {
	baseCommand
	filter filterFlags
	value  string
}

func (c *DeleteCommand) Init(args []string, ctx *AppContext) error {
	if err := c.init(args, ctx); err != nil {
		return err
	}
	value, err := positional(c.fs, "VALUE")
	if err != nil {
		return err
	}
	c.value = value
	return nil
}

func (c *DeleteCommand) Run() error {
	f, err := c.filter.filter(c.value)
	if err != nil {
		return err
	}
	kept, err := c.mgr.Delete(f)
	if err != nil {
		return err
	}
	return writeRoutes(c.ctx.out(), kept)
}
