package commands

import (
	"github.com/lukassup/route-ctl/src/internal/log"
	"github.com/lukassup/route-ctl/src/internal/routes"
)

func CreateValidateCommand() *ValidateCommand {
	c := &ValidateCommand{baseCommand: baseCommand{fs: newFlagSet("validate")}}
	c.flags.bind(c.fs)
	return c
}

// ValidateCommand compares a route given on the command line with the
// stored route of the same name.
type ValidateCommand struct {
	baseCommand
	flags recordFlags
	rec   *routes.Record
}

func (c *ValidateCommand) Init(args []string, ctx *AppContext) error {
	if err := c.init(args, ctx); err != nil {
		return err
	}
	rec, err := c.flags.record(ctx)
	if err != nil {
		return err
	}
	c.rec = rec
	return nil
}

func (c *ValidateCommand) Run() error {
	v, err := c.mgr.Validate(c.rec)
	if err != nil {
		return err
	}
	return writeJSON(c.ctx.out(), routes.ValidationResult{Input: c.rec, Output: v})
}

func CreateCreateCommand() *CreateCommand {
	c := &CreateCommand{baseCommand: baseCommand{fs: newFlagSet("create")}}
	c.flags.bind(c.fs)
	c.fs.BoolVar(&c.exclusive, "exclusive", false, "Fail instead of updating when the route already exists")
	return c
}

// CreateCommand creates a route, or updates the route sharing its identity.
type CreateCommand struct {
	baseCommand
	flags     recordFlags
	exclusive bool
	rec       *routes.Record
}

func (c *CreateCommand) Init(args []string, ctx *AppContext) error {
	if err := c.init(args, ctx); err != nil {
		return err
	}
	rec, err := c.flags.record(ctx)
	if err != nil {
		return err
	}
	c.rec = rec
	return nil
}

func (c *CreateCommand) Run() error {
	var all []*routes.Record
	var err error
	if c.exclusive {
		all, err = c.mgr.Create(c.rec)
	} else {
		all, err = c.mgr.CreateOrUpdate(c.rec)
	}
	if err != nil {
		return err
	}
	return writeRoutes(c.ctx.out(), all)
}

func CreateUpdateCommand() *UpdateCommand {
	c := &UpdateCommand{baseCommand: baseCommand{fs: newFlagSet("update")}}
	c.flags.bind(c.fs)
	return c
}

// UpdateCommand merges a route into the existing route sharing its identity.
type UpdateCommand struct {
	baseCommand
	flags recordFlags
	rec   *routes.Record
}

func (c *UpdateCommand) Init(args []string, ctx *AppContext) error {
	if err := c.init(args, ctx); err != nil {
		return err
	}
	rec, err := c.flags.record(ctx)
	if err != nil {
		return err
	}
	c.rec = rec
	return nil
}

func (c *UpdateCommand) Run() error {
	log.Debugf("Updating route %q", c.rec.Name)
	all, err := c.mgr.Update(c.rec)
	if err != nil {
		return err
	}
	return writeRoutes(c.ctx.out(), all)
}
