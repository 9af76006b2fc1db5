package commands

import (
	"github.com/lukassup/route-ctl/src/internal/log"
	"github.com/lukassup/route-ctl/src/internal/routes"
)

// batchCommand reads a {"routes": [...]} document named by its single
// positional argument.
type batchCommand struct {
	baseCommand
	source string
	inputs []*routes.Record
}

func newBatchCommand(name string) batchCommand {
	return batchCommand{baseCommand: baseCommand{fs: newFlagSet(name)}}
}

func (c *batchCommand) Init(args []string, ctx *AppContext) error {
	if err := c.init(args, ctx); err != nil {
		return err
	}
	source, err := positional(c.fs, "JSON_FILE")
	if err != nil {
		return err
	}
	c.source = source
	return nil
}

func (c *batchCommand) load() error {
	inputs, err := loadRoutesDocument(c.ctx, c.source)
	if err != nil {
		return err
	}
	log.Debugf("Loaded %d routes from %s", len(inputs), c.source)
	c.inputs = inputs
	return nil
}

func CreateBatchValidateCommand() *BatchValidateCommand {
	return &BatchValidateCommand{newBatchCommand("batch-validate")}
}

// BatchValidateCommand validates every route of a JSON document.
type BatchValidateCommand struct {
	batchCommand
}

func (c *BatchValidateCommand) Run() error {
	if err := c.load(); err != nil {
		return err
	}
	results, err := c.mgr.ValidateBatch(c.inputs)
	if err != nil {
		return err
	}
	return writeJSON(c.ctx.out(), struct {
		Routes []routes.ValidationResult `json:"routes"`
	}{results})
}

func CreateBatchCreateCommand() *BatchCreateCommand {
	return &BatchCreateCommand{newBatchCommand("batch-create")}
}

// BatchCreateCommand creates every route of a JSON document, skipping those
// that already exist.
type BatchCreateCommand struct {
	batchCommand
}

func (c *BatchCreateCommand) Run() error {
	if err := c.load(); err != nil {
		return err
	}
	result, err := c.mgr.CreateBatch(c.inputs)
	if err != nil {
		return err
	}
	if result.Skipped > 0 {
		log.Warnf("Skipped %d routes that already exist", result.Skipped)
	}
	return writeJSON(c.ctx.out(), result)
}

func CreateBatchUpdateCommand() *BatchUpdateCommand {
	return &BatchUpdateCommand{newBatchCommand("batch-update")}
}

// BatchUpdateCommand updates every route of a JSON document, or none.
type BatchUpdateCommand struct {
	batchCommand
}

func (c *BatchUpdateCommand) Run() error {
	if err := c.load(); err != nil {
		return err
	}
	all, err := c.mgr.UpdateBatch(c.inputs)
	if err != nil {
		return err
	}
	return writeRoutes(c.ctx.out(), all)
}

func CreateBatchReplaceCommand() *BatchReplaceCommand {
	return &BatchReplaceCommand{newBatchCommand("batch-replace")}
}

// BatchReplaceCommand rewrites the route file with the routes of a JSON
// document.
type BatchReplaceCommand struct {
	batchCommand
}

func (c *BatchReplaceCommand) Run() error {
	if err := c.load(); err != nil {
		return err
	}
	all, err := c.mgr.Replace(c.inputs)
	if err != nil {
		return err
	}
	return writeRoutes(c.ctx.out(), all)
}
