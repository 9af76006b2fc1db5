package commands

import (
	"fmt"

	"github.com/lukassup/route-ctl/src/internal/log"
	"github.com/lukassup/route-ctl/src/internal/networking"
)

func CreateCheckCommand() *CheckCommand {
	return &CheckCommand{baseCommand: baseCommand{fs: newFlagSet("check")}}
}

// CheckCommand compares the route file with the kernel routing table.
type CheckCommand struct {
	baseCommand
	kernel networking.KernelRoutes
}

func (c *CheckCommand) Init(args []string, ctx *AppContext) error {
	if err := c.init(args, ctx); err != nil {
		return err
	}
	if c.fs.NArg() > 0 {
		return unexpectedArgs(c.fs)
	}
	if c.kernel == nil {
		c.kernel = networking.NewKernelRoutes()
	}
	return nil
}

func (c *CheckCommand) Run() error {
	records, err := c.mgr.List()
	if err != nil {
		return err
	}

	results := networking.NewChecker(c.kernel).Check(records)
	if err := writeJSON(c.ctx.out(), struct {
		Routes []networking.Result `json:"routes"`
	}{results}); err != nil {
		return err
	}

	failed := 0
	for _, res := range results {
		switch res.State {
		case networking.StateOK:
		case networking.StateSkipped:
			log.Warnf("Route %q skipped: %s", res.Name, res.Message)
		default:
			failed++
			log.Errorf("Route %q is %s: %s", res.Name, res.State, res.Message)
		}
	}
	if networking.Failed(results) {
		return fmt.Errorf("%d of %d routes do not match the kernel routing table", failed, len(results))
	}
	log.Infof("All %d routes match the kernel routing table", len(results))
	return nil
}
