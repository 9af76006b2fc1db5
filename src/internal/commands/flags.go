package commands

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lukassup/route-ctl/src/internal/errors"
	"github.com/lukassup/route-ctl/src/internal/manager"
	"github.com/lukassup/route-ctl/src/internal/routes"
)

// baseCommand holds what every route file command needs after Init.
type baseCommand struct {
	fs  *flag.FlagSet
	ctx *AppContext
	mgr *manager.Manager
}

func (b *baseCommand) Name() string {
	return b.fs.Name()
}

// init parses args and builds the manager.
func (b *baseCommand) init(args []string, ctx *AppContext) error {
	b.ctx = ctx

	if err := parseFlags(b.fs, args); err != nil {
		return err
	}

	cfg, err := loadAndValidateConfigOrFail(ctx)
	if err != nil {
		return err
	}

	mgr, err := newManager(ctx, cfg)
	if err != nil {
		return err
	}
	b.mgr = mgr
	return nil
}

// filterFlags are the flags selecting routes for find and delete.
type filterFlags struct {
	key          string
	ignoreCase   bool
	partialMatch bool
}

func (f *filterFlags) bind(fs *flag.FlagSet) {
	fs.StringVar(&f.key, "key", routes.FieldName, "Filter by key ("+strings.Join(routes.Keys, ", ")+")")
	fs.BoolVar(&f.ignoreCase, "ignore-case", false, "Ignore case in searches")
	fs.BoolVar(&f.partialMatch, "partial-match", false, "Find partial matches")
}

func (f *filterFlags) filter(value string) (routes.Filter, error) {
	known := false
	for _, k := range routes.Keys {
		if k == f.key {
			known = true
			break
		}
	}
	if !known {
		return routes.Filter{}, errors.Newf(errors.ErrCodeInvalidOperation,
			"invalid key %q (choose from %s)", f.key, strings.Join(routes.Keys, ", "))
	}
	return routes.Filter{
		Key:        f.key,
		Value:      value,
		IgnoreCase: f.ignoreCase,
		ExactMatch: !f.partialMatch,
	}, nil
}

// recordFlags build a single route from NAME and field flags, or from a
// JSON file holding one route object.
type recordFlags struct {
	fs       *flag.FlagSet
	values   map[string]*string
	jsonFile string
}

func (r *recordFlags) bind(fs *flag.FlagSet) {
	r.fs = fs
	r.values = make(map[string]*string, len(routes.BodyFields))
	usage := map[string]string{
		routes.FieldEnsure:    "Ensured route state (present, absent)",
		routes.FieldGateway:   "Route gateway",
		routes.FieldInterface: "Route egress interface",
		routes.FieldNetmask:   "Route destination network mask",
		routes.FieldNetwork:   "Route destination network",
		routes.FieldOptions:   "Additional route options",
	}
	for _, key := range routes.BodyFields {
		r.values[key] = fs.String(key, "", usage[key])
	}
	fs.StringVar(&r.jsonFile, "json", "", "Read the route from a JSON `FILE` holding one route object (- for stdin)")
}

// record assembles the route. Field flags given on the command line
// override values read from -json.
func (r *recordFlags) record(ctx *AppContext) (*routes.Record, error) {
	rec := &routes.Record{}

	switch {
	case r.jsonFile != "" && r.fs.NArg() > 0:
		return nil, errors.NewInvalidOperationError("NAME and -json are mutually exclusive", nil)
	case r.jsonFile != "":
		loaded, err := r.load(ctx)
		if err != nil {
			return nil, err
		}
		rec = loaded
	default:
		name, err := positional(r.fs, "NAME")
		if err != nil {
			return nil, err
		}
		rec.Name = name
	}

	r.fs.Visit(func(f *flag.Flag) {
		if v, ok := r.values[f.Name]; ok {
			rec.Set(f.Name, *v)
		}
	})
	return rec, nil
}

func (r *recordFlags) load(ctx *AppContext) (*routes.Record, error) {
	var data []byte
	var err error
	if r.jsonFile == "-" {
		data, err = io.ReadAll(ctx.in())
	} else {
		data, err = os.ReadFile(r.jsonFile)
	}
	if err != nil {
		return nil, errors.NewIOError(fmt.Sprintf("failed to read %s", r.jsonFile), err)
	}
	rec := &routes.Record{}
	if err := json.Unmarshal(data, rec); err != nil {
		return nil, errors.NewInvalidOperationError("failed to decode route JSON", err)
	}
	return rec, nil
}
