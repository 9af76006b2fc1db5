package networking

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/lukassup/route-ctl/src/internal/log"
	"github.com/lukassup/route-ctl/src/internal/routes"
	"github.com/lukassup/route-ctl/src/internal/utils"
)

// Routing table names understood in the "table" route option, as listed in
// /etc/iproute2/rt_tables.
var tableNames = map[string]int{
	"default": 253,
	"main":    254,
	"local":   255,
}

// RouteQuery describes the kernel route a record expects.
type RouteQuery struct {
	Dst       *net.IPNet
	Gateway   net.IP
	Interface string
	// Table is the routing table, 0 meaning the main table.
	Table int
}

func (q RouteQuery) String() string {
	s := q.Dst.String()
	if q.Gateway != nil {
		s += " via " + q.Gateway.String()
	}
	if q.Interface != "" {
		s += " dev " + q.Interface
	}
	if q.Table != 0 {
		s += " table " + strconv.Itoa(q.Table)
	}
	return s
}

// KernelRoutes counts the kernel routes matching a query.
type KernelRoutes interface {
	CountRoutes(q RouteQuery) (int, error)
}

// State is the outcome of checking one record.
type State string

const (
	StateOK         State = "ok"
	StateMissing    State = "missing"
	StateUnexpected State = "unexpected"
	StateSkipped    State = "skipped"
	StateError      State = "error"
)

// Result is the check outcome for one record.
type Result struct {
	Name    string `json:"name"`
	State   State  `json:"state"`
	Message string `json:"message,omitempty"`
}

// Failed reports whether any result is a mismatch or an error.
func Failed(results []Result) bool {
	for _, r := range results {
		if r.State == StateMissing || r.State == StateUnexpected || r.State == StateError {
			return true
		}
	}
	return false
}

// errSkipped marks records that cannot be resolved without Puppet.
type errSkipped struct {
	field string
}

func (e errSkipped) Error() string {
	return fmt.Sprintf("%s is a Puppet variable", e.field)
}

// ParseTable extracts the routing table from route options such as
// "table 200" or "table main". It returns 0 when no table is given.
func ParseTable(options string) (int, error) {
	fields := strings.Fields(options)
	for i, f := range fields {
		if f != "table" {
			continue
		}
		if i+1 >= len(fields) {
			return 0, fmt.Errorf("option \"table\" has no value")
		}
		value := fields[i+1]
		if id, ok := tableNames[value]; ok {
			return id, nil
		}
		id, err := strconv.Atoi(value)
		if err != nil || id < 0 {
			return 0, fmt.Errorf("invalid routing table %q", value)
		}
		return id, nil
	}
	return 0, nil
}

// BuildQuery converts a record into the kernel route it describes.
func BuildQuery(rec *routes.Record) (RouteQuery, error) {
	var q RouteQuery
	for _, k := range []string{routes.FieldNetwork, routes.FieldNetmask, routes.FieldGateway, routes.FieldInterface} {
		if v, _ := rec.Get(k); strings.HasPrefix(v, routes.VariableSigil) {
			return q, errSkipped{field: k}
		}
	}
	if rec.Network == "" {
		return q, fmt.Errorf("route has no network")
	}

	dst, err := utils.NetworkToIPNet(rec.Network, rec.Netmask)
	if err != nil {
		return q, err
	}
	q.Dst = dst

	if rec.Gateway != "" {
		q.Gateway = net.ParseIP(rec.Gateway)
		if q.Gateway == nil {
			return q, fmt.Errorf("invalid gateway %q", rec.Gateway)
		}
	}
	q.Interface = rec.Interface

	if q.Table, err = ParseTable(rec.Options); err != nil {
		return q, err
	}
	return q, nil
}

// Checker compares route records with the kernel routing tables.
type Checker struct {
	kernel KernelRoutes
}

// NewChecker creates a checker backed by kernel.
func NewChecker(kernel KernelRoutes) *Checker {
	return &Checker{kernel: kernel}
}

// Check returns one result per record, in order. Records ensured present
// (or with no ensure) must have a matching kernel route; records ensured
// absent must not.
func (c *Checker) Check(records []*routes.Record) []Result {
	results := make([]Result, 0, len(records))
	for _, rec := range records {
		results = append(results, c.checkOne(rec))
	}
	return results
}

func (c *Checker) checkOne(rec *routes.Record) Result {
	res := Result{Name: rec.Name}

	q, err := BuildQuery(rec)
	if err != nil {
		if skip, ok := err.(errSkipped); ok {
			res.State = StateSkipped
			res.Message = skip.Error()
			return res
		}
		res.State = StateError
		res.Message = err.Error()
		return res
	}

	n, err := c.kernel.CountRoutes(q)
	if err != nil {
		log.Warnf("Failed to look up route %s [%v]: %v", rec.Name, q, err)
		res.State = StateError
		res.Message = err.Error()
		return res
	}

	wantPresent := rec.Ensure != routes.EnsureAbsent
	switch {
	case wantPresent && n > 0, !wantPresent && n == 0:
		res.State = StateOK
	case wantPresent:
		res.State = StateMissing
		res.Message = fmt.Sprintf("no kernel route %v", q)
	default:
		res.State = StateUnexpected
		res.Message = fmt.Sprintf("kernel route %v should be absent", q)
	}
	log.Debugf("Checking route %s [%v]: %s", rec.Name, q, res.State)
	return res
}
