package manager

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/lukassup/route-ctl/src/internal/errors"
	"github.com/lukassup/route-ctl/src/internal/hashing"
	"github.com/lukassup/route-ctl/src/internal/log"
	"github.com/lukassup/route-ctl/src/internal/routes"
	"github.com/lukassup/route-ctl/src/internal/utils"
)

// Options configures a Manager.
type Options struct {
	Grammar  routes.Grammar
	Backup   routes.BackupPolicy
	Identity routes.IdentityPolicy
}

// DefaultOptions returns the options used when no configuration is given.
func DefaultOptions() Options {
	return Options{
		Grammar:  routes.DefaultGrammar,
		Backup:   routes.BackupPolicy{Enabled: true, Suffix: routes.DefaultBackupSuffix},
		Identity: routes.IdentityNameOrNetwork,
	}
}

// Manager runs read-all, transform, write-all cycles against a route file.
// It holds no lock: concurrent writers to the same file race and the last
// one wins.
type Manager struct {
	path     string
	scanner  *routes.Scanner
	builder  *routes.Builder
	identity routes.IdentityPolicy
}

// BatchResult reports the outcome of a batch create.
type BatchResult struct {
	Routes  []*routes.Record `json:"routes"`
	Created int              `json:"created"`
	Skipped int              `json:"skipped"`
}

// New creates a manager for the route file at path. Zero-valued option
// fields fall back to DefaultOptions.
func New(path string, opts Options) *Manager {
	defaults := DefaultOptions()
	if opts.Grammar.ClassName == "" {
		opts.Grammar.ClassName = defaults.Grammar.ClassName
	}
	if opts.Grammar.ResourceType == "" {
		opts.Grammar.ResourceType = defaults.Grammar.ResourceType
	}
	if opts.Identity == "" {
		opts.Identity = defaults.Identity
	}
	return &Manager{
		path:     path,
		scanner:  routes.NewScanner(opts.Grammar),
		builder:  routes.NewBuilder(opts.Grammar, opts.Backup),
		identity: opts.Identity,
	}
}

// Path returns the route file path.
func (m *Manager) Path() string {
	return m.path
}

// Identity returns the identity policy used to detect existing routes.
func (m *Manager) Identity() routes.IdentityPolicy {
	return m.identity
}

// Load parses the route file and returns its records together with the
// file revision. A missing file is an empty collection.
func (m *Manager) Load() ([]*routes.Record, string, error) {
	log.Infof("Parsing routes from route file %s", m.path)
	f, err := os.Open(m.path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			log.Debugf("Route file %s does not exist, starting empty", m.path)
			return []*routes.Record{}, hashing.EmptyRevision, nil
		}
		return nil, "", errors.NewIOError("failed to open route file", err)
	}
	defer utils.CloseOrWarn(f)

	proxy := hashing.NewMD5ReaderProxy(f)
	records, err := routes.ParseAll(proxy, m.scanner)
	if err != nil {
		return nil, "", err
	}
	// Drain whatever the parser did not need so the revision covers the
	// whole file.
	if _, err := io.Copy(io.Discard, proxy); err != nil {
		return nil, "", errors.NewIOError("failed to read route file", err)
	}
	log.Debugf("Parsed %d routes from %s", len(records), m.path)
	return records, proxy.GetChecksum(), nil
}

// Revision returns the MD5 checksum of the route file.
func (m *Manager) Revision() (string, error) {
	rev, err := hashing.FileRevision(m.path)
	if err != nil {
		return "", errors.NewIOError("failed to read route file", err)
	}
	return rev, nil
}

func (m *Manager) load() ([]*routes.Record, error) {
	records, _, err := m.Load()
	return records, err
}

func (m *Manager) write(records []*routes.Record) error {
	return m.builder.WriteFile(m.path, records)
}

// List returns every record in document order.
func (m *Manager) List() ([]*routes.Record, error) {
	log.Infof("Listing all routes")
	return m.load()
}

// Find returns the records matching f.
func (m *Manager) Find(f routes.Filter) ([]*routes.Record, error) {
	matcher, err := routes.NewMatcher(f)
	if err != nil {
		return nil, err
	}
	records, err := m.load()
	if err != nil {
		return nil, err
	}
	log.Infof("Showing routes matching filter %s=%q", matcher.Filter().Key, f.Value)
	return routes.Find(records, matcher), nil
}

// Validate compares input with the stored record of the same name.
func (m *Manager) Validate(input *routes.Record) (routes.Validation, error) {
	records, err := m.load()
	if err != nil {
		return nil, err
	}
	log.Infof("Validating route %q", input.Name)
	return routes.Validate(records, input)
}

// ValidateBatch validates every input against the stored records.
func (m *Manager) ValidateBatch(inputs []*routes.Record) ([]routes.ValidationResult, error) {
	records, err := m.load()
	if err != nil {
		return nil, err
	}
	log.Infof("Batch validating %d routes", len(inputs))
	return routes.ValidateBatch(records, inputs)
}

// upsert merges rec into records in place, or appends it. It reports whether
// a new record was appended.
func (m *Manager) upsert(records []*routes.Record, rec *routes.Record) ([]*routes.Record, bool, error) {
	existing := routes.FindExisting(records, rec, m.identity)
	switch len(existing) {
	case 0:
		log.Infof("Creating a new route name=%q", rec.Name)
		return append(records, rec.Clone()), true, nil
	case 1:
		log.Infof("Updating existing route name=%q", existing[0].Name)
		existing[0].Merge(rec)
		return records, false, nil
	default:
		return nil, false, errors.Newf(errors.ErrCodeMultipleRecordsFound,
			"unable to update, %d routes share the identity of %q", len(existing), rec.Name)
	}
}

// CreateOrUpdate appends rec, or merges it into the one existing record
// sharing its identity. It returns the full collection after the write.
func (m *Manager) CreateOrUpdate(rec *routes.Record) ([]*routes.Record, error) {
	if err := routes.CheckRecord(rec, m.identity); err != nil {
		return nil, err
	}
	records, err := m.load()
	if err != nil {
		return nil, err
	}
	log.Infof("Looking up if route %q already exists", rec.Name)
	records, _, err = m.upsert(records, rec)
	if err != nil {
		return nil, err
	}
	if err := m.write(records); err != nil {
		return nil, err
	}
	return records, nil
}

// Create appends rec and fails with EntryAlreadyExists when a record with
// the same identity is present.
func (m *Manager) Create(rec *routes.Record) ([]*routes.Record, error) {
	if err := routes.CheckRecord(rec, m.identity); err != nil {
		return nil, err
	}
	records, err := m.load()
	if err != nil {
		return nil, err
	}
	if existing := routes.FindExisting(records, rec, m.identity); len(existing) > 0 {
		return nil, errors.Newf(errors.ErrCodeEntryAlreadyExists,
			"route %q conflicts with existing route %q", rec.Name, existing[0].Name)
	}
	log.Infof("Creating a new route name=%q", rec.Name)
	records = append(records, rec.Clone())
	if err := m.write(records); err != nil {
		return nil, err
	}
	return records, nil
}

// CreateBatch appends every input that does not conflict with a stored
// record or with an earlier input. Conflicting inputs are skipped and
// counted. The file is rewritten only when something was created.
func (m *Manager) CreateBatch(inputs []*routes.Record) (*BatchResult, error) {
	if err := routes.CheckRecords(inputs, m.identity); err != nil {
		return nil, err
	}
	records, err := m.load()
	if err != nil {
		return nil, err
	}

	result := &BatchResult{}
	for _, rec := range inputs {
		if existing := routes.FindExisting(records, rec, m.identity); len(existing) > 0 {
			log.Warnf("Skipping route %q, it conflicts with existing route %q", rec.Name, existing[0].Name)
			result.Skipped++
			continue
		}
		records = append(records, rec.Clone())
		result.Created++
	}
	log.Infof("Batch create: %d created, %d skipped", result.Created, result.Skipped)

	if result.Created > 0 {
		if err := m.write(records); err != nil {
			return nil, err
		}
	}
	result.Routes = records
	return result, nil
}

func (m *Manager) update(records []*routes.Record, rec *routes.Record) error {
	existing := routes.FindExisting(records, rec, m.identity)
	switch len(existing) {
	case 0:
		return errors.Newf(errors.ErrCodeRecordNotFound,
			"unable to update, no route matching %q found", rec.Name)
	case 1:
		log.Infof("Updating existing route name=%q", existing[0].Name)
		existing[0].Merge(rec)
		return nil
	default:
		return errors.Newf(errors.ErrCodeMultipleRecordsFound,
			"unable to update, %d routes match %q", len(existing), rec.Name)
	}
}

// Update merges rec into the single record sharing its identity.
func (m *Manager) Update(rec *routes.Record) ([]*routes.Record, error) {
	if err := routes.CheckRecord(rec, m.identity); err != nil {
		return nil, err
	}
	records, err := m.load()
	if err != nil {
		return nil, err
	}
	if err := m.update(records, rec); err != nil {
		return nil, err
	}
	if err := m.write(records); err != nil {
		return nil, err
	}
	return records, nil
}

// UpdateBatch applies every input or none: the first unmatched input fails
// the batch before anything is written.
func (m *Manager) UpdateBatch(inputs []*routes.Record) ([]*routes.Record, error) {
	if err := routes.CheckRecords(inputs, m.identity); err != nil {
		return nil, err
	}
	records, err := m.load()
	if err != nil {
		return nil, err
	}
	log.Infof("Batch updating %d routes", len(inputs))
	for _, rec := range inputs {
		if err := m.update(records, rec); err != nil {
			return nil, err
		}
	}
	if err := m.write(records); err != nil {
		return nil, err
	}
	return records, nil
}

// Delete removes every record matching f and returns the remaining ones.
func (m *Manager) Delete(f routes.Filter) ([]*routes.Record, error) {
	matcher, err := routes.NewMatcher(f)
	if err != nil {
		return nil, err
	}
	records, err := m.load()
	if err != nil {
		return nil, err
	}
	kept := routes.Delete(records, matcher)
	removed := len(records) - len(kept)
	log.Infof("Deleting %d routes matching filter %s=%q", removed, matcher.Filter().Key, f.Value)
	if removed == 0 {
		return kept, nil
	}
	if err := m.write(kept); err != nil {
		return nil, err
	}
	return kept, nil
}

// Replace rewrites the route file with exactly records.
func (m *Manager) Replace(records []*routes.Record) ([]*routes.Record, error) {
	if err := routes.CheckRecords(records, m.identity); err != nil {
		return nil, err
	}
	if err := checkUnique(records, m.identity); err != nil {
		return nil, err
	}
	log.Infof("Replacing all routes with %d routes", len(records))
	records = routes.CloneAll(records)
	if err := m.write(records); err != nil {
		return nil, err
	}
	return records, nil
}

// checkUnique rejects collections in which two records share an identity.
func checkUnique(records []*routes.Record, policy routes.IdentityPolicy) error {
	for i, rec := range records {
		for _, other := range records[:i] {
			if policy.Same(other, rec) {
				return errors.Newf(errors.ErrCodeEntryAlreadyExists,
					"routes %q and %q share an identity", other.Name, rec.Name)
			}
		}
	}
	return nil
}

// RoutesDocument is the JSON envelope used for batch input and list output.
type RoutesDocument struct {
	Routes []*routes.Record `json:"routes"`
}

// LoadRoutesJSON decodes a {"routes": [...]} document.
func LoadRoutesJSON(r io.Reader) ([]*routes.Record, error) {
	log.Infof("Loading routes from JSON")
	var doc RoutesDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.NewInvalidOperationError("failed to decode routes document", err)
	}
	if doc.Routes == nil {
		return nil, errors.NewInvalidOperationError(`routes document has no "routes" array`, nil)
	}
	for i, rec := range doc.Routes {
		if rec == nil {
			return nil, errors.NewInvalidOperationError(fmt.Sprintf("route #%d is null", i), nil)
		}
	}
	return doc.Routes, nil
}

// LoadRoutesJSONFile decodes a routes document from path.
func LoadRoutesJSONFile(path string) ([]*routes.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewIOError("failed to open JSON file", err)
	}
	defer utils.CloseOrWarn(f)
	return LoadRoutesJSON(f)
}
