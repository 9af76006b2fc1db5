package routes

import (
	"bytes"
	stderrors "errors"
	"io"
	"os"
	"strings"

	"github.com/lukassup/route-ctl/src/internal/errors"
	"github.com/lukassup/route-ctl/src/internal/log"
	"github.com/lukassup/route-ctl/src/internal/utils"
	"github.com/valyala/fasttemplate"
)

// Template variables available to the header and block templates.
const (
	TmplClassName    = "class_name"
	TmplResourceType = "resource_type"
)

// VariableSigil marks a Puppet variable reference, emitted without quotes.
const VariableSigil = "$"

// DefaultBackupSuffix is appended to the route file path to form the backup path.
const DefaultBackupSuffix = ".backup"

const headerTemplate = `##
#   This file was automatically generated
#

class {{class_name}} {
`

const blockTemplate = `  {{resource_type}} { {{name}}:
    ensure    => {{ensure}},
    gateway   => {{gateway}},
    interface => {{interface}},
    netmask   => {{netmask}},
    network   => {{network}},
    options   => {{options}},
  }
`

const footerTemplate = "}\n"

// BackupPolicy controls the copy made before a route file is rewritten.
type BackupPolicy struct {
	Enabled bool
	Suffix  string
}

// Builder renders records back into the block grammar.
type Builder struct {
	grammar Grammar
	backup  BackupPolicy
	header  *fasttemplate.Template
	block   *fasttemplate.Template
}

// NewBuilder creates a builder for g. An empty backup suffix falls back to
// DefaultBackupSuffix.
func NewBuilder(g Grammar, backup BackupPolicy) *Builder {
	if backup.Suffix == "" {
		backup.Suffix = DefaultBackupSuffix
	}
	return &Builder{
		grammar: g,
		backup:  backup,
		header:  fasttemplate.New(headerTemplate, "{{", "}}"),
		block:   fasttemplate.New(blockTemplate, "{{", "}}"),
	}
}

// Quote renders a field value: variable references pass verbatim, anything
// else becomes a quoted string literal. Single quotes are preferred; values
// holding a single quote and no double quote use double quotes.
func Quote(value string) string {
	if strings.HasPrefix(value, VariableSigil) {
		return value
	}
	if strings.Contains(value, "'") && !strings.Contains(value, `"`) {
		return `"` + value + `"`
	}
	return "'" + value + "'"
}

// Render writes the full document for records to w.
func (b *Builder) Render(w io.Writer, records []*Record) error {
	if _, err := b.header.ExecuteFunc(w, b.grammarTag); err != nil {
		return err
	}
	for _, rec := range records {
		if _, err := b.block.ExecuteFunc(w, b.recordTag(rec)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, footerTemplate)
	return err
}

func (b *Builder) grammarTag(w io.Writer, tag string) (int, error) {
	switch tag {
	case TmplClassName:
		return io.WriteString(w, b.grammar.ClassName)
	case TmplResourceType:
		return io.WriteString(w, b.grammar.ResourceType)
	}
	return 0, nil
}

func (b *Builder) recordTag(rec *Record) fasttemplate.TagFunc {
	return func(w io.Writer, tag string) (int, error) {
		if tag == TmplClassName || tag == TmplResourceType {
			return b.grammarTag(w, tag)
		}
		// Missing values collapse to the empty quoted string.
		value, _ := rec.Get(tag)
		return io.WriteString(w, Quote(value))
	}
}

// Backup copies path to its backup sibling. A missing or non-regular path is
// not an error and skips the copy.
func (b *Builder) Backup(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			log.Infof("No backup needed, %s does not exist", path)
			return nil
		}
		return errors.NewIOError("failed to stat route file", err)
	}
	if !info.Mode().IsRegular() {
		log.Infof("No backup needed, %s is not a regular file", path)
		return nil
	}

	backup := path + b.backup.Suffix
	log.Infof("Backing up file %s -> %s", path, backup)

	src, err := os.Open(path)
	if err != nil {
		return errors.NewIOError("failed to open route file for backup", err)
	}
	defer utils.CloseOrWarn(src)

	dst, err := os.OpenFile(backup, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return errors.NewIOError("failed to create backup file", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		utils.CloseOrWarn(dst)
		return errors.NewIOError("failed to write backup file", err)
	}
	if err := dst.Close(); err != nil {
		return errors.NewIOError("failed to close backup file", err)
	}
	if err := os.Chtimes(backup, info.ModTime(), info.ModTime()); err != nil {
		log.Warnf("Failed to preserve modification time of %s: %v", backup, err)
	}
	return nil
}

// WriteFile regenerates path from records, making a backup first when the
// policy asks for one. The file is truncated and rewritten, never patched.
func (b *Builder) WriteFile(path string, records []*Record) error {
	var buf bytes.Buffer
	if err := b.Render(&buf, records); err != nil {
		return errors.NewInternalError("failed to render routes", err)
	}

	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
		mode = info.Mode().Perm()
	}

	if b.backup.Enabled {
		if err := b.Backup(path); err != nil {
			return err
		}
	}

	log.Infof("Rewriting %d routes to file %s", len(records), path)
	if err := os.WriteFile(path, buf.Bytes(), mode); err != nil {
		return errors.NewIOError("failed to rewrite route file", err)
	}
	return nil
}
