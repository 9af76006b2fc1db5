package routes

import (
	"bufio"
	stderrors "errors"
	"io"

	"github.com/lukassup/route-ctl/src/internal/errors"
)

// maxLineSize bounds a single manifest line.
const maxLineSize = 1024 * 1024

// Parser reads route records from a forward-only stream of lines. It can only
// be restarted by creating a new Parser over a reopened stream.
type Parser struct {
	lines       *bufio.Scanner
	scanner     *Scanner
	line        int
	headerFound bool
	done        bool
}

// NewParser creates a parser reading from r using the recognizers of s.
func NewParser(r io.Reader, s *Scanner) *Parser {
	lines := bufio.NewScanner(r)
	lines.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &Parser{
		lines:   lines,
		scanner: s,
	}
}

// Line returns the number of the last line consumed.
func (p *Parser) Line() int {
	return p.line
}

func (p *Parser) readLine() (string, bool, error) {
	if !p.lines.Scan() {
		if err := p.lines.Err(); err != nil {
			return "", false, errors.NewIOError("failed to read route file", err)
		}
		return "", false, nil
	}
	p.line++
	return p.lines.Text(), true, nil
}

// FindHeader consumes lines up to and including the file header.
func (p *Parser) FindHeader() error {
	for {
		line, ok, err := p.readLine()
		if err != nil {
			return err
		}
		if !ok {
			return errors.New(errors.ErrCodeStartTokenNotFound, "no match for file header")
		}
		if p.scanner.MatchHeader(line) {
			p.headerFound = true
			return nil
		}
	}
}

// ParseOne reads the next record block. It fails with StartTokenNotFound when
// no block head remains and with EndTokenNotFound when the block is not
// closed before the end of the stream.
func (p *Parser) ParseOne() (*Record, error) {
	var rec *Record
	for rec == nil {
		line, ok, err := p.readLine()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errors.New(errors.ErrCodeStartTokenNotFound, "no match for code block start")
		}
		if head, ok := p.scanner.MatchBlockHead(line); ok {
			rec = &Record{Name: head.Name}
		}
	}

	start := p.line
	for {
		line, ok, err := p.readLine()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errors.Newf(errors.ErrCodeEndTokenNotFound,
				"no match for code block end (block %q opened at line %d)", rec.Name, start)
		}
		if p.scanner.MatchCloseBrace(line) {
			return rec, nil
		}
		if item, ok := p.scanner.MatchBlockItem(line); ok {
			rec.Set(item.Key, item.Value)
		}
	}
}

// Next returns the next record, or io.EOF when the file header is missing or
// no more record blocks follow. Structural errors are returned as is.
func (p *Parser) Next() (*Record, error) {
	if p.done {
		return nil, io.EOF
	}
	if !p.headerFound {
		if err := p.FindHeader(); err != nil {
			return nil, p.finish(err)
		}
	}
	rec, err := p.ParseOne()
	if err != nil {
		return nil, p.finish(err)
	}
	return rec, nil
}

// finish ends the sequence, turning a missing start token into io.EOF.
func (p *Parser) finish(err error) error {
	p.done = true
	if stderrors.Is(err, errors.ErrStartTokenNotFound) {
		return io.EOF
	}
	return err
}

// ParseAll drains a parser over r into a slice.
func ParseAll(r io.Reader, s *Scanner) ([]*Record, error) {
	p := NewParser(r, s)
	records := make([]*Record, 0)
	for {
		rec, err := p.Next()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return records, err
		}
		records = append(records, rec)
	}
}
