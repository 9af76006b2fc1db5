package routes

import (
	"fmt"
	"regexp"
)

// Grammar names the two identifiers of the route block grammar.
type Grammar struct {
	// ClassName is the Puppet class wrapping all route blocks.
	ClassName string
	// ResourceType is the resource keyword opening each route block.
	ResourceType string
}

// DefaultGrammar is the grammar of netroutes route manifests.
var DefaultGrammar = Grammar{
	ClassName:    "netroutes::routes",
	ResourceType: "network_route",
}

// trailer matches optional non-newline whitespace and an optional comment up
// to the end of the line.
const trailer = `[^\S\n\r]*(?:#.*)?$`

// BlockHead is the result of recognizing a record block opening line.
type BlockHead struct {
	Name string
}

// BlockItem is the result of recognizing a `key => value` line.
type BlockItem struct {
	Key   string
	Value string
}

// Scanner recognizes the four line-level tokens of the grammar. It holds no
// parsing state and is safe for concurrent use.
type Scanner struct {
	grammar    Grammar
	header     *regexp.Regexp
	blockHead  *regexp.Regexp
	blockItem  *regexp.Regexp
	closeBrace *regexp.Regexp
}

// NewScanner compiles the line patterns for g.
func NewScanner(g Grammar) *Scanner {
	return &Scanner{
		grammar: g,
		header: regexp.MustCompile(fmt.Sprintf(
			`^\s*class %s\s*\{%s`,
			regexp.QuoteMeta(g.ClassName), trailer)),
		blockHead: regexp.MustCompile(fmt.Sprintf(
			`^\s*%s\s*\{\s*(?:'(.*?)'|"(.*?)"):%s`,
			regexp.QuoteMeta(g.ResourceType), trailer)),
		// Quoted alternatives come first so that paired quotes are
		// stripped whenever they are present.
		blockItem: regexp.MustCompile(
			`^\s*([^\s#]\S*?)\s*=>\s*(?:'(.*?)'|"(.*?)"|(.*?)),?` + trailer),
		closeBrace: regexp.MustCompile(`^\s*\}` + trailer),
	}
}

// Grammar returns the grammar the scanner was built for.
func (s *Scanner) Grammar() Grammar {
	return s.grammar
}

// MatchHeader reports whether line is the file header.
func (s *Scanner) MatchHeader(line string) bool {
	return s.header.MatchString(line)
}

// MatchBlockHead recognizes a record block opening line.
func (s *Scanner) MatchBlockHead(line string) (BlockHead, bool) {
	m := s.blockHead.FindStringSubmatchIndex(line)
	if m == nil {
		return BlockHead{}, false
	}
	return BlockHead{Name: pickGroup(line, m, 1, 2)}, true
}

// MatchBlockItem recognizes a `key => value` line.
func (s *Scanner) MatchBlockItem(line string) (BlockItem, bool) {
	m := s.blockItem.FindStringSubmatchIndex(line)
	if m == nil {
		return BlockItem{}, false
	}
	return BlockItem{
		Key:   line[m[2]:m[3]],
		Value: pickGroup(line, m, 2, 3, 4),
	}, true
}

// MatchCloseBrace reports whether line closes a block.
func (s *Scanner) MatchCloseBrace(line string) bool {
	return s.closeBrace.MatchString(line)
}

// pickGroup returns the first participating group among groups.
func pickGroup(line string, m []int, groups ...int) string {
	for _, g := range groups {
		if m[2*g] >= 0 {
			return line[m[2*g]:m[2*g+1]]
		}
	}
	return ""
}
