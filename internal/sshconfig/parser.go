// SPDX-License-Identifier: Apache-2.0

// Package sshconfig parses OpenSSH client configuration files into the
// ordered list of connectable host entries shown in the menu.
//
// The parser is deliberately stricter than the OpenSSH client: a present but
// malformed file fails the whole parse instead of yielding a partial host
// list, because a partial list risks connecting to the wrong target.
package sshconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Source records where a host entry was defined.
type Source int

const (
	// SourceSSHConfig marks entries parsed from the SSH client config.
	SourceSSHConfig Source = iota
	// SourceOverride marks entries added or modified via application settings.
	SourceOverride
)

// HostEntry is one connectable target parsed from an SSH client config.
// Zero values ("" and 0) mean the field was not set; the SSH client applies
// its own defaults for unset fields.
type HostEntry struct {
	Alias        string
	HostName     string
	User         string
	Port         int
	IdentityFile string
	ProxyJump    string
	Source       Source
}

// EffectiveHostName returns the address the SSH client would connect to:
// the configured HostName, or the alias itself when HostName is unset.
func (e HostEntry) EffectiveHostName() string {
	if e.HostName != "" {
		return e.HostName
	}
	return e.Alias
}

// ParseErrorKind classifies a ParseError.
type ParseErrorKind int

const (
	// MalformedDirective is a directive with no value or an invalid value.
	MalformedDirective ParseErrorKind = iota
	// UnterminatedQuote is a quoted value missing its closing quote.
	UnterminatedQuote
	// CyclicInclude is an Include chain that reaches a file already being parsed.
	CyclicInclude
	// Unreadable is an I/O failure on a file that exists.
	Unreadable
)

func (k ParseErrorKind) String() string {
	switch k {
	case MalformedDirective:
		return "malformed directive"
	case UnterminatedQuote:
		return "unterminated quote"
	case CyclicInclude:
		return "cyclic include"
	case Unreadable:
		return "unreadable file"
	default:
		return "parse error"
	}
}

// ParseError reports a fatal problem in an SSH config file.
type ParseError struct {
	Path string
	Line int
	Kind ParseErrorKind
	Msg  string
	Err  error
}

func (e *ParseError) Error() string {
	where := e.Path
	if e.Line > 0 {
		where = fmt.Sprintf("%s:%d", e.Path, e.Line)
	}
	if e.Msg != "" {
		return fmt.Sprintf("%s: %s: %s", where, e.Kind, e.Msg)
	}
	return fmt.Sprintf("%s: %s", where, e.Kind)
}

func (e *ParseError) Unwrap() error { return e.Err }

// DefaultPath returns the primary OpenSSH client config path (~/.ssh/config).
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, ".ssh", "config"), nil
}

// Parse reads an SSH client config and returns one HostEntry per literal
// (non-wildcard) Host pattern, in order of first appearance. Include
// directives are expanded recursively with entries spliced at the inclusion
// point. A missing primary file yields an empty list and no error.
//
// Duplicate aliases merge with first-wins semantics per option key: the first
// block to set a key keeps it, later blocks only fill keys still unset.
func Parse(path string) ([]HostEntry, error) {
	path = ExpandPath(path)
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	if _, err := os.Stat(abs); os.IsNotExist(err) {
		return nil, nil
	}

	p := &parser{
		indexByAlias: map[string]int{},
		active:       map[string]struct{}{},
	}
	if err := p.parseFile(abs); err != nil {
		return nil, err
	}
	return p.entries, nil
}

// recognized per-host keys; everything else is ignored for forward
// compatibility with newer OpenSSH options.
const (
	keyHostName     = "hostname"
	keyUser         = "user"
	keyPort         = "port"
	keyIdentityFile = "identityfile"
	keyProxyJump    = "proxyjump"
)

type parser struct {
	entries      []HostEntry
	indexByAlias map[string]int
	// active holds files currently being parsed, for include cycle detection.
	active map[string]struct{}
}

// hostBlock accumulates directives for one Host block. Within a block the
// first value seen per key wins, matching the OpenSSH client.
type hostBlock struct {
	patterns []string
	values   map[string]string
}

func (hb *hostBlock) set(key, value string) {
	if _, ok := hb.values[key]; ok {
		return
	}
	hb.values[key] = value
}

func (p *parser) parseFile(path string) error {
	if _, ok := p.active[path]; ok {
		return &ParseError{Path: path, Kind: CyclicInclude, Msg: "file includes itself"}
	}
	p.active[path] = struct{}{}
	defer delete(p.active, path)

	data, err := os.ReadFile(path)
	if err != nil {
		return &ParseError{Path: path, Kind: Unreadable, Msg: err.Error(), Err: err}
	}

	var current *hostBlock
	inSkippedMatch := false

	flush := func() {
		if current != nil {
			p.mergeBlock(current)
			current = nil
		}
	}

	lines := strings.Split(string(data), "\n")
	for i, raw := range lines {
		lineNo := i + 1
		line := strings.TrimSpace(strings.TrimSuffix(raw, "\r"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, rest, ok := splitDirective(line)
		if !ok {
			return &ParseError{Path: path, Line: lineNo, Kind: MalformedDirective, Msg: "directive with no value"}
		}

		tokens, terr := tokenize(rest)
		if terr != nil {
			return &ParseError{Path: path, Line: lineNo, Kind: UnterminatedQuote, Msg: rest}
		}
		if len(tokens) == 0 {
			return &ParseError{Path: path, Line: lineNo, Kind: MalformedDirective, Msg: key + " has no value"}
		}

		switch key {
		case "host":
			flush()
			inSkippedMatch = false
			current = &hostBlock{patterns: tokens, values: map[string]string{}}
		case "match":
			// Match conditions are not evaluated; keys in the section are
			// scoped to it and must not leak into surfaced entries.
			flush()
			inSkippedMatch = true
		case "include":
			flush()
			for _, glob := range tokens {
				if err := p.parseIncludes(path, glob); err != nil {
					return err
				}
			}
		case keyPort:
			if inSkippedMatch || current == nil {
				continue
			}
			n, err := strconv.Atoi(tokens[0])
			if err != nil || n < 1 || n > 65535 {
				return &ParseError{Path: path, Line: lineNo, Kind: MalformedDirective, Msg: "invalid port " + strconv.Quote(tokens[0])}
			}
			current.set(keyPort, tokens[0])
		case keyHostName, keyUser, keyProxyJump:
			if inSkippedMatch || current == nil {
				continue
			}
			current.set(key, tokens[0])
		case keyIdentityFile:
			if inSkippedMatch || current == nil {
				continue
			}
			current.set(key, ExpandPath(tokens[0]))
		default:
			// Unrecognized option; ignore wherever it appears.
		}
	}
	flush()
	return nil
}

// parseIncludes expands one Include argument. Relative globs resolve against
// the including file's directory. Matches parse in lexical order; a glob
// matching nothing is not an error.
func (p *parser) parseIncludes(base, glob string) error {
	glob = ExpandPath(glob)
	if !filepath.IsAbs(glob) {
		glob = filepath.Join(filepath.Dir(base), glob)
	}
	matches, err := filepath.Glob(glob)
	if err != nil {
		return &ParseError{Path: base, Kind: MalformedDirective, Msg: "bad include pattern " + strconv.Quote(glob), Err: err}
	}
	sort.Strings(matches)
	for _, m := range matches {
		fi, err := os.Stat(m)
		if err != nil || fi.IsDir() {
			continue
		}
		abs, err := filepath.Abs(m)
		if err != nil {
			abs = m
		}
		if err := p.parseFile(abs); err != nil {
			return err
		}
	}
	return nil
}

// mergeBlock folds a finished block into the entry list. A block surfaces
// one entry per literal pattern; wildcard patterns act only as scope
// matchers and are never shown as connectable aliases.
func (p *parser) mergeBlock(hb *hostBlock) {
	for _, pat := range hb.patterns {
		if !IsLiteralPattern(pat) {
			continue
		}
		idx, exists := p.indexByAlias[pat]
		if !exists {
			p.indexByAlias[pat] = len(p.entries)
			p.entries = append(p.entries, HostEntry{Alias: pat, Source: SourceSSHConfig})
			idx = len(p.entries) - 1
		}
		e := &p.entries[idx]
		if e.HostName == "" {
			e.HostName = hb.values[keyHostName]
		}
		if e.User == "" {
			e.User = hb.values[keyUser]
		}
		if e.Port == 0 {
			if v := hb.values[keyPort]; v != "" {
				e.Port, _ = strconv.Atoi(v)
			}
		}
		if e.IdentityFile == "" {
			e.IdentityFile = hb.values[keyIdentityFile]
		}
		if e.ProxyJump == "" {
			e.ProxyJump = hb.values[keyProxyJump]
		}
	}
}

// splitDirective splits "Key Value" or "Key=Value" and lowercases the key.
// ok is false when the line has a key but nothing after it.
func splitDirective(line string) (key, rest string, ok bool) {
	i := strings.IndexAny(line, " \t=")
	if i < 0 {
		return strings.ToLower(line), "", false
	}
	key = strings.ToLower(line[:i])
	rest = strings.TrimLeft(line[i:], " \t=")
	if rest == "" {
		return key, "", false
	}
	return key, rest, true
}

// tokenize splits a directive value into whitespace-separated tokens,
// honoring double quotes. Returns an error for an unterminated quote.
func tokenize(s string) ([]string, error) {
	var tokens []string
	var cur strings.Builder
	inQuote := false
	hasToken := false

	flush := func() {
		if hasToken {
			tokens = append(tokens, cur.String())
			cur.Reset()
			hasToken = false
		}
	}

	for _, r := range s {
		switch {
		case r == '"':
			inQuote = !inQuote
			hasToken = true
		case (r == ' ' || r == '\t') && !inQuote:
			flush()
		default:
			cur.WriteRune(r)
			hasToken = true
		}
	}
	if inQuote {
		return nil, fmt.Errorf("unterminated quote in %q", s)
	}
	flush()
	return tokens, nil
}

// IsLiteralPattern reports whether a Host pattern is a plain alias: no glob
// metacharacters and no leading negation.
func IsLiteralPattern(pat string) bool {
	if pat == "" || strings.HasPrefix(pat, "!") {
		return false
	}
	return !strings.ContainsAny(pat, "*?")
}

// ExpandPath expands a leading ~ and environment variables in a path.
func ExpandPath(p string) string {
	p = os.ExpandEnv(p)
	if p == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
		return p
	}
	if strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, p[2:])
		}
	}
	return p
}
