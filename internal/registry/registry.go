// SPDX-License-Identifier: Apache-2.0

// Package registry merges parsed SSH config hosts with user settings into
// the canonical host list the menu is built from. Ordering is part of the
// contract: SSH config order first, then user-added hosts in settings order,
// so menu positions stay stable across refreshes.
package registry

import (
	"sshmenu/internal/settings"
	"sshmenu/internal/sshconfig"
)

// Merge applies settings to the parsed host list: excluded aliases are
// dropped, overrides for existing aliases patch only the fields they set,
// and overrides for unknown aliases append as new entries.
func Merge(parsed []sshconfig.HostEntry, s settings.Settings) []sshconfig.HostEntry {
	excluded := s.ExcludeSet()

	merged := make([]sshconfig.HostEntry, 0, len(parsed)+len(s.Hosts))
	indexByAlias := make(map[string]int, len(parsed))
	for _, e := range parsed {
		if _, skip := excluded[e.Alias]; skip {
			continue
		}
		indexByAlias[e.Alias] = len(merged)
		merged = append(merged, e)
	}

	for _, o := range s.Hosts {
		if _, skip := excluded[o.Alias]; skip {
			continue
		}
		idx, exists := indexByAlias[o.Alias]
		if !exists {
			indexByAlias[o.Alias] = len(merged)
			merged = append(merged, sshconfig.HostEntry{Alias: o.Alias, Source: sshconfig.SourceOverride})
			idx = len(merged) - 1
		}
		apply(&merged[idx], o)
	}

	return merged
}

// apply overlays the explicitly-set override fields onto an entry. Any
// override, even an empty one, marks the entry as user-modified.
func apply(e *sshconfig.HostEntry, o settings.HostOverride) {
	if o.HostName != nil {
		e.HostName = *o.HostName
	}
	if o.User != nil {
		e.User = *o.User
	}
	if o.Port != nil {
		e.Port = *o.Port
	}
	if o.IdentityFile != nil {
		e.IdentityFile = sshconfig.ExpandPath(*o.IdentityFile)
	}
	if o.ProxyJump != nil {
		e.ProxyJump = *o.ProxyJump
	}
	e.Source = sshconfig.SourceOverride
}

// Lookup returns the entry with the given alias, if present.
func Lookup(entries []sshconfig.HostEntry, alias string) (sshconfig.HostEntry, bool) {
	for _, e := range entries {
		if e.Alias == alias {
			return e, true
		}
	}
	return sshconfig.HostEntry{}, false
}
