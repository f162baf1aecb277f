// SPDX-License-Identifier: Apache-2.0

package sshconfig

import (
	"fmt"
	"os"

	"github.com/kevinburke/ssh_config"
)

// EffectiveResolver answers what the OpenSSH client itself would resolve for
// an alias, including values contributed by wildcard Host blocks that the
// menu parser deliberately ignores. Used for diagnostics only; launch always
// passes the bare alias to ssh so the client stays the single source of
// truth for field interpretation.
type EffectiveResolver struct {
	cfg *ssh_config.Config
}

// OpenEffective decodes an SSH client config for effective-value lookup.
func OpenEffective(path string) (*EffectiveResolver, error) {
	f, err := os.Open(ExpandPath(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open ssh config: %w", err)
	}
	defer f.Close()

	cfg, err := ssh_config.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ssh config: %w", err)
	}
	return &EffectiveResolver{cfg: cfg}, nil
}

// Get returns the effective value of key for alias, applying the client's
// pattern matching rules. Empty string means unset.
func (r *EffectiveResolver) Get(alias, key string) string {
	v, err := r.cfg.Get(alias, key)
	if err != nil {
		return ""
	}
	return v
}
