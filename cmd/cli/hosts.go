// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"sshmenu/internal/registry"
	"sshmenu/internal/settings"
	"sshmenu/internal/sshconfig"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	hostsOutputFormat string
	showEffective     bool
)

// hostRecord is the serializable view of a registry entry for json/yaml
// output. Empty fields are omitted, matching what the config leaves unset.
type hostRecord struct {
	Alias        string `json:"alias" yaml:"alias"`
	HostName     string `json:"hostname,omitempty" yaml:"hostname,omitempty"`
	User         string `json:"user,omitempty" yaml:"user,omitempty"`
	Port         int    `json:"port,omitempty" yaml:"port,omitempty"`
	IdentityFile string `json:"identity_file,omitempty" yaml:"identity_file,omitempty"`
	ProxyJump    string `json:"proxy_jump,omitempty" yaml:"proxy_jump,omitempty"`
	Overridden   bool   `json:"overridden,omitempty" yaml:"overridden,omitempty"`
}

func toRecord(e sshconfig.HostEntry) hostRecord {
	return hostRecord{
		Alias:        e.Alias,
		HostName:     e.HostName,
		User:         e.User,
		Port:         e.Port,
		IdentityFile: e.IdentityFile,
		ProxyJump:    e.ProxyJump,
		Overridden:   e.Source == sshconfig.SourceOverride,
	}
}

// loadRegistry parses the SSH config, loads settings, and returns the
// merged host registry the menu would show.
func loadRegistry() ([]sshconfig.HostEntry, settings.Settings, error) {
	sshPath, err := sshconfig.DefaultPath()
	if err != nil {
		return nil, settings.Settings{}, err
	}
	entries, err := sshconfig.Parse(sshPath)
	if err != nil {
		return nil, settings.Settings{}, err
	}
	settingsPath, err := settings.DefaultPath()
	if err != nil {
		return nil, settings.Settings{}, err
	}
	s, err := settings.Load(settingsPath)
	if err != nil {
		return nil, settings.Settings{}, err
	}
	return registry.Merge(entries, s), s, nil
}

var hostsCmd = &cobra.Command{
	Use:   "hosts",
	Short: "Inspect the merged host registry",
}

var hostsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all hosts the menu would show",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		entries, _, err := loadRegistry()
		if err != nil {
			errorColor.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		records := make([]hostRecord, 0, len(entries))
		for _, e := range entries {
			records = append(records, toRecord(e))
		}

		switch hostsOutputFormat {
		case "json":
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(records); err != nil {
				errorColor.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		case "yaml":
			enc := yaml.NewEncoder(os.Stdout)
			defer enc.Close()
			if err := enc.Encode(records); err != nil {
				errorColor.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		case "table":
			printHostTable(records)
		default:
			errorColor.Fprintf(os.Stderr, "Error: unknown output format %q (want table, json, or yaml)\n", hostsOutputFormat)
			os.Exit(1)
		}
	},
}

func printHostTable(records []hostRecord) {
	if len(records) == 0 {
		fmt.Println("No hosts found.")
		return
	}
	headerColor.Printf("%-20s %-30s %-12s %-6s %s\n", "ALIAS", "HOSTNAME", "USER", "PORT", "SOURCE")
	for _, r := range records {
		port := ""
		if r.Port != 0 {
			port = strconv.Itoa(r.Port)
		}
		source := "ssh_config"
		if r.Overridden {
			source = overrideColor.Sprint("settings")
		}
		fmt.Printf("%-20s %-30s %-12s %-6s %s\n",
			aliasColor.Sprint(r.Alias), r.HostName, r.User, port, source)
	}
	dimColor.Printf("\n%d host(s)\n", len(records))
}

var hostsShowCmd = &cobra.Command{
	Use:   "show <alias>",
	Short: "Show one host's configured fields",
	Long: `Shows the fields configured for a host alias after settings overrides.

With --effective, also prints the values the OpenSSH client itself would
resolve for the alias, including wildcard Host blocks and client defaults
that the menu ignores.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		alias := args[0]

		entries, _, err := loadRegistry()
		if err != nil {
			errorColor.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		entry, ok := registry.Lookup(entries, alias)
		if !ok {
			errorColor.Fprintf(os.Stderr, "Error: no host named %q\n", alias)
			os.Exit(1)
		}

		headerColor.Printf("Host %s\n", entry.Alias)
		printField("HostName", entry.HostName)
		printField("User", entry.User)
		if entry.Port != 0 {
			printField("Port", strconv.Itoa(entry.Port))
		} else {
			printField("Port", "")
		}
		printField("IdentityFile", entry.IdentityFile)
		printField("ProxyJump", entry.ProxyJump)
		if entry.Source == sshconfig.SourceOverride {
			overrideColor.Println("  (modified by settings)")
		}

		if !showEffective {
			return
		}

		sshPath, err := sshconfig.DefaultPath()
		if err != nil {
			errorColor.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		resolver, err := sshconfig.OpenEffective(sshPath)
		if err != nil {
			errorColor.Fprintf(os.Stderr, "Error reading ssh config for effective values: %v\n", err)
			os.Exit(1)
		}

		fmt.Println()
		headerColor.Println("Effective (as resolved by the OpenSSH client)")
		for _, key := range []string{"HostName", "User", "Port", "IdentityFile", "ProxyJump"} {
			printField(key, resolver.Get(alias, key))
		}
	},
}

func printField(name, value string) {
	if value == "" {
		fmt.Printf("  %-14s %s\n", name, dimColor.Sprint("(not set)"))
		return
	}
	fmt.Printf("  %-14s %s\n", name, value)
}

func init() {
	hostsListCmd.Flags().StringVarP(&hostsOutputFormat, "output", "o", "table", "output format: table, json, or yaml")
	hostsShowCmd.Flags().BoolVar(&showEffective, "effective", false, "also show values as the OpenSSH client resolves them")
	hostsCmd.AddCommand(hostsListCmd)
	hostsCmd.AddCommand(hostsShowCmd)
}
