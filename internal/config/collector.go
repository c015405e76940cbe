package config

import (
	"fmt"
	"strconv"
	"strings"
)

// ValueSource supplies operator input to the collector. The prompt package
// provides the real implementation; tests script one.
type ValueSource interface {
	// Ask requests a value, applying def when the operator enters nothing.
	Ask(label, def string) (string, error)
	// AskSecret requests a value without echoing it.
	AskSecret(label string) (string, error)
	// Warn surfaces an input problem before re-asking.
	Warn(msg string)
}

// Collector resolves configuration groups lazily: a group is prompted the
// first time a step that needs it runs, and values already supplied by an
// answers file, an existing `.env.local`, or an earlier prompt are never
// asked again.
type Collector struct {
	cfg      *Config
	source   ValueSource
	resolved map[Group]bool
	preset   map[string]bool
}

// NewCollector wraps cfg with lazy prompting backed by source.
func NewCollector(cfg *Config, source ValueSource) *Collector {
	return &Collector{
		cfg:      cfg,
		source:   source,
		resolved: make(map[Group]bool),
		preset:   make(map[string]bool),
	}
}

// Config returns the wrapped configuration.
func (c *Collector) Config() *Config {
	return c.cfg
}

// MarkPreset records fields (by yaml key) that arrived from an answers
// file or `.env.local` prefill and must not be prompted.
func (c *Collector) MarkPreset(keys ...string) {
	for _, key := range keys {
		c.preset[key] = true
	}
}

// Ensure resolves all fields of the group, prompting for any not preset.
func (c *Collector) Ensure(group Group) error {
	if group == GroupNone || c.resolved[group] {
		return nil
	}

	var err error
	switch group {
	case GroupProject:
		err = c.ensureProject()
	case GroupDatabase:
		err = c.ensureDatabase()
	default:
		err = fmt.Errorf("unknown configuration group %q", group)
	}
	if err != nil {
		return err
	}

	c.resolved[group] = true
	return nil
}

func (c *Collector) ensureProject() error {
	if !c.preset["project_name"] {
		value, err := c.askValidated("Project name", c.cfg.ProjectName, "required,project_slug",
			"use lowercase letters, digits and dashes, starting with a letter")
		if err != nil {
			return err
		}
		c.cfg.ProjectName = value
	}

	if !c.preset["project_dir"] {
		// The directory follows the project name unless the answers file
		// pinned it explicitly.
		c.cfg.ProjectDir = c.cfg.ProjectName
	}

	if !c.preset["api_url"] {
		value, err := c.askValidated("API URL", c.cfg.APIURL, "required,url", "enter a full URL")
		if err != nil {
			return err
		}
		c.cfg.APIURL = value
	}

	if !c.preset["license"] {
		value, err := c.askValidated("License (mit, apache-2.0, none)", c.cfg.License,
			"required,oneof=mit apache-2.0 none", "choose mit, apache-2.0 or none")
		if err != nil {
			return err
		}
		c.cfg.License = strings.ToLower(value)
	}

	return nil
}

func (c *Collector) ensureDatabase() error {
	// The database values live in `.env.local` under the project directory,
	// so the project group must be settled before the prefill can look in
	// the right place.
	if err := c.Ensure(GroupProject); err != nil {
		return err
	}

	keys, err := PrefillFromEnvFile(c.cfg.ProjectDir, c.cfg)
	if err != nil {
		return err
	}
	c.MarkPreset(keys...)

	if !c.preset["db_host"] {
		value, err := c.askValidated("Database host", c.cfg.DBHost, "required", "host cannot be empty")
		if err != nil {
			return err
		}
		c.cfg.DBHost = value
	}

	if !c.preset["db_port"] {
		if err := c.askPort(); err != nil {
			return err
		}
	}

	if !c.preset["db_name"] {
		def := c.cfg.DBName
		if c.resolved[GroupProject] || c.preset["project_name"] {
			def = DeriveDBName(c.cfg.ProjectName)
		}
		value, err := c.askValidated("Database name", def, "required,pg_identifier",
			"use lowercase letters, digits and underscores")
		if err != nil {
			return err
		}
		c.cfg.DBName = value
	}

	if !c.preset["db_user"] {
		value, err := c.askValidated("Database user", c.cfg.DBUser, "required", "user cannot be empty")
		if err != nil {
			return err
		}
		c.cfg.DBUser = value
	}

	if !c.preset["db_password"] {
		value, err := c.source.AskSecret("Database password (blank for none)")
		if err != nil {
			return err
		}
		c.cfg.DBPassword = value
	}

	return nil
}

// askValidated loops until the operator supplies a value passing the tag,
// warning on each rejection rather than failing.
func (c *Collector) askValidated(label, def, tag, hint string) (string, error) {
	for {
		value, err := c.source.Ask(label, def)
		if err != nil {
			return "", err
		}
		value = strings.TrimSpace(value)
		if ValidateVar(value, tag) == nil {
			return value, nil
		}
		c.source.Warn(fmt.Sprintf("invalid value %q: %s", value, hint))
	}
}

func (c *Collector) askPort() error {
	for {
		raw, err := c.source.Ask("Database port", strconv.Itoa(c.cfg.DBPort))
		if err != nil {
			return err
		}
		port, convErr := strconv.Atoi(strings.TrimSpace(raw))
		if convErr == nil && port >= 1 && port <= 65535 {
			c.cfg.DBPort = port
			return nil
		}
		c.source.Warn(fmt.Sprintf("invalid port %q: enter a number between 1 and 65535", raw))
	}
}
