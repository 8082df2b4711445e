package domain

import (
	"errors"
	"fmt"
	"regexp"
)

// Capability names a tool feature the host may rely on. Tools declare their
// capabilities in the manifest and again over RPC; the manifest is
// authoritative for gating.
type Capability string

const (
	CapabilityCommand    Capability = "command"
	CapabilityPostExport Capability = "post_export"
)

var (
	ErrToolDisabled      = errors.New("tool is disabled")
	ErrChecksumMismatch  = errors.New("tool checksum mismatch")
	ErrCapabilityMissing = errors.New("tool capability missing")
	ErrCommandNotFound   = errors.New("tool command not found")
	ErrToolTimeout       = errors.New("tool timeout")
)

var sha256Pattern = regexp.MustCompile(`^[a-f0-9]{64}$`)

type Manifest struct {
	Name         string       `yaml:"name"`
	Version      string       `yaml:"version"`
	Binary       string       `yaml:"binary"`
	SHA256       string       `yaml:"sha256"`
	Enabled      bool         `yaml:"enabled"`
	Capabilities []Capability `yaml:"capabilities"`
}

func (m Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("tool name is required")
	}
	if m.Version == "" {
		return fmt.Errorf("tool version is required")
	}
	if m.Binary == "" {
		return fmt.Errorf("tool binary path is required")
	}
	if !sha256Pattern.MatchString(m.SHA256) {
		return fmt.Errorf("tool sha256 must be lowercase 64-char hex")
	}
	if len(m.Capabilities) == 0 {
		return fmt.Errorf("tool capabilities are required")
	}
	seen := map[Capability]struct{}{}
	for _, capability := range m.Capabilities {
		if err := capability.Validate(); err != nil {
			return err
		}
		if _, ok := seen[capability]; ok {
			return fmt.Errorf("duplicate capability: %s", capability)
		}
		seen[capability] = struct{}{}
	}
	return nil
}

func (c Capability) Validate() error {
	switch c {
	case CapabilityCommand, CapabilityPostExport:
		return nil
	default:
		return fmt.Errorf("unknown capability: %s", c)
	}
}

func (m Manifest) HasCapability(capability Capability) bool {
	for _, c := range m.Capabilities {
		if c == capability {
			return true
		}
	}
	return false
}

type CommandKind string

const (
	CommandKindCommand    CommandKind = "command"
	CommandKindPostExport CommandKind = "post_export"
)

func (k CommandKind) Validate() error {
	switch k {
	case CommandKindCommand, CommandKindPostExport:
		return nil
	default:
		return fmt.Errorf("unknown command kind: %s", k)
	}
}

type CommandDescriptor struct {
	ID              string
	Title           string
	Description     string
	Kind            CommandKind
	InputSchemaJSON string
	TimeoutMS       int
}

func (d CommandDescriptor) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("command id is required")
	}
	return d.Kind.Validate()
}

type Metadata struct {
	Name         string
	Version      string
	Capabilities []Capability
}

// ExecuteContext carries the host-side facts a tool may need: where local
// state lives, which book the command concerns, and for post-export commands
// the path of the downloaded artifact.
type ExecuteContext struct {
	StateDir   string
	BookID     string
	ExportPath string
	Cwd        string
	Env        map[string]string
}

func (c ExecuteContext) Validate() error {
	if c.StateDir == "" {
		return fmt.Errorf("state dir is required")
	}
	if c.Cwd == "" {
		return fmt.Errorf("cwd is required")
	}
	return nil
}

type ExecuteRequest struct {
	CommandID string
	InputJSON string
	TimeoutMS int
	Context   ExecuteContext
}

func (r ExecuteRequest) Validate() error {
	if r.CommandID == "" {
		return fmt.Errorf("command id is required")
	}
	return r.Context.Validate()
}

type ExecuteResult struct {
	Stdout     string
	Stderr     string
	OutputJSON string
	ExitCode   int
}
