package dto

type ToolInfo struct {
	Name         string
	Version      string
	Enabled      bool
	Binary       string
	Capabilities []string
}

type DoctorResult struct {
	Name            string
	ChecksumValid   bool
	BinaryReachable bool
	LifecycleOK     bool
	Error           string
}

type CommandInfo struct {
	ID              string
	Title           string
	Description     string
	Kind            string
	InputSchemaJSON string
	TimeoutMS       int
}

type ExecuteInput struct {
	ToolName   string
	CommandID  string
	InputJSON  string
	BookID     string
	ExportPath string
	StateDir   string
	Cwd        string
	Env        map[string]string
}

type ExecuteOutput struct {
	ToolName   string
	CommandID  string
	Stdout     string
	Stderr     string
	OutputJSON string
	ExitCode   int
}
