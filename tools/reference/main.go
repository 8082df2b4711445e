package main

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	toolrpc "inkwell/internal/modules/tools/adapter/out/rpc"

	"github.com/hashicorp/go-plugin"
)

type server struct{}

func (s *server) GetMetadata(_ context.Context, _ *toolrpc.Empty) (*toolrpc.Metadata, error) {
	return &toolrpc.Metadata{
		Name:         "reference",
		Version:      "1.0.0",
		Capabilities: []string{"command", "post_export"},
	}, nil
}

func (s *server) ListCommands(_ context.Context, _ *toolrpc.Empty) (*toolrpc.ListCommandsResponse, error) {
	return &toolrpc.ListCommandsResponse{Commands: []toolrpc.CommandDescriptor{
		{ID: "echo", Title: "Echo", Description: "Echoes provided input", Kind: "command", TimeoutMS: 2000},
		{ID: "describe-artifact", Title: "Describe Artifact", Description: "Reports facts about a downloaded export", Kind: "post_export", TimeoutMS: 2500},
	}}, nil
}

func (s *server) Execute(_ context.Context, in *toolrpc.ExecuteRequest) (*toolrpc.ExecuteResponse, error) {
	switch in.CommandID {
	case "echo":
		if strings.TrimSpace(in.InputJSON) == "" {
			return &toolrpc.ExecuteResponse{Stdout: "echo", OutputJSON: `{"echo":""}`, ExitCode: 0}, nil
		}
		return &toolrpc.ExecuteResponse{Stdout: in.InputJSON, OutputJSON: fmt.Sprintf(`{"echo":%q}`, in.InputJSON), ExitCode: 0}, nil
	case "describe-artifact":
		description := map[string]any{
			"book_id":   in.Context.BookID,
			"file":      filepath.Base(in.Context.ExportPath),
			"extension": strings.TrimPrefix(filepath.Ext(in.Context.ExportPath), "."),
		}
		raw, _ := json.Marshal(description)
		return &toolrpc.ExecuteResponse{Stdout: "artifact described", OutputJSON: string(raw), ExitCode: 0}, nil
	default:
		return nil, fmt.Errorf("unknown command: %s", in.CommandID)
	}
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: toolrpc.HandshakeConfig,
		Plugins:         toolrpc.PluginMap(&server{}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
