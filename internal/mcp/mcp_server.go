// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/ctexpand/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the ctexpand MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Contingency Table Expander",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: list_datasets ---
	s.AddTool(mcp.NewTool("list_datasets",
		mcp.WithDescription("List the builtin summarized count tables with their attributes and population size."),
	), h.handleListDatasets)

	// --- 2. Tool: expand_table ---
	s.AddTool(mcp.NewTool("expand_table",
		mcp.WithDescription("Expand a summarized count table into one row per unit and verify the round trip."),
		mcp.WithString("dataset", mcp.Description("Builtin dataset name or path to a summarized CSV. Defaults to the configured source.")),
		mcp.WithString("freq_column", mcp.Description("Name of the count column in a summarized CSV.")),
		mcp.WithString("rename", mcp.Description("Attribute relabel in the form Old=New. Use 'none' to disable.")),
		mcp.WithNumber("limit", mcp.Description("Number of expanded rows to include in the preview.")),
	), h.handleExpandTable)

	// --- 3. Tool: verify_table ---
	s.AddTool(mcp.NewTool("verify_table",
		mcp.WithDescription("Re-aggregate an expanded table and compare it against the summarized counts."),
		mcp.WithString("dataset", mcp.Description("Builtin dataset name or path to a summarized CSV.")),
		mcp.WithString("freq_column", mcp.Description("Name of the count column in a summarized CSV.")),
		mcp.WithString("input", mcp.Description("Path to a persisted expanded CSV. Omit to verify a fresh expansion.")),
		mcp.WithString("rename", mcp.Description("Relabel applied when the file was written, in the form Old=New.")),
	), h.handleVerifyTable)

	return s
}

// StartMCPServer starts the ctexpand MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
