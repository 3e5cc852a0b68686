package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/ctexpand/core"
	"github.com/huangsam/ctexpand/internal/contract"
	"github.com/huangsam/ctexpand/internal/dataset"
	"github.com/huangsam/ctexpand/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// disableRename is the rename argument that turns relabeling off.
const disableRename = "none"

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

// datasetInfo describes one builtin dataset.
type datasetInfo struct {
	Name         string   `json:"name"`
	Attributes   []string `json:"attributes"`
	Combinations int      `json:"combinations"`
	Total        int      `json:"total"`
}

// expandSummary is the expand_table response.
type expandSummary struct {
	Source     string                 `json:"source"`
	Attributes []string               `json:"attributes"`
	TotalRows  int                    `json:"total_rows"`
	Renamed    []string               `json:"renamed,omitempty"`
	Preview    [][]string             `json:"preview"`
	Marginals  []schema.MarginalTotal `json:"marginals"`
	Report     schema.VerifyReport    `json:"report"`
}

func (h *toolHandler) handleListDatasets(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var infos []datasetInfo
	for _, name := range dataset.Names() {
		table, ok := dataset.Builtin(name)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("failed to load %s", name)), nil
		}
		infos = append(infos, datasetInfo{
			Name:         name,
			Attributes:   table.Attributes,
			Combinations: len(table.Records),
			Total:        table.Total(),
		})
	}

	jsonData, _ := json.MarshalIndent(infos, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleExpandTable(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configFor(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.Limit = min(l, contract.MaxPreviewLimit)
	}

	result, err := core.GetExpandResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("expansion failed: %v", err)), nil
	}

	summary := expandSummary{
		Source:     result.Source,
		Attributes: result.Expanded.Attributes,
		TotalRows:  result.Expanded.Len(),
		Preview:    result.Expanded.Rows[:min(cfg.Limit, result.Expanded.Len())],
		Marginals:  result.Summarized.MarginalTotals(),
		Report:     result.Report,
	}
	if result.Renamed[0] != "" {
		summary.Renamed = result.Renamed[:]
	}

	jsonData, _ := json.MarshalIndent(summary, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleVerifyTable(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configFor(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	report, err := core.GetVerifyReport(core.WithSuppressHeader(ctx), cfg, request.GetString("input", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("verification failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

// configFor applies the common tool arguments to a copy of the base config.
func (h *toolHandler) configFor(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()
	if d := request.GetString("dataset", ""); d != "" {
		cfg.Source = d
	}
	if f := request.GetString("freq_column", ""); f != "" {
		cfg.FreqColumn = f
	}
	switch r := request.GetString("rename", ""); r {
	case "":
	case disableRename:
		cfg.RenameFrom, cfg.RenameTo = "", ""
		cfg.RenameIfPresent = false
	default:
		from, to, err := contract.ParseRename(r)
		if err != nil {
			return nil, err
		}
		cfg.RenameFrom, cfg.RenameTo = from, to
		cfg.RenameIfPresent = false
	}
	if cfg.Limit <= 0 {
		cfg.Limit = contract.DefaultPreviewLimit
	}
	return cfg, nil
}
