package tools

import (
	"bytes"
	"encoding/json"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// textResult returns a text-only ToolResult
func textResult(msg string) *sdkmcp.CallToolResult {
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{
			&sdkmcp.TextContent{Text: msg},
		},
	}
}

// jsonResult renders an upstream body as indented text.
// Object bodies are also exposed as structured content.
func jsonResult(raw json.RawMessage) *sdkmcp.CallToolResult {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return textResult(string(raw))
	}

	res := textResult(buf.String())
	if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && trimmed[0] == '{' {
		res.StructuredContent = raw
	}
	return res
}

// errorResult reports a failed call through the normal response channel
func errorResult(tool string, err error) *sdkmcp.CallToolResult {
	res := textResult(fmt.Sprintf("Error executing tool %s: %v", tool, err))
	res.IsError = true
	return res
}
