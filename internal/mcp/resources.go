package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// AuditResourceURI locates the audit log resource
	AuditResourceURI = "audit://lemonsqueezy-operations"

	auditResourceName = "lemonsqueezy-audit-log"
	auditResourceDesc = "Log of all Lemon Squeezy operations performed through the MCP server."
	auditMIMEType     = "text/plain"
)

// AuditRenderer produces the text served by the audit resource
type AuditRenderer interface {
	Render() string
}

func registerAuditResource(s *sdkmcp.Server, r AuditRenderer) {
	s.AddResource(&sdkmcp.Resource{
		URI:         AuditResourceURI,
		Name:        auditResourceName,
		Description: auditResourceDesc,
		MIMEType:    auditMIMEType,
	}, func(_ context.Context, _ *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
		return &sdkmcp.ReadResourceResult{
			Contents: []*sdkmcp.ResourceContents{
				{URI: AuditResourceURI, MIMEType: auditMIMEType, Text: r.Render()},
			},
		}, nil
	})
}
