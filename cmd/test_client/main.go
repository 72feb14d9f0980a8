package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/fatih/color"
	mcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	defaultEndpoint = "http://localhost:8080/mcp/stream"
	auditURI        = "audit://lemonsqueezy-operations"
)

var (
	pass = color.New(color.FgGreen).SprintFunc()
	fail = color.New(color.FgRed).SprintFunc()
	head = color.New(color.FgCyan, color.Bold).SprintFunc()
)

// Connects over streamable HTTP (MCP_ENDPOINT), or spawns MCP_SERVER_CMD over stdio.
func main() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "lemonsqueezy-mcp-test-client",
		Version: "0.2.0",
	}, nil)

	session, err := client.Connect(ctx, transport(), nil)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer func() { _ = session.Close() }()

	log.Printf("Connected to server (session ID: %s)\n", session.ID())

	failed := 0
	failed += testListTools(ctx, session)
	failed += testCall(ctx, session, "get_user", map[string]any{})
	failed += testCall(ctx, session, "list_stores", map[string]any{})
	if storeID := os.Getenv("TEST_STORE_ID"); storeID != "" {
		failed += testCall(ctx, session, "get_store", map[string]any{"store_id": storeID})
		failed += testCall(ctx, session, "list_webhooks", map[string]any{"store_id": storeID})
	}
	failed += testAuditLog(ctx, session)

	if failed > 0 {
		fmt.Printf("\n%s %d test(s) failed\n", fail("FAIL"), failed)
		os.Exit(1)
	}
	fmt.Printf("\n%s all tests completed\n", pass("PASS"))
}

func transport() mcp.Transport {
	if cmdline := os.Getenv("MCP_SERVER_CMD"); cmdline != "" {
		parts := strings.Fields(cmdline)
		cmd := exec.Command(parts[0], parts[1:]...)
		cmd.Env = append(os.Environ(), "MCP_TRANSPORT=stdio")
		cmd.Stderr = os.Stderr
		return &mcp.CommandTransport{Command: cmd}
	}

	endpoint := os.Getenv("MCP_ENDPOINT")
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	return &mcp.StreamableClientTransport{Endpoint: endpoint}
}

func testListTools(ctx context.Context, session *mcp.ClientSession) int {
	fmt.Println(head("\nTEST: tools/list"))

	res, err := session.ListTools(ctx, &mcp.ListToolsParams{})
	if err != nil {
		fmt.Printf("%s tools/list: %v\n", fail("✗"), err)
		return 1
	}

	for _, t := range res.Tools {
		fmt.Printf("  - %s: %s\n", t.Name, t.Description)
	}
	fmt.Printf("%s tools/list returned %d tools\n", pass("✓"), len(res.Tools))
	return 0
}

func testCall(ctx context.Context, session *mcp.ClientSession, name string, args map[string]any) int {
	fmt.Println(head("\nTEST: " + name))

	res, err := session.CallTool(ctx, &mcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		fmt.Printf("%s %s: %v\n", fail("✗"), name, err)
		return 1
	}

	printResult(res)
	if res.IsError {
		fmt.Printf("%s %s returned a tool error\n", fail("✗"), name)
		return 1
	}
	fmt.Printf("%s %s passed\n", pass("✓"), name)
	return 0
}

func testAuditLog(ctx context.Context, session *mcp.ClientSession) int {
	fmt.Println(head("\nTEST: resources/read " + auditURI))

	res, err := session.ReadResource(ctx, &mcp.ReadResourceParams{URI: auditURI})
	if err != nil {
		fmt.Printf("%s audit log: %v\n", fail("✗"), err)
		return 1
	}

	for _, c := range res.Contents {
		fmt.Println(c.Text)
	}
	fmt.Printf("%s audit log read\n", pass("✓"))
	return 0
}

func printResult(res *mcp.CallToolResult) {
	for _, c := range res.Content {
		if txt, ok := c.(*mcp.TextContent); ok {
			fmt.Println(txt.Text)
		}
	}
}
