// ABOUTME: Operator CLI for the MCP adapters.
// ABOUTME: Lists the tool catalog, calls tools, and checks server health.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
)

type jsonRPCRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

type jsonRPCResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *jsonRPCError   `json:"error,omitempty"`
}

type jsonRPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type toolDefinition struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"inputSchema"`
}

type callResult struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	IsError bool `json:"isError"`
}

func main() {
	serverFlag := flag.String("server", "", "MCP server URL (overrides config)")
	tokenFlag := flag.String("token", "", "Per-request access token (overrides config)")
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		fmt.Println("Usage: bridge-admin [flags] <command>")
		fmt.Println()
		fmt.Println("Commands:")
		fmt.Println("  tools               List the server's tool catalog")
		fmt.Println("  call <name> [json]  Call a tool with JSON arguments")
		fmt.Println("  health              Check server health")
		fmt.Println()
		fmt.Println("Flags:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg, err := loadConfig(getConfigPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *serverFlag != "" {
		cfg.Server.URL = *serverFlag
	}
	if *tokenFlag != "" {
		cfg.Auth.AccessToken = *tokenFlag
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	client := &adminClient{
		baseURL: strings.TrimSuffix(cfg.Server.URL, "/"),
		token:   cfg.Auth.AccessToken,
		http:    &http.Client{Timeout: 60 * time.Second},
	}

	switch args[0] {
	case "tools":
		err = runTools(ctx, client)
	case "call":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "Usage: bridge-admin call <name> [json-arguments]")
			os.Exit(1)
		}
		arguments := "{}"
		if len(args) > 2 {
			arguments = args[2]
		}
		err = runCall(ctx, client, args[1], arguments)
	case "health":
		err = runHealth(ctx, client)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", args[0])
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type adminClient struct {
	baseURL string
	token   string
	http    *http.Client
}

// rpc sends one JSON-RPC request to the server's /mcp endpoint.
func (c *adminClient) rpc(ctx context.Context, method string, params any) (json.RawMessage, error) {
	body, err := json.Marshal(jsonRPCRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/mcp", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("x-auth-token", c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	var rpcResp jsonRPCResponse
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if rpcResp.Error != nil {
		return nil, fmt.Errorf("server error %d: %s", rpcResp.Error.Code, rpcResp.Error.Message)
	}
	return rpcResp.Result, nil
}

func runTools(ctx context.Context, client *adminClient) error {
	result, err := client.rpc(ctx, "tools/list", map[string]any{})
	if err != nil {
		return err
	}

	var listing struct {
		Tools []toolDefinition `json:"tools"`
	}
	if err := json.Unmarshal(result, &listing); err != nil {
		return fmt.Errorf("decoding tool list: %w", err)
	}

	if len(listing.Tools) == 0 {
		fmt.Println("(no tools registered)")
		return nil
	}

	bold := color.New(color.Bold)
	bold.Printf("%d tools\n\n", len(listing.Tools))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  NAME\tDESCRIPTION")
	fmt.Fprintln(w, "  ----\t-----------")
	for _, tool := range listing.Tools {
		desc := tool.Description
		if len(desc) > 72 {
			desc = desc[:69] + "..."
		}
		fmt.Fprintf(w, "  %s\t%s\n", tool.Name, desc)
	}
	return w.Flush()
}

func runCall(ctx context.Context, client *adminClient, name, arguments string) error {
	var args json.RawMessage
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return fmt.Errorf("arguments must be valid JSON: %w", err)
	}

	result, err := client.rpc(ctx, "tools/call", map[string]any{
		"name":      name,
		"arguments": args,
	})
	if err != nil {
		return err
	}

	var call callResult
	if err := json.Unmarshal(result, &call); err != nil {
		return fmt.Errorf("decoding call result: %w", err)
	}

	for _, item := range call.Content {
		if call.IsError {
			color.Red("%s", item.Text)
			continue
		}
		// Pretty-print JSON payloads, pass other text through.
		var buf bytes.Buffer
		if json.Indent(&buf, []byte(item.Text), "", "  ") == nil {
			fmt.Println(buf.String())
		} else {
			fmt.Println(item.Text)
		}
	}
	if call.IsError {
		os.Exit(1)
	}
	return nil
}

func runHealth(ctx context.Context, client *adminClient) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, client.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := client.http.Do(req)
	if err != nil {
		color.Red("UNREACHABLE (%v)", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	var health struct {
		Status string `json:"status"`
		Name   string `json:"name"`
		Tools  int    `json:"tools"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return fmt.Errorf("decoding health: %w", err)
	}

	if resp.StatusCode == http.StatusOK && health.Status == "ok" {
		color.Green("OK")
		fmt.Printf("  server: %s\n  tools:  %d\n", health.Name, health.Tools)
		return nil
	}
	color.Red("ERROR (status %d)", resp.StatusCode)
	os.Exit(1)
	return nil
}
