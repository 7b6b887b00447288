package server

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"StockMCP/internal/analysis"
)

// StockResourceTemplate is the URI template of the company snapshot resource.
const StockResourceTemplate = "stock://data/{ticker}"

const stockResourcePrefix = "stock://data/"

// Operations is the set of stock operations the dispatcher exposes.
type Operations interface {
	StockData(ctx context.Context, ticker, name, start, end string) analysis.StockDataResult
	PlotPrice(ctx context.Context, ticker, name, start, end string) string
	Compare(ctx context.Context, ticker1, ticker2, start, end string) analysis.ComparisonOutcome
	Snapshot(ctx context.Context, ticker string) string
}

// ToolEntry binds a tool definition to its handler.
type ToolEntry struct {
	Tool    mcp.Tool
	Handler mcpserver.ToolHandlerFunc
}

// ResourceEntry binds a resource template to its reader.
type ResourceEntry struct {
	Template mcp.ResourceTemplate
	Handler  mcpserver.ResourceTemplateHandlerFunc
}

// Registry is the fixed dispatch table built once at startup.
type Registry struct {
	Tools     []ToolEntry
	Resources []ResourceEntry
}

// NewRegistry builds the dispatch table over ops.
func NewRegistry(ops Operations) *Registry {
	return &Registry{
		Tools: []ToolEntry{
			{
				Tool: mcp.NewTool("get_stock_data",
					mcp.WithDescription("Get stock data for a specific ticker and date range"),
					tickerArg("ticker"),
					mcp.WithString("name", mcp.Required(), mcp.Description("Company name")),
					dateArg("start_date", "Start date"),
					dateArg("end_date", "End date"),
				),
				Handler: func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
					args, err := requireStrings(req, "ticker", "name", "start_date", "end_date")
					if err != nil {
						return mcp.NewToolResultError(err.Error()), nil
					}
					res := ops.StockData(ctx, args[0], args[1], args[2], args[3])
					return mcp.NewToolResultText(res.JSON()), nil
				},
			},
			{
				Tool: mcp.NewTool("plot_stock_price",
					mcp.WithDescription("Create a price chart for a stock over a date range, returned as a base64 PNG data URI"),
					tickerArg("ticker"),
					mcp.WithString("name", mcp.Required(), mcp.Description("Company name")),
					dateArg("start_date", "Start date"),
					dateArg("end_date", "End date"),
				),
				Handler: func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
					args, err := requireStrings(req, "ticker", "name", "start_date", "end_date")
					if err != nil {
						return mcp.NewToolResultError(err.Error()), nil
					}
					return mcp.NewToolResultText(ops.PlotPrice(ctx, args[0], args[1], args[2], args[3])), nil
				},
			},
			{
				Tool: mcp.NewTool("compare_stocks",
					mcp.WithDescription("Compare the performance of two stocks over the same date range"),
					tickerArg("ticker1"),
					tickerArg("ticker2"),
					dateArg("start_date", "Start date"),
					dateArg("end_date", "End date"),
				),
				Handler: func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
					args, err := requireStrings(req, "ticker1", "ticker2", "start_date", "end_date")
					if err != nil {
						return mcp.NewToolResultError(err.Error()), nil
					}
					out := ops.Compare(ctx, args[0], args[1], args[2], args[3])
					return mcp.NewToolResultText(out.JSON()), nil
				},
			},
		},
		Resources: []ResourceEntry{
			{
				Template: mcp.NewResourceTemplate(StockResourceTemplate, "Stock information",
					mcp.WithTemplateDescription("Current company profile and price for a ticker"),
					mcp.WithTemplateMIMEType("text/plain"),
				),
				Handler: func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
					uri := req.Params.URI
					ticker, ok := tickerFromURI(uri)
					text := ""
					if !ok {
						text = fmt.Sprintf("Error fetching stock resource: invalid resource uri %q", uri)
					} else {
						text = ops.Snapshot(ctx, ticker)
					}
					return []mcp.ResourceContents{
						mcp.TextResourceContents{URI: uri, MIMEType: "text/plain", Text: text},
					}, nil
				},
			},
		},
	}
}

// Lookup returns the handler registered for a tool name.
func (r *Registry) Lookup(name string) (mcpserver.ToolHandlerFunc, bool) {
	for _, e := range r.Tools {
		if e.Tool.Name == name {
			return e.Handler, true
		}
	}
	return nil, false
}

// tickerFromURI returns the first path segment after stock://data/.
func tickerFromURI(uri string) (string, bool) {
	rest, ok := strings.CutPrefix(uri, stockResourcePrefix)
	if !ok {
		return "", false
	}
	if i := strings.IndexAny(rest, "/?#"); i >= 0 {
		rest = rest[:i]
	}
	return rest, rest != ""
}

func tickerArg(name string) mcp.ToolOption {
	return mcp.WithString(name, mcp.Required(), mcp.Description("Stock ticker symbol (e.g., AAPL)"))
}

func dateArg(name, label string) mcp.ToolOption {
	return mcp.WithString(name, mcp.Required(), mcp.Description(label+" in mmddyyyy format"))
}

func requireStrings(req mcp.CallToolRequest, keys ...string) ([]string, error) {
	args := req.GetArguments()
	out := make([]string, len(keys))
	for i, k := range keys {
		v, ok := args[k].(string)
		if !ok {
			return nil, fmt.Errorf("missing required string argument: %s", k)
		}
		out[i] = v
	}
	return out, nil
}

// recoverTool protects tool handlers from panics.
func recoverTool(name string, next mcpserver.ToolHandlerFunc) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (res *mcp.CallToolResult, err error) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("[ERROR] tool %s panicked: %v", name, rec)
				res, err = mcp.NewToolResultError(fmt.Sprintf("internal error in %s", name)), nil
			}
		}()
		return next(ctx, req)
	}
}
