package mcp

import "github.com/mark3labs/mcp-go/mcp"

// searchDeploymentsTool defines the search_deployments MCP tool.
var searchDeploymentsTool = mcp.NewTool("search_deployments",
	mcp.WithDescription("Search indexed deployment knowledge: user intents, deployment patterns, examples, API usage, and templates. Returns matching records with their full context."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Natural language search query"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of results to return (default 10)"),
	),
	mcp.WithString("category",
		mcp.Description("Restrict results to one record category"),
		mcp.Enum("intents", "patterns", "examples", "api_usage", "templates"),
	),
)

// listPatternsTool defines the list_patterns MCP tool.
var listPatternsTool = mcp.NewTool("list_patterns",
	mcp.WithDescription("List every indexed deployment pattern with its template and explanation."),
)

// getIntentActionsTool defines the get_intent_actions MCP tool.
var getIntentActionsTool = mcp.NewTool("get_intent_actions",
	mcp.WithDescription("Look up the recommended action sequence for a user intent, matched by keyword."),
	mcp.WithString("intent",
		mcp.Required(),
		mcp.Description("The user intent to look up, e.g. 'deploy a web application'"),
	),
)
