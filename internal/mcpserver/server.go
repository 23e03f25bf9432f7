// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes read-only recipe tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/ladle/internal/apperr"
	"github.com/starford/ladle/internal/index"
)

// Server wraps the MCP server with Ladle tools.
type Server struct {
	mcp *server.MCPServer
	db  index.RecipeIndex
}

// New creates a new MCP server with all Ladle tools registered.
func New(db index.RecipeIndex) *Server {
	s := &Server{db: db}

	s.mcp = server.NewMCPServer(
		"Ladle",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("search_recipes",
		mcp.WithDescription("Full-text search across recipe names, descriptions, ingredients, and tags."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchRecipes)

	s.mcp.AddTool(mcp.NewTool("get_recipe",
		mcp.WithDescription("Get the full normalized record for one recipe, including ingredients and steps."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Record identifier (e.g. meat_dish/hongshaorou)")),
	), s.getRecipe)

	s.mcp.AddTool(mcp.NewTool("list_recipes",
		mcp.WithDescription("List recipes, optionally filtered by category (e.g. 荤菜, 素菜, 汤羹)."),
		mcp.WithString("category", mcp.Description("Optional category filter (empty for all)")),
	), s.listRecipes)

	s.mcp.AddTool(mcp.NewTool("get_recipe_format",
		mcp.WithDescription("Returns the Markdown conventions a recipe document must follow "+
			"to be recognized by the extraction engine. Also available as the "+
			"ladle://recipe-format resource."),
	), s.getRecipeFormat)

	// Resource: recipe document format.
	s.mcp.AddResource(
		mcp.NewResource("ladle://recipe-format", "Recipe Document Format",
			mcp.WithResourceDescription("Recognized Markdown conventions for recipe documents."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readRecipeFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) searchRecipes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := s.db.Search(query, 20)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getRecipe(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	recipe, err := s.db.GetRecipe(id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("not found: %s", id)), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(recipe, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listRecipes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	category := ""
	if c, err := req.RequireString("category"); err == nil {
		category = c
	}

	rows, _, err := s.db.ListRecipes(500, 0, category, "", "")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(rows) == 0 {
		return mcp.NewToolResultText("no recipes indexed"), nil
	}

	var lines []string
	for _, r := range rows {
		lines = append(lines, fmt.Sprintf("%s\t%s\t%s", r.ID, r.Name, r.Category))
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

func (s *Server) getRecipeFormat(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(RecipeFormatContract), nil
}

func (s *Server) readRecipeFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "ladle://recipe-format",
			MIMEType: "text/markdown",
			Text:     RecipeFormatContract,
		},
	}, nil
}
