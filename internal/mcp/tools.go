package mcp

import (
	"context"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"greenmcp/internal/models"
	"greenmcp/internal/tools"
)

type SearchChunksInput struct {
	Query string `json:"query"`
	Limit *int   `json:"limit,omitempty"`
}

type SearchWithinDocumentInput struct {
	Filename string `json:"filename"`
	Query    string `json:"query"`
	Limit    *int   `json:"limit,omitempty"`
}

type ListDocumentsInput struct{}

type SearchOutput struct {
	Results []models.QueryResult `json:"results"`
	Count   int                  `json:"count"`
}

type ListDocumentsOutput struct {
	Documents []string `json:"documents"`
	Count     int      `json:"count"`
}

func (s *Server) registerTools() error {
	searchSchema, err := inputSchema[SearchChunksInput](map[string]string{
		"query": tools.QueryParamDescription,
		"limit": tools.LimitParamDescription,
	})
	if err != nil {
		return err
	}
	withinSchema, err := inputSchema[SearchWithinDocumentInput](map[string]string{
		"filename": tools.FilenameParamDescription,
		"query":    tools.QueryParamDescription,
		"limit":    tools.LimitParamDescription,
	})
	if err != nil {
		return err
	}

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        tools.SearchChunksName,
		Description: tools.SearchChunksDescription,
		InputSchema: searchSchema,
	}, s.handleSearchChunks)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        tools.SearchWithinDocumentName,
		Description: tools.SearchWithinDocumentDescription,
		InputSchema: withinSchema,
	}, s.handleSearchWithinDocument)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        tools.ListDocumentsName,
		Description: tools.ListDocumentsDescription,
	}, s.handleListDocuments)
	return nil
}

// inputSchema infers the schema of T and attaches parameter descriptions.
func inputSchema[T any](descriptions map[string]string) (*jsonschema.Schema, error) {
	schema, err := jsonschema.For[T](nil)
	if err != nil {
		return nil, fmt.Errorf("infer input schema: %w", err)
	}
	for name, desc := range descriptions {
		prop, ok := schema.Properties[name]
		if !ok {
			return nil, fmt.Errorf("infer input schema: no property %q", name)
		}
		prop.Description = desc
	}
	return schema, nil
}

func (s *Server) handleSearchChunks(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchChunksInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	results, err := s.tools.SearchChunks(ctx, input.Query, input.Limit)
	if err != nil {
		return nil, SearchOutput{}, err
	}
	return nil, SearchOutput{Results: results, Count: len(results)}, nil
}

func (s *Server) handleSearchWithinDocument(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchWithinDocumentInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	results, err := s.tools.SearchWithinDocument(ctx, input.Filename, input.Query, input.Limit)
	if err != nil {
		return nil, SearchOutput{}, err
	}
	return nil, SearchOutput{Results: results, Count: len(results)}, nil
}

func (s *Server) handleListDocuments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListDocumentsInput,
) (*mcp.CallToolResult, ListDocumentsOutput, error) {
	names, err := s.tools.ListDocuments(ctx)
	if err != nil {
		return nil, ListDocumentsOutput{}, err
	}
	return nil, ListDocumentsOutput{Documents: names, Count: len(names)}, nil
}
