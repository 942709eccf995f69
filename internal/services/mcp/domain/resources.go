package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	platformi18n "github.com/louisbranch/abacus/internal/platform/i18n"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	placeValuesURI       = "abacus://place-values"
	placeValuesURIPrefix = placeValuesURI + "/"
)

// PlaceValueEntry is one rod in the place-values resource.
type PlaceValueEntry struct {
	Name      string  `json:"name"`
	LocalName string  `json:"local_name"`
	Magnitude float64 `json:"magnitude"`
	Label     string  `json:"label"`
}

// PlaceValuesPayload is the body of the place-values resource.
type PlaceValuesPayload struct {
	Locale      string            `json:"locale"`
	PlaceValues []PlaceValueEntry `json:"place_values"`
}

// PlaceValuesInput represents the MCP tool input for the place-value table.
type PlaceValuesInput struct {
	Locale string `json:"locale,omitempty" jsonschema:"optional BCP 47 locale for rod names"`
}

// PlaceValuesTool defines the MCP tool schema for the place-value table.
func PlaceValuesTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "abacus_place_values",
		Description: "Lists the rods from hundreds to hundredths with localized names",
	}
}

// PlaceValuesHandler returns a handler that lists the place-value table.
func PlaceValuesHandler() mcp.ToolHandlerFor[PlaceValuesInput, PlaceValuesPayload] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input PlaceValuesInput) (*mcp.CallToolResult, PlaceValuesPayload, error) {
		return &mcp.CallToolResult{}, placeValuesPayload(input.Locale), nil
	}
}

func placeValuesPayload(locale string) PlaceValuesPayload {
	tag := resolveLocale(locale)
	places := platformi18n.PlaceValues(tag)
	payload := PlaceValuesPayload{Locale: tag.String(), PlaceValues: make([]PlaceValueEntry, len(places))}
	for i, place := range places {
		payload.PlaceValues[i] = PlaceValueEntry{
			Name:      place.Name,
			LocalName: place.LocalName,
			Magnitude: place.Magnitude,
			Label:     place.Label,
		}
	}
	return payload
}

// PlaceValuesResource describes the rods in the default locale.
func PlaceValuesResource() *mcp.Resource {
	return &mcp.Resource{
		Name:        "place_values",
		Title:       "Place Values",
		Description: "Rods from hundreds to hundredths with their magnitudes and labels",
		MIMEType:    "application/json",
		URI:         placeValuesURI,
	}
}

// PlaceValuesResourceTemplate describes the rods in a chosen locale.
func PlaceValuesResourceTemplate() *mcp.ResourceTemplate {
	return &mcp.ResourceTemplate{
		Name:        "place_values_localized",
		Title:       "Localized Place Values",
		Description: "Place values with rod names in the requested locale",
		MIMEType:    "application/json",
		URITemplate: placeValuesURIPrefix + "{locale}",
	}
}

// PlaceValuesResourceHandler serves both the plain and localized URIs.
func PlaceValuesResourceHandler() mcp.ResourceHandler {
	return func(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if req == nil || req.Params == nil {
			return nil, fmt.Errorf("resource uri is required")
		}
		uri := req.Params.URI
		locale, err := localeFromURI(uri)
		if err != nil {
			return nil, err
		}

		data, err := json.MarshalIndent(placeValuesPayload(locale), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal place values: %w", err)
		}
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{
					URI:      uri,
					MIMEType: "application/json",
					Text:     string(data),
				},
			},
		}, nil
	}
}

// localeFromURI extracts the locale segment, or "" for the plain URI.
func localeFromURI(uri string) (string, error) {
	if uri == placeValuesURI {
		return "", nil
	}
	locale, ok := strings.CutPrefix(uri, placeValuesURIPrefix)
	if !ok || locale == "" || strings.Contains(locale, "/") {
		return "", mcp.ResourceNotFoundError(uri)
	}
	return locale, nil
}
