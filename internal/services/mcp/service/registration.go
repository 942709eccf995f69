package service

import (
	"fmt"

	"github.com/louisbranch/abacus/internal/services/mcp/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type mcpRegistrationKind int

const (
	mcpRegistrationKindTools mcpRegistrationKind = iota
	mcpRegistrationKindResources
)

const (
	mcpCodecToolsModuleName         = "codec-tools"
	mcpTaskToolsModuleName          = "task-tools"
	mcpPlaceValueResourceModuleName = "place-value-resources"
)

type mcpRegistrationModule struct {
	name     string
	kind     mcpRegistrationKind
	register func(mcpRegistrationTarget) error
}

type mcpRegistrationTarget interface {
	AddTool(*mcp.Tool, any) error
	AddResourceTemplate(*mcp.ResourceTemplate, mcp.ResourceHandler)
	AddResource(*mcp.Resource, mcp.ResourceHandler)
}

type mcpServerRegistrationAdapter struct {
	server *mcp.Server
}

func (r mcpServerRegistrationAdapter) AddTool(tool *mcp.Tool, handler any) error {
	return addMCPTool(r.server, tool, handler)
}

func (r mcpServerRegistrationAdapter) AddResourceTemplate(resourceTemplate *mcp.ResourceTemplate, handler mcp.ResourceHandler) {
	r.server.AddResourceTemplate(resourceTemplate, handler)
}

func (r mcpServerRegistrationAdapter) AddResource(resource *mcp.Resource, handler mcp.ResourceHandler) {
	r.server.AddResource(resource, handler)
}

// mcpToolRegistrar recovers the typed handler behind an any so modules can
// list heterogeneous tools in one slice.
type mcpToolRegistrar struct {
	matches func(any) bool
	add     func(*mcp.Server, *mcp.Tool, any)
}

func newMCPToolRegistrar[I any, O any]() mcpToolRegistrar {
	return mcpToolRegistrar{
		matches: func(handler any) bool {
			_, ok := handler.(mcp.ToolHandlerFor[I, O])
			return ok
		},
		add: func(server *mcp.Server, tool *mcp.Tool, handler any) {
			mcp.AddTool(server, tool, handler.(mcp.ToolHandlerFor[I, O]))
		},
	}
}

var mcpToolRegistrars = []mcpToolRegistrar{
	newMCPToolRegistrar[domain.EncodeInput, domain.EncodeResult](),
	newMCPToolRegistrar[domain.DecodeInput, domain.DecodeResult](),
	newMCPToolRegistrar[domain.BeadEditInput, domain.BeadEditResult](),
	newMCPToolRegistrar[domain.TaskInput, domain.TaskResult](),
	newMCPToolRegistrar[domain.VerifyInput, domain.VerifyResult](),
	newMCPToolRegistrar[domain.PlaceValuesInput, domain.PlaceValuesPayload](),
}

func addMCPTool(server *mcp.Server, tool *mcp.Tool, handler any) error {
	for _, registrar := range mcpToolRegistrars {
		if registrar.matches(handler) {
			registrar.add(server, tool, handler)
			return nil
		}
	}
	toolName := "<nil>"
	if tool != nil {
		toolName = tool.Name
	}
	return fmt.Errorf("mcp registration adapter does not support handler type %T for tool %q", handler, toolName)
}

func newMCPRegistrationModules(deps domain.Deps) []mcpRegistrationModule {
	return []mcpRegistrationModule{
		{
			name: mcpCodecToolsModuleName,
			kind: mcpRegistrationKindTools,
			register: func(registrar mcpRegistrationTarget) error {
				return registerTools(registrar, []toolRegistration{
					{tool: domain.EncodeTool(), handler: domain.EncodeHandler(deps)},
					{tool: domain.DecodeTool(), handler: domain.DecodeHandler()},
					{tool: domain.BeadEditTool(), handler: domain.BeadEditHandler(deps)},
				})
			},
		},
		{
			name: mcpTaskToolsModuleName,
			kind: mcpRegistrationKindTools,
			register: func(registrar mcpRegistrationTarget) error {
				return registerTools(registrar, []toolRegistration{
					{tool: domain.TaskTool(), handler: domain.TaskHandler(deps)},
					{tool: domain.VerifyTool(), handler: domain.VerifyHandler(deps)},
				})
			},
		},
		{
			name: mcpPlaceValueResourceModuleName,
			kind: mcpRegistrationKindResources,
			register: func(registrar mcpRegistrationTarget) error {
				if err := registrar.AddTool(domain.PlaceValuesTool(), domain.PlaceValuesHandler()); err != nil {
					return err
				}
				handler := domain.PlaceValuesResourceHandler()
				registrar.AddResource(domain.PlaceValuesResource(), handler)
				registrar.AddResourceTemplate(domain.PlaceValuesResourceTemplate(), handler)
				return nil
			},
		},
	}
}

type toolRegistration struct {
	tool    *mcp.Tool
	handler any
}

func registerTools(registrar mcpRegistrationTarget, registrations []toolRegistration) error {
	for _, registration := range registrations {
		if err := registrar.AddTool(registration.tool, registration.handler); err != nil {
			return err
		}
	}
	return nil
}
