package domain

import (
	"context"
	"strconv"
	"strings"

	"github.com/louisbranch/abacus/internal/abacus/placevalue"
	apperrors "github.com/louisbranch/abacus/internal/platform/errors"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/attribute"
)

// EncodeInput represents the MCP tool input for encoding a value.
type EncodeInput struct {
	Value float64 `json:"value" jsonschema:"value to place on the abacus; rounded half up to two decimals"`
	Cap   *int    `json:"cap,omitempty" jsonschema:"optional per-rod bead cap between 1 and 9"`
}

// EncodeResult represents the MCP tool output for an encoded value.
type EncodeResult struct {
	Counts   []int      `json:"counts" jsonschema:"bead counts from hundreds to hundredths"`
	Value    float64    `json:"value" jsonschema:"value the counts represent"`
	Dropped  float64    `json:"dropped" jsonschema:"part of the value that did not fit under the cap"`
	Overflow bool       `json:"overflow" jsonschema:"whether any part of the value was truncated"`
	Cap      int        `json:"cap" jsonschema:"per-rod cap applied"`
	Capacity float64    `json:"capacity" jsonschema:"largest value the rods hold at this cap"`
	Beads    []RodBeads `json:"beads" jsonschema:"split-rod view of the counts"`
}

// RodBeads is the split-rod view of one rod: an upper bead worth five above
// the bar and up to four lower beads worth one each.
type RodBeads struct {
	Upper bool `json:"upper" jsonschema:"whether the upper bead is at the bar"`
	Lower int  `json:"lower" jsonschema:"lower beads at the bar, 0 to 4"`
}

// DecodeInput represents the MCP tool input for decoding rod counts.
type DecodeInput struct {
	Counts []int  `json:"counts" jsonschema:"exactly five bead counts from hundreds to hundredths"`
	Locale string `json:"locale,omitempty" jsonschema:"optional BCP 47 locale for error messages"`
}

// DecodeResult represents the MCP tool output for decoded rod counts.
type DecodeResult struct {
	Value     float64 `json:"value" jsonschema:"decoded value rounded to two decimals"`
	Formatted string  `json:"formatted" jsonschema:"value with two fixed decimals"`
}

// BeadEditInput represents the MCP tool input for a single-rod edit.
type BeadEditInput struct {
	Counts    []int  `json:"counts" jsonschema:"current five bead counts"`
	Operation string `json:"operation" jsonschema:"set, increment, decrement, toggle_upper, increment_lower or decrement_lower"`
	Rod       int    `json:"rod" jsonschema:"rod index, 0 for hundreds through 4 for hundredths"`
	Count     int    `json:"count,omitempty" jsonschema:"target count for set"`
	Cap       *int   `json:"cap,omitempty" jsonschema:"optional per-rod bead cap between 1 and 9"`
	Locale    string `json:"locale,omitempty" jsonschema:"optional BCP 47 locale for error messages"`
}

// BeadEditResult represents the MCP tool output for a single-rod edit.
type BeadEditResult struct {
	Counts   []int      `json:"counts" jsonschema:"bead counts after the edit"`
	Value    float64    `json:"value" jsonschema:"value the counts represent"`
	Cap      int        `json:"cap" jsonschema:"per-rod cap applied"`
	Capacity float64    `json:"capacity" jsonschema:"largest value the rods hold at this cap"`
	Beads    []RodBeads `json:"beads" jsonschema:"split-rod view of the counts"`
}

// EncodeTool defines the MCP tool schema for encoding.
func EncodeTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "abacus_encode",
		Description: "Converts a value into bead counts per rod",
	}
}

// DecodeTool defines the MCP tool schema for decoding.
func DecodeTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "abacus_decode",
		Description: "Converts bead counts per rod back into a value",
	}
}

// BeadEditTool defines the MCP tool schema for rod edits.
func BeadEditTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "abacus_bead_edit",
		Description: "Moves beads on one rod, by flat count or on the split upper/lower view",
	}
}

// EncodeHandler returns a handler that encodes values.
func EncodeHandler(deps Deps) mcp.ToolHandlerFor[EncodeInput, EncodeResult] {
	deps = deps.withDefaults()
	return func(ctx context.Context, _ *mcp.CallToolRequest, input EncodeInput) (*mcp.CallToolResult, EncodeResult, error) {
		_, span := tracer.Start(ctx, "abacus.encode")
		defer span.End()

		maxPerRod := deps.capOrDefault(input.Cap)
		result := placevalue.EncodeDetailed(input.Value, maxPerRod)
		span.SetAttributes(
			attribute.Int("abacus.cap", maxPerRod),
			attribute.Bool("abacus.overflow", result.Overflow()),
		)
		if result.Overflow() {
			deps.Metrics.EncodeOverflowed()
		}
		return &mcp.CallToolResult{}, EncodeResult{
			Counts:   result.Counts.Slice(),
			Value:    placevalue.Decode(result.Counts),
			Dropped:  result.Dropped,
			Overflow: result.Overflow(),
			Cap:      maxPerRod,
			Capacity: placevalue.Capacity(maxPerRod),
			Beads:    splitBeads(result.Counts),
		}, nil
	}
}

// DecodeHandler returns a handler that decodes rod counts.
func DecodeHandler() mcp.ToolHandlerFor[DecodeInput, DecodeResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input DecodeInput) (*mcp.CallToolResult, DecodeResult, error) {
		_, span := tracer.Start(ctx, "abacus.decode")
		defer span.End()

		counts, err := parseCounts(input.Counts)
		if err != nil {
			return nil, DecodeResult{}, localize(err, resolveLocale(input.Locale))
		}
		value := placevalue.Decode(counts)
		return &mcp.CallToolResult{}, DecodeResult{Value: value, Formatted: placevalue.Format(value)}, nil
	}
}

// BeadEditHandler returns a handler that edits a single rod.
func BeadEditHandler(deps Deps) mcp.ToolHandlerFor[BeadEditInput, BeadEditResult] {
	deps = deps.withDefaults()
	return func(ctx context.Context, _ *mcp.CallToolRequest, input BeadEditInput) (*mcp.CallToolResult, BeadEditResult, error) {
		_, span := tracer.Start(ctx, "abacus.bead_edit")
		defer span.End()

		tag := resolveLocale(input.Locale)
		op, err := parseOperation(input.Operation)
		if err != nil {
			return nil, BeadEditResult{}, localize(err, tag)
		}
		counts, err := parseCounts(input.Counts)
		if err != nil {
			return nil, BeadEditResult{}, localize(err, tag)
		}
		maxPerRod := deps.capOrDefault(input.Cap)
		next := placevalue.Edit(counts, op, input.Rod, input.Count, maxPerRod)
		span.SetAttributes(attribute.String("abacus.operation", string(op)), attribute.Int("abacus.rod", input.Rod))
		return &mcp.CallToolResult{}, BeadEditResult{
			Counts:   next.Slice(),
			Value:    placevalue.Decode(next),
			Cap:      maxPerRod,
			Capacity: placevalue.Capacity(maxPerRod),
			Beads:    splitBeads(next),
		}, nil
	}
}

func splitBeads(counts placevalue.RodCount) []RodBeads {
	split := placevalue.Split(counts)
	out := make([]RodBeads, len(split))
	for i, bead := range split {
		out[i] = RodBeads{Upper: bead.Upper, Lower: bead.Lower}
	}
	return out
}

func parseOperation(value string) (placevalue.Operation, error) {
	op, ok := placevalue.ParseOperation(value)
	if !ok {
		return "", apperrors.WithMetadata(apperrors.CodeBeadOperationUnsupported, "unsupported bead operation",
			map[string]string{"Operation": value, "Operations": strings.Join(placevalue.OperationNames(), ", ")})
	}
	return op, nil
}

func parseCounts(values []int) (placevalue.RodCount, error) {
	counts, ok := placevalue.FromSlice(values)
	if !ok {
		return placevalue.RodCount{}, apperrors.WithMetadata(apperrors.CodeRodCountInvalidLength, "rod counts have the wrong length",
			map[string]string{"Got": strconv.Itoa(len(values))})
	}
	return counts, nil
}
