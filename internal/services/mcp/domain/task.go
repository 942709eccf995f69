package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/louisbranch/abacus/internal/abacus/task"
	apperrors "github.com/louisbranch/abacus/internal/platform/errors"
	platformi18n "github.com/louisbranch/abacus/internal/platform/i18n"
	"github.com/louisbranch/abacus/internal/random"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/attribute"
)

// TaskInput represents the MCP tool input for generating a task.
type TaskInput struct {
	Mode   string  `json:"mode" jsonschema:"task mode (identity, addition or subtraction)"`
	Seed   *uint64 `json:"seed,omitempty" jsonschema:"optional seed for a reproducible task"`
	Locale string  `json:"locale,omitempty" jsonschema:"optional BCP 47 locale for instructions"`
}

// TaskResult represents the MCP tool output for a generated task.
type TaskResult struct {
	ID             string    `json:"id" jsonschema:"task identifier"`
	Mode           string    `json:"mode" jsonschema:"task mode"`
	Operand1       float64   `json:"operand1" jsonschema:"target value or first operand"`
	Operand2       float64   `json:"operand2" jsonschema:"second operand; zero for identity tasks"`
	ExpectedAnswer float64   `json:"expected_answer" jsonschema:"correct answer"`
	Prompt         string    `json:"prompt" jsonschema:"text shown to the learner"`
	Inputs         []float64 `json:"inputs" jsonschema:"values pre-filled on the operand abacuses"`
	Instruction    string    `json:"instruction" jsonschema:"localized heading for the task"`
	Hint           string    `json:"hint,omitempty" jsonschema:"localized hint for arithmetic tasks"`
	SeedUsed       uint64    `json:"seed_used" jsonschema:"seed value that replays this task"`
	SeedSource     string    `json:"seed_source" jsonschema:"seed source (CLIENT or SERVER)"`
}

// VerifyInput represents the MCP tool input for checking an answer.
//
// Either Expected or Mode with Seed must be supplied. The task form
// regenerates the task from its seed and wins when both are present.
type VerifyInput struct {
	Answer   float64  `json:"answer" jsonschema:"value the learner set on the answer abacus"`
	Expected *float64 `json:"expected,omitempty" jsonschema:"expected answer when not checking against a task"`
	Mode     string   `json:"mode,omitempty" jsonschema:"task mode to regenerate"`
	Seed     *uint64  `json:"seed,omitempty" jsonschema:"task seed to regenerate"`
	Locale   string   `json:"locale,omitempty" jsonschema:"optional BCP 47 locale for feedback"`
}

// VerifyResult represents the MCP tool output for an answer check.
type VerifyResult struct {
	Correct   bool    `json:"correct" jsonschema:"whether the answer is within tolerance"`
	Expected  float64 `json:"expected" jsonschema:"correct answer"`
	Submitted float64 `json:"submitted" jsonschema:"answer that was checked"`
	Message   string  `json:"message" jsonschema:"localized feedback"`
}

// TaskTool defines the MCP tool schema for task generation.
func TaskTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "abacus_new_task",
		Description: "Generates an identity, addition or subtraction practice task",
	}
}

// VerifyTool defines the MCP tool schema for answer checks.
func VerifyTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "abacus_verify",
		Description: "Checks an answer against an expected value or a seeded task",
	}
}

// TaskHandler returns a handler that generates tasks.
func TaskHandler(deps Deps) mcp.ToolHandlerFor[TaskInput, TaskResult] {
	deps = deps.withDefaults()
	return func(ctx context.Context, _ *mcp.CallToolRequest, input TaskInput) (*mcp.CallToolResult, TaskResult, error) {
		_, span := tracer.Start(ctx, "abacus.new_task")
		defer span.End()

		tag := resolveLocale(input.Locale)
		mode, err := parseMode(input.Mode)
		if err != nil {
			return nil, TaskResult{}, localize(err, tag)
		}
		seed, source, err := random.ResolveSeed(input.Seed, deps.Seeds)
		if err != nil {
			return nil, TaskResult{}, localize(err, tag)
		}
		taskID, err := deps.IDs()
		if err != nil {
			return nil, TaskResult{}, fmt.Errorf("generate task id: %w", err)
		}

		generated := task.GenerateWithSeed(mode, seed)
		generated.ID = taskID
		span.SetAttributes(attribute.String("abacus.mode", mode.String()), attribute.String("abacus.seed_source", source))
		deps.Metrics.TaskGenerated(mode.String())

		guide := platformi18n.Instruction(tag, mode)
		inputs := generated.Inputs
		if inputs == nil {
			inputs = []float64{}
		}
		return &mcp.CallToolResult{}, TaskResult{
			ID:             generated.ID,
			Mode:           generated.Mode.String(),
			Operand1:       generated.Operand1,
			Operand2:       generated.Operand2,
			ExpectedAnswer: generated.ExpectedAnswer,
			Prompt:         generated.Prompt,
			Inputs:         inputs,
			Instruction:    guide.Heading,
			Hint:           guide.Hint,
			SeedUsed:       uint64(generated.Seed),
			SeedSource:     source,
		}, nil
	}
}

// VerifyHandler returns a handler that checks answers.
func VerifyHandler(deps Deps) mcp.ToolHandlerFor[VerifyInput, VerifyResult] {
	deps = deps.withDefaults()
	return func(ctx context.Context, _ *mcp.CallToolRequest, input VerifyInput) (*mcp.CallToolResult, VerifyResult, error) {
		_, span := tracer.Start(ctx, "abacus.verify")
		defer span.End()

		tag := resolveLocale(input.Locale)
		mode := task.ModeUnspecified
		var feedback task.Feedback
		switch {
		case input.Seed != nil:
			parsed, err := parseMode(input.Mode)
			if err != nil {
				return nil, VerifyResult{}, localize(err, tag)
			}
			seed, _, err := random.ResolveSeed(input.Seed, deps.Seeds)
			if err != nil {
				return nil, VerifyResult{}, localize(err, tag)
			}
			mode = parsed
			feedback = task.Check(task.GenerateWithSeed(mode, seed), input.Answer)
		case input.Expected != nil:
			feedback = task.CheckExpected(input.Answer, *input.Expected)
		default:
			err := apperrors.WithMetadata(apperrors.CodeInvalidArgument, "expected or seed is required",
				map[string]string{"Field": "expected"})
			return nil, VerifyResult{}, localize(err, tag)
		}

		span.SetAttributes(attribute.String("abacus.mode", mode.String()), attribute.Bool("abacus.correct", feedback.Correct))
		deps.Metrics.Verified(mode.String(), feedback.Correct)
		return &mcp.CallToolResult{}, VerifyResult{
			Correct:   feedback.Correct,
			Expected:  feedback.Expected,
			Submitted: feedback.Submitted,
			Message:   platformi18n.FeedbackMessage(tag, feedback),
		}, nil
	}
}

func parseMode(value string) (task.Mode, error) {
	mode, err := task.ParseMode(value)
	if err != nil {
		return task.ModeUnspecified, apperrors.WrapWithMetadata(apperrors.CodeTaskInvalidMode, "parse task mode",
			map[string]string{"Mode": value, "Modes": strings.Join(task.ModeNames(), ", ")}, err)
	}
	return mode, nil
}
