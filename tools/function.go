package tools

import (
	"context"
	"encoding/json"
	"fmt"

	validator "github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	openai "github.com/sashabaranov/go-openai"

	"github.com/bububa/travel-agent/schema"
)

// EmptyResult is what a failed tool call yields: an empty listing set.
// A failed data source contributes no evidence instead of aborting the
// whole request.
const EmptyResult = "[]"

var validate = validator.New()

// Function is the language-model facing adapter of a tool: a name, a
// description, a parameters schema reflected from the tool's query
// type, and a Call that never fails across the tool boundary.
type Function struct {
	tool       ITool
	parameters *jsonschema.Schema
	run        func(context.Context, json.RawMessage) (string, error)
}

// NewFunction wraps a typed tool into a Function.
func NewFunction[I schema.Schema, O schema.Schema](t Tool[I, O]) *Function {
	reflector := &jsonschema.Reflector{
		Anonymous:                 true,
		DoNotReference:            true,
		AllowAdditionalProperties: true,
	}
	parameters := reflector.Reflect(new(I))
	parameters.Version = ""
	return &Function{
		tool:       t,
		parameters: parameters,
		run: func(ctx context.Context, args json.RawMessage) (string, error) {
			input := new(I)
			if len(args) > 0 {
				if err := json.Unmarshal(args, input); err != nil {
					return "", fmt.Errorf("query is not valid JSON: %w", err)
				}
			}
			if err := validate.StructCtx(ctx, input); err != nil {
				return "", fmt.Errorf("invalid query: %w", err)
			}
			output, err := t.Run(ctx, input)
			if err != nil {
				return "", err
			}
			return schema.Stringify(*output), nil
		},
	}
}

func (f *Function) Name() string {
	return f.tool.Title()
}

func (f *Function) Description() string {
	return f.tool.Description()
}

func (f *Function) Parameters() *jsonschema.Schema {
	return f.parameters
}

// ToOpenAI converts the function into an openai tool definition.
func (f *Function) ToOpenAI() openai.Tool {
	return openai.Tool{
		Type: openai.ToolTypeFunction,
		Function: &openai.FunctionDefinition{
			Name:        f.tool.Title(),
			Description: f.tool.Description(),
			Parameters:  f.parameters,
		},
	}
}

// Call runs the tool with raw JSON arguments. Any failure (malformed
// query, provider error, network error) is reported to the error hook
// and converted into EmptyResult: a tool call never surfaces an error
// to the reasoning loop.
func (f *Function) Call(ctx context.Context, args json.RawMessage) string {
	if fn := f.tool.StartHook(); fn != nil {
		fn(ctx, f.tool, args)
	}
	result, err := f.run(ctx, args)
	if err != nil {
		if fn := f.tool.ErrorHook(); fn != nil {
			fn(ctx, f.tool, args, err)
		}
		return EmptyResult
	}
	if fn := f.tool.EndHook(); fn != nil {
		fn(ctx, f.tool, args, result)
	}
	return result
}
