package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bububa/instructor-go/pkg/instructor"
	openai "github.com/sashabaranov/go-openai"

	"github.com/bububa/travel-agent/agents"
	"github.com/bububa/travel-agent/components"
	"github.com/bububa/travel-agent/components/systemprompt"
	"github.com/bububa/travel-agent/components/systemprompt/simple"
	"github.com/bububa/travel-agent/itinerary"
	"github.com/bububa/travel-agent/schema"
	"github.com/bububa/travel-agent/tools"
)

const (
	// DefaultMaxSteps bounds the tool loop. Every chat completion
	// round-trip counts as one step.
	DefaultMaxSteps = 10
	// DefaultMaxMessages is the planner memory size
	DefaultMaxMessages = 50
)

// ErrStepLimit is returned when the tool loop runs out of steps before
// the model produces a final answer.
var ErrStepLimit = errors.New("planner: step limit exceeded without a final answer")

// Planner drives a bounded tool-call loop over the provider tools and
// decodes the model's final answer into an Itinerary. Tool failures
// never abort a run: failing tools yield empty results and the loop
// continues.
type Planner struct {
	client                *openai.Client
	extractorClient       instructor.Instructor
	memory                *components.Memory
	systemPromptGenerator systemprompt.Generator
	tools                 []*tools.Function
	model                 string
	temperature           float32
	maxSteps              int
}

// New returns a new Planner
func New(options ...Option) *Planner {
	ret := &Planner{
		maxSteps: DefaultMaxSteps,
	}
	for _, opt := range options {
		opt(ret)
	}
	if ret.memory == nil {
		ret.memory = components.NewMemory(DefaultMaxMessages)
	}
	if ret.systemPromptGenerator == nil {
		ret.systemPromptGenerator = simple.New(defaultSystemPrompt, simple.WithContextProviders(NewCurrentDateProvider()))
	}
	return ret
}

// SystemPrompt returns the rendered system prompt
func (p *Planner) SystemPrompt() string {
	return p.systemPromptGenerator.Generate()
}

// Memory returns the planner conversation memory
func (p *Planner) Memory() *components.Memory {
	return p.memory
}

func (p *Planner) lookup(name string) *tools.Function {
	for _, fn := range p.tools {
		if fn.Name() == name {
			return fn
		}
	}
	return nil
}

// Plan runs the tool loop for a single travel request and returns the
// decoded itinerary. Provider usage accumulates into apiResp when it is
// non-nil.
func (p *Planner) Plan(ctx context.Context, request string, apiResp *components.ApiResponse) (*itinerary.Itinerary, error) {
	p.memory.NewTurn()
	p.memory.NewMessage(components.UserRole, schema.NewString(request))

	messages := []openai.ChatCompletionMessage{
		{
			Role:    openai.ChatMessageRoleSystem,
			Content: p.SystemPrompt(),
		},
		{
			Role:    openai.ChatMessageRoleUser,
			Content: request,
		},
	}
	toolDefs := make([]openai.Tool, 0, len(p.tools))
	for _, fn := range p.tools {
		toolDefs = append(toolDefs, fn.ToOpenAI())
	}
	for step := 0; step < p.maxSteps; step++ {
		resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:       p.model,
			Messages:    messages,
			Tools:       toolDefs,
			Temperature: p.temperature,
		})
		if err != nil {
			return nil, fmt.Errorf("planner: chat completion: %w", err)
		}
		p.mergeUsage(apiResp, &resp)
		if len(resp.Choices) == 0 {
			return nil, errors.New("planner: chat completion returned no choices")
		}
		msg := resp.Choices[0].Message
		messages = append(messages, msg)
		if len(msg.ToolCalls) == 0 {
			return p.finalize(ctx, request, msg.Content, apiResp)
		}
		for _, call := range msg.ToolCalls {
			result := tools.EmptyResult
			if fn := p.lookup(call.Function.Name); fn != nil {
				result = fn.Call(ctx, json.RawMessage(call.Function.Arguments))
			}
			p.memory.NewMessage(components.ToolRole, schema.NewString(result))
			messages = append(messages, openai.ChatCompletionMessage{
				Role:       openai.ChatMessageRoleTool,
				Content:    result,
				ToolCallID: call.ID,
			})
		}
	}
	return nil, ErrStepLimit
}

// finalize decodes the model's final answer. When the answer does not
// decode as an itinerary the structured-output extractor takes over.
func (p *Planner) finalize(ctx context.Context, request string, content string, apiResp *components.ApiResponse) (*itinerary.Itinerary, error) {
	it, err := itinerary.NormalizeItinerary(json.RawMessage(content))
	if err == nil {
		p.memory.NewMessage(components.AssistantRole, it)
		return it, nil
	}
	if p.extractorClient == nil {
		return nil, fmt.Errorf("planner: decode final answer: %w", err)
	}
	it, extractErr := p.extract(ctx, request, content, apiResp)
	if extractErr != nil {
		return nil, fmt.Errorf("planner: decode final answer: %w", errors.Join(err, extractErr))
	}
	p.memory.NewMessage(components.AssistantRole, it)
	return it, nil
}

func (p *Planner) extract(ctx context.Context, request string, content string, apiResp *components.ApiResponse) (*itinerary.Itinerary, error) {
	extractor := agents.NewAgent[schema.String, itinerary.Itinerary](
		agents.WithClient(p.extractorClient),
		agents.WithModel(p.model),
		agents.WithMemory(components.NewMemory(DefaultMaxMessages)),
		agents.WithSystemPromptGenerator(simple.New(extractorSystemPrompt)),
		agents.WithTemperature(p.temperature),
		agents.WithName("itinerary_extractor"),
	)
	input := schema.NewString(fmt.Sprintf("Travel request:\n%s\n\nAssistant answer:\n%s", request, content))
	output := itinerary.NewItinerary()
	var extractResp components.ApiResponse
	if err := extractor.Run(ctx, &input, output, &extractResp); err != nil {
		return nil, err
	}
	if apiResp != nil && apiResp.Usage != nil {
		apiResp.Usage.Merge(extractResp.Usage)
	}
	return output, nil
}

func (p *Planner) mergeUsage(apiResp *components.ApiResponse, v *openai.ChatCompletionResponse) {
	if apiResp == nil {
		return
	}
	var stepResp components.ApiResponse
	stepResp.FromOpenAI(v)
	if apiResp.Usage == nil {
		*apiResp = stepResp
		return
	}
	usage := apiResp.Usage
	usage.Merge(stepResp.Usage)
	stepResp.Usage = usage
	*apiResp = stepResp
}
