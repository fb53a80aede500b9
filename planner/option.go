package planner

import (
	"github.com/bububa/instructor-go/pkg/instructor"
	openai "github.com/sashabaranov/go-openai"

	"github.com/bububa/travel-agent/components"
	"github.com/bububa/travel-agent/components/systemprompt"
	"github.com/bububa/travel-agent/tools"
)

type Option func(p *Planner)

// WithClient set planner chat completion client
func WithClient(clt *openai.Client) Option {
	return func(p *Planner) {
		p.client = clt
	}
}

// WithModel set planner model name
func WithModel(model string) Option {
	return func(p *Planner) {
		p.model = model
	}
}

// WithTemperature set planner temperature
func WithTemperature(temperature float32) Option {
	return func(p *Planner) {
		p.temperature = temperature
	}
}

// WithMaxSteps set the tool loop step limit
func WithMaxSteps(maxSteps int) Option {
	return func(p *Planner) {
		if maxSteps > 0 {
			p.maxSteps = maxSteps
		}
	}
}

// WithTools register provider tools with the planner
func WithTools(fns ...*tools.Function) Option {
	return func(p *Planner) {
		p.tools = append(p.tools, fns...)
	}
}

// WithMemory set planner conversation memory
func WithMemory(m *components.Memory) Option {
	return func(p *Planner) {
		p.memory = m
	}
}

// WithSystemPromptGenerator set planner system prompt generator
func WithSystemPromptGenerator(g systemprompt.Generator) Option {
	return func(p *Planner) {
		p.systemPromptGenerator = g
	}
}

// WithExtractorClient set the structured-output client used as a
// fallback when the final answer does not decode as an itinerary
func WithExtractorClient(clt instructor.Instructor) Option {
	return func(p *Planner) {
		p.extractorClient = clt
	}
}
