package tools

import (
	"context"

	"github.com/bububa/travel-agent/schema"
)

// ITool is the anonymous surface of a tool: naming and lifecycle hooks.
type ITool interface {
	SetTitle(string)
	Title() string
	SetDescription(string)
	Description() string
	SetStartHook(fn func(context.Context, ITool, any))
	StartHook() func(context.Context, ITool, any)
	SetEndHook(fn func(context.Context, ITool, any, any))
	EndHook() func(context.Context, ITool, any, any)
	SetErrorHook(fn func(context.Context, ITool, any, error))
	ErrorHook() func(context.Context, ITool, any, error)
}

// Tool is a typed tool with a structured query and result.
type Tool[I schema.Schema, O schema.Schema] interface {
	ITool
	Run(context.Context, *I) (*O, error)
}
