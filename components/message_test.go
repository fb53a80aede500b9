package components

import (
	"testing"

	cohere "github.com/cohere-ai/cohere-go/v2"
	anthropic "github.com/liushuangls/go-anthropic/v2"
	openai "github.com/sashabaranov/go-openai"

	"github.com/bububa/travel-agent/schema"
)

func TestMessageToOpenAI(t *testing.T) {
	msg := NewMessage(UserRole, schema.NewString("find hotels in Milan"))
	var dist openai.ChatCompletionMessage
	msg.ToOpenAI(&dist)
	if dist.Role != openai.ChatMessageRoleUser {
		t.Errorf("role = %q", dist.Role)
	}
	if dist.Content != "find hotels in Milan" {
		t.Errorf("content = %q", dist.Content)
	}
}

func TestMessageToAnthropic(t *testing.T) {
	msg := NewMessage(UserRole, schema.NewString("find hotels in Milan"))
	var dist anthropic.Message
	msg.ToAnthropic(&dist)
	if dist.Role != anthropic.RoleUser {
		t.Errorf("role = %q", dist.Role)
	}
	if len(dist.Content) != 1 || dist.Content[0].GetText() != "find hotels in Milan" {
		t.Errorf("unexpected content: %+v", dist.Content)
	}
}

func TestMessageToCohere(t *testing.T) {
	tests := []struct {
		role     MessageRole
		wantRole string
	}{
		{SystemRole, "SYSTEM"},
		{AssistantRole, "CHATBOT"},
		{UserRole, "USER"},
	}
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			var dist cohere.Message
			NewMessage(tt.role, schema.NewString("payload")).ToCohere(&dist)
			if dist.Role != tt.wantRole {
				t.Errorf("role = %q, want %q", dist.Role, tt.wantRole)
			}
			var carried *cohere.ChatMessage
			if tt.role == UserRole {
				carried = dist.User
			} else {
				carried = dist.System
			}
			if carried == nil || carried.Message != "payload" {
				t.Errorf("content not carried for role %q: %+v", tt.role, dist)
			}
		})
	}
}

func TestApiResponseFromAnthropic(t *testing.T) {
	var r ApiResponse
	r.FromAnthropic(&anthropic.MessagesResponse{
		ID:    "msg_1",
		Model: "claude-3-5-sonnet-latest",
		Usage: anthropic.MessagesUsage{InputTokens: 12, OutputTokens: 7},
	})
	if r.ID != "msg_1" || r.Role != AssistantRole || r.Model != "claude-3-5-sonnet-latest" {
		t.Errorf("unexpected response metadata: %+v", r)
	}
	if r.Usage == nil || r.Usage.InputTokens != 12 || r.Usage.OutputTokens != 7 {
		t.Errorf("unexpected usage: %+v", r.Usage)
	}
}

func TestApiResponseFromCohere(t *testing.T) {
	genID := "gen_1"
	inputTokens := 12.0
	outputTokens := 7.0
	var r ApiResponse
	r.FromCohere(&cohere.NonStreamedChatResponse{
		GenerationId: &genID,
		Meta: &cohere.ApiMeta{
			Tokens:     &cohere.ApiMetaTokens{InputTokens: &inputTokens, OutputTokens: &outputTokens},
			ApiVersion: &cohere.ApiMetaApiVersion{Version: "v1"},
		},
	})
	if r.ID != "gen_1" || r.Role != AssistantRole || r.Model != "v1" {
		t.Errorf("unexpected response metadata: %+v", r)
	}
	if r.Usage == nil || r.Usage.InputTokens != 12 || r.Usage.OutputTokens != 7 {
		t.Errorf("unexpected usage: %+v", r.Usage)
	}
}
