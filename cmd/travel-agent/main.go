package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bububa/instructor-go/pkg/instructor"
	openai "github.com/sashabaranov/go-openai"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/bububa/travel-agent/apify"
	"github.com/bububa/travel-agent/components"
	"github.com/bububa/travel-agent/itinerary"
	"github.com/bububa/travel-agent/planner"
	"github.com/bububa/travel-agent/tools"
	"github.com/bububa/travel-agent/tools/airbnb"
	"github.com/bububa/travel-agent/tools/booking"
	"github.com/bububa/travel-agent/tools/flights"
	"github.com/bububa/travel-agent/tools/webpage"
	"github.com/bububa/travel-agent/tools/websearch"
)

const inputKey = "INPUT"

type config struct {
	ApifyToken    string
	OpenAIKey     string
	OpenAIBaseURL string
	Model         string
	Temperature   float64
	MaxSteps      int
	RunID         string
	DatasetID     string
	StoreID       string
}

func loadConfig() *config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	v.SetDefault("OPENAI_TEMPERATURE", 0)
	v.SetDefault("MAX_STEPS", planner.DefaultMaxSteps)
	for _, key := range []string{
		"APIFY_TOKEN", "OPENAI_API_KEY", "OPENAI_BASE_URL", "OPENAI_MODEL",
		"OPENAI_TEMPERATURE", "MAX_STEPS", "ACTOR_RUN_ID",
		"ACTOR_DEFAULT_DATASET_ID", "ACTOR_DEFAULT_KEY_VALUE_STORE_ID",
	} {
		v.BindEnv(key)
	}
	return &config{
		ApifyToken:    v.GetString("APIFY_TOKEN"),
		OpenAIKey:     v.GetString("OPENAI_API_KEY"),
		OpenAIBaseURL: v.GetString("OPENAI_BASE_URL"),
		Model:         v.GetString("OPENAI_MODEL"),
		Temperature:   v.GetFloat64("OPENAI_TEMPERATURE"),
		MaxSteps:      v.GetInt("MAX_STEPS"),
		RunID:         v.GetString("ACTOR_RUN_ID"),
		DatasetID:     v.GetString("ACTOR_DEFAULT_DATASET_ID"),
		StoreID:       v.GetString("ACTOR_DEFAULT_KEY_VALUE_STORE_ID"),
	}
}

type actorInput struct {
	TravelRequest string `json:"travelRequest"`
	OpenAIApiKey  string `json:"OPENAI_API_KEY,omitempty"`
}

// loadInput resolves the request from the first CLI argument, the run's
// key-value store, or stdin, in that order.
func loadInput(ctx context.Context, client *apify.Client, cfg *config) (*actorInput, error) {
	input := new(actorInput)
	if len(os.Args) > 1 {
		bs, err := os.ReadFile(os.Args[1])
		if err != nil {
			return nil, fmt.Errorf("read input file: %w", err)
		}
		if err := json.Unmarshal(bs, input); err != nil {
			return nil, fmt.Errorf("decode input file: %w", err)
		}
		return input, nil
	}
	if cfg.StoreID != "" {
		if err := client.GetValue(ctx, inputKey, input); err != nil {
			return nil, fmt.Errorf("read input record: %w", err)
		}
		return input, nil
	}
	bs, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	if err := json.Unmarshal(bs, input); err != nil {
		// plain-text requests are accepted on stdin
		input.TravelRequest = strings.TrimSpace(string(bs))
	}
	return input, nil
}

func newOpenAIClient(cfg *config) *openai.Client {
	clientCfg := openai.DefaultConfig(cfg.OpenAIKey)
	if cfg.OpenAIBaseURL != "" {
		clientCfg.BaseURL = cfg.OpenAIBaseURL
	}
	return openai.NewClientWithConfig(clientCfg)
}

// bindHooks attaches structured logging to a provider tool.
func bindHooks(t tools.ITool, logger *zap.Logger) {
	t.SetStartHook(func(_ context.Context, tool tools.ITool, input any) {
		logger.Info("tool start", zap.String("tool", tool.Title()), zap.Any("input", input))
	})
	t.SetEndHook(func(_ context.Context, tool tools.ITool, _ any, _ any) {
		logger.Info("tool end", zap.String("tool", tool.Title()))
	})
	t.SetErrorHook(func(_ context.Context, tool tools.ITool, _ any, err error) {
		logger.Warn("tool failed", zap.String("tool", tool.Title()), zap.Error(err))
	})
}

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()
	if err := run(context.Background(), logger); err != nil {
		logger.Fatal("run failed", zap.Error(err))
	}
}

func run(ctx context.Context, logger *zap.Logger) error {
	cfg := loadConfig()
	if cfg.ApifyToken == "" {
		return errors.New("APIFY_TOKEN is required")
	}
	client := apify.NewClient(
		apify.WithToken(cfg.ApifyToken),
		apify.WithRunID(cfg.RunID),
		apify.WithDatasetID(cfg.DatasetID),
		apify.WithStoreID(cfg.StoreID),
	)
	if err := client.Charge(ctx, "init", 1); err != nil {
		logger.Warn("charge failed", zap.String("event", "init"), zap.Error(err))
	}

	input, err := loadInput(ctx, client, cfg)
	if err != nil {
		return err
	}
	if input.TravelRequest == "" {
		return errors.New("travelRequest is required")
	}
	// requests running on the platform key are metered per input length
	meteredLLM := input.OpenAIApiKey == ""
	if input.OpenAIApiKey != "" {
		cfg.OpenAIKey = input.OpenAIApiKey
	}
	if cfg.OpenAIKey == "" {
		return errors.New("OPENAI_API_KEY is required")
	}
	if meteredLLM {
		if err := client.Charge(ctx, "llm-input", len(input.TravelRequest)); err != nil {
			logger.Warn("charge failed", zap.String("event", "llm-input"), zap.Error(err))
		}
	}

	bookingTool := booking.New(client)
	airbnbTool := airbnb.New(client)
	flightsTool := flights.New(client)
	websearchTool := websearch.New(client)
	webpageTool := webpage.New()
	for _, t := range []tools.ITool{bookingTool, airbnbTool, flightsTool, websearchTool, webpageTool} {
		bindHooks(t, logger)
	}

	openaiClient := newOpenAIClient(cfg)
	extractorClient := instructor.FromOpenAI(
		openaiClient,
		instructor.WithMode(instructor.ModeJSON),
		instructor.WithMaxRetries(3),
		instructor.WithValidation(),
	)
	p := planner.New(
		planner.WithClient(openaiClient),
		planner.WithExtractorClient(extractorClient),
		planner.WithModel(cfg.Model),
		planner.WithTemperature(float32(cfg.Temperature)),
		planner.WithMaxSteps(cfg.MaxSteps),
		planner.WithTools(
			tools.NewFunction[flights.Input, flights.Output](flightsTool),
			tools.NewFunction[booking.Input, booking.Output](bookingTool),
			tools.NewFunction[airbnb.Input, airbnb.Output](airbnbTool),
			tools.NewFunction[websearch.Input, websearch.Output](websearchTool),
			tools.NewFunction[webpage.Input, webpage.Output](webpageTool),
		),
	)

	logger.Info("planning itinerary", zap.String("model", cfg.Model), zap.Int("max_steps", cfg.MaxSteps))
	var apiResp components.ApiResponse
	it, err := p.Plan(ctx, input.TravelRequest, &apiResp)
	if err != nil {
		if cfg.DatasetID != "" {
			if pushErr := client.PushData(ctx, map[string]string{"error": err.Error()}); pushErr != nil {
				logger.Warn("push error record failed", zap.Error(pushErr))
			}
		}
		return err
	}
	if usage := apiResp.Usage; usage != nil {
		logger.Info("planning done",
			zap.Int("input_tokens", usage.InputTokens),
			zap.Int("output_tokens", usage.OutputTokens),
		)
	}

	listings := len(it.Accommodations) + len(it.Flights)
	if err := client.Charge(ctx, "listings-output", listings); err != nil {
		logger.Warn("charge failed", zap.String("event", "listings-output"), zap.Error(err))
	}
	if cfg.DatasetID == "" {
		// local run without the platform stores, print the result
		fmt.Println(it.String())
	} else if err := client.PushData(ctx, it); err != nil {
		return fmt.Errorf("push itinerary: %w", err)
	}
	if cfg.StoreID != "" {
		if err := client.SetValue(ctx, "itinerary.html", "text/html", []byte(itinerary.HTML(it))); err != nil {
			return fmt.Errorf("store html rendering: %w", err)
		}
		if err := client.SetValue(ctx, "itinerary.md", "text/markdown", []byte(itinerary.Markdown(it))); err != nil {
			return fmt.Errorf("store markdown rendering: %w", err)
		}
	}
	logger.Info("itinerary stored",
		zap.Int("accommodations", len(it.Accommodations)),
		zap.Int("flights", len(it.Flights)),
		zap.Int("attractions", len(it.Attractions)),
	)
	return nil
}
