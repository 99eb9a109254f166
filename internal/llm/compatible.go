package llm

import "fmt"

const (
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

	// DashScope's OpenAI-compatible mode serves the Qwen family.
	defaultDashScopeBaseURL = "https://dashscope.aliyuncs.com/compatible-mode/v1"
)

// qwenModels maps friendly names to DashScope model IDs.
var qwenModels = map[string]string{
	"qwen":       "qwen-plus",
	"qwen-turbo": "qwen-turbo",
	"qwen3":      "qwen3-235b-a22b",
}

// NewOpenRouterProvider creates a provider targeting the OpenRouter API.
// Model IDs are passed through unchanged ("vendor/model").
func NewOpenRouterProvider(cfg CompatibleConfig) (*OpenAIProvider, error) {
	return newCompatibleProvider("openrouter", cfg, defaultOpenRouterBaseURL, nil)
}

// NewDashScopeProvider creates a provider targeting Alibaba DashScope.
func NewDashScopeProvider(cfg CompatibleConfig) (*OpenAIProvider, error) {
	return newCompatibleProvider("dashscope", cfg, defaultDashScopeBaseURL, qwenModels)
}

// newCompatibleProvider builds an OpenAIProvider against an OpenAI-compatible
// endpoint. Compatible vendors accept json_object but not strict
// json_schema output, so structured requests fall back to local validation.
func newCompatibleProvider(vendor string, cfg CompatibleConfig, defaultBaseURL string, models map[string]string) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%s API key is required", vendor)
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("%s model is required", vendor)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return newOpenAIClient(cfg.APIKey, baseURL, resolveModel(cfg.Model, models)), nil
}
