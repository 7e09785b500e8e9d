package factory

import (
	"fmt"

	"github.com/krishngohel/AIDebateTool/pkg/llm"
	"github.com/krishngohel/AIDebateTool/pkg/llm/ollama"
	"github.com/krishngohel/AIDebateTool/pkg/llm/openaicompat"
)

// NewLLMProvider builds the provider named in config.
func NewLLMProvider(providerType, modelName, baseURL, apiKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	case "openai":
		return openaicompat.NewProvider(apiKey, baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
