package factory

import (
	"fmt"
	"time"

	"booksland-be/pkg/llm"
	"booksland-be/pkg/llm/ollama"
	"booksland-be/pkg/llm/openrouter"
)

func NewLLMProvider(providerType, modelName, ollamaBaseURL, openRouterKey string, timeout time.Duration) (llm.LLMProvider, error) {
	switch providerType {
	case "openrouter":
		return openrouter.NewOpenRouterProvider(openRouterKey, modelName, timeout), nil
	case "ollama":
		if ollamaBaseURL == "" {
			ollamaBaseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(ollamaBaseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
