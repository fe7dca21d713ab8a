// Package llm is the completion client behind `devlog draft`. It speaks
// to Anthropic, OpenAI, Google, and OpenAI-compatible local servers over
// plain HTTP; the provider is usually inferred from the model name so
// users can just say --model haiku or --model gpt-5-mini.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/jralston/devlog/internal/output"
)

// Provider identifies an LLM provider.
type Provider string

// Supported LLM providers.
const (
	ProviderAnthropic Provider = "anthropic"
	ProviderOpenAI    Provider = "openai"
	ProviderGoogle    Provider = "google"
	ProviderLocal     Provider = "local"
)

// Request represents an LLM completion request.
type Request struct {
	System      string  // system prompt
	Prompt      string  // user prompt
	Temperature float64 // 0 uses the provider default
	MaxTokens   int     // 0 uses the provider default
}

// Response represents an LLM completion response.
type Response struct {
	Content string // generated content
	Model   string // model used
}

// HTTPDoer defines the HTTP operations required by Client.
// It allows injecting test doubles.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client is a provider-agnostic LLM client.
type Client struct {
	provider   Provider
	model      string
	apiKey     string
	httpClient HTTPDoer
}

// New builds a client for the given model. When provider is empty it is
// derived from the model name, first from an explicit prefix ("local-qwen"),
// then from well-known substrings ("gpt" means openai). Aliases like
// "haiku" expand to full model identifiers last.
func New(model string, provider Provider) (*Client, error) {
	if provider == "" {
		provider, model = parseProviderPrefix(model)
	}
	if provider == "" {
		provider = inferProvider(model)
	}

	model = resolveModelAlias(model, provider)

	apiKey, err := getAPIKey(provider)
	if err != nil {
		return nil, err
	}

	return &Client{
		provider: provider,
		model:    model,
		apiKey:   apiKey,
		httpClient: &http.Client{
			Timeout: 5 * time.Minute,
		},
	}, nil
}

// Complete generates a completion for the given request.
func (c *Client) Complete(ctx context.Context, req Request) (*Response, error) {
	switch c.provider {
	case ProviderAnthropic:
		return c.completeAnthropic(ctx, req)
	case ProviderOpenAI:
		return c.completeOpenAI(ctx, req)
	case ProviderGoogle:
		return c.completeGoogle(ctx, req)
	case ProviderLocal:
		return c.completeLocal(ctx, req)
	default:
		return nil, output.NewUserError(fmt.Sprintf("unsupported provider %q: expected one of %s",
			c.provider, strings.Join(SupportedProviders(), ", ")))
	}
}

// parseProviderPrefix strips a recognized provider prefix off the model
// name, so "local-qwen" forces qwen onto the local server. No prefix
// means no opinion; inference takes over.
func parseProviderPrefix(model string) (Provider, string) {
	prefixes := []struct {
		prefix   string
		provider Provider
	}{
		{"anthropic-", ProviderAnthropic},
		{"claude-", ProviderAnthropic},
		{"google-", ProviderGoogle},
		{"gemini-", ProviderGoogle},
		{"openai-", ProviderOpenAI},
		{"local-", ProviderLocal},
	}
	lower := strings.ToLower(model)
	for _, p := range prefixes {
		if strings.HasPrefix(lower, p.prefix) {
			return p.provider, model[len(p.prefix):]
		}
	}
	return "", model
}

// inferProvider guesses the provider from well-known name fragments.
// Cloud families are checked before the local catch-alls, and anything
// unrecognized defaults to anthropic.
func inferProvider(model string) Provider {
	lower := strings.ToLower(model)
	contains := func(fragments ...string) bool {
		for _, f := range fragments {
			if strings.Contains(lower, f) {
				return true
			}
		}
		return false
	}

	switch {
	case contains("claude", "haiku", "sonnet", "opus"):
		return ProviderAnthropic
	case contains("gpt", "nano", "o1", "o3", "o4"):
		return ProviderOpenAI
	case contains("gemini", "flash"):
		return ProviderGoogle
	case contains("local", "qwen", "llama", "mistral", "phi"):
		return ProviderLocal
	}
	return ProviderAnthropic
}

// resolveModelAlias expands shorthands like "haiku" or "flash" to full
// model identifiers. Unlisted names pass through untouched, so pinned
// versions keep working.
func resolveModelAlias(model string, provider Provider) string {
	switch alias := strings.ToLower(model); provider {
	case ProviderAnthropic:
		switch alias {
		case "haiku":
			return "claude-haiku-4-5-20251001"
		case "sonnet":
			return "claude-sonnet-4-5-20250929"
		}
	case ProviderOpenAI:
		switch alias {
		case "nano":
			return "gpt-5-nano"
		case "mini":
			return "gpt-5-mini"
		}
	case ProviderGoogle:
		switch alias {
		case "flash":
			return "gemini-2.5-flash"
		case "pro":
			return "gemini-2.5-pro"
		}
	case ProviderLocal:
		if alias == "local" {
			return "default"
		}
	}
	return model
}

// keyEnvVar names the API key environment variable for a cloud provider.
// Local servers take no key.
func keyEnvVar(provider Provider) (string, bool) {
	switch provider {
	case ProviderAnthropic:
		return "ANTHROPIC_API_KEY", true
	case ProviderOpenAI:
		return "OPENAI_API_KEY", true
	case ProviderGoogle:
		return "GOOGLE_API_KEY", true
	case ProviderLocal:
		return "", true
	}
	return "", false
}

func getAPIKey(provider Provider) (string, error) {
	envVar, ok := keyEnvVar(provider)
	if !ok {
		return "", output.NewUserError(fmt.Sprintf("unsupported provider: %s", provider))
	}
	if envVar == "" {
		return "not-needed", nil
	}
	key := os.Getenv(envVar)
	if key == "" {
		return "", output.NewUserError(envVar + " environment variable not set")
	}
	return key, nil
}

// LocalServerURL returns the base URL for the local server, taken from
// LOCAL_LLM_URL or falling back to LM Studio's default port.
func LocalServerURL() string {
	if url := os.Getenv("LOCAL_LLM_URL"); url != "" {
		return url
	}
	return "http://localhost:1234/v1"
}

// doRequest POSTs a JSON body and returns the raw response body.
// All providers share this path so error handling stays in one place.
func (c *Client) doRequest(ctx context.Context, url string, body any, headers map[string]string) ([]byte, error) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, output.NewSystemErrorWithCause("failed to marshal request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, output.NewSystemErrorWithCause("failed to create request", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		httpReq.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, output.NewSystemErrorWithCause("request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, output.NewSystemErrorWithCause("failed to read response", err)
	}

	if resp.StatusCode != http.StatusOK {
		// Truncate the error body; it can echo request content.
		errBody := string(respBody)
		if len(errBody) > 500 {
			errBody = errBody[:500]
		}
		return nil, output.NewSystemError(fmt.Sprintf("API error (status %d): %s", resp.StatusCode, errBody))
	}

	return respBody, nil
}

// SupportedProviders lists the provider names accepted by --provider.
func SupportedProviders() []string {
	return []string{
		string(ProviderAnthropic),
		string(ProviderOpenAI),
		string(ProviderGoogle),
		string(ProviderLocal),
	}
}

// APIKeyEnvVars lists the key variables doctor checks for.
func APIKeyEnvVars() []string {
	var vars []string
	for _, p := range []Provider{ProviderAnthropic, ProviderOpenAI, ProviderGoogle} {
		if v, ok := keyEnvVar(p); ok && v != "" {
			vars = append(vars, v)
		}
	}
	return vars
}
