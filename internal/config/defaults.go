package config

const (
	defaultConfigPath     = "~/.config/lingosub/config.toml"
	projectConfigName     = "lingosub.toml"
	defaultTargetLanguage = "fr"
	defaultModel          = "gpt-3.5-turbo"
	defaultTemperature    = 0.68
	defaultMaxTokens      = 1000
	defaultConcurrency    = 4
	defaultOutputPrefix   = "translated_"
	defaultLLMBaseURL     = "https://api.openai.com/v1"
	defaultLLMTimeout     = 120
	defaultRetryAttempts  = 3
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Translation: Translation{
			TargetLanguage: defaultTargetLanguage,
			Model:          defaultModel,
			Temperature:    defaultTemperature,
			MaxTokens:      defaultMaxTokens,
			Concurrency:    defaultConcurrency,
			OutputPrefix:   defaultOutputPrefix,
		},
		LLM: LLM{
			BaseURL:        defaultLLMBaseURL,
			TimeoutSeconds: defaultLLMTimeout,
			RetryAttempts:  defaultRetryAttempts,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
