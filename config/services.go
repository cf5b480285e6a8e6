package config

// AnalysisConfig contains configuration for the application analysis service.
// The service is optional; it is wired only when Enabled is true, and then
// APIKey and Endpoint must be set.
type AnalysisConfig struct {
	Enabled bool `env:"ENABLED" envDefault:"false"`

	// APIKey authenticates against the text generation endpoint.
	APIKey string `env:"API_KEY"`

	// Endpoint is the chat completions URL of the text generation service.
	Endpoint string `env:"ENDPOINT"`

	// Model selects the generation model.
	Model string `env:"MODEL" envDefault:"gpt-4o-mini"`

	// ResultPath is a JMESPath expression locating the generated text in the
	// provider response. Empty uses the service default.
	ResultPath string `env:"RESULT_PATH"`
}
