package models

// Options for the CLI. Field tags are picked up by humacli for flag and
// environment binding. Database options are optional: with an empty DBName
// the archive module stays disabled and the service runs fully stateless.
type Options struct {
	Debug bool   `doc:"Enable debug logging" short:"d" default:"false"`
	Host  string `doc:"Hostname to listen on" default:"localhost"`
	Port  int    `doc:"Port to listen on" short:"p" default:"8888"`

	Provider      string `doc:"LLM provider (ollama or openai)" default:"ollama"`
	OllamaURL     string `doc:"Base URL of the local Ollama runtime" default:"http://localhost:11434"`
	Model         string `doc:"Chat model (must already be pulled)" default:"llama3.2:3b"`
	EmbedModel    string `doc:"Embeddings model for the archive" default:"nomic-embed-text"`
	OpenAIBaseURL string `doc:"Base URL for the openai provider (empty for the official API)"`
	OpenAIKey     string `doc:"API key for the openai provider"`
	LLMTimeout    int    `doc:"Per-call LLM timeout in seconds" default:"300"`

	DBHost     string `doc:"Database hostname" default:"localhost"`
	DBPort     int    `doc:"Database port" default:"5432"`
	DBUser     string `doc:"Database username" default:"postgres"`
	DBPassword string `doc:"Database password" default:"password"`
	DBName     string `doc:"Database name (empty disables the analysis archive)"`

	AdminKey string `doc:"Admin API key guarding destructive archive operations"`
}
