package config

const (
	defaultFramesDir         = "frames"
	defaultCacheDir          = "cache"
	defaultOutputDir         = "output"
	defaultModelName         = "llama3.2-vision:11b"
	defaultModelBaseURL      = "http://localhost"
	defaultModelPort         = 11434
	defaultTemperature       = 0.2
	defaultMaxOutputTokens   = 4096
	defaultEmbeddingModel    = "nomic-embed-text"
	defaultFramesPerChunk    = 4
	defaultFrameIntervalSec  = 2
	defaultRequestDelaySec   = 8
	defaultMaxAttempts       = 5
	defaultDefaultBackoffSec = 45
	defaultPostgresHost      = "localhost"
	defaultPostgresPort      = "5432"
	defaultPostgresUser      = "sitewatch"
	defaultPostgresDBName    = "sitewatch"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			FramesDir: defaultFramesDir,
			CacheDir:  defaultCacheDir,
			OutputDir: defaultOutputDir,
		},
		Model: Model{
			Name:            defaultModelName,
			BaseURL:         defaultModelBaseURL,
			Port:            defaultModelPort,
			Temperature:     defaultTemperature,
			MaxOutputTokens: defaultMaxOutputTokens,
			EmbeddingModel:  defaultEmbeddingModel,
		},
		Pipeline: Pipeline{
			FramesPerChunk:    defaultFramesPerChunk,
			FrameIntervalSec:  defaultFrameIntervalSec,
			RequestDelaySec:   defaultRequestDelaySec,
			MaxAttempts:       defaultMaxAttempts,
			DefaultBackoffSec: defaultDefaultBackoffSec,
		},
		Postgres: Postgres{
			Host:   defaultPostgresHost,
			Port:   defaultPostgresPort,
			User:   defaultPostgresUser,
			DBName: defaultPostgresDBName,
		},
	}
}
