// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// BlastConfig is settings for local BLAST execution
type BlastConfig struct {
	// the name of the BLAST+ program to run (blastn, blastp, etc)
	Program string `mapstructure:"program"`

	// e-value threshold passed to each invocation
	EValue float64 `mapstructure:"evalue"`

	// worker pool cap and per-invocation -num_threads
	Threads int `mapstructure:"threads"`

	// maximum number of sequences per chunk file
	ChunkSize int `mapstructure:"chunk-size"`

	// whether to leave the chunk input/output files on disk
	KeepChunks bool `mapstructure:"keep-chunks"`
}

// KEGGConfig is settings for the KEGG REST API
type KEGGConfig struct {
	// base URL of the KEGG REST endpoints
	URL string `mapstructure:"url"`

	// request timeout in seconds
	TimeoutSeconds int `mapstructure:"timeout"`
}

// EntrezConfig is settings for NCBI Entrez E-utilities
type EntrezConfig struct {
	// base URL of the eutils endpoints
	URL string `mapstructure:"url"`

	// maximum number of PubMed results per search
	MaxResults int `mapstructure:"max-results"`

	// request timeout in seconds
	TimeoutSeconds int `mapstructure:"timeout"`
}

// ChatConfig is settings for the hosted chat-completions assistant
type ChatConfig struct {
	// base URL of the chat completions endpoint
	URL string `mapstructure:"url"`

	// the hosted model to prompt
	Model string `mapstructure:"model"`

	// name of the env variable holding the API key
	APIKeyEnv string `mapstructure:"api-key-env"`

	// request timeout in seconds
	TimeoutSeconds int `mapstructure:"timeout"`
}

// Config is the root-level settings struct and is a mix
// of settings available in settings.yaml and those
// available from the command line
type Config struct {
	// local BLAST settings
	Blast BlastConfig `mapstructure:"blast"`

	// KEGG REST settings
	KEGG KEGGConfig `mapstructure:"kegg"`

	// Entrez/PubMed settings
	Entrez EntrezConfig `mapstructure:"entrez"`

	// chat assistant settings
	Chat ChatConfig `mapstructure:"chat"`

	// directory for the on-disk response cache
	CacheDir string `mapstructure:"cache-dir"`
}

// Setup registers defaults and reads the optional settings file.
// Called once from the root command before any subcommand runs.
func Setup() {
	viper.SetDefault("blast.program", "blastn")
	viper.SetDefault("blast.evalue", 0.001)
	viper.SetDefault("blast.threads", 4)
	viper.SetDefault("blast.chunk-size", 500)
	viper.SetDefault("blast.keep-chunks", false)
	viper.SetDefault("kegg.url", "https://rest.kegg.jp")
	viper.SetDefault("kegg.timeout", 20)
	viper.SetDefault("entrez.url", "https://eutils.ncbi.nlm.nih.gov/entrez/eutils")
	viper.SetDefault("entrez.max-results", 5)
	viper.SetDefault("entrez.timeout", 15)
	viper.SetDefault("chat.url", "https://api.together.xyz/v1/chat/completions")
	viper.SetDefault("chat.model", "mistralai/Mistral-7B-Instruct-v0.2")
	viper.SetDefault("chat.api-key-env", "TOGETHER_API_KEY")
	viper.SetDefault("chat.timeout", 30)
	viper.SetDefault("cache-dir", defaultCacheDir())

	viper.SetConfigName("settings")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.helixmind")
	viper.SetEnvPrefix("helixmind")
	viper.AutomaticEnv()
	viper.ReadInConfig() // the settings file is optional
}

// New returns a new Config struct populated by Viper settings
// (either from the local settings.yaml) and/or command line arguments
func New() *Config {
	c := &Config{}

	if err := viper.Unmarshal(c); err != nil {
		log.Fatalf("unable to decode settings into struct: %v", err)
	}

	return c
}

func defaultCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "helixmind-cache")
	}
	return filepath.Join(home, ".helixmind", "cache")
}
