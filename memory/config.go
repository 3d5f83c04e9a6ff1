package memory

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

// DefaultCollection is the episodic namespace used when none is configured.
const DefaultCollection = "episodes"

// DefaultRetrieveK is the retrieval limit RetrieveSimilar applies when the
// caller passes a negative k.
const DefaultRetrieveK = 5

// Config holds System construction settings.
type Config struct {
	// Collection names the episodic namespace. Defaults to
	// DefaultCollection.
	Collection string

	// UseIndex requests the indexed similarity backend. When OpenIndex is
	// nil or fails, the System silently substitutes the fallback store;
	// index availability is a deployment concern, not a correctness one.
	UseIndex bool

	// OpenIndex constructs the indexed backend. Typically chromem.Opener or
	// qdrant.Opener.
	OpenIndex StoreOpener

	// DefaultK is the retrieval limit for RetrieveSimilar when the caller
	// passes a negative k. Defaults to DefaultRetrieveK.
	DefaultK int

	// Logger receives memory system logs. Defaults to log.Default().
	Logger *log.Logger
}

// DefaultConfig returns the local-SDK defaults: fallback backend, default
// collection and retrieval limit.
func DefaultConfig() *Config {
	return &Config{
		Collection: DefaultCollection,
		DefaultK:   DefaultRetrieveK,
	}
}

// ConfigFromEnv builds a Config from EVO_MEMORY_* environment variables:
//
//	EVO_MEMORY_COLLECTION  episodic namespace (default "episodes")
//	EVO_MEMORY_USE_INDEX   request the indexed backend ("true"/"false")
//	EVO_MEMORY_DEFAULT_K   default retrieval limit
//
// OpenIndex cannot come from the environment; wire it in code.
func ConfigFromEnv() *Config {
	v := viper.New()
	v.SetEnvPrefix("EVO_MEMORY")
	v.AutomaticEnv()
	v.SetDefault("COLLECTION", DefaultCollection)
	v.SetDefault("USE_INDEX", false)
	v.SetDefault("DEFAULT_K", DefaultRetrieveK)

	return &Config{
		Collection: v.GetString("COLLECTION"),
		UseIndex:   v.GetBool("USE_INDEX"),
		DefaultK:   v.GetInt("DEFAULT_K"),
	}
}
