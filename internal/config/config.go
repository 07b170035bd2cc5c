package config

import (
	"fmt"
	"os"
	"runtime"
	"sync"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the environment variable consulted when Load gets an empty path.
const EnvConfigPath = "VOXMESH_CONFIG"

const (
	minChunkSize = 1
	maxChunkSize = 256
	maxWorkers   = 256
	maxRadius    = 32
)

// Settings holds meshing and generation configuration
type Settings struct {
	ChunkSize    int     `yaml:"chunk_size"`
	Strategy     string  `yaml:"strategy"`
	Workers      int     `yaml:"workers"`
	QueueSize    int     `yaml:"queue_size"`
	Generator    string  `yaml:"generator"`
	Seed         int64   `yaml:"seed"`
	Density      float64 `yaml:"density"`
	ChunksRadius int     `yaml:"chunks_radius"`
	LogLevel     string  `yaml:"log_level"`
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		ChunkSize:    16,
		Strategy:     "greedy",
		Workers:      runtime.NumCPU(),
		QueueSize:    64,
		Generator:    "heightmap",
		Seed:         1337,
		Density:      0.5,
		ChunksRadius: 2,
		LogLevel:     "info",
	}
}

var (
	mu      sync.RWMutex
	current = Defaults()
)

// Load reads a YAML settings file on top of the defaults and clamps the result.
// If path is empty, the file named by VOXMESH_CONFIG is used; with neither, defaults are returned.
func Load(path string) (*Settings, error) {
	s := Defaults()
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		return &s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	s.clamp()
	return &s, nil
}

// clamp keeps values within workable ranges
func (s *Settings) clamp() {
	s.ChunkSize = clampInt(s.ChunkSize, minChunkSize, maxChunkSize)
	if s.Workers < 1 {
		s.Workers = runtime.NumCPU()
	}
	s.Workers = clampInt(s.Workers, 1, maxWorkers)
	if s.QueueSize < 0 {
		s.QueueSize = 0
	}
	if s.Density < 0 {
		s.Density = 0
	}
	if s.Density > 1 {
		s.Density = 1
	}
	s.ChunksRadius = clampInt(s.ChunksRadius, 0, maxRadius)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Apply installs s as the current settings after clamping.
func Apply(s Settings) {
	s.clamp()
	mu.Lock()
	defer mu.Unlock()
	current = s
}

// Current returns a copy of the active settings
func Current() Settings {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// GetChunkSize returns the chunk edge length D
func GetChunkSize() int {
	mu.RLock()
	defer mu.RUnlock()
	return current.ChunkSize
}

// SetChunkSize sets the chunk edge length, clamped to [1, 256]
func SetChunkSize(size int) {
	mu.Lock()
	defer mu.Unlock()
	current.ChunkSize = clampInt(size, minChunkSize, maxChunkSize)
}

// GetStrategy returns the configured meshing strategy name
func GetStrategy() string {
	mu.RLock()
	defer mu.RUnlock()
	return current.Strategy
}

// SetStrategy sets the meshing strategy name
func SetStrategy(name string) {
	mu.Lock()
	defer mu.Unlock()
	current.Strategy = name
}

// GetWorkers returns the number of meshing workers
func GetWorkers() int {
	mu.RLock()
	defer mu.RUnlock()
	return current.Workers
}

// SetWorkers sets the number of meshing workers, clamped to [1, 256]
func SetWorkers(n int) {
	mu.Lock()
	defer mu.Unlock()
	current.Workers = clampInt(n, 1, maxWorkers)
}
