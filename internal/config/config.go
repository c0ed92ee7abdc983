package config

import (
    "fmt"
    "os"
    "strconv"

    yaml "github.com/goccy/go-yaml"
)

type Config struct {
    Host     string `yaml:"host"`
    Port     int    `yaml:"port"`
    FPS      int    `yaml:"fps"`
    Width    int    `yaml:"width"`
    Height   int    `yaml:"height"`
    Padding  int    `yaml:"padding"`  // row padding of the synthetic capturer, in bytes
    Rotation int    `yaml:"rotation"` // rotation hint attached to captured frames
    Quality  int    `yaml:"quality"`  // JPEG quality, 1..100
    Keep     int    `yaml:"keep"`     // snapshots kept in memory
}

// Default returns the configuration used when nothing else is given.
func Default() Config {
    return Config{
        Host:    "0.0.0.0",
        Port:    8000,
        FPS:     30,
        Width:   1280,
        Height:  720,
        Padding: 32,
        Quality: 90,
        Keep:    16,
    }
}

// Load reads a YAML file on top of the defaults.
func Load(filename string) (Config, error) {
    cfg := Default()
    b, err := os.ReadFile(filename)
    if err != nil {
        return cfg, fmt.Errorf("could not read %s: %w", filename, err)
    }
    if err := yaml.Unmarshal(b, &cfg); err != nil {
        return cfg, fmt.Errorf("could not parse %s: %w", filename, err)
    }
    return cfg, nil
}

// FromEnv overrides fields with environment variables when they are set.
func FromEnv(cfg Config) Config {
    cfg.Host = getEnv("HOST", cfg.Host)
    cfg.Port = getEnvInt("PORT", cfg.Port)
    cfg.FPS = getEnvInt("FPS", cfg.FPS)
    cfg.Width = getEnvInt("VIDEO_WIDTH", cfg.Width)
    cfg.Height = getEnvInt("VIDEO_HEIGHT", cfg.Height)
    cfg.Padding = getEnvInt("VIDEO_PADDING", cfg.Padding)
    cfg.Rotation = getEnvInt("VIDEO_ROTATION", cfg.Rotation)
    cfg.Quality = getEnvInt("JPEG_QUALITY", cfg.Quality)
    cfg.Keep = getEnvInt("SNAPSHOT_KEEP", cfg.Keep)
    return cfg
}

func (c Config) Validate() error {
    if c.Port <= 0 || c.Port > 65535 {
        return fmt.Errorf("port %d out of range", c.Port)
    }
    if c.FPS <= 0 {
        return fmt.Errorf("fps must be positive, got %d", c.FPS)
    }
    if c.Width <= 0 || c.Height <= 0 || c.Width%2 != 0 || c.Height%2 != 0 {
        return fmt.Errorf("video size %dx%d must be positive and even", c.Width, c.Height)
    }
    if c.Padding < 0 {
        return fmt.Errorf("padding must not be negative, got %d", c.Padding)
    }
    switch c.Rotation {
    case 0, 90, 180, 270:
    default:
        return fmt.Errorf("rotation %d is not one of 0, 90, 180, 270", c.Rotation)
    }
    if c.Quality < 1 || c.Quality > 100 {
        return fmt.Errorf("jpeg quality %d out of range 1..100", c.Quality)
    }
    if c.Keep <= 0 {
        return fmt.Errorf("keep must be positive, got %d", c.Keep)
    }
    return nil
}

func (c Config) Addr() string {
    return c.Host + ":" + strconv.Itoa(c.Port)
}

func getEnv(key, def string) string {
    if v := os.Getenv(key); v != "" {
        return v
    }
    return def
}

func getEnvInt(key string, def int) int {
    if v := os.Getenv(key); v != "" {
        if x, err := strconv.Atoi(v); err == nil {
            return x
        }
    }
    return def
}
