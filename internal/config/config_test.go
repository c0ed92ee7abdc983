package config

import (
    "os"
    "path/filepath"
    "strings"
    "testing"
)

func TestDefaultIsValid(t *testing.T) {
    if err := Default().Validate(); err != nil {
        t.Fatalf("default config invalid: %v", err)
    }
}

func TestLoad(t *testing.T) {
    dir := t.TempDir()
    path := filepath.Join(dir, "yuvsnap.yaml")
    body := "port: 9000\nwidth: 640\nheight: 480\nrotation: 270\npadding: 0\n"
    if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
        t.Fatal(err)
    }
    cfg, err := Load(path)
    if err != nil {
        t.Fatalf("Load: %v", err)
    }
    if cfg.Port != 9000 || cfg.Width != 640 || cfg.Height != 480 || cfg.Rotation != 270 || cfg.Padding != 0 {
        t.Fatalf("cfg = %+v", cfg)
    }
    // Unset keys keep their defaults.
    if cfg.Quality != 90 || cfg.FPS != 30 || cfg.Host != "0.0.0.0" {
        t.Fatalf("defaults lost: %+v", cfg)
    }
    if err := cfg.Validate(); err != nil {
        t.Fatalf("Validate: %v", err)
    }
}

func TestLoadErrors(t *testing.T) {
    if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
        t.Fatal("missing file accepted")
    }
    path := filepath.Join(t.TempDir(), "bad.yaml")
    if err := os.WriteFile(path, []byte("port: [1, 2\n"), 0o644); err != nil {
        t.Fatal(err)
    }
    if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "could not parse") {
        t.Fatalf("err = %v", err)
    }
}

func TestFromEnv(t *testing.T) {
    t.Setenv("PORT", "8123")
    t.Setenv("VIDEO_WIDTH", "320")
    t.Setenv("VIDEO_ROTATION", "90")
    t.Setenv("JPEG_QUALITY", "not a number")
    cfg := FromEnv(Default())
    if cfg.Port != 8123 || cfg.Width != 320 || cfg.Rotation != 90 {
        t.Fatalf("cfg = %+v", cfg)
    }
    if cfg.Quality != 90 {
        t.Fatalf("unparsable env changed quality to %d", cfg.Quality)
    }
    if cfg.Addr() != "0.0.0.0:8123" {
        t.Fatalf("Addr = %q", cfg.Addr())
    }
}

func TestValidate(t *testing.T) {
    cases := []struct {
        name string
        mod  func(*Config)
    }{
        {"odd width", func(c *Config) { c.Width = 641 }},
        {"zero height", func(c *Config) { c.Height = 0 }},
        {"rotation", func(c *Config) { c.Rotation = 45 }},
        {"quality", func(c *Config) { c.Quality = 101 }},
        {"port", func(c *Config) { c.Port = 0 }},
        {"fps", func(c *Config) { c.FPS = 0 }},
        {"padding", func(c *Config) { c.Padding = -1 }},
        {"keep", func(c *Config) { c.Keep = 0 }},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            cfg := Default()
            tc.mod(&cfg)
            if err := cfg.Validate(); err == nil {
                t.Fatal("invalid config accepted")
            }
        })
    }
}
