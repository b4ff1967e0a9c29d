package main

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"

	"github.com/lotus-sim/lotus-script-go/host"
)

const configFile = "lotus.toml"

// projectConfig is lotus.toml with defaults applied.
type projectConfig struct {
	UserID  int32
	SubID   int32
	HasID   bool
	Package string
	Name    string
	Tags    string
	Host    host.Config
}

type fileConfig struct {
	UserID  int32    `toml:"user_id"`
	SubID   int32    `toml:"sub_id"`
	Package string   `toml:"package"`
	Name    string   `toml:"name"`
	Tags    []string `toml:"tags"`
	Host    struct {
		MemoryLimitPages   uint32    `toml:"memory_limit_pages"`
		LoopbackPages      uint32    `toml:"loopback_pages"`
		StubUnknownImports bool      `toml:"stub_unknown_imports"`
		Delta              string    `toml:"delta"`
		Seed               uint64    `toml:"seed"`
		StartTime          time.Time `toml:"start_time"`
	} `toml:"host"`
}

func defaultProjectConfig() projectConfig {
	return projectConfig{
		Package: ".",
		Host:    host.DefaultConfig(),
	}
}

// loadProjectConfig reads path. A missing file yields the defaults.
func loadProjectConfig(path string) (projectConfig, error) {
	cfg := defaultProjectConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return projectConfig{}, fmt.Errorf("load %s: %w", path, err)
	}

	if meta.IsDefined("user_id") && meta.IsDefined("sub_id") {
		cfg.UserID = raw.UserID
		cfg.SubID = raw.SubID
		cfg.HasID = true
	} else if meta.IsDefined("user_id") || meta.IsDefined("sub_id") {
		return projectConfig{}, fmt.Errorf("load %s: user_id and sub_id must be set together", path)
	}
	if meta.IsDefined("package") {
		if p := strings.TrimSpace(raw.Package); p != "" {
			cfg.Package = p
		}
	}
	if meta.IsDefined("name") {
		cfg.Name = strings.TrimSpace(raw.Name)
	}
	if meta.IsDefined("tags") {
		cfg.Tags = strings.Join(raw.Tags, ",")
	}

	if meta.IsDefined("host", "memory_limit_pages") {
		cfg.Host.MemoryLimitPages = raw.Host.MemoryLimitPages
	}
	if meta.IsDefined("host", "loopback_pages") {
		cfg.Host.LoopbackPages = raw.Host.LoopbackPages
	}
	if meta.IsDefined("host", "stub_unknown_imports") {
		cfg.Host.StubUnknownImports = raw.Host.StubUnknownImports
	}
	if meta.IsDefined("host", "delta") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.Host.Delta))
		if err != nil {
			return projectConfig{}, fmt.Errorf("parse host.delta: %w", err)
		}
		if d <= 0 {
			return projectConfig{}, fmt.Errorf("parse host.delta: must be positive, got %s", d)
		}
		cfg.Host.Delta = d.Seconds()
	}
	if meta.IsDefined("host", "seed") {
		cfg.Host.Seed = raw.Host.Seed
	}
	if meta.IsDefined("host", "start_time") {
		cfg.Host.StartTime = raw.Host.StartTime
	}

	for _, key := range meta.Undecoded() {
		zap.L().Warn("unknown config key", zap.String("file", path), zap.Stringer("key", key))
	}
	return cfg, nil
}
