package config

import (
	"testing"
)

func TestLoadDefaultConfig(t *testing.T) {
	opts := GetDefaultOptions()

	t.Logf(`Config
		Host: %s
		Port: %d
		LogLevel: %s
		Data: %s
		`, opts.Host, opts.Port, opts.LogLevel, opts.Data)

	if opts.Port != defaultPort {
		t.Errorf("Port not set")
	}
	if opts.Host != defaultHost {
		t.Errorf("Host not set")
	}
	if opts.WorkerPoolSize != defaultWorkerPoolSize {
		t.Errorf("WorkerPoolSize not set")
	}
}

func TestLoadConfigFile(t *testing.T) {
	GetDefaultOptions()
	opts, err := ParseFile("config_test.toml")
	if err != nil {
		t.Errorf("Error loading config: %s", err)
	}
	t.Logf(`Config
		Host: %s
		Port: %d
		LogLevel: %s
		LogFile: %s
		`, opts.Host, opts.Port, opts.LogLevel, opts.LogFile)
	if opts.Host != "127.0.0.1" {
		t.Errorf("Host not set")
	}
	if opts.LogFile != "test.log" {
		t.Errorf("LogFile not set")
	}
	if opts.Port != 2333 {
		t.Errorf("Port not set")
	}
	if opts.LogLevel != "DEBUG" {
		t.Errorf("LogLevel not set")
	}
	if opts.AdminCode != "sesame" {
		t.Errorf("AdminCode not set")
	}
}
