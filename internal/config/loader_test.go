package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vnykmshr/linkcheck/internal/domain"
)

func TestNewLoader(t *testing.T) {
	loader := NewLoader()
	if loader == nil {
		t.Fatal("Expected NewLoader() to return non-nil Loader")
	}
}

func TestLoadFromFile_Success(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test-config.json")

	configJSON := `{
		"base_url": "https://example.com/docs",
		"start_url": "https://example.com/docs/intro",
		"internal_only": true,
		"human_agent": true,
		"concurrency": 4,
		"max_path_depth": 12,
		"timeout": "10s",
		"rate": 5.0,
		"user_agent": "TestAgent/1.0",
		"report_file": "links.csv",
		"metrics_addr": ":9100",
		"visited_redis_addr": "localhost:6379",
		"progress": false,
		"log_format": "json"
	}`

	err := os.WriteFile(configPath, []byte(configJSON), 0600)
	if err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	loader := NewLoader()
	config, err := loader.LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile() returned error: %v", err)
	}

	if config.BaseURL != "https://example.com/docs" {
		t.Errorf("Expected BaseURL 'https://example.com/docs', got '%s'", config.BaseURL)
	}
	if config.StartURL != "https://example.com/docs/intro" {
		t.Errorf("Expected StartURL 'https://example.com/docs/intro', got '%s'", config.StartURL)
	}
	if !config.InternalOnly {
		t.Error("Expected InternalOnly true, got false")
	}
	if !config.HumanAgent {
		t.Error("Expected HumanAgent true, got false")
	}
	if config.Concurrency != 4 {
		t.Errorf("Expected Concurrency 4, got %d", config.Concurrency)
	}
	if config.MaxPathDepth != 12 {
		t.Errorf("Expected MaxPathDepth 12, got %d", config.MaxPathDepth)
	}
	if config.Timeout != "10s" {
		t.Errorf("Expected Timeout '10s', got '%s'", config.Timeout)
	}
	if config.Rate != 5.0 {
		t.Errorf("Expected Rate 5.0, got %f", config.Rate)
	}
	if config.ReportFile != "links.csv" {
		t.Errorf("Expected ReportFile 'links.csv', got '%s'", config.ReportFile)
	}
	if config.MetricsAddr != ":9100" {
		t.Errorf("Expected MetricsAddr ':9100', got '%s'", config.MetricsAddr)
	}
	if config.VisitedRedisAddr != "localhost:6379" {
		t.Errorf("Expected VisitedRedisAddr 'localhost:6379', got '%s'", config.VisitedRedisAddr)
	}
	if config.Progress == nil || *config.Progress {
		t.Errorf("Expected Progress false, got %v", config.Progress)
	}
	if config.LogFormat != "json" {
		t.Errorf("Expected LogFormat 'json', got '%s'", config.LogFormat)
	}
}

func TestLoadFromFile_NonExistentFile(t *testing.T) {
	loader := NewLoader()
	_, err := loader.LoadFromFile("/nonexistent/path/config.json")
	if err == nil {
		t.Error("Expected error for non-existent file, got nil")
	}
}

func TestLoadFromFile_InvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid-config.json")

	invalidJSON := `{
		"base_url": "http://example.com",
		"concurrency": "not-a-number"
	}`

	err := os.WriteFile(configPath, []byte(invalidJSON), 0600)
	if err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	loader := NewLoader()
	_, err = loader.LoadFromFile(configPath)
	if err == nil {
		t.Error("Expected error for invalid JSON, got nil")
	}
}

func TestSaveToFile_Success(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "save-test-config.json")

	config := &domain.Config{
		BaseURL:      "http://test.com",
		Concurrency:  15,
		MaxPathDepth: 8,
		Timeout:      "45s",
		Rate:         7.5,
		UserAgent:    "SaveTest/1.0",
		InternalOnly: true,
	}

	loader := NewLoader()
	err := loader.SaveToFile(config, configPath)
	if err != nil {
		t.Fatalf("SaveToFile() returned error: %v", err)
	}

	loadedConfig, err := loader.LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("Failed to load saved config: %v", err)
	}

	if loadedConfig.BaseURL != config.BaseURL {
		t.Errorf("Saved BaseURL mismatch: expected '%s', got '%s'",
			config.BaseURL, loadedConfig.BaseURL)
	}
	if loadedConfig.MaxPathDepth != config.MaxPathDepth {
		t.Errorf("Saved MaxPathDepth mismatch: expected %d, got %d",
			config.MaxPathDepth, loadedConfig.MaxPathDepth)
	}
	if !loadedConfig.InternalOnly {
		t.Error("Saved InternalOnly mismatch: expected true")
	}
}

func TestMergeWithDefaults_EmptyConfig(t *testing.T) {
	loader := NewLoader()
	merged := loader.MergeWithDefaults(&domain.Config{})

	defaults := domain.DefaultConfig()

	if merged.Concurrency != defaults.Concurrency {
		t.Errorf("Expected merged Concurrency %d, got %d", defaults.Concurrency, merged.Concurrency)
	}
	if merged.MaxPathDepth != defaults.MaxPathDepth {
		t.Errorf("Expected merged MaxPathDepth %d, got %d", defaults.MaxPathDepth, merged.MaxPathDepth)
	}
	if merged.Timeout != defaults.Timeout {
		t.Errorf("Expected merged Timeout '%s', got '%s'", defaults.Timeout, merged.Timeout)
	}
	if merged.UserAgent != defaults.UserAgent {
		t.Errorf("Expected merged UserAgent '%s', got '%s'", defaults.UserAgent, merged.UserAgent)
	}
	if merged.MaxBodyBytes != defaults.MaxBodyBytes {
		t.Errorf("Expected merged MaxBodyBytes %d, got %d", defaults.MaxBodyBytes, merged.MaxBodyBytes)
	}
}

func TestMergeWithDefaults_StartDefaultsToBase(t *testing.T) {
	loader := NewLoader()

	merged := loader.MergeWithDefaults(&domain.Config{BaseURL: "https://ex.com"})
	if merged.StartURL != "https://ex.com" {
		t.Errorf("Expected StartURL to default to BaseURL, got '%s'", merged.StartURL)
	}

	merged = loader.MergeWithDefaults(&domain.Config{BaseURL: "https://ex.com", StartURL: "https://ex.com/a"})
	if merged.StartURL != "https://ex.com/a" {
		t.Errorf("Expected explicit StartURL to be preserved, got '%s'", merged.StartURL)
	}
}

func TestMergeWithDefaults_PartialConfig(t *testing.T) {
	loader := NewLoader()
	config := &domain.Config{
		BaseURL:     "http://custom.com",
		Concurrency: 20,
	}

	merged := loader.MergeWithDefaults(config)

	if merged.BaseURL != "http://custom.com" {
		t.Errorf("Expected merged BaseURL 'http://custom.com', got '%s'", merged.BaseURL)
	}
	if merged.Concurrency != 20 {
		t.Errorf("Expected merged Concurrency 20, got %d", merged.Concurrency)
	}

	defaults := domain.DefaultConfig()
	if merged.Timeout != defaults.Timeout {
		t.Errorf("Expected merged Timeout '%s' (default), got '%s'", defaults.Timeout, merged.Timeout)
	}
	if merged.LogFormat != defaults.LogFormat {
		t.Errorf("Expected merged LogFormat '%s' (default), got '%s'", defaults.LogFormat, merged.LogFormat)
	}
}

func TestLoadFromFile_EnvVarSubstitution(t *testing.T) {
	t.Setenv("TEST_BASE_URL", "http://env-test.com")
	t.Setenv("TEST_REDIS", "redis.internal:6379")

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "env-config.json")

	configJSON := `{
		"base_url": "${TEST_BASE_URL}",
		"visited_redis_addr": "${TEST_REDIS}"
	}`

	err := os.WriteFile(configPath, []byte(configJSON), 0600)
	if err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	loader := NewLoader()
	config, err := loader.LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile() returned error: %v", err)
	}

	if config.BaseURL != "http://env-test.com" {
		t.Errorf("Expected BaseURL 'http://env-test.com', got '%s'", config.BaseURL)
	}
	if config.VisitedRedisAddr != "redis.internal:6379" {
		t.Errorf("Expected VisitedRedisAddr 'redis.internal:6379', got '%s'", config.VisitedRedisAddr)
	}
}

func TestLoadFromFile_EnvVarWithDefault(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "default-config.json")

	configJSON := `{
		"base_url": "${MISSING_VAR:-http://default.com}",
		"concurrency": 5
	}`

	err := os.WriteFile(configPath, []byte(configJSON), 0600)
	if err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	loader := NewLoader()
	config, err := loader.LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile() returned error: %v", err)
	}

	if config.BaseURL != "http://default.com" {
		t.Errorf("Expected BaseURL 'http://default.com' (default), got '%s'", config.BaseURL)
	}
}

func TestLoadFromFile_MissingRequiredEnvVar(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "missing-config.json")

	configJSON := `{
		"base_url": "${REQUIRED_VAR_THAT_DOES_NOT_EXIST}"
	}`

	err := os.WriteFile(configPath, []byte(configJSON), 0600)
	if err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	loader := NewLoader()
	_, err = loader.LoadFromFile(configPath)
	if err == nil {
		t.Error("Expected error for missing required env var, got nil")
	}
}

func TestSubstituteEnvVars_MultipleVars(t *testing.T) {
	t.Setenv("VAR_A", "valueA")
	t.Setenv("VAR_B", "valueB")

	input := `{"a": "${VAR_A}", "b": "${VAR_B}"}`
	result, err := substituteEnvVars(input)
	if err != nil {
		t.Fatalf("substituteEnvVars() returned error: %v", err)
	}

	expected := `{"a": "valueA", "b": "valueB"}`
	if result != expected {
		t.Errorf("Expected '%s', got '%s'", expected, result)
	}
}

func TestSubstituteEnvVars_EmptyDefault(t *testing.T) {
	input := `{"metrics_addr": "${UNSET_METRICS_ADDR_FOR_TEST:-}"}`
	result, err := substituteEnvVars(input)
	if err != nil {
		t.Fatalf("substituteEnvVars() returned error: %v", err)
	}

	expected := `{"metrics_addr": ""}`
	if result != expected {
		t.Errorf("Expected '%s', got '%s'", expected, result)
	}
}

func TestSubstituteEnvVars_NoVars(t *testing.T) {
	input := `{"base_url": "http://example.com"}`
	result, err := substituteEnvVars(input)
	if err != nil {
		t.Fatalf("substituteEnvVars() returned error: %v", err)
	}

	if result != input {
		t.Errorf("Expected unchanged input, got '%s'", result)
	}
}

func TestSubstituteEnvVars_UnsetNamedOnce(t *testing.T) {
	input := `{"base_url": "${UNSET_BASE_FOR_TEST}", "start_url": "${UNSET_BASE_FOR_TEST}/docs", "report_file": "${UNSET_REPORT_FOR_TEST}"}`
	_, err := substituteEnvVars(input)
	if err == nil {
		t.Fatal("Expected error for unset variables, got nil")
	}

	msg := err.Error()
	if strings.Count(msg, "UNSET_BASE_FOR_TEST") != 1 {
		t.Errorf("Expected UNSET_BASE_FOR_TEST named once, got %q", msg)
	}
	if !strings.Contains(msg, "UNSET_REPORT_FOR_TEST") {
		t.Errorf("Expected UNSET_REPORT_FOR_TEST in error, got %q", msg)
	}
}

func TestSubstituteEnvVars_SetButEmptyWinsOverFallback(t *testing.T) {
	t.Setenv("LINKCHECK_EMPTY_FOR_TEST", "")

	result, err := substituteEnvVars(`{"user_agent": "${LINKCHECK_EMPTY_FOR_TEST:-fallback}"}`)
	if err != nil {
		t.Fatalf("substituteEnvVars() returned error: %v", err)
	}
	if result != `{"user_agent": ""}` {
		t.Errorf("Expected empty value, got '%s'", result)
	}
}
