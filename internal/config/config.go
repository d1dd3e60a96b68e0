package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	Version = "0.1.0"

	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// DefaultCurrencies は請求計算で受け付けるデフォルトの通貨一覧。
var DefaultCurrencies = []string{"USD", "EUR", "GBP", "RUB"}

// Config はアプリケーション全体の設定を保持する。
type Config struct {
	Version string `yaml:"-"`

	// MCPサーバー設定
	MCP MCPConfig `yaml:"mcp"`

	// リポジトリ設定
	Storage StorageConfig `yaml:"storage"`

	// 通知メール設定
	SMTP SMTPConfig `yaml:"smtp"`

	Invoice InvoiceConfig `yaml:"invoice"`
	Log     LogConfig     `yaml:"log"`
}

// MCPConfig はMCPサーバーの設定を保持する。
type MCPConfig struct {
	Transport string `yaml:"transport"` // "stdio"
	Name      string `yaml:"name"`
}

// StorageConfig はリポジトリ実装の選択を保持する。
// sqlite もインメモリで動作し、プロセス終了時に破棄される。
type StorageConfig struct {
	Driver string `yaml:"driver"` // "memory" | "sqlite"
	Name   string `yaml:"name"`   // sqlite共有キャッシュ名
}

// SMTPConfig は通知送信先SMTPサーバーの設定を保持する。
type SMTPConfig struct {
	Host   string `yaml:"host"`
	Port   int    `yaml:"port"`
	UseTLS bool   `yaml:"use_tls"`
	From   string `yaml:"from"`
}

// InvoiceConfig は請求計算の設定を保持する。
type InvoiceConfig struct {
	Currencies []string `yaml:"currencies"`
}

// LogConfig はログ出力の設定を保持する。
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default はデフォルト値で埋めたConfigを返す。
func Default() *Config {
	return &Config{
		Version: Version,
		MCP: MCPConfig{
			Transport: "stdio",
			Name:      "task-tracker",
		},
		Storage: StorageConfig{
			Driver: DriverMemory,
			Name:   "task-tracker",
		},
		SMTP: SMTPConfig{
			Host: "localhost",
			Port: 25,
			From: "no-reply@example.com",
		},
		Invoice: InvoiceConfig{
			Currencies: append([]string(nil), DefaultCurrencies...),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load は設定ファイルを読み込む。ファイルが存在しない場合はデフォルト値を使用する。
func Load() (*Config, error) {
	cfg := Default()

	// 設定ファイルのパスを決定
	configPaths := []string{
		"tracker.yaml",
		"tracker.yml",
		filepath.Join("configs", "default.yaml"),
	}

	for _, path := range configPaths {
		if data, err := os.ReadFile(path); err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
			break
		}
	}

	// 環境変数によるオーバーライド
	if v := os.Getenv("TT_MCP_TRANSPORT"); v != "" {
		cfg.MCP.Transport = v
	}
	if v := os.Getenv("TT_STORAGE_DRIVER"); v != "" {
		cfg.Storage.Driver = v
	}
	if v := os.Getenv("TT_STORAGE_NAME"); v != "" {
		cfg.Storage.Name = v
	}
	if v := os.Getenv("TT_SMTP_HOST"); v != "" {
		cfg.SMTP.Host = v
	}
	if v := os.Getenv("TT_SMTP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid TT_SMTP_PORT: %w", err)
		}
		cfg.SMTP.Port = port
	}
	if v := os.Getenv("TT_SMTP_USE_TLS"); v != "" {
		if useTLS, err := strconv.ParseBool(v); err == nil {
			cfg.SMTP.UseTLS = useTLS
		}
	}
	if v := os.Getenv("TT_SMTP_FROM"); v != "" {
		cfg.SMTP.From = v
	}
	if v := os.Getenv("TT_INVOICE_CURRENCIES"); v != "" {
		cfg.Invoice.Currencies = splitList(v)
	}
	if v := os.Getenv("TT_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate は設定値の整合性を検証する。
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverMemory, DriverSQLite:
	default:
		return fmt.Errorf("unsupported storage driver: %q", c.Storage.Driver)
	}
	if c.SMTP.Port < 1 || c.SMTP.Port > 65535 {
		return fmt.Errorf("smtp port out of range: %d", c.SMTP.Port)
	}
	if len(c.Invoice.Currencies) == 0 {
		return errors.New("invoice currencies must not be empty")
	}
	return nil
}

// SQLiteDSN はプロセス内で共有されるインメモリSQLiteの接続文字列を返す。
func (c *Config) SQLiteDSN() string {
	return fmt.Sprintf("file:%s?mode=memory&cache=shared", c.Storage.Name)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
