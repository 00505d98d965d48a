package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config configuration complète du service
type Config struct {
	Server       ServerConfig       `toml:"server"`
	Database     DatabaseConfig     `toml:"database"`
	Logs         LogsConfig         `toml:"logs"`
	Metrics      MetricsConfig      `toml:"metrics"`
	Paymee       PaymeeConfig       `toml:"paymee"`
	NotifService NotifServiceConfig `toml:"notifservice"`
	Redis        RedisConfig        `toml:"redis"`
	Payment      PaymentConfig      `toml:"payment"`
}

// ServerConfig paramètres du serveur HTTP, durées en secondes
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig paramètres de connexion PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN construit la chaîne de connexion PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// LogsConfig paramètres de journalisation
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig paramètres Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// PaymeeConfig paramètres de la passerelle de paiement
type PaymeeConfig struct {
	URL     string `toml:"url"`
	APIKey  string `toml:"api_key"`
	Timeout int    `toml:"timeout"`
}

// NotifServiceConfig paramètres du service de notifications
type NotifServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// RedisConfig paramètres du cache de la flotte
type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	TTL      int    `toml:"ttl"`
}

// PaymentConfig paramètres métier du paiement en ligne
type PaymentConfig struct {
	// LinkTTLMinutes durée de validité d'un lien de paiement
	LinkTTLMinutes int `toml:"link_ttl_minutes"`
}

// Load lit et valide la configuration TOML
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("server.http_port must be positive")
	}
	if c.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("database.dbname is required")
	}
	if c.Paymee.URL == "" {
		return fmt.Errorf("paymee.url is required")
	}
	if c.NotifService.URL == "" {
		return fmt.Errorf("notifservice.url is required")
	}
	if c.Payment.LinkTTLMinutes <= 0 {
		return fmt.Errorf("payment.link_ttl_minutes must be positive")
	}
	return nil
}
