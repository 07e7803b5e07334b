package buildCFG

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/config"
	"github.com/wb-go/wbf/dbpg"

	"weddingdesk/internal/mailer"
)

type ServerConfig struct {
	Port       string
	AdminToken string
}

type RabbitConfig struct {
	Url      string
	Exchange string
	Queue    string
}

func BuildServerConfig(cfg *config.Config, log *zerolog.Logger) *ServerConfig {
	port := cfg.GetString("server.port")
	if port == "" {
		port = "8080"
		log.Warn().Msg("server.port not set, defaulting to 8080")
	}
	token := cfg.GetString("server.admin_token")
	if token == "" {
		log.Warn().Msg("server.admin_token not set, admin routes will reject every request")
	}
	return &ServerConfig{Port: port, AdminToken: token}
}

func BuildDBConfig(cfg *config.Config, log *zerolog.Logger) (string, []string, *dbpg.Options, error) {
	masterDSN := cfg.GetString("db.master_dsn")
	if masterDSN == "" {
		return "", nil, nil, fmt.Errorf("db.master_dsn is required")
	}

	slaveDSNs := cfg.GetStringSlice("db.slave_dsns")

	opts := &dbpg.Options{
		MaxOpenConns:    cfg.GetInt("db.max_open_conns"),
		MaxIdleConns:    cfg.GetInt("db.max_idle_conns"),
		ConnMaxLifetime: time.Duration(cfg.GetInt("db.conn_max_lifetime_seconds")) * time.Second,
	}
	if opts.MaxOpenConns == 0 {
		opts.MaxOpenConns = 10
	}
	if opts.MaxIdleConns == 0 {
		opts.MaxIdleConns = 5
	}

	log.Info().Int("max_open_conns", opts.MaxOpenConns).Msg("DB config built")
	return masterDSN, slaveDSNs, opts, nil
}

func BuildRabbitConfig(cfg *config.Config, log *zerolog.Logger) (*RabbitConfig, error) {
	url := cfg.GetString("rabbit.url")
	if url == "" {
		return nil, fmt.Errorf("rabbit.url is required")
	}
	rc := &RabbitConfig{
		Url:      url,
		Exchange: cfg.GetString("rabbit.exchange"),
		Queue:    cfg.GetString("rabbit.queue"),
	}
	if rc.Exchange == "" {
		rc.Exchange = "weddingdesk.delayed"
	}
	if rc.Queue == "" {
		rc.Queue = "weddingdesk.contributions"
	}
	log.Info().Str("exchange", rc.Exchange).Str("queue", rc.Queue).Msg("Rabbit config built")
	return rc, nil
}

func BuildMailConfig(cfg *config.Config, log *zerolog.Logger) mailer.Config {
	mc := mailer.Config{
		Host:     cfg.GetString("smtp.host"),
		Port:     cfg.GetString("smtp.port"),
		From:     cfg.GetString("smtp.from"),
		Password: cfg.GetString("smtp.password"),
	}
	if mc.Host == "" {
		mc.Host = "smtp.gmail.com"
	}
	if mc.Port == "" {
		mc.Port = "587"
	}
	if mc.From == "" {
		log.Warn().Msg("smtp.from not set, contribution emails will fail")
	}
	return mc
}

// BuildPaymentTimeout returns the contribution payment window in minutes.
func BuildPaymentTimeout(cfg *config.Config) int {
	timeout := cfg.GetInt("payments.timeout_minutes")
	if timeout <= 0 {
		timeout = 30
	}
	return timeout
}
