package bootstrap

import (
	"log/slog"

	"github.com/antly/antly-api/config"
	"github.com/antly/antly-api/internal/observability/statsd"
)

// NewMetrics builds the StatsD client. With metrics disabled it returns a client that drops everything.
func NewMetrics(cfg config.MetricsConfig, env string, logger *slog.Logger) (*statsd.Client, error) {
	tags := map[string]string{"service": "antly-api"}
	if env != "" {
		tags["env"] = env
	}
	client, err := statsd.NewClient(statsd.Config{
		Enabled:    cfg.IsEnabled(),
		Address:    cfg.StatsdAddress,
		Prefix:     cfg.Prefix,
		GlobalTags: tags,
		Logger:     logger,
	})
	if err != nil {
		return nil, err
	}
	if logger != nil {
		logger.Info("metrics configured", "enabled", client.Enabled(), "address", cfg.StatsdAddress)
	}
	return client, nil
}
