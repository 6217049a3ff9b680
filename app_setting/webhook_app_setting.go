package app_setting

import (
	"io/ioutil"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// WebhookAppSetting holds the non-secret settings of the webhook and api
// servers. Secrets are never read from this file, they come from env.
type WebhookAppSetting struct {
	// Port the webhook server listens on.
	WEBHOOK_PORT int `yaml:"WEBHOOK_PORT"`
	// Port the public read api listens on.
	API_PORT int `yaml:"API_PORT"`
	// Caller system recorded on every webhook log.
	WEBHOOK_SOURCE string `yaml:"WEBHOOK_SOURCE"`
	// Enhancer service notified when a duplicate article is submitted. Leave
	// empty to disable.
	ENHANCER_URL string `yaml:"ENHANCER_URL"`
	// Timeout of a single enhancer notification.
	ENHANCER_TIMEOUT_SECOND int64 `yaml:"ENHANCER_TIMEOUT_SECOND"`
	// Slack incoming webhook notified on duplicates. Leave empty to disable.
	SLACK_WEBHOOK_URL string `yaml:"SLACK_WEBHOOK_URL"`
	// Put a redis replay cache in front of the webhook log table.
	REDIS_REPLAY_CACHE_ENABLED bool `yaml:"REDIS_REPLAY_CACHE_ENABLED"`
	// How long a replayable response stays in redis.
	REDIS_REPLAY_TTL_SECOND int64 `yaml:"REDIS_REPLAY_TTL_SECOND"`
	// Datadog agent address, leave empty to disable metrics.
	STATSD_ADDR string `yaml:"STATSD_ADDR"`
	// Enable Datadog tracing.
	TRACING_ENABLED bool `yaml:"TRACING_ENABLED"`
	// Enable the Datadog continuous profiler.
	PROFILING_ENABLED bool `yaml:"PROFILING_ENABLED"`
}

func DefaultWebhookAppSetting() WebhookAppSetting {
	return WebhookAppSetting{
		WEBHOOK_PORT:            7070,
		API_PORT:                8080,
		WEBHOOK_SOURCE:          "gumloop",
		ENHANCER_TIMEOUT_SECOND: 10,
		REDIS_REPLAY_TTL_SECOND: 24 * 60 * 60,
	}
}

// ParseWebhookAppSetting reads the yaml at path on top of the defaults. An
// empty path returns the defaults.
func ParseWebhookAppSetting(path string) (WebhookAppSetting, error) {
	c := DefaultWebhookAppSetting()
	if path == "" {
		return c, nil
	}
	yamlFile, err := ioutil.ReadFile(path)
	if err != nil {
		return c, errors.Wrap(err, "fail to read app setting "+path)
	}
	if err = yaml.Unmarshal(yamlFile, &c); err != nil {
		return c, errors.Wrap(err, "fail to unmarshal app setting "+path)
	}
	return c, nil
}

func (s WebhookAppSetting) EnhancerTimeout() time.Duration {
	return time.Duration(s.ENHANCER_TIMEOUT_SECOND) * time.Second
}

func (s WebhookAppSetting) ReplayTTL() time.Duration {
	return time.Duration(s.REDIS_REPLAY_TTL_SECOND) * time.Second
}
