package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, 7, cfg.Scheduler.WindowDays)
	assert.Equal(t, 2, cfg.Scheduler.SlotsPerDay)
	assert.Equal(t, time.Hour, cfg.Scheduler.Interval)
	assert.Equal(t, "sessions.scheduled", cfg.Kafka.SessionsTopic)
	assert.False(t, cfg.Kafka.Enabled)
	assert.Equal(t, "/api/v1", cfg.GetAPIBasePath())
	require.NoError(t, cfg.Validate())
}

func TestLoad_SchedulerFromEnv(t *testing.T) {
	t.Setenv("SCHEDULER_WINDOW_DAYS", "14")
	t.Setenv("SCHEDULER_SLOTS_PER_DAY", "3")
	t.Setenv("SCHEDULER_TIMEZONE", "UTC")
	t.Setenv("SCHEDULER_SLOTS", "13:00|dubbed|20, 19:00|subtitled|28")

	cfg := Load()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 14, cfg.Scheduler.WindowDays)
	assert.Equal(t, 3, cfg.Scheduler.SlotsPerDay)
	assert.Equal(t, []string{"13:00|dubbed|20", "19:00|subtitled|28"}, cfg.Scheduler.Slots)

	loc, err := cfg.Scheduler.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())
}

func TestValidate_Rejects(t *testing.T) {
	cases := map[string]func(*Config){
		"zero window":      func(c *Config) { c.Scheduler.WindowDays = 0 },
		"bad timezone":     func(c *Config) { c.Scheduler.Timezone = "Mars/Olympus" },
		"kafka no brokers": func(c *Config) { c.Kafka.Enabled = true; c.Kafka.Brokers = nil },
		"short jwt secret": func(c *Config) { c.JWT.Secret = "short" },
		"bad gin mode":     func(c *Config) { c.GinMode = "verbose" },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Load()
			mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
