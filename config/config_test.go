package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "STORE_BACKEND", "REDIS_URL", "SLOT_DAYS", "SLOT_HOURS", "RATE_LIMIT_WINDOW"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()

	assert.Equal(t, "8090", cfg.Port)
	assert.Equal(t, BackendPocketBase, cfg.StoreBackend)
	assert.Equal(t, "tickets.json", cfg.TicketsFile)
	assert.Equal(t, "events.json", cfg.EventsFile)
	assert.Empty(t, cfg.RedisURL)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.Len(t, cfg.Slots, 8)
	assert.Equal(t, "25-05 - Matin", cfg.Slots[0])
	assert.Equal(t, "27-05 - 18h", cfg.Slots[7])
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("STORE_BACKEND", "FILE")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "5")
	t.Setenv("RATE_LIMIT_WINDOW", "not-a-duration")
	t.Setenv("ENABLE_METRICS", "false")
	t.Setenv("SLOT_DAYS", "Mon, Tue")
	t.Setenv("SLOT_HOURS", "AM,,PM")

	cfg := LoadConfig()

	assert.Equal(t, BackendFile, cfg.StoreBackend)
	assert.Equal(t, 5, cfg.RateLimitPerMinute)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.False(t, cfg.EnableMetrics)
	assert.Equal(t, SlotCatalog{"Mon - AM", "Mon - PM", "Tue - AM", "Tue - PM"}, cfg.Slots)
}

func TestSlotCatalog_Default(t *testing.T) {
	c := NewSlotCatalog([]string{"25-05"}, []string{"Matin", "Soir"})

	assert.Equal(t, "25-05 - Soir", c.Default("25-05 - Soir"))
	assert.Equal(t, "25-05 - Matin", c.Default("someday"))
	assert.Equal(t, "x", SlotCatalog{}.Default("x"))
}
