package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, TransportNone, cfg.NotifyTransport)
	assert.Equal(t, 3*time.Second, cfg.NotifyTimeout)
	assert.Equal(t, "krw", cfg.Currency)
	assert.Equal(t, "host=localhost port=5432 user=postgres password=postgres dbname=campsite_db sslmode=disable", cfg.DSN())
}

func TestParse_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := Parse()
	assert.Error(t, err)
}

func TestParse_Transport(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	t.Setenv("NOTIFY_TRANSPORT", "kafka")
	_, err := Parse()
	assert.ErrorContains(t, err, "KAFKA_BROKERS")

	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)

	t.Setenv("NOTIFY_TRANSPORT", "rabbitmq")
	_, err = Parse()
	assert.ErrorContains(t, err, "RABBITMQ_URL")

	t.Setenv("NOTIFY_TRANSPORT", "carrier-pigeon")
	_, err = Parse()
	assert.Error(t, err)
}
