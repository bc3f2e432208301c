package mongo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfigClientOptions(t *testing.T) {
	opts := Config{URI: "mongodb://localhost:27017"}.clientOptions()
	if assert.NotNil(t, opts.AppName) {
		assert.Equal(t, defaultAppName, *opts.AppName)
	}
	if assert.NotNil(t, opts.ServerSelectionTimeout) {
		assert.Equal(t, defaultConnectTimeout, *opts.ServerSelectionTimeout)
	}
	assert.Nil(t, opts.MaxPoolSize)

	opts = Config{URI: "mongodb://localhost:27017", AppName: "portal-migrate", MaxPoolSize: 20, Timeout: time.Second}.clientOptions()
	assert.Equal(t, "portal-migrate", *opts.AppName)
	assert.Equal(t, uint64(20), *opts.MaxPoolSize)
	assert.Equal(t, time.Second, *opts.ServerSelectionTimeout)
}
