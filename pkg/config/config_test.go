package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("should apply defaults when no config file exists", func(t *testing.T) {
		viper.Reset()
		c, err := Load("")
		require.NoError(t, err)

		assert.Equal(t, "http://localhost:8000", c.Backend.URL)
		assert.Equal(t, 90*time.Second, c.Backend.Timeout)
		assert.Equal(t, "info", c.Logging.Level)
	})

	t.Run("should read values from a config file", func(t *testing.T) {
		viper.Reset()
		dir := t.TempDir()
		path := filepath.Join(dir, "settings.yaml")
		contents := `backend:
  url: https://review.example.org
  timeout: 2m
review:
  dataset_id: ds-77
logging:
  level: debug
`
		require.NoError(t, os.WriteFile(path, []byte(contents), 0644))

		c, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "https://review.example.org", c.Backend.URL)
		assert.Equal(t, 2*time.Minute, c.Backend.Timeout)
		assert.Equal(t, "ds-77", c.Review.DatasetID)
		assert.Equal(t, "debug", c.Logging.Level)
	})

	t.Run("should reject an unparseable timeout", func(t *testing.T) {
		viper.Reset()
		dir := t.TempDir()
		path := filepath.Join(dir, "settings.yaml")
		require.NoError(t, os.WriteFile(path, []byte("backend:\n  timeout: soon\n"), 0644))

		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("should expose the loaded config through Get", func(t *testing.T) {
		viper.Reset()
		_, err := Load("")
		require.NoError(t, err)
		assert.NotNil(t, Get())
	})
}
