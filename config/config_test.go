package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rowr111/easyblink/config"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	y := `pixels: 120
delay_ms: 40
driver: term
colorway:
  name: gradient
  stops:
    - pos: 0
      color: "#300000"
    - pos: 1
      color: "#ffe6b3"
pattern:
  kind: chase
  chase_width: 10
`
	assert.NoError(t, os.WriteFile(path, []byte(y), 0644))

	c, err := config.Load(path)
	assert.NoError(t, err)
	assert.Equal(t, 120, c.Pixels)
	assert.Equal(t, 40, c.DelayMs)
	assert.Equal(t, "gradient", c.Colorway.Name)
	assert.Len(t, c.Colorway.Stops, 2)
	assert.Equal(t, "chase", c.Pattern.Kind)
	assert.Equal(t, 10, c.Pattern.ChaseWidth)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestErrorf(t *testing.T) {
	err := config.Errorf("pulse period must be at least %d", 1)
	assert.EqualError(t, err, "config: pulse period must be at least 1")
}
