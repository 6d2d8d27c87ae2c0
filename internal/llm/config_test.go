package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.NotEmpty(t, cfg.Models[TierLite])
	assert.NotEmpty(t, cfg.Models[TierStandard])
	assert.NotEmpty(t, cfg.Models[TierAdvanced])
}

func TestConfig_Model_Fallback(t *testing.T) {
	cfg := &Config{Models: map[ModelTier]string{TierStandard: "model-s"}}

	// Unconfigured tier falls back to standard
	assert.Equal(t, "model-s", cfg.Model(TierAdvanced))

	// Then to lite
	cfg = &Config{Models: map[ModelTier]string{TierLite: "model-l"}}
	assert.Equal(t, "model-l", cfg.Model(TierAdvanced))

	// Empty config has no model
	cfg = &Config{Models: map[ModelTier]string{}}
	assert.Equal(t, "", cfg.Model(TierStandard))
}
