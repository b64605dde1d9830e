package injector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scenelink/scenelink/internal/core/observability/log"
)

func TestProvideLogger(t *testing.T) {
	logger := ProvideLogger(log.LevelWarn)
	require.NotNil(t, logger)
	assert.Equal(t, log.LevelWarn, logger.GetLevel())
}
