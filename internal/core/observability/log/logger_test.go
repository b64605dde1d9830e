package log

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestToZapFields(t *testing.T) {
	boom := errors.New("boom")

	cases := []struct {
		name string
		in   Field
		want zap.Field
	}{
		{"bool", Bool("ok", true), zap.Bool("ok", true)},
		{"float64", Float64("dt", 0.033), zap.Float64("dt", 0.033)},
		{"int", Int("entities", 12), zap.Int("entities", 12)},
		{"int64", Int64("total_clients", int64(3)), zap.Int64("total_clients", int64(3))},
		{"uint64", Uint64("tick", uint64(9)), zap.Uint64("tick", uint64(9))},
		{"uint32", Uint32("type", uint32(4)), zap.Uint32("type", uint32(4))},
		{"string", String("kind", "agent"), zap.String("kind", "agent")},
		{"error", Err(boom), zap.NamedError("error", boom)},
		{"any", Any("raw", []int{1, 2}), zap.Any("raw", []int{1, 2})},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := toZapFields(tc.in)
			assert.Equal(t, []zap.Field{tc.want}, got)
		})
	}
}

func TestLogger_LevelRoundTrip(t *testing.T) {
	logger := New(LevelWarn)
	assert.Equal(t, LevelWarn, logger.GetLevel())

	logger.SetLevel(LevelDebug)
	assert.Equal(t, LevelDebug, logger.GetLevel())
}

func TestLogger_WithPreservesLevel(t *testing.T) {
	logger := New(LevelError)
	child := logger.With(String("component", "viewer"))
	assert.Equal(t, LevelError, child.GetLevel())
}
