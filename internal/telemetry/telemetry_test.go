package telemetry

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestInit(t *testing.T) {
	ctx := context.Background()

	t.Run("none", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Exporter = ExporterNone
		shutdown, err := Init(ctx, cfg)
		require.NoError(t, err)
		assert.NoError(t, shutdown(ctx))
	})

	t.Run("unknown", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Exporter = "jaeger-over-carrier-pigeon"
		_, err := Init(ctx, cfg)
		assert.ErrorIs(t, err, ErrUnknownExporter)
	})

	t.Run("stdout", func(t *testing.T) {
		tp, mp := otel.GetTracerProvider(), otel.GetMeterProvider()
		t.Cleanup(func() {
			otel.SetTracerProvider(tp)
			otel.SetMeterProvider(mp)
		})

		var buf bytes.Buffer
		cfg := DefaultConfig()
		cfg.Exporter = ExporterStdout
		cfg.Writer = &buf
		shutdown, err := Init(ctx, cfg)
		require.NoError(t, err)

		_, span := otel.Tracer("telemetry-test").Start(ctx, "probe")
		span.End()
		require.NoError(t, shutdown(ctx))
		assert.Contains(t, buf.String(), `"Name":"probe"`)
	})
}

func TestDefaultConfig(t *testing.T) {
	t.Setenv("OTEL_TRACES_EXPORTER", "")
	assert.Equal(t, ExporterNone, DefaultConfig().Exporter)

	t.Setenv("OTEL_TRACES_EXPORTER", ExporterStdout)
	assert.Equal(t, ExporterStdout, DefaultConfig().Exporter)
}
