package cmd_test

import (
	"log/slog"
	"testing"

	"orderflow/cmd"

	"github.com/stretchr/testify/assert"
)

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"completed", "cancelled", "refunded"}, cmd.SplitList(" completed, cancelled,,refunded "))
	assert.Nil(t, cmd.SplitList(""))
}

func TestConfig_SlogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"WARN":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
		"loud":  slog.LevelInfo,
	}
	for raw, want := range tests {
		assert.Equal(t, want, cmd.Config{LogLevel: raw}.SlogLevel(), raw)
	}
}

func TestConfig_DSN(t *testing.T) {
	c := cmd.Config{DBHost: "db", DBPort: "5432", DBUser: "u", DBPassword: "p", DBName: "orders", DBSslMode: "disable"}

	assert.Equal(t, "host=db port=5432 user=u password=p dbname=orders sslmode=disable", c.DSN())
}
