package main

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func loggerContext(t *testing.T, level string) *cli.Context {
	t.Helper()
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	set.String("log-level", level, "")
	require.NoError(t, set.Set("log-level", level))
	return cli.NewContext(cli.NewApp(), set, nil)
}

func TestSetupLogger(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "INFO"} {
		t.Run(level, func(t *testing.T) {
			assert.NoError(t, setupLogger(loggerContext(t, level)))
		})
	}

	t.Run("invalid level", func(t *testing.T) {
		err := setupLogger(loggerContext(t, "verbose"))
		assert.Error(t, err)
	})
}

func TestQueryFromArgs(t *testing.T) {
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	require.NoError(t, set.Parse([]string{"wie", "warm", "ist", "es"}))
	c := cli.NewContext(cli.NewApp(), set, nil)

	query, err := queryFromArgs(c)
	require.NoError(t, err)
	assert.Equal(t, "wie warm ist es", query)

	t.Run("empty args", func(t *testing.T) {
		empty := flag.NewFlagSet("test", flag.ContinueOnError)
		c := cli.NewContext(cli.NewApp(), empty, nil)
		_, err := queryFromArgs(c)
		assert.Error(t, err)
	})
}
