package debugformat_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/dianlight/debugformat"
)

type ConfigSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigSuite))
}

func (suite *ConfigSuite) TestDefaultsFromEnvironment() {
	cfg, err := debugformat.LoadConfig("")
	suite.Require().NoError(err)

	suite.Equal("info", cfg.Level)
	suite.Equal(debugformat.StyleDebug, cfg.Style)
	suite.Equal(debugformat.OutputStderr, cfg.Output)
	suite.Equal(100, cfg.MaxSize)
	suite.False(cfg.NoColor)
}

func (suite *ConfigSuite) TestEnvironmentVariables() {
	t := suite.T()
	t.Setenv("DEBUGFMT_LEVEL", "debug")
	t.Setenv("DEBUGFMT_MAX_EXCEPTION_LINES", "auto")
	t.Setenv("DEBUGFMT_SKIP", "req,res")
	t.Setenv("DEBUGFMT_TERMINAL_WIDTH", "120")
	t.Setenv("DEBUGFMT_HIDE_PID", "true")

	cfg, err := debugformat.LoadConfig("")
	suite.Require().NoError(err)

	suite.Equal("debug", cfg.Level)
	suite.Equal("auto", cfg.MaxExceptionLines)
	suite.Equal([]string{"req", "res"}, cfg.Skip)
	suite.Equal(120, cfg.TerminalWidth)
	suite.True(cfg.HidePID)
}

func (suite *ConfigSuite) TestYAMLFile() {
	path := filepath.Join(suite.T().TempDir(), "logging.yaml")
	err := os.WriteFile(path, []byte(`
level: warn
style: compact
noColor: true
processName: worker
colorTable:
  error: bold red
skip:
  - token
`), 0o600)
	suite.Require().NoError(err)

	cfg, err := debugformat.LoadConfig(path)
	suite.Require().NoError(err)

	suite.Equal("warn", cfg.Level)
	suite.Equal(debugformat.StyleCompact, cfg.Style)
	suite.True(cfg.NoColor)
	suite.Equal("worker", cfg.ProcessName)
	suite.Equal(map[string]string{"error": "bold red"}, cfg.ColorTable)
	suite.Equal([]string{"token"}, cfg.Skip)
	suite.Equal(debugformat.OutputStderr, cfg.Output)
}

func (suite *ConfigSuite) TestEnvironmentOverridesFile() {
	path := filepath.Join(suite.T().TempDir(), "logging.yaml")
	suite.Require().NoError(os.WriteFile(path, []byte("level: warn\n"), 0o600))
	suite.T().Setenv("DEBUGFMT_LEVEL", "error")

	cfg, err := debugformat.LoadConfig(path)
	suite.Require().NoError(err)

	suite.Equal("error", cfg.Level)
}

func (suite *ConfigSuite) TestMissingFile() {
	_, err := debugformat.LoadConfig(filepath.Join(suite.T().TempDir(), "missing.yaml"))
	suite.Error(err)
}
