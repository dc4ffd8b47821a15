package debugformat

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/suite"
)

type LevelsSuite struct {
	suite.Suite
}

func TestLevelsSuite(t *testing.T) {
	suite.Run(t, new(LevelsSuite))
}

func (suite *LevelsSuite) TestMaxNameLength() {
	suite.Equal(7, NpmLevels.maxNameLength())
	suite.Equal(3, Levels{"foo": 0, "bar": 1}.maxNameLength())
	suite.Equal(0, Levels{}.maxNameLength())
}

func (suite *LevelsSuite) TestLevelName() {
	testCases := []struct {
		level    slog.Level
		expected string
	}{
		{slog.LevelError + 4, "error"},
		{LevelError, "error"},
		{LevelWarn, "warn"},
		{LevelInfo, "info"},
		{LevelInfo + 1, "info"},
		{LevelHTTP, "http"},
		{LevelVerbose, "verbose"},
		{LevelDebug, "debug"},
		{LevelSilly, "silly"},
		{-20, "silly"},
	}

	for _, tc := range testCases {
		suite.Equal(tc.expected, LevelName(tc.level), tc.level.String())
	}
}

func (suite *LevelsSuite) TestParseLevel() {
	testCases := []struct {
		input       string
		expected    slog.Level
		shouldError bool
	}{
		{"silly", LevelSilly, false},
		{"trace", LevelSilly, false},
		{"DEBUG", LevelDebug, false},
		{" verbose ", LevelVerbose, false},
		{"http", LevelHTTP, false},
		{"Info", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"", 0, true},
		{"fatal", 0, true},
	}

	for _, tc := range testCases {
		suite.Run(tc.input, func() {
			level, err := ParseLevel(tc.input)
			if tc.shouldError {
				suite.Error(err)
				return
			}
			suite.NoError(err)
			suite.Equal(tc.expected, level)
		})
	}
}

func (suite *LevelsSuite) TestSupportedLevels() {
	suite.Equal("error, warn, info, http, verbose, debug, silly", supportedLevels())
}

func (suite *LevelsSuite) TestRoundTrip() {
	for name := range NpmLevels {
		level, err := ParseLevel(name)
		suite.NoError(err)
		suite.Equal(name, LevelName(level))
	}
}
