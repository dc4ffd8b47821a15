package debugformat_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gitlab.com/tozd/go/errors"

	"github.com/dianlight/debugformat"
	"github.com/dianlight/debugformat/exception"
)

type HandlerSuite struct {
	suite.Suite
	buf     *bytes.Buffer
	handler *debugformat.Handler
	at      time.Time
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (suite *HandlerSuite) SetupTest() {
	f := debugformat.New(debugformat.Config{ProcessName: "svc", Env: testEnv})
	opts := f.DefaultOptions()
	opts.Colors = nil
	opts.MaxExceptionLines = exception.Limit(0)

	suite.buf = &bytes.Buffer{}
	suite.handler = debugformat.NewHandler(suite.buf, f, &debugformat.HandlerOptions{
		Level:  debugformat.LevelDebug,
		Format: &opts,
	})
	suite.at = time.Date(2026, time.March, 4, 18, 30, 0, 0, time.Local)
}

func (suite *HandlerSuite) handle(h slog.Handler, level slog.Level, msg string, attrs ...slog.Attr) {
	r := slog.NewRecord(suite.at, level, msg, 0)
	r.AddAttrs(attrs...)
	suite.Require().NoError(h.Handle(context.Background(), r))
}

func (suite *HandlerSuite) TestHandle() {
	suite.handle(suite.handler, slog.LevelWarn, "disk almost full",
		slog.Int("free_mb", 12),
		slog.String("mount", "/var"),
	)

	suite.Equal("Mar 4 18:30:00 svc[4242] WARN:    disk almost full\n"+
		"    free_mb: 12\n"+
		`    mount: "/var"`+"\n", suite.buf.String())
}

func (suite *HandlerSuite) TestEnabled() {
	ctx := context.Background()

	suite.True(suite.handler.Enabled(ctx, slog.LevelDebug))
	suite.True(suite.handler.Enabled(ctx, slog.LevelError))
	suite.False(suite.handler.Enabled(ctx, debugformat.LevelSilly))
}

func (suite *HandlerSuite) TestDefaultLevelIsInfo() {
	h := debugformat.NewHandler(suite.buf, nil, nil)

	suite.False(h.Enabled(context.Background(), slog.LevelDebug))
	suite.True(h.Enabled(context.Background(), slog.LevelInfo))
}

func (suite *HandlerSuite) TestWithAttrsAndGroups() {
	h := suite.handler.WithAttrs([]slog.Attr{slog.String("name", "db")}).WithGroup("query")

	suite.handle(h, slog.LevelInfo, "slow query",
		slog.Duration("took", 1500*time.Millisecond),
		slog.Group("table", slog.String("name", "users")),
	)

	suite.Equal("Mar 4 18:30:00 svc:db[4242] INFO:    slow query\n"+
		"    query.took: 1500000000\n"+
		`    query.table.name: "users"`+"\n", suite.buf.String())
}

func (suite *HandlerSuite) TestEmptyGroupIsIgnored() {
	suite.Same(suite.handler, suite.handler.WithGroup(""))
	suite.Same(suite.handler, suite.handler.WithAttrs(nil))

	suite.handle(suite.handler, slog.LevelInfo, "m", slog.Group("empty"))

	suite.Equal("Mar 4 18:30:00 svc[4242] INFO:    m\n", suite.buf.String())
}

func (suite *HandlerSuite) TestErrors() {
	suite.handle(suite.handler, slog.LevelError, "failed", slog.Any("err", errors.New("boom")))

	suite.Equal("Mar 4 18:30:00 svc[4242] ERROR:   failed\n"+
		"    err: boom\n"+
		"        [truncated]\n", suite.buf.String())
}

func (suite *HandlerSuite) TestWithSlogLogger() {
	logger := slog.New(suite.handler)

	logger.Debug("visible", "n", 1)
	logger.Log(context.Background(), debugformat.LevelSilly, "hidden")

	suite.Contains(suite.buf.String(), "DEBUG:   visible\n    n: 1\n")
	suite.NotContains(suite.buf.String(), "hidden")
}
