// Package debugformat renders structured log records for humans reading a
// console.
//
// Each record becomes a block like:
//
//	Oct 19 14:03:27 server:http[4242] ERROR:   request failed
//	    status: 502
//	    err: upstream closed connection
//	        at main.proxy (./proxy.go:88)
//	        [truncated]
//
// The first line is the prefix (date, process name, optional logger name,
// PID and a level label padded so messages line up) followed by the message.
// Every other field is rendered below it as JSON, one line per field, cut to
// the terminal width. Error values are rendered as stack traces by the
// exception package: frames under the base path are shown relative to it,
// in bold, and the trace can stop right after the last of them.
//
// # Basic Usage
//
//	f := debugformat.New(debugformat.Config{})
//	rec := debugformat.NewRecord("info", "Hello world!", "account", account)
//	fmt.Println(f.Transform(rec, f.DefaultOptions()).Formatted)
//
// # With log/slog
//
//	logger, closer, err := debugformat.NewLogger(debugformat.LoggerConfig{
//	    Level:             "debug",
//	    MaxExceptionLines: "auto",
//	})
//	if err != nil {
//	    return err
//	}
//	defer closer.Close()
//	logger.Error("Operation failed", "err", errors.New("boom"))
//
// # Configuration
//
// LoadConfig reads a LoggerConfig from a file and DEBUGFMT_* environment
// variables:
//
//	DEBUGFMT_LEVEL=debug DEBUGFMT_MAX_EXCEPTION_LINES=auto DEBUGFMT_SKIP=req,res ./server
//
// # Colors
//
// A ColorTable maps level names to style tokens applied in sequence: named
// colors ("red", "cyanBright", "bgYellow"), modifiers ("bold", "underline"),
// hex colors ("#ff8800", "bg#002b36") and the legacy aliases "grey",
// "brightRed" and "bgBrightRed". Unknown tokens leave the text unchanged.
package debugformat
