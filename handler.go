package debugformat

import (
	"context"
	"io"
	"log/slog"
	"sync"
)

// HandlerOptions configure a Handler.
type HandlerOptions struct {
	// Level reports the minimum level to log. Defaults to slog.LevelInfo.
	Level slog.Leveler
	// Format is passed to every Transform call. Defaults to the formatter's DefaultOptions.
	Format *Options
}

// Handler is a slog.Handler writing records rendered by a Formatter, one
// block per record.
type Handler struct {
	formatter *Formatter
	opts      Options
	level     slog.Leveler

	mu *sync.Mutex
	w  io.Writer

	attrs  []Field
	groups []string
}

// NewHandler creates a Handler writing to w.
func NewHandler(w io.Writer, f *Formatter, opts *HandlerOptions) *Handler {
	if f == nil {
		f = New(Config{})
	}
	if opts == nil {
		opts = &HandlerOptions{}
	}

	h := &Handler{
		formatter: f,
		opts:      f.DefaultOptions(),
		level:     opts.Level,
		mu:        &sync.Mutex{},
		w:         w,
	}
	if opts.Format != nil {
		h.opts = *opts.Format
	}
	if h.level == nil {
		h.level = slog.LevelInfo
	}
	return h
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	rec := &Record{
		Level:  LevelName(r.Level),
		Time:   r.Time,
		Fields: make([]Field, 0, 2+len(h.attrs)+r.NumAttrs()),
	}
	rec.Set(LevelKey, rec.Level)
	rec.Set(MessageKey, r.Message)
	for _, f := range h.attrs {
		rec.Set(f.Key, f.Value)
	}
	r.Attrs(func(a slog.Attr) bool {
		addAttr(rec, h.groups, a)
		return true
	})

	h.formatter.Transform(rec, h.opts)

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, rec.Formatted+"\n")
	return err
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	tmp := &Record{Fields: append([]Field{}, h.attrs...)}
	for _, a := range attrs {
		addAttr(tmp, h.groups, a)
	}
	h2 := *h
	h2.attrs = tmp.Fields
	return &h2
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	h2.groups = append(append([]string{}, h.groups...), name)
	return &h2
}

// addAttr flattens groups into dotted keys, "request.id" for slog.Group("request", "id", 1).
func addAttr(rec *Record, groups []string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		if len(attrs) == 0 {
			return
		}
		if a.Key != "" {
			groups = append(append([]string{}, groups...), a.Key)
		}
		for _, ga := range attrs {
			addAttr(rec, groups, ga)
		}
		return
	}

	key := a.Key
	for i := len(groups) - 1; i >= 0; i-- {
		key = groups[i] + "." + key
	}
	rec.Set(key, a.Value.Any())
}
