package debugformat

import "time"

// Reserved field names. They are never rendered in the values block.
const (
	LevelKey     = "level"
	MessageKey   = "message"
	NameKey      = "name"
	TimestampKey = "@timestamp"
)

// Field is one key/value pair of a record.
type Field struct {
	Key   string
	Value any
}

// Record is a structured log entry. Fields keep their insertion order.
type Record struct {
	// Level is the level the record was emitted at. When set it wins over the
	// "level" field, which upstream stages may already have decorated.
	Level string
	// Time is the record's timestamp. The zero value means "now".
	Time   time.Time
	Fields []Field
	// Formatted receives the output of Formatter.Transform.
	Formatted string
}

// NewRecord returns a record with level and message fields followed by args,
// read as alternating keys and values. A trailing key without value, or a
// non-string key, is stored under "!BADKEY" like log/slog does.
func NewRecord(level, message string, args ...any) *Record {
	r := &Record{Fields: make([]Field, 0, 2+len(args)/2)}
	r.Set(LevelKey, level)
	r.Set(MessageKey, message)

	for len(args) > 0 {
		key, ok := args[0].(string)
		if !ok || len(args) == 1 {
			r.Set(badKey, args[0])
			args = args[1:]
			continue
		}
		r.Set(key, args[1])
		args = args[2:]
	}
	return r
}

const badKey = "!BADKEY"

// Set replaces the value of key in place, or appends it.
func (r *Record) Set(key string, value any) *Record {
	for i := range r.Fields {
		if r.Fields[i].Key == key {
			r.Fields[i].Value = value
			return r
		}
	}
	r.Fields = append(r.Fields, Field{Key: key, Value: value})
	return r
}

// Get returns the value stored under key.
func (r *Record) Get(key string) (any, bool) {
	for _, f := range r.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

func (r *Record) getString(key string) string {
	v, _ := r.Get(key)
	s, _ := v.(string)
	return s
}
