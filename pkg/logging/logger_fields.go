package logging

import (
	"math"
	"time"
)

func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

// Error records err under "error". A nil error is logged as null.
func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

func Component(name string) Field {
	return String("component", name)
}

func Stage(name string) Field {
	return String("stage", name)
}

func RunID(id string) Field {
	return String("run_id", id)
}

// Method names the community detection method of a run.
func Method(name string) Field {
	return String("method", name)
}

func Attribute(name string) Field {
	return String("attribute", name)
}

// Modularity logs an undefined (NaN) value as null.
func Modularity(q float64) Field {
	if math.IsNaN(q) {
		return Field{Key: "modularity", Value: nil}
	}
	return Float64("modularity", q)
}

// Latency is rendered with time.Duration's String form, e.g. "1.5s".
func Latency(d time.Duration) Field {
	return String("latency", d.String())
}

func Count(n int) Field {
	return Int("count", n)
}

func Path(p string) Field {
	return String("path", p)
}
