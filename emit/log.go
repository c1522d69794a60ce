// SPDX-License-Identifier: MIT

package emit

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strings"
	"sync"
)

// LogEmitter writes events as text lines or JSON lines.
//
// Text:
//
//	[iteration] run=gd-1 step=3 alg=gradient_descent norm=0.25 step_size=0.5
//
// JSON:
//
//	{"run":"gd-1","step":3,"alg":"gradient_descent","msg":"iteration","meta":{"norm":0.25}}
type LogEmitter struct {
	mu       sync.Mutex
	writer   io.Writer
	jsonMode bool
}

// NewLogEmitter creates a LogEmitter; a nil writer means os.Stderr.
func NewLogEmitter(writer io.Writer, jsonMode bool) *LogEmitter {
	if writer == nil {
		writer = os.Stderr
	}

	return &LogEmitter{writer: writer, jsonMode: jsonMode}
}

// Emit writes one line for event.
func (l *LogEmitter) Emit(event Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.jsonMode {
		l.emitJSON(event)
	} else {
		l.emitText(event)
	}
}

func (l *LogEmitter) emitJSON(event Event) {
	data, err := json.Marshal(struct {
		RunID     string         `json:"run"`
		Step      int            `json:"step"`
		Algorithm string         `json:"alg,omitempty"`
		Msg       string         `json:"msg"`
		Meta      map[string]any `json:"meta,omitempty"`
	}{
		RunID:     event.RunID,
		Step:      event.Step,
		Algorithm: event.Algorithm,
		Msg:       event.Msg,
		Meta:      jsonSafe(event.Meta),
	})
	if err != nil {
		fmt.Fprintf(l.writer, "{\"error\":\"failed to marshal event: %v\"}\n", err)
		return
	}
	fmt.Fprintf(l.writer, "%s\n", data)
}

func (l *LogEmitter) emitText(event Event) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] run=%s", event.Msg, event.RunID)
	if event.Step > 0 {
		fmt.Fprintf(&sb, " step=%d", event.Step)
	}
	if event.Algorithm != "" {
		fmt.Fprintf(&sb, " alg=%s", event.Algorithm)
	}
	for _, k := range sortedKeys(event.Meta) {
		fmt.Fprintf(&sb, " %s=%v", k, event.Meta[k])
	}
	sb.WriteByte('\n')
	_, _ = io.WriteString(l.writer, sb.String())
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

// jsonSafe replaces values encoding/json rejects (NaN, ±Inf) with their text,
// both as scalars and inside []float64 points.
func jsonSafe(meta map[string]any) map[string]any {
	if len(meta) == 0 {
		return nil
	}
	out := make(map[string]any, len(meta))
	for k, v := range meta {
		switch val := v.(type) {
		case float64:
			out[k] = safeFloat(val)
		case []float64:
			out[k] = safeFloats(val)
		default:
			out[k] = v
		}
	}

	return out
}

func safeFloat(f float64) any {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Sprint(f)
	}

	return f
}

// safeFloats keeps finite slices as they are; otherwise every element is
// converted so the array stays positional.
func safeFloats(v []float64) any {
	finite := true
	for _, f := range v {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			finite = false
			break
		}
	}
	if finite {
		return v
	}
	out := make([]any, len(v))
	for i, f := range v {
		out[i] = safeFloat(f)
	}

	return out
}
