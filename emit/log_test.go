package emit_test

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/katalvlaran/polyopt/emit"
	"github.com/stretchr/testify/require"
)

func TestLogEmitterText(t *testing.T) {
	var buf bytes.Buffer
	e := emit.NewLogEmitter(&buf, false)

	e.Emit(emit.Event{RunID: "r1", Step: 2, Algorithm: "gradient_descent", Msg: emit.MsgIteration,
		Meta: map[string]any{"norm": 0.5, "step_size": 0.25}})
	e.Emit(emit.Event{RunID: "r1", Msg: emit.MsgRunStart})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, "[iteration] run=r1 step=2 alg=gradient_descent norm=0.5 step_size=0.25", lines[0])
	require.Equal(t, "[run_start] run=r1", lines[1])
}

func TestLogEmitterJSON(t *testing.T) {
	var buf bytes.Buffer
	e := emit.NewLogEmitter(&buf, true)

	e.Emit(emit.Event{RunID: "r2", Step: 1, Algorithm: "newtons_method", Msg: emit.MsgIteration,
		Meta: map[string]any{"norm": math.Inf(1), "outcome": "diverged"}})

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Equal(t, "r2", got["run"])
	require.Equal(t, "iteration", got["msg"])
	require.Equal(t, "newtons_method", got["alg"])
	meta := got["meta"].(map[string]any)
	require.Equal(t, "+Inf", meta["norm"])
	require.Equal(t, "diverged", meta["outcome"])
}

func TestLogEmitterJSONNonFinitePoint(t *testing.T) {
	var buf bytes.Buffer
	e := emit.NewLogEmitter(&buf, true)

	e.Emit(emit.Event{RunID: "r3", Step: 7, Msg: emit.MsgIteration,
		Meta: map[string]any{"norm": math.NaN(), "x": []float64{math.NaN(), 1}, "next": []float64{2, 3}}})

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got), buf.String())
	require.Equal(t, "iteration", got["msg"])
	meta := got["meta"].(map[string]any)
	require.Equal(t, "NaN", meta["norm"])
	require.Equal(t, []any{"NaN", 1.0}, meta["x"])
	require.Equal(t, []any{2.0, 3.0}, meta["next"])
}

func TestMultiAndNullEmitter(t *testing.T) {
	var a, b bytes.Buffer
	m := emit.NewMultiEmitter(emit.NewLogEmitter(&a, false), nil, emit.NewNullEmitter(), emit.NewLogEmitter(&b, false))
	m.Emit(emit.Event{RunID: "x", Msg: emit.MsgRunEnd})

	require.Equal(t, "[run_end] run=x\n", a.String())
	require.Equal(t, a.String(), b.String())
}
