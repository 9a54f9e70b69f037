package normalizer

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/pjogani/vedics-api/internal/domain"
)

func mustStructured(t *testing.T, raw string) map[string]any {
	t.Helper()
	reply := Normalize(raw)
	if reply.Kind != domain.ReplyStructured {
		t.Fatalf("Normalize(%q): kind = %v, want structured (text: %q)", raw, reply.Kind, reply.Text)
	}
	var out map[string]any
	if err := json.Unmarshal(reply.Value, &out); err != nil {
		t.Fatalf("Normalize(%q): invalid JSON value %q: %v", raw, reply.Value, err)
	}
	return out
}

func TestNormalizeValidJSON(t *testing.T) {
	out := mustStructured(t, `{"summary": "All good", "score": 7}`)
	if out["summary"] != "All good" || out["score"] != float64(7) {
		t.Errorf("unexpected result: %v", out)
	}
}

func TestNormalizeCodeFence(t *testing.T) {
	raw := "```json\n{\"a\": 1}\n```"
	out := mustStructured(t, raw)
	if out["a"] != float64(1) {
		t.Errorf("unexpected result: %v", out)
	}
}

func TestNormalizeFenceWithoutLanguage(t *testing.T) {
	out := mustStructured(t, "```\n{\"a\": \"b\"}\n```")
	if out["a"] != "b" {
		t.Errorf("unexpected result: %v", out)
	}
}

func TestNormalizeWrappingQuotes(t *testing.T) {
	out := mustStructured(t, `'{"a": 1}'`)
	if out["a"] != float64(1) {
		t.Errorf("unexpected result: %v", out)
	}
}

func TestNormalizeSingleQuotes(t *testing.T) {
	out := mustStructured(t, `{'a': 'b'}`)
	if out["a"] != "b" {
		t.Errorf("unexpected result: %v", out)
	}
}

func TestNormalizeSingleQuotesNested(t *testing.T) {
	out := mustStructured(t, `{'items': ['x', 'y'], 'n': 2}`)
	items, ok := out["items"].([]any)
	if !ok || !reflect.DeepEqual(items, []any{"x", "y"}) {
		t.Errorf("unexpected items: %v", out["items"])
	}
}

func TestNormalizeApostrophePreserved(t *testing.T) {
	out := mustStructured(t, `{"note": "it's fine"}`)
	if out["note"] != "it's fine" {
		t.Errorf("apostrophe mangled: %v", out["note"])
	}
}

func TestNormalizePythonLiterals(t *testing.T) {
	out := mustStructured(t, `{"a": None, "b": True, "c": False}`)
	if out["a"] != nil || out["b"] != true || out["c"] != false {
		t.Errorf("unexpected result: %v", out)
	}
}

func TestNormalizeInnerQuotes(t *testing.T) {
	out := mustStructured(t, `{"quote": "he said "hello" to me"}`)
	if out["quote"] != `he said "hello" to me` {
		t.Errorf("unexpected result: %q", out["quote"])
	}
}

func TestNormalizeBraceSubstring(t *testing.T) {
	out := mustStructured(t, `Here is your reading: {"a": 1} hope it helps`)
	if out["a"] != float64(1) {
		t.Errorf("unexpected result: %v", out)
	}
}

func TestNormalizePlainTextFallsBack(t *testing.T) {
	raw := "The stars are quiet today."
	reply := Normalize(raw)
	if reply.Kind != domain.ReplyRaw {
		t.Fatalf("kind = %v, want raw", reply.Kind)
	}
	if reply.Text != raw {
		t.Errorf("raw text changed: %q", reply.Text)
	}
}

func TestNormalizeEmptyInput(t *testing.T) {
	reply := Normalize("   ")
	if reply.Kind != domain.ReplyRaw {
		t.Fatalf("kind = %v, want raw", reply.Kind)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	raws := []string{
		`{'a': 'b'}`,
		"```json\n{\"a\": None}\n```",
		`{"quote": "say "hi""}`,
	}
	for _, raw := range raws {
		first := Normalize(raw)
		if first.Kind != domain.ReplyStructured {
			t.Fatalf("Normalize(%q) not structured", raw)
		}
		second := Normalize(string(first.Value))
		if second.Kind != domain.ReplyStructured {
			t.Fatalf("second pass over %q not structured", first.Value)
		}
		if string(first.Value) != string(second.Value) {
			t.Errorf("not idempotent: %q vs %q", first.Value, second.Value)
		}
	}
}

func TestEscapeInnerQuotesIdempotent(t *testing.T) {
	in := `{"a": "say \"hi\" now"}`
	if got := escapeInnerQuotes(in); got != in {
		t.Errorf("already-escaped input changed: %q", got)
	}
}

func TestContentWrapping(t *testing.T) {
	raw := Normalize("just words")
	content := raw.Content()
	var out map[string]any
	if err := json.Unmarshal(content, &out); err != nil {
		t.Fatalf("Content() is not JSON: %v", err)
	}
	if out["raw"] != "just words" {
		t.Errorf("unexpected wrapped content: %v", out)
	}
}
