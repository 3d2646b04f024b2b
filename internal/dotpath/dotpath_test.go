package dotpath

import (
	"reflect"
	"testing"
)

func sampleDoc() map[string]any {
	return map[string]any{
		"test": "test",
		"tests": map[string]any{
			"test1": "Test1",
		},
		"server": map[string]any{
			"listen": map[string]any{
				"host": "127.0.0.1",
				"port": float64(8080),
			},
			"tags": []any{"a", "b"},
		},
		"empty": map[string]any{},
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want any
	}{
		{"top-level string", "test", "test"},
		{"nested string", "tests.test1", "Test1"},
		{"deeply nested", "server.listen.host", "127.0.0.1"},
		{"number value", "server.listen.port", float64(8080)},
		{"object value", "tests", map[string]any{"test1": "Test1"}},
		{"missing top-level", "nope", "nope"},
		{"missing nested", "tests.missing", "tests.missing"},
		{"missing below empty object", "empty.anything", "empty.anything"},
		{"path through scalar", "test.deeper", "test.deeper"},
		{"path through array", "server.tags.0", "server.tags.0"},
		{"empty key", "", ""},
		{"double dot", "server..listen", "server..listen"},
	}

	doc := sampleDoc()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(doc, tt.key)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Resolve(doc, %q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestResolveFallbackIsFullKey(t *testing.T) {
	doc := map[string]any{
		"a": map[string]any{
			"b": map[string]any{},
		},
	}

	got := Resolve(doc, "a.b.missing")
	if got != "a.b.missing" {
		t.Errorf("Resolve() = %v, want the literal key %q", got, "a.b.missing")
	}
}

func TestResolveNonObjectRoot(t *testing.T) {
	for _, root := range []any{"scalar", float64(42), []any{"x"}, nil, true} {
		got := Resolve(root, "a.b")
		if got != "a.b" {
			t.Errorf("Resolve(%v, \"a.b\") = %v, want \"a.b\"", root, got)
		}
	}
}

func TestAssign(t *testing.T) {
	doc := sampleDoc()

	root := Assign(doc, "server.listen.port", float64(9090))
	if got := Resolve(root, "server.listen.port"); got != float64(9090) {
		t.Errorf("after Assign, Resolve() = %v, want 9090", got)
	}

	// Sibling values survive the write.
	if got := Resolve(root, "server.listen.host"); got != "127.0.0.1" {
		t.Errorf("sibling value changed: got %v, want 127.0.0.1", got)
	}
}

func TestAssignCreatesIntermediates(t *testing.T) {
	root := Assign(map[string]any{}, "a.b.c", "deep")

	if got := Resolve(root, "a.b.c"); got != "deep" {
		t.Errorf("Resolve(a.b.c) = %v, want \"deep\"", got)
	}

	if _, ok := root["a"].(map[string]any); !ok {
		t.Errorf("intermediate \"a\" is %T, want object", root["a"])
	}
}

func TestAssignOverwritesScalarIntermediate(t *testing.T) {
	doc := map[string]any{"a": map[string]any{"b": "scalar"}}

	root := Assign(doc, "a.b.c", float64(1))
	if got := Resolve(root, "a.b.c"); got != float64(1) {
		t.Errorf("Resolve(a.b.c) = %v, want 1", got)
	}

	// The scalar previously at a.b is gone, replaced by an object.
	if _, ok := root["a"].(map[string]any)["b"].(map[string]any); !ok {
		t.Error("intermediate a.b was not replaced by an object")
	}
}

func TestAssignReplacesNonObjectRoot(t *testing.T) {
	root := Assign("just a string", "a.b", true)

	if got := Resolve(root, "a.b"); got != true {
		t.Errorf("Resolve(a.b) = %v, want true", got)
	}
}

func TestAssignTopLevelKey(t *testing.T) {
	root := Assign(map[string]any{"keep": "me"}, "added", "value")

	if root["added"] != "value" {
		t.Errorf("root[added] = %v, want \"value\"", root["added"])
	}
	if root["keep"] != "me" {
		t.Errorf("root[keep] = %v, want \"me\"", root["keep"])
	}
}

func TestKeys(t *testing.T) {
	got := Keys(sampleDoc())
	want := []string{
		"empty",
		"server.listen.host",
		"server.listen.port",
		"server.tags",
		"test",
		"tests.test1",
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
}

func TestKeysNonObjectRoot(t *testing.T) {
	if got := Keys([]any{"a"}); got != nil {
		t.Errorf("Keys(array) = %v, want nil", got)
	}
}

func BenchmarkResolve(b *testing.B) {
	doc := sampleDoc()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Resolve(doc, "server.listen.port")
	}
}

func BenchmarkResolveMissing(b *testing.B) {
	doc := sampleDoc()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Resolve(doc, "server.listen.missing")
	}
}

func BenchmarkAssign(b *testing.B) {
	doc := sampleDoc()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Assign(doc, "server.listen.port", i)
	}
}
