package customtags

import (
	"encoding/json"
	"testing"
)

func TestDecodeMigratesLegacyStrings(t *testing.T) {
	d, err := Decode([]byte(`{"math":["一元一次方程","二元一次方程"],"english":["语法"],"physics":[],"chemistry":[],"other":[]}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := []CustomTag{{Name: "一元一次方程", Category: "default"}, {Name: "二元一次方程", Category: "default"}}
	if len(d.Math) != len(want) {
		t.Fatalf("math: got=%v", d.Math)
	}
	for i := range want {
		if d.Math[i] != want[i] {
			t.Fatalf("math[%d]: got=%+v want=%+v", i, d.Math[i], want[i])
		}
	}
	if len(d.English) != 1 || d.English[0].Name != "语法" {
		t.Fatalf("english: got=%v", d.English)
	}
}

func TestDecodeMixedAndMalformedElements(t *testing.T) {
	d, err := Decode([]byte(`{
		"math": ["A", {"name":"B","category":"函数"}, {"name":"C"}, 42, null, true, {"category":"x"}, "  ", "A"],
		"physics": "not-a-list",
		"unknown": ["ignored"]
	}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := []CustomTag{
		{Name: "A", Category: "default"},
		{Name: "B", Category: "函数"},
		{Name: "C", Category: "default"},
	}
	if len(d.Math) != len(want) {
		t.Fatalf("math: got=%+v", d.Math)
	}
	for i := range want {
		if d.Math[i] != want[i] {
			t.Fatalf("math[%d]: got=%+v want=%+v", i, d.Math[i], want[i])
		}
	}
	if d.Physics == nil || len(d.Physics) != 0 {
		t.Fatalf("physics should be empty, got=%v", d.Physics)
	}
	if d.Other == nil {
		t.Fatalf("missing subjects should decode as empty lists")
	}
}

func TestDecodeRejectsInvalidPayloads(t *testing.T) {
	for _, raw := range []string{"invalid json{", "not json", "", "null", "[]", `"x"`, "42"} {
		if _, err := Decode([]byte(raw)); err == nil {
			t.Fatalf("Decode(%q): expected error", raw)
		}
	}
}

func TestEncodeEmitsAllSubjectsAsObjects(t *testing.T) {
	b, err := Encode(Data{Math: []CustomTag{{Name: "A", Category: "default"}}})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	var generic map[string][]map[string]string
	if err := json.Unmarshal(b, &generic); err != nil {
		t.Fatalf("unmarshal: %v (%s)", err, b)
	}
	for _, key := range []string{"math", "english", "physics", "chemistry", "other"} {
		if _, ok := generic[key]; !ok {
			t.Fatalf("missing %q in %s", key, b)
		}
		if generic[key] == nil {
			t.Fatalf("%q encoded as null in %s", key, b)
		}
	}
	if generic["math"][0]["name"] != "A" || generic["math"][0]["category"] != "default" {
		t.Fatalf("math: %v", generic["math"])
	}
}
