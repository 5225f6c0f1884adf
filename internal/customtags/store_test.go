package customtags

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/wrongnotebook/notebook-backend/internal/data/kv"
	"github.com/wrongnotebook/notebook-backend/internal/knowledge"
)

func newTestStore(t *testing.T) (*Store, *kv.Memory) {
	t.Helper()
	mem := kv.NewMemory()
	return NewStore(nil, mem), mem
}

func mustGet(t *testing.T, s *Store) Data {
	t.Helper()
	d, err := s.Get(context.Background())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	return d
}

func TestGetDefaults(t *testing.T) {
	ctx := context.Background()
	s, mem := newTestStore(t)

	d := mustGet(t, s)
	for _, subj := range knowledge.AllSubjects {
		if tags := d.Tags(subj); tags == nil || len(tags) != 0 {
			t.Fatalf("%s: expected empty list, got=%v", subj, tags)
		}
	}

	if err := mem.Set(ctx, StorageKey, "invalid json{"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	d = mustGet(t, s)
	if len(d.Math) != 0 || d.Math == nil {
		t.Fatalf("malformed blob should read as empty, got=%v", d.Math)
	}
}

func TestGetReadsStoredTags(t *testing.T) {
	ctx := context.Background()
	s, mem := newTestStore(t)
	_ = mem.Set(ctx, StorageKey, `{"math":[{"name":"二次函数","category":"函数"}],"english":[{"name":"完形填空","category":"default"}],"physics":[],"chemistry":[],"other":[]}`)

	d := mustGet(t, s)
	if len(d.Math) != 1 || d.Math[0].Name != "二次函数" || d.Math[0].Category != "函数" {
		t.Fatalf("math: %+v", d.Math)
	}
	if d.English[0].Name != "完形填空" {
		t.Fatalf("english: %+v", d.English)
	}
}

func TestAdd(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	ok, err := s.Add(ctx, knowledge.SubjectMath, "三角函数", "函数")
	if err != nil || !ok {
		t.Fatalf("first add: ok=%v err=%v", ok, err)
	}
	ok, err = s.Add(ctx, knowledge.SubjectMath, "三角函数", "其他")
	if err != nil || ok {
		t.Fatalf("duplicate add: ok=%v err=%v", ok, err)
	}
	ok, err = s.Add(ctx, knowledge.SubjectPhysics, "三角函数", "default")
	if err != nil || !ok {
		t.Fatalf("cross-subject add: ok=%v err=%v", ok, err)
	}

	d := mustGet(t, s)
	if len(d.Math) != 1 || d.Math[0] != (CustomTag{Name: "三角函数", Category: "函数"}) {
		t.Fatalf("math: %+v", d.Math)
	}
	if len(d.Physics) != 1 {
		t.Fatalf("physics: %+v", d.Physics)
	}
}

func TestAddTrimsAndRejects(t *testing.T) {
	ctx := context.Background()
	s, mem := newTestStore(t)

	if ok, _ := s.Add(ctx, knowledge.SubjectMath, "   ", "default"); ok {
		t.Fatalf("blank name accepted")
	}
	if ok, _ := s.Add(ctx, knowledge.Subject("history"), "X", "default"); ok {
		t.Fatalf("unknown subject accepted")
	}
	if len(mem.Keys()) != 0 {
		t.Fatalf("rejected adds should not write")
	}

	if ok, _ := s.Add(ctx, knowledge.SubjectMath, "  三角函数  ", ""); !ok {
		t.Fatalf("padded name rejected")
	}
	d := mustGet(t, s)
	if d.Math[0].Name != "三角函数" || d.Math[0].Category != DefaultCategory {
		t.Fatalf("math: %+v", d.Math)
	}
	if ok, _ := s.Add(ctx, knowledge.SubjectMath, "三角函数 ", "x"); ok {
		t.Fatalf("trimmed duplicate accepted")
	}
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	s, mem := newTestStore(t)
	_, _ = s.Add(ctx, knowledge.SubjectMath, "一元一次方程", "default")
	_, _ = s.Add(ctx, knowledge.SubjectMath, "二次函数", "default")

	before, _, _ := mem.Get(ctx, StorageKey)
	ok, err := s.Remove(ctx, knowledge.SubjectMath, "不存在的标签")
	if err != nil || ok {
		t.Fatalf("missing remove: ok=%v err=%v", ok, err)
	}
	after, _, _ := mem.Get(ctx, StorageKey)
	if before != after {
		t.Fatalf("missing remove mutated store")
	}

	ok, err = s.Remove(ctx, knowledge.SubjectMath, "一元一次方程")
	if err != nil || !ok {
		t.Fatalf("remove: ok=%v err=%v", ok, err)
	}
	d := mustGet(t, s)
	if len(d.Math) != 1 || d.Math[0].Name != "二次函数" {
		t.Fatalf("math: %+v", d.Math)
	}
}

func TestAllFlatAndIsCustomTag(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	_, _ = s.Add(ctx, knowledge.SubjectPhysics, "力学", "default")
	_, _ = s.Add(ctx, knowledge.SubjectMath, "函数", "default")
	_, _ = s.Add(ctx, knowledge.SubjectEnglish, "语法", "default")
	_, _ = s.Add(ctx, knowledge.SubjectOther, "函数", "default")

	flat, err := s.AllFlat(ctx)
	if err != nil {
		t.Fatalf("AllFlat: %v", err)
	}
	want := []string{"函数", "语法", "力学", "函数"}
	if len(flat) != len(want) {
		t.Fatalf("flat: got=%v want=%v", flat, want)
	}
	for i := range want {
		if flat[i] != want[i] {
			t.Fatalf("flat: got=%v want=%v", flat, want)
		}
	}

	if ok, _ := s.IsCustomTag(ctx, "力学"); !ok {
		t.Fatalf("expected 力学 to be custom")
	}
	if ok, _ := s.IsCustomTag(ctx, "不存在的标签"); ok {
		t.Fatalf("unexpected custom tag")
	}
}

func TestExportImport(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	_, _ = s.Add(ctx, knowledge.SubjectMath, "函数", "代数")

	exported, err := s.Export(ctx)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	var parsed Data
	if err := json.Unmarshal([]byte(exported), &parsed); err != nil {
		t.Fatalf("exported JSON: %v", err)
	}
	if len(parsed.Math) != 1 || parsed.Math[0] != (CustomTag{Name: "函数", Category: "代数"}) {
		t.Fatalf("exported math: %+v", parsed.Math)
	}

	ok, err := s.Import(ctx, `{"math":[{"name":"导入的标签","category":"测试"}],"english":["字符串格式标签"],"physics":[],"chemistry":[],"other":[]}`)
	if err != nil || !ok {
		t.Fatalf("Import: ok=%v err=%v", ok, err)
	}
	d := mustGet(t, s)
	if len(d.Math) != 1 || d.Math[0].Name != "导入的标签" {
		t.Fatalf("math: %+v", d.Math)
	}
	if d.English[0] != (CustomTag{Name: "字符串格式标签", Category: "default"}) {
		t.Fatalf("english: %+v", d.English)
	}
}

func TestImportLegacyPersistsObjectForm(t *testing.T) {
	ctx := context.Background()
	s, mem := newTestStore(t)

	ok, err := s.Import(ctx, `{"math":["A","B"]}`)
	if err != nil || !ok {
		t.Fatalf("Import: ok=%v err=%v", ok, err)
	}
	d := mustGet(t, s)
	want := []CustomTag{{Name: "A", Category: "default"}, {Name: "B", Category: "default"}}
	if len(d.Math) != 2 || d.Math[0] != want[0] || d.Math[1] != want[1] {
		t.Fatalf("math: %+v", d.Math)
	}

	raw, _, _ := mem.Get(ctx, StorageKey)
	var stored map[string][]map[string]string
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		t.Fatalf("stored blob should be in object form: %v (%s)", err, raw)
	}
}

func TestImportInvalidKeepsState(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	_, _ = s.Add(ctx, knowledge.SubjectMath, "保留", "default")

	for _, bad := range []string{"not json", "invalid json{", "[]"} {
		ok, err := s.Import(ctx, bad)
		if err != nil || ok {
			t.Fatalf("Import(%q): ok=%v err=%v", bad, ok, err)
		}
	}
	d := mustGet(t, s)
	if len(d.Math) != 1 || d.Math[0].Name != "保留" {
		t.Fatalf("state changed: %+v", d.Math)
	}
}

func TestClearAndStats(t *testing.T) {
	ctx := context.Background()
	s, mem := newTestStore(t)
	_, _ = s.Add(ctx, knowledge.SubjectMath, "标签1", "default")
	_, _ = s.Add(ctx, knowledge.SubjectMath, "标签2", "default")
	_, _ = s.Add(ctx, knowledge.SubjectEnglish, "标签3", "default")

	st, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if st.Math != 2 || st.English != 1 || st.Physics != 0 || st.Total != 3 {
		t.Fatalf("stats: %+v", st)
	}

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, ok, _ := mem.Get(ctx, StorageKey); ok {
		t.Fatalf("Clear should delete the stored blob")
	}
	st, _ = s.Stats(ctx)
	if st.Total != 0 {
		t.Fatalf("after clear: %+v", st)
	}
	if d := mustGet(t, s); len(d.Math) != 0 || d.English == nil {
		t.Fatalf("after clear: %+v", d)
	}
}

type failingKV struct{ err error }

func (f failingKV) Get(context.Context, string) (string, bool, error) { return "", false, f.err }
func (f failingKV) Set(context.Context, string, string) error { return f.err }
func (f failingKV) Remove(context.Context, string) error { return f.err }

func TestBackendFailuresPropagate(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("connection refused")
	s := NewStore(nil, failingKV{err: boom})

	if _, err := s.Get(ctx); !errors.Is(err, boom) {
		t.Fatalf("Get: err=%v", err)
	}
	if _, err := s.Add(ctx, knowledge.SubjectMath, "X", ""); !errors.Is(err, boom) {
		t.Fatalf("Add: err=%v", err)
	}
	if _, err := s.Import(ctx, `{"math":[]}`); !errors.Is(err, boom) {
		t.Fatalf("Import: err=%v", err)
	}
	if err := s.Clear(ctx); !errors.Is(err, boom) {
		t.Fatalf("Clear: err=%v", err)
	}
}
