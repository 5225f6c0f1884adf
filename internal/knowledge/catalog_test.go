package knowledge

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestDefaultCatalogLoads(t *testing.T) {
	c := Default()
	if c == nil {
		t.Fatalf("Default returned nil")
	}
	if Default() != c {
		t.Fatalf("Default should return the same instance")
	}
	got := c.Subjects()
	want := []Subject{SubjectMath, SubjectPhysics, SubjectChemistry, SubjectEnglish}
	if len(got) != len(want) {
		t.Fatalf("subjects: got=%v want=%v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("subjects[%d]: got=%q want=%q", i, got[i], want[i])
		}
	}
}

func TestAllStandardTags(t *testing.T) {
	tags := AllStandardTags()
	if len(tags) == 0 {
		t.Fatalf("expected standard tags")
	}
	if tags[0] != "正数和负数" {
		t.Fatalf("first tag: got=%q", tags[0])
	}
	foundEquation := false
	for _, tag := range tags {
		if strings.Contains(tag, "方程") || strings.Contains(tag, "函数") {
			foundEquation = true
			break
		}
	}
	if !foundEquation {
		t.Fatalf("expected a math tag containing 方程 or 函数")
	}
	math := AllMathTags()
	if len(tags) <= len(math) {
		t.Fatalf("standard tags should include other subjects: all=%d math=%d", len(tags), len(math))
	}
	for i, tag := range math {
		if tags[i] != tag {
			t.Fatalf("math tags should lead the flattened list: idx=%d got=%q want=%q", i, tags[i], tag)
		}
	}
}

func TestMathTagsByGrade(t *testing.T) {
	all7 := MathTagsByGrade(7, 0)
	first := MathTagsByGrade(7, 1)
	second := MathTagsByGrade(7, 2)
	if len(first) == 0 || len(second) == 0 {
		t.Fatalf("expected both semesters: first=%d second=%d", len(first), len(second))
	}
	if len(all7) != len(first)+len(second) {
		t.Fatalf("grade 7: got=%d want=%d", len(all7), len(first)+len(second))
	}
	for _, tag := range first {
		info, ok := MathTagInfo(tag)
		if !ok || info.Grade != 7 || info.Semester != 1 {
			t.Fatalf("tag %q: info=%+v ok=%v", tag, info, ok)
		}
	}
	if got := MathTagsByGrade(10, 0); len(got) == 0 {
		t.Fatalf("expected senior high tags for grade 10")
	}
	if got := MathTagsByGrade(3, 0); got == nil || len(got) != 0 {
		t.Fatalf("unknown grade: got=%v", got)
	}
}

func TestMathTagsByChapter(t *testing.T) {
	got := MathTagsByChapter("第1章 有理数")
	if len(got) == 0 || got[0] != "正数和负数" {
		t.Fatalf("chapter tags: got=%v", got)
	}
	if got := MathTagsByChapter("不存在的章节"); got == nil || len(got) != 0 {
		t.Fatalf("unknown chapter: got=%v", got)
	}
}

func TestMathTagInfo(t *testing.T) {
	info, ok := MathTagInfo("一元一次方程")
	if !ok {
		t.Fatalf("expected info for 一元一次方程")
	}
	if info.Name != "一元一次方程" || info.Grade != 7 || info.Chapter != "第5章 一元一次方程" {
		t.Fatalf("unexpected info: %+v", info)
	}
	if _, ok := MathTagInfo("不存在的标签xyz"); ok {
		t.Fatalf("expected no info for unknown tag")
	}
	// aliases are not canonical names
	if _, ok := MathTagInfo("移项"); ok {
		t.Fatalf("alias should not resolve through MathTagInfo")
	}
}

func TestMathCurriculum(t *testing.T) {
	cur := MathCurriculum()
	chapters, ok := cur.Chapters("七年级上")
	if !ok || len(chapters) == 0 {
		t.Fatalf("expected chapters for 七年级上")
	}
	if chapters[0].Chapter == "" || len(chapters[0].Sections) == 0 {
		t.Fatalf("unexpected first chapter: %+v", chapters[0])
	}
	if _, ok := cur.Chapters("七年级下"); !ok {
		t.Fatalf("expected 七年级下")
	}

	raw, err := json.Marshal(cur)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string][]Chapter
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(decoded) != len(cur) {
		t.Fatalf("labels: got=%d want=%d", len(decoded), len(cur))
	}
	if got := decoded["七年级上"]; len(got) == 0 || got[0].Chapter != "第1章 有理数" {
		t.Fatalf("decoded 七年级上: %+v", got)
	}
	labels := cur.Labels()
	if !strings.HasPrefix(string(raw), `{"`+labels[0]+`"`) {
		t.Fatalf("expected label order preserved, got prefix %q", string(raw[:20]))
	}
}

func TestMathCurriculumReturnsCopy(t *testing.T) {
	cur := MathCurriculum()
	first := cur[0].Chapters[0].Sections[0]
	cur[0].Label = "changed"
	cur[0].Chapters[0].Chapter = "changed"
	cur[0].Chapters[0].Sections[0].Name = "changed"
	if len(first.Aliases) > 0 {
		cur[0].Chapters[0].Sections[0].Aliases[0] = "changed"
	}

	again := MathCurriculum()
	if again[0].Label == "changed" || again[0].Chapters[0].Chapter == "changed" {
		t.Fatalf("curriculum mutated through a returned copy")
	}
	got := again[0].Chapters[0].Sections[0]
	if got.Name != first.Name || len(got.Aliases) != len(first.Aliases) {
		t.Fatalf("section mutated: %+v", got)
	}
	for i := range got.Aliases {
		if got.Aliases[i] == "changed" {
			t.Fatalf("aliases mutated: %v", got.Aliases)
		}
	}
}

func TestParseRejectsCollisions(t *testing.T) {
	cases := map[string]string{
		"duplicate name": `
subjects:
  - code: math
    grades:
      - label: 七年级上
        grade: 7
        semester: 1
        chapters:
          - chapter: c1
            sections:
              - name: A
              - name: A
`,
		"alias collides with name": `
subjects:
  - code: math
    grades:
      - label: 七年级上
        grade: 7
        semester: 1
        chapters:
          - chapter: c1
            sections:
              - name: A
              - name: B
                aliases: [A]
`,
		"alias collides with alias": `
subjects:
  - code: math
    grades:
      - label: 七年级上
        grade: 7
        semester: 1
        chapters:
          - chapter: c1
            sections:
              - name: A
                aliases: [x]
              - name: B
                aliases: [x]
`,
		"unknown subject": `
subjects:
  - code: history
    grades: []
`,
		"bad semester": `
subjects:
  - code: math
    grades:
      - label: 七年级
        grade: 7
        semester: 3
        chapters: []
`,
		"empty": `subjects: []`,
	}
	for name, doc := range cases {
		name, doc := name, doc
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(doc)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestParseAllowsCrossSubjectDuplicates(t *testing.T) {
	doc := `
subjects:
  - code: math
    grades:
      - label: 八年级上
        grade: 8
        semester: 1
        chapters:
          - chapter: c1
            sections:
              - name: 图像
                aliases: [图象]
  - code: physics
    grades:
      - label: 八年级上
        grade: 8
        semester: 1
        chapters:
          - chapter: c1
            sections:
              - name: 图像
                aliases: [图象]
`
	c, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := c.AllStandardTags(); len(got) != 2 {
		t.Fatalf("tags: %v", got)
	}
	if got := c.NormalizeTag("图像"); got != "图像" {
		t.Fatalf("NormalizeTag: got=%q", got)
	}
	if got := c.NormalizeTag("图象"); got != "图像" {
		t.Fatalf("NormalizeTag alias: got=%q", got)
	}
}

func TestParseRejectsCrossSubjectShadowing(t *testing.T) {
	cases := map[string]string{
		"alias shadows other subject's tag": `
subjects:
  - code: math
    grades:
      - label: 八年级上
        grade: 8
        semester: 1
        chapters:
          - chapter: c1
            sections:
              - name: 函数的概念
                aliases: [速度]
  - code: physics
    grades:
      - label: 八年级上
        grade: 8
        semester: 1
        chapters:
          - chapter: c1
            sections:
              - name: 速度
`,
		"tag shadowed by earlier alias": `
subjects:
  - code: math
    grades:
      - label: 八年级上
        grade: 8
        semester: 1
        chapters:
          - chapter: c1
            sections:
              - name: 速度
  - code: physics
    grades:
      - label: 八年级上
        grade: 8
        semester: 1
        chapters:
          - chapter: c1
            sections:
              - name: 运动的快慢
                aliases: [速度]
`,
		"alias shared by different tags": `
subjects:
  - code: math
    grades:
      - label: 八年级上
        grade: 8
        semester: 1
        chapters:
          - chapter: c1
            sections:
              - name: 一次函数
                aliases: [斜率]
  - code: physics
    grades:
      - label: 八年级上
        grade: 8
        semester: 1
        chapters:
          - chapter: c1
            sections:
              - name: 速度图像
                aliases: [斜率]
`,
	}
	for name, doc := range cases {
		name, doc := name, doc
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(doc)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
