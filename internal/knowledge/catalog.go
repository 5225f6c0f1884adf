package knowledge

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed curriculum.yaml
var curriculumFS embed.FS

// CurriculumEntry is one canonical knowledge-point tag.
type CurriculumEntry struct {
	Name     string   `json:"name"`
	Grade    int      `json:"grade"`
	Semester int      `json:"semester"`
	Chapter  string   `json:"chapter"`
	Aliases  []string `json:"aliases"`
}

type Chapter struct {
	Chapter  string            `json:"chapter"`
	Sections []CurriculumEntry `json:"sections"`
}

// GradeBlock groups the chapters taught in one grade/semester, e.g. "七年级上".
type GradeBlock struct {
	Label    string
	Grade    int
	Semester int
	Chapters []Chapter
}

// Curriculum keeps grade blocks in teaching order. It encodes to JSON as an
// object keyed by label, preserving that order.
type Curriculum []GradeBlock

// Chapters returns the chapters under label.
func (c Curriculum) Chapters(label string) ([]Chapter, bool) {
	for _, b := range c {
		if b.Label == label {
			return b.Chapters, true
		}
	}
	return nil, false
}

// Labels lists the grade/semester labels in order.
func (c Curriculum) Labels() []string {
	out := make([]string, 0, len(c))
	for _, b := range c {
		out = append(out, b.Label)
	}
	return out
}

func (c Curriculum) clone() Curriculum {
	out := make(Curriculum, len(c))
	for i, b := range c {
		out[i] = b
		if b.Chapters == nil {
			continue
		}
		out[i].Chapters = make([]Chapter, len(b.Chapters))
		for j, ch := range b.Chapters {
			sections := make([]CurriculumEntry, len(ch.Sections))
			for k, e := range ch.Sections {
				e.Aliases = append(make([]string, 0, len(e.Aliases)), e.Aliases...)
				sections[k] = e
			}
			out[i].Chapters[j] = Chapter{Chapter: ch.Chapter, Sections: sections}
		}
	}
	return out
}

func (c Curriculum) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, b := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(b.Label)
		if err != nil {
			return nil, err
		}
		chapters := b.Chapters
		if chapters == nil {
			chapters = []Chapter{}
		}
		val, err := json.Marshal(chapters)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

type subjectCatalog struct {
	subject    Subject
	curriculum Curriculum
	entries    []CurriculumEntry
	byName     map[string]int
}

// Catalog is the read-only, multi-subject knowledge-point reference.
type Catalog struct {
	subjects []subjectCatalog
	// canonical name or alias -> canonical name, unique across subjects
	index map[string]string
	first string
}

type yamlCatalog struct {
	Version  int           `yaml:"version"`
	Subjects []yamlSubject `yaml:"subjects"`
}

type yamlSubject struct {
	Code   string      `yaml:"code"`
	Grades []yamlGrade `yaml:"grades"`
}

type yamlGrade struct {
	Label    string        `yaml:"label"`
	Grade    int           `yaml:"grade"`
	Semester int           `yaml:"semester"`
	Chapters []yamlChapter `yaml:"chapters"`
}

type yamlChapter struct {
	Chapter  string      `yaml:"chapter"`
	Sections []yamlEntry `yaml:"sections"`
}

type yamlEntry struct {
	Name    string   `yaml:"name"`
	Aliases []string `yaml:"aliases"`
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the process-wide catalog parsed from the embedded curriculum.
// It panics if the embedded file is invalid.
func Default() *Catalog {
	defaultOnce.Do(func() {
		data, err := curriculumFS.ReadFile("curriculum.yaml")
		if err != nil {
			panic(fmt.Sprintf("knowledge: read embedded curriculum: %v", err))
		}
		c, err := Parse(data)
		if err != nil {
			panic(fmt.Sprintf("knowledge: parse embedded curriculum: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// LoadFile parses a curriculum YAML file from disk.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read curriculum %s: %w", path, err)
	}
	return Parse(data)
}

// Parse builds a catalog from curriculum YAML. It rejects duplicate names
// within a subject and any name or alias that would resolve to two different
// tags, so every canonical name normalizes to itself.
func Parse(data []byte) (*Catalog, error) {
	var raw yamlCatalog
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode curriculum: %w", err)
	}
	if len(raw.Subjects) == 0 {
		return nil, errors.New("curriculum has no subjects")
	}

	c := &Catalog{index: map[string]string{}}
	seenSubjects := map[Subject]bool{}
	for _, ys := range raw.Subjects {
		subject, ok := ParseSubject(ys.Code)
		if !ok || subject == SubjectOther {
			return nil, fmt.Errorf("unknown subject code %q", ys.Code)
		}
		if seenSubjects[subject] {
			return nil, fmt.Errorf("duplicate subject %q", subject)
		}
		seenSubjects[subject] = true

		sc, err := buildSubject(subject, ys)
		if err != nil {
			return nil, err
		}
		c.subjects = append(c.subjects, sc)
	}

	for _, sc := range c.subjects {
		for _, e := range sc.entries {
			if c.first == "" {
				c.first = e.Name
			}
			if err := c.register(sc.subject, e.Name, e.Name); err != nil {
				return nil, err
			}
			for _, a := range e.Aliases {
				if err := c.register(sc.subject, a, e.Name); err != nil {
					return nil, err
				}
			}
		}
	}
	return c, nil
}

// register maps key to canonical. The same canonical name may appear in
// several subjects, but a key may never resolve to two different tags.
func (c *Catalog) register(subject Subject, key, canonical string) error {
	prev, exists := c.index[key]
	if !exists {
		c.index[key] = canonical
		return nil
	}
	if prev != canonical {
		return fmt.Errorf("%s: %q of %q collides with %q in another subject", subject, key, canonical, prev)
	}
	return nil
}

func buildSubject(subject Subject, ys yamlSubject) (subjectCatalog, error) {
	sc := subjectCatalog{subject: subject, byName: map[string]int{}}
	// every name and alias in this subject -> owning entry name
	owner := map[string]string{}
	labels := map[string]bool{}

	for _, yg := range ys.Grades {
		label := strings.TrimSpace(yg.Label)
		if label == "" {
			return sc, fmt.Errorf("%s: grade block without label", subject)
		}
		if labels[label] {
			return sc, fmt.Errorf("%s: duplicate grade label %q", subject, label)
		}
		labels[label] = true
		if yg.Grade < 1 || yg.Grade > 12 {
			return sc, fmt.Errorf("%s/%s: grade %d out of range", subject, label, yg.Grade)
		}
		if yg.Semester != 1 && yg.Semester != 2 {
			return sc, fmt.Errorf("%s/%s: semester must be 1 or 2", subject, label)
		}

		block := GradeBlock{Label: label, Grade: yg.Grade, Semester: yg.Semester}
		for _, ych := range yg.Chapters {
			title := strings.TrimSpace(ych.Chapter)
			if title == "" {
				return sc, fmt.Errorf("%s/%s: chapter without title", subject, label)
			}
			ch := Chapter{Chapter: title, Sections: make([]CurriculumEntry, 0, len(ych.Sections))}
			for _, ye := range ych.Sections {
				name := strings.TrimSpace(ye.Name)
				if name == "" {
					return sc, fmt.Errorf("%s/%s/%s: section without name", subject, label, title)
				}
				if prev, ok := owner[name]; ok {
					return sc, fmt.Errorf("%s: tag %q collides with %q", subject, name, prev)
				}
				owner[name] = name

				aliases := make([]string, 0, len(ye.Aliases))
				for _, a := range ye.Aliases {
					a = strings.TrimSpace(a)
					if a == "" || a == name {
						continue
					}
					if prev, ok := owner[a]; ok {
						if prev == name {
							continue
						}
						return sc, fmt.Errorf("%s: alias %q of %q collides with %q", subject, a, name, prev)
					}
					owner[a] = name
					aliases = append(aliases, a)
				}

				entry := CurriculumEntry{
					Name:     name,
					Grade:    yg.Grade,
					Semester: yg.Semester,
					Chapter:  title,
					Aliases:  aliases,
				}
				ch.Sections = append(ch.Sections, entry)
				sc.byName[name] = len(sc.entries)
				sc.entries = append(sc.entries, entry)
			}
			block.Chapters = append(block.Chapters, ch)
		}
		sc.curriculum = append(sc.curriculum, block)
	}
	return sc, nil
}

func (c *Catalog) subject(s Subject) *subjectCatalog {
	for i := range c.subjects {
		if c.subjects[i].subject == s {
			return &c.subjects[i]
		}
	}
	return nil
}

// Subjects lists the catalogued subjects in traversal order.
func (c *Catalog) Subjects() []Subject {
	out := make([]Subject, 0, len(c.subjects))
	for _, sc := range c.subjects {
		out = append(out, sc.subject)
	}
	return out
}

// AllStandardTags flattens every subject's canonical tags in traversal order.
// Identical names in different subjects are kept.
func (c *Catalog) AllStandardTags() []string {
	out := []string{}
	for _, sc := range c.subjects {
		for _, e := range sc.entries {
			out = append(out, e.Name)
		}
	}
	return out
}

func (c *Catalog) SubjectTags(s Subject) []string {
	out := []string{}
	sc := c.subject(s)
	if sc == nil {
		return out
	}
	for _, e := range sc.entries {
		out = append(out, e.Name)
	}
	return out
}

func (c *Catalog) AllMathTags() []string {
	return c.SubjectTags(SubjectMath)
}

// MathTagsByGrade returns the math tags taught in grade. semester 1 or 2
// narrows the result; any other value matches both semesters.
func (c *Catalog) MathTagsByGrade(grade, semester int) []string {
	out := []string{}
	sc := c.subject(SubjectMath)
	if sc == nil {
		return out
	}
	for _, e := range sc.entries {
		if e.Grade != grade {
			continue
		}
		if (semester == 1 || semester == 2) && e.Semester != semester {
			continue
		}
		out = append(out, e.Name)
	}
	return out
}

func (c *Catalog) MathTagsByChapter(chapter string) []string {
	out := []string{}
	sc := c.subject(SubjectMath)
	if sc == nil {
		return out
	}
	for _, e := range sc.entries {
		if e.Chapter == chapter {
			out = append(out, e.Name)
		}
	}
	return out
}

func (c *Catalog) MathTagInfo(name string) (CurriculumEntry, bool) {
	sc := c.subject(SubjectMath)
	if sc == nil {
		return CurriculumEntry{}, false
	}
	i, ok := sc.byName[name]
	if !ok {
		return CurriculumEntry{}, false
	}
	e := sc.entries[i]
	e.Aliases = append(make([]string, 0, len(e.Aliases)), e.Aliases...)
	return e, true
}

// MathCurriculum returns a copy of the math curriculum; callers may modify it.
func (c *Catalog) MathCurriculum() Curriculum {
	sc := c.subject(SubjectMath)
	if sc == nil {
		return Curriculum{}
	}
	return sc.curriculum.clone()
}

func AllStandardTags() []string { return Default().AllStandardTags() }
func AllMathTags() []string { return Default().AllMathTags() }
func MathTagsByGrade(grade, semester int) []string { return Default().MathTagsByGrade(grade, semester) }
func MathTagsByChapter(chapter string) []string { return Default().MathTagsByChapter(chapter) }
func MathTagInfo(name string) (CurriculumEntry, bool) { return Default().MathTagInfo(name) }
func MathCurriculum() Curriculum { return Default().MathCurriculum() }
