package customtags

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/wrongnotebook/notebook-backend/internal/knowledge"
)

const DefaultCategory = "default"

type CustomTag struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

// Data holds one ordered tag list per subject.
type Data struct {
	Math      []CustomTag `json:"math"`
	English   []CustomTag `json:"english"`
	Physics   []CustomTag `json:"physics"`
	Chemistry []CustomTag `json:"chemistry"`
	Other     []CustomTag `json:"other"`
}

// Empty returns the all-empty structure with every list non-nil.
func Empty() Data {
	return Data{
		Math:      []CustomTag{},
		English:   []CustomTag{},
		Physics:   []CustomTag{},
		Chemistry: []CustomTag{},
		Other:     []CustomTag{},
	}
}

func (d *Data) list(s knowledge.Subject) *[]CustomTag {
	switch s {
	case knowledge.SubjectMath:
		return &d.Math
	case knowledge.SubjectEnglish:
		return &d.English
	case knowledge.SubjectPhysics:
		return &d.Physics
	case knowledge.SubjectChemistry:
		return &d.Chemistry
	case knowledge.SubjectOther:
		return &d.Other
	default:
		return nil
	}
}

// Tags returns the tags stored for s, or nil for an unknown subject.
func (d Data) Tags(s knowledge.Subject) []CustomTag {
	if l := d.list(s); l != nil {
		return *l
	}
	return nil
}

func (d *Data) fillNil() {
	for _, s := range knowledge.AllSubjects {
		if l := d.list(s); *l == nil {
			*l = []CustomTag{}
		}
	}
}

var errNotObject = errors.New("custom tags: payload is not a JSON object")

// Decode parses a stored or imported payload. Each subject list may hold
// objects ({name, category}) or legacy plain strings; both come back as
// CustomTag with the category defaulted. Elements of any other shape,
// blank names and repeated names within a subject are dropped. Only
// invalid JSON or a non-object payload is an error.
func Decode(raw []byte) (Data, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return Empty(), fmt.Errorf("custom tags: %w", err)
	}
	if fields == nil {
		return Empty(), errNotObject
	}

	d := Empty()
	for _, s := range knowledge.AllSubjects {
		*d.list(s) = decodeList(fields[string(s)])
	}
	return d, nil
}

func decodeList(raw json.RawMessage) []CustomTag {
	out := []CustomTag{}
	var elems []json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &elems) != nil {
		return out
	}
	seen := map[string]struct{}{}
	for _, el := range elems {
		tag, ok := decodeTag(el)
		if !ok {
			continue
		}
		if _, dup := seen[tag.Name]; dup {
			continue
		}
		seen[tag.Name] = struct{}{}
		out = append(out, tag)
	}
	return out
}

func decodeTag(el json.RawMessage) (CustomTag, bool) {
	el = bytes.TrimSpace(el)
	if len(el) == 0 {
		return CustomTag{}, false
	}
	var tag CustomTag
	switch el[0] {
	case '"':
		if err := json.Unmarshal(el, &tag.Name); err != nil {
			return CustomTag{}, false
		}
	case '{':
		var obj struct {
			Name     *string `json:"name"`
			Category *string `json:"category"`
		}
		if err := json.Unmarshal(el, &obj); err != nil || obj.Name == nil {
			return CustomTag{}, false
		}
		tag.Name = *obj.Name
		if obj.Category != nil {
			tag.Category = *obj.Category
		}
	default:
		return CustomTag{}, false
	}
	tag.Name = strings.TrimSpace(tag.Name)
	if tag.Name == "" {
		return CustomTag{}, false
	}
	if strings.TrimSpace(tag.Category) == "" {
		tag.Category = DefaultCategory
	}
	return tag, true
}

// Encode serializes d in object form with every subject present.
func Encode(d Data) ([]byte, error) {
	d.fillNil()
	return json.Marshal(d)
}
