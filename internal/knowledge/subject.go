package knowledge

import "strings"

type Subject string

const (
	SubjectMath      Subject = "math"
	SubjectEnglish   Subject = "english"
	SubjectPhysics   Subject = "physics"
	SubjectChemistry Subject = "chemistry"
	SubjectOther     Subject = "other"
)

// Subjects in declaration order, as used for custom tag storage.
var AllSubjects = []Subject{SubjectMath, SubjectEnglish, SubjectPhysics, SubjectChemistry, SubjectOther}

func ParseSubject(code string) (Subject, bool) {
	s := Subject(strings.ToLower(strings.TrimSpace(code)))
	for _, known := range AllSubjects {
		if s == known {
			return s, true
		}
	}
	return "", false
}

type subjectKeywords struct {
	subject  Subject
	keywords []string
}

var subjectKeywordTable = []subjectKeywords{
	{SubjectMath, []string{"数学", "math"}},
	{SubjectPhysics, []string{"物理", "physics"}},
	{SubjectChemistry, []string{"化学", "chemistry"}},
	{SubjectEnglish, []string{"英语", "english"}},
}

// InferSubject maps a free-text subject name such as "高等数学" or "Physics"
// to a subject code. Matching is case-insensitive substring.
func InferSubject(name string) (Subject, bool) {
	lower := strings.ToLower(strings.TrimSpace(name))
	if lower == "" {
		return "", false
	}
	for _, row := range subjectKeywordTable {
		for _, kw := range row.keywords {
			if strings.Contains(lower, kw) {
				return row.subject, true
			}
		}
	}
	return "", false
}
