package knowledge

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	StageJuniorHigh = "junior_high"
	StageSeniorHigh = "senior_high"
)

// academicYearStart is the month the school year rolls over.
const academicYearStart = time.September

type stageRange struct {
	first, last int
}

var stageRanges = map[string]stageRange{
	StageJuniorHigh: {first: 7, last: 9},
	StageSeniorHigh: {first: 10, last: 12},
}

// CalculateGrade derives the current grade for a student who entered stage in
// enrollmentYear. It returns false for unknown stages, a missing year, or a
// grade outside the stage (graduated or not yet enrolled).
func CalculateGrade(stage string, enrollmentYear int, now time.Time) (int, bool) {
	r, ok := stageRanges[stage]
	if !ok || enrollmentYear <= 0 {
		return 0, false
	}
	grade := r.first + academicYear(now) - enrollmentYear
	if grade < r.first || grade > r.last {
		return 0, false
	}
	return grade, true
}

func academicYear(now time.Time) int {
	if now.Month() >= academicYearStart {
		return now.Year()
	}
	return now.Year() - 1
}

// CurrentSemester is 1 from September through January and 2 otherwise.
func CurrentSemester(now time.Time) int {
	if now.Month() >= academicYearStart || now.Month() == time.January {
		return 1
	}
	return 2
}

// ParseEnrollmentYear accepts a decimal year such as "2024".
func ParseEnrollmentYear(raw string) (int, bool) {
	y, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || y <= 0 {
		return 0, false
	}
	return y, true
}

var gradeNames = map[int]string{
	7: "七年级", 8: "八年级", 9: "九年级",
	10: "高一", 11: "高二", 12: "高三",
}

// GradeLabel renders the curriculum label for a grade and semester, e.g. "七年级上".
func GradeLabel(grade, semester int) string {
	name, ok := gradeNames[grade]
	if !ok {
		name = fmt.Sprintf("%d年级", grade)
	}
	switch semester {
	case 1:
		return name + "上"
	case 2:
		return name + "下"
	default:
		return name
	}
}
