package domain

// Grade is a letter grade.
type Grade string

const (
	GradeAPlus  Grade = "A+"
	GradeA      Grade = "A"
	GradeAMinus Grade = "A-"
	GradeBPlus  Grade = "B+"
	GradeB      Grade = "B"
	GradeBMinus Grade = "B-"
	GradeCPlus  Grade = "C+"
	GradeC      Grade = "C"
	GradeCMinus Grade = "C-"
	GradeD      Grade = "D"
	GradeF      Grade = "F"
)

var ladder = []struct {
	min   float64
	grade Grade
}{
	{97, GradeAPlus},
	{93, GradeA},
	{90, GradeAMinus},
	{87, GradeBPlus},
	{83, GradeB},
	{80, GradeBMinus},
	{77, GradeCPlus},
	{70, GradeC},
	{60, GradeD},
}

// GradeForScore maps a heuristic score to a grade. C- is never produced
// locally; only the evaluation service returns it.
func GradeForScore(score float64) Grade {
	for _, step := range ladder {
		if score >= step.min {
			return step.grade
		}
	}
	return GradeF
}

// ParseGrade validates a grade string.
func ParseGrade(s string) (Grade, bool) {
	switch g := Grade(s); g {
	case GradeAPlus, GradeA, GradeAMinus, GradeBPlus, GradeB, GradeBMinus,
		GradeCPlus, GradeC, GradeCMinus, GradeD, GradeF:
		return g, true
	}
	return "", false
}
