package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Grade is the skill rating scale used across all report sections.
type Grade string

const (
	GradeProficient   Grade = "Proficient"
	GradeSatisfactory Grade = "Satisfactory"
	GradeDeveloping   Grade = "Developing"
	GradeEmerging     Grade = "Emerging"

	// GradeNotObserved is the default when the model omits a grade or
	// returns one outside the scale.
	GradeNotObserved Grade = "Skill Not Observed"
)

// ProgressReport is the structured output of report generation. Every field
// is optional in the model's response; missing or malformed fields degrade to
// the defaults applied by FillDefaults rather than failing the request.
type ProgressReport struct {
	AcademicGrade    Grade    `json:"academicGrade"`
	EmploymentGrade  Grade    `json:"employmentGrade"`
	CommunityGrade   Grade    `json:"communityGrade"`
	AcademicReport   string   `json:"academicReport"`
	EmploymentReport string   `json:"employmentReport"`
	CommunityReport  string   `json:"communityReport"`
	SkillGaps        []string `json:"skillGaps"`
}

var validGrades = map[Grade]struct{}{
	GradeProficient:   {},
	GradeSatisfactory: {},
	GradeDeveloping:   {},
	GradeEmerging:     {},
	GradeNotObserved:  {},
}

// ParseProgressReport decodes the model's JSON response into a ProgressReport.
// The model has been observed to vary field casing between camelCase and
// snake_case and to omit fields entirely, so decoding goes through a raw key
// map and fills defaults per field. Only a payload that is not a JSON object
// at all is an error.
func ParseProgressReport(raw string) (*ProgressReport, error) {
	cleaned := stripCodeFence(raw)

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &fields); err != nil {
		return nil, fmt.Errorf("report response is not a JSON object: %w", err)
	}

	report := &ProgressReport{
		AcademicGrade:    pickGrade(fields, "academicGrade", "academic_grade"),
		EmploymentGrade:  pickGrade(fields, "employmentGrade", "employment_grade"),
		CommunityGrade:   pickGrade(fields, "communityGrade", "community_grade"),
		AcademicReport:   pickString(fields, "academicReport", "academic_report"),
		EmploymentReport: pickString(fields, "employmentReport", "employment_report"),
		CommunityReport:  pickString(fields, "communityReport", "community_report"),
		SkillGaps:        pickStringList(fields, "skillGaps", "skill_gaps"),
	}
	return report, nil
}

// stripCodeFence removes a surrounding markdown code fence if the model
// wrapped its JSON in one.
func stripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func pickRaw(fields map[string]json.RawMessage, keys ...string) (json.RawMessage, bool) {
	for _, key := range keys {
		if v, ok := fields[key]; ok {
			return v, true
		}
	}
	return nil, false
}

func pickGrade(fields map[string]json.RawMessage, keys ...string) Grade {
	raw, ok := pickRaw(fields, keys...)
	if !ok {
		return GradeNotObserved
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return GradeNotObserved
	}
	grade := Grade(s)
	if _, ok := validGrades[grade]; !ok {
		return GradeNotObserved
	}
	return grade
}

func pickString(fields map[string]json.RawMessage, keys ...string) string {
	raw, ok := pickRaw(fields, keys...)
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

func pickStringList(fields map[string]json.RawMessage, keys ...string) []string {
	raw, ok := pickRaw(fields, keys...)
	if !ok {
		return []string{}
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil || list == nil {
		return []string{}
	}
	return list
}
