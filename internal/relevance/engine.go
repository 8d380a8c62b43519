// Package relevance scores how well a vacancy matches a resume. Scoring is a
// pure function: no state, no I/O, and identical inputs always produce an
// identical score and reason list.
package relevance

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

// Per-factor score budgets. The factors are independent and their sum is
// clamped to [0,100].
const (
	maxSkillScore      = 40
	maxExperienceScore = 30
	maxTitleScore      = 20
	maxExtraScore      = 10

	// Descriptions longer than this are considered detailed.
	detailedDescriptionChars = 500

	// Vacancy title tokens this short are too noisy for partial matching.
	minTitleTokenRunes = 4

	partialExperienceScore = 10
	neutralExperienceScore = 15
	roleMatchScore         = 20
	partialTitleScore      = 10
	salaryBonus            = 3
	descriptionBonus       = 2
)

// Vacancy is the scoring view of a cached vacancy. Optional fields may be
// empty; scoring degrades gracefully instead of failing.
type Vacancy struct {
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Salary       string   `json:"salary"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
}

// Resume is the scoring view of a published resume.
type Resume struct {
	Title      string   `json:"title"`
	Experience string   `json:"experience"`
	Skills     []string `json:"skills"`
}

// Result is the outcome of a single vacancy/resume comparison. Reasons are
// ordered by factor: skills, experience, title, extras.
type Result struct {
	Score   int      `json:"score"`
	Reasons []string `json:"reasons"`
}

// Compute scores the vacancy against the resume. Nil inputs are a caller bug
// and fail fast; missing optional fields inside the inputs are fine.
func Compute(vacancy *Vacancy, resume *Resume) (*Result, error) {
	if vacancy == nil {
		return nil, errors.New("vacancy is required")
	}
	if resume == nil {
		return nil, errors.New("resume is required")
	}

	total := 0
	reasons := make([]string, 0, 4)

	score, reason := scoreSkills(vacancy.Requirements, resume.Skills)
	total += score
	if reason != "" {
		reasons = append(reasons, reason)
	}

	score, reason = scoreExperience(vacancy.Description, resume.Experience)
	total += score
	if reason != "" {
		reasons = append(reasons, reason)
	}

	score, reason = scoreTitles(vacancy.Title, resume.Title)
	total += score
	if reason != "" {
		reasons = append(reasons, reason)
	}

	score, reason = scoreExtras(vacancy)
	total += score
	if reason != "" {
		reasons = append(reasons, reason)
	}

	if total > 100 {
		total = 100
	}
	if total < 0 {
		total = 0
	}

	if len(reasons) == 0 {
		reasons = append(reasons, "baseline relevance")
	}

	return &Result{Score: total, Reasons: reasons}, nil
}

// scoreSkills compares vacancy requirements with resume skills using
// bidirectional substring containment, which tolerates abbreviations like
// "UX" inside "UX/UI". It also lets short requirements over-match ("go"
// inside "good"); that imprecision is a known property of the heuristic and
// is kept for parity with observed behavior.
func scoreSkills(requirements, skills []string) (int, string) {
	matched := 0
	for _, req := range requirements {
		reqLower := strings.ToLower(strings.TrimSpace(req))
		if reqLower == "" {
			continue
		}
		for _, skill := range skills {
			skillLower := strings.ToLower(strings.TrimSpace(skill))
			if skillLower == "" {
				continue
			}
			if strings.Contains(skillLower, reqLower) || strings.Contains(reqLower, skillLower) {
				matched++
				break
			}
		}
	}

	totalReqs := len(requirements)
	divisor := totalReqs
	if divisor < 1 {
		divisor = 1
	}

	score := int(math.Round(float64(matched) / float64(divisor) * maxSkillScore))

	// Half the budget must be strictly exceeded before the match is worth
	// calling out.
	if score > maxSkillScore/2 {
		return score, fmt.Sprintf("%d of %d required skills matched", matched, totalReqs)
	}

	return score, ""
}

// scoreExperience awards a neutral score when there is not enough text to
// compare, the full budget when the technologies named by the vacancy also
// appear in the resume experience, and a small consolation score otherwise.
func scoreExperience(description, experience string) (int, string) {
	if strings.TrimSpace(description) == "" || strings.TrimSpace(experience) == "" {
		return neutralExperienceScore, "insufficient data for experience comparison"
	}

	descLower := strings.ToLower(description)

	if !containsAny(descLower, experienceSignals) {
		return neutralExperienceScore, "no experience requirement stated"
	}

	expLower := strings.ToLower(experience)

	var matchedTech []string
	for _, tech := range technologies {
		if strings.Contains(descLower, tech) && strings.Contains(expLower, tech) {
			matchedTech = append(matchedTech, tech)
		}
	}

	if len(matchedTech) > 0 {
		return maxExperienceScore, "experience overlaps: " + strings.Join(matchedTech, ", ")
	}

	return partialExperienceScore, "partial experience match"
}

// scoreTitles compares role keywords first, then falls back to token-level
// substring matching for specialized titles.
func scoreTitles(vacancyTitle, resumeTitle string) (int, string) {
	vacLower := strings.ToLower(strings.TrimSpace(vacancyTitle))
	resLower := strings.ToLower(strings.TrimSpace(resumeTitle))
	if vacLower == "" || resLower == "" {
		return 0, ""
	}

	for _, role := range roleKeywords {
		if strings.Contains(vacLower, role) && strings.Contains(resLower, role) {
			return roleMatchScore, "role match: " + role
		}
	}

	for _, token := range strings.Fields(vacLower) {
		if utf8.RuneCountInString(token) < minTitleTokenRunes {
			continue
		}
		if strings.Contains(resLower, token) {
			return partialTitleScore, "partial specialization match"
		}
	}

	return 0, ""
}

// scoreExtras awards points for completeness signals on the vacancy itself.
func scoreExtras(vacancy *Vacancy) (int, string) {
	score := 0
	var notes []string

	if strings.TrimSpace(vacancy.Salary) != "" {
		score += salaryBonus
		notes = append(notes, "salary specified")
	}

	if utf8.RuneCountInString(vacancy.Description) > detailedDescriptionChars {
		score += descriptionBonus
		notes = append(notes, "detailed description")
	}

	if score > maxExtraScore {
		score = maxExtraScore
	}

	if len(notes) == 0 {
		return 0, ""
	}

	return score, strings.Join(notes, "; ")
}

func containsAny(s string, words []string) bool {
	for _, word := range words {
		if strings.Contains(s, word) {
			return true
		}
	}
	return false
}
