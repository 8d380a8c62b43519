package relevance

import (
	"reflect"
	"strings"
	"testing"
)

func TestComputeRequiresInputs(t *testing.T) {
	if _, err := Compute(nil, &Resume{}); err == nil {
		t.Fatalf("expected error for nil vacancy")
	}

	if _, err := Compute(&Vacancy{}, nil); err == nil {
		t.Fatalf("expected error for nil resume")
	}
}

func TestComputeScoreBounds(t *testing.T) {
	cases := []struct {
		name    string
		vacancy *Vacancy
		resume  *Resume
	}{
		{name: "empty", vacancy: &Vacancy{}, resume: &Resume{}},
		{
			name: "everything matches",
			vacancy: &Vacancy{
				Title:        "Go Developer",
				Salary:       "100000-150000 RUR",
				Description:  "We need experience with docker, kubernetes and postgresql. " + strings.Repeat("More details. ", 50),
				Requirements: []string{"Docker", "Kubernetes", "PostgreSQL"},
			},
			resume: &Resume{
				Title:      "Go Developer",
				Experience: "Projects with docker, kubernetes, postgresql in production",
				Skills:     []string{"Docker", "Kubernetes", "PostgreSQL"},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := Compute(tc.vacancy, tc.resume)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if result.Score < 0 || result.Score > 100 {
				t.Fatalf("score %d out of bounds", result.Score)
			}

			if len(result.Reasons) == 0 {
				t.Fatalf("expected at least one reason")
			}
		})
	}
}

func TestComputeDeterministic(t *testing.T) {
	vacancy := &Vacancy{
		Title:        "Frontend Developer",
		Description:  "Experience with react and typescript required",
		Requirements: []string{"React", "TypeScript", "CSS"},
	}
	resume := &Resume{
		Title:      "Frontend Developer",
		Experience: "Built SPAs with react and typescript",
		Skills:     []string{"React", "TypeScript"},
	}

	first, err := Compute(vacancy, resume)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 0; i < 10; i++ {
		next, err := Compute(vacancy, resume)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if next.Score != first.Score {
			t.Fatalf("score changed between runs: %d vs %d", next.Score, first.Score)
		}
		if !reflect.DeepEqual(next.Reasons, first.Reasons) {
			t.Fatalf("reasons changed between runs: %v vs %v", next.Reasons, first.Reasons)
		}
	}
}

func TestScoreSkills(t *testing.T) {
	cases := []struct {
		name         string
		requirements []string
		skills       []string
		wantScore    int
		wantReason   bool
	}{
		{
			// Score of exactly 20 sits on the boundary and must not
			// emit a reason: the condition is strictly greater than.
			name:         "half match no reason",
			requirements: []string{"React", "TypeScript"},
			skills:       []string{"react", "node"},
			wantScore:    20,
			wantReason:   false,
		},
		{
			name:         "full match with reason",
			requirements: []string{"Figma"},
			skills:       []string{"Figma", "UX Research"},
			wantScore:    40,
			wantReason:   true,
		},
		{
			name:         "empty requirements",
			requirements: nil,
			skills:       []string{"Go"},
			wantScore:    0,
			wantReason:   false,
		},
		{
			name:         "bidirectional containment",
			requirements: []string{"UX"},
			skills:       []string{"UX/UI design"},
			wantScore:    40,
			wantReason:   true,
		},
		{
			// Known heuristic imprecision: short requirements over-match.
			name:         "substring over-match",
			requirements: []string{"go"},
			skills:       []string{"good communication"},
			wantScore:    40,
			wantReason:   true,
		},
		{
			name:         "no skills at all",
			requirements: []string{"Rust"},
			skills:       nil,
			wantScore:    0,
			wantReason:   false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			score, reason := scoreSkills(tc.requirements, tc.skills)
			if score != tc.wantScore {
				t.Fatalf("scoreSkills() = %d, want %d", score, tc.wantScore)
			}
			if (reason != "") != tc.wantReason {
				t.Fatalf("reason presence = %q, want reason: %v", reason, tc.wantReason)
			}
		})
	}
}

func TestScoreExperience(t *testing.T) {
	cases := []struct {
		name        string
		description string
		experience  string
		wantScore   int
	}{
		{name: "missing description", description: "", experience: "ten years of Go", wantScore: 15},
		{name: "missing experience", description: "experience with Go required", experience: "", wantScore: 15},
		{name: "no signal words", description: "great team, free coffee", experience: "ten years of Go", wantScore: 15},
		{name: "tech overlap", description: "experience with docker and python", experience: "used docker daily", wantScore: 30},
		{name: "signal but no overlap", description: "experience with python required", experience: "worked with golang services", wantScore: 10},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			score, reason := scoreExperience(tc.description, tc.experience)
			if score != tc.wantScore {
				t.Fatalf("scoreExperience() = %d, want %d", score, tc.wantScore)
			}
			if reason == "" {
				t.Fatalf("experience factor always explains itself")
			}
		})
	}
}

func TestScoreExperienceListsMatchedTech(t *testing.T) {
	_, reason := scoreExperience(
		"experience with docker, kubernetes and postgresql",
		"ran docker and kubernetes clusters",
	)

	if !strings.Contains(reason, "docker") || !strings.Contains(reason, "kubernetes") {
		t.Fatalf("expected matched technologies in reason, got %q", reason)
	}

	if strings.Contains(reason, "postgresql") {
		t.Fatalf("postgresql is not in the resume and must not be reported: %q", reason)
	}
}

func TestScoreTitles(t *testing.T) {
	cases := []struct {
		name         string
		vacancyTitle string
		resumeTitle  string
		wantScore    int
	}{
		{name: "missing vacancy title", vacancyTitle: "", resumeTitle: "Developer", wantScore: 0},
		{name: "missing resume title", vacancyTitle: "Developer", resumeTitle: "", wantScore: 0},
		{name: "shared role keyword", vacancyTitle: "Senior Go Developer", resumeTitle: "Backend Developer", wantScore: 20},
		{name: "russian role keyword", vacancyTitle: "Ведущий разработчик Go", resumeTitle: "Разработчик backend", wantScore: 20},
		{name: "partial specialization", vacancyTitle: "Backend Wizard", resumeTitle: "Senior backend person", wantScore: 10},
		{name: "short tokens ignored", vacancyTitle: "Go guru", resumeTitle: "Go fan", wantScore: 0},
		{name: "nothing in common", vacancyTitle: "Accountant", resumeTitle: "Blacksmith", wantScore: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			score, _ := scoreTitles(tc.vacancyTitle, tc.resumeTitle)
			if score != tc.wantScore {
				t.Fatalf("scoreTitles() = %d, want %d", score, tc.wantScore)
			}
		})
	}
}

func TestScoreExtras(t *testing.T) {
	long := strings.Repeat("a", 501)

	cases := []struct {
		name      string
		vacancy   *Vacancy
		wantScore int
	}{
		{name: "nothing", vacancy: &Vacancy{}, wantScore: 0},
		{name: "salary only", vacancy: &Vacancy{Salary: "100000 RUR"}, wantScore: 3},
		{name: "long description only", vacancy: &Vacancy{Description: long}, wantScore: 2},
		{name: "both", vacancy: &Vacancy{Salary: "100000 RUR", Description: long}, wantScore: 5},
		{name: "boundary description", vacancy: &Vacancy{Description: strings.Repeat("a", 500)}, wantScore: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			score, _ := scoreExtras(tc.vacancy)
			if score != tc.wantScore {
				t.Fatalf("scoreExtras() = %d, want %d", score, tc.wantScore)
			}
		})
	}
}

func TestComputeReasonOrderAndFallback(t *testing.T) {
	result, err := Compute(&Vacancy{}, &Resume{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Empty inputs still produce the neutral experience reason.
	if len(result.Reasons) != 1 || !strings.Contains(result.Reasons[0], "insufficient data") {
		t.Fatalf("unexpected reasons for empty inputs: %v", result.Reasons)
	}

	full := &Vacancy{
		Title:        "Go Developer",
		Salary:       "100000 RUR",
		Description:  "experience with docker " + strings.Repeat("and more ", 80),
		Requirements: []string{"Docker"},
	}
	resume := &Resume{
		Title:      "Go Developer",
		Experience: "docker in production",
		Skills:     []string{"Docker"},
	}

	result, err = Compute(full, resume)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Reasons) != 4 {
		t.Fatalf("expected 4 reasons, got %v", result.Reasons)
	}

	// Fixed factor order: skills, experience, title, extras.
	if !strings.Contains(result.Reasons[0], "skills matched") {
		t.Fatalf("first reason should be about skills: %v", result.Reasons)
	}
	if !strings.Contains(result.Reasons[1], "overlaps") {
		t.Fatalf("second reason should be about experience: %v", result.Reasons)
	}
	if !strings.Contains(result.Reasons[2], "role match") {
		t.Fatalf("third reason should be about titles: %v", result.Reasons)
	}
	if !strings.Contains(result.Reasons[3], "salary") {
		t.Fatalf("fourth reason should be about extras: %v", result.Reasons)
	}
}
