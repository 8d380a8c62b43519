package headhunter

import "testing"

func TestVacancySalaryString(t *testing.T) {
	cases := []struct {
		name    string
		vacancy *Vacancy
		want    string
	}{
		{
			name:    "no salary",
			vacancy: &Vacancy{ID: "1"},
			want:    "",
		},
		{
			name: "range",
			vacancy: &Vacancy{ID: "2", Salary: &struct {
				From     int    `json:"from,omitempty"`
				To       int    `json:"to,omitempty"`
				Currency string `json:"currency,omitempty"`
				Gross    bool   `json:"gross,omitempty"`
			}{From: 100000, To: 150000, Currency: "RUR"}},
			want: "100000-150000 RUR",
		},
		{
			name: "from only",
			vacancy: &Vacancy{ID: "3", Salary: &struct {
				From     int    `json:"from,omitempty"`
				To       int    `json:"to,omitempty"`
				Currency string `json:"currency,omitempty"`
				Gross    bool   `json:"gross,omitempty"`
			}{From: 200000, Currency: "RUR"}},
			want: "from 200000 RUR",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.vacancy.SalaryString(); got != tc.want {
				t.Fatalf("SalaryString() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestVacancyRequirements(t *testing.T) {
	v := &Vacancy{
		ID: "1",
		KeySkills: []struct {
			Name string `json:"name,omitempty"`
		}{{Name: "Go"}, {Name: " PostgreSQL "}, {Name: ""}},
	}

	reqs := v.Requirements()
	if len(reqs) != 2 {
		t.Fatalf("expected 2 requirements, got %d: %v", len(reqs), reqs)
	}

	if reqs[0] != "Go" || reqs[1] != "PostgreSQL" {
		t.Fatalf("unexpected requirements: %v", reqs)
	}
}

func TestVacancyRequirementsSnippetFallback(t *testing.T) {
	v := &Vacancy{ID: "1"}
	v.Snippet.Requirement = "Experience with React and TypeScript"

	reqs := v.Requirements()
	if len(reqs) != 1 || reqs[0] != "Experience with React and TypeScript" {
		t.Fatalf("unexpected fallback requirements: %v", reqs)
	}
}

func TestVacanciesExclude(t *testing.T) {
	vacancies := &Vacancies{Items: []*Vacancy{{ID: "1"}, {ID: "2"}, {ID: "3"}}}

	excluded := vacancies.Exclude([]string{"2", "missing"})
	if len(excluded) != 1 || excluded[0] != "2" {
		t.Fatalf("unexpected excluded ids: %v", excluded)
	}

	if vacancies.Len() != 2 {
		t.Fatalf("expected 2 vacancies left, got %d", vacancies.Len())
	}

	if vacancies.FindByID("2") != nil {
		t.Fatalf("vacancy 2 should be removed")
	}
}
