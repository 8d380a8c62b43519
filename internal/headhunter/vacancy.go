package headhunter

import (
	"fmt"
	"strings"
)

type Vacancies struct {
	Items []*Vacancy
}

type Vacancy struct {
	ID     string `json:"id,omitempty"`
	Name   string `json:"name,omitempty"`
	Salary *struct {
		From     int    `json:"from,omitempty"`
		To       int    `json:"to,omitempty"`
		Currency string `json:"currency,omitempty"`
		Gross    bool   `json:"gross,omitempty"`
	} `json:"salary,omitempty"`
	Employer struct {
		ID   string `json:"id,omitempty"`
		Name string `json:"name,omitempty"`
		URL  string `json:"url,omitempty"`
	} `json:"employer,omitempty"`
	AlternateURL string `json:"alternate_url,omitempty"`
	Description  string `json:"description,omitempty"`
	KeySkills    []struct {
		Name string `json:"name,omitempty"`
	} `json:"key_skills,omitempty"`
	Archived bool `json:"archived,omitempty"`
	HasTest  bool `json:"has_test,omitempty"`
	Snippet  struct {
		Requirement    string `json:"requirement,omitempty"`
		Responsibility string `json:"responsibility,omitempty"`
	} `json:"snippet,omitempty"`
	PublishedAt string `json:"published_at,omitempty"`
}

// GetVacancy fetches the full vacancy by id, including the description and key
// skills that search results omit.
func (c *Client) GetVacancy(id string) (*Vacancy, error) {
	if id == "" {
		return nil, fmt.Errorf("vacancy id is required")
	}

	apiURLVacancy := fmt.Sprintf("%s%s/%s", c.APIURL, SearchPath, id)

	var vacancy *Vacancy
	if err := c.getJSON(apiURLVacancy, nil, &vacancy); err != nil {
		return nil, err
	}

	return vacancy, nil
}

// SalaryString renders the salary range for display and storage. Returns an
// empty string when the vacancy carries no salary information.
func (v *Vacancy) SalaryString() string {
	if v.Salary == nil {
		return ""
	}

	switch {
	case v.Salary.From > 0 && v.Salary.To > 0:
		return fmt.Sprintf("%d-%d %s", v.Salary.From, v.Salary.To, v.Salary.Currency)
	case v.Salary.From > 0:
		return fmt.Sprintf("from %d %s", v.Salary.From, v.Salary.Currency)
	case v.Salary.To > 0:
		return fmt.Sprintf("up to %d %s", v.Salary.To, v.Salary.Currency)
	default:
		return ""
	}
}

// Requirements collects the requirement strings used for relevance matching:
// key skills first, then the snippet requirement line when no skills are set.
func (v *Vacancy) Requirements() []string {
	reqs := make([]string, 0, len(v.KeySkills))
	for _, skill := range v.KeySkills {
		if name := strings.TrimSpace(skill.Name); name != "" {
			reqs = append(reqs, name)
		}
	}

	if len(reqs) == 0 {
		if req := strings.TrimSpace(v.Snippet.Requirement); req != "" {
			reqs = append(reqs, req)
		}
	}

	return reqs
}

func (v *Vacancies) Len() int {
	return len(v.Items)
}

func (v *Vacancies) FindByID(id string) *Vacancy {
	for _, vacancy := range v.Items {
		if vacancy.ID == id {
			return vacancy
		}
	}
	return nil
}

// Exclude removes vacancies with the given ids from the list.
func (v *Vacancies) Exclude(ids []string) []string {
	var excluded []string
	for _, id := range ids {
		for idx, vacancy := range v.Items {
			if vacancy.ID == id {
				v.RemoveByIndex(idx)
				excluded = append(excluded, vacancy.ID)
				break
			}
		}
	}
	return excluded
}

// RemoveByIndex remove vacancy from list by index. Do not preserve order.
func (v *Vacancies) RemoveByIndex(idx int) {
	v.Items[idx] = v.Items[len(v.Items)-1]
	v.Items = v.Items[:len(v.Items)-1]
}
