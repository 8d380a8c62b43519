package headhunter

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

type Resumes struct {
	Items []*Resume
}

type Resume struct {
	ID     string `json:"id,omitempty"`
	Title  string
	Status any `json:"status,omitempty"`
	Skills string `json:"skills,omitempty"`
	// SkillSet holds the structured skill names used for matching.
	SkillSet []string `json:"skill_set,omitempty" mapstructure:"skill_set"`
}

func (c *Client) getResumes(id string) (*Resumes, error) {
	apiURLMineResumes := fmt.Sprintf("%s/resumes/%s", c.APIURL, id)

	items, err := c.GetItems(apiURLMineResumes, nil)
	if err != nil {
		return nil, err
	}

	var resumes []*Resume
	cfg := &mapstructure.DecoderConfig{
		Metadata: nil,
		Result:   &resumes,
		TagName:  "json",
	}
	decoder, _ := mapstructure.NewDecoder(cfg)
	if err := decoder.Decode(items); err != nil {
		return nil, err
	}

	return &Resumes{
		Items: resumes,
	}, nil
}

// IsPublished reports whether the resume is visible to employers. HH.ru has
// returned the status both as a plain string and as an object with an id field
// across API versions, so both shapes are accepted here. This is the only
// place in the codebase that knows about the duck typing; everything past the
// client sees a plain boolean.
func (r *Resume) IsPublished() bool {
	switch status := r.Status.(type) {
	case string:
		return strings.EqualFold(status, "published")
	case map[string]any:
		for _, key := range []string{"id", "value", "name"} {
			if v, ok := status[key].(string); ok {
				return strings.EqualFold(v, "published")
			}
		}
	}
	return false
}

func (r *Resumes) Len() int {
	return len(r.Items)
}

func (r *Resumes) Titles() []string {
	titles := make([]string, 0, len(r.Items))

	for _, v := range r.Items {
		titles = append(titles, v.Title)
	}

	return titles
}

func (r *Resumes) FindByTitle(title string) *Resume {
	for _, resume := range r.Items {
		if resume.Title == title {
			return resume
		}
	}

	return nil
}

// PublishedOnly returns the resumes visible to employers. Only these
// participate in relevance scoring.
func (r *Resumes) PublishedOnly() *Resumes {
	published := &Resumes{}
	for _, resume := range r.Items {
		if resume.IsPublished() {
			published.Items = append(published.Items, resume)
		}
	}
	return published
}
