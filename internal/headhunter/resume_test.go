package headhunter

import "testing"

func TestResumeIsPublished(t *testing.T) {
	cases := []struct {
		name   string
		status any
		want   bool
	}{
		{name: "string published", status: "published", want: true},
		{name: "string mixed case", status: "Published", want: true},
		{name: "string blocked", status: "blocked", want: false},
		{name: "object with id", status: map[string]any{"id": "published", "name": "Published"}, want: true},
		{name: "object with other id", status: map[string]any{"id": "not_published"}, want: false},
		{name: "missing", status: nil, want: false},
		{name: "unexpected shape", status: 42, want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := &Resume{ID: "r1", Status: tc.status}
			if got := r.IsPublished(); got != tc.want {
				t.Fatalf("IsPublished() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestResumesPublishedOnly(t *testing.T) {
	resumes := &Resumes{Items: []*Resume{
		{ID: "r1", Title: "Go Developer", Status: "published"},
		{ID: "r2", Title: "Draft", Status: "not_published"},
		{ID: "r3", Title: "Designer", Status: map[string]any{"id": "published"}},
	}}

	published := resumes.PublishedOnly()
	if published.Len() != 2 {
		t.Fatalf("expected 2 published resumes, got %d", published.Len())
	}

	if published.Items[0].ID != "r1" || published.Items[1].ID != "r3" {
		t.Fatalf("unexpected published set: %v", published.Titles())
	}
}
