// Package letters generates cover letters for vacancy applications: a
// templated prompt against an LLM backend, a static fallback when the
// backend is unavailable, and a TTL cache so repeated requests for the same
// vacancy/resume pair do not burn quota.
package letters

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"jobquest/internal/cache"
	"jobquest/internal/logger"
	"jobquest/internal/store"
)

//go:embed prompt.md
var promptTemplate string

const (
	defaultTTL          = 24 * time.Hour
	defaultMaxLogLength = 200
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Service produces cover letters.
type Service struct {
	generator contentGenerator
	cache     *cache.Cache
	logger    *zap.Logger
	ttl       time.Duration
	maxLogLen int
}

// NewService builds a letter service. generator may be nil, in which case
// every request resolves to the fallback letter.
func NewService(generator contentGenerator, c *cache.Cache, log *zap.Logger, ttl time.Duration) *Service {
	if c == nil {
		c = cache.New()
	}
	if log == nil {
		log = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}

	return &Service{
		generator: generator,
		cache:     c,
		logger:    log,
		ttl:       ttl,
		maxLogLen: defaultMaxLogLength,
	}
}

// Letter is a generated cover letter.
type Letter struct {
	Text string `json:"text"`
	// Generated is false when the text came from the static fallback.
	Generated bool `json:"generated"`
	Cached    bool `json:"cached"`
}

// Generate returns a cover letter for the vacancy/resume pair, serving from
// cache when possible. Backend failures degrade to the fallback letter and
// are not surfaced as errors.
func (s *Service) Generate(ctx context.Context, vacancy *store.Vacancy, resume *store.Resume) (*Letter, error) {
	if vacancy == nil {
		return nil, fmt.Errorf("vacancy is required")
	}
	if resume == nil {
		return nil, fmt.Errorf("resume is required")
	}

	key := cacheKey(vacancy, resume)
	if text, ok := s.cache.Get(key); ok {
		return &Letter{Text: text, Generated: true, Cached: true}, nil
	}

	if s.generator == nil {
		return &Letter{Text: Fallback(vacancy, resume)}, nil
	}

	prompt, err := buildPrompt(vacancy, resume)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("letter generation request",
		zap.String("vacancy_id", vacancy.ExternalID),
		zap.String("resume_id", resume.ExternalID),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, s.maxLogLen)),
	)

	text, err := s.generator.GenerateContent(ctx, prompt)
	if err != nil {
		s.logger.Warn("letter generation failed, using fallback",
			zap.String("vacancy_id", vacancy.ExternalID),
			zap.Error(err),
		)
		return &Letter{Text: Fallback(vacancy, resume)}, nil
	}

	text = strings.TrimSpace(text)
	s.cache.Set(key, text, s.ttl)

	return &Letter{Text: text, Generated: true}, nil
}

// Invalidate drops the cached letter for a vacancy/resume pair.
func (s *Service) Invalidate(vacancy *store.Vacancy, resume *store.Resume) {
	if vacancy == nil || resume == nil {
		return
	}
	s.cache.Delete(cacheKey(vacancy, resume))
}

// Fallback is the static letter used when generation is disabled or failing.
func Fallback(vacancy *store.Vacancy, resume *store.Resume) string {
	title := strings.TrimSpace(resume.Title)
	if title == "" {
		title = "a motivated candidate"
	}

	return fmt.Sprintf(
		"Hello! I am interested in the %q position at %s. My background as %s matches your requirements and I would be glad to discuss the role.",
		vacancy.Title, vacancy.Company, title,
	)
}

func cacheKey(vacancy *store.Vacancy, resume *store.Resume) string {
	return vacancy.ExternalID + ":" + resume.ExternalID
}

func buildPrompt(vacancy *store.Vacancy, resume *store.Resume) (string, error) {
	resumeJSON, err := json.MarshalIndent(map[string]any{
		"title":      resume.Title,
		"experience": resume.Experience,
		"skills":     resume.Skills,
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal resume payload: %w", err)
	}

	vacancyJSON, err := json.MarshalIndent(map[string]any{
		"title":        vacancy.Title,
		"company":      vacancy.Company,
		"salary":       vacancy.Salary,
		"description":  vacancy.Description,
		"requirements": vacancy.Requirements,
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal vacancy payload: %w", err)
	}

	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Resume:\n{{RESUME_JSON}}\n\nVacancy:\n{{VACANCY_JSON}}\n\nCover letter:"
	}

	prompt := strings.ReplaceAll(template, "{{RESUME_JSON}}", string(resumeJSON))
	prompt = strings.ReplaceAll(prompt, "{{VACANCY_JSON}}", string(vacancyJSON))

	return prompt, nil
}
