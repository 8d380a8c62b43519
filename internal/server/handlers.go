package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"jobquest/internal/relevance"
	"jobquest/internal/store"
)

type relevanceRequest struct {
	VacancyID string             `json:"vacancyId"`
	ResumeID  string             `json:"resumeId"`
	Vacancy   *relevance.Vacancy `json:"vacancy"`
	Resume    *relevance.Resume  `json:"resume"`
}

// computeRelevance scores a vacancy against a resume. Both sides may be
// passed inline or referenced by the external id of a cached row.
func (s *Server) computeRelevance(c *gin.Context) {
	var req relevanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, fmt.Errorf("parse request: %w", err))
		return
	}

	vacancy := req.Vacancy
	if vacancy == nil && req.VacancyID != "" {
		cached, err := s.store.GetVacancy(c.Request.Context(), req.VacancyID)
		if err != nil {
			respondError(c, http.StatusInternalServerError, err)
			return
		}
		if cached == nil {
			respondError(c, http.StatusNotFound, fmt.Errorf("vacancy %s is not cached", req.VacancyID))
			return
		}
		vacancy = &relevance.Vacancy{
			Title:        cached.Title,
			Company:      cached.Company,
			Salary:       cached.Salary,
			Description:  cached.Description,
			Requirements: cached.Requirements,
		}
	}

	resume := req.Resume
	if resume == nil && req.ResumeID != "" {
		cached, err := s.store.GetResume(c.Request.Context(), req.ResumeID)
		if err != nil {
			respondError(c, http.StatusInternalServerError, err)
			return
		}
		if cached == nil {
			respondError(c, http.StatusNotFound, fmt.Errorf("resume %s is not cached", req.ResumeID))
			return
		}
		resume = &relevance.Resume{
			Title:      cached.Title,
			Experience: cached.Experience,
			Skills:     cached.Skills,
		}
	}

	result, err := relevance.Compute(vacancy, resume)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

type applyRequest struct {
	VacancyID string `json:"vacancyId" binding:"required"`
	ResumeID  string `json:"resumeId"`
	Letter    string `json:"letter"`
}

// apply records an application and runs the gamification composite: streak
// update, application XP, counters and achievement check.
func (s *Server) apply(c *gin.Context) {
	userID := c.Param("id")

	var req applyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, fmt.Errorf("parse request: %w", err))
		return
	}

	app := &store.Application{
		UserID:            userID,
		VacancyExternalID: req.VacancyID,
		ResumeExternalID:  req.ResumeID,
		Letter:            req.Letter,
	}
	if err := s.store.CreateApplication(c.Request.Context(), app); err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	result, err := s.game.AwardApplicationXP(c.Request.Context(), userID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"applicationId": app.ID,
		"totalXP":       result.TotalXP,
		"level":         result.Level,
		"leveledUp":     result.LeveledUp,
		"streak":        result.Streak,
		"unlocked":      result.Unlocked,
	})
}

type actionRequest struct {
	Kind string `json:"kind" binding:"required"`
}

var actionKinds = map[string]struct{}{
	store.ActionSkip:      {},
	store.ActionView:      {},
	store.ActionLetter:    {},
	store.ActionRejection: {},
	store.ActionInterview: {},
}

// recordAction ingests a non-application action: view, skip, rejection,
// interview or letter generation. Applications go through the apply route.
func (s *Server) recordAction(c *gin.Context) {
	userID := c.Param("id")

	var req actionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, fmt.Errorf("parse request: %w", err))
		return
	}

	if _, ok := actionKinds[req.Kind]; !ok {
		respondError(c, http.StatusBadRequest, fmt.Errorf("unknown action kind %q", req.Kind))
		return
	}

	result, err := s.game.AwardXP(c.Request.Context(), userID, req.Kind, s.game.AwardForKind(req.Kind))
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	// Views keep the streak alive too.
	if req.Kind == store.ActionView {
		if _, err := s.game.UpdateStreak(c.Request.Context(), userID); err != nil {
			respondError(c, http.StatusInternalServerError, err)
			return
		}
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) getStats(c *gin.Context) {
	stats, err := s.game.GetStats(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (s *Server) getForecast(c *gin.Context) {
	forecast, err := s.game.CalculateSuccessForecast(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, forecast)
}

type letterRequest struct {
	UserID    string `json:"userId"`
	VacancyID string `json:"vacancyId" binding:"required"`
	ResumeID  string `json:"resumeId" binding:"required"`
}

// generateLetter produces a cover letter for a cached vacancy/resume pair.
func (s *Server) generateLetter(c *gin.Context) {
	if s.letters == nil {
		respondError(c, http.StatusNotFound, errors.New("letter generation is disabled"))
		return
	}

	var req letterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, fmt.Errorf("parse request: %w", err))
		return
	}

	ctx := c.Request.Context()

	vacancy, err := s.store.GetVacancy(ctx, req.VacancyID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}
	if vacancy == nil {
		respondError(c, http.StatusNotFound, fmt.Errorf("vacancy %s is not cached", req.VacancyID))
		return
	}

	resume, err := s.store.GetResume(ctx, req.ResumeID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}
	if resume == nil {
		respondError(c, http.StatusNotFound, fmt.Errorf("resume %s is not cached", req.ResumeID))
		return
	}

	letter, err := s.letters.Generate(ctx, vacancy, resume)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	// A fresh generation is a gamified action; cache hits and fallbacks are
	// not.
	if req.UserID != "" && letter.Generated && !letter.Cached {
		kind := store.ActionLetter
		if _, err := s.game.AwardXP(ctx, req.UserID, kind, s.game.AwardForKind(kind)); err != nil {
			s.logger.Warn("awarding letter xp failed", zap.String("user", req.UserID), zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, letter)
}
