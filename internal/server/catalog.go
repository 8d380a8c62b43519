package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobquest/internal/store"
)

type vacancyRequest struct {
	ExternalID   string   `json:"externalId" binding:"required"`
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Salary       string   `json:"salary"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
}

// cacheVacancy stores a vacancy locally. Cached rows are immutable except
// for the description, which is backfilled when a fuller text arrives.
func (s *Server) cacheVacancy(c *gin.Context) {
	var req vacancyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, fmt.Errorf("parse request: %w", err))
		return
	}

	ctx := c.Request.Context()

	existing, err := s.store.GetVacancy(ctx, req.ExternalID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	if existing != nil {
		if req.Description != "" && len(req.Description) > len(existing.Description) {
			if err := s.store.BackfillDescription(ctx, req.ExternalID, req.Description); err != nil {
				respondError(c, http.StatusInternalServerError, err)
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"externalId": req.ExternalID, "created": false})
		return
	}

	vacancy := &store.Vacancy{
		ExternalID:   req.ExternalID,
		Title:        req.Title,
		Company:      req.Company,
		Salary:       req.Salary,
		Description:  req.Description,
		Requirements: req.Requirements,
	}
	if err := s.store.UpsertVacancy(ctx, vacancy); err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"externalId": req.ExternalID, "created": true})
}

func (s *Server) listVacancies(c *gin.Context) {
	vacancies, err := s.store.ListVacancies(c.Request.Context(), 100)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": vacancies})
}

type resumeRequest struct {
	ExternalID string   `json:"externalId" binding:"required"`
	Title      string   `json:"title"`
	Experience string   `json:"experience"`
	Skills     []string `json:"skills"`
	Published  bool     `json:"published"`
}

func (s *Server) cacheResume(c *gin.Context) {
	var req resumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, fmt.Errorf("parse request: %w", err))
		return
	}

	resume := &store.Resume{
		UserID:     c.Param("id"),
		ExternalID: req.ExternalID,
		Title:      req.Title,
		Experience: req.Experience,
		Skills:     req.Skills,
		Published:  req.Published,
	}
	if err := s.store.UpsertResume(c.Request.Context(), resume); err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"externalId": req.ExternalID})
}

func (s *Server) listResumes(c *gin.Context) {
	resumes, err := s.store.ListPublishedResumes(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": resumes})
}

type filterRequest struct {
	Name   string `json:"name" binding:"required"`
	Params string `json:"params"`
}

func (s *Server) saveFilter(c *gin.Context) {
	var req filterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, fmt.Errorf("parse request: %w", err))
		return
	}

	filter := &store.SearchFilter{
		UserID: c.Param("id"),
		Name:   req.Name,
		Params: req.Params,
	}
	if err := s.store.SaveFilter(c.Request.Context(), filter); err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, filter)
}

func (s *Server) listFilters(c *gin.Context) {
	filters, err := s.store.ListFilters(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": filters})
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

// employer response status -> gamified action kind.
var statusActions = map[string]string{
	store.ApplicationViewed:    "",
	store.ApplicationRejected:  store.ActionRejection,
	store.ApplicationInterview: store.ActionInterview,
}

// updateApplicationStatus records an employer response. Rejections and
// interview invites also award XP to the application's owner.
func (s *Server) updateApplicationStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, fmt.Errorf("parse request: %w", err))
		return
	}

	kind, ok := statusActions[req.Status]
	if !ok {
		respondError(c, http.StatusBadRequest, fmt.Errorf("unknown application status %q", req.Status))
		return
	}

	ctx := c.Request.Context()
	userID := c.Param("id")
	appID := c.Param("appId")

	if err := s.store.UpdateApplicationStatus(ctx, appID, req.Status); err != nil {
		respondError(c, http.StatusNotFound, err)
		return
	}

	response := gin.H{"applicationId": appID, "status": req.Status}
	if kind != "" {
		result, err := s.game.AwardXP(ctx, userID, kind, s.game.AwardForKind(kind))
		if err != nil {
			respondError(c, http.StatusInternalServerError, err)
			return
		}
		response["totalXP"] = result.TotalXP
		response["level"] = result.Level
		response["leveledUp"] = result.LeveledUp
	}

	c.JSON(http.StatusOK, response)
}
