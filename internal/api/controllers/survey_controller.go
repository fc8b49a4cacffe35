package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"testimonial/internal/models/request_models"
	"testimonial/internal/models/response_models"
	"testimonial/internal/services"
	"testimonial/pkg/utils"
)

type SurveyController struct {
	surveyService services.SurveyServiceInterface
}

func NewSurveyController(surveyService services.SurveyServiceInterface) *SurveyController {
	return &SurveyController{surveyService: surveyService}
}

// SubmitSurvey godoc
// @Summary Submit a testimonial
// @Description Validate and persist one testimonial submission with an optional photo
// @Tags Surveys
// @Accept mpfd
// @Produce json
// @Param name formData string true "Respondent name"
// @Param email formData string true "Respondent email"
// @Param question2 formData string true "Role and workplace"
// @Param question3 formData string true "Selected services (repeated field or JSON array)"
// @Param question4 formData string true "Experience narrative"
// @Param question5 formData string true "Consent choice"
// @Param photo formData file false "Photo upload"
// @Success 201 {object} response_models.SubmitSurveyResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/survey [post]
func (s *SurveyController) SubmitSurvey(c *gin.Context) {
	submission := request_models.SurveySubmission{
		Name:      c.PostForm("name"),
		Email:     c.PostForm("email"),
		Question2: c.PostForm("question2"),
		Question4: c.PostForm("question4"),
		Question5: c.PostForm("question5"),
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}

	// Repeated form fields take precedence; a single JSON-encoded array is
	// also accepted.
	values := c.PostFormArray("question3")
	switch {
	case len(values) > 1:
		submission.Question3 = values
	case len(values) == 1 && !strings.HasPrefix(strings.TrimSpace(values[0]), "["):
		submission.Question3 = values
	default:
		submission.Question3Raw = c.PostForm("question3")
	}

	fileHeader, err := c.FormFile("photo")
	if err == nil {
		file, openErr := fileHeader.Open()
		if openErr != nil {
			utils.RespondError(c, http.StatusBadRequest, "Failed to read uploaded photo")
			return
		}
		defer file.Close()

		data, readErr := io.ReadAll(file)
		if readErr != nil {
			utils.RespondError(c, http.StatusBadRequest, "Failed to read uploaded photo")
			return
		}

		submission.Photo = &request_models.PhotoUpload{
			FileName:    fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
			Data:        data,
		}
	} else if !errors.Is(err, http.ErrMissingFile) {
		utils.RespondError(c, http.StatusBadRequest, "Failed to read uploaded photo")
		return
	}

	survey, err := s.surveyService.SubmitSurvey(c.Request.Context(), submission)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response_models.SubmitSurveyResponse{
		Success: true,
		Message: "Survey submitted successfully!",
		Survey:  survey,
	})
}

// ListSurveys godoc
// @Summary List testimonials
// @Description Paginated, searchable, filterable listing of non-archived testimonials
// @Tags Surveys
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10) minimum(1) maximum(100)
// @Param search query string false "Case-insensitive search over name, email, question2 and question4"
// @Param sortBy query string false "Sort field" default(submittedAt)
// @Param sortOrder query string false "asc or desc" default(desc)
// @Param filterBy query string false "JSON-encoded filter, e.g. {\"question3\":[\"Executive Coaching\"]}"
// @Param includeArchived query bool false "Include archived records" default(false)
// @Success 200 {object} response_models.SurveyListResponse
// @Failure 400 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /api/surveys [get]
func (s *SurveyController) ListSurveys(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page number")
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 || limit > 100 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page size")
		return
	}

	query := request_models.SurveyListQuery{
		Page:            page,
		Limit:           limit,
		Search:          c.Query("search"),
		SortBy:          c.DefaultQuery("sortBy", "submittedAt"),
		SortOrder:       c.DefaultQuery("sortOrder", "desc"),
		IncludeArchived: c.DefaultQuery("includeArchived", "false") == "true",
	}

	if filterBy := c.Query("filterBy"); filterBy != "" {
		if err := json.Unmarshal([]byte(filterBy), &query.Filter); err != nil {
			utils.RespondError(c, http.StatusBadRequest, "filterBy must be valid JSON")
			return
		}
	}

	result, err := s.surveyService.ListSurveys(c.Request.Context(), query)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ArchiveSurvey godoc
// @Summary Archive a testimonial
// @Description Soft-delete; the record stays in storage but leaves all listings and statistics
// @Tags Surveys
// @Produce json
// @Param id path string true "Survey ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /api/surveys/{id} [delete]
func (s *SurveyController) ArchiveSurvey(c *gin.Context) {
	if err := s.surveyService.ArchiveSurvey(c.Request.Context(), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Survey archived successfully",
	})
}

// GetPhoto godoc
// @Summary Stream a testimonial photo
// @Description Decode the embedded data URI and return the raw image bytes
// @Tags Surveys
// @Produce png
// @Param id path string true "Survey ID"
// @Success 200 {file} binary
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/photo/{id} [get]
func (s *SurveyController) GetPhoto(c *gin.Context) {
	data, contentType, err := s.surveyService.GetPhoto(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrSurveyNotFound):
			utils.RespondError(c, http.StatusNotFound, "Survey not found")
		case errors.Is(err, utils.ErrNoPhoto):
			utils.RespondError(c, http.StatusNotFound, "No photo uploaded for this survey")
		default:
			utils.HandleServiceError(c, err)
		}
		return
	}

	c.Data(http.StatusOK, contentType, data)
}
