package response_models

import "testimonial/internal/models/db_models"

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

type SurveyListResponse struct {
	Success    bool               `json:"success"`
	Surveys    []db_models.Survey `json:"surveys"`
	Pagination Pagination         `json:"pagination"`
}

type SubmitSurveyResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Survey  *db_models.Survey `json:"survey"`
}
