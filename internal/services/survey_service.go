package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"testimonial/internal/infra"
	"testimonial/internal/models/db_models"
	"testimonial/internal/models/request_models"
	"testimonial/internal/models/response_models"
	"testimonial/internal/repositories"
	"testimonial/pkg/utils"
)

type SurveyServiceInterface interface {
	SubmitSurvey(ctx context.Context, submission request_models.SurveySubmission) (*db_models.Survey, error)
	ListSurveys(ctx context.Context, query request_models.SurveyListQuery) (*response_models.SurveyListResponse, error)
	ArchiveSurvey(ctx context.Context, id string) error
	GetSurveyByID(ctx context.Context, id string) (*db_models.Survey, error)
	GetPhoto(ctx context.Context, id string) ([]byte, string, error)
}

type SurveyService struct {
	surveyRepo repositories.SurveyRepositoryInterface
	config     infra.Config
}

func NewSurveyService(surveyRepo repositories.SurveyRepositoryInterface, config infra.Config) SurveyServiceInterface {
	return &SurveyService{
		surveyRepo: surveyRepo,
		config:     config,
	}
}

// Whitelisted sort fields; anything else falls back to submission time.
var sortColumns = map[string]string{
	"submittedAt": "submitted_at",
	"name":        "name",
	"email":       "email",
	"question5":   "question5",
}

func (s *SurveyService) SubmitSurvey(ctx context.Context, submission request_models.SurveySubmission) (*db_models.Survey, error) {
	name := strings.TrimSpace(submission.Name)
	email := strings.ToLower(strings.TrimSpace(submission.Email))
	question2 := strings.TrimSpace(submission.Question2)
	question4 := strings.TrimSpace(submission.Question4)
	question5 := strings.TrimSpace(submission.Question5)

	question3, err := resolveQuestion3(submission)
	if err != nil {
		return nil, err
	}

	switch {
	case name == "":
		return nil, utils.RequiredFieldError("name")
	case email == "":
		return nil, utils.RequiredFieldError("email")
	case question2 == "":
		return nil, utils.RequiredFieldError("question2")
	case len(question3) == 0:
		return nil, utils.RequiredFieldError("question3")
	case question4 == "":
		return nil, utils.RequiredFieldError("question4")
	case question5 == "":
		return nil, utils.RequiredFieldError("question5")
	}

	if !utils.IsValidEmail(email) {
		return nil, utils.FieldError("email", "Invalid email format")
	}

	if !validConsentChoice(question5) {
		return nil, utils.FieldError("question5", "question5 must be one of the offered consent options")
	}

	if s.config.PhotoRequired && submission.Photo == nil {
		return nil, utils.RequiredFieldError("photo")
	}

	survey := &db_models.Survey{
		Name:        name,
		Email:       email,
		Question2:   question2,
		Question3:   question3,
		Question4:   question4,
		Question5:   question5,
		SubmittedAt: time.Now(),
		IPAddress:   submission.IPAddress,
		UserAgent:   submission.UserAgent,
	}

	if submission.Photo != nil {
		if err := s.attachPhoto(survey, submission.Photo); err != nil {
			return nil, err
		}
	}

	if err := s.surveyRepo.CreateSurvey(ctx, survey); err != nil {
		log.Printf("Error saving survey: %v", err)
		return nil, utils.ErrDatabaseError
	}

	return survey, nil
}

// resolveQuestion3 accepts the tag selection either as repeated form fields
// or as a single JSON-encoded array string.
func resolveQuestion3(submission request_models.SurveySubmission) ([]string, error) {
	if len(submission.Question3) > 0 {
		return submission.Question3, nil
	}

	raw := strings.TrimSpace(submission.Question3Raw)
	if raw == "" {
		return nil, nil
	}

	var parsed []string
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, utils.FieldError("question3", "question3 must be a JSON array of strings")
	}
	return parsed, nil
}

func validConsentChoice(choice string) bool {
	for _, c := range db_models.ConsentChoices() {
		if choice == c {
			return true
		}
	}
	return false
}

// attachPhoto validates the buffered upload and embeds it on the record as a
// data URI, alongside a collision-resistant stored filename.
func (s *SurveyService) attachPhoto(survey *db_models.Survey, photo *request_models.PhotoUpload) error {
	if !strings.HasPrefix(photo.ContentType, "image/") {
		return utils.FieldError("photo", "Only image files are allowed")
	}

	if int64(len(photo.Data)) > s.config.PhotoMaxBytes {
		return utils.FieldError("photo", fmt.Sprintf("Photo must not exceed %d bytes", s.config.PhotoMaxBytes))
	}

	ext := strings.ToLower(filepath.Ext(photo.FileName))
	fileName := fmt.Sprintf("photo-%d-%s%s", time.Now().UnixMilli(), uuid.NewString(), ext)
	photoURL := "/uploads/" + fileName
	photoData := "data:" + photo.ContentType + ";base64," + base64.StdEncoding.EncodeToString(photo.Data)

	survey.PhotoFileName = &fileName
	survey.PhotoURL = &photoURL
	survey.PhotoData = &photoData
	return nil
}

func (s *SurveyService) ListSurveys(ctx context.Context, query request_models.SurveyListQuery) (*response_models.SurveyListResponse, error) {
	if query.Page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if query.Limit < 1 || query.Limit > 100 {
		return nil, utils.ErrInvalidPageSize
	}

	sortColumn, ok := sortColumns[query.SortBy]
	if !ok {
		sortColumn = "submitted_at"
	}
	sortDesc := !strings.EqualFold(query.SortOrder, "asc")

	surveys, total, err := s.surveyRepo.ListSurveys(ctx, query, sortColumn, sortDesc)
	if err != nil {
		log.Printf("Error fetching surveys: %v", err)
		return nil, utils.ErrDatabaseError
	}

	totalPages := int((total + int64(query.Limit) - 1) / int64(query.Limit))

	return &response_models.SurveyListResponse{
		Success: true,
		Surveys: surveys,
		Pagination: response_models.Pagination{
			Page:       query.Page,
			Limit:      query.Limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    int64(query.Page)*int64(query.Limit) < total,
			HasPrev:    query.Page > 1,
		},
	}, nil
}

func (s *SurveyService) ArchiveSurvey(ctx context.Context, id string) error {
	surveyID, err := uuid.Parse(id)
	if err != nil {
		return utils.ErrSurveyNotFound
	}

	survey, err := s.surveyRepo.FindByID(ctx, surveyID)
	if err != nil {
		log.Printf("Error archiving survey: %v", err)
		return utils.ErrDatabaseError
	}
	if survey == nil {
		return utils.ErrSurveyNotFound
	}

	// Archiving an already-archived record succeeds silently.
	if err := s.surveyRepo.SetArchived(ctx, surveyID); err != nil {
		log.Printf("Error archiving survey: %v", err)
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *SurveyService) GetSurveyByID(ctx context.Context, id string) (*db_models.Survey, error) {
	surveyID, err := uuid.Parse(id)
	if err != nil {
		return nil, utils.ErrSurveyNotFound
	}

	survey, err := s.surveyRepo.FindByID(ctx, surveyID)
	if err != nil {
		log.Printf("Error fetching survey by ID: %v", err)
		return nil, utils.ErrDatabaseError
	}
	if survey == nil {
		return nil, utils.ErrSurveyNotFound
	}
	return survey, nil
}

// GetPhoto decodes the embedded data URI back into raw image bytes and the
// declared media type.
func (s *SurveyService) GetPhoto(ctx context.Context, id string) ([]byte, string, error) {
	survey, err := s.GetSurveyByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if !survey.HasPhoto() {
		return nil, "", utils.ErrNoPhoto
	}

	header, payload, found := strings.Cut(*survey.PhotoData, ";base64,")
	if !found {
		log.Printf("Malformed photo data on survey %s", id)
		return nil, "", utils.ErrNoPhoto
	}

	contentType := strings.TrimPrefix(header, "data:")
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		log.Printf("Error decoding photo data on survey %s: %v", id, err)
		return nil, "", utils.ErrNoPhoto
	}

	return data, contentType, nil
}
