package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"testimonial/internal/infra"
	"testimonial/internal/models/db_models"
	"testimonial/internal/models/request_models"
	"testimonial/pkg/utils"
)

type mockSurveyRepo struct {
	mock.Mock
}

func (m *mockSurveyRepo) CreateSurvey(ctx context.Context, survey *db_models.Survey) error {
	args := m.Called(ctx, survey)
	return args.Error(0)
}

func (m *mockSurveyRepo) ListSurveys(ctx context.Context, query request_models.SurveyListQuery, sortColumn string, sortDesc bool) ([]db_models.Survey, int64, error) {
	args := m.Called(ctx, query, sortColumn, sortDesc)
	var surveys []db_models.Survey
	if v := args.Get(0); v != nil {
		surveys = v.([]db_models.Survey)
	}
	return surveys, args.Get(1).(int64), args.Error(2)
}

func (m *mockSurveyRepo) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Survey, error) {
	args := m.Called(ctx, id)
	var survey *db_models.Survey
	if v := args.Get(0); v != nil {
		survey = v.(*db_models.Survey)
	}
	return survey, args.Error(1)
}

func (m *mockSurveyRepo) SetArchived(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func testConfig() infra.Config {
	return infra.Config{
		PhotoRequired: false,
		PhotoMaxBytes: 10 << 20,
	}
}

func validSubmission() request_models.SurveySubmission {
	return request_models.SurveySubmission{
		Name:      "Ana",
		Email:     "ana@x.com",
		Question2: "CTO at Acme",
		Question3: []string{"Executive Coaching"},
		Question4: "Great",
		Question5: db_models.ConsentPublish,
		IPAddress: "203.0.113.7",
		UserAgent: "test-agent",
	}
}

func TestSubmitSurvey_MissingRequiredFields(t *testing.T) {
	tests := []struct {
		field  string
		mutate func(*request_models.SurveySubmission)
	}{
		{"name", func(s *request_models.SurveySubmission) { s.Name = "" }},
		{"email", func(s *request_models.SurveySubmission) { s.Email = "  " }},
		{"question2", func(s *request_models.SurveySubmission) { s.Question2 = "" }},
		{"question3", func(s *request_models.SurveySubmission) { s.Question3 = nil }},
		{"question4", func(s *request_models.SurveySubmission) { s.Question4 = "" }},
		{"question5", func(s *request_models.SurveySubmission) { s.Question5 = "" }},
	}

	for _, tc := range tests {
		t.Run(tc.field, func(t *testing.T) {
			repo := new(mockSurveyRepo)
			service := NewSurveyService(repo, testConfig())

			submission := validSubmission()
			tc.mutate(&submission)

			_, err := service.SubmitSurvey(context.Background(), submission)

			var vErr *utils.ValidationError
			assert.ErrorAs(t, err, &vErr)
			assert.Equal(t, tc.field, vErr.Field)
			assert.Equal(t, tc.field+" is required", vErr.Message)
			repo.AssertNotCalled(t, "CreateSurvey", mock.Anything, mock.Anything)
		})
	}
}

func TestSubmitSurvey_InvalidEmail(t *testing.T) {
	repo := new(mockSurveyRepo)
	service := NewSurveyService(repo, testConfig())

	submission := validSubmission()
	submission.Email = "not-an-email"

	_, err := service.SubmitSurvey(context.Background(), submission)

	var vErr *utils.ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Equal(t, "email", vErr.Field)
	assert.Equal(t, "Invalid email format", vErr.Message)
}

func TestSubmitSurvey_JSONEncodedQuestion3(t *testing.T) {
	repo := new(mockSurveyRepo)
	repo.On("CreateSurvey", mock.Anything, mock.Anything).Return(nil)
	service := NewSurveyService(repo, testConfig())

	submission := validSubmission()
	submission.Question3 = nil
	submission.Question3Raw = `["Executive Coaching","Climate Survey"]`

	survey, err := service.SubmitSurvey(context.Background(), submission)

	assert.NoError(t, err)
	assert.Equal(t, []string{"Executive Coaching", "Climate Survey"}, []string(survey.Question3))
}

func TestSubmitSurvey_EmptyTagSelection(t *testing.T) {
	repo := new(mockSurveyRepo)
	service := NewSurveyService(repo, testConfig())

	submission := validSubmission()
	submission.Question3 = nil
	submission.Question3Raw = `[]`

	_, err := service.SubmitSurvey(context.Background(), submission)

	var vErr *utils.ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Equal(t, "question3", vErr.Field)
}

func TestSubmitSurvey_MalformedQuestion3(t *testing.T) {
	repo := new(mockSurveyRepo)
	service := NewSurveyService(repo, testConfig())

	submission := validSubmission()
	submission.Question3 = nil
	submission.Question3Raw = `[not json`

	_, err := service.SubmitSurvey(context.Background(), submission)

	var vErr *utils.ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Equal(t, "question3", vErr.Field)
}

func TestSubmitSurvey_UnknownConsentChoice(t *testing.T) {
	repo := new(mockSurveyRepo)
	service := NewSurveyService(repo, testConfig())

	submission := validSubmission()
	submission.Question5 = "Maybe"

	_, err := service.SubmitSurvey(context.Background(), submission)

	var vErr *utils.ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Equal(t, "question5", vErr.Field)
}

func TestSubmitSurvey_NoPhoto(t *testing.T) {
	repo := new(mockSurveyRepo)
	repo.On("CreateSurvey", mock.Anything, mock.Anything).Return(nil)
	service := NewSurveyService(repo, testConfig())

	submission := validSubmission()
	submission.Email = "Ana@X.com "

	survey, err := service.SubmitSurvey(context.Background(), submission)

	assert.NoError(t, err)
	assert.Equal(t, "ana@x.com", survey.Email)
	assert.Nil(t, survey.PhotoURL)
	assert.Nil(t, survey.PhotoData)
	assert.False(t, survey.Archived)
	repo.AssertExpectations(t)
}

func TestSubmitSurvey_PhotoRequiredPolicy(t *testing.T) {
	repo := new(mockSurveyRepo)
	config := testConfig()
	config.PhotoRequired = true
	service := NewSurveyService(repo, config)

	_, err := service.SubmitSurvey(context.Background(), validSubmission())

	var vErr *utils.ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Equal(t, "photo", vErr.Field)
}

func TestSubmitSurvey_RejectsNonImagePhoto(t *testing.T) {
	repo := new(mockSurveyRepo)
	service := NewSurveyService(repo, testConfig())

	submission := validSubmission()
	submission.Photo = &request_models.PhotoUpload{
		FileName:    "resume.pdf",
		ContentType: "application/pdf",
		Data:        []byte("%PDF-1.4"),
	}

	_, err := service.SubmitSurvey(context.Background(), submission)

	var vErr *utils.ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Equal(t, "photo", vErr.Field)
	assert.Equal(t, "Only image files are allowed", vErr.Message)
}

func TestSubmitSurvey_RejectsOversizePhoto(t *testing.T) {
	repo := new(mockSurveyRepo)
	config := testConfig()
	config.PhotoMaxBytes = 16
	service := NewSurveyService(repo, config)

	submission := validSubmission()
	submission.Photo = &request_models.PhotoUpload{
		FileName:    "selfie.png",
		ContentType: "image/png",
		Data:        bytes.Repeat([]byte{0xAB}, 17),
	}

	_, err := service.SubmitSurvey(context.Background(), submission)

	var vErr *utils.ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Equal(t, "photo", vErr.Field)
}

func TestSubmitSurvey_PhotoRoundTrip(t *testing.T) {
	repo := new(mockSurveyRepo)
	repo.On("CreateSurvey", mock.Anything, mock.Anything).Return(nil)
	service := NewSurveyService(repo, testConfig())

	original := bytes.Repeat([]byte{0x89, 0x50, 0x4E, 0x47}, 50*1024/4)

	submission := validSubmission()
	submission.Photo = &request_models.PhotoUpload{
		FileName:    "selfie.PNG",
		ContentType: "image/png",
		Data:        original,
	}

	survey, err := service.SubmitSurvey(context.Background(), submission)
	assert.NoError(t, err)
	assert.NotNil(t, survey.PhotoData)
	assert.NotNil(t, survey.PhotoFileName)
	assert.True(t, strings.HasPrefix(*survey.PhotoData, "data:image/png;base64,"))
	assert.True(t, strings.HasPrefix(*survey.PhotoFileName, "photo-"))
	assert.True(t, strings.HasSuffix(*survey.PhotoFileName, ".png"))
	assert.Equal(t, "/uploads/"+*survey.PhotoFileName, *survey.PhotoURL)

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(*survey.PhotoData, "data:image/png;base64,"))
	assert.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestListSurveys_PaginationMetadata(t *testing.T) {
	repo := new(mockSurveyRepo)
	repo.On("ListSurveys", mock.Anything, mock.Anything, "submitted_at", true).
		Return([]db_models.Survey{{Name: "Ana"}}, int64(25), nil)
	service := NewSurveyService(repo, testConfig())

	result, err := service.ListSurveys(context.Background(), request_models.SurveyListQuery{
		Page:  2,
		Limit: 10,
	})

	assert.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 2, result.Pagination.Page)
	assert.Equal(t, int64(25), result.Pagination.Total)
	assert.Equal(t, 3, result.Pagination.TotalPages)
	assert.True(t, result.Pagination.HasNext)
	assert.True(t, result.Pagination.HasPrev)
}

func TestListSurveys_PastLastPage(t *testing.T) {
	repo := new(mockSurveyRepo)
	repo.On("ListSurveys", mock.Anything, mock.Anything, "submitted_at", true).
		Return([]db_models.Survey{}, int64(25), nil)
	service := NewSurveyService(repo, testConfig())

	result, err := service.ListSurveys(context.Background(), request_models.SurveyListQuery{
		Page:  9,
		Limit: 10,
	})

	assert.NoError(t, err)
	assert.Empty(t, result.Surveys)
	assert.Equal(t, 3, result.Pagination.TotalPages)
	assert.False(t, result.Pagination.HasNext)
	assert.True(t, result.Pagination.HasPrev)
}

func TestListSurveys_InvalidPaging(t *testing.T) {
	service := NewSurveyService(new(mockSurveyRepo), testConfig())

	_, err := service.ListSurveys(context.Background(), request_models.SurveyListQuery{Page: 0, Limit: 10})
	assert.ErrorIs(t, err, utils.ErrInvalidPage)

	_, err = service.ListSurveys(context.Background(), request_models.SurveyListQuery{Page: 1, Limit: 101})
	assert.ErrorIs(t, err, utils.ErrInvalidPageSize)
}

func TestListSurveys_SortWhitelist(t *testing.T) {
	repo := new(mockSurveyRepo)
	repo.On("ListSurveys", mock.Anything, mock.Anything, "submitted_at", false).
		Return([]db_models.Survey{}, int64(0), nil)
	service := NewSurveyService(repo, testConfig())

	// Unknown sort fields fall back to submission time.
	_, err := service.ListSurveys(context.Background(), request_models.SurveyListQuery{
		Page:      1,
		Limit:     10,
		SortBy:    "ipAddress; DROP TABLE surveys",
		SortOrder: "asc",
	})

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestArchiveSurvey_NotFound(t *testing.T) {
	repo := new(mockSurveyRepo)
	id := uuid.New()
	repo.On("FindByID", mock.Anything, id).Return(nil, nil)
	service := NewSurveyService(repo, testConfig())

	err := service.ArchiveSurvey(context.Background(), id.String())

	assert.ErrorIs(t, err, utils.ErrSurveyNotFound)
	repo.AssertNotCalled(t, "SetArchived", mock.Anything, mock.Anything)
}

func TestArchiveSurvey_InvalidID(t *testing.T) {
	service := NewSurveyService(new(mockSurveyRepo), testConfig())

	err := service.ArchiveSurvey(context.Background(), "not-a-uuid")

	assert.ErrorIs(t, err, utils.ErrSurveyNotFound)
}

func TestArchiveSurvey_Idempotent(t *testing.T) {
	repo := new(mockSurveyRepo)
	id := uuid.New()
	repo.On("FindByID", mock.Anything, id).Return(&db_models.Survey{ID: id, Archived: true}, nil)
	repo.On("SetArchived", mock.Anything, id).Return(nil)
	service := NewSurveyService(repo, testConfig())

	// Archiving an already-archived record succeeds silently.
	assert.NoError(t, service.ArchiveSurvey(context.Background(), id.String()))
	repo.AssertExpectations(t)
}

func TestGetSurveyByID_IncludesArchived(t *testing.T) {
	repo := new(mockSurveyRepo)
	id := uuid.New()
	repo.On("FindByID", mock.Anything, id).Return(&db_models.Survey{ID: id, Archived: true}, nil)
	service := NewSurveyService(repo, testConfig())

	survey, err := service.GetSurveyByID(context.Background(), id.String())

	assert.NoError(t, err)
	assert.True(t, survey.Archived)
}

func TestGetPhoto_RoundTrip(t *testing.T) {
	repo := new(mockSurveyRepo)
	id := uuid.New()
	original := bytes.Repeat([]byte{0x89, 0x50, 0x4E, 0x47}, 50*1024/4)
	photoData := "data:image/png;base64," + base64.StdEncoding.EncodeToString(original)
	repo.On("FindByID", mock.Anything, id).Return(&db_models.Survey{ID: id, PhotoData: &photoData}, nil)
	service := NewSurveyService(repo, testConfig())

	data, contentType, err := service.GetPhoto(context.Background(), id.String())

	assert.NoError(t, err)
	assert.Equal(t, "image/png", contentType)
	assert.Equal(t, original, data)
}

func TestGetPhoto_MissingPhoto(t *testing.T) {
	repo := new(mockSurveyRepo)
	id := uuid.New()
	repo.On("FindByID", mock.Anything, id).Return(&db_models.Survey{ID: id}, nil)
	service := NewSurveyService(repo, testConfig())

	_, _, err := service.GetPhoto(context.Background(), id.String())

	assert.ErrorIs(t, err, utils.ErrNoPhoto)
}
