package request_models

// PhotoUpload is the fully buffered uploaded file. The controller reads the
// multipart part into memory; the service never touches the request.
type PhotoUpload struct {
	FileName    string
	ContentType string
	Data        []byte
}

// SurveySubmission carries the parsed form fields of one testimonial
// submission. Question3 may arrive either as repeated form fields or as a
// single JSON-encoded array string; the controller passes both through and
// the service resolves them.
type SurveySubmission struct {
	Name         string
	Email        string
	Question2    string
	Question3    []string
	Question3Raw string
	Question4    string
	Question5    string
	Photo        *PhotoUpload
	IPAddress    string
	UserAgent    string
}

// SurveyFilter is the decoded filterBy query parameter.
type SurveyFilter struct {
	Question3 []string `json:"question3"`
	Question5 string   `json:"question5"`
}

// SurveyListQuery collects the listing options after parsing and defaulting.
type SurveyListQuery struct {
	Page            int
	Limit           int
	Search          string
	SortBy          string
	SortOrder       string
	Filter          SurveyFilter
	IncludeArchived bool
}
