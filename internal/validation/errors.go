// Package validation checks uploads and job descriptions before they reach
// the analysis engine.
package validation

// Error is a request validation failure. Its message is written for API
// callers and is returned to them verbatim.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

var (
	// ErrNoResumeFile is returned when the upload form has no resume file part.
	ErrNoResumeFile = &Error{Message: "No resume file provided"}

	// ErrNoFileSelected is returned when the resume file part has an empty filename.
	ErrNoFileSelected = &Error{Message: "No file selected"}

	// ErrNoJobDescription is returned when the form has no job description field.
	ErrNoJobDescription = &Error{Message: "No job description provided"}

	// ErrEmptyJobDescription is returned when the job description is blank.
	ErrEmptyJobDescription = &Error{Message: "Job description cannot be empty"}

	// ErrUnsupportedFileType is returned for uploads that are not PDF or DOCX.
	ErrUnsupportedFileType = &Error{Message: "Invalid file type. Please upload a PDF or DOCX file."}

	// ErrJobDescriptionTooShort is returned when the job description is under
	// the minimum length.
	ErrJobDescriptionTooShort = &Error{Message: "Job description is too short. Please provide a more detailed description."}

	// ErrInsufficientText is returned when too little text could be extracted
	// from the resume.
	ErrInsufficientText = &Error{Message: "Could not extract sufficient text from the resume. Please ensure the file is not corrupted and contains readable text."}
)
