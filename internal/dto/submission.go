package dto

// UploadResponse is returned by POST /upload. The pdf fields are only
// present when PDF rendering is enabled; pdf_generated reports whether the
// render attempt for this submission succeeded.
type UploadResponse struct {
	Success      bool    `json:"success"`
	ID           string  `json:"id"`
	Filename     string  `json:"filename"`
	URL          string  `json:"url"`
	PDFFilename  *string `json:"pdf_filename,omitempty"`
	PDFURL       *string `json:"pdf_url,omitempty"`
	PDFGenerated *bool   `json:"pdf_generated,omitempty"`
}
