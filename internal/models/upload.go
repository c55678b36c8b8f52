package models

// UploadKind represents the media category accepted by the upload service
type UploadKind string

const (
	UploadKindImage    UploadKind = "image"
	UploadKindVideo    UploadKind = "video"
	UploadKindAudio    UploadKind = "audio"
	UploadKindDocument UploadKind = "document"
)

// UploadResult represents a file stored by the media service
type UploadResult struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	MimeType string `json:"mimeType"`
}
