package dto

type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SaveApplicationRequest struct {
	PolicyID string            `json:"policy_id"`
	FormData map[string]string `json:"form_data"`
	Status   string            `json:"status"`
}

type RegisterDocumentRequest struct {
	DocName  string `json:"doc_name"`
	DocType  string `json:"doc_type"`
	FileName string `json:"file_name"`
	FileSize int64  `json:"file_size"`
	MimeType string `json:"mime_type"`
}
