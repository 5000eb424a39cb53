package document

import (
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("document not found")

// UserDocument is the metadata of a file a user uploaded. The bytes live in
// object storage under FilePath.
type UserDocument struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	DocName   string    `json:"doc_name"`
	DocType   string    `json:"doc_type"`
	FilePath  string    `json:"file_path"`
	FileSize  int64     `json:"file_size"`
	MimeType  string    `json:"mime_type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CommonDocTypes are offered by the upload picker.
var CommonDocTypes = []string{
	"주민등록등본",
	"주민등록초본",
	"가족관계증명서",
	"농업경영체등록확인서",
	"농지원부",
	"토지대장",
	"등기부등본",
	"소득금액증명원",
	"건강보험자격득실확인서",
	"건강보험료납부확인서",
	"통장사본",
	"신분증사본",
	"영농계획서",
	"친환경인증서",
	"사업자등록증",
	"기타",
}

const DefaultMimeType = "application/octet-stream"

// StoragePath builds <user>/<unix_ms>_<type>.<ext>. The extension is taken
// from fileName and defaults to pdf.
func StoragePath(userID uuid.UUID, docType, fileName string, at time.Time) string {
	ext := strings.TrimPrefix(path.Ext(fileName), ".")
	if ext == "" {
		ext = "pdf"
	}
	return fmt.Sprintf("%s/%d_%s.%s", userID, at.UnixMilli(), docType, ext)
}
