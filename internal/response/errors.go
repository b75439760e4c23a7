package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Transcript ────────────────────────────────────────────────────
	ErrSemesterNotFound ErrCode = "SEMESTER_NOT_FOUND"
	ErrCourseNotFound   ErrCode = "COURSE_NOT_FOUND"
	ErrGradeNotMapped   ErrCode = "GRADE_NOT_MAPPED"
	ErrZeroCredits      ErrCode = "ZERO_CREDITS"
	ErrSourceFailure    ErrCode = "TRANSCRIPT_UNAVAILABLE"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validasi gagal. Silakan periksa masukan Anda."
	case ErrInvalidID:
		return "Format ID tidak valid."
	case ErrInvalidPayload:
		return "Payload permintaan tidak valid."

	// ─── Transcript ────────────────────────────────────────────────────
	case ErrSemesterNotFound:
		return "Semester tidak ditemukan dalam transkrip."
	case ErrCourseNotFound:
		return "Mata kuliah tidak ditemukan dalam transkrip."
	case ErrGradeNotMapped:
		return "Nilai tidak terdaftar pada skala penilaian."
	case ErrZeroCredits:
		return "Tidak ada SKS yang dihitung; indeks tidak dapat ditentukan."
	case ErrSourceFailure:
		return "Transkrip tidak dapat dimuat."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Sumber daya tidak ditemukan."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Terlalu banyak permintaan. Silakan coba lagi nanti."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "Terjadi kesalahan server internal."
	default:
		return "Terjadi kesalahan yang tidak terduga."
	}
}
