package middleware

import (
	"net/http"
	"strings"
)

// MultipartOverhead is the room left for the multipart envelope around an uploaded file
const MultipartOverhead = 1 << 20

// RequestSizeLimitMiddleware limits the size of request bodies
//
// Editing requests carry JSON and are held to maxBodySize. Block media uploads are multipart
// and may carry a file of up to maxUploadSize bytes.
func RequestSizeLimitMiddleware(maxBodySize, maxUploadSize int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			limit := maxBodySize
			if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
				limit = maxUploadSize + MultipartOverhead
			}

			if r.ContentLength > limit {
				writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
