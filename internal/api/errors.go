package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"kpiawards/internal/importer"
	"kpiawards/internal/model"
	"kpiawards/internal/service/validator"
)

// error codes returned next to the message
const (
	codeDuplicateAward    = "DuplicateAward"
	codeUnknownFaculty    = "UnknownFaculty"
	codeUnknownAward      = "UnknownAward"
	codeUnknownStateAward = "UnknownStateAward"
	codeUnsupportedFormat = "UnsupportedFormat"
	codeStorage           = "StorageError"
	codeBadRequest        = "BadRequest"
	codeNotFound          = "NotFound"
	codeInternal          = "InternalError"
)

// classify maps a service error to an HTTP status and error code
func classify(err error) (int, string) {
	var verr *validator.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity, string(verr.Code)
	case errors.Is(err, model.ErrDuplicateAward):
		return http.StatusConflict, codeDuplicateAward
	case errors.Is(err, importer.ErrUnknownFaculty):
		return http.StatusUnprocessableEntity, codeUnknownFaculty
	case errors.Is(err, importer.ErrUnknownAward):
		return http.StatusUnprocessableEntity, codeUnknownAward
	case errors.Is(err, importer.ErrUnknownStateAward):
		return http.StatusUnprocessableEntity, codeUnknownStateAward
	case errors.Is(err, model.ErrUnsupportedFormat):
		return http.StatusBadRequest, codeUnsupportedFormat
	case errors.Is(err, model.ErrStorage):
		return http.StatusInternalServerError, codeStorage
	}
	return http.StatusInternalServerError, codeInternal
}

func writeError(c *gin.Context, err error) {
	status, code := classify(err)
	c.JSON(status, gin.H{"error": err.Error(), "code": code})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message, "code": codeBadRequest})
}
