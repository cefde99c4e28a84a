package handlers

import (
	"errors"
	"log"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/pacifichome/smarthome-admin/internal/auth"
	"github.com/pacifichome/smarthome-admin/internal/config"
	"github.com/pacifichome/smarthome-admin/internal/store"
	"github.com/pacifichome/smarthome-admin/internal/uploads"
)

// Handlers holds every dependency the endpoints need. One instance is built
// in main and shared across requests; all state lives in the database and
// the upload directories.
type Handlers struct {
	Store  *store.Store
	Images *uploads.Store
	Videos *uploads.Store
	Tokens *auth.Manager
	Cfg    config.Config

	validate *validator.Validate
}

func New(st *store.Store, images, videos *uploads.Store, tokens *auth.Manager, cfg config.Config) *Handlers {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report field errors under their json names so the client sees the
	// field it actually sent.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Handlers{
		Store:    st,
		Images:   images,
		Videos:   videos,
		Tokens:   tokens,
		Cfg:      cfg,
		validate: v,
	}
}

// ok writes the standard success envelope.
func ok(c *gin.Context, message string, extra gin.H) {
	body := gin.H{"success": true, "message": message}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// fail maps an error to its HTTP status and the {success:false, message}
// envelope. Unknown errors are logged and surfaced as a generic message.
func fail(c *gin.Context, err error) {
	var (
		validationErr store.ValidationError
		notFoundErr   store.NotFoundError
		conflictErr   store.ConflictError
	)
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": validationErr.Message})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": notFoundErr.Message})
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": conflictErr.Message})
	default:
		log.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
	}
}

// failValidation is a shorthand for ad-hoc input errors raised in handlers.
func failValidation(c *gin.Context, message string) {
	fail(c, store.ValidationError{Message: message})
}

// formatPayloadError turns the first validator field error into the
// human-readable message the admin UI shows.
func formatPayloadError(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		if fe.Tag() == "required" {
			return "Missing field: " + fe.Field()
		}
		return "Invalid value for field: " + fe.Field()
	}
	return "Invalid request payload"
}
