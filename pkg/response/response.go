package response

import (
	"errors"
	"net/http"

	"ecommerce-transactions/pkg/apperror"

	"github.com/gin-gonic/gin"
)

const problemContentType = "application/problem+json"

// ProblemDetail is the error body returned by every endpoint.
type ProblemDetail struct {
	Status int    `json:"status"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// OK sends a 200 response with the given body.
func OK(c *gin.Context, body any) {
	c.JSON(http.StatusOK, body)
}

// Created sends a 201 response with the given body.
func Created(c *gin.Context, body any) {
	c.JSON(http.StatusCreated, body)
}

// Accepted sends an empty 202 response.
func Accepted(c *gin.Context) {
	c.Status(http.StatusAccepted)
}

// Error sends a problem detail. Errors that are not an *apperror.AppError become 500.
func Error(c *gin.Context, err error) {
	ErrorWithFallback(c, err, http.StatusInternalServerError)
}

// ErrorWithFallback is Error with a caller-chosen status for unclassified
// failures, including apperror.ProcessingError.
func ErrorWithFallback(c *gin.Context, err error, fallbackStatus int) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := appErr.HTTPStatus
		if appErr.Code == apperror.ProcessingError("", nil).Code {
			status = fallbackStatus
		}
		problem(c, status, appErr.Title, appErr.Detail)
		return
	}

	problem(c, fallbackStatus, http.StatusText(fallbackStatus), "Unexpected error processing the request")
}

// Abort writes a problem detail and stops the handler chain.
func Abort(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}

func problem(c *gin.Context, status int, title, detail string) {
	c.Render(status, problemRender{ProblemDetail{Status: status, Title: title, Detail: detail}})
}
