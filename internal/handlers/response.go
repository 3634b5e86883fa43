package handlers

import (
  "errors"
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/yungbote/matpath-backend/internal/platform/apierr"
)

type APIError struct {
  Message string `json:"message"`
  Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
  Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
  msg := "unknown error"
  if err != nil {
    msg = err.Error()
  }
  c.JSON(status, ErrorEnvelope{Error: APIError{Message: msg, Code: code}})
}

// RespondAPIError maps an apierr.Error to its carried status; anything else
// is a 500.
func RespondAPIError(c *gin.Context, err error) {
  var apiErr *apierr.Error
  if errors.As(err, &apiErr) {
    status := apiErr.Status
    if status == 0 {
      status = http.StatusInternalServerError
    }
    RespondError(c, status, apiErr.Code, apiErr)
    return
  }
  RespondError(c, http.StatusInternalServerError, "internal_error", err)
}

func RespondOK(c *gin.Context, payload any) {
  c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
  c.JSON(http.StatusCreated, payload)
}
