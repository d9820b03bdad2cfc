package validation

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/yukikurage/schedule-api/internal/constants"
	apierrors "github.com/yukikurage/schedule-api/internal/errors"
)

// Body returns the decoded JSON body of the request. The body is read once
// and cached on the context so that every guard sees the same map.
func Body(c *gin.Context) (map[string]any, error) {
	if cached, ok := c.Get(constants.ContextKeyBody); ok {
		if body, ok := cached.(map[string]any); ok {
			return body, nil
		}
	}

	body := map[string]any{}
	if c.Request == nil || c.Request.Body == nil || c.Request.Body == http.NoBody {
		c.Set(constants.ContextKeyBody, body)
		return body, nil
	}

	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, apierrors.NewWithDetails(apierrors.MsgInvalidBody, http.StatusBadRequest, err.Error())
	}

	if len(bytes.TrimSpace(raw)) > 0 {
		decoder := json.NewDecoder(bytes.NewReader(raw))
		decoder.UseNumber()
		if err := decoder.Decode(&body); err != nil {
			return nil, apierrors.NewWithDetails(apierrors.MsgInvalidBody, http.StatusBadRequest, err.Error())
		}
		if body == nil {
			body = map[string]any{}
		}
	}

	c.Set(constants.ContextKeyBody, body)
	return body, nil
}

// BindBody binds the cached body into dst through gin's JSON binding, so the
// binding tags on dst are enforced against the sanitized values.
func BindBody(c *gin.Context, dst any) error {
	body, err := Body(c)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}

	return binding.JSON.BindBody(raw, dst)
}

// Sanitize trims surrounding whitespace from every top-level string field
func Sanitize() gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := Body(c)
		if err != nil {
			reject(c, err)
			return
		}

		for key, value := range body {
			if s, ok := value.(string); ok {
				body[key] = strings.TrimSpace(s)
			}
		}

		c.Next()
	}
}

func reject(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// loadBody runs fn against the decoded body, rejecting the request when the
// body cannot be decoded or fn reports a failure.
func loadBody(c *gin.Context, fn func(body map[string]any) *apierrors.AppError) {
	body, err := Body(c)
	if err != nil {
		reject(c, err)
		return
	}
	if appErr := fn(body); appErr != nil {
		reject(c, appErr)
		return
	}
	c.Next()
}

func isFalsy(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case bool:
		return !v
	case json.Number:
		f, err := v.Float64()
		return err == nil && f == 0
	case float64:
		return v == 0
	}
	return false
}

// stringField returns the string value of key and whether it was supplied.
// Absent, null and empty values count as not supplied.
func stringField(body map[string]any, key string) (string, bool, bool) {
	value, ok := body[key]
	if !ok || value == nil {
		return "", false, true
	}
	s, isString := value.(string)
	if !isString {
		return "", true, false
	}
	if s == "" {
		return "", false, true
	}
	return s, true, true
}
