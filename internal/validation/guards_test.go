package validation

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/schedule-api/internal/constants"
	apierrors "github.com/yukikurage/schedule-api/internal/errors"
)

// perform routes a single request through guards and reports the outcome the
// way the error middleware would.
func perform(t *testing.T, method, route, target, body string, guards ...gin.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Next()
		if err := c.Errors.Last(); err != nil {
			apierrors.Respond(c, apierrors.Classify(err.Err), err.Err, true)
		}
	})

	handlers := append(guards, func(c *gin.Context) {
		payload, _ := Body(c)
		c.JSON(http.StatusOK, payload)
	})
	router.Handle(method, route, handlers...)

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func assertRejected(t *testing.T, w *httptest.ResponseRecorder, message string) {
	t.Helper()
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, "fail", body["status"])
	assert.Equal(t, message, body["message"])
}

func TestSanitize_TrimsTopLevelStrings(t *testing.T) {
	w := perform(t, "POST", "/x", "/x", `{"name":"  Ana  ","nested":{"v":"  keep "},"n":3}`, Sanitize())

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Ana", body["name"])
	assert.Equal(t, map[string]any{"v": "  keep "}, body["nested"])
	assert.Equal(t, float64(3), body["n"])
}

func TestSanitize_InvalidJSON(t *testing.T) {
	w := perform(t, "POST", "/x", "/x", `{"name":`, Sanitize())
	assertRejected(t, w, apierrors.MsgInvalidBody)

	w = perform(t, "POST", "/x", "/x", `["a"]`, Sanitize())
	assertRejected(t, w, apierrors.MsgInvalidBody)
}

func TestRequiredFields(t *testing.T) {
	guard := RequiredFields("name", "email", "password")

	w := perform(t, "POST", "/x", "/x", `{"name":"Ana","email":"a@b.co","password":"s3cret!xx"}`, guard)
	assert.Equal(t, http.StatusOK, w.Code)

	w = perform(t, "POST", "/x", "/x", `{"name":"Ana"}`, guard)
	assertRejected(t, w, "the following fields are required: email, password")

	w = perform(t, "POST", "/x", "/x", `{"name":"","email":null,"password":0}`, guard)
	assertRejected(t, w, "the following fields are required: name, email, password")

	w = perform(t, "POST", "/x", "/x", ``, guard)
	assertRejected(t, w, "the following fields are required: name, email, password")
}

func TestNotEmptyStrings(t *testing.T) {
	w := perform(t, "POST", "/x", "/x", `{"title":"ok","b":"   ","a":""}`, NotEmptyStrings())
	assertRejected(t, w, "field a is empty")

	w = perform(t, "POST", "/x", "/x", `{"title":"ok","count":0}`, NotEmptyStrings())
	assert.Equal(t, http.StatusOK, w.Code)

	w = perform(t, "POST", "/x", "/x", `{"title":"ok","assigned_account_id":""}`, NotEmptyStrings("assigned_account_id"))
	assert.Equal(t, http.StatusOK, w.Code)

	w = perform(t, "POST", "/x", "/x", `{"title":" ","assigned_account_id":""}`, NotEmptyStrings("assigned_account_id"))
	assertRejected(t, w, "field title is empty")
}

func TestEmailFormat(t *testing.T) {
	guard := EmailFormat("email")

	for _, email := range []string{"a@b.co", "first.last@sub.example.org"} {
		w := perform(t, "POST", "/x", "/x", `{"email":"`+email+`"}`, guard)
		assert.Equal(t, http.StatusOK, w.Code, email)
	}
	for _, email := range []string{"plain", "a@b", "a b@c.de", "@b.co"} {
		w := perform(t, "POST", "/x", "/x", `{"email":"`+email+`"}`, guard)
		assertRejected(t, w, MsgInvalidEmail)
	}

	w := perform(t, "POST", "/x", "/x", `{"email":42}`, guard)
	assertRejected(t, w, MsgInvalidEmail)

	w = perform(t, "POST", "/x", "/x", `{}`, guard)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestIsStrongPassword(t *testing.T) {
	assert.True(t, IsStrongPassword("abc12345!"))
	assert.True(t, IsStrongPassword("1234567&"))
	assert.False(t, IsStrongPassword("abc1!"))
	assert.False(t, IsStrongPassword("abcdefgh!"))
	assert.False(t, IsStrongPassword("abcdefgh1"))
	assert.False(t, IsStrongPassword("abcdefg1?"))

	w := perform(t, "POST", "/x", "/x", `{"password":"weakpass"}`, PasswordStrength("password"))
	assertRejected(t, w, MsgWeakPassword)
}

func TestIdentifierFormat(t *testing.T) {
	guard := IdentifierFormat("id")

	accepted := []string{"42", "1", "123e4567-e89b-12d3-a456-426614174000"}
	for _, id := range accepted {
		w := perform(t, "GET", "/items/:id", "/items/"+id, "", guard)
		assert.Equal(t, http.StatusOK, w.Code, id)
	}

	rejected := []string{"0", "-1", "abc", "1.5", "123E4567-E89B-12D3-A456-426614174000", "99999999999999999999999"}
	for _, id := range rejected {
		w := perform(t, "GET", "/items/:id", "/items/"+id, "", guard)
		assertRejected(t, w, MsgInvalidID)
	}
}

func TestNumericParam(t *testing.T) {
	guard := NumericParam("eventId")

	w := perform(t, "GET", "/tasks/event/:eventId", "/tasks/event/7", "", guard)
	assert.Equal(t, http.StatusOK, w.Code)

	w = perform(t, "GET", "/tasks/event/:eventId", "/tasks/event/seven", "", guard)
	assertRejected(t, w, "eventId invalid")
}

func TestStatusEnum(t *testing.T) {
	guard := StatusEnum("status")

	for _, status := range []string{"pending", "in_progress", "completed"} {
		w := perform(t, "POST", "/x", "/x", `{"status":"`+status+`"}`, guard)
		assert.Equal(t, http.StatusOK, w.Code, status)
	}

	w := perform(t, "POST", "/x", "/x", `{"status":"Pending"}`, guard)
	assertRejected(t, w, MsgInvalidStatus)

	w = perform(t, "POST", "/x", "/x", `{"title":"no status"}`, guard)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDateFormat(t *testing.T) {
	guard := DateFormat("date")

	w := perform(t, "POST", "/x", "/x", `{"date":"2025-06-15"}`, guard)
	assert.Equal(t, http.StatusOK, w.Code)

	w = perform(t, "POST", "/x", "/x", `{"date":"2025-06-15T10:00:00Z"}`, guard)
	assert.Equal(t, http.StatusOK, w.Code)

	w = perform(t, "POST", "/x", "/x", `{"date":"next friday"}`, guard)
	assertRejected(t, w, "date has invalid format")
}

func TestPagination(t *testing.T) {
	tests := []struct {
		query   string
		message string
	}{
		{"", ""},
		{"page=1&limit=1", ""},
		{"page=3&limit=100", ""},
		{"page=0", MsgInvalidPage},
		{"page=abc", MsgInvalidPage},
		{"limit=0", MsgInvalidLimit},
		{"limit=101", MsgInvalidLimit},
	}

	for _, tt := range tests {
		w := perform(t, "GET", "/x", "/x?"+tt.query, "", Pagination())
		if tt.message == "" {
			assert.Equal(t, http.StatusOK, w.Code, tt.query)
			continue
		}
		assertRejected(t, w, tt.message)
	}
}

func TestAllowedQueryParams(t *testing.T) {
	guard := AllowedQueryParams("status", "page", "limit")

	w := perform(t, "GET", "/x", "/x?status=pending&page=2", "", guard)
	assert.Equal(t, http.StatusOK, w.Code)

	w = perform(t, "GET", "/x", "/x?sort=asc&foo=1&page=1", "", guard)
	assertRejected(t, w, "parameters not allowed: foo, sort; valid: status, page, limit")
}

func TestGuardsShareDecodedBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/x", strings.NewReader(`{"title":" a "}`))

	first, err := Body(c)
	require.NoError(t, err)
	second, err := Body(c)
	require.NoError(t, err)

	first["title"] = "changed"
	assert.Equal(t, "changed", second["title"])

	cached, ok := c.Get(constants.ContextKeyBody)
	assert.True(t, ok)
	assert.NotNil(t, cached)
}

func TestBindBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("POST", "/x", strings.NewReader(`{"name":"  Ana ","age":31}`))

	Sanitize()(c)

	var req struct {
		Name string `json:"name" binding:"required"`
		Age  int    `json:"age"`
	}
	require.NoError(t, BindBody(c, &req))
	assert.Equal(t, "Ana", req.Name)
	assert.Equal(t, 31, req.Age)

	var strict struct {
		Missing string `json:"missing" binding:"required"`
	}
	err := BindBody(c, &strict)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apierrors.StatusCode(err))
}
