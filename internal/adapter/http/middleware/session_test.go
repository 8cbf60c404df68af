package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"tasktime/internal/core/domain"
	"tasktime/pkg/translator"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	translator.InitTranslator(translator.Config{
		TranslationFolder:  "../../../../pkg/translator/translation",
		SupportedLanguages: []string{translator.LanguageFr, translator.LanguageEn},
	})
	os.Exit(m.Run())
}

func serveSession(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, domain.Session, bool) {
	t.Helper()

	var (
		got   domain.Session
		found bool
	)
	router := gin.New()
	router.GET("/tasks", SessionMiddleware(), func(c *gin.Context) {
		got, found = GetSession(c)
		c.Status(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec, got, found
}

func TestSessionMiddleware_ReadsHeadersAndQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/tasks?status=logged,running", nil)
	req.Header.Set(HeaderAccountID, "12")
	req.Header.Set(HeaderUserID, "4")
	req.Header.Set(HeaderStatusFilter, "paid")

	rec, session, found := serveSession(t, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.True(t, found)
	require.Equal(t, domain.Session{
		AccountID:    12,
		UserID:       4,
		StatusFilter: domain.StatusSet{domain.TaskStatusLogged, domain.TaskStatusRunning},
	}, session)
}

func TestSessionMiddleware_EmptyStatusQueryClearsFilter(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/tasks?status=", nil)
	req.Header.Set(HeaderAccountID, "12")
	req.Header.Set(HeaderStatusFilter, "paid")

	_, session, found := serveSession(t, req)

	require.True(t, found)
	require.Empty(t, session.StatusFilter)
}

func TestSessionMiddleware_RejectsMissingAccount(t *testing.T) {
	for _, value := range []string{"", "0", "abc"} {
		req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
		req.Header.Set(HeaderAccountID, value)

		rec, _, found := serveSession(t, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.False(t, found)
	}
}
