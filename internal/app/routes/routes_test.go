package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/axelstam/coursetalk/internal/app/controllers"
	"github.com/axelstam/coursetalk/internal/app/models"
	"github.com/axelstam/coursetalk/internal/app/services"
	"github.com/axelstam/coursetalk/internal/middleware"
	"github.com/axelstam/coursetalk/internal/pkg/auth"
	"github.com/axelstam/coursetalk/internal/testutil"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repos := testutil.NewStore().Repositories()
	for _, c := range []models.Course{
		{CourseCode: "TDDD80", CourseName: "Mobile and Social Applications"},
		{CourseCode: "TDDC73", CourseName: "Interaction Programming"},
		{CourseCode: "TATA24", CourseName: "Linear Algebra"},
	} {
		course := c
		_, err := repos.Courses.Create(context.Background(), &course)
		require.NoError(t, err)
	}

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "coursetalk.test",
	})
	lgr := zerolog.Nop()

	authService := services.NewAuthService(repos.Users, repos.Tokens, jwtService, lgr)
	userService := services.NewUserService(repos.Users, repos.Follows)
	followService := services.NewFollowService(repos.Users, repos.Follows)
	questionService := services.NewQuestionService(repos.Questions, repos.Answers, repos.Courses, lgr)
	courseService := services.NewCourseService(repos.Courses)

	router := gin.New()
	SetupRouter(router,
		controllers.NewAuthController(authService, lgr),
		controllers.NewUserController(userService),
		controllers.NewFollowController(followService),
		controllers.NewQuestionController(questionService),
		controllers.NewCourseController(courseService),
		middleware.NewAuthMiddleware(jwtService, repos.Tokens),
	)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func registerAndLogin(t *testing.T, router *gin.Engine, username string) string {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/users", "", gin.H{
		"username": username,
		"email":    username + "@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodPost, "/login", "", gin.H{
		"email":    username + "@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	token, ok := decodeBody(t, w)["access_token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)
	return token
}

func TestRootGreeting(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Hi there!", w.Body.String())
}

func TestRegister_Conflicts(t *testing.T) {
	router := newTestRouter(t)
	registerAndLogin(t, router, "alice")

	w := doJSON(t, router, http.MethodPost, "/users", "", gin.H{
		"username": "alice",
		"email":    "fresh@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "Username is already taken", decodeBody(t, w)["msg"])

	w = doJSON(t, router, http.MethodPost, "/users", "", gin.H{
		"username": "alice2",
		"email":    "alice@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "Email is already registered", decodeBody(t, w)["msg"])
}

func TestRegister_MissingFields(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/users", "", gin.H{
		"username": "alice",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin_WrongCredentials(t *testing.T) {
	router := newTestRouter(t)
	registerAndLogin(t, router, "alice")

	w := doJSON(t, router, http.MethodPost, "/login", "", gin.H{
		"email":    "nobody@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Wrong email", decodeBody(t, w)["msg"])

	w = doJSON(t, router, http.MethodPost, "/login", "", gin.H{
		"email":    "alice@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Wrong password", decodeBody(t, w)["msg"])
}

func TestAuthRequired(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/questions", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Missing Authorization Header", decodeBody(t, w)["msg"])

	req := httptest.NewRequest(http.MethodGet, "/questions", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid token format", decodeBody(t, rec)["msg"])

	w = doJSON(t, router, http.MethodGet, "/questions", "garbage.token.here", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid token", decodeBody(t, w)["msg"])
}

func TestLogout_InvalidatesToken(t *testing.T) {
	router := newTestRouter(t)
	token := registerAndLogin(t, router, "alice")

	w := doJSON(t, router, http.MethodPost, "/logout", token, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Logout successful", decodeBody(t, w)["msg"])

	w = doJSON(t, router, http.MethodGet, "/questions", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Token has been revoked", decodeBody(t, w)["msg"])
}

func TestRefreshToken_RotatesAndRevokes(t *testing.T) {
	router := newTestRouter(t)
	token := registerAndLogin(t, router, "alice")

	w := doJSON(t, router, http.MethodPost, "/refresh_token", token, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	fresh, ok := decodeBody(t, w)["access_token"].(string)
	require.True(t, ok)
	require.NotEqual(t, token, fresh)

	// Old token is spent, the fresh one works.
	w = doJSON(t, router, http.MethodGet, "/questions", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodGet, "/questions", fresh, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUsers_ListAndLookup(t *testing.T) {
	router := newTestRouter(t)
	aliceToken := registerAndLogin(t, router, "alice")
	registerAndLogin(t, router, "bob")

	w := doJSON(t, router, http.MethodGet, "/users", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	users := decodeBody(t, w)["users"].([]any)
	require.Len(t, users, 1)
	assert.Equal(t, "bob", users[0].(map[string]any)["username"])

	w = doJSON(t, router, http.MethodGet, "/users/current", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice", decodeBody(t, w)["username"])

	w = doJSON(t, router, http.MethodGet, "/users/bob", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "bob", body["username"])
	assert.Equal(t, false, body["is_followed"])

	w = doJSON(t, router, http.MethodGet, "/users/nobody", aliceToken, nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "User does not exist", decodeBody(t, w)["msg"])
}

func TestFollowFlow_FeedVisibility(t *testing.T) {
	router := newTestRouter(t)
	aliceToken := registerAndLogin(t, router, "alice")
	bobToken := registerAndLogin(t, router, "bob")

	// Bob posts into TDDD80.
	w := doJSON(t, router, http.MethodPost, "/questions", bobToken, gin.H{
		"question_title": "Lab 2 deadline?",
		"question_body":  "Is it this friday or next?",
		"course_room":    "TDDD80",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Question successfully added", decodeBody(t, w)["msg"])

	// Alice's feed is empty until she follows bob.
	w = doJSON(t, router, http.MethodGet, "/questions", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeBody(t, w)["questions"])

	w = doJSON(t, router, http.MethodPost, "/followed_users/bob", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Follow successful", decodeBody(t, w)["msg"])

	w = doJSON(t, router, http.MethodGet, "/questions", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	questions := decodeBody(t, w)["questions"].([]any)
	require.Len(t, questions, 1)
	q := questions[0].(map[string]any)
	assert.Equal(t, "Lab 2 deadline?", q["question_title"])
	assert.Equal(t, "bob", q["author"].(map[string]any)["username"])
	assert.Equal(t, "TDDD80", q["course"].(map[string]any)["course_code"])

	// The follow list reflects the edge; unfollow empties the feed again.
	w = doJSON(t, router, http.MethodGet, "/followed_users", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	followed := decodeBody(t, w)["users"].([]any)
	require.Len(t, followed, 1)

	w = doJSON(t, router, http.MethodDelete, "/followed_users/bob", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Unfollow successful", decodeBody(t, w)["msg"])

	w = doJSON(t, router, http.MethodGet, "/questions", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeBody(t, w)["questions"])
}

func TestFollow_UnknownUser(t *testing.T) {
	router := newTestRouter(t)
	token := registerAndLogin(t, router, "alice")

	w := doJSON(t, router, http.MethodPost, "/followed_users/nobody", token, nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "User does not exist", decodeBody(t, w)["msg"])
}

func TestQuestions_UnknownCourse(t *testing.T) {
	router := newTestRouter(t)
	token := registerAndLogin(t, router, "alice")

	w := doJSON(t, router, http.MethodPost, "/questions", token, gin.H{
		"question_title": "Hello?",
		"question_body":  "Anyone here?",
		"course_room":    "TDDE99",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "This course does not exist", decodeBody(t, w)["msg"])
}

func TestLikeUnlike_Counts(t *testing.T) {
	router := newTestRouter(t)
	aliceToken := registerAndLogin(t, router, "alice")
	bobToken := registerAndLogin(t, router, "bob")

	w := doJSON(t, router, http.MethodPost, "/questions", bobToken, gin.H{
		"question_title": "Likeable",
		"question_body":  "Please like this",
		"course_room":    "TDDC73",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/myquestions", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	questions := decodeBody(t, w)["questions"].([]any)
	require.Len(t, questions, 1)
	questionID := int64(questions[0].(map[string]any)["question_id"].(float64))

	w = doJSON(t, router, http.MethodPost, "/liked_questions/1", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Like successful", decodeBody(t, w)["msg"])

	w = doJSON(t, router, http.MethodGet, "/questions/1", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, questionID, int64(body["question_id"].(float64)))
	assert.Equal(t, float64(1), body["likes"])
	assert.Equal(t, true, body["is_liking"])

	// Same question through the author's eyes: liked count, not liking.
	w = doJSON(t, router, http.MethodGet, "/questions/1", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	assert.Equal(t, float64(1), body["likes"])
	assert.Equal(t, false, body["is_liking"])

	w = doJSON(t, router, http.MethodDelete, "/liked_questions/1", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Unlike successful", decodeBody(t, w)["msg"])

	w = doJSON(t, router, http.MethodGet, "/questions/1", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), decodeBody(t, w)["likes"])
}

func TestLike_UnknownQuestion(t *testing.T) {
	router := newTestRouter(t)
	token := registerAndLogin(t, router, "alice")

	w := doJSON(t, router, http.MethodPost, "/liked_questions/999", token, nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "Question does not exist", decodeBody(t, w)["msg"])

	// A non-numeric id can never match a question.
	w = doJSON(t, router, http.MethodPost, "/liked_questions/abc", token, nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "Question does not exist", decodeBody(t, w)["msg"])
}

func TestAnswerFlow(t *testing.T) {
	router := newTestRouter(t)
	aliceToken := registerAndLogin(t, router, "alice")
	bobToken := registerAndLogin(t, router, "bob")

	w := doJSON(t, router, http.MethodPost, "/questions", aliceToken, gin.H{
		"question_title": "Answerable",
		"question_body":  "What is the answer?",
		"course_room":    "TATA24",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPost, "/answer_question/1", bobToken, gin.H{
		"answer_body": "42, obviously",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Question successfully answered", decodeBody(t, w)["msg"])

	w = doJSON(t, router, http.MethodGet, "/answers/1", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	answers := decodeBody(t, w)["answers"].([]any)
	require.Len(t, answers, 1)
	a := answers[0].(map[string]any)
	assert.Equal(t, "42, obviously", a["answer_body"])
	assert.Equal(t, "bob", a["author"].(map[string]any)["username"])

	// The answer count shows up on the question itself.
	w = doJSON(t, router, http.MethodGet, "/questions/1", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decodeBody(t, w)["answers"])

	w = doJSON(t, router, http.MethodPost, "/answer_question/999", bobToken, gin.H{
		"answer_body": "into the void",
	})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "Question does not exist", decodeBody(t, w)["msg"])
}

func TestCourses(t *testing.T) {
	router := newTestRouter(t)
	token := registerAndLogin(t, router, "alice")

	w := doJSON(t, router, http.MethodGet, "/courses", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	courses := decodeBody(t, w)["courses"].([]any)
	require.Len(t, courses, 3)
	assert.Equal(t, "TDDD80", courses[0].(map[string]any)["course_code"])
}
