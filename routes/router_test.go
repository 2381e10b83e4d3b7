package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"submitserver/auth"
	"submitserver/handlers"
	"submitserver/internal/memstore"
	"submitserver/middlewares"
	"submitserver/models"

	"github.com/bmizerany/assert"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var testNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type fakeProvider struct {
	identity auth.Identity
	member   bool
}

func (p *fakeProvider) AuthCodeURL(state string) string {
	return "https://discord.test/oauth2/authorize?state=" + state
}

func (p *fakeProvider) Exchange(ctx context.Context, code string) (auth.Identity, error) {
	return p.identity, nil
}

func (p *fakeProvider) IsMember(ctx context.Context, providerID string) (bool, error) {
	return p.member, nil
}

type harness struct {
	env      *handlers.Env
	router   *gin.Engine
	store    *memstore.Store
	sessions *memstore.Sessions
	tokens   *auth.Tokens
	provider *fakeProvider
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := &harness{
		store:    memstore.New(),
		sessions: memstore.NewSessions(time.Hour),
		tokens:   auth.NewTokens("test-secret", time.Hour),
		provider: &fakeProvider{identity: auth.Identity{ProviderID: "1234", Name: "runner"}, member: true},
	}
	h.env = &handlers.Env{
		Store:    h.store,
		Sessions: h.sessions,
		Tokens:   h.tokens,
		Provider: h.provider,
		Logger:   zap.NewNop(),
		Location: time.UTC,
		Now:      func() time.Time { return testNow },
	}
	h.router = SetupRouter(h.env, h.tokens, nil)
	return h
}

// login はユーザーを登録し、そのユーザーのトークンを返します。
func (h *harness) login(t *testing.T, u models.User) (models.User, string) {
	t.Helper()
	u = h.store.PutUser(u)
	session, err := h.sessions.Create(context.Background(), u.ID)
	assert.Equal(t, nil, err)
	token, err := h.tokens.Generate(session)
	assert.Equal(t, nil, err)
	return u, token
}

func (h *harness) event(t *testing.T, mutate func(*models.Event)) models.Event {
	t.Helper()
	e := models.Event{
		EventName:                  "Spring Jam",
		SubmissionWindowStart:      testNow.Add(-24 * time.Hour),
		SubmissionWindowEnd:        testNow.Add(24 * time.Hour),
		EventStart:                 time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		EventDurationDays:          3,
		DayStartHour:               9,
		DayEndHour:                 24,
		Visible:                    true,
		MaxSubmissionsPerUser:      2,
		MaxCategoriesPerSubmission: 2,
		Genres:                     []string{"Action", "Puzzle"},
	}
	if mutate != nil {
		mutate(&e)
	}
	assert.Equal(t, nil, h.store.SaveEvent(context.Background(), &e))
	return e
}

func (h *harness) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func message(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	assert.Equal(t, nil, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Message
}

func category(name string) models.CategoryRequest {
	return models.CategoryRequest{
		CategoryName: name,
		VideoURL:     "https://example.com/run",
		Estimate:     "25:00",
		Description:  "All bosses",
	}
}

func submission(categories ...models.CategoryRequest) models.SubmissionRequest {
	return models.SubmissionRequest{
		GameTitle:    "Celeste",
		Platform:     "PC",
		PrimaryGenre: "Action",
		Description:  "Climb the mountain",
		Categories:   categories,
	}
}

func TestHealthz(t *testing.T) {
	h := newHarness(t)
	w := h.do(http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListEventsHidesHiddenEvents(t *testing.T) {
	h := newHarness(t)
	h.event(t, nil)
	h.event(t, func(e *models.Event) {
		e.Visible = false
		e.EventName = "Secret"
	})
	_, member := h.login(t, models.User{Name: "member"})
	_, admin := h.login(t, models.User{Name: "admin", IsAdmin: true})

	count := func(token, query string) int {
		w := h.do(http.MethodGet, "/events"+query, token, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		var events []handlers.EventView
		assert.Equal(t, nil, json.Unmarshal(w.Body.Bytes(), &events))
		return len(events)
	}

	assert.Equal(t, 1, count("", ""))
	assert.Equal(t, 1, count(member, "?includeHidden=true"))
	assert.Equal(t, 1, count(admin, ""))
	assert.Equal(t, 2, count(admin, "?includeHidden=true"))
}

func TestListEventsReportsPhase(t *testing.T) {
	h := newHarness(t)
	h.event(t, nil)

	w := h.do(http.MethodGet, "/events", "", nil)
	var events []handlers.EventView
	assert.Equal(t, nil, json.Unmarshal(w.Body.Bytes(), &events))
	assert.Equal(t, "open", events[0].Phase.String())
	assert.Equal(t, "Submissions close 1 day from now", events[0].Status)
}

func TestHiddenEventLooksMissing(t *testing.T) {
	h := newHarness(t)
	hidden := h.event(t, func(e *models.Event) { e.Visible = false })
	_, admin := h.login(t, models.User{Name: "admin", IsAdmin: true})

	w := h.do(http.MethodGet, "/events/"+itoa(hidden.ID), "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "This event does not exist.", message(t, w))

	w = h.do(http.MethodGet, "/events/"+itoa(hidden.ID), admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateEventRequiresAdmin(t *testing.T) {
	h := newHarness(t)
	_, member := h.login(t, models.User{Name: "member"})
	_, admin := h.login(t, models.User{Name: "admin", IsAdmin: true})
	req := models.NewEventRequest(testNow)
	req.Genres = []string{"Action"}

	w := h.do(http.MethodPost, "/events", "", req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, middlewares.MsgNotLoggedIn, message(t, w))

	w = h.do(http.MethodPost, "/events", member, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, middlewares.MsgNotAdmin, message(t, w))

	w = h.do(http.MethodPost, "/events", admin, req)
	assert.Equal(t, http.StatusOK, w.Code)
	var saved handlers.EventView
	assert.Equal(t, nil, json.Unmarshal(w.Body.Bytes(), &saved))
	assert.NotEqual(t, uint(0), saved.ID)
	assert.Equal(t, "New Event", saved.EventName)
}

func TestCreateEventValidation(t *testing.T) {
	h := newHarness(t)
	_, admin := h.login(t, models.User{Name: "admin", IsAdmin: true})

	w := h.do(http.MethodPost, "/events", admin, models.NewEventRequest(testNow))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "At least one genre must be specified", message(t, w))
}

func TestDeleteEventCascades(t *testing.T) {
	h := newHarness(t)
	event := h.event(t, nil)
	_, admin := h.login(t, models.User{Name: "admin", IsAdmin: true})
	_, runner := h.login(t, models.User{Name: "runner"})

	w := h.do(http.MethodPost, "/submissions/"+itoa(event.ID), runner, submission(category("Any%")))
	assert.Equal(t, http.StatusOK, w.Code)

	w = h.do(http.MethodDelete, "/events/"+itoa(event.ID), admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	remaining, err := h.store.ListSubmissions(context.Background(), event.ID)
	assert.Equal(t, nil, err)
	assert.Equal(t, 0, len(remaining))

	w = h.do(http.MethodDelete, "/events/"+itoa(event.ID), admin, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitRequiresLogin(t *testing.T) {
	h := newHarness(t)
	event := h.event(t, nil)

	w := h.do(http.MethodPost, "/submissions/"+itoa(event.ID), "", submission(category("Any%")))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = h.do(http.MethodPost, "/submissions/"+itoa(event.ID), "not-a-token", submission(category("Any%")))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSubmitToMissingEvent(t *testing.T) {
	h := newHarness(t)
	_, runner := h.login(t, models.User{Name: "runner"})

	w := h.do(http.MethodPost, "/submissions/999", runner, submission(category("Any%")))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "This event does not exist.", message(t, w))
}

func TestSubmitOutsideWindow(t *testing.T) {
	h := newHarness(t)
	closed := h.event(t, func(e *models.Event) {
		e.SubmissionWindowStart = testNow.Add(-48 * time.Hour)
		e.SubmissionWindowEnd = testNow.Add(-24 * time.Hour)
	})
	upcoming := h.event(t, func(e *models.Event) {
		e.SubmissionWindowStart = testNow.Add(time.Hour)
		e.SubmissionWindowEnd = testNow.Add(48 * time.Hour)
	})
	_, runner := h.login(t, models.User{Name: "runner"})

	for _, e := range []models.Event{closed, upcoming} {
		w := h.do(http.MethodPost, "/submissions/"+itoa(e.ID), runner, submission(category("Any%")))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Submissions are not open for this event.", message(t, w))
	}
}

func TestSubmissionLimit(t *testing.T) {
	h := newHarness(t)
	event := h.event(t, func(e *models.Event) { e.MaxSubmissionsPerUser = 1 })
	_, runner := h.login(t, models.User{Name: "runner"})
	path := "/submissions/" + itoa(event.ID)

	w := h.do(http.MethodPost, path, runner, submission(category("Any%")))
	assert.Equal(t, http.StatusOK, w.Code)
	var saved models.GameSubmission
	assert.Equal(t, nil, json.Unmarshal(w.Body.Bytes(), &saved))

	w = h.do(http.MethodPost, path, runner, submission(category("100%")))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "You cannot submit more than 1 submission to this event.", message(t, w))

	// 既存の提出の更新は件数に含めない
	update := submission(category("Any%"), category("100%"))
	update.ID = &saved.ID
	w = h.do(http.MethodPost, path, runner, update)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, nil, json.Unmarshal(w.Body.Bytes(), &saved))
	assert.Equal(t, 2, len(saved.Categories))
	assert.Equal(t, "100%", saved.Categories[1].CategoryName)
}

func TestCategoryLimits(t *testing.T) {
	h := newHarness(t)
	event := h.event(t, nil)
	_, runner := h.login(t, models.User{Name: "runner"})
	path := "/submissions/" + itoa(event.ID)

	w := h.do(http.MethodPost, path, runner, submission(category("a"), category("b"), category("c")))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "You cannot submit more than 2 categories to this event.", message(t, w))

	w = h.do(http.MethodPost, path, runner, submission())
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "You must submit at least one category.", message(t, w))
}

func TestUpdateCannotGrowPastCategoryLimit(t *testing.T) {
	h := newHarness(t)
	event := h.event(t, nil)
	_, runner := h.login(t, models.User{Name: "runner"})
	path := "/submissions/" + itoa(event.ID)
	ctx := context.Background()

	w := h.do(http.MethodPost, path, runner, submission(category("a"), category("b")))
	assert.Equal(t, http.StatusOK, w.Code)
	var saved models.GameSubmission
	assert.Equal(t, nil, json.Unmarshal(w.Body.Bytes(), &saved))

	// 提出後に上限を下げても既存の件数までは更新できる
	event.MaxCategoriesPerSubmission = 1
	assert.Equal(t, nil, h.store.SaveEvent(ctx, &event))

	keep := submission(category("a"), category("b2"))
	keep.ID = &saved.ID
	w = h.do(http.MethodPost, path, runner, keep)
	assert.Equal(t, http.StatusOK, w.Code)

	grow := submission(category("a"), category("b2"), category("c"))
	grow.ID = &saved.ID
	w = h.do(http.MethodPost, path, runner, grow)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "You cannot submit more than 2 categories to this event.", message(t, w))

	stored, err := h.store.GetSubmission(ctx, saved.ID)
	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(stored.Categories))
	assert.Equal(t, "b2", stored.Categories[1].CategoryName)
}

func TestSubmissionValidationMessage(t *testing.T) {
	h := newHarness(t)
	event := h.event(t, nil)
	_, runner := h.login(t, models.User{Name: "runner"})
	path := "/submissions/" + itoa(event.ID)

	bad := category("Any%")
	bad.Estimate = "twenty minutes"
	w := h.do(http.MethodPost, path, runner, submission(bad))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Estimate must be in the format MM:SS, H:MM:SS, or HH:MM:SS", message(t, w))

	wrongGenre := submission(category("Any%"))
	wrongGenre.PrimaryGenre = "Racing"
	w = h.do(http.MethodPost, path, runner, wrongGenre)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Genre must be one of this event's genres.", message(t, w))
}

func TestSubmissionOwnership(t *testing.T) {
	h := newHarness(t)
	event := h.event(t, nil)
	_, owner := h.login(t, models.User{Name: "owner"})
	_, other := h.login(t, models.User{Name: "other"})
	path := "/submissions/" + itoa(event.ID)

	w := h.do(http.MethodPost, path, owner, submission(category("Any%")))
	assert.Equal(t, http.StatusOK, w.Code)
	var saved models.GameSubmission
	assert.Equal(t, nil, json.Unmarshal(w.Body.Bytes(), &saved))

	hijack := submission(category("Any%"))
	hijack.ID = &saved.ID
	w = h.do(http.MethodPost, path, other, hijack)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "You do not have access to this submission.", message(t, w))

	w = h.do(http.MethodDelete, "/submissions/"+itoa(saved.ID), other, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = h.do(http.MethodDelete, "/submissions/"+itoa(saved.ID), owner, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = h.do(http.MethodDelete, "/submissions/"+itoa(saved.ID), owner, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "This submission no longer exists; please refresh the page and try again.", message(t, w))
}

func TestPublicEventListsOnlySharedSubmissions(t *testing.T) {
	h := newHarness(t)
	event := h.event(t, nil)
	pronouns := "they/them"
	_, shared := h.login(t, models.User{Name: "shared", Pronouns: &pronouns, ShowPronouns: true, ShowSubmissions: true})
	_, private := h.login(t, models.User{Name: "private", ShowSubmissions: false})
	path := "/submissions/" + itoa(event.ID)

	assert.Equal(t, http.StatusOK, h.do(http.MethodPost, path, shared, submission(category("Any%"))).Code)
	assert.Equal(t, http.StatusOK, h.do(http.MethodPost, path, private, submission(category("Any%"))).Code)

	w := h.do(http.MethodGet, "/events/"+itoa(event.ID), "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Submissions []handlers.PublicSubmission `json:"submissions"`
	}
	assert.Equal(t, nil, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, 1, len(page.Submissions))
	assert.Equal(t, "shared", page.Submissions[0].Runner)
	assert.Equal(t, "they/them", *page.Submissions[0].Pronouns)
	assert.T(t, !strings.Contains(w.Body.String(), "email"))
}

func TestAvailability(t *testing.T) {
	h := newHarness(t)
	event := h.event(t, nil)
	_, runner := h.login(t, models.User{Name: "runner"})
	path := "/events/" + itoa(event.ID) + "/availability"

	outside := models.AvailabilityRequest{Slots: []time.Time{time.Date(2024, 4, 1, 3, 0, 0, 0, time.UTC)}}
	w := h.do(http.MethodPost, path, runner, outside)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Availability must fall within the event's schedule.", message(t, w))

	inside := models.AvailabilityRequest{Slots: []time.Time{
		time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC),
	}}
	w = h.do(http.MethodPost, path, runner, inside)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Availability updated.", message(t, w))

	w = h.do(http.MethodGet, "/events/"+itoa(event.ID)+"/mine", runner, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Editable     bool                     `json:"editable"`
		Availability models.EventAvailability `json:"availability"`
		Schedule     []time.Time              `json:"schedule"`
	}
	assert.Equal(t, nil, json.Unmarshal(w.Body.Bytes(), &page))
	assert.T(t, page.Editable)
	assert.Equal(t, 2, len(page.Availability.Slots))
	assert.Equal(t, 3*16, len(page.Schedule))
}

func TestAvailabilityIncludesEndHour(t *testing.T) {
	h := newHarness(t)
	event := h.event(t, func(e *models.Event) { e.DayEndHour = 17 })
	_, runner := h.login(t, models.User{Name: "runner"})
	path := "/events/" + itoa(event.ID) + "/availability"

	last := models.AvailabilityRequest{Slots: []time.Time{time.Date(2024, 4, 3, 17, 0, 0, 0, time.UTC)}}
	w := h.do(http.MethodPost, path, runner, last)
	assert.Equal(t, http.StatusOK, w.Code)

	after := models.AvailabilityRequest{Slots: []time.Time{time.Date(2024, 4, 3, 18, 0, 0, 0, time.UTC)}}
	w = h.do(http.MethodPost, path, runner, after)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Availability must fall within the event's schedule.", message(t, w))
}

func TestMyEventPageCreatesEmptyAvailability(t *testing.T) {
	h := newHarness(t)
	event := h.event(t, func(e *models.Event) { e.SubmissionWindowEnd = testNow.Add(-time.Hour) })
	user, runner := h.login(t, models.User{Name: "runner"})

	w := h.do(http.MethodGet, "/events/"+itoa(event.ID)+"/mine", runner, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Editable bool        `json:"editable"`
		Schedule []time.Time `json:"schedule"`
	}
	assert.Equal(t, nil, json.Unmarshal(w.Body.Bytes(), &page))
	assert.T(t, !page.Editable)
	assert.Equal(t, 0, len(page.Schedule))

	records, err := h.store.ListAvailability(context.Background(), event.ID)
	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(records))
	assert.Equal(t, user.ID, records[0].UserID)
	assert.Equal(t, 0, len(records[0].Slots))
}

func TestDownloadRequiresAdmin(t *testing.T) {
	h := newHarness(t)
	event := h.event(t, nil)
	_, member := h.login(t, models.User{Name: "member"})
	path := "/events/" + itoa(event.ID) + "/download"

	w := h.do(http.MethodGet, path, "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, middlewares.MsgNotLoggedIn, message(t, w))

	w = h.do(http.MethodGet, path, member, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, middlewares.MsgNotAdmin, message(t, w))
}

func TestDownloadCSV(t *testing.T) {
	h := newHarness(t)
	event := h.event(t, nil)
	_, admin := h.login(t, models.User{Name: "admin", IsAdmin: true})
	runner := h.store.PutUser(models.User{Name: "runner"})

	// 検証が厳しくなる前に保存された見積もり時間も揃えて出力する
	legacy := models.GameSubmission{UserID: runner.ID, EventID: event.ID}
	legacy.Apply(submission(category("Any%"), category("100%")))
	legacy.Categories[0].Estimate = "5:30"
	assert.Equal(t, nil, h.store.SaveSubmission(context.Background(), &legacy))

	w := h.do(http.MethodGet, "/events/"+itoa(event.ID)+"/download", admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Spring Jam.csv"`, w.Header().Get("Content-Disposition"))

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	assert.Equal(t, 3, len(lines))
	assert.T(t, strings.HasPrefix(lines[0], "Runner,"))
	assert.T(t, strings.Contains(lines[1], ",05:30,"))

	w = h.do(http.MethodGet, "/events/"+itoa(event.ID)+"/download?layout=wide", admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	lines = strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	assert.Equal(t, 2, len(lines))

	w = h.do(http.MethodGet, "/events/"+itoa(event.ID)+"/download?layout=sideways", admin, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateProfileIgnoresUnlistedFields(t *testing.T) {
	h := newHarness(t)
	user, token := h.login(t, models.User{Name: "runner"})

	w := h.do(http.MethodPost, "/user/update", token, map[string]any{
		"displayName":     "Speedy",
		"email":           "",
		"pronouns":        "she/her",
		"showPronouns":    true,
		"showSubmissions": true,
		"isAdmin":         true,
		"name":            "hijacked",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	var res handlers.ProfileResponse
	assert.Equal(t, nil, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "Account updated.", res.Message)
	assert.Equal(t, "Speedy", *res.User.DisplayName)
	assert.T(t, res.User.Email == nil)
	assert.T(t, !res.User.IsAdmin)
	assert.Equal(t, "runner", res.User.Name)

	stored, err := h.store.GetUser(context.Background(), user.ID)
	assert.Equal(t, nil, err)
	assert.T(t, !stored.IsAdmin)

	w = h.do(http.MethodPost, "/user/update", token, map[string]any{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Please enter a valid email.", message(t, w))
}

func TestCallbackNonMemberRedirect(t *testing.T) {
	h := newHarness(t)
	h.provider.member = false
	h.env.FrontendURL = "https://front.test"

	req := httptest.NewRequest(http.MethodGet, "/auth/callback?state=abc&code=xyz", nil)
	req.AddCookie(&http.Cookie{Name: "oauth_state", Value: "abc"})
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://front.test/nonmember", w.Header().Get("Location"))
}

func TestCallbackRejectsStateMismatch(t *testing.T) {
	h := newHarness(t)

	req := httptest.NewRequest(http.MethodGet, "/auth/callback?state=abc&code=xyz", nil)
	req.AddCookie(&http.Cookie{Name: "oauth_state", Value: "other"})
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginCallbackLogout(t *testing.T) {
	h := newHarness(t)

	w := h.do(http.MethodGet, "/auth/login", "", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	var state string
	for _, c := range w.Result().Cookies() {
		if c.Name == "oauth_state" {
			state = c.Value
		}
	}
	assert.NotEqual(t, "", state)
	assert.T(t, strings.HasSuffix(w.Header().Get("Location"), "state="+state))

	req := httptest.NewRequest(http.MethodGet, "/auth/callback?state="+state+"&code=xyz", nil)
	req.AddCookie(&http.Cookie{Name: "oauth_state", Value: state})
	w = httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var res struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	assert.Equal(t, nil, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "runner", res.User.Name)

	w = h.do(http.MethodGet, "/user", res.Token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = h.do(http.MethodPost, "/auth/logout", res.Token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = h.do(http.MethodGet, "/user", res.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
