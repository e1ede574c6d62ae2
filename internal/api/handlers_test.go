package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"example.com/roster/internal/catalog"
	"example.com/roster/internal/domain"
	"example.com/roster/internal/persistence/memory"
)

func newTestServer(t *testing.T, seed []domain.Activity) http.Handler {
	t.Helper()
	repo, err := memory.NewRepository(seed)
	require.NoError(t, err)

	static := fstest.MapFS{
		"index.html": &fstest.MapFile{Data: []byte("<h1>Mergington High School</h1>")},
	}
	mux := http.NewServeMux()
	NewHandler(domain.NewService(repo), static).RegisterRoutes(mux)
	return mux
}

func do(t *testing.T, h http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(method, target, nil))
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	return out
}

func listRoster(t *testing.T, h http.Handler) map[string]ActivityView {
	t.Helper()
	rr := do(t, h, http.MethodGet, "/activities")
	require.Equal(t, http.StatusOK, rr.Code)
	return decode[map[string]ActivityView](t, rr)
}

func TestGetActivities(t *testing.T) {
	h := newTestServer(t, catalog.Default())

	rr := do(t, h, http.MethodGet, "/activities")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	data := decode[map[string]ActivityView](t, rr)
	require.Contains(t, data, "Basketball Team")
	require.Equal(t, "Competitive basketball practice and games", data["Basketball Team"].Description)
}

func TestGetActivitiesStructure(t *testing.T) {
	h := newTestServer(t, catalog.Default())

	rr := do(t, h, http.MethodGet, "/activities")
	var raw map[string]map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &raw))
	require.NotEmpty(t, raw)

	for name, fields := range raw {
		for _, key := range []string{"description", "schedule", "max_participants", "participants"} {
			require.Contains(t, fields, key, "activity %s", name)
		}
		var participants []string
		require.NoError(t, json.Unmarshal(fields["participants"], &participants))
		require.NotNil(t, participants, "participants of %s must be an array", name)
	}
}

func TestGetActivitiesKeepsCatalogOrder(t *testing.T) {
	h := newTestServer(t, []domain.Activity{
		{Name: "Zeta", MaxParticipants: 1},
		{Name: "Alpha", MaxParticipants: 1},
		{Name: "Mid", MaxParticipants: 1},
	})

	rr := do(t, h, http.MethodGet, "/activities")
	body := rr.Body.String()
	zeta := strings.Index(body, `"Zeta"`)
	alpha := strings.Index(body, `"Alpha"`)
	mid := strings.Index(body, `"Mid"`)
	require.True(t, zeta < alpha && alpha < mid, body)
	require.Contains(t, body, `"participants":[]`)
}

func TestSignupForActivitySuccess(t *testing.T) {
	h := newTestServer(t, catalog.Default())

	rr := do(t, h, http.MethodPost, "/activities/Chess%20Club/signup?email=newstudent@mergington.edu")
	require.Equal(t, http.StatusOK, rr.Code)

	resp := decode[MessageResponse](t, rr)
	require.Contains(t, resp.Message, "Signed up")
	require.Contains(t, resp.Message, "newstudent@mergington.edu")
	require.Equal(t, "Signed up newstudent@mergington.edu for Chess Club", resp.Message)
}

func TestSignupForActivityNotFound(t *testing.T) {
	h := newTestServer(t, catalog.Default())

	rr := do(t, h, http.MethodPost, "/activities/NonExistent%20Activity/signup?email=student@mergington.edu")
	require.Equal(t, http.StatusNotFound, rr.Code)
	require.Equal(t, "Activity not found", decode[ErrorResponse](t, rr).Detail)
}

func TestSignupDuplicateStudent(t *testing.T) {
	h := newTestServer(t, catalog.Default())

	first := do(t, h, http.MethodPost, "/activities/Basketball%20Team/signup?email=duplicate@mergington.edu")
	require.Equal(t, http.StatusOK, first.Code)

	second := do(t, h, http.MethodPost, "/activities/Basketball%20Team/signup?email=duplicate@mergington.edu")
	require.Equal(t, http.StatusBadRequest, second.Code)
	require.Contains(t, decode[ErrorResponse](t, second).Detail, "already signed up")

	roster := listRoster(t, h)["Basketball Team"].Participants
	count := 0
	for _, email := range roster {
		if email == "duplicate@mergington.edu" {
			count++
		}
	}
	require.Equal(t, 1, count)
}

func TestUnregisterSuccess(t *testing.T) {
	h := newTestServer(t, catalog.Default())

	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/activities/Tennis%20Club/signup?email=unregister@mergington.edu").Code)

	rr := do(t, h, http.MethodDelete, "/activities/Tennis%20Club/signup?email=unregister@mergington.edu")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "Unregistered unregister@mergington.edu from Tennis Club", decode[MessageResponse](t, rr).Message)
}

func TestUnregisterNotRegistered(t *testing.T) {
	h := newTestServer(t, catalog.Default())

	rr := do(t, h, http.MethodDelete, "/activities/Drama%20Club/signup?email=notregistered@mergington.edu")
	require.Equal(t, http.StatusNotFound, rr.Code)
	require.Contains(t, decode[ErrorResponse](t, rr).Detail, "not registered")
}

func TestUnregisterActivityNotFound(t *testing.T) {
	h := newTestServer(t, catalog.Default())

	rr := do(t, h, http.MethodDelete, "/activities/NonExistent/signup?email=student@mergington.edu")
	require.Equal(t, http.StatusNotFound, rr.Code)
	require.Equal(t, "Activity not found", decode[ErrorResponse](t, rr).Detail)
}

func TestParticipantsListUpdates(t *testing.T) {
	h := newTestServer(t, catalog.Default())
	initial := len(listRoster(t, h)["Art Studio"].Participants)

	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/activities/Art%20Studio/signup?email=newart@mergington.edu").Code)

	after := listRoster(t, h)["Art Studio"].Participants
	require.Len(t, after, initial+1)
	require.Contains(t, after, "newart@mergington.edu")
}

func TestParticipantsListUpdatesOnUnregister(t *testing.T) {
	h := newTestServer(t, catalog.Default())
	do(t, h, http.MethodPost, "/activities/Robotics%20Club/signup?email=robot@mergington.edu")
	withSignup := len(listRoster(t, h)["Robotics Club"].Participants)

	do(t, h, http.MethodDelete, "/activities/Robotics%20Club/signup?email=robot@mergington.edu")

	after := listRoster(t, h)["Robotics Club"].Participants
	require.Len(t, after, withSignup-1)
	require.NotContains(t, after, "robot@mergington.edu")
}

func TestSignupDecodesActivityName(t *testing.T) {
	h := newTestServer(t, []domain.Activity{{Name: "Arts/Crafts & More", MaxParticipants: 5}})

	rr := do(t, h, http.MethodPost, "/activities/Arts%2FCrafts%20%26%20More/signup?email=a%2Bb@mergington.edu")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	require.Equal(t, "Signed up a+b@mergington.edu for Arts/Crafts & More", decode[MessageResponse](t, rr).Message)
}

func TestSignupRequiresEmailParameter(t *testing.T) {
	h := newTestServer(t, catalog.Default())

	rr := do(t, h, http.MethodPost, "/activities/Chess%20Club/signup")
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	rr = do(t, h, http.MethodDelete, "/activities/Chess%20Club/signup")
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestUnsupportedMethod(t *testing.T) {
	h := newTestServer(t, catalog.Default())

	rr := do(t, h, http.MethodPut, "/activities/Chess%20Club/signup?email=a@mergington.edu")
	require.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestRootRedirectsToStaticIndex(t *testing.T) {
	h := newTestServer(t, catalog.Default())

	rr := do(t, h, http.MethodGet, "/")
	require.Equal(t, http.StatusTemporaryRedirect, rr.Code)
	require.Equal(t, "/static/index.html", rr.Header().Get("Location"))

	rr = do(t, h, http.MethodGet, "/static/index.html")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), "Mergington High School")
}

func TestHealthz(t *testing.T) {
	h := newTestServer(t, catalog.Default())

	rr := do(t, h, http.MethodGet, "/healthz")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "ok", rr.Body.String())
}
