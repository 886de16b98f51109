package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sticky/internal/app/client/resource"
	"sticky/internal/app/client/screen"
	"sticky/internal/domain/user"
	"sticky/internal/testutil/backend"
)

type recordingNavigator struct {
	mu     sync.Mutex
	routes []string
}

func (n *recordingNavigator) Navigate(route string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.routes = append(n.routes, route)
}

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordingNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, msg)
}

func (n *recordingNotifier) Failure(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, msg)
}

func newTestApp(t *testing.T, srv *backend.Server, storage Storage) *App {
	t.Helper()

	app, err := New(testConfig(srv.URL()+"/"), testLogger(), WithStorage(storage))
	require.NoError(t, err)
	return app
}

func TestApp_LoginPersistsSession(t *testing.T) {
	srv := backend.New(t)
	srv.AddUser(user.User{FirstName: "Ada", Email: "a@b.com", Password: "secret1"})
	storage := NewMemoryStorage()

	app := newTestApp(t, srv, storage)
	nav := &recordingNavigator{}
	notifier := &recordingNotifier{}

	login := screen.NewLogin(app.ScreenDeps(nav, notifier))
	login.SetEmail("a@b.com")
	login.SetPassword("secret1")
	require.NoError(t, login.Submit(context.Background()))

	assert.Equal(t, []string{screen.RouteNotes}, nav.routes)
	assert.Equal(t, []string{screen.MsgLoginSuccess}, notifier.messages)

	state, ok, err := storage.LoadSession()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "a@b.com", state.Email)
	app.Shutdown()

	// следующий запуск поднимает сессию из хранилища
	restarted := newTestApp(t, srv, storage)
	defer restarted.Shutdown()

	email, ok := restarted.Email()
	assert.True(t, ok)
	assert.Equal(t, "a@b.com", email)
}

func TestApp_SessionForOtherAPIIsIgnored(t *testing.T) {
	srv := backend.New(t)
	storage := NewMemoryStorage()
	require.NoError(t, storage.SaveSession(SessionState{Email: "a@b.com", APIBaseURL: "https://other.example/"}))

	app := newTestApp(t, srv, storage)
	defer app.Shutdown()

	_, ok := app.Email()
	assert.False(t, ok)
}

func TestApp_NotesFlowAgainstBackend(t *testing.T) {
	srv := backend.New(t)
	app := newTestApp(t, srv, NewMemoryStorage())
	defer app.Shutdown()
	ctx := context.Background()

	nav := &recordingNavigator{}
	notifier := &recordingNotifier{}
	deps := app.ScreenDeps(nav, notifier)

	signup := screen.NewSignup(deps)
	signup.SetFirstName("Ada")
	signup.SetLastName("Lovelace")
	signup.SetEmail("a@b.com")
	signup.SetPassword("secret1")
	_, err := signup.Submit(ctx)
	require.NoError(t, err)

	notes := screen.NewNotes(deps)
	defer notes.Close()
	require.NoError(t, notes.Load(ctx))
	assert.Empty(t, notes.View().Notes)

	notes.SetHeading("Купить")
	notes.SetDescription("молоко")
	created, err := notes.Create(ctx)
	require.NoError(t, err)

	view := notes.View()
	require.Len(t, view.Notes, 1)
	assert.Equal(t, created.ID, view.Notes[0].ID)
	assert.Equal(t, "a@b.com", view.Notes[0].Email)

	require.NoError(t, notes.Delete(ctx, created.ID))
	assert.Empty(t, notes.View().Notes)
	assert.Equal(t, 3, srv.Calls(http.MethodGet, "/notes"))
}

func TestApp_NoteFailureNotifiesBackendMessage(t *testing.T) {
	srv := backend.New(t)
	srv.Fail(http.MethodPost, "/notes", http.StatusServiceUnavailable, "maintenance")
	app := newTestApp(t, srv, NewMemoryStorage())
	defer app.Shutdown()

	app.Session().SetEmail("a@b.com")
	notifier := &recordingNotifier{}

	notes := screen.NewNotes(app.ScreenDeps(&recordingNavigator{}, notifier))
	defer notes.Close()

	notes.SetHeading("h")
	notes.SetDescription("d")
	_, err := notes.Create(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
	assert.Equal(t, []string{"Error: maintenance"}, notifier.messages)
}

func TestApp_CheckConnection(t *testing.T) {
	srv := backend.New(t)
	app := newTestApp(t, srv, NewMemoryStorage())
	defer app.Shutdown()

	require.NoError(t, app.CheckConnection(context.Background()))

	srv.Close()
	assert.ErrorIs(t, app.CheckConnection(context.Background()), ErrUnavailable)
}

func TestApp_MetricsHandler(t *testing.T) {
	srv := backend.New(t)
	app := newTestApp(t, srv, NewMemoryStorage())
	defer app.Shutdown()

	app.Users().List.Query(context.Background(), resource.None{})

	rec := httptest.NewRecorder()
	app.MetricsHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `sticky_cache_misses_total{endpoint="getUsers"} 1`)
	assert.Contains(t, string(body), `sticky_http_requests_total{method="GET",route="/users",status_code="200"} 1`)
}

func TestApp_StartMetricsWithoutAddr(t *testing.T) {
	srv := backend.New(t)
	app := newTestApp(t, srv, NewMemoryStorage())

	require.NoError(t, app.StartMetrics(context.Background(), ""))
	app.Shutdown()
}
