package gateway_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jrsteele09/restaurant-console/catalog"
	"github.com/jrsteele09/restaurant-console/gateway"
	"github.com/jrsteele09/restaurant-console/gateway/gatewayfake"
	"github.com/jrsteele09/restaurant-console/internal/errors"
	"github.com/jrsteele09/restaurant-console/roles"
	"github.com/jrsteele09/restaurant-console/sessions"
	"github.com/stretchr/testify/require"
)

type testFixture struct {
	backend *gatewayfake.Backend
	server  *httptest.Server
	client  *gateway.Client
	ctx     context.Context
}

// setupTestFixture starts a fake backend and logs a sub-admin in against it
func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	backend := gatewayfake.New()
	backend.AddUser(gatewayfake.User{ID: 5, Email: "sub@example.com", Password: "pw", Role: "subadmin"})
	backend.AddCollection("plans", false)
	backend.AddCollection("tables", true)

	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	client, err := gateway.New(srv.URL+"/api", time.Second)
	require.NoError(t, err)

	var login struct {
		Access string `json:"access"`
	}
	require.NoError(t, client.Post(context.Background(), "auth/login/", map[string]string{"email": "sub@example.com", "password": "pw"}, &login))

	ctx := sessions.WithSession(context.Background(), sessions.Session{
		ID: "s", Role: roles.SubAdmin, Token: login.Access, SubjectID: "5",
	})
	return &testFixture{backend: backend, server: srv, client: client, ctx: ctx}
}

func seedPlans(f *testFixture, n int) {
	for i := 0; i < n; i++ {
		f.backend.Seed("plans", map[string]any{"name": "plan", "price": 10.0, "duration_days": 30})
	}
}

func TestNew_InvalidBaseURL(t *testing.T) {
	_, err := gateway.New("not a url", time.Second)
	require.Error(t, err)
}

func TestClient_AttachesBearerToken(t *testing.T) {
	f := setupTestFixture(t)
	plans := gateway.NewCollection[catalog.Plan](f.client, "plans/")

	_, _, err := plans.List(f.ctx, 1, 10)
	require.NoError(t, err)

	reqs := f.backend.Requests()
	last := reqs[len(reqs)-1]
	require.Equal(t, "/api/plans/", last.Path)
	require.Contains(t, last.Auth, "Bearer access-")
}

func TestClient_NoSessionIsUnauthenticated(t *testing.T) {
	f := setupTestFixture(t)
	plans := gateway.NewCollection[catalog.Plan](f.client, "plans/")

	_, _, err := plans.List(context.Background(), 1, 10)
	require.ErrorIs(t, err, errors.ErrUnauthenticated)

	var statusErr *gateway.StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
	require.Equal(t, "Authentication credentials were not provided.", statusErr.Message())
}

func TestCollection_ListEnvelope(t *testing.T) {
	f := setupTestFixture(t)
	seedPlans(f, 25)
	plans := gateway.NewCollection[catalog.Plan](f.client, "plans/")

	items, total, err := plans.List(f.ctx, 3, 10)
	require.NoError(t, err)
	require.Equal(t, 25, total)
	require.Len(t, items, 5)
	require.Equal(t, catalog.ID("21"), items[0].ID)
}

func TestCollection_ListBareArray(t *testing.T) {
	f := setupTestFixture(t)
	for i := 0; i < 12; i++ {
		f.backend.Seed("tables", map[string]any{"number": "T", "capacity": 4})
	}
	tables := gateway.NewCollection[catalog.Table](f.client, "tables/")

	items, total, err := tables.List(f.ctx, 2, 10)
	require.NoError(t, err)
	require.Equal(t, 12, total)
	require.Len(t, items, 2)
}

func TestCollection_CRUD(t *testing.T) {
	f := setupTestFixture(t)
	plans := gateway.NewCollection[catalog.Plan](f.client, "plans/")

	require.NoError(t, plans.Create(f.ctx, map[string]any{"name": "Gold", "price": 20.0, "duration_days": 30}))
	ids := f.backend.IDs("plans")
	require.Len(t, ids, 1)

	id := catalog.ID("1")
	fields, err := plans.Fields(f.ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Gold", fields["name"])

	require.NoError(t, plans.Update(f.ctx, id, map[string]any{"name": "Platinum", "price": 30.0, "duration_days": 30}))
	fields, err = plans.Fields(f.ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Platinum", fields["name"])

	require.NoError(t, plans.Delete(f.ctx, id))
	require.Empty(t, f.backend.IDs("plans"))

	err = plans.Delete(f.ctx, id)
	require.ErrorIs(t, err, errors.ErrNotFound)
}

func TestCollection_ServerErrorMessage(t *testing.T) {
	f := setupTestFixture(t)
	f.backend.Fail("plans", http.MethodPost, http.StatusBadRequest, `{"name":["This field is required."],"price":["A valid number is required."]}`)
	plans := gateway.NewCollection[catalog.Plan](f.client, "plans/")

	err := plans.Create(f.ctx, map[string]any{})
	var statusErr *gateway.StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, "name: This field is required.; price: A valid number is required.", statusErr.Message())
}

func TestClient_TransportFailure(t *testing.T) {
	client, err := gateway.New("http://127.0.0.1:1/api/", 200*time.Millisecond)
	require.NoError(t, err)

	err = client.Get(context.Background(), "plans/", nil)
	require.Error(t, err)
	var statusErr *gateway.StatusError
	require.False(t, errors.As(err, &statusErr))
}
