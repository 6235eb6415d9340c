package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cloudtree/fieldsync/pkg/types"
)

// newTestClient points a Client at the given test server.
func newTestClient(srv *httptest.Server) *Client {
	return NewClient(types.Config{BackendURL: srv.URL}, zap.NewNop())
}

func TestSoils(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/soils", r.URL.Path)
		json.NewEncoder(w).Encode([]types.Soil{
			{ID: "S0001", Name: "Plot A", Latitude: 10.3, Longitude: 123.9},
			{ID: "S0002", Name: "Plot B", Latitude: 10.4, Longitude: 123.8},
		})
	}))
	defer srv.Close()

	soils, err := newTestClient(srv).Soils(context.Background())
	require.NoError(t, err)
	require.Len(t, soils, 2)
	assert.Equal(t, "S0001", soils[0].ID)
	assert.Equal(t, "Plot B", soils[1].Name)
}

func TestParametersUsesNumericPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/soils/parameters/42", r.URL.Path)
		json.NewEncoder(w).Encode([]types.Parameter{
			{ID: "P0007", SoilID: "S0042", Moisture: 40, Temperature: 27},
		})
	}))
	defer srv.Close()

	params, err := newTestClient(srv).Parameters(context.Background(), "S0042")
	require.NoError(t, err)
	require.Len(t, params, 1)
	assert.Equal(t, "P0007", params[0].ID)
}

func TestParametersRejectsLocalID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be issued for a local id")
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Parameters(context.Background(), "L_S00001")
	assert.ErrorIs(t, err, types.ErrInvalidID)
}

func TestCreateSoilEchoedIDs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/create/soil/", r.URL.Path)

		var req types.CreateSoilRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Plot A", req.Soil.Name)

		json.NewEncoder(w).Encode(map[string]any{
			"Soil":       map[string]any{"Soil_ID": "S0003", "Soil_Name": req.Soil.Name},
			"Parameters": map[string]any{"Parameter_ID": "P0009"},
		})
	}))
	defer srv.Close()

	ids, err := newTestClient(srv).CreateSoil(context.Background(), types.CreateSoilRequest{
		Soil: types.SoilRequest{Name: "Plot A", Latitude: 1, Longitude: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, "S0003", ids.SoilID)
	assert.Equal(t, "P0009", ids.ParameterID)
}

func TestCreateSoilWithoutEchoedIDs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Echo the payload verbatim, the way the real backend responds.
		var req map[string]any
		json.NewDecoder(r.Body).Decode(&req)
		json.NewEncoder(w).Encode(req)
	}))
	defer srv.Close()

	ids, err := newTestClient(srv).CreateSoil(context.Background(), types.CreateSoilRequest{
		Soil: types.SoilRequest{Name: "Plot A"},
	})
	require.NoError(t, err, "a response without assigned ids is not an error")
	assert.Empty(t, ids.SoilID)
	assert.Empty(t, ids.ParameterID)
}

func TestAddParameterTranslatesSoilID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/add/parameter/", r.URL.Path)
		var req types.AddParameterRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "5", req.SoilID, "the wire form is the bare numeric string")
		json.NewEncoder(w).Encode(map[string]any{"Parameter_ID": "P0010"})
	}))
	defer srv.Close()

	ids, err := newTestClient(srv).AddParameter(context.Background(), types.AddParameterRequest{
		SoilID:     "S0005",
		Parameters: types.ParameterRequest{Moisture: 40},
	})
	require.NoError(t, err)
	assert.Equal(t, "P0010", ids.ParameterID)
}

func TestDeleteEndpoints(t *testing.T) {
	var gotPaths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		gotPaths = append(gotPaths, r.URL.Path)
	}))
	defer srv.Close()

	c := newTestClient(srv)
	require.NoError(t, c.DeleteParameter(context.Background(), "P0007"))
	require.NoError(t, c.DeleteSoil(context.Background(), "S0003"))
	assert.Equal(t, []string{"/delete/parameter/7", "/delete/soil/3"}, gotPaths)
}

func TestNon2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Soils(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestPing(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		reachable bool
	}{
		{name: "ok", status: http.StatusOK, reachable: true},
		{name: "client error still reachable", status: http.StatusNotFound, reachable: true},
		{name: "server error unreachable", status: http.StatusInternalServerError, reachable: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			assert.Equal(t, tt.reachable, newTestClient(srv).Ping(context.Background()))
		})
	}
}

func TestPingTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewClient(types.Config{
		BackendURL:  srv.URL,
		PingTimeout: 50 * time.Millisecond,
	}, zap.NewNop())
	assert.False(t, c.Ping(context.Background()))
}

func TestPingDownServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	assert.False(t, newTestClient(srv).Ping(context.Background()))
}
