package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cloudtree/fieldsync/internal/gateway"
	"github.com/cloudtree/fieldsync/internal/store"
	"github.com/cloudtree/fieldsync/internal/syncengine"
	"github.com/cloudtree/fieldsync/pkg/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func createBody(name string) []byte {
	body, _ := json.Marshal(types.CreateSoilRequest{
		Soil:       types.SoilRequest{Name: name, Latitude: 10.3, Longitude: 123.9},
		Parameters: types.ParameterRequest{Moisture: 40, Temperature: 27, EC: 1, PH: 6.5},
	})
	return body
}

func doRequest(t *testing.T, r *gin.Engine, method, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(method, path, bytes.NewReader(body))
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateSoilEchoesIDs(t *testing.T) {
	r := newSimServer(true, zap.NewNop()).router()

	w := doRequest(t, r, http.MethodPost, "/create/soil/", createBody("Plot A"))
	require.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "S0001", resp["Soil_ID"])
	assert.Equal(t, "P0001", resp["Parameter_ID"])
}

func TestCreateSoilWithoutEcho(t *testing.T) {
	r := newSimServer(false, zap.NewNop()).router()

	w := doRequest(t, r, http.MethodPost, "/create/soil/", createBody("Plot A"))
	require.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotContains(t, resp, "Soil_ID")
	assert.NotContains(t, resp, "Parameter_ID")
}

func TestCreateSoilRequiresName(t *testing.T) {
	r := newSimServer(true, zap.NewNop()).router()
	w := doRequest(t, r, http.MethodPost, "/create/soil/", createBody(""))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListSoilsAndParameters(t *testing.T) {
	r := newSimServer(true, zap.NewNop()).router()
	require.Equal(t, http.StatusCreated, doRequest(t, r, http.MethodPost, "/create/soil/", createBody("Plot A")).Code)

	w := doRequest(t, r, http.MethodGet, "/soils", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var soils []types.Soil
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &soils))
	require.Len(t, soils, 1)
	assert.Equal(t, "S0001", soils[0].ID)
	assert.Equal(t, "Plot A", soils[0].Name)

	w = doRequest(t, r, http.MethodGet, "/soils/parameters/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var params []types.Parameter
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &params))
	require.Len(t, params, 1)
	assert.Equal(t, "P0001", params[0].ID)
	assert.NotEmpty(t, params[0].DateRecorded)
}

func TestAddParameter(t *testing.T) {
	r := newSimServer(true, zap.NewNop()).router()
	require.Equal(t, http.StatusCreated, doRequest(t, r, http.MethodPost, "/create/soil/", createBody("Plot A")).Code)

	body, _ := json.Marshal(types.AddParameterRequest{
		SoilID:     "1",
		Parameters: types.ParameterRequest{Moisture: 55},
	})
	w := doRequest(t, r, http.MethodPost, "/add/parameter/", body)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(t, r, http.MethodGet, "/soils/parameters/1", nil)
	var params []types.Parameter
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &params))
	assert.Len(t, params, 2)
}

func TestAddParameterUnknownSoil(t *testing.T) {
	r := newSimServer(true, zap.NewNop()).router()
	body, _ := json.Marshal(types.AddParameterRequest{SoilID: "99"})
	w := doRequest(t, r, http.MethodPost, "/add/parameter/", body)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteSoilCascades(t *testing.T) {
	r := newSimServer(true, zap.NewNop()).router()
	require.Equal(t, http.StatusCreated, doRequest(t, r, http.MethodPost, "/create/soil/", createBody("Plot A")).Code)

	w := doRequest(t, r, http.MethodDelete, "/delete/soil/1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, http.StatusNotFound, doRequest(t, r, http.MethodGet, "/soils/parameters/1", nil).Code)
	assert.Equal(t, http.StatusNotFound, doRequest(t, r, http.MethodDelete, "/delete/parameter/1", nil).Code)
}

func TestDeleteParameter(t *testing.T) {
	r := newSimServer(true, zap.NewNop()).router()
	require.Equal(t, http.StatusCreated, doRequest(t, r, http.MethodPost, "/create/soil/", createBody("Plot A")).Code)

	w := doRequest(t, r, http.MethodDelete, "/delete/parameter/1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var params []types.Parameter
	w = doRequest(t, r, http.MethodGet, "/soils/parameters/1", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &params))
	assert.Empty(t, params)
}

// TestSyncAgainstSimulator drives the real gateway client and sync engine
// against the simulator over HTTP, with echoed IDs and with the echo
// suppressed.
func TestSyncAgainstSimulator(t *testing.T) {
	for _, echo := range []bool{true, false} {
		name := "echo ids"
		if !echo {
			name = "append-order recovery"
		}
		t.Run(name, func(t *testing.T) {
			ts := httptest.NewServer(newSimServer(echo, zap.NewNop()).router())
			t.Cleanup(ts.Close)

			st, err := store.Open(t.TempDir(), zap.NewNop())
			require.NoError(t, err)
			t.Cleanup(func() { st.Close() })

			gw := gateway.NewClient(types.Config{BackendURL: ts.URL}, zap.NewNop())
			eng := syncengine.New(st, gw, zap.NewNop())

			localSoil, _, err := st.SaveSoil(types.CreateSoilRequest{
				Soil:       types.SoilRequest{Name: "Field plot", Latitude: 10.3, Longitude: 123.9},
				Parameters: types.ParameterRequest{Moisture: 40},
			})
			require.NoError(t, err)

			result := eng.FullSync(context.Background())
			assert.True(t, result.Success)
			assert.Empty(t, result.Errors)

			backendID, ok, err := st.BackendID(localSoil)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, "S0001", backendID)

			count, err := eng.PendingCount()
			require.NoError(t, err)
			assert.Zero(t, count.Total())
		})
	}
}
