package main

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cloudtree/fieldsync/pkg/types"
)

// simServer holds the simulator's in-memory tables. IDs are allocated in
// ascending order the way the real unit does, which is what append-order
// recovery in clients depends on.
type simServer struct {
	mu      sync.Mutex
	echoIDs bool
	logger  *zap.Logger

	nextSoil  int
	nextParam int
	soils     []types.Soil
	params    map[string][]types.Parameter // keyed by soil ID
}

func newSimServer(echoIDs bool, logger *zap.Logger) *simServer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &simServer{
		echoIDs: echoIDs,
		logger:  logger.Named("soilsim"),
		soils:   []types.Soil{},
		params:  map[string][]types.Parameter{},
	}
}

// router wires the REST surface of the collection unit.
func (s *simServer) router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/soils", s.listSoils)
	r.GET("/soils/parameters/:id", s.listParameters)
	r.POST("/create/soil/", s.createSoil)
	r.POST("/add/parameter/", s.addParameter)
	r.DELETE("/delete/soil/:id", s.deleteSoil)
	r.DELETE("/delete/parameter/:id", s.deleteParameter)
	return r
}

func (s *simServer) listSoils(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.soils)
}

func (s *simServer) listParameters(c *gin.Context) {
	soilID, ok := s.soilIDParam(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	params, ok := s.params[soilID]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("soil %s not found", soilID)})
		return
	}
	c.JSON(http.StatusOK, params)
}

func (s *simServer) createSoil(c *gin.Context) {
	var req types.CreateSoilRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Soil.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Soil_Name is required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextSoil++
	s.nextParam++
	soilID := fmt.Sprintf("S%04d", s.nextSoil)
	paramID := fmt.Sprintf("P%04d", s.nextParam)

	s.soils = append(s.soils, types.Soil{
		ID:        soilID,
		Name:      req.Soil.Name,
		Latitude:  req.Soil.Latitude,
		Longitude: req.Soil.Longitude,
	})
	s.params[soilID] = []types.Parameter{readingRow(paramID, soilID, req.Parameters)}

	s.logger.Info("soil created", zap.String("soil_id", soilID))
	if !s.echoIDs {
		c.JSON(http.StatusCreated, gin.H{"message": "soil created"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":      "soil created",
		"Soil_ID":      soilID,
		"Parameter_ID": paramID,
	})
}

func (s *simServer) addParameter(c *gin.Context) {
	var req types.AddParameterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	n, err := strconv.Atoi(req.SoilID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Soil_ID %q is not numeric", req.SoilID)})
		return
	}
	soilID := fmt.Sprintf("S%04d", n)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.params[soilID]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("soil %s not found", soilID)})
		return
	}

	s.nextParam++
	paramID := fmt.Sprintf("P%04d", s.nextParam)
	s.params[soilID] = append(s.params[soilID], readingRow(paramID, soilID, req.Parameters))

	s.logger.Info("reading added", zap.String("soil_id", soilID), zap.String("parameter_id", paramID))
	if !s.echoIDs {
		c.JSON(http.StatusCreated, gin.H{"message": "parameter added"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":      "parameter added",
		"Parameter_ID": paramID,
	})
}

func (s *simServer) deleteSoil(c *gin.Context) {
	soilID, ok := s.soilIDParam(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	idx := -1
	for i, soil := range s.soils {
		if soil.ID == soilID {
			idx = i
			break
		}
	}
	if idx < 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("soil %s not found", soilID)})
		return
	}

	s.soils = append(s.soils[:idx], s.soils[idx+1:]...)
	delete(s.params, soilID) // cascade

	s.logger.Info("soil deleted", zap.String("soil_id", soilID))
	c.JSON(http.StatusOK, gin.H{"message": "soil deleted"})
}

func (s *simServer) deleteParameter(c *gin.Context) {
	n, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "parameter id must be numeric"})
		return
	}
	paramID := fmt.Sprintf("P%04d", n)

	s.mu.Lock()
	defer s.mu.Unlock()
	for soilID, params := range s.params {
		for i, p := range params {
			if p.ID == paramID {
				s.params[soilID] = append(params[:i], params[i+1:]...)
				s.logger.Info("reading deleted", zap.String("parameter_id", paramID))
				c.JSON(http.StatusOK, gin.H{"message": "parameter deleted"})
				return
			}
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("parameter %s not found", paramID)})
}

// soilIDParam parses the numeric soil id path segment into the S#### form.
func (s *simServer) soilIDParam(c *gin.Context) (string, bool) {
	n, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "soil id must be numeric"})
		return "", false
	}
	return fmt.Sprintf("S%04d", n), true
}

func readingRow(id, soilID string, p types.ParameterRequest) types.Parameter {
	return types.Parameter{
		ID:           id,
		SoilID:       soilID,
		Moisture:     p.Moisture,
		Temperature:  p.Temperature,
		EC:           p.EC,
		PH:           p.PH,
		Nitrogen:     p.Nitrogen,
		Phosphorus:   p.Phosphorus,
		Potassium:    p.Potassium,
		Comments:     p.Comments,
		DateRecorded: time.Now().UTC().Format("2006-01-02 15:04:05"),
	}
}
