package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// The validation paths reject before touching the store, so a nil store
// is enough for these tests.
func setupEquipmentRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := NewHandler(nil, nil)
	r.POST("/equipment", handler.CreateEquipment)
	r.PUT("/equipment/:id", handler.UpdateEquipment)
	return r
}

func TestCreateEquipment_Validation(t *testing.T) {
	router := setupEquipmentRouter()

	testCases := []struct {
		name        string
		body        string
		expectedMsg string
	}{
		{
			name:        "missing name",
			body:        `{"type":"Tank","status":"Active","lastCleanedDate":"2024-01-15"}`,
			expectedMsg: "name is required and must be at least 2 characters",
		},
		{
			name:        "name too short after trim",
			body:        `{"name":"  x  ","type":"Tank","status":"Active","lastCleanedDate":"2024-01-15"}`,
			expectedMsg: "name is required and must be at least 2 characters",
		},
		{
			name:        "type outside the enumeration",
			body:        `{"name":"Tank 1","type":"Reactor","status":"Active","lastCleanedDate":"2024-01-15"}`,
			expectedMsg: "type must be one of Machine, Vessel, Tank, Mixer",
		},
		{
			name:        "status outside the enumeration",
			body:        `{"name":"Tank 1","type":"Tank","status":"Broken","lastCleanedDate":"2024-01-15"}`,
			expectedMsg: "status must be one of Active, Inactive, Under Maintenance",
		},
		{
			name:        "missing date",
			body:        `{"name":"Tank 1","type":"Tank","status":"Active"}`,
			expectedMsg: "lastCleanedDate is required",
		},
		{
			name:        "date not matching the pattern",
			body:        `{"name":"Tank 1","type":"Tank","status":"Active","lastCleanedDate":"15/01/2024"}`,
			expectedMsg: "lastCleanedDate must be in YYYY-MM-DD format",
		},
		{
			name:        "date with time component",
			body:        `{"name":"Tank 1","type":"Tank","status":"Active","lastCleanedDate":"2024-01-15T00:00:00Z"}`,
			expectedMsg: "lastCleanedDate must be in YYYY-MM-DD format",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodPost, "/equipment", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, `{"message":"`+tc.expectedMsg+`"}`, w.Body.String())
		})
	}
}

func TestCreateEquipment_MalformedBody(t *testing.T) {
	router := setupEquipmentRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/equipment", strings.NewReader("not json"))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"invalid request body"}`, w.Body.String())
}

func TestUpdateEquipment_BadID(t *testing.T) {
	router := setupEquipmentRouter()

	for _, id := range []string{"abc", "0", "-3", "1.5"} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPut, "/equipment/"+id,
			strings.NewReader(`{"name":"Tank 1","type":"Tank","status":"Active","lastCleanedDate":"2024-01-15"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, "id %q should be rejected", id)
		assert.JSONEq(t, `{"message":"invalid equipment id"}`, w.Body.String())
	}
}
