// api/controller/grant_controller_test.go
package controller_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/cobaltsec/aegis/api/controller"
	aegis_errors "github.com/cobaltsec/aegis/api/errors"
	logger "github.com/cobaltsec/aegis/api/logging"
	"github.com/cobaltsec/aegis/api/model"
	mock_service "github.com/cobaltsec/aegis/api/test/service_mock"
)

func TestGrantController(t *testing.T) {
	logger.InitLogger(t.TempDir())
	defer logger.Sync()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockGrantService := mock_service.NewMockIGrantService(ctrl)
	grantController := controller.NewGrantController(mockGrantService)
	router := setupRouter()
	api := router.Group("/")
	// Test routes skip the service-auth middleware; both groups point at
	// the same router group.
	grantController.RegisterRoutes(api, api)

	t.Run("GrantObjectPermission_Success", func(t *testing.T) {
		mockGrantService.EXPECT().
			GrantObjectPermission(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&model.Grant{ID: "g-1", PrincipalID: "alice", Module: model.ModuleFinanceEstimation, Action: model.ActionView}, nil)

		body := strings.NewReader(`{"principal_id":"alice","module":"finance_estimation","action":"view","object_type":"invoice","object_id":"inv-1"}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/grants", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var created model.Grant
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
		assert.Equal(t, "g-1", created.ID)
	})

	t.Run("GrantObjectPermission_InvalidRequest", func(t *testing.T) {
		mockGrantService.EXPECT().
			GrantObjectPermission(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, aegis_errors.ErrInvalidRequest)

		body := strings.NewReader(`{"principal_id":"alice","module":"no_such_module","action":"read","object_type":"invoice","object_id":"inv-1"}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/grants", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("GrantObjectPermission_StoreUnavailable", func(t *testing.T) {
		mockGrantService.EXPECT().
			GrantObjectPermission(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, aegis_errors.NewStoreUnavailable("grants", assert.AnError))

		body := strings.NewReader(`{"principal_id":"alice","module":"finance_estimation","action":"view","object_type":"invoice","object_id":"inv-1"}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/grants", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("BulkGrant_PartialFailure", func(t *testing.T) {
		mockGrantService.EXPECT().
			BulkGrant(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&model.BulkGrantResult{
				Granted:  []model.Grant{{ID: "g-1"}},
				Failures: []model.GrantFailure{{Index: 1, Error: "expiry must be in the future"}},
			}, nil)

		body := strings.NewReader(`{"grants":[{"principal_id":"alice","module":"finance_estimation","action":"view","object_type":"invoice","object_id":"inv-1"},{"principal_id":"bob","module":"finance_estimation","action":"view","object_type":"invoice","object_id":"inv-2","expires_at":"2020-01-01T00:00:00Z"}]}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/grants/bulk", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusMultiStatus, w.Code)

		var result model.BulkGrantResult
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.Len(t, result.Granted, 1)
		assert.Len(t, result.Failures, 1)
	})

	t.Run("RevokeObjectPermission_Success", func(t *testing.T) {
		mockGrantService.EXPECT().
			RevokeObjectPermission(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		body := strings.NewReader(`{"principal_id":"alice","module":"finance_estimation","action":"view","object_type":"invoice","object_id":"inv-1"}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("DELETE", "/grants", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("ListForPrincipal_Success", func(t *testing.T) {
		mockGrantService.EXPECT().
			ListForPrincipal(gomock.Any(), "alice").
			Return([]model.Grant{{ID: "g-1"}, {ID: "g-2"}}, nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/grants/principal/alice", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Grants []model.Grant `json:"grants"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp.Grants, 2)
	})
}
