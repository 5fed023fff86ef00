package v1_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	v1 "github.com/swcatalog/location-server/internal/api/v1"
	"github.com/swcatalog/location-server/internal/catalog"
	"github.com/swcatalog/location-server/internal/service"
	"github.com/swcatalog/location-server/internal/service/mocks"
	"github.com/swcatalog/location-server/internal/store"
)

func TestHealthRouter(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockSvc := mocks.NewMockLocationService(ctrl)
	mockSvc.EXPECT().CheckReadiness(gomock.Any()).Return(nil).AnyTimes()

	router := v1.HealthRouter(mockSvc)

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{
			name:       "health endpoint",
			path:       "/health",
			wantStatus: http.StatusOK,
		},
		{
			name:       "readiness endpoint - ready",
			path:       "/readiness",
			wantStatus: http.StatusOK,
		},
		{
			name:       "version endpoint",
			path:       "/version",
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req, err := http.NewRequest(http.MethodGet, tt.path, nil)
			require.NoError(t, err)

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

func TestReadinessNotReady(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockSvc := mocks.NewMockLocationService(ctrl)
	mockSvc.EXPECT().CheckReadiness(gomock.Any()).Return(assert.AnError)

	router := v1.HealthRouter(mockSvc)

	req := httptest.NewRequest(http.MethodGet, "/readiness", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)

	var errResp v1.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &errResp))
	assert.Contains(t, errResp.Error, "LocationService not ready")
}

func TestCreateLocation(t *testing.T) {
	t.Parallel()

	urlSpec := catalog.LocationSpec{Type: "url", Target: "https://example.com/catalog-info.yaml"}

	tests := []struct {
		name       string
		target     string
		body       string
		setupMock  func(*mocks.MockLocationService)
		wantStatus int
		wantError  string
	}{
		{
			name:   "registers a location",
			target: "/locations",
			body:   `{"type":"url","target":"https://example.com/catalog-info.yaml"}`,
			setupMock: func(m *mocks.MockLocationService) {
				m.EXPECT().CreateLocation(gomock.Any(), urlSpec, false).Return(&service.CreateLocationResult{
					Location: &catalog.Location{ID: "123", Type: urlSpec.Type, Target: urlSpec.Target},
					Entities: []*catalog.Entity{},
				}, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:   "dry run",
			target: "/locations?dryRun=true",
			body:   `{"type":"url","target":"https://example.com/catalog-info.yaml"}`,
			setupMock: func(m *mocks.MockLocationService) {
				m.EXPECT().CreateLocation(gomock.Any(), urlSpec, true).Return(&service.CreateLocationResult{
					Exists:   true,
					Entities: []*catalog.Entity{catalog.NewLocationEntity(urlSpec)},
				}, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "invalid dryRun parameter",
			target:     "/locations?dryRun=maybe",
			body:       `{"type":"url","target":"https://example.com/catalog-info.yaml"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid dryRun query parameter",
		},
		{
			name:       "malformed body",
			target:     "/locations",
			body:       `{"type":`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid request body",
		},
		{
			name:       "missing target",
			target:     "/locations",
			body:       `{"type":"url"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Both type and target are required",
		},
		{
			name:   "unknown type surfaces as bad request",
			target: "/locations",
			body:   `{"type":"ftp","target":"ftp://example.com/catalog-info.yaml"}`,
			setupMock: func(m *mocks.MockLocationService) {
				m.EXPECT().CreateLocation(gomock.Any(), gomock.Any(), false).
					Return(nil, service.NewInputErrorf("unknown location type ftp"))
			},
			wantStatus: http.StatusBadRequest,
			wantError:  "unknown location type ftp",
		},
		{
			name:   "duplicate location conflicts",
			target: "/locations",
			body:   `{"type":"url","target":"https://example.com/catalog-info.yaml"}`,
			setupMock: func(m *mocks.MockLocationService) {
				m.EXPECT().CreateLocation(gomock.Any(), urlSpec, false).
					Return(nil, store.ErrLocationAlreadyExists)
			},
			wantStatus: http.StatusConflict,
			wantError:  "Location already exists",
		},
		{
			name:   "store failure is an internal error",
			target: "/locations",
			body:   `{"type":"url","target":"https://example.com/catalog-info.yaml"}`,
			setupMock: func(m *mocks.MockLocationService) {
				m.EXPECT().CreateLocation(gomock.Any(), urlSpec, false).Return(nil, assert.AnError)
			},
			wantStatus: http.StatusInternalServerError,
			wantError:  "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			t.Cleanup(ctrl.Finish)

			mockSvc := mocks.NewMockLocationService(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(mockSvc)
			}

			router := v1.Router(mockSvc)

			req := httptest.NewRequest(http.MethodPost, tt.target, strings.NewReader(tt.body))
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantError != "" {
				var errResp v1.ErrorResponse
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &errResp))
				assert.Contains(t, errResp.Error, tt.wantError)
			}
		})
	}
}

func TestCreateLocationResponseBody(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	spec := catalog.LocationSpec{Type: "url", Target: "https://example.com/catalog-info.yaml"}
	mockSvc := mocks.NewMockLocationService(ctrl)
	mockSvc.EXPECT().CreateLocation(gomock.Any(), spec, true).Return(&service.CreateLocationResult{
		Exists:   false,
		Entities: []*catalog.Entity{catalog.NewLocationEntity(spec)},
	}, nil)

	router := v1.Router(mockSvc)

	req := httptest.NewRequest(http.MethodPost, "/locations?dryRun=true",
		strings.NewReader(`{"type":"url","target":"https://example.com/catalog-info.yaml"}`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)

	var result service.CreateLocationResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.Nil(t, result.Location)
	require.Len(t, result.Entities, 1)
	assert.Equal(t, catalog.KindLocation, result.Entities[0].Kind)
}

func TestListLocations(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	locations := []*catalog.Location{
		{ID: "1", Type: "url", Target: "https://a/catalog-info.yaml"},
		{ID: "2", Type: "url", Target: "https://b/catalog-info.yaml"},
	}

	mockSvc := mocks.NewMockLocationService(ctrl)
	mockSvc.EXPECT().ListLocations(gomock.Any()).Return(locations, nil)

	router := v1.Router(mockSvc)

	req := httptest.NewRequest(http.MethodGet, "/locations", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp v1.ListLocationsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, locations, resp.Items)
}

func TestGetLocation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		setupMock  func(*mocks.MockLocationService)
		wantStatus int
	}{
		{
			name: "found",
			setupMock: func(m *mocks.MockLocationService) {
				m.EXPECT().GetLocation(gomock.Any(), "123").
					Return(&catalog.Location{ID: "123", Type: "url", Target: "https://x"}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "not found",
			setupMock: func(m *mocks.MockLocationService) {
				m.EXPECT().GetLocation(gomock.Any(), "123").Return(nil, store.ErrLocationNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			t.Cleanup(ctrl.Finish)

			mockSvc := mocks.NewMockLocationService(ctrl)
			tt.setupMock(mockSvc)

			router := v1.Router(mockSvc)

			req := httptest.NewRequest(http.MethodGet, "/locations/123", nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

func TestDeleteLocation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		setupMock  func(*mocks.MockLocationService)
		wantStatus int
	}{
		{
			name: "deleted",
			setupMock: func(m *mocks.MockLocationService) {
				m.EXPECT().DeleteLocation(gomock.Any(), "123").Return(nil)
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name: "not found",
			setupMock: func(m *mocks.MockLocationService) {
				m.EXPECT().DeleteLocation(gomock.Any(), "123").Return(store.ErrLocationNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			t.Cleanup(ctrl.Finish)

			mockSvc := mocks.NewMockLocationService(ctrl)
			tt.setupMock(mockSvc)

			router := v1.Router(mockSvc)

			req := httptest.NewRequest(http.MethodDelete, "/locations/123", nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}
