package server

import (
	"encoding/json"
	"errors"
	"io"
	"iter"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/de-tools/reportato/pkg/handlers/csvview"
	"github.com/de-tools/reportato/pkg/models/api"
	"github.com/de-tools/reportato/pkg/models/auth"
	"github.com/de-tools/reportato/pkg/reporter"
	"github.com/de-tools/reportato/pkg/schema"
	"github.com/de-tools/reportato/pkg/services/registry"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticItems(items ...any) func(*http.Request, *reporter.Definition) (iter.Seq2[any, error], error) {
	return func(*http.Request, *reporter.Definition) (iter.Seq2[any, error], error) {
		return reporter.Slice(items), nil
	}
}

func TestWebAPI_Endpoints(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))

	permissionDef := reporter.MustDefine(schema.MustParse(&auth.Permission{}), reporter.Options{
		Fields: []string{"name", "codename"},
	})
	groupDef := reporter.MustDefine(schema.MustParse(&auth.Group{}), reporter.Options{
		Fields: []string{"name"},
	})

	reports := registry.New()
	require.NoError(t, reports.Register("permissions", csvview.NewView(permissionDef, nil,
		csvview.WithItems(staticItems(
			&auth.Permission{Name: "Can add permission", Codename: "add_permission"},
		)),
		csvview.WithFileName("permissions.csv"),
	)))
	require.NoError(t, reports.Register("broken", csvview.NewView(groupDef, nil,
		csvview.WithItems(func(*http.Request, *reporter.Definition) (iter.Seq2[any, error], error) {
			return nil, errors.New("db down")
		}),
	)))

	config := Config{
		Addr:            ":8080",
		ShutdownTimeout: 10 * time.Second,
		Dependencies: Dependencies{
			Reports: reports,
			Logger:  logger,
		},
	}
	router := ConfigureRouter(config)
	testServer := httptest.NewServer(router)
	defer testServer.Close()

	tests := []struct {
		name           string
		path           string
		expectedStatus int
		expected       interface{}
		parseResponse  func([]byte) (interface{}, error)
	}{
		{
			name:           "ListReports",
			path:           "/api/v1/reports",
			expectedStatus: http.StatusOK,
			expected: []api.Report{
				{
					Name:     "broken",
					FileName: "myreport.csv",
					Model:    "Group",
					Fields:   []string{"name"},
					Headers:  []string{"Name"},
				},
				{
					Name:     "permissions",
					FileName: "permissions.csv",
					Model:    "Permission",
					Fields:   []string{"name", "codename"},
					Headers:  []string{"Name", "Codename"},
				},
			},
			parseResponse: unmarshalResponse[[]api.Report](),
		},
		{
			name:           "GetReport",
			path:           "/api/v1/reports/permissions",
			expectedStatus: http.StatusOK,
			expected:       "Name,Codename\nCan add permission,add_permission\n",
			parseResponse:  rawResponse,
		},
		{
			name:           "GetReport_Unknown",
			path:           "/api/v1/reports/missing",
			expectedStatus: http.StatusNotFound,
			expected:       "report not found\n",
			parseResponse:  rawResponse,
		},
		{
			name:           "GetReport_ItemsFail",
			path:           "/api/v1/reports/broken",
			expectedStatus: http.StatusInternalServerError,
			expected:       "failed to render report\n",
			parseResponse:  rawResponse,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := http.Get(testServer.URL + tc.path)
			require.NoError(t, err, "Failed to send request")
			defer resp.Body.Close()

			assert.Equal(t, tc.expectedStatus, resp.StatusCode, "Status code mismatch")

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err, "Failed to read response body")

			actual, err := tc.parseResponse(body)
			require.NoError(t, err, "Failed to parse response")

			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestNewWebAPI_DefaultShutdownTimeout(t *testing.T) {
	web := NewWebAPI(Config{
		Addr: ":0",
		Dependencies: Dependencies{
			Reports: registry.New(),
			Logger:  zerolog.Nop(),
		},
	})

	assert.Equal(t, defaultShutdownTimeout, web.shutdownTimeout)
	assert.Equal(t, ":0", web.server.Addr)
}

func rawResponse(data []byte) (interface{}, error) {
	return string(data), nil
}

func unmarshalResponse[T any]() func([]byte) (interface{}, error) {
	return func(data []byte) (interface{}, error) {
		var response T
		err := json.Unmarshal(data, &response)
		return response, err
	}
}
