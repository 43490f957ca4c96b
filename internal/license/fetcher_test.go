// internal/license/fetcher_test.go
package license

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stderrors "sla-tracker/internal/common/errors"
	"sla-tracker/internal/common/logger"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig(pendingURL string) *Config {
	return &Config{
		PendingURL: pendingURL,
		ActiveURL:  pendingURL,
		Timeout:    3 * time.Second,
	}
}

func licensePayload(rows []map[string]interface{}) string {
	data, _ := json.Marshal(rows)
	return string(data)
}

func serveJSON(t *testing.T, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(body))
	}))
}

// ==========================
// Core Functionality Tests
// ==========================

func TestFetcher_Fetch_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "500", r.URL.Query().Get("$limit"))
		body := licensePayload([]map[string]interface{}{
			{
				"license_serial_number":  "1310123",
				"premise_name":           "SAKURA SUSHI BAR",
				"license_type_name":      "ON-PREMISES LIQUOR",
				"county_name":            "NEW YORK",
				"city":                   "NEW YORK",
				"zip":                    "10013",
				"license_effective_date": "2026-02-10T00:00:00.000",
			},
		})
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(body))
	}))
	defer server.Close()

	fetcher := NewFetcher(createTestConfig(server.URL), logger.NewTestLogger(t))

	records, err := fetcher.Fetch(context.Background(), StatusPending, 500)

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "1310123", records[0].SerialNumber)
	assert.Equal(t, "SAKURA SUSHI BAR", records[0].Name)
	assert.Equal(t, StatusPending, records[0].Status)
	assert.Equal(t, "NEW YORK", records[0].County)
	assert.Equal(t, 2026, records[0].Date.Year())
}

func TestFetcher_Fetch_SkipsMalformedRecords(t *testing.T) {
	body := licensePayload([]map[string]interface{}{
		{"premise_name": "NO SERIAL RAMEN"},                              // missing serial number
		{"license_serial_number": "200", "zip": "11201"},                 // no name at all
		{"license_serial_number": 300, "premise_name": "NUMERIC SERIAL"}, // wrong type
		{"license_serial_number": "400", "doing_business_as_dba": "IZAKAYA TEN", "county": "KINGS"},
	})
	server := serveJSON(t, body)
	defer server.Close()

	fetcher := NewFetcher(createTestConfig(server.URL), logger.NewTestLogger(t))

	records, err := fetcher.Fetch(context.Background(), StatusActive, 0)

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "400", records[0].SerialNumber)
	assert.Equal(t, "IZAKAYA TEN", records[0].Name) // dba fallback
	assert.Equal(t, "KINGS", records[0].County)
	assert.Equal(t, StatusActive, records[0].Status)
}

func TestFetcher_Fetch_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	fetcher := NewFetcher(createTestConfig(server.URL), logger.NewTestLogger(t))

	records, err := fetcher.Fetch(context.Background(), StatusPending, 10)

	assert.Nil(t, records)
	require.Error(t, err)
	assert.Equal(t, stderrors.ErrCodeNetwork, stderrors.CodeOf(err))
}

func TestFetcher_Fetch_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	config := createTestConfig(server.URL)
	config.Timeout = 50 * time.Millisecond
	fetcher := NewFetcher(config, logger.NewTestLogger(t))

	records, err := fetcher.Fetch(context.Background(), StatusPending, 10)

	assert.Nil(t, records)
	require.Error(t, err)
	assert.Equal(t, stderrors.ErrCodeUpstreamTimeout, stderrors.CodeOf(err))
}

func TestFetcher_Fetch_MalformedPayload(t *testing.T) {
	server := serveJSON(t, `{"not":"an array"}`)
	defer server.Close()

	fetcher := NewFetcher(createTestConfig(server.URL), logger.NewTestLogger(t))

	_, err := fetcher.Fetch(context.Background(), StatusActive, 10)

	require.Error(t, err)
	assert.Equal(t, stderrors.ErrCodeParse, stderrors.CodeOf(err))
}

func TestFetcher_Fetch_HonorsCallerContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	fetcher := NewFetcher(createTestConfig(server.URL), logger.NewTestLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fetcher.Fetch(ctx, StatusPending, 10)
	require.Error(t, err)
}

// ==========================
// Unit Tests
// ==========================

func TestBuildFetchURL(t *testing.T) {
	t.Run("appends limit", func(t *testing.T) {
		u, err := buildFetchURL("https://data.ny.gov/resource/hrvs-fxs2.json", 1000)
		require.NoError(t, err)
		assert.Contains(t, u, "%24limit=1000")
	})

	t.Run("zero limit leaves URL untouched", func(t *testing.T) {
		u, err := buildFetchURL("https://data.ny.gov/resource/hrvs-fxs2.json", 0)
		require.NoError(t, err)
		assert.Equal(t, "https://data.ny.gov/resource/hrvs-fxs2.json", u)
	})

	t.Run("preserves existing query params", func(t *testing.T) {
		u, err := buildFetchURL("https://data.ny.gov/resource/x.json?county=Kings", 5)
		require.NoError(t, err)
		assert.Contains(t, u, "county=Kings")
		assert.Contains(t, u, "%24limit=5")
	})
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Time
	}{
		{"socrata floating timestamp", "2025-11-03T00:00:00.000", time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC)},
		{"bare timestamp", "2025-11-03T09:30:00", time.Date(2025, 11, 3, 9, 30, 0, 0, time.UTC)},
		{"plain date", "2025-11-03", time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC)},
		{"us date", "11/03/2025", time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC)},
		{"empty", "", time.Time{}},
		{"garbage", "next tuesday", time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseDate(tt.value))
		})
	}
}

func TestValidateRecord(t *testing.T) {
	t.Run("valid row", func(t *testing.T) {
		assert.Empty(t, validateRecord([]byte(`{"license_serial_number":"1","premise_name":"X"}`)))
	})

	t.Run("missing serial", func(t *testing.T) {
		assert.NotEmpty(t, validateRecord([]byte(`{"premise_name":"X"}`)))
	})

	t.Run("non-object row", func(t *testing.T) {
		assert.NotEmpty(t, validateRecord([]byte(`"just a string"`)))
	})
}

// guard against accidental sentinel comparison breakage in callers
func TestFetchErrorsAreStandard(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	fetcher := NewFetcher(createTestConfig(server.URL), logger.NewNoOpLogger())
	_, err := fetcher.Fetch(context.Background(), StatusActive, 1)

	var stdErr *stderrors.StandardError
	assert.True(t, errors.As(err, &stdErr))
}
