package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"astroscope/pkg/model"
)

var testPeople = []model.Person{
	{ID: "1", Name: "Alice", Birthdate: "1990-03-14", Birthtime: "08:30", Lat: 48.85, Lng: 2.35, City: "Paris", TzStr: "Europe/Paris"},
	{ID: "2", Name: "Bob", Birthdate: "1985-12-01", Birthtime: "23:05", Lat: 51.5, Lng: -0.12, City: "London", TzStr: "Europe/London"},
}

func TestChartGenerateEndpoints(t *testing.T) {
	tests := []struct {
		chartType model.ChartType
		people    []model.Person
		wantPath  string
	}{
		{model.ChartNatal, testPeople[:1], "/astro/chart-json"},
		{model.ChartTransit, testPeople[:1], "/astro/chart-svg"},
		{model.ChartReport, testPeople[:1], "/astro/report"},
		{model.ChartSynastry, testPeople, "/astro/synastry"},
		{model.ChartComposite, testPeople, "/astro/composite"},
	}

	for _, tt := range tests {
		t.Run(string(tt.chartType), func(t *testing.T) {
			var gotPath string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"ok": true}`))
			}))
			defer server.Close()

			client := newTestClient(t, server.URL)
			_, err := client.ChartGenerate(context.Background(), tt.chartType, tt.people)
			require.NoError(t, err)
			require.Equal(t, tt.wantPath, gotPath)
		})
	}
}

func TestChartGeneratePairOrder(t *testing.T) {
	var body map[string]model.PersonPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(data, &body))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.ChartGenerate(context.Background(), model.ChartSynastry, testPeople)
	require.NoError(t, err)

	require.Equal(t, "Alice", body["person1"].Name)
	require.Equal(t, "Bob", body["person2"].Name)
}

func TestChartGenerateStripsID(t *testing.T) {
	var raw map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.ChartGenerate(context.Background(), model.ChartNatal, testPeople[:1])
	require.NoError(t, err)
	require.NotContains(t, raw, "id")
}

func TestChartGenerateJSONResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Write([]byte(`{"sun":"pisces","moon":"leo"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	result, err := client.ChartGenerate(context.Background(), model.ChartNatal, testPeople[:1])
	require.NoError(t, err)
	require.Equal(t, model.ChartKindJSON, result.Kind)
	require.Equal(t, model.ChartNatal, result.Type)

	// Content arrives re-indented
	var decoded map[string]string
	require.NoError(t, json.Unmarshal([]byte(result.Content), &decoded))
	require.Equal(t, "pisces", decoded["sun"])
	require.Contains(t, result.Content, "\n")
}

func TestChartGenerateSVGResult(t *testing.T) {
	const svg = `<svg xmlns="http://www.w3.org/2000/svg"><circle r="5"/></svg>`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/svg+xml")
		w.Write([]byte(svg))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	result, err := client.ChartGenerate(context.Background(), model.ChartTransit, testPeople[:1])
	require.NoError(t, err)
	require.Equal(t, model.ChartKindSVG, result.Kind)
	require.Equal(t, svg, result.Content)
}

func TestChartGenerateBackendError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.ChartGenerate(context.Background(), model.ChartNatal, testPeople[:1])
	require.Error(t, err)
}
