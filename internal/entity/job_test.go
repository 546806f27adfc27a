package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJobStatus(t *testing.T) {
	cases := map[string]JobStatus{
		"READY":      StatusReady,
		"RUNNING":    StatusRunning,
		"SUCCEEDED":  StatusSucceeded,
		"FAILED":     StatusFailed,
		"TIMED-OUT":  StatusTimedOut,
		"ABORTED":    StatusAborted,
		"aborted":    StatusAborted,
		"TIMING-OUT": StatusUnknown,
		"":           StatusUnknown,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseJobStatus(in), in)
	}
}

func TestJob_UnmarshalUnknownStatus(t *testing.T) {
	var j Job
	err := json.Unmarshal([]byte(`{"id":"r1","status":"SOMETHING-NEW","startedAt":"2024-03-04T09:30:00Z"}`), &j)
	require.NoError(t, err)
	assert.Equal(t, StatusUnknown, j.Status)
	assert.Equal(t, DisplayPending, j.Status.Display())

	err = json.Unmarshal([]byte(`{"id":"r2","status":null}`), &j)
	require.NoError(t, err)
	assert.Equal(t, StatusUnknown, j.Status)
}

func TestJobStatus_Display(t *testing.T) {
	assert.Equal(t, DisplayCompleted, StatusSucceeded.Display())
	assert.Equal(t, DisplayRunning, StatusRunning.Display())
	assert.Equal(t, DisplayPending, StatusReady.Display())
	for _, s := range []JobStatus{StatusFailed, StatusAborted, StatusTimedOut} {
		assert.Equal(t, DisplayFailed, s.Display())
		assert.True(t, s.Terminal())
	}
	assert.False(t, StatusRunning.Terminal())
	assert.False(t, StatusUnknown.Terminal())
}

func TestJob_DisplayNameAndFilename(t *testing.T) {
	j := Job{StartedAt: time.Date(2024, 3, 4, 9, 30, 0, 0, time.UTC)}
	assert.Equal(t, "Run Mar 4, 09:30", j.DisplayName())
	assert.Equal(t, "Run_Mar_4,_09:30.csv", j.DownloadFilename(ExportCSV))
}

func TestScrapeRequest_Validate(t *testing.T) {
	r := ScrapeRequest{SearchQuery: "coffee shops\n\n  \nhotels in Miami "}
	require.NoError(t, r.Validate())
	assert.Equal(t, DefaultMaxResults, r.MaxResults)
	assert.Equal(t, []string{"coffee shops", "hotels in Miami"}, r.Queries())

	blank := ScrapeRequest{SearchQuery: " \n\t\n"}
	assert.ErrorIs(t, blank.Validate(), ErrEmptyQuery)

	tooMany := ScrapeRequest{SearchQuery: "gyms", MaxResults: 501}
	assert.Error(t, tooMany.Validate())

	negative := ScrapeRequest{SearchQuery: "gyms", MaxResults: -1}
	assert.Error(t, negative.Validate())
}

func TestDatasetMetadata_DisplaySchema(t *testing.T) {
	raw := `{
		"id": "ds1",
		"itemCount": 42,
		"schema": {"views": {"overview": {
			"title": "Overview",
			"transformation": {"fields": ["title", "rating", "url"]},
			"display": {"component": "table", "properties": {
				"rating": {"label": "Rating"},
				"url": {"label": "Maps", "format": "link"}
			}}
		}}}
	}`
	var m DatasetMetadata
	require.NoError(t, json.Unmarshal([]byte(raw), &m))

	s := m.DisplaySchema()
	require.NotNil(t, s)
	assert.Equal(t, []string{"title", "rating", "url"}, s.Fields)
	assert.Equal(t, FieldDescriptor{Label: "title"}, s.Descriptor("title"))
	assert.Equal(t, "Rating", s.Descriptor("rating").Label)
	assert.Equal(t, FormatLink, s.Descriptor("url").Format)

	var bare DatasetMetadata
	require.NoError(t, json.Unmarshal([]byte(`{"id":"ds2","itemCount":0}`), &bare))
	assert.Nil(t, bare.DisplaySchema())

	var nilMeta *DatasetMetadata
	assert.Nil(t, nilMeta.DisplaySchema())
}

func TestParseExportFormat(t *testing.T) {
	for _, s := range []string{"json", "CSV", "xlsx", "xml"} {
		_, err := ParseExportFormat(s)
		assert.NoError(t, err, s)
	}
	_, err := ParseExportFormat("pdf")
	assert.Error(t, err)
}
