package entity

import (
	"fmt"
	"strings"
	"time"
)

// Record is one semi-structured item of a dataset. Values are whatever the
// JSON decoder produced: string, float64, bool, nil, nested maps or slices.
type Record map[string]any

// FieldFormat is a per-field rendering hint carried by a display schema.
type FieldFormat string

const (
	FormatDefault FieldFormat = ""
	FormatLink    FieldFormat = "link"
)

// FieldDescriptor labels one schema field.
type FieldDescriptor struct {
	Label  string      `json:"label"`
	Format FieldFormat `json:"format,omitempty"`
}

// DisplaySchema orders and labels the columns of a dataset preview.
// Fields may name keys that have no descriptor in Properties.
type DisplaySchema struct {
	Title      string                     `json:"title,omitempty"`
	Fields     []string                   `json:"fields"`
	Properties map[string]FieldDescriptor `json:"properties,omitempty"`
}

// Descriptor returns the descriptor for key, falling back to the raw key as
// label with default formatting.
func (s DisplaySchema) Descriptor(key string) FieldDescriptor {
	if d, ok := s.Properties[key]; ok {
		if d.Label == "" {
			d.Label = key
		}
		return d
	}
	return FieldDescriptor{Label: key}
}

// DatasetMetadata mirrors the platform's dataset object. Schema is the raw
// nested shape the platform returns; use DisplaySchema to read it.
type DatasetMetadata struct {
	ID             string         `json:"id"`
	Name           *string        `json:"name,omitempty"`
	ItemCount      int            `json:"itemCount"`
	CleanItemCount int            `json:"cleanItemCount,omitempty"`
	ActorID        string         `json:"actId,omitempty"`
	ActorRunID     string         `json:"actRunId,omitempty"`
	CreatedAt      *time.Time     `json:"createdAt,omitempty"`
	ModifiedAt     *time.Time     `json:"modifiedAt,omitempty"`
	Schema         *DatasetSchema `json:"schema,omitempty"`
}

type DatasetSchema struct {
	Views SchemaViews `json:"views"`
}

type SchemaViews struct {
	Overview *OverviewView `json:"overview,omitempty"`
}

// OverviewView is the schema view the dashboard previews.
type OverviewView struct {
	Title          string         `json:"title,omitempty"`
	Transformation Transformation `json:"transformation"`
	Display        ViewDisplay    `json:"display"`
}

type Transformation struct {
	Fields []string `json:"fields"`
}

type ViewDisplay struct {
	Component  string                     `json:"component,omitempty"`
	Properties map[string]FieldDescriptor `json:"properties,omitempty"`
}

// DisplaySchema extracts the overview view, or nil when the dataset carries none.
func (m *DatasetMetadata) DisplaySchema() *DisplaySchema {
	if m == nil || m.Schema == nil || m.Schema.Views.Overview == nil {
		return nil
	}
	ov := m.Schema.Views.Overview
	fields := ov.Transformation.Fields
	if fields == nil {
		fields = []string{}
	}
	return &DisplaySchema{
		Title:      ov.Title,
		Fields:     fields,
		Properties: ov.Display.Properties,
	}
}

// ExportFormat is a file format the platform can export a dataset in.
type ExportFormat string

const (
	ExportJSON ExportFormat = "json"
	ExportCSV  ExportFormat = "csv"
	ExportXLSX ExportFormat = "xlsx"
	ExportXML  ExportFormat = "xml"
)

func ParseExportFormat(s string) (ExportFormat, error) {
	switch f := ExportFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case ExportJSON, ExportCSV, ExportXLSX, ExportXML:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", s)
	}
}
