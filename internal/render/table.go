// Package render projects dataset records into a table description that any
// surface (JSON API, terminal) can draw. It performs no I/O except in text.go.
package render

import (
	"scrapedash/internal/entity"
)

// Placeholder stands in for missing values.
const Placeholder = "-"

type Kind string

const (
	KindText     Kind = "text"
	KindLink     Kind = "link"
	KindRating   Kind = "rating"
	KindCount    Kind = "count"
	KindCompound Kind = "compound"
)

// Cell is the render directive for one record field.
type Cell struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text"`

	// link
	Href       string `json:"href,omitempty"`
	NewContext bool   `json:"newContext,omitempty"`

	// rating
	Stars    int      `json:"stars,omitempty"`
	HalfStar bool     `json:"halfStar,omitempty"`
	Value    *float64 `json:"value,omitempty"`

	// Detail is a short annotation drawn next to the cell, e.g. "(120 reviews)".
	Detail string `json:"detail,omitempty"`
	// Secondary is the second line of a compound cell.
	Secondary *Cell `json:"secondary,omitempty"`
}

type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

type Row struct {
	Cells []Cell `json:"cells"`
}

type Table struct {
	Title    string   `json:"title,omitempty"`
	Columns  []Column `json:"columns"`
	Rows     []Row    `json:"rows"`
	Fallback bool     `json:"fallback"`
}

// Project renders records against schema. A nil schema selects the fixed
// four-column fallback layout. An empty record list yields headers and no rows.
func Project(records []entity.Record, schema *entity.DisplaySchema) Table {
	if schema == nil {
		return projectFallback(records)
	}

	t := Table{
		Title:   schema.Title,
		Columns: make([]Column, 0, len(schema.Fields)),
		Rows:    make([]Row, 0, len(records)),
	}
	descriptors := make([]entity.FieldDescriptor, len(schema.Fields))
	for i, key := range schema.Fields {
		descriptors[i] = schema.Descriptor(key)
		t.Columns = append(t.Columns, Column{Key: key, Label: descriptors[i].Label})
	}

	for _, rec := range records {
		row := Row{Cells: make([]Cell, 0, len(schema.Fields))}
		for i, key := range schema.Fields {
			value, present := rec[key]
			row.Cells = append(row.Cells, RenderField(key, descriptors[i].Format, value, present))
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}
