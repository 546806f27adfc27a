package render

import (
	"scrapedash/internal/entity"
)

const (
	fallbackName      = "N/A"
	fallbackLinkLabel = "View on Map"
)

var fallbackColumns = []Column{
	{Key: "name", Label: "Business Name"},
	{Key: "category", Label: "Category"},
	{Key: "rating", Label: "Rating"},
	{Key: "address", Label: "Address"},
}

func projectFallback(records []entity.Record) Table {
	t := Table{
		Columns:  append([]Column(nil), fallbackColumns...),
		Rows:     make([]Row, 0, len(records)),
		Fallback: true,
	}
	for _, rec := range records {
		t.Rows = append(t.Rows, Row{Cells: []Cell{
			nameCell(rec),
			firstText(rec, "category", "categoryName"),
			fallbackRatingCell(rec),
			firstText(rec, "address"),
		}})
	}
	return t
}

// nameCell is the two-line first column: the business name and, when the
// record has a url, a map link underneath.
func nameCell(rec entity.Record) Cell {
	c := Cell{Kind: KindCompound, Text: fallbackName}
	if v, ok := first(rec, "businessName", "title"); ok {
		if s, ok := stringify(v); ok {
			c.Text = s
		}
	}
	if v, ok := rec["url"]; ok {
		if link := linkCell(fallbackLinkLabel, v, true); link.Kind == KindLink {
			c.Secondary = &link
		}
	}
	return c
}

func fallbackRatingCell(rec entity.Record) Cell {
	v, _ := first(rec, "rating", "totalScore")
	c := ratingCell(v)

	reviews := 0.0
	if rv, ok := first(rec, "reviewCount", "reviewsCount"); ok {
		reviews, _ = number(rv)
	}
	c.Detail = "(" + groupThousands(reviews) + " reviews)"
	return c
}

func firstText(rec entity.Record, keys ...string) Cell {
	v, ok := first(rec, keys...)
	return textCell(v, ok)
}

// first returns the first truthy value among keys.
func first(rec entity.Record, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := rec[k]; ok && truthy(v) {
			return v, true
		}
	}
	return nil, false
}
