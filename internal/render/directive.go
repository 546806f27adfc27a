package render

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"scrapedash/internal/entity"
)

const (
	maxStars  = 5
	linkLabel = "Link"
)

// rule pairs a field predicate with the directive it produces. Rules are
// evaluated in order and the first match wins; textCell is the default.
type rule struct {
	match func(key string, format entity.FieldFormat) bool
	build func(value any, present bool) Cell
}

var rules = []rule{
	{
		match: func(key string, format entity.FieldFormat) bool {
			return format == entity.FormatLink || key == "url"
		},
		build: func(value any, present bool) Cell { return linkCell(linkLabel, value, present) },
	},
	{
		match: keyIn("rating", "totalScore"),
		build: func(value any, _ bool) Cell { return ratingCell(value) },
	},
	{
		match: keyIn("reviewCount", "reviewsCount", "reviews"),
		build: func(value any, _ bool) Cell { return countCell(value) },
	},
}

func keyIn(keys ...string) func(string, entity.FieldFormat) bool {
	return func(key string, _ entity.FieldFormat) bool {
		for _, k := range keys {
			if key == k {
				return true
			}
		}
		return false
	}
}

// RenderField resolves the directive for one field of one record.
func RenderField(key string, format entity.FieldFormat, value any, present bool) Cell {
	for _, r := range rules {
		if r.match(key, format) {
			return r.build(value, present)
		}
	}
	return textCell(value, present)
}

func placeholder() Cell {
	return Cell{Kind: KindText, Text: Placeholder}
}

func textCell(value any, present bool) Cell {
	if !present {
		return placeholder()
	}
	s, ok := stringify(value)
	if !ok || s == "" {
		return placeholder()
	}
	return Cell{Kind: KindText, Text: s}
}

func linkCell(label string, value any, present bool) Cell {
	if !present || !truthy(value) {
		return placeholder()
	}
	href, ok := stringify(value)
	if !ok || href == "" {
		return placeholder()
	}
	return Cell{Kind: KindLink, Text: label, Href: href, NewContext: true}
}

// ratingCell never falls back to the placeholder: missing or non-numeric values rate 0.
func ratingCell(value any) Cell {
	v, _ := number(value)
	if v < 0 || math.IsNaN(v) {
		v = 0
	}
	stars, half := starCount(v)
	return Cell{
		Kind:     KindRating,
		Text:     strconv.FormatFloat(v, 'f', 1, 64),
		Stars:    stars,
		HalfStar: half,
		Value:    &v,
	}
}

// starCount returns floor(min(v, 5)) solid stars and whether a half star follows.
func starCount(v float64) (int, bool) {
	if math.IsInf(v, 1) {
		return maxStars, false
	}
	stars := int(math.Floor(math.Min(v, maxStars)))
	half := v-math.Floor(v) >= 0.5 && stars < maxStars
	return stars, half
}

// countCell coalesces zero and missing counts into the placeholder.
func countCell(value any) Cell {
	v, ok := number(value)
	if !ok || v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return placeholder()
	}
	return Cell{Kind: KindCount, Text: "(" + groupThousands(v) + ")"}
}

// groupThousands rounds v and formats it with English digit grouping: 12345 -> "12,345".
func groupThousands(v float64) string {
	p := message.NewPrinter(language.English)
	return p.Sprintf("%d", int64(math.Round(v)))
}

func number(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func stringify(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case json.Number:
		return v.String(), true
	case bool:
		return strconv.FormatBool(v), true
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return "", false
		}
		return string(b), true
	}
}

// truthy follows the loose notion of presence used by the fallback layout:
// nil, "", 0 and false are all treated as missing.
func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case string:
		return v != ""
	case bool:
		return v
	default:
		if n, ok := number(v); ok {
			return n != 0 && !math.IsNaN(n)
		}
		return true
	}
}
