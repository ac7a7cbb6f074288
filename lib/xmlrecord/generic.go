package xmlrecord

import (
	"strings"

	"github.com/beevik/etree"
	"github.com/iancoleman/strcase"
	"github.com/samber/lo"
)

// Generic maps an element without a field table: attributes become snake_case
// keys, element children are grouped into lists under their snake_case tag and
// the text of a leaf element is kept under "text".
func Generic(el *etree.Element) Record {
	out := make(Record, len(el.Attr))
	for _, attr := range el.Attr {
		if attr.Space == "xmlns" || (attr.Space == "" && attr.Key == "xmlns") {
			continue
		}
		out[strcase.ToSnake(attr.Key)] = attr.Value
	}

	children := el.ChildElements()
	if len(children) == 0 {
		text := strings.TrimSpace(el.Text())
		if text != "" {
			out["text"] = text
		}
		return out
	}

	for _, child := range children {
		key := strcase.ToSnake(child.Tag)
		// attributes keep their key, children move aside until a free or list key
		for value, taken := out[key]; taken && !isList(value); value, taken = out[key] {
			key += "_items"
		}
		list, _ := out[key].([]Record)
		out[key] = append(list, Generic(child))
	}
	return out
}

// GenericChildren maps every element child of el with Generic.
func GenericChildren(el *etree.Element) []Record {
	return lo.Map(el.ChildElements(), func(child *etree.Element, _ int) Record {
		return Generic(child)
	})
}

func isList(v any) bool {
	_, ok := v.([]Record)
	return ok
}
