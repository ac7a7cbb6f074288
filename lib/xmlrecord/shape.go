package xmlrecord

import (
	"strings"

	"github.com/beevik/etree"
)

// List maps the element children of a container into a list of records.
type List struct {
	Key string
	// Path is a slash separated chain of child tags leading to the container,
	// empty means the element itself holds the items.
	Path string
	// Tag filters the items, empty means every element child.
	Tag string
	// Optional lists map to an empty list when the container is missing.
	Optional bool
	Item     Shape
}

// Shape is a table of fields plus any nested lists.
type Shape struct {
	Fields Table
	Lists  []List
}

func (s Shape) Map(el *etree.Element) (Record, error) {
	out := make(Record, len(s.Fields)+len(s.Lists))
	err := s.Fields.MapInto(out, el)
	if err != nil {
		return nil, err
	}
	for _, list := range s.Lists {
		items, err := list.Map(el)
		if err != nil {
			return nil, err
		}
		out[list.Key] = items
	}
	return out, nil
}

func (l List) Map(el *etree.Element) ([]Record, error) {
	container := el
	if l.Path != "" {
		var err error
		container, err = Child(el, l.Path)
		if err != nil {
			if l.Optional {
				return []Record{}, nil
			}
			return nil, err
		}
	}
	return l.Item.MapChildren(container, l.Tag)
}

// MapChildren maps every element child of `el` (filtered by `tag` when it is
// not empty) in document order.
func (s Shape) MapChildren(el *etree.Element, tag string) ([]Record, error) {
	children := Children(el, tag)
	out := make([]Record, 0, len(children))
	for _, child := range children {
		rec, err := s.Map(child)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// Children returns the element children of el with the given tag, or all of
// them when tag is empty.
func Children(el *etree.Element, tag string) []*etree.Element {
	if tag == "" {
		return el.ChildElements()
	}
	return el.SelectElements(tag)
}

// Child follows a slash separated chain of child tags.
func Child(el *etree.Element, path string) (*etree.Element, error) {
	current := el
	for _, tag := range strings.Split(path, "/") {
		next := current.SelectElement(tag)
		if next == nil {
			return nil, &FieldError{Element: current.Tag, Field: tag, Err: ErrMissingElement}
		}
		current = next
	}
	return current, nil
}

// Level is one grouping level of a nested response. Its fields are read from
// the group element and copied onto every leaf beneath it.
type Level struct {
	Tag    string
	Fields Table
}

// Flatten walks `levels` of grouping elements under `el` and returns one
// record per leaf (the element children of the innermost group), in document
// order, each carrying the fields of its enclosing groups.
func Flatten(el *etree.Element, levels []Level, leaf Shape, leafTag string) ([]Record, error) {
	out := []Record{}
	err := flatten(el, levels, leaf, leafTag, Record{}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func flatten(el *etree.Element, levels []Level, leaf Shape, leafTag string, inherited Record, out *[]Record) error {
	if len(levels) == 0 {
		for _, child := range Children(el, leafTag) {
			rec, err := leaf.Map(child)
			if err != nil {
				return err
			}
			for k, v := range inherited {
				rec[k] = v
			}
			*out = append(*out, rec)
		}
		return nil
	}

	level := levels[0]
	for _, group := range Children(el, level.Tag) {
		scope := make(Record, len(inherited)+len(level.Fields))
		for k, v := range inherited {
			scope[k] = v
		}
		err := level.Fields.MapInto(scope, group)
		if err != nil {
			return err
		}
		err = flatten(group, levels[1:], leaf, leafTag, scope, out)
		if err != nil {
			return err
		}
	}
	return nil
}
