package soap

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/beevik/etree"
)

const (
	wsdlNS   = "http://schemas.xmlsoap.org/wsdl/"
	soap11NS = "http://schemas.xmlsoap.org/wsdl/soap/"
)

var ErrInvalidWSDL = errors.New("invalid wsdl")

// Operation is a document/literal operation of the SOAP 1.1 binding.
type Operation struct {
	Name   string
	Action string
	// InputElement wraps the request parameters, OutputElement the response.
	InputElement  string
	OutputElement string
	// Params are the child elements of the input wrapper in schema order.
	Params []string
}

// Definition is the subset of a WSDL needed to call its SOAP 1.1 port.
type Definition struct {
	TargetNamespace string
	Service         string
	Address         string
	operations      map[string]Operation
}

func (d *Definition) Operation(name string) (Operation, bool) {
	op, ok := d.operations[name]
	return op, ok
}

// Operations returns every operation name, sorted.
func (d *Definition) Operations() []string {
	names := make([]string, 0, len(d.operations))
	for name := range d.operations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func localName(qname string) string {
	return qname[strings.LastIndex(qname, ":")+1:]
}

func childElements(el *etree.Element, tag string) []*etree.Element {
	if el == nil {
		return nil
	}
	return el.SelectElements(tag)
}

// schemaSequences maps every top level schema element to the names of the
// elements in its sequence.
func schemaSequences(root *etree.Element) map[string][]string {
	out := map[string][]string{}
	for _, schema := range childElements(root.SelectElement("types"), "schema") {
		for _, element := range schema.SelectElements("element") {
			name := element.SelectAttrValue("name", "")
			if name == "" {
				continue
			}
			var params []string
			complexType := element.SelectElement("complexType")
			if complexType != nil {
				for _, child := range childElements(complexType.SelectElement("sequence"), "element") {
					params = append(params, child.SelectAttrValue("name", ""))
				}
			}
			out[name] = params
		}
	}
	return out
}

func messageElements(root *etree.Element) map[string]string {
	out := map[string]string{}
	for _, message := range root.SelectElements("message") {
		part := message.SelectElement("part")
		if part == nil {
			continue
		}
		out[message.SelectAttrValue("name", "")] = localName(part.SelectAttrValue("element", ""))
	}
	return out
}

func soap11Child(el *etree.Element, tag string) *etree.Element {
	for _, child := range el.SelectElements(tag) {
		if child.NamespaceURI() == soap11NS {
			return child
		}
	}
	return nil
}

// ParseWSDL reads a WSDL 1.1 document and resolves its SOAP 1.1 binding.
func ParseWSDL(data []byte) (*Definition, error) {
	doc := etree.NewDocument()
	err := doc.ReadFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidWSDL, err.Error())
	}
	root := doc.Root()
	if root == nil || root.Tag != "definitions" || root.NamespaceURI() != wsdlNS {
		return nil, fmt.Errorf("%w: root is not wsdl:definitions", ErrInvalidWSDL)
	}

	def := &Definition{
		TargetNamespace: root.SelectAttrValue("targetNamespace", ""),
		operations:      map[string]Operation{},
	}
	sequences := schemaSequences(root)
	messages := messageElements(root)

	var binding *etree.Element
	for _, candidate := range root.SelectElements("binding") {
		if soap11Child(candidate, "binding") != nil {
			binding = candidate
			break
		}
	}
	if binding == nil {
		return nil, fmt.Errorf("%w: no soap 1.1 binding", ErrInvalidWSDL)
	}
	bindingName := binding.SelectAttrValue("name", "")
	portTypeName := localName(binding.SelectAttrValue("type", ""))

	actions := map[string]string{}
	for _, op := range binding.SelectElements("operation") {
		soapOp := soap11Child(op, "operation")
		if soapOp == nil {
			continue
		}
		actions[op.SelectAttrValue("name", "")] = soapOp.SelectAttrValue("soapAction", "")
	}

	for _, portType := range root.SelectElements("portType") {
		if portType.SelectAttrValue("name", "") != portTypeName {
			continue
		}
		for _, op := range portType.SelectElements("operation") {
			name := op.SelectAttrValue("name", "")
			action, bound := actions[name]
			if !bound {
				continue
			}
			operation := Operation{
				Name:          name,
				Action:        action,
				InputElement:  name,
				OutputElement: name + "Response",
			}
			if input := op.SelectElement("input"); input != nil {
				element, ok := messages[localName(input.SelectAttrValue("message", ""))]
				if ok && element != "" {
					operation.InputElement = element
				}
			}
			if output := op.SelectElement("output"); output != nil {
				element, ok := messages[localName(output.SelectAttrValue("message", ""))]
				if ok && element != "" {
					operation.OutputElement = element
				}
			}
			operation.Params = sequences[operation.InputElement]
			def.operations[name] = operation
		}
	}
	if len(def.operations) == 0 {
		return nil, fmt.Errorf("%w: binding %s has no operations", ErrInvalidWSDL, bindingName)
	}

	for _, service := range root.SelectElements("service") {
		for _, port := range service.SelectElements("port") {
			if localName(port.SelectAttrValue("binding", "")) != bindingName {
				continue
			}
			address := soap11Child(port, "address")
			if address == nil {
				continue
			}
			def.Service = service.SelectAttrValue("name", "")
			def.Address = address.SelectAttrValue("location", "")
		}
	}
	if def.Address == "" {
		return nil, fmt.Errorf("%w: no soap 1.1 address for binding %s", ErrInvalidWSDL, bindingName)
	}

	return def, nil
}
