package soap

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// Fault is a SOAP 1.1 fault returned by the service.
type Fault struct {
	Operation string
	Code      string
	String    string
	Actor     string
	Detail    string
}

func (f *Fault) Error() string {
	if f.Detail != "" {
		return fmt.Sprintf("%s: soap fault %s: %s (%s)", f.Operation, f.Code, f.String, f.Detail)
	}
	return fmt.Sprintf("%s: soap fault %s: %s", f.Operation, f.Code, f.String)
}

// HTTPError is a non 2xx response that did not carry a fault.
type HTTPError struct {
	Operation  string
	StatusCode int
	Status     string
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s: unexpected http status %s", e.Operation, e.Status)
}

func childText(el *etree.Element, tag string) string {
	child := el.SelectElement(tag)
	if child == nil {
		return ""
	}
	return strings.TrimSpace(child.Text())
}

func parseFault(operation string, el *etree.Element) *Fault {
	fault := &Fault{
		Operation: operation,
		Code:      childText(el, "faultcode"),
		String:    childText(el, "faultstring"),
		Actor:     childText(el, "faultactor"),
	}
	detail := el.SelectElement("detail")
	if detail == nil {
		return fault
	}
	if len(detail.ChildElements()) == 0 {
		fault.Detail = strings.TrimSpace(detail.Text())
		return fault
	}
	doc := etree.NewDocument()
	for _, child := range detail.ChildElements() {
		doc.AddChild(child.Copy())
	}
	contents, err := doc.WriteToString()
	if err == nil {
		fault.Detail = strings.TrimSpace(contents)
	}
	return fault
}
