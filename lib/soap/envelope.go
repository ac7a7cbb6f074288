package soap

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"time"

	"azlegapi/lib/timezone"
	"azlegapi/lib/xmlrecord"

	"github.com/beevik/etree"
)

const envelopeNS = "http://schemas.xmlsoap.org/soap/envelope/"

// DateTimeLayout is how time.Time arguments are sent, as Arizona wall clock
// time.
const DateTimeLayout = "2006-01-02T15:04:05"

var (
	ErrTooManyArgs    = errors.New("too many arguments")
	ErrUnsupportedArg = errors.New("unsupported argument type")
)

// formatArg renders a call argument. The bool result is false for nil
// values, which are left out of the request.
func formatArg(arg any) (string, bool, error) {
	switch v := arg.(type) {
	case nil:
		return "", false, nil
	case string:
		return v, true, nil
	case bool:
		return strconv.FormatBool(v), true, nil
	case time.Time:
		return v.In(timezone.Location).Format(DateTimeLayout), true, nil
	case *time.Time:
		if v == nil {
			return "", false, nil
		}
		return formatArg(*v)
	case *string:
		if v == nil {
			return "", false, nil
		}
		return *v, true, nil
	case fmt.Stringer:
		return v.String(), true, nil
	}

	value := reflect.ValueOf(arg)
	switch value.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(value.Int(), 10), true, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(value.Uint(), 10), true, nil
	case reflect.String:
		return value.String(), true, nil
	case reflect.Pointer:
		if value.IsNil() {
			return "", false, nil
		}
		return formatArg(value.Elem().Interface())
	}
	return "", false, fmt.Errorf("%w: %T", ErrUnsupportedArg, arg)
}

// buildEnvelope binds positional arguments to the input wrapper's parameters
// in order.
func buildEnvelope(def *Definition, op Operation, args []any, security Security, now time.Time) (*etree.Document, error) {
	if len(args) > len(op.Params) {
		return nil, fmt.Errorf(
			"%w: %s takes %d, got %d",
			ErrTooManyArgs, op.Name, len(op.Params), len(args),
		)
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="utf-8"`)
	envelope := doc.CreateElement("soap:Envelope")
	envelope.CreateAttr("xmlns:soap", envelopeNS)

	if !security.empty() {
		header := envelope.CreateElement("soap:Header")
		err := security.apply(header, now)
		if err != nil {
			return nil, err
		}
	}

	body := envelope.CreateElement("soap:Body")
	request := body.CreateElement("tns:" + op.InputElement)
	request.CreateAttr("xmlns:tns", def.TargetNamespace)
	for i, arg := range args {
		value, present, err := formatArg(arg)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", op.Name, op.Params[i], err)
		}
		if !present {
			continue
		}
		request.CreateElement("tns:" + op.Params[i]).SetText(value)
	}
	return doc, nil
}

// readEnvelope returns the payload of a response envelope: the first element
// child of <Op>Result, or the result element itself when it holds only text.
func readEnvelope(op Operation, data []byte) (*etree.Element, *Fault, error) {
	doc := etree.NewDocument()
	err := doc.ReadFromBytes(data)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: read response: %w", op.Name, err)
	}
	root := doc.Root()
	if root == nil || root.Tag != "Envelope" {
		return nil, nil, fmt.Errorf("%s: response is not a soap envelope", op.Name)
	}
	body, err := xmlrecord.Child(root, "Body")
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op.Name, err)
	}
	if fault := body.SelectElement("Fault"); fault != nil {
		return nil, parseFault(op.Name, fault), nil
	}

	result, err := xmlrecord.Child(body, op.OutputElement+"/"+op.Name+"Result")
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op.Name, err)
	}
	payload := result.ChildElements()
	if len(payload) > 0 {
		return payload[0], nil, nil
	}
	return result, nil, nil
}
