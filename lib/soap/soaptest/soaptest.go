// Package soaptest runs an in-process SOAP 1.1 service that serves a WSDL
// for a list of operations and answers with canned payloads.
package soaptest

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/beevik/etree"
)

const (
	Namespace = "http://www.azleg.gov/"

	servicePath = "/xml/legservice.asmx"
)

type Operation struct {
	Name   string
	Params []string
}

// Call is a request received by the service.
type Call struct {
	Operation string
	Action    string
	// Params lists the parameter elements in the order they were sent.
	Params       []string
	Args         map[string]string
	Username     string
	Password     string
	PasswordType string
}

type fault struct {
	code    string
	message string
}

type Service struct {
	server *httptest.Server
	wsdl   []byte

	mutex       sync.Mutex
	calls       []Call
	payloads    map[string]string
	faults      map[string]fault
	wsdlFetches int
}

// NewService starts a service exposing `ops`, it is closed when the test
// finishes.
func NewService(t testing.TB, ops ...Operation) *Service {
	s := &Service{
		payloads: map[string]string{},
		faults:   map[string]fault{},
	}
	s.server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.server.Close)

	wsdl, err := buildWSDL(s.server.URL, ops)
	if err != nil {
		t.Fatal(err)
	}
	s.wsdl = wsdl
	return s
}

// URL is where the WSDL is served.
func (s *Service) URL() string {
	return s.server.URL + servicePath + "?WSDL"
}

func (s *Service) WSDL() []byte {
	return s.wsdl
}

// Respond sets the payload placed inside <OperationResult>.
func (s *Service) Respond(operation, payload string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.payloads[operation] = payload
}

func (s *Service) Fault(operation, code, message string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.faults[operation] = fault{code: code, message: message}
}

func (s *Service) Calls() []Call {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return append([]Call(nil), s.calls...)
}

// Operations returns the name of every call received, in order.
func (s *Service) Operations() []string {
	var names []string
	for _, call := range s.Calls() {
		names = append(names, call.Operation)
	}
	return names
}

func (s *Service) WSDLFetches() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.wsdlFetches
}

func (s *Service) handle(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != servicePath {
		http.NotFound(w, r)
		return
	}

	if r.Method == http.MethodGet {
		s.mutex.Lock()
		s.wsdlFetches++
		s.mutex.Unlock()
		w.Header().Set("Content-Type", "text/xml; charset=utf-8")
		w.Write(s.wsdl)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	call, err := parseCall(body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	call.Action = strings.Trim(r.Header.Get("SOAPAction"), `"`)

	s.mutex.Lock()
	s.calls = append(s.calls, call)
	payload := s.payloads[call.Operation]
	f, faulted := s.faults[call.Operation]
	s.mutex.Unlock()

	w.Header().Set("Content-Type", "text/xml; charset=utf-8")
	if faulted {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprintf(
			w,
			`<?xml version="1.0" encoding="utf-8"?><soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/"><soap:Body><soap:Fault><faultcode>%s</faultcode><faultstring>%s</faultstring><detail /></soap:Fault></soap:Body></soap:Envelope>`,
			f.code, f.message,
		)
		return
	}
	fmt.Fprintf(
		w,
		`<?xml version="1.0" encoding="utf-8"?><soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/"><soap:Body><%[1]sResponse xmlns="%[2]s"><%[1]sResult>%[3]s</%[1]sResult></%[1]sResponse></soap:Body></soap:Envelope>`,
		call.Operation, Namespace, payload,
	)
}

func parseCall(body []byte) (Call, error) {
	doc := etree.NewDocument()
	err := doc.ReadFromBytes(body)
	if err != nil {
		return Call{}, err
	}
	envelope := doc.SelectElement("Envelope")
	if envelope == nil {
		return Call{}, fmt.Errorf("missing envelope")
	}
	soapBody := envelope.SelectElement("Body")
	if soapBody == nil || len(soapBody.ChildElements()) == 0 {
		return Call{}, fmt.Errorf("missing body")
	}
	request := soapBody.ChildElements()[0]

	call := Call{
		Operation: request.Tag,
		Args:      map[string]string{},
	}
	for _, param := range request.ChildElements() {
		call.Params = append(call.Params, param.Tag)
		call.Args[param.Tag] = param.Text()
	}

	header := envelope.SelectElement("Header")
	if header == nil {
		return call, nil
	}
	security := header.SelectElement("Security")
	if security == nil {
		return call, nil
	}
	token := security.SelectElement("UsernameToken")
	if token == nil {
		return call, nil
	}
	if username := token.SelectElement("Username"); username != nil {
		call.Username = username.Text()
	}
	if password := token.SelectElement("Password"); password != nil {
		call.Password = password.Text()
		call.PasswordType = password.SelectAttrValue("Type", "")
	}
	return call, nil
}

// buildWSDL describes `ops` the way an ASMX service does: a SOAP 1.2 binding
// listed before the SOAP 1.1 one, each with its own port.
func buildWSDL(baseUrl string, ops []Operation) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="utf-8"`)
	defs := doc.CreateElement("wsdl:definitions")
	defs.CreateAttr("xmlns:wsdl", "http://schemas.xmlsoap.org/wsdl/")
	defs.CreateAttr("xmlns:soap", "http://schemas.xmlsoap.org/wsdl/soap/")
	defs.CreateAttr("xmlns:soap12", "http://schemas.xmlsoap.org/wsdl/soap12/")
	defs.CreateAttr("xmlns:s", "http://www.w3.org/2001/XMLSchema")
	defs.CreateAttr("xmlns:tns", Namespace)
	defs.CreateAttr("targetNamespace", Namespace)

	schema := defs.CreateElement("wsdl:types").CreateElement("s:schema")
	schema.CreateAttr("elementFormDefault", "qualified")
	schema.CreateAttr("targetNamespace", Namespace)
	for _, op := range ops {
		sequence := schema.CreateElement("s:element")
		sequence.CreateAttr("name", op.Name)
		seq := sequence.CreateElement("s:complexType").CreateElement("s:sequence")
		for _, param := range op.Params {
			el := seq.CreateElement("s:element")
			el.CreateAttr("minOccurs", "0")
			el.CreateAttr("maxOccurs", "1")
			el.CreateAttr("name", param)
			el.CreateAttr("type", "s:string")
		}

		response := schema.CreateElement("s:element")
		response.CreateAttr("name", op.Name+"Response")
		result := response.CreateElement("s:complexType").CreateElement("s:sequence").CreateElement("s:element")
		result.CreateAttr("minOccurs", "0")
		result.CreateAttr("maxOccurs", "1")
		result.CreateAttr("name", op.Name+"Result")
	}

	for _, op := range ops {
		in := defs.CreateElement("wsdl:message")
		in.CreateAttr("name", op.Name+"SoapIn")
		inPart := in.CreateElement("wsdl:part")
		inPart.CreateAttr("name", "parameters")
		inPart.CreateAttr("element", "tns:"+op.Name)

		out := defs.CreateElement("wsdl:message")
		out.CreateAttr("name", op.Name+"SoapOut")
		outPart := out.CreateElement("wsdl:part")
		outPart.CreateAttr("name", "parameters")
		outPart.CreateAttr("element", "tns:"+op.Name+"Response")
	}

	portType := defs.CreateElement("wsdl:portType")
	portType.CreateAttr("name", "LegServiceSoap")
	for _, op := range ops {
		operation := portType.CreateElement("wsdl:operation")
		operation.CreateAttr("name", op.Name)
		operation.CreateElement("wsdl:input").CreateAttr("message", "tns:"+op.Name+"SoapIn")
		operation.CreateElement("wsdl:output").CreateAttr("message", "tns:"+op.Name+"SoapOut")
	}

	for _, prefix := range []string{"soap12", "soap"} {
		bindingName := "LegServiceSoap"
		if prefix == "soap12" {
			bindingName = "LegServiceSoap12"
		}
		binding := defs.CreateElement("wsdl:binding")
		binding.CreateAttr("name", bindingName)
		binding.CreateAttr("type", "tns:LegServiceSoap")
		binding.CreateElement(prefix+":binding").CreateAttr("transport", "http://schemas.xmlsoap.org/soap/http")
		for _, op := range ops {
			operation := binding.CreateElement("wsdl:operation")
			operation.CreateAttr("name", op.Name)
			soapOp := operation.CreateElement(prefix + ":operation")
			soapOp.CreateAttr("soapAction", Namespace+op.Name)
			soapOp.CreateAttr("style", "document")
			operation.CreateElement("wsdl:input").CreateElement(prefix+":body").CreateAttr("use", "literal")
			operation.CreateElement("wsdl:output").CreateElement(prefix+":body").CreateAttr("use", "literal")
		}
	}

	service := defs.CreateElement("wsdl:service")
	service.CreateAttr("name", "LegService")
	for _, prefix := range []string{"soap12", "soap"} {
		port := service.CreateElement("wsdl:port")
		location := baseUrl + servicePath
		if prefix == "soap12" {
			port.CreateAttr("name", "LegServiceSoap12")
			port.CreateAttr("binding", "tns:LegServiceSoap12")
			location = baseUrl + "/soap12" + servicePath
		} else {
			port.CreateAttr("name", "LegServiceSoap")
			port.CreateAttr("binding", "tns:LegServiceSoap")
		}
		port.CreateElement(prefix+":address").CreateAttr("location", location)
	}

	doc.Indent(2)
	return doc.WriteToBytes()
}
