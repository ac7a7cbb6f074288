// Package azleg is a client for the Arizona Legislature legislative
// information service. Every method calls one remote operation and reshapes
// its response into plain records.
package azleg

import (
	"context"
	"errors"
	"fmt"
	"time"

	"azlegapi/lib/soap"
	"azlegapi/lib/telemetry"
	"azlegapi/lib/xmlrecord"

	"github.com/beevik/etree"
	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("platforms/azleg")

const (
	report_client_map_response = "client.map-response"
)

var (
	ErrInvalidCommitteeKind = errors.New("invalid committee kind")
	ErrInvalidBody          = errors.New("invalid body")
)

var validate = validator.New()

// CommitteeKind is the committee type code used by the service.
type CommitteeKind string

const (
	KindSitting   CommitteeKind = "S"
	KindFinancial CommitteeKind = "F"
)

func (k CommitteeKind) Validate() error {
	if validate.Var(string(k), "required,oneof=S F") != nil {
		return fmt.Errorf("%w: %q", ErrInvalidCommitteeKind, string(k))
	}
	return nil
}

// Body is a chamber of the legislature.
type Body string

const (
	BodyHouse  Body = "H"
	BodySenate Body = "S"
)

func (b Body) Validate() error {
	if validate.Var(string(b), "required,oneof=H S") != nil {
		return fmt.Errorf("%w: %q", ErrInvalidBody, string(b))
	}
	return nil
}

type Options struct {
	// WSDL defaults to soap.DefaultWSDL.
	WSDL             string
	Username         string
	Password         string
	PasswordDigest   bool
	Timeout          time.Duration
	RateLimit        float64
	Burst            int
	UserAgent        string
	CloudflareBypass bool
	Cache            soap.Cache
	DumpDir          string
	Telemetry        telemetry.API
}

type Client struct {
	soap soap.Caller
	tel  telemetry.API
}

// NewClient fetches the service description and returns a client
// authenticating with a WS-Security UsernameToken. The client is safe for
// concurrent use.
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	tel := opts.Telemetry
	if tel == nil {
		tel = telemetry.SlogAPI{}
	}
	caller, err := soap.NewClient(ctx, soap.Options{
		WSDL: opts.WSDL,
		Security: soap.Security{
			Username: opts.Username,
			Password: opts.Password,
			Digest:   opts.PasswordDigest,
		},
		Timeout:          opts.Timeout,
		RateLimit:        opts.RateLimit,
		Burst:            opts.Burst,
		UserAgent:        opts.UserAgent,
		CloudflareBypass: opts.CloudflareBypass,
		Cache:            opts.Cache,
		DumpDir:          opts.DumpDir,
		Telemetry:        tel,
	})
	if err != nil {
		return nil, fmt.Errorf("azleg: %w", err)
	}
	return New(caller, tel), nil
}

// New wraps an existing caller.
func New(caller soap.Caller, tel telemetry.API) *Client {
	if tel == nil {
		tel = telemetry.SlogAPI{}
	}
	return &Client{
		soap: caller,
		tel:  telemetry.NewScopedAPI("azleg", tel),
	}
}

// Operations lists the remote operations, if the underlying caller knows
// them.
func (c *Client) Operations() []string {
	lister, ok := c.soap.(interface{ Operations() []string })
	if !ok {
		return nil
	}
	return lister.Operations()
}

// Raw calls any remote operation and maps the response without a field
// table.
func (c *Client) Raw(ctx context.Context, operation string, args ...any) (xmlrecord.Record, error) {
	return query(ctx, c, operation, args, func(payload *etree.Element) (xmlrecord.Record, error) {
		return xmlrecord.Generic(payload), nil
	})
}

func query[T any](
	ctx context.Context,
	c *Client,
	operation string,
	args []any,
	mapResponse func(payload *etree.Element) (T, error),
) (T, error) {
	ctx, span := tracer.Start(ctx, fmt.Sprintf("client:%s", operation))
	defer span.End()
	span.SetAttributes(attribute.String("operation", operation))

	var out T
	payload, err := c.soap.Call(ctx, operation, args...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return out, err
	}

	out, err = mapResponse(payload)
	if err != nil {
		err = fmt.Errorf("%s: %w", operation, err)
		c.tel.ReportBroken(report_client_map_response, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return out, err
	}
	return out, nil
}

// single returns the element called `tag`: the payload itself or its first
// child of that name.
func single(payload *etree.Element, tag string) (*etree.Element, error) {
	if payload.Tag == tag {
		return payload, nil
	}
	return xmlrecord.Child(payload, tag)
}

// collection maps every child of the payload with `shape` and stores the list
// under `key` next to the echoed request parameters.
func collection(echo xmlrecord.Record, key string, shape xmlrecord.Shape) func(*etree.Element) (xmlrecord.Record, error) {
	return func(payload *etree.Element) (xmlrecord.Record, error) {
		items, err := shape.MapChildren(payload, "")
		if err != nil {
			return nil, err
		}
		out := make(xmlrecord.Record, len(echo)+1)
		for k, v := range echo {
			out[k] = v
		}
		out[key] = items
		return out, nil
	}
}

// genericCollection is collection for responses without a field table.
func genericCollection(echo xmlrecord.Record, key string) func(*etree.Element) (xmlrecord.Record, error) {
	return func(payload *etree.Element) (xmlrecord.Record, error) {
		out := make(xmlrecord.Record, len(echo)+1)
		for k, v := range echo {
			out[k] = v
		}
		out[key] = xmlrecord.GenericChildren(payload)
		return out, nil
	}
}

func list(shape xmlrecord.Shape) func(*etree.Element) ([]xmlrecord.Record, error) {
	return func(payload *etree.Element) ([]xmlrecord.Record, error) {
		return shape.MapChildren(payload, "")
	}
}

func genericList(payload *etree.Element) ([]xmlrecord.Record, error) {
	return xmlrecord.GenericChildren(payload), nil
}

// dated picks the "from date" variant of an operation when a date is given.
func dated(base, withDate string, date *time.Time, args ...any) (string, []any) {
	if date == nil {
		return base, args
	}
	return withDate, append(args, *date)
}
