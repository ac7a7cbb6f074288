package azleg

import (
	"context"

	"azlegapi/lib/xmlrecord"

	"github.com/beevik/etree"
)

// ActionFilter qualifies CommitteeActions by body and committee kind.
type ActionFilter struct {
	Body Body
	Kind CommitteeKind
}

// CommitteeActions lists the actions a committee can take, all of them when
// filter is nil.
func (c *Client) CommitteeActions(ctx context.Context, filter *ActionFilter) ([]xmlrecord.Record, error) {
	if filter == nil {
		return query(ctx, c, "CommitteeActions", nil, list(committeeActionShape))
	}
	err := filter.Body.Validate()
	if err != nil {
		return nil, err
	}
	err = filter.Kind.Validate()
	if err != nil {
		return nil, err
	}
	return query(
		ctx, c, "CommitteeActionsQualified",
		[]any{string(filter.Body), string(filter.Kind)},
		list(committeeActionShape),
	)
}

// flattened maps committees grouped under `levels`, then stamps `fixed` onto
// every committee.
func flattened(levels []xmlrecord.Level, fixed xmlrecord.Record) func(*etree.Element) ([]xmlrecord.Record, error) {
	return func(payload *etree.Element) ([]xmlrecord.Record, error) {
		committees, err := xmlrecord.Flatten(payload, levels, committeeShape, "")
		if err != nil {
			return nil, err
		}
		for _, committee := range committees {
			for k, v := range fixed {
				committee[k] = v
			}
		}
		return committees, nil
	}
}

// CommitteesByLegislature returns every committee of a legislature, annotated
// with its type and body.
func (c *Client) CommitteesByLegislature(ctx context.Context, legislatureID int) ([]xmlrecord.Record, error) {
	return query(
		ctx, c, "CommitteesByLegID", []any{legislatureID},
		flattened([]xmlrecord.Level{committeeTypeLevel, committeeBodyLevel}, nil),
	)
}

// CurrentCommittees returns the committees of the current legislature.
func (c *Client) CurrentCommittees(ctx context.Context) ([]xmlrecord.Record, error) {
	return query(
		ctx, c, "CommitteesByLeg", nil,
		flattened([]xmlrecord.Level{committeeTypeLevel, committeeBodyLevel}, nil),
	)
}

func (c *Client) CommitteesByLegType(ctx context.Context, legislatureID int, kind CommitteeKind) ([]xmlrecord.Record, error) {
	err := kind.Validate()
	if err != nil {
		return nil, err
	}
	return query(
		ctx, c, "CommitteesByLegType", []any{legislatureID, string(kind)},
		flattened([]xmlrecord.Level{committeeBodyLevel}, xmlrecord.Record{"type": string(kind)}),
	)
}

func (c *Client) CommitteesByLegBody(ctx context.Context, legislatureID int, body Body) ([]xmlrecord.Record, error) {
	err := body.Validate()
	if err != nil {
		return nil, err
	}
	return query(
		ctx, c, "CommitteesByLegBody", []any{legislatureID, string(body)},
		flattened([]xmlrecord.Level{committeeTypeLevel}, xmlrecord.Record{"body": string(body)}),
	)
}

func (c *Client) CommitteesByLegTypeBody(ctx context.Context, legislatureID int, kind CommitteeKind, body Body) ([]xmlrecord.Record, error) {
	err := kind.Validate()
	if err != nil {
		return nil, err
	}
	err = body.Validate()
	if err != nil {
		return nil, err
	}
	return query(
		ctx, c, "CommitteesByLegTypeBody", []any{legislatureID, string(kind), string(body)},
		flattened(nil, xmlrecord.Record{"type": string(kind), "body": string(body)}),
	)
}

// CommitteeMembers returns one record per member, annotated with the
// committee it sits on.
func (c *Client) CommitteeMembers(ctx context.Context, sessionID, committeeID int) ([]xmlrecord.Record, error) {
	return query(ctx, c, "CommitteeMembers", []any{sessionID, committeeID}, func(payload *etree.Element) ([]xmlrecord.Record, error) {
		return xmlrecord.Flatten(payload, []xmlrecord.Level{committeeMemberLevel}, committeeMemberShape, "")
	})
}
