package azleg

import (
	"context"
	"time"

	"azlegapi/lib/xmlrecord"

	"github.com/beevik/etree"
)

func (c *Client) AgendasByCommitteeID(ctx context.Context, sessionID, committeeID int, from *time.Time) (xmlrecord.Record, error) {
	operation, args := dated("AgendaByCommitteeID", "AgendaByCommitteeIDFromDate", from, sessionID, committeeID)
	return query(
		ctx, c, operation, args,
		genericCollection(xmlrecord.Record{"session_id": sessionID, "committee_id": committeeID}, "agendas"),
	)
}

func (c *Client) AgendaByID(ctx context.Context, agendaID int) (xmlrecord.Record, error) {
	return query(ctx, c, "AgendaByID", []any{agendaID}, func(payload *etree.Element) (xmlrecord.Record, error) {
		return xmlrecord.Generic(payload), nil
	})
}

func (c *Client) AgendasBySessionID(ctx context.Context, sessionID int, from *time.Time) (xmlrecord.Record, error) {
	operation, args := dated("AgendaBySessionID", "AgendaBySessionIDFromDate", from, sessionID)
	return query(
		ctx, c, operation, args,
		genericCollection(xmlrecord.Record{"session_id": sessionID}, "agendas"),
	)
}

func (c *Client) VideosByDate(ctx context.Context, date time.Time) ([]xmlrecord.Record, error) {
	return query(ctx, c, "VideosByDate", []any{date}, genericList)
}

func (c *Client) VideosBySession(ctx context.Context, sessionID int) (xmlrecord.Record, error) {
	return query(
		ctx, c, "VideosBySession", []any{sessionID},
		genericCollection(xmlrecord.Record{"session_id": sessionID}, "videos"),
	)
}

// ARS lists the Arizona Revised Statutes documents.
func (c *Client) ARS(ctx context.Context) ([]xmlrecord.Record, error) {
	return query(ctx, c, "ARS", nil, genericList)
}
