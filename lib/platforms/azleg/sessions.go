package azleg

import (
	"context"

	"azlegapi/lib/xmlrecord"

	"github.com/beevik/etree"
)

func (c *Client) Sessions(ctx context.Context) ([]xmlrecord.Record, error) {
	return query(ctx, c, "Sessions", nil, list(sessionShape))
}

func (c *Client) SessionByID(ctx context.Context, sessionID int) (xmlrecord.Record, error) {
	return query(ctx, c, "SessionsbyID", []any{sessionID}, func(payload *etree.Element) (xmlrecord.Record, error) {
		session, err := single(payload, "SESSION")
		if err != nil {
			return nil, err
		}
		return sessionShape.Map(session)
	})
}
