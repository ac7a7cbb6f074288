package azleg

import (
	"context"

	"azlegapi/lib/xmlrecord"

	"github.com/beevik/etree"
)

func (c *Client) MemberCommittees(ctx context.Context, sessionID, memberID int) (xmlrecord.Record, error) {
	return query(
		ctx, c, "MemberCommittees", []any{sessionID, memberID},
		collection(xmlrecord.Record{"session_id": sessionID, "member_id": memberID}, "committees", memberCommitteeShape),
	)
}

func (c *Client) MemberByID(ctx context.Context, sessionID, memberID int) (xmlrecord.Record, error) {
	return query(ctx, c, "MemberByID", []any{sessionID, memberID}, func(payload *etree.Element) (xmlrecord.Record, error) {
		if payload.SelectAttr("Member_ID") == nil {
			children := payload.ChildElements()
			if len(children) > 0 {
				payload = children[0]
			}
		}
		return memberShape.Map(payload)
	})
}

func (c *Client) MembersBySessionID(ctx context.Context, sessionID int) (xmlrecord.Record, error) {
	return query(
		ctx, c, "MembersBySessionID", []any{sessionID},
		collection(xmlrecord.Record{"session_id": sessionID}, "members", memberShape),
	)
}
