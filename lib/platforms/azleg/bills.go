package azleg

import (
	"context"
	"time"

	"azlegapi/lib/xmlrecord"

	"github.com/beevik/etree"
)

// BillInfo returns a bill with its sponsors and documents.
func (c *Client) BillInfo(ctx context.Context, sessionID int, billNumber string) (xmlrecord.Record, error) {
	return query(ctx, c, "BillInfo", []any{sessionID, billNumber}, func(payload *etree.Element) (xmlrecord.Record, error) {
		bill, err := single(payload, "BILL")
		if err != nil {
			return nil, err
		}
		return billShape.Map(bill)
	})
}

func (c *Client) BillsBySessionID(ctx context.Context, sessionID int) (xmlrecord.Record, error) {
	return query(
		ctx, c, "BillsBySessionID", []any{sessionID},
		collection(xmlrecord.Record{"session_id": sessionID}, "bills", billSummaryShape),
	)
}

// UpdatedBills lists the bills of a session updated since the given time.
func (c *Client) UpdatedBills(ctx context.Context, sessionID int, since time.Time) (xmlrecord.Record, error) {
	return query(
		ctx, c, "BillsUpdated", []any{sessionID, since},
		collection(xmlrecord.Record{"session_id": sessionID, "since": since}, "bills", billSummaryShape),
	)
}

func (c *Client) SponsoredBills(ctx context.Context, sessionID, memberID int) (xmlrecord.Record, error) {
	return query(ctx, c, "SponsoredBills", []any{sessionID, memberID}, func(payload *etree.Element) (xmlrecord.Record, error) {
		sponsor, err := single(payload, "SPONSOR")
		if err != nil {
			return nil, err
		}
		member, err := sponsorMemberTable.Map(sponsor)
		if err != nil {
			return nil, err
		}
		bills, err := sponsoredBillShape.MapChildren(sponsor, "")
		if err != nil {
			return nil, err
		}
		return xmlrecord.Record{
			"session_id": sessionID,
			"member":     member,
			"bills":      bills,
		}, nil
	})
}

func (c *Client) BillPositionsByDate(ctx context.Context, date time.Time) ([]xmlrecord.Record, error) {
	return query(ctx, c, "BillPositionsByDate", []any{date}, genericList)
}

func (c *Client) BillPositionsBySession(ctx context.Context, sessionID int, from *time.Time) (xmlrecord.Record, error) {
	operation, args := dated("BillPositionsBySession", "BillPositionsBySessionFromDate", from, sessionID)
	return query(
		ctx, c, operation, args,
		genericCollection(xmlrecord.Record{"session_id": sessionID}, "positions"),
	)
}
