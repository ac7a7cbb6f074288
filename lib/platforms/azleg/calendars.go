package azleg

import (
	"context"
	"time"

	"azlegapi/lib/xmlrecord"

	"github.com/beevik/etree"
)

func (c *Client) CalendarsByBody(ctx context.Context, sessionID int, body Body) (xmlrecord.Record, error) {
	err := body.Validate()
	if err != nil {
		return nil, err
	}
	return query(
		ctx, c, "CalendarsByBody", []any{sessionID, string(body)},
		collection(xmlrecord.Record{"session_id": sessionID, "body": string(body)}, "calendars", calendarShape),
	)
}

func (c *Client) CalendarByID(ctx context.Context, calendarID int) (xmlrecord.Record, error) {
	return query(ctx, c, "CalendarsByCalendarID", []any{calendarID}, func(payload *etree.Element) (xmlrecord.Record, error) {
		calendar, err := single(payload, "CALENDAR")
		if err != nil {
			return nil, err
		}
		return calendarShape.Map(calendar)
	})
}

func (c *Client) CalendarsByCommitteeID(ctx context.Context, sessionID, committeeID int) (xmlrecord.Record, error) {
	return query(
		ctx, c, "CalendarsByCommittee", []any{sessionID, committeeID},
		collection(xmlrecord.Record{"session_id": sessionID, "committee_id": committeeID}, "calendars", calendarShape),
	)
}

func (c *Client) CalendarsBySessionID(ctx context.Context, sessionID int, from *time.Time) (xmlrecord.Record, error) {
	operation, args := dated("CalendarsBySessionID", "CalendarsFromDate", from, sessionID)
	return query(
		ctx, c, operation, args,
		collection(xmlrecord.Record{"session_id": sessionID}, "calendars", calendarShape),
	)
}
