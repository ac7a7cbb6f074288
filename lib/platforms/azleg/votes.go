package azleg

import (
	"context"
	"time"

	"azlegapi/lib/xmlrecord"
)

// vote transactions are stored under this key for every floor and standing
// committee vote operation
const transactionsKey = "transactions"

func (c *Client) FloorVotesByBill(ctx context.Context, sessionID int, billNumber string, from *time.Time) (xmlrecord.Record, error) {
	operation, args := dated("FloorVotesByBill", "FloorVotesByBillFromDate", from, sessionID, billNumber)
	return query(
		ctx, c, operation, args,
		collection(xmlrecord.Record{"session_id": sessionID}, transactionsKey, transactionShape),
	)
}

func (c *Client) FloorVotesByCommitteeID(ctx context.Context, sessionID, committeeID int) (xmlrecord.Record, error) {
	return query(
		ctx, c, "FloorVotesByCommitteeID", []any{sessionID, committeeID},
		collection(xmlrecord.Record{"session_id": sessionID, "committee_id": committeeID}, transactionsKey, transactionShape),
	)
}

func (c *Client) FloorVotesBySessionID(ctx context.Context, sessionID int) (xmlrecord.Record, error) {
	return query(
		ctx, c, "FloorVotesBySessionID", []any{sessionID},
		collection(xmlrecord.Record{"session_id": sessionID}, transactionsKey, transactionShape),
	)
}

func (c *Client) FloorVotesFromDate(ctx context.Context, sessionID int, from time.Time) (xmlrecord.Record, error) {
	return query(
		ctx, c, "FloorVotesFromDate", []any{sessionID, from},
		collection(xmlrecord.Record{"session_id": sessionID}, transactionsKey, transactionShape),
	)
}

func (c *Client) FloorVotesFromDateToDate(ctx context.Context, sessionID int, from, to time.Time) (xmlrecord.Record, error) {
	return query(
		ctx, c, "FloorVotesFromDateToDate", []any{sessionID, from, to},
		collection(xmlrecord.Record{"session_id": sessionID}, transactionsKey, transactionShape),
	)
}

func (c *Client) FloorVotesByDate(ctx context.Context, date time.Time) (xmlrecord.Record, error) {
	return query(
		ctx, c, "FloorVotesByDate", []any{date},
		collection(xmlrecord.Record{"date": date}, transactionsKey, transactionShape),
	)
}

func (c *Client) StandingByBillNum(ctx context.Context, sessionID int, billNumber string) (xmlrecord.Record, error) {
	return query(
		ctx, c, "StandingByBillNum", []any{sessionID, billNumber},
		collection(xmlrecord.Record{"session_id": sessionID}, transactionsKey, transactionShape),
	)
}

func (c *Client) StandingByCommittee(ctx context.Context, sessionID, committeeID int, from *time.Time) (xmlrecord.Record, error) {
	operation, args := dated("StandingByCommittee", "StandingByCommitteeFromDate", from, sessionID, committeeID)
	return query(
		ctx, c, operation, args,
		collection(xmlrecord.Record{"session_id": sessionID, "committee_id": committeeID}, transactionsKey, transactionShape),
	)
}

func (c *Client) StandingBySession(ctx context.Context, sessionID int) (xmlrecord.Record, error) {
	return query(
		ctx, c, "StandingBySession", []any{sessionID},
		collection(xmlrecord.Record{"session_id": sessionID}, transactionsKey, transactionShape),
	)
}

func (c *Client) StandingFromDate(ctx context.Context, sessionID int, from time.Time) (xmlrecord.Record, error) {
	return query(
		ctx, c, "StandingFromDate", []any{sessionID, from},
		collection(xmlrecord.Record{"session_id": sessionID}, transactionsKey, transactionShape),
	)
}

func (c *Client) StandingFromDateToDate(ctx context.Context, from, to time.Time) (xmlrecord.Record, error) {
	return query(
		ctx, c, "StandingFromDateToDate", []any{from, to},
		collection(nil, transactionsKey, transactionShape),
	)
}

func (c *Client) StandingVoteForBill(ctx context.Context, sessionID int, billNumber string) (xmlrecord.Record, error) {
	return query(
		ctx, c, "StandingVoteForBill", []any{sessionID, billNumber},
		collection(xmlrecord.Record{"session_id": sessionID}, transactionsKey, transactionShape),
	)
}

// StandingVoteByCommittee calls StandingVoteByCommitteeOnDate when a date is
// given.
func (c *Client) StandingVoteByCommittee(ctx context.Context, sessionID, committeeID int, date *time.Time) (xmlrecord.Record, error) {
	operation, args := dated("StandingVoteByCommittee", "StandingVoteByCommitteeOnDate", date, sessionID, committeeID)
	return query(
		ctx, c, operation, args,
		collection(xmlrecord.Record{"session_id": sessionID, "committee_id": committeeID}, transactionsKey, transactionShape),
	)
}

func (c *Client) StandingVoteOnDate(ctx context.Context, date time.Time) (xmlrecord.Record, error) {
	return query(
		ctx, c, "StandingVoteOnDate", []any{date},
		collection(xmlrecord.Record{"date": date}, transactionsKey, transactionShape),
	)
}
