package azleg

import (
	"context"
	"time"

	"azlegapi/lib/xmlrecord"
)

func (c *Client) DocumentsByBillNum(ctx context.Context, sessionID int, billNumber string) (xmlrecord.Record, error) {
	return query(
		ctx, c, "DocumentsByBillNum", []any{sessionID, billNumber},
		collection(xmlrecord.Record{"session_id": sessionID, "bill_number": billNumber}, "documents", documentShape),
	)
}

func (c *Client) DocumentsByBillNumDocType(ctx context.Context, sessionID int, billNumber, docType string) (xmlrecord.Record, error) {
	echo := xmlrecord.Record{
		"session_id":    sessionID,
		"bill_number":   billNumber,
		"document_type": docType,
	}
	return query(
		ctx, c, "DocumentsByBillNumDocType", []any{sessionID, billNumber, docType},
		collection(echo, "documents", documentShape),
	)
}

func (c *Client) DocumentsByDocType(ctx context.Context, sessionID int, docType string) (xmlrecord.Record, error) {
	return query(
		ctx, c, "DocumentsByDocType", []any{sessionID, docType},
		collection(xmlrecord.Record{"session_id": sessionID, "document_type": docType}, "documents", documentShape),
	)
}

func (c *Client) DocumentsFromDate(ctx context.Context, sessionID int, from time.Time) (xmlrecord.Record, error) {
	return query(
		ctx, c, "DocumentsFromDate", []any{sessionID, from},
		collection(xmlrecord.Record{"session_id": sessionID}, "documents", documentShape),
	)
}

func (c *Client) DocumentsFromDateToDate(ctx context.Context, sessionID int, from, to time.Time) (xmlrecord.Record, error) {
	return query(
		ctx, c, "DocumentsFromDateToDate", []any{sessionID, from, to},
		collection(xmlrecord.Record{"session_id": sessionID}, "documents", documentShape),
	)
}
