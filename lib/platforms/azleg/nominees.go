package azleg

import (
	"context"

	"azlegapi/lib/xmlrecord"

	"github.com/beevik/etree"
)

// NomineeByID returns an executive nominee and the positions they were
// nominated to.
func (c *Client) NomineeByID(ctx context.Context, nomineeID int) (xmlrecord.Record, error) {
	return query(ctx, c, "ExeNomByID", []any{nomineeID}, func(payload *etree.Element) (xmlrecord.Record, error) {
		nominee, err := single(payload, "NOMINEE")
		if err != nil {
			return nil, err
		}
		return nomineeShape.Map(nominee)
	})
}

func (c *Client) CurrentPositionHolder(ctx context.Context, agencyID, positionID int) ([]xmlrecord.Record, error) {
	return query(ctx, c, "ExeNomCurrentPositionHolder", []any{agencyID, positionID}, list(nomineeShape))
}

// AgenciesAndPositions lists every agency with the positions nominated to it.
func (c *Client) AgenciesAndPositions(ctx context.Context) ([]xmlrecord.Record, error) {
	return query(ctx, c, "ExeNomAandP", nil, list(agencyShape))
}
