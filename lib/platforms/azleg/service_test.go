package azleg

import (
	"context"
	"testing"
	"time"

	devenv "azlegapi/dev/env"
	"azlegapi/lib/soap"
	"azlegapi/lib/soap/soaptest"
	"azlegapi/lib/telemetry"
	"azlegapi/lib/timezone"
	"azlegapi/lib/xmlrecord"

	"github.com/stretchr/testify/require"
)

var serviceOperations = []soaptest.Operation{
	{Name: "ARS"},
	{Name: "AgendaByCommitteeID", Params: []string{"sessionID", "committeeID"}},
	{Name: "AgendaByCommitteeIDFromDate", Params: []string{"sessionID", "committeeID", "startDate"}},
	{Name: "AgendaByID", Params: []string{"agendaID"}},
	{Name: "AgendaBySessionID", Params: []string{"sessionID"}},
	{Name: "AgendaBySessionIDFromDate", Params: []string{"sessionID", "startDate"}},
	{Name: "BillInfo", Params: []string{"sessionID", "billNumber"}},
	{Name: "BillPositionsByDate", Params: []string{"date"}},
	{Name: "BillPositionsBySession", Params: []string{"sessionID"}},
	{Name: "BillPositionsBySessionFromDate", Params: []string{"sessionID", "startDate"}},
	{Name: "BillsBySessionID", Params: []string{"sessionID"}},
	{Name: "BillsUpdated", Params: []string{"sessionID", "startDate"}},
	{Name: "CalendarsByBody", Params: []string{"sessionID", "body"}},
	{Name: "CalendarsByCalendarID", Params: []string{"calendarID"}},
	{Name: "CalendarsByCommittee", Params: []string{"sessionID", "committeeID"}},
	{Name: "CalendarsBySessionID", Params: []string{"sessionID"}},
	{Name: "CalendarsFromDate", Params: []string{"sessionID", "startDate"}},
	{Name: "CommitteeActions"},
	{Name: "CommitteeActionsQualified", Params: []string{"body", "committeeType"}},
	{Name: "CommitteeMembers", Params: []string{"sessionID", "committeeID"}},
	{Name: "CommitteesByLeg"},
	{Name: "CommitteesByLegBody", Params: []string{"legislatureID", "body"}},
	{Name: "CommitteesByLegID", Params: []string{"legislatureID"}},
	{Name: "CommitteesByLegType", Params: []string{"legislatureID", "committeeType"}},
	{Name: "CommitteesByLegTypeBody", Params: []string{"legislatureID", "committeeType", "body"}},
	{Name: "DocumentsByBillNum", Params: []string{"sessionID", "billNumber"}},
	{Name: "DocumentsByBillNumDocType", Params: []string{"sessionID", "billNumber", "docType"}},
	{Name: "DocumentsByDocType", Params: []string{"sessionID", "docType"}},
	{Name: "DocumentsFromDate", Params: []string{"sessionID", "startDate"}},
	{Name: "DocumentsFromDateToDate", Params: []string{"sessionID", "startDate", "endDate"}},
	{Name: "ExeNomAandP"},
	{Name: "ExeNomByID", Params: []string{"nomineeID"}},
	{Name: "ExeNomCurrentPositionHolder", Params: []string{"agencyID", "positionID"}},
	{Name: "FloorVotesByBill", Params: []string{"sessionID", "billNumber"}},
	{Name: "FloorVotesByBillFromDate", Params: []string{"sessionID", "billNumber", "startDate"}},
	{Name: "FloorVotesByCommitteeID", Params: []string{"sessionID", "committeeID"}},
	{Name: "FloorVotesByDate", Params: []string{"date"}},
	{Name: "FloorVotesBySessionID", Params: []string{"sessionID"}},
	{Name: "FloorVotesFromDate", Params: []string{"sessionID", "startDate"}},
	{Name: "FloorVotesFromDateToDate", Params: []string{"sessionID", "startDate", "endDate"}},
	{Name: "MemberByID", Params: []string{"sessionID", "memberID"}},
	{Name: "MemberCommittees", Params: []string{"sessionID", "memberID"}},
	{Name: "MembersBySessionID", Params: []string{"sessionID"}},
	{Name: "Sessions"},
	{Name: "SessionsbyID", Params: []string{"sessionID"}},
	{Name: "SponsoredBills", Params: []string{"sessionID", "memberID"}},
	{Name: "StandingByBillNum", Params: []string{"sessionID", "billNumber"}},
	{Name: "StandingByCommittee", Params: []string{"sessionID", "committeeID"}},
	{Name: "StandingByCommitteeFromDate", Params: []string{"sessionID", "committeeID", "startDate"}},
	{Name: "StandingBySession", Params: []string{"sessionID"}},
	{Name: "StandingFromDate", Params: []string{"sessionID", "startDate"}},
	{Name: "StandingFromDateToDate", Params: []string{"startDate", "endDate"}},
	{Name: "StandingVoteByCommittee", Params: []string{"sessionID", "committeeID"}},
	{Name: "StandingVoteByCommitteeOnDate", Params: []string{"sessionID", "committeeID", "date"}},
	{Name: "StandingVoteForBill", Params: []string{"sessionID", "billNumber"}},
	{Name: "StandingVoteOnDate", Params: []string{"date"}},
	{Name: "VideosByDate", Params: []string{"date"}},
	{Name: "VideosBySession", Params: []string{"sessionID"}},
}

func setupService(t *testing.T) (*Client, *soaptest.Service) {
	cleanup := telemetry.SetupForTesting(t, "test:platforms/azleg")
	t.Cleanup(cleanup)

	service := soaptest.NewService(t, serviceOperations...)
	client, err := NewClient(context.Background(), Options{
		WSDL:     service.URL(),
		Username: "clerk",
		Password: "hunter2",
	})
	require.NoError(t, err)
	return client, service
}

func TestNewClientCredentials(t *testing.T) {
	service := soaptest.NewService(t, serviceOperations...)
	_, err := NewClient(context.Background(), Options{WSDL: service.URL()})
	require.ErrorIs(t, err, soap.ErrMissingCredentials)
	require.Zero(t, service.WSDLFetches())
}

// every operation without a documented response shape, or whose response
// is a collection, must succeed on an empty payload
func TestEveryOperation(t *testing.T) {
	ctx := context.Background()
	client, service := setupService(t)
	service.Respond("ExeNomByID", `<NOMINEE Nominee_ID="3" First_Name="Ann" Last_Name="Lee"><POSITION Agency_ID="1" Agency_Name="Board" Position_ID="2" Position_Name="Member" Confirmed_Date="2019-04-01T00:00:00" /></NOMINEE>`)
	service.Respond("AgendaByID", `<AGENDA Agenda_ID="9" />`)

	day := time.Date(2019, 2, 1, 0, 0, 0, 0, timezone.Location)
	later := day.AddDate(0, 1, 0)

	calls := []struct {
		operation string
		call      func() error
	}{
		{"ARS", func() error { _, err := client.ARS(ctx); return err }},
		{"AgendaByCommitteeIDFromDate", func() error { _, err := client.AgendasByCommitteeID(ctx, 121, 1907, &day); return err }},
		{"AgendaByID", func() error { _, err := client.AgendaByID(ctx, 9); return err }},
		{"AgendaBySessionID", func() error { _, err := client.AgendasBySessionID(ctx, 121, nil); return err }},
		{"BillPositionsByDate", func() error { _, err := client.BillPositionsByDate(ctx, day); return err }},
		{"BillPositionsBySessionFromDate", func() error { _, err := client.BillPositionsBySession(ctx, 121, &day); return err }},
		{"BillsUpdated", func() error { _, err := client.UpdatedBills(ctx, 121, day); return err }},
		{"CalendarsByBody", func() error { _, err := client.CalendarsByBody(ctx, 121, BodyHouse); return err }},
		{"CalendarsByCommittee", func() error { _, err := client.CalendarsByCommitteeID(ctx, 121, 1907); return err }},
		{"CommitteeActions", func() error { _, err := client.CommitteeActions(ctx, nil); return err }},
		{"CommitteeMembers", func() error { _, err := client.CommitteeMembers(ctx, 121, 1907); return err }},
		{"CommitteesByLeg", func() error { _, err := client.CurrentCommittees(ctx); return err }},
		{"CommitteesByLegBody", func() error { _, err := client.CommitteesByLegBody(ctx, 54, BodySenate); return err }},
		{"CommitteesByLegID", func() error { _, err := client.CommitteesByLegislature(ctx, 54); return err }},
		{"CommitteesByLegType", func() error { _, err := client.CommitteesByLegType(ctx, 54, KindFinancial); return err }},
		{"CommitteesByLegTypeBody", func() error {
			_, err := client.CommitteesByLegTypeBody(ctx, 54, KindSitting, BodyHouse)
			return err
		}},
		{"DocumentsByBillNum", func() error { _, err := client.DocumentsByBillNum(ctx, 121, "HB2001"); return err }},
		{"DocumentsByBillNumDocType", func() error {
			_, err := client.DocumentsByBillNumDocType(ctx, 121, "HB2001", "FISCAL")
			return err
		}},
		{"DocumentsByDocType", func() error { _, err := client.DocumentsByDocType(ctx, 121, "FISCAL"); return err }},
		{"DocumentsFromDate", func() error { _, err := client.DocumentsFromDate(ctx, 121, day); return err }},
		{"DocumentsFromDateToDate", func() error { _, err := client.DocumentsFromDateToDate(ctx, 121, day, later); return err }},
		{"ExeNomAandP", func() error { _, err := client.AgenciesAndPositions(ctx); return err }},
		{"ExeNomByID", func() error { _, err := client.NomineeByID(ctx, 3); return err }},
		{"ExeNomCurrentPositionHolder", func() error { _, err := client.CurrentPositionHolder(ctx, 1, 2); return err }},
		{"FloorVotesByCommitteeID", func() error { _, err := client.FloorVotesByCommitteeID(ctx, 121, 1907); return err }},
		{"FloorVotesByDate", func() error { _, err := client.FloorVotesByDate(ctx, day); return err }},
		{"FloorVotesBySessionID", func() error { _, err := client.FloorVotesBySessionID(ctx, 121); return err }},
		{"FloorVotesFromDate", func() error { _, err := client.FloorVotesFromDate(ctx, 121, day); return err }},
		{"FloorVotesFromDateToDate", func() error { _, err := client.FloorVotesFromDateToDate(ctx, 121, day, later); return err }},
		{"MemberCommittees", func() error { _, err := client.MemberCommittees(ctx, 121, 1720); return err }},
		{"StandingByBillNum", func() error { _, err := client.StandingByBillNum(ctx, 121, "HB2001"); return err }},
		{"StandingByCommittee", func() error { _, err := client.StandingByCommittee(ctx, 121, 1907, nil); return err }},
		{"StandingBySession", func() error { _, err := client.StandingBySession(ctx, 121); return err }},
		{"StandingFromDate", func() error { _, err := client.StandingFromDate(ctx, 121, day); return err }},
		{"StandingFromDateToDate", func() error { _, err := client.StandingFromDateToDate(ctx, day, later); return err }},
		{"StandingVoteByCommitteeOnDate", func() error {
			_, err := client.StandingVoteByCommittee(ctx, 121, 1907, &day)
			return err
		}},
		{"StandingVoteForBill", func() error { _, err := client.StandingVoteForBill(ctx, 121, "HB2001"); return err }},
		{"StandingVoteOnDate", func() error { _, err := client.StandingVoteOnDate(ctx, day); return err }},
		{"VideosByDate", func() error { _, err := client.VideosByDate(ctx, day); return err }},
		{"VideosBySession", func() error { _, err := client.VideosBySession(ctx, 121); return err }},
	}

	var expected []string
	for _, c := range calls {
		require.NoError(t, c.call(), c.operation)
		expected = append(expected, c.operation)
	}
	require.Equal(t, expected, service.Operations())

	received := service.Calls()
	require.Equal(t, "2019-02-01T00:00:00", received[1].Args["startDate"])
	require.Equal(t, map[string]string{
		"legislatureID": "54",
		"committeeType": "S",
		"body":          "H",
	}, received[15].Args)
	for _, call := range received {
		require.Equal(t, "clerk", call.Username)
		require.Equal(t, soap.PasswordTextType, call.PasswordType)
	}
}

func TestNominee(t *testing.T) {
	client, service := setupService(t)
	service.Respond("ExeNomByID", `<NOMINEES>
		<NOMINEE Nominee_ID="3" First_Name="Ann" Last_Name="Lee" City="Tucson">
			<POSITION Agency_ID="1" Agency_Name="Board of Regents" Position_ID="2" Position_Name="Regent" Received_Date="2019-01-20T00:00:00" Status="Confirmed" />
			<POSITION Agency_ID="4" Agency_Name="Game and Fish" Position_ID="5" Position_Name="Commissioner" />
		</NOMINEE>
	</NOMINEES>`)

	nominee, err := client.NomineeByID(context.Background(), 3)
	require.NoError(t, err)
	require.Equal(t, "Tucson", nominee["city"])
	require.Nil(t, nominee["county"])

	positions, ok := nominee["positions"].([]xmlrecord.Record)
	require.True(t, ok)
	require.Len(t, positions, 2)
	require.Equal(t, "Regent", positions[0]["position_name"])
	require.Equal(t, time.Date(2019, 1, 20, 0, 0, 0, 0, timezone.Location), positions[0]["received_date"])
	require.Nil(t, positions[0]["confirmed_date"])
	require.Equal(t, "Game and Fish", positions[1]["agency_name"])
	require.Nil(t, positions[1]["status"])
}

func TestLive(t *testing.T) {
	config, err := devenv.GetStateConfig[devenv.LiveTestConfig]("azleg.json5")
	if err != nil {
		t.Skip("no live credentials:", err)
	}
	cleanup := telemetry.SetupForTesting(t, "test:platforms/azleg")
	t.Cleanup(cleanup)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	client, err := NewClient(ctx, Options{
		Username:  config.Username,
		Password:  config.Password,
		RateLimit: 2,
		Burst:     2,
	})
	require.NoError(t, err)
	require.Contains(t, client.Operations(), "BillInfo")

	session, err := client.SessionByID(ctx, config.SessionID)
	require.NoError(t, err)
	require.NotEmpty(t, session["session_full_name"])

	if config.Bill != "" {
		bill, err := client.BillInfo(ctx, config.SessionID, config.Bill)
		require.NoError(t, err)
		require.Equal(t, config.Bill, bill["bill_number"])
	}
}
