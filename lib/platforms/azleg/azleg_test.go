package azleg

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"azlegapi/lib/soap"
	"azlegapi/lib/telemetry"
	"azlegapi/lib/timezone"
	"azlegapi/lib/xmlrecord"

	"github.com/beevik/etree"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

type fakeCall struct {
	Operation string
	Args      []any
}

// fakeCaller answers every operation with a canned payload, or an empty
// <RESPONSE/> when none was set.
type fakeCaller struct {
	mutex    sync.Mutex
	payloads map[string]string
	calls    []fakeCall
	err      error
}

func (f *fakeCaller) Call(ctx context.Context, operation string, args ...any) (*etree.Element, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	f.calls = append(f.calls, fakeCall{Operation: operation, Args: args})
	if f.err != nil {
		return nil, f.err
	}
	payload, ok := f.payloads[operation]
	if !ok {
		payload = "<RESPONSE/>"
	}
	doc := etree.NewDocument()
	err := doc.ReadFromString(payload)
	if err != nil {
		return nil, err
	}
	return doc.Root(), nil
}

func (f *fakeCaller) lastCall() fakeCall {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	if len(f.calls) == 0 {
		return fakeCall{}
	}
	return f.calls[len(f.calls)-1]
}

func setup(t *testing.T, payloads map[string]string) (*Client, *fakeCaller, *telemetry.Recorder) {
	cleanup := telemetry.SetupForTesting(t, "test:platforms/azleg")
	t.Cleanup(cleanup)

	caller := &fakeCaller{payloads: payloads}
	recorder := &telemetry.Recorder{}
	return New(caller, recorder), caller, recorder
}

func TestSessionByID(t *testing.T) {
	client, caller, _ := setup(t, map[string]string{
		"SessionsbyID": `<SESSIONS>
			<SESSION Session_ID="121" Session_Full_Name="Fifty-fourth Legislature - First Regular Session" Legislature="54" Session="1R" Legislation_Year="2019" />
		</SESSIONS>`,
	})

	session, err := client.SessionByID(context.Background(), 121)
	require.NoError(t, err)
	require.Equal(t, fakeCall{Operation: "SessionsbyID", Args: []any{121}}, caller.lastCall())

	expected := xmlrecord.Record{
		"session_id":         "121",
		"session_full_name":  "Fifty-fourth Legislature - First Regular Session",
		"legislature":        "54",
		"session":            "1R",
		"legislation_year":   "2019",
		"session_start_date": nil,
		"sine_die_date":      nil,
	}
	if diff := cmp.Diff(expected, session); diff != "" {
		t.Fatal(diff)
	}
}

func TestSessions(t *testing.T) {
	client, _, _ := setup(t, map[string]string{
		"Sessions": `<SESSIONS>
			<SESSION Session_ID="121" Session_Full_Name="Fifty-fourth Legislature - First Regular Session" Legislature="54" Session="1R" Legislation_Year="2019" session_start_date="2019-01-14T00:00:00" sine_die_date="2019-05-27T23:59:00" />
			<SESSION Session_ID="122" Session_Full_Name="Fifty-fourth Legislature - Second Regular Session" Legislature="54" Session="2R" Legislation_Year="2020" />
		</SESSIONS>`,
	})

	sessions, err := client.Sessions(context.Background())
	require.NoError(t, err)
	require.Len(t, sessions, 2)

	require.Equal(t, time.Date(2019, 1, 14, 0, 0, 0, 0, timezone.Location), sessions[0]["session_start_date"])
	require.Equal(t, time.Date(2019, 5, 27, 23, 59, 0, 0, timezone.Location), sessions[0]["sine_die_date"])
	require.Nil(t, sessions[1]["session_start_date"])
	require.Nil(t, sessions[1]["sine_die_date"])
}

func TestBillInfo(t *testing.T) {
	client, _, _ := setup(t, map[string]string{
		"BillInfo": `<BILLINFO>
			<BILL Session_ID="121" Bill_Number="HB2001">
				<Short_Title>appropriations; budget</Short_Title>
				<Introduced_Date>2019-01-14T00:00:00</Introduced_Date>
				<House_1st_Read>2019-01-15T00:00:00</House_1st_Read>
				<House_Official>Y</House_Official>
				<PostingSheet>1</PostingSheet>
				<Last_Updated>2019-06-01T10:20:30</Last_Updated>
				<SPONSORS>
					<SPONSOR Display_Order="1" Type="P" Member_ID="1720" Member_Name="Kavanagh" />
				</SPONSORS>
				<DOCS>
					<DOC Document_Type="Bill Version" Document_Format="PDF" Description="Introduced" Last_Updated="2019-01-14T00:00:00" URL="https://www.azleg.gov/legtext/54leg/1R/bills/HB2001P.pdf" />
				</DOCS>
			</BILL>
		</BILLINFO>`,
	})

	bill, err := client.BillInfo(context.Background(), 121, "HB2001")
	require.NoError(t, err)

	expected := xmlrecord.Record{
		"session_id":                     "121",
		"bill_number":                    "HB2001",
		"short_title":                    "appropriations; budget",
		"introduced_date":                time.Date(2019, 1, 14, 0, 0, 0, 0, timezone.Location),
		"house_1st_read":                 time.Date(2019, 1, 15, 0, 0, 0, 0, timezone.Location),
		"house_official":                 "Y",
		"house_2nd_read":                 nil,
		"house_consent_calendar_object":  nil,
		"senate_official":                nil,
		"senate_consent_calendar_object": nil,
		"posting_sheet":                  "1",
		"last_updated":                   time.Date(2019, 6, 1, 10, 20, 30, 0, timezone.Location),
		"sponsors": []xmlrecord.Record{{
			"display_order": "1",
			"type":          "P",
			"member_id":     "1720",
			"member_name":   "Kavanagh",
		}},
		"docs": []xmlrecord.Record{{
			"document_type":   "Bill Version",
			"document_format": "PDF",
			"description":     "Introduced",
			"last_updated":    "2019-01-14T00:00:00",
			"url":             "https://www.azleg.gov/legtext/54leg/1R/bills/HB2001P.pdf",
		}},
	}
	if diff := cmp.Diff(expected, bill); diff != "" {
		t.Fatal(diff)
	}
}

func TestCollections(t *testing.T) {
	ctx := context.Background()
	client, _, _ := setup(t, map[string]string{
		"BillsBySessionID": `<BILLS SessionID="121">
			<BILL><Bill_Number>HB2001</Bill_Number><Initial_Title>budget</Initial_Title><Current_Title>budget</Current_Title><Last_Updated>2019-06-01T00:00:00</Last_Updated></BILL>
			<BILL><Bill_Number>HB2002</Bill_Number><Initial_Title>schools</Initial_Title><Last_Updated>2019-06-02T00:00:00</Last_Updated></BILL>
			<BILL><Bill_Number>SB1001</Bill_Number><Last_Updated>2019-06-03T00:00:00</Last_Updated></BILL>
		</BILLS>`,
		"MembersBySessionID": `<MEMBERS>
			<MEMBER Legislature="54" Member_ID="1720" Full_Name="John Kavanagh" Report_Name="Kavanagh" Body="H" District="23" Party="R" Status="A" Postition="Chairman" Room="114" />
			<MEMBER Legislature="54" Member_ID="1721" Full_Name="Kate Brophy McGee" Report_Name="Brophy McGee" Body="S" District="28" Party="R" Status="A" Position="Member" />
		</MEMBERS>`,
		"CalendarsBySessionID": `<CALENDARS>
			<CALENDAR Cal_ID="10" Body="H" Type="C" Cal_Date="2019-02-04" Number="1" Committee_Name="Committee of the Whole" Committee_ID="1" Cal_Name="COW" Cal_Time="1:30 PM">
				<BILL Bill_Number="HB2001" Display_Order="1" Reconsidered="N" />
				<BILL Bill_Number="HB2002" Display_Order="2" Reconsidered="Y" />
			</CALENDAR>
		</CALENDARS>`,
		"FloorVotesByBill": `<TRANSACTIONS SessionID="121">
			<TRANSACTION ID="5" Type="F" Bill="HB2001" CmteID="1" CmteName="Third Read" CmteShortName="3RD" Referral="N" COW_Referral="N" Action="PASSED" Action_ID="7" ActionDate="2019-03-01T00:00:00">
				<VOTE MemID="1720" MemName="Kavanagh" DisplayOrder="1" Vote="Y" />
				<VOTE MemID="1721" MemName="Brophy McGee" DisplayOrder="2" Vote="N" />
			</TRANSACTION>
		</TRANSACTIONS>`,
	})

	bills, err := client.BillsBySessionID(ctx, 121)
	require.NoError(t, err)
	require.Equal(t, 121, bills["session_id"])
	require.Len(t, bills["bills"], 3)
	require.Nil(t, bills["bills"].([]xmlrecord.Record)[2]["initial_title"])

	members, err := client.MembersBySessionID(ctx, 121)
	require.NoError(t, err)
	require.Equal(t, 121, members["session_id"])
	memberList := members["members"].([]xmlrecord.Record)
	require.Len(t, memberList, 2)
	require.Equal(t, "Chairman", memberList[0]["position"])
	require.Equal(t, "Member", memberList[1]["position"])
	require.Nil(t, memberList[1]["room"])

	calendars, err := client.CalendarsBySessionID(ctx, 121, nil)
	require.NoError(t, err)
	calendar := calendars["calendars"].([]xmlrecord.Record)[0]
	require.Nil(t, calendar["protest_date"])
	require.Nil(t, calendar["url"])
	require.Equal(t, []xmlrecord.Record{
		{"bill_number": "HB2001", "display_order": "1", "reconsidered": "N"},
		{"bill_number": "HB2002", "display_order": "2", "reconsidered": "Y"},
	}, calendar["bills"])

	votes, err := client.FloorVotesByBill(ctx, 121, "HB2001", nil)
	require.NoError(t, err)
	require.Equal(t, 121, votes["session_id"])
	transactions := votes["transactions"].([]xmlrecord.Record)
	require.Len(t, transactions, 1)
	require.Nil(t, transactions[0]["comments"])
	require.Len(t, transactions[0]["votes"], 2)
}

func TestSponsoredBills(t *testing.T) {
	client, _, _ := setup(t, map[string]string{
		"SponsoredBills": `<SPONSOREDBILLS>
			<SPONSOR MEMBER="Kavanagh" MEMBER_ID="1720">
				<BILL><Bill_Number>HB2001</Bill_Number><Sponsor_Type>P</Sponsor_Type><Display_Order>1</Display_Order><Bill_Version>Introduced</Bill_Version></BILL>
			</SPONSOR>
		</SPONSOREDBILLS>`,
	})

	sponsored, err := client.SponsoredBills(context.Background(), 121, 1720)
	require.NoError(t, err)

	expected := xmlrecord.Record{
		"session_id": 121,
		"member":     xmlrecord.Record{"name": "Kavanagh", "member_id": "1720"},
		"bills": []xmlrecord.Record{{
			"bill_number":   "HB2001",
			"sponsor_type":  "P",
			"display_order": "1",
			"bill_version":  "Introduced",
		}},
	}
	if diff := cmp.Diff(expected, sponsored); diff != "" {
		t.Fatal(diff)
	}
}

func TestCommittees(t *testing.T) {
	ctx := context.Background()
	client, caller, _ := setup(t, map[string]string{
		"CommitteesByLegID": `<COMMITTEES>
			<TYPE Committee_Type="S">
				<BODY Body="H">
					<COMMITTEE Legislature="54" Committee_ID="1907" Committee_Name="Appropriations" Committee_Short_Name="APPROP" />
				</BODY>
				<BODY Body="S">
					<COMMITTEE Legislature="54" Committee_ID="1950" Committee_Name="Judiciary" />
				</BODY>
			</TYPE>
		</COMMITTEES>`,
		"CommitteesByLegType": `<COMMITTEES>
			<BODY Body="H">
				<COMMITTEE Legislature="54" Committee_ID="1907" Committee_Name="Appropriations" />
			</BODY>
		</COMMITTEES>`,
		"CommitteeMembers": `<COMMITTEES>
			<COMMITTEE Committee_ID="1907" Committee_Name="Appropriations">
				<MEMBER Member_ID="1720" Full_Name="John Kavanagh" Position="Chairman" />
				<MEMBER Member_ID="1722" Full_Name="Regina Cobb" />
			</COMMITTEE>
		</COMMITTEES>`,
	})

	committees, err := client.CommitteesByLegislature(ctx, 54)
	require.NoError(t, err)
	expected := []xmlrecord.Record{
		{
			"type": "S", "body": "H",
			"legislature": "54", "committee_id": "1907", "committee_name": "Appropriations",
			"committee_short_name": "APPROP", "sub_committee": nil,
		},
		{
			"type": "S", "body": "S",
			"legislature": "54", "committee_id": "1950", "committee_name": "Judiciary",
			"committee_short_name": nil, "sub_committee": nil,
		},
	}
	if diff := cmp.Diff(expected, committees); diff != "" {
		t.Fatal(diff)
	}

	byType, err := client.CommitteesByLegType(ctx, 54, KindSitting)
	require.NoError(t, err)
	require.Len(t, byType, 1)
	require.Equal(t, "S", byType[0]["type"])
	require.Equal(t, "H", byType[0]["body"])
	require.Equal(t, []any{54, "S"}, caller.lastCall().Args)

	members, err := client.CommitteeMembers(ctx, 121, 1907)
	require.NoError(t, err)
	require.Len(t, members, 2)
	require.Equal(t, "Appropriations", members[1]["committee_name"])
	require.Equal(t, "1907", members[1]["committee_id"])
	require.Nil(t, members[1]["position"])
}

func TestValidation(t *testing.T) {
	ctx := context.Background()
	client, caller, _ := setup(t, nil)

	_, err := client.CommitteesByLegType(ctx, 54, CommitteeKind("X"))
	require.ErrorIs(t, err, ErrInvalidCommitteeKind)

	_, err = client.CommitteesByLegTypeBody(ctx, 54, KindFinancial, Body("Q"))
	require.ErrorIs(t, err, ErrInvalidBody)

	_, err = client.CommitteeActions(ctx, &ActionFilter{Body: BodyHouse})
	require.ErrorIs(t, err, ErrInvalidCommitteeKind)

	_, err = client.CalendarsByBody(ctx, 121, Body(""))
	require.ErrorIs(t, err, ErrInvalidBody)

	require.Empty(t, caller.calls)

	_, err = client.CommitteeActions(ctx, &ActionFilter{Body: BodySenate, Kind: KindFinancial})
	require.NoError(t, err)
	require.Equal(t, fakeCall{Operation: "CommitteeActionsQualified", Args: []any{"S", "F"}}, caller.lastCall())

	_, err = client.CommitteeActions(ctx, nil)
	require.NoError(t, err)
	require.Equal(t, "CommitteeActions", caller.lastCall().Operation)
}

func TestShapeFailure(t *testing.T) {
	client, _, recorder := setup(t, map[string]string{
		"BillsBySessionID": `<BILLS><BILL><Bill_Number>HB2001</Bill_Number></BILL></BILLS>`,
		"MemberByID":       `<MEMBER Member_ID="1720" />`,
		"SessionsbyID":     `<SESSIONS><SESSION Session_ID="1" Session_Full_Name="x" Legislature="54" Session="1R" Legislation_Year="2019" Session_Start_Date="soon" /></SESSIONS>`,
		"BillInfo":         `<BILLINFO />`,
	})
	ctx := context.Background()

	_, err := client.BillsBySessionID(ctx, 121)
	require.ErrorIs(t, err, xmlrecord.ErrMissingField)

	_, err = client.MemberByID(ctx, 121, 1720)
	require.ErrorIs(t, err, xmlrecord.ErrMissingField)

	_, err = client.SessionByID(ctx, 1)
	require.ErrorIs(t, err, xmlrecord.ErrBadDate)

	_, err = client.BillInfo(ctx, 121, "HB2001")
	require.ErrorIs(t, err, xmlrecord.ErrMissingElement)

	require.Equal(t, []string{
		"azleg: client.map-response",
		"azleg: client.map-response",
		"azleg: client.map-response",
		"azleg: client.map-response",
	}, recorder.Broken())
}

func TestTransportError(t *testing.T) {
	client, caller, recorder := setup(t, nil)
	caller.err = &soap.Fault{Operation: "Sessions", Code: "soap:Server", String: "unavailable"}

	_, err := client.Sessions(context.Background())
	var fault *soap.Fault
	require.True(t, errors.As(err, &fault))
	require.Equal(t, "unavailable", fault.String)
	require.Empty(t, recorder.Broken())
}

func TestOperationSelection(t *testing.T) {
	ctx := context.Background()
	from := time.Date(2019, 2, 1, 0, 0, 0, 0, timezone.Location)

	cases := []struct {
		base     string
		withDate string
		call     func(c *Client, date *time.Time) error
	}{
		{
			base: "AgendaByCommitteeID", withDate: "AgendaByCommitteeIDFromDate",
			call: func(c *Client, date *time.Time) error {
				_, err := c.AgendasByCommitteeID(ctx, 121, 1907, date)
				return err
			},
		},
		{
			base: "AgendaBySessionID", withDate: "AgendaBySessionIDFromDate",
			call: func(c *Client, date *time.Time) error {
				_, err := c.AgendasBySessionID(ctx, 121, date)
				return err
			},
		},
		{
			base: "BillPositionsBySession", withDate: "BillPositionsBySessionFromDate",
			call: func(c *Client, date *time.Time) error {
				_, err := c.BillPositionsBySession(ctx, 121, date)
				return err
			},
		},
		{
			base: "CalendarsBySessionID", withDate: "CalendarsFromDate",
			call: func(c *Client, date *time.Time) error {
				_, err := c.CalendarsBySessionID(ctx, 121, date)
				return err
			},
		},
		{
			base: "FloorVotesByBill", withDate: "FloorVotesByBillFromDate",
			call: func(c *Client, date *time.Time) error {
				_, err := c.FloorVotesByBill(ctx, 121, "HB2001", date)
				return err
			},
		},
		{
			base: "StandingByCommittee", withDate: "StandingByCommitteeFromDate",
			call: func(c *Client, date *time.Time) error {
				_, err := c.StandingByCommittee(ctx, 121, 1907, date)
				return err
			},
		},
		{
			base: "StandingVoteByCommittee", withDate: "StandingVoteByCommitteeOnDate",
			call: func(c *Client, date *time.Time) error {
				_, err := c.StandingVoteByCommittee(ctx, 121, 1907, date)
				return err
			},
		},
	}

	for _, test := range cases {
		t.Run(test.base, func(t *testing.T) {
			client, caller, _ := setup(t, nil)

			require.NoError(t, test.call(client, nil))
			base := caller.lastCall()
			require.Equal(t, test.base, base.Operation)

			require.NoError(t, test.call(client, &from))
			withDate := caller.lastCall()
			require.Equal(t, test.withDate, withDate.Operation)

			require.Equal(t, append(base.Args, from), withDate.Args)
		})
	}
}
