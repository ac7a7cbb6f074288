package azleg

import (
	r "azlegapi/lib/xmlrecord"
)

var sessionShape = r.Shape{Fields: r.Table{
	r.Attr("session_id", "Session_ID"),
	r.Attr("session_full_name", "Session_Full_Name"),
	r.Attr("legislature", "Legislature"),
	r.Attr("session", "Session"),
	r.Attr("legislation_year", "Legislation_Year"),
	// Sessions spells these in lower case
	r.Attr("session_start_date", "Session_Start_Date", "session_start_date").Optional().Date(),
	r.Attr("sine_die_date", "Sine_Die_Date", "sine_die_date").Optional().Date(),
}}

var sponsorShape = r.Shape{Fields: r.Table{
	r.Attr("display_order", "Display_Order"),
	r.Attr("type", "Type"),
	r.Attr("member_id", "Member_ID"),
	r.Attr("member_name", "Member_Name"),
}}

var billDocumentShape = r.Shape{Fields: r.Table{
	r.Attr("document_type", "Document_Type"),
	r.Attr("document_format", "Document_Format"),
	r.Attr("description", "Description"),
	r.Attr("last_updated", "Last_Updated"),
	r.Attr("url", "URL"),
}}

var billShape = r.Shape{
	Fields: r.Table{
		r.Attr("session_id", "Session_ID"),
		r.Attr("bill_number", "Bill_Number"),
		r.Text("short_title", "Short_Title"),
		r.Text("introduced_date", "Introduced_Date").Date(),
		r.Text("house_1st_read", "House_1st_Read").Date(),
		r.Text("house_official", "House_Official"),
		r.Text("house_2nd_read", "House_2nd_Read").Date(),
		r.Text("house_consent_calendar_object", "House_Consent_Calendar_Object"),
		r.Text("senate_official", "Senate_Official"),
		r.Text("senate_consent_calendar_object", "Senate_Consent_Calendar_Object"),
		r.Text("posting_sheet", "PostingSheet"),
		r.Text("last_updated", "Last_Updated").Date(),
	},
	Lists: []r.List{
		{Key: "sponsors", Path: "SPONSORS", Item: sponsorShape},
		{Key: "docs", Path: "DOCS", Item: billDocumentShape},
	},
}

var billSummaryShape = r.Shape{Fields: r.Table{
	r.Text("bill_number", "Bill_Number"),
	r.Text("initial_title", "Initial_Title"),
	r.Text("current_title", "Current_Title"),
	r.Text("last_updated", "Last_Updated").Required().Date(),
}}

var sponsoredBillShape = r.Shape{Fields: r.Table{
	r.Text("bill_number", "Bill_Number"),
	r.Text("sponsor_type", "Sponsor_Type"),
	r.Text("display_order", "Display_Order"),
	r.Text("bill_version", "Bill_Version"),
}}

var sponsorMemberTable = r.Table{
	r.Attr("name", "MEMBER"),
	r.Attr("member_id", "MEMBER_ID"),
}

var documentShape = r.Shape{Fields: r.Table{
	r.Attr("document_type", "Document_Type"),
	r.Attr("document_format", "Document_Format"),
	r.Attr("description", "Description"),
	r.Attr("last_updated", "Last_Updated").Optional(),
	r.Attr("url", "URL"),
	r.Attr("bill_number", "Bill_Number").Optional(),
	r.Attr("session_id", "Session_ID").Optional(),
}}

var calendarShape = r.Shape{
	Fields: r.Table{
		r.Attr("calendar_id", "Cal_ID"),
		r.Attr("body", "Body"),
		r.Attr("type", "Type"),
		r.Attr("calendar_date", "Cal_Date"),
		r.Attr("number", "Number"),
		r.Attr("committee_name", "Committee_Name"),
		r.Attr("committee_id", "Committee_ID"),
		r.Attr("calendar_name", "Cal_Name"),
		r.Attr("calendar_time", "Cal_Time"),
		r.Attr("protest_date", "Protest_Date").Optional(),
		r.Attr("url", "URL").Optional(),
	},
	Lists: []r.List{{
		Key: "bills",
		Item: r.Shape{Fields: r.Table{
			r.Attr("bill_number", "Bill_Number"),
			r.Attr("display_order", "Display_Order"),
			r.Attr("reconsidered", "Reconsidered"),
		}},
	}},
}

var committeeActionShape = r.Shape{Fields: r.Table{
	r.Attr("action_id", "Action_ID"),
	r.Attr("action", "Action"),
	r.Attr("action_description", "Action_Description"),
	r.Attr("rfeir_action", "RFEIR_Action"),
	r.Attr("body", "Body"),
	r.Attr("committee_type", "Committee_Type"),
}}

var committeeShape = r.Shape{Fields: r.Table{
	r.Attr("legislature", "Legislature"),
	r.Attr("committee_id", "Committee_ID"),
	r.Attr("committee_name", "Committee_Name"),
	r.Attr("committee_short_name", "Committee_Short_Name").Optional(),
	r.Attr("sub_committee", "Sub_Committee").Optional(),
}}

var (
	committeeTypeLevel = r.Level{Fields: r.Table{r.Attr("type", "Committee_Type", "Type")}}
	committeeBodyLevel = r.Level{Fields: r.Table{r.Attr("body", "Body")}}
)

var committeeMemberLevel = r.Level{Fields: r.Table{
	r.Attr("committee_id", "Committee_ID"),
	r.Attr("committee_name", "Committee_Name"),
}}

var committeeMemberShape = r.Shape{Fields: r.Table{
	r.Attr("member_id", "Member_ID"),
	r.Attr("full_name", "Full_Name"),
	r.Attr("body", "Body").Optional(),
	r.Attr("party", "Party").Optional(),
	r.Attr("district", "District").Optional(),
	r.Attr("position", "Position").Optional(),
}}

var memberCommitteeShape = r.Shape{Fields: r.Table{
	r.Attr("committee_id", "Committee_ID"),
	r.Attr("committee_name", "Committee_Name"),
	r.Attr("committee_short_name", "Committee_Short_Name").Optional(),
	r.Attr("body", "Body").Optional(),
	r.Attr("type", "Committee_Type", "Type").Optional(),
	r.Attr("position", "Position").Optional(),
}}

var memberShape = r.Shape{Fields: r.Table{
	r.Attr("legislature", "Legislature"),
	r.Attr("member_id", "Member_ID"),
	r.Attr("full_name", "Full_Name"),
	r.Attr("report_name", "Report_Name"),
	r.Attr("body", "Body"),
	r.Attr("district", "District"),
	r.Attr("party", "Party"),
	r.Attr("status", "Status"),
	r.Attr("position", "Postition", "Position").Optional(),
	r.Attr("email", "Email").Optional(),
	r.Attr("phone", "Phone").Optional(),
	r.Attr("fax", "Fax").Optional(),
	r.Attr("maj_leader", "Maj_Leader").Optional(),
	r.Attr("min_leader", "Min_Leader").Optional(),
	r.Attr("maj_whip", "Maj_Whip").Optional(),
	r.Attr("min_whip", "Min_Whip").Optional(),
	r.Attr("room", "Room").Optional(),
}}

var transactionShape = r.Shape{
	Fields: r.Table{
		r.Attr("tran_id", "ID"),
		r.Attr("type", "Type"),
		r.Attr("bill", "Bill"),
		r.Attr("cmte_id", "CmteID"),
		r.Attr("cmte_name", "CmteName"),
		r.Attr("cmte_short_name", "CmteShortName"),
		r.Attr("referral", "Referral"),
		r.Attr("cow_referral", "COW_Referral"),
		r.Attr("action", "Action"),
		r.Attr("action_id", "Action_ID"),
		r.Attr("action_date", "ActionDate"),
		r.Attr("comments", "Comments").Optional(),
	},
	Lists: []r.List{{
		Key: "votes",
		Item: r.Shape{Fields: r.Table{
			r.Attr("member_id", "MemID"),
			r.Attr("member_name", "MemName"),
			r.Attr("display_order", "DisplayOrder"),
			r.Attr("vote", "Vote"),
		}},
	}},
}

var nomineePositionShape = r.Shape{Fields: r.Table{
	r.Attr("agency_id", "Agency_ID"),
	r.Attr("agency_name", "Agency_Name"),
	r.Attr("position_id", "Position_ID"),
	r.Attr("position_name", "Position_Name"),
	r.Attr("received_date", "Received_Date").Optional().Date(),
	r.Attr("confirmed_date", "Confirmed_Date").Optional().Date(),
	r.Attr("expiration_date", "Expiration_Date").Optional().Date(),
	r.Attr("withdrawal_date", "Withdrawal_Date").Optional().Date(),
	r.Attr("status", "Status").Optional(),
	r.Attr("reappointment", "Reappointment").Optional(),
	r.Attr("hearing_required", "Hearing_Required").Optional(),
}}

var nomineeShape = r.Shape{
	Fields: r.Table{
		r.Attr("nominee_id", "Nominee_ID"),
		r.Attr("first_name", "First_Name"),
		r.Attr("middle_name", "Middle_Name").Optional(),
		r.Attr("last_name", "Last_Name"),
		r.Attr("suffix", "Suffix").Optional(),
		r.Attr("city", "City").Optional(),
		r.Attr("county", "County").Optional(),
		r.Attr("party", "Party").Optional(),
	},
	Lists: []r.List{
		{Key: "positions", Tag: "POSITION", Item: nomineePositionShape},
	},
}

var agencyShape = r.Shape{
	Fields: r.Table{
		r.Attr("agency_id", "Agency_ID"),
		r.Attr("agency_name", "Agency_Name"),
		r.Attr("proper_name", "Proper_Name").Optional(),
		r.Attr("origin", "Origin").Optional(),
		r.Attr("term_length", "Term_Length").Optional(),
		r.Attr("description", "Description").Optional(),
		r.Attr("disabled", "Disabled").Optional(),
	},
	Lists: []r.List{{
		Key: "positions",
		Item: r.Shape{Fields: r.Table{
			r.Attr("position_id", "Position_ID"),
			r.Attr("position_name", "Position_Name"),
			r.Attr("display_order", "Display_Order").Optional(),
			r.Attr("disabled", "Disabled").Optional(),
		}},
	}},
}
