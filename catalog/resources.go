package catalog

import (
	"strconv"

	"github.com/jrsteele09/restaurant-console/roles"
)

var weekDays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

func money(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func Plans() Resource[Plan] {
	return Resource[Plan]{
		Descriptor: Descriptor{
			Name: "plans", Title: "Plans", Singular: "Plan",
			Endpoint: "plans/", Route: "/admin/plans",
			RequiredRole: roles.Admin, PageSize: DefaultPageSize,
			Fields: []Field{
				{Name: "name", Label: "Name", Kind: KindText, Required: true},
				{Name: "price", Label: "Price", Kind: KindNumber, Required: true},
				{Name: "duration_days", Label: "Duration (days)", Kind: KindInteger, Required: true},
				{Name: "description", Label: "Description", Kind: KindTextArea},
			},
		},
		Columns: []Column[Plan]{
			{"Name", func(p Plan) string { return p.Name }},
			{"Price", func(p Plan) string { return money(p.Price) }},
			{"Duration (days)", func(p Plan) string { return strconv.Itoa(p.DurationDays) }},
		},
	}
}

func Restaurants() Resource[Restaurant] {
	return Resource[Restaurant]{
		Descriptor: Descriptor{
			Name: "restaurants", Title: "Restaurants", Singular: "Restaurant",
			Endpoint: "restaurants/", Route: "/admin/restaurants",
			RequiredRole: roles.Admin, PageSize: DefaultPageSize,
			Fields: []Field{
				{Name: "name", Label: "Name", Kind: KindText, Required: true},
				{Name: "email", Label: "Email", Kind: KindEmail, Required: true},
				{Name: "phone", Label: "Phone", Kind: KindText},
				{Name: "address", Label: "Address", Kind: KindTextArea},
				{Name: "website", Label: "Website", Kind: KindURL},
				{Name: "plan", Label: "Plan ID", Kind: KindText},
				{Name: "is_active", Label: "Active", Kind: KindBool},
			},
		},
		Columns: []Column[Restaurant]{
			{"Name", func(r Restaurant) string { return r.Name }},
			{"Email", func(r Restaurant) string { return r.Email }},
			{"Phone", func(r Restaurant) string { return r.Phone }},
			{"Active", func(r Restaurant) string { return yesNo(r.Active) }},
		},
	}
}

func Menus() Resource[Menu] {
	return Resource[Menu]{
		Descriptor: Descriptor{
			Name: "menus", Title: "Menu", Singular: "Menu",
			Endpoint: "menus/", Route: "/subadmin/menu",
			RequiredRole: roles.SubAdmin, PageSize: DefaultPageSize,
			Fields: []Field{
				{Name: "name", Label: "Name", Kind: KindText, Required: true},
				{Name: "description", Label: "Description", Kind: KindTextArea},
				{Name: "is_active", Label: "Active", Kind: KindBool},
			},
		},
		Columns: []Column[Menu]{
			{"Name", func(m Menu) string { return m.Name }},
			{"Description", func(m Menu) string { return m.Description }},
			{"Active", func(m Menu) string { return yesNo(m.Active) }},
		},
	}
}

func MenuItems() Resource[MenuItem] {
	return Resource[MenuItem]{
		Descriptor: Descriptor{
			Name: "menu-items", Title: "Menu Items", Singular: "Menu Item",
			Endpoint: "menu-items/", Route: "/subadmin/menu-items",
			RequiredRole: roles.SubAdmin, PageSize: DefaultPageSize,
			Fields: []Field{
				{Name: "name", Label: "Name", Kind: KindText, Required: true},
				{Name: "menu", Label: "Menu ID", Kind: KindText, Required: true},
				{Name: "price", Label: "Price", Kind: KindNumber, Required: true},
				{Name: "description", Label: "Description", Kind: KindTextArea},
				{Name: "image_url", Label: "Image URL", Kind: KindURL},
				{Name: "is_available", Label: "Available", Kind: KindBool},
			},
		},
		Columns: []Column[MenuItem]{
			{"Name", func(m MenuItem) string { return m.Name }},
			{"Price", func(m MenuItem) string { return money(m.Price) }},
			{"Available", func(m MenuItem) string { return yesNo(m.Available) }},
		},
	}
}

func BusinessHours() Resource[BusinessHour] {
	return Resource[BusinessHour]{
		Descriptor: Descriptor{
			Name: "business-hours", Title: "Business Hours", Singular: "Business Hour",
			Endpoint: "business-hours/", Route: "/subadmin/business-hours",
			RequiredRole: roles.SubAdmin, PageSize: DefaultPageSize,
			Fields: []Field{
				{Name: "day", Label: "Day", Kind: KindSelect, Required: true, Options: weekDays},
				{Name: "open_time", Label: "Opens", Kind: KindTime, Required: true},
				{Name: "close_time", Label: "Closes", Kind: KindTime, Required: true},
				{Name: "is_closed", Label: "Closed all day", Kind: KindBool},
			},
		},
		Columns: []Column[BusinessHour]{
			{"Day", func(b BusinessHour) string { return b.Day }},
			{"Opens", func(b BusinessHour) string { return b.OpenTime }},
			{"Closes", func(b BusinessHour) string { return b.CloseTime }},
			{"Closed", func(b BusinessHour) string { return yesNo(b.Closed) }},
		},
	}
}

func CateringRequests() Resource[CateringRequest] {
	return Resource[CateringRequest]{
		Descriptor: Descriptor{
			Name: "catering-requests", Title: "Catering Requests", Singular: "Catering Request",
			Endpoint: "catering-requests/", Route: "/subadmin/catering-requests",
			RequiredRole: roles.SubAdmin, PageSize: DefaultPageSize,
			Fields: []Field{
				{Name: "customer_name", Label: "Customer", Kind: KindText, Required: true},
				{Name: "email", Label: "Email", Kind: KindEmail, Required: true},
				{Name: "phone", Label: "Phone", Kind: KindText},
				{Name: "event_date", Label: "Event date", Kind: KindDate, Required: true},
				{Name: "guests", Label: "Guests", Kind: KindInteger, Required: true},
				{Name: "status", Label: "Status", Kind: KindSelect, Required: true, Options: []string{"pending", "confirmed", "declined"}},
			},
		},
		Columns: []Column[CateringRequest]{
			{"Customer", func(c CateringRequest) string { return c.CustomerName }},
			{"Event date", func(c CateringRequest) string { return c.EventDate }},
			{"Guests", func(c CateringRequest) string { return strconv.Itoa(c.Guests) }},
			{"Status", func(c CateringRequest) string { return c.Status }},
		},
	}
}

func Tables() Resource[Table] {
	return Resource[Table]{
		Descriptor: Descriptor{
			Name: "tables", Title: "Tables", Singular: "Table",
			Endpoint: "tables/", Route: "/subadmin/tables",
			RequiredRole: roles.SubAdmin, PageSize: DefaultPageSize,
			Fields: []Field{
				{Name: "number", Label: "Table number", Kind: KindText, Required: true},
				{Name: "capacity", Label: "Seats", Kind: KindInteger, Required: true},
				{Name: "location", Label: "Location", Kind: KindText},
			},
		},
		Columns: []Column[Table]{
			{"Table", func(t Table) string { return t.Number }},
			{"Seats", func(t Table) string { return strconv.Itoa(t.Capacity) }},
			{"Location", func(t Table) string { return t.Location }},
		},
	}
}

func UpsellOffers() Resource[UpsellOffer] {
	return Resource[UpsellOffer]{
		Descriptor: Descriptor{
			Name: "upsell-offers", Title: "Upsell Offers", Singular: "Upsell Offer",
			Endpoint: "upsell-offers/", Route: "/subadmin/upsell-offers",
			RequiredRole: roles.SubAdmin, PageSize: DefaultPageSize,
			Fields: []Field{
				{Name: "title", Label: "Title", Kind: KindText, Required: true},
				{Name: "menu_item", Label: "Menu item ID", Kind: KindText, Required: true},
				{Name: "price", Label: "Offer price", Kind: KindNumber, Required: true},
				{Name: "description", Label: "Description", Kind: KindTextArea},
				{Name: "is_active", Label: "Active", Kind: KindBool},
			},
		},
		Columns: []Column[UpsellOffer]{
			{"Title", func(u UpsellOffer) string { return u.Title }},
			{"Price", func(u UpsellOffer) string { return money(u.Price) }},
			{"Active", func(u UpsellOffer) string { return yesNo(u.Active) }},
		},
	}
}

func FeedbackQuestions() Resource[FeedbackQuestion] {
	return Resource[FeedbackQuestion]{
		Descriptor: Descriptor{
			Name: "feedback", Title: "Feedback", Singular: "Feedback Question",
			Endpoint: "feedback-questions/", Route: "/subadmin/feedback",
			RequiredRole: roles.SubAdmin, PageSize: DefaultPageSize,
			Fields: []Field{
				{Name: "question", Label: "Question", Kind: KindTextArea, Required: true},
				{Name: "question_type", Label: "Answer type", Kind: KindSelect, Required: true, Options: []string{"rating", "text", "yes_no"}},
				{Name: "is_active", Label: "Active", Kind: KindBool},
			},
		},
		Columns: []Column[FeedbackQuestion]{
			{"Question", func(f FeedbackQuestion) string { return f.Question }},
			{"Type", func(f FeedbackQuestion) string { return f.Type }},
			{"Active", func(f FeedbackQuestion) string { return yesNo(f.Active) }},
		},
	}
}
