package catalog

// Entity is any backend record the console lists
type Entity interface {
	EntityID() ID
}

type Plan struct {
	ID           ID      `json:"id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	DurationDays int     `json:"duration_days"`
	Description  string  `json:"description,omitempty"`
}

func (p Plan) EntityID() ID { return p.ID }

type Restaurant struct {
	ID      ID     `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	Website string `json:"website,omitempty"`
	Plan    ID     `json:"plan,omitempty"`
	Active  bool   `json:"is_active"`
}

func (r Restaurant) EntityID() ID { return r.ID }

type Menu struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Active      bool   `json:"is_active"`
}

func (m Menu) EntityID() ID { return m.ID }

type MenuItem struct {
	ID          ID      `json:"id"`
	Name        string  `json:"name"`
	Menu        ID      `json:"menu"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
	ImageURL    string  `json:"image_url,omitempty"`
	Available   bool    `json:"is_available"`
}

func (m MenuItem) EntityID() ID { return m.ID }

type BusinessHour struct {
	ID        ID     `json:"id"`
	Day       string `json:"day"`
	OpenTime  string `json:"open_time"`
	CloseTime string `json:"close_time"`
	Closed    bool   `json:"is_closed"`
}

func (b BusinessHour) EntityID() ID { return b.ID }

type CateringRequest struct {
	ID           ID     `json:"id"`
	CustomerName string `json:"customer_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	EventDate    string `json:"event_date"`
	Guests       int    `json:"guests"`
	Status       string `json:"status"`
}

func (c CateringRequest) EntityID() ID { return c.ID }

type Table struct {
	ID       ID     `json:"id"`
	Number   string `json:"number"`
	Capacity int    `json:"capacity"`
	Location string `json:"location,omitempty"`
}

func (t Table) EntityID() ID { return t.ID }

type UpsellOffer struct {
	ID          ID      `json:"id"`
	Title       string  `json:"title"`
	MenuItem    ID      `json:"menu_item"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
	Active      bool    `json:"is_active"`
}

func (u UpsellOffer) EntityID() ID { return u.ID }

type FeedbackQuestion struct {
	ID       ID     `json:"id"`
	Question string `json:"question"`
	Type     string `json:"question_type"`
	Active   bool   `json:"is_active"`
}

func (f FeedbackQuestion) EntityID() ID { return f.ID }
