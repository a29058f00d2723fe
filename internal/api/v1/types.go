package apiv1

// Pong defines model for Pong.
type Pong struct {
	Ping string `json:"ping"`
}

// Error defines model for Error.
type Error struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Option defines model for Option. Price is only set for members with a
// subscription subject to the round.
type Option struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	SortOrder uint    `json:"sort_order"`
	Price     *string `json:"price,omitempty"`
}

// Selection defines model for Selection.
type Selection struct {
	OptionID         *uint  `json:"option_id"`
	Price            string `json:"price"`
	ContactMe        bool   `json:"contact_me"`
	ModificationDate string `json:"modification_date"`
}

// ActiveRound defines model for ActiveRound.
type ActiveRound struct {
	ID            uint       `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	OtherAmount   bool       `json:"other_amount"`
	Currency      string     `json:"currency"`
	Options       []Option   `json:"options"`
	MinimumAmount *string    `json:"minimum_amount,omitempty"`
	NominalPrice  *string    `json:"nominal_price,omitempty"`
	Selection     *Selection `json:"selection,omitempty"`
}

// OptionSummary defines model for OptionSummary.
type OptionSummary struct {
	ID                  uint   `json:"id"`
	Name                string `json:"name"`
	SelectionCount      int    `json:"selection_count"`
	SelectionPercentage string `json:"selection_percentage"`
	Total               string `json:"total"`
	AveragePrice        string `json:"average_price"`
}

// RoundSummary defines model for RoundSummary.
type RoundSummary struct {
	ID                     uint            `json:"id"`
	Name                   string          `json:"name"`
	Status                 string          `json:"status"`
	Currency               string          `json:"currency"`
	SubjectSubscriptions   int             `json:"subject_subscriptions"`
	Submitted              int             `json:"submitted"`
	Progress               string          `json:"progress"`
	OtherAmounts           int             `json:"other_amounts"`
	OtherAmountsPercentage string          `json:"other_amounts_percentage"`
	ContactRequests        int             `json:"contact_requests"`
	TotalSelected          string          `json:"total_selected"`
	TotalUnselected        string          `json:"total_unselected"`
	CurrentTotal           string          `json:"current_total"`
	NominalTotal           string          `json:"nominal_total"`
	Target                 string          `json:"target"`
	TargetPercentage       string          `json:"target_percentage"`
	AveragePrice           string          `json:"average_price"`
	Options                []OptionSummary `json:"options"`
}
