package models

// MenuSelection is one line of the order form: a menu id and how many of
// that package the customer wants.
type MenuSelection struct {
	ID       string `json:"id" validate:"required"`
	Quantity int    `json:"quantity" validate:"gte=0"`
}

// OrderSubmission is the payload of one order request. It lives only for
// the duration of the request; the persisted record is built from it.
// Field names follow the order form's wire format.
type OrderSubmission struct {
	CompanyName       string          `json:"nomEntreprise" validate:"required,min=2,max=100"`
	Phone             string          `json:"numeroTelephone" validate:"required,min=1,max=30"`
	AvailabilityStart string          `json:"horaireDisponibiliteDebut" validate:"required,datetime=15:04"`
	AvailabilityEnd   string          `json:"horaireDisponibiliteFin" validate:"required,datetime=15:04"`
	Menus             []MenuSelection `json:"menus" validate:"required,min=1,dive"`
	Notes             string          `json:"informationsSupplementaires" validate:"omitempty,max=1000"`
}

// HasSelection reports whether at least one line carries a positive
// quantity. Submissions without one are rejected.
func (s OrderSubmission) HasSelection() bool {
	for _, menu := range s.Menus {
		if menu.Quantity > 0 {
			return true
		}
	}
	return false
}
