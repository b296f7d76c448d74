package usecase

// InitiateCheckoutInput mirrors the POST /checkout body. Either ServiceID
// points at a catalog item, or Name+Price describe a fixed package from
// the pricing page.
type InitiateCheckoutInput struct {
	Name      string `json:"name"`
	Price     string `json:"price"`
	Email     string `json:"email"`
	Service   string `json:"service"`
	ServiceID string `json:"id"`
	Method    string `json:"method"`
}

type InitiateCheckoutOutput struct {
	URL string `json:"url"`
}

type CaptureLeadInput struct {
	Name   string `json:"name,omitempty"`
	Phone  string `json:"phone"`
	Email  string `json:"email,omitempty"`
	Source string `json:"source,omitempty"`
}

type CreateLeadInput struct {
	Name    string `json:"name,omitempty"`
	Phone   string `json:"phone"`
	Source  string `json:"source"`
	OwnerID string `json:"owner_id,omitempty"`
}
