package dtos

type SubscriptionResponse struct {
	Tier             string  `json:"tier"`
	StripeCustomerID *string `json:"stripe_customer_id,omitempty"`
	Active           bool    `json:"active"`
}

type ChangeTierRequest struct {
	Tier string `json:"tier" validate:"required,oneof=starter professional portfolio"`
}

type CheckoutSessionResponse struct {
	CheckoutURL string `json:"checkout_url"`
}
