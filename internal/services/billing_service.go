package services

import (
	"context"

	"github.com/google/uuid"
	stripe "github.com/stripe/stripe-go/v82"
	checkoutsession "github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/customer"
	"github.com/stripe/stripe-go/v82/subscription"
	"github.com/vegaswarrior/Property-Management-sub001/internal/config"
	"github.com/vegaswarrior/Property-Management-sub001/internal/constants"
	internal_dtos "github.com/vegaswarrior/Property-Management-sub001/internal/dtos"
	"github.com/vegaswarrior/Property-Management-sub001/internal/repositories"
	"github.com/vegaswarrior/Property-Management-sub001/internal/utils"
)

// BillingService manages landlord subscriptions through Stripe.
type BillingService struct {
	cfg          *config.Config
	landlordRepo repositories.LandlordRepository
}

func NewBillingService(cfg *config.Config, landlordRepo repositories.LandlordRepository) *BillingService {
	stripe.Key = cfg.StripeSecretKey
	return &BillingService{cfg: cfg, landlordRepo: landlordRepo}
}

func (s *BillingService) priceForTier(tier string) (string, error) {
	switch tier {
	case constants.TierStarter:
		return s.cfg.StripePriceStarter, nil
	case constants.TierProfessional:
		return s.cfg.StripePriceProfessional, nil
	case constants.TierPortfolio:
		return s.cfg.StripePricePortfolio, nil
	default:
		return "", utils.ErrTierUnknown
	}
}

func (s *BillingService) GetSubscription(ctx context.Context, landlordID uuid.UUID) (*internal_dtos.SubscriptionResponse, error) {
	landlord, err := s.landlordRepo.GetByID(ctx, landlordID)
	if err != nil {
		return nil, err
	}
	if landlord == nil {
		return nil, utils.ErrNotFound
	}
	return &internal_dtos.SubscriptionResponse{
		Tier:             landlord.SubscriptionTier,
		StripeCustomerID: landlord.StripeCustomerID,
		Active:           landlord.StripeSubscriptionID != nil,
	}, nil
}

// CreateCheckoutSession starts a Stripe Checkout flow for the requested
// tier, creating the Stripe customer on first use.
func (s *BillingService) CreateCheckoutSession(ctx context.Context, landlordID uuid.UUID, tier string) (*internal_dtos.CheckoutSessionResponse, error) {
	priceID, err := s.priceForTier(tier)
	if err != nil {
		return nil, err
	}

	landlord, err := s.landlordRepo.GetByID(ctx, landlordID)
	if err != nil {
		return nil, err
	}
	if landlord == nil {
		return nil, utils.ErrNotFound
	}

	custID := landlord.StripeCustomerID
	if custID == nil {
		cust, err := customer.New(&stripe.CustomerParams{
			Email: stripe.String(landlord.Email),
			Name:  stripe.String(landlord.Name),
		})
		if err != nil {
			return nil, err
		}
		custID = &cust.ID
		if err := s.landlordRepo.SetStripeRefs(ctx, landlordID, custID, landlord.StripeSubscriptionID); err != nil {
			return nil, err
		}
	}

	sess, err := checkoutsession.New(&stripe.CheckoutSessionParams{
		Customer:   stripe.String(*custID),
		Mode:       stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		SuccessURL: stripe.String(s.cfg.AppUrl + "/dashboard/billing?status=success"),
		CancelURL:  stripe.String(s.cfg.AppUrl + "/dashboard/billing?status=cancelled"),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{Price: stripe.String(priceID), Quantity: stripe.Int64(1)},
		},
		ClientReferenceID: stripe.String(landlordID.String()),
	})
	if err != nil {
		return nil, err
	}

	return &internal_dtos.CheckoutSessionResponse{CheckoutURL: sess.URL}, nil
}

// ChangeTier swaps the active subscription's price in place.
func (s *BillingService) ChangeTier(ctx context.Context, landlordID uuid.UUID, tier string) error {
	priceID, err := s.priceForTier(tier)
	if err != nil {
		return err
	}

	landlord, err := s.landlordRepo.GetByID(ctx, landlordID)
	if err != nil {
		return err
	}
	if landlord == nil {
		return utils.ErrNotFound
	}
	if landlord.StripeSubscriptionID == nil {
		return utils.ErrNotSubscribed
	}

	sub, err := subscription.Get(*landlord.StripeSubscriptionID, nil)
	if err != nil {
		return err
	}
	if len(sub.Items.Data) == 0 {
		return utils.ErrNotSubscribed
	}

	_, err = subscription.Update(sub.ID, &stripe.SubscriptionParams{
		Items: []*stripe.SubscriptionItemsParams{
			{
				ID:    stripe.String(sub.Items.Data[0].ID),
				Price: stripe.String(priceID),
			},
		},
		ProrationBehavior: stripe.String("create_prorations"),
	})
	if err != nil {
		return err
	}

	return s.landlordRepo.SetSubscriptionTier(ctx, landlordID, tier)
}

// CancelSubscription cancels at period end and drops the landlord back to
// the starter tier.
func (s *BillingService) CancelSubscription(ctx context.Context, landlordID uuid.UUID) error {
	landlord, err := s.landlordRepo.GetByID(ctx, landlordID)
	if err != nil {
		return err
	}
	if landlord == nil {
		return utils.ErrNotFound
	}
	if landlord.StripeSubscriptionID == nil {
		return utils.ErrNotSubscribed
	}

	_, err = subscription.Update(*landlord.StripeSubscriptionID, &stripe.SubscriptionParams{
		CancelAtPeriodEnd: stripe.Bool(true),
	})
	if err != nil {
		return err
	}

	return s.landlordRepo.SetSubscriptionTier(ctx, landlordID, constants.TierStarter)
}
