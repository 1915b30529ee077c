package service

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/rukshanl/product-order-api/internal/models"
)

var (
	ErrMissingType       = errors.New("missing type discriminator")
	ErrMissingOrderItems = errors.New("missing or invalid order-item list")
	ErrMissingProduct    = errors.New("missing product in item")
	ErrInvalidCharValue  = errors.New("invalid characteristic value: must be an object")
)

// NormalizeOrder validates the structural requirements of a product order and
// fills in the default discriminator and identity fields. It mutates the order
// in place and performs no I/O. Already-populated fields are never overwritten,
// so normalization is idempotent.
func NormalizeOrder(order *models.ProductOrder) error {
	if order.Type == "" {
		return ErrMissingType
	}

	// nil means the field was absent; an explicitly empty list is acceptable.
	if order.ProductOrderItem == nil {
		return ErrMissingOrderItems
	}

	for i := range order.ProductOrderItem {
		item := &order.ProductOrderItem[i]

		if item.Type == "" {
			item.Type = models.TypeProductOrderItem
		}

		if item.Product == nil {
			return ErrMissingProduct
		}

		if item.Product.Type == "" {
			item.Product.Type = models.TypeUNIProduct
		}

		for j := range item.Product.ProductCharacteristic {
			if err := normalizeCharacteristic(&item.Product.ProductCharacteristic[j]); err != nil {
				return err
			}
		}

		if spec := item.Product.ProductSpecification; spec != nil && spec.Type == "" {
			spec.Type = models.TypeProductSpecRef
		}
	}

	for i := range order.RelatedParty {
		party := &order.RelatedParty[i]
		if party.Type == "" {
			party.Type = models.TypeRelatedParty
		}
		if party.PartyOrPartyRole != nil && party.PartyOrPartyRole.Type == "" {
			party.PartyOrPartyRole.Type = models.TypePartyRef
		}
	}

	for i := range order.ExternalID {
		if order.ExternalID[i].Type == "" {
			order.ExternalID[i].Type = models.TypeExternalIdentifier
		}
	}

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if order.CreationDate == "" {
		order.CreationDate = time.Now().UTC().Format(time.RFC3339)
	}

	return nil
}

// normalizeCharacteristic enforces the one real validation rule of the
// system: a characteristic value must be a structured object, never a
// primitive. The value object's own discriminator is then defaulted.
func normalizeCharacteristic(ch *models.ObjectCharacteristic) error {
	if ch.Type == "" {
		ch.Type = models.TypeObjectCharacteristic
	}

	value, ok := ch.Value.(map[string]any)
	if !ok {
		return ErrInvalidCharValue
	}

	if t, _ := value["@type"].(string); t == "" {
		value["@type"] = models.TypeStringCharValue
	}

	return nil
}
