package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Type discriminator defaults per the TMF product ordering schema.
const (
	TypeProductOrder         = "ProductOrder"
	TypeProductOrderItem     = "ProductOrderItem"
	TypeUNIProduct           = "UNI"
	TypeObjectCharacteristic = "ObjectCharacteristic"
	TypeStringCharValue      = "StringCharacteristicValue"
	TypeRelatedParty         = "RelatedPartyRefOrPartyRoleRef"
	TypePartyRef             = "PartyRef"
	TypeProductSpecRef       = "ProductSpecificationRef"
	TypeExternalIdentifier   = "ExternalIdentifier"
)

// StateInProgress is the initial lifecycle state assigned at creation.
const StateInProgress = "inProgress"

// ProductOrder is the persisted aggregate root. The storage-assigned _id
// coexists with the domain id. Date fields carry ISO-8601 strings, matching
// the wire format.
type ProductOrder struct {
	ObjectID                primitive.ObjectID   `json:"_id,omitempty" bson:"_id,omitempty"`
	ID                      string               `json:"id,omitempty" bson:"id,omitempty"`
	Type                    string               `json:"@type,omitempty" bson:"@type,omitempty"`
	SchemaLocation          string               `json:"@schemaLocation,omitempty" bson:"@schemaLocation,omitempty"`
	Category                string               `json:"category,omitempty" bson:"category,omitempty"`
	Description             string               `json:"description,omitempty" bson:"description,omitempty"`
	ExternalID              []ExternalIdentifier `json:"externalId,omitempty" bson:"externalId,omitempty"`
	Priority                string               `json:"priority,omitempty" bson:"priority,omitempty"`
	RequestedStartDate      string               `json:"requestedStartDate,omitempty" bson:"requestedStartDate,omitempty"`
	RequestedCompletionDate string               `json:"requestedCompletionDate,omitempty" bson:"requestedCompletionDate,omitempty"`
	ProductOrderItem        []ProductOrderItem   `json:"productOrderItem,omitempty" bson:"productOrderItem,omitempty"`
	RelatedParty            []RelatedParty       `json:"relatedParty,omitempty" bson:"relatedParty,omitempty"`
	State                   string               `json:"state,omitempty" bson:"state,omitempty"`
	CompletionDate          string               `json:"completionDate,omitempty" bson:"completionDate,omitempty"`
	CreationDate            string               `json:"creationDate,omitempty" bson:"creationDate,omitempty"`
}

// ProductOrderItem is one line item of an order.
type ProductOrderItem struct {
	ID       string   `json:"id,omitempty" bson:"id,omitempty"`
	Quantity int      `json:"quantity,omitempty" bson:"quantity,omitempty"`
	Action   string   `json:"action,omitempty" bson:"action,omitempty"`
	Product  *Product `json:"product,omitempty" bson:"product,omitempty"`
	Type     string   `json:"@type,omitempty" bson:"@type,omitempty"`
}

// Product is the UNI product variant carried by an order item.
type Product struct {
	IsBundle              bool                     `json:"isBundle,omitempty" bson:"isBundle,omitempty"`
	Type                  string                   `json:"@type,omitempty" bson:"@type,omitempty"`
	ProductSpecification  *ProductSpecificationRef `json:"productSpecification,omitempty" bson:"productSpecification,omitempty"`
	ProductCharacteristic []ObjectCharacteristic   `json:"productCharacteristic,omitempty" bson:"productCharacteristic,omitempty"`
}

// ProductSpecificationRef points at the specification a product instantiates.
type ProductSpecificationRef struct {
	ID      string `json:"id,omitempty" bson:"id,omitempty"`
	Href    string `json:"href,omitempty" bson:"href,omitempty"`
	Version string `json:"version,omitempty" bson:"version,omitempty"`
	Name    string `json:"name,omitempty" bson:"name,omitempty"`
	Type    string `json:"@type,omitempty" bson:"@type,omitempty"`
}

// ObjectCharacteristic is a named product characteristic. Value stays loosely
// typed so the "must be a structured object" invariant is enforced by the
// normalizer rather than failing at decode time.
type ObjectCharacteristic struct {
	ID        string `json:"id,omitempty" bson:"id,omitempty"`
	Name      string `json:"name,omitempty" bson:"name,omitempty"`
	ValueType string `json:"valueType,omitempty" bson:"valueType,omitempty"`
	Type      string `json:"@type,omitempty" bson:"@type,omitempty"`
	Value     any    `json:"value,omitempty" bson:"value,omitempty"`
}

// RelatedParty links a party or party role to the order.
type RelatedParty struct {
	Role             string    `json:"role,omitempty" bson:"role,omitempty"`
	PartyOrPartyRole *PartyRef `json:"partyOrPartyRole,omitempty" bson:"partyOrPartyRole,omitempty"`
	Type             string    `json:"@type,omitempty" bson:"@type,omitempty"`
}

// PartyRef references a party held in an external inventory.
type PartyRef struct {
	ID           string `json:"id,omitempty" bson:"id,omitempty"`
	Href         string `json:"href,omitempty" bson:"href,omitempty"`
	Name         string `json:"name,omitempty" bson:"name,omitempty"`
	Type         string `json:"@type,omitempty" bson:"@type,omitempty"`
	ReferredType string `json:"@referredType,omitempty" bson:"@referredType,omitempty"`
}

// ExternalIdentifier carries an id assigned to this order by another system.
type ExternalIdentifier struct {
	Type                   string `json:"@type,omitempty" bson:"@type,omitempty"`
	Owner                  string `json:"owner,omitempty" bson:"owner,omitempty"`
	ExternalIdentifierType string `json:"externalIdentifierType,omitempty" bson:"externalIdentifierType,omitempty"`
	ID                     string `json:"id,omitempty" bson:"id,omitempty"`
}
