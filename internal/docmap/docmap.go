// Package docmap converts between generic segment trees and canonical
// business records, one mapper per supported transaction set. It is the
// only surface business-flow callers touch: they never see the lexer,
// parser or generator directly.
package docmap

import (
	"fmt"

	"github.com/edikit/edikit/internal/edi"
)

// Mapping error codes. A mapping failure means the input is structurally
// valid EDI that does not satisfy the chosen document type's schema, which
// is a different condition from a structural parse error.
const (
	ErrWrongType      = "mapping-wrong-type"
	ErrMissingSegment = "mapping-missing-segment"
	ErrMissingElement = "mapping-missing-element"
)

// MappingError reports why a transaction set could not be mapped.
type MappingError struct {
	Code      string
	Message   string
	SegmentID string
	Pos       edi.Position
}

func (e *MappingError) Error() string {
	if e.SegmentID != "" {
		return fmt.Sprintf("[%s] %s (segment %s)", e.Code, e.Message, e.SegmentID)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func wrongType(want, got string) *MappingError {
	return &MappingError{
		Code:    ErrWrongType,
		Message: fmt.Sprintf("transaction set is %q, mapper expects %q", got, want),
	}
}

func missingSegment(id string) *MappingError {
	return &MappingError{
		Code:      ErrMissingSegment,
		Message:   fmt.Sprintf("mandatory segment %s is absent", id),
		SegmentID: id,
	}
}

func missingElement(seg *edi.Segment, n int, name string) *MappingError {
	return &MappingError{
		Code:      ErrMissingElement,
		Message:   fmt.Sprintf("mandatory element %s%02d (%s) is empty", seg.ID, n, name),
		SegmentID: seg.ID,
		Pos:       seg.Pos,
	}
}

// Party is one trading party reference (an X12 N1 loop entry or an
// EDIFACT NAD segment).
type Party struct {
	Qualifier   string `json:"qualifier"` // e.g. "BY" buyer, "SE" seller, "ST" ship-to
	Name        string `json:"name,omitempty"`
	IDQualifier string `json:"id_qualifier,omitempty"`
	ID          string `json:"id,omitempty"`
}

// OrderLine is one line item of a purchase order or acknowledgment.
// Quantities and prices stay as the raw interchange strings: numeric
// interpretation (and the EDIFACT decimal mark) is the consuming flow's
// concern.
type OrderLine struct {
	Number      string `json:"number"`
	Quantity    string `json:"quantity"`
	Unit        string `json:"unit"`
	UnitPrice   string `json:"unit_price,omitempty"`
	IDQualifier string `json:"id_qualifier,omitempty"`
	ItemID      string `json:"item_id,omitempty"`
	Description string `json:"description,omitempty"`
}

// PurchaseOrder is the canonical purchase order record shared by the X12
// 850 and EDIFACT ORDERS mappers.
// Reference is a qualified reference number (REF in X12).
type Reference struct {
	Qualifier string `json:"qualifier"` // e.g. "CO" customer order, "DP" department
	Value     string `json:"value"`
}

type PurchaseOrder struct {
	Number       string      `json:"number"`
	TypeCode     string      `json:"type_code,omitempty"`
	PurposeCode  string      `json:"purpose_code,omitempty"`
	Date         string      `json:"date,omitempty"`
	DeliveryDate string      `json:"delivery_date,omitempty"`
	References   []Reference `json:"references,omitempty"`
	Parties      []Party     `json:"parties,omitempty"`
	Lines        []OrderLine `json:"lines"`
}

// AckLine is one acknowledged order line.
type AckLine struct {
	Number      string `json:"number"`
	Quantity    string `json:"quantity"`
	Unit        string `json:"unit"`
	IDQualifier string `json:"id_qualifier,omitempty"`
	ItemID      string `json:"item_id,omitempty"`
	// Status is the line status code (ACK01), e.g. "IA" item accepted.
	Status string `json:"status,omitempty"`
}

// Acknowledgment is the canonical 855 purchase order acknowledgment.
type Acknowledgment struct {
	OrderNumber string    `json:"order_number"`
	PurposeCode string    `json:"purpose_code,omitempty"`
	AckType     string    `json:"ack_type,omitempty"`
	Date        string    `json:"date,omitempty"`
	Lines       []AckLine `json:"lines"`
}

// ShipItem is one shipped item on a ship notice.
type ShipItem struct {
	IDQualifier string `json:"id_qualifier,omitempty"`
	ItemID      string `json:"item_id"`
	Quantity    string `json:"quantity"`
	Unit        string `json:"unit"`
}

// ShipNotice is the canonical 856 advance ship notice. The HL hierarchy is
// flattened to its item leaves; packaging structure is not modeled.
type ShipNotice struct {
	ShipmentID     string     `json:"shipment_id"`
	PurposeCode    string     `json:"purpose_code,omitempty"`
	Date           string     `json:"date,omitempty"`
	Time           string     `json:"time,omitempty"`
	PackagingCode  string     `json:"packaging_code,omitempty"`
	LadingQuantity string     `json:"lading_quantity,omitempty"`
	Items          []ShipItem `json:"items"`
}

// InvoiceLine is one billed line of an invoice.
type InvoiceLine struct {
	Number      string `json:"number"`
	Quantity    string `json:"quantity"`
	Unit        string `json:"unit"`
	UnitPrice   string `json:"unit_price,omitempty"`
	IDQualifier string `json:"id_qualifier,omitempty"`
	ItemID      string `json:"item_id,omitempty"`
}

// Invoice is the canonical 810 invoice.
type Invoice struct {
	Number      string        `json:"number"`
	Date        string        `json:"date,omitempty"`
	OrderNumber string        `json:"order_number,omitempty"`
	Parties     []Party       `json:"parties,omitempty"`
	Lines       []InvoiceLine `json:"lines"`
	// TotalAmount is TDS01, in the implied-decimal form X12 uses.
	TotalAmount string `json:"total_amount,omitempty"`
}

// TransactionAck is the per-transaction verdict inside a 997.
type TransactionAck struct {
	SetID   string `json:"set_id"`
	Control string `json:"control"`
	Status  string `json:"status"` // AK501: A accepted, E accepted with errors, R rejected
}

// FunctionalAck is the canonical 997 functional acknowledgment.
type FunctionalAck struct {
	FunctionalCode string           `json:"functional_code"`
	GroupControl   string           `json:"group_control"`
	Status         string           `json:"status"` // AK901
	Included       int              `json:"included"`
	Received       int              `json:"received"`
	Accepted       int              `json:"accepted"`
	Transactions   []TransactionAck `json:"transactions,omitempty"`
}
