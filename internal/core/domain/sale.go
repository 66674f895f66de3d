package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is derived from totalPrice vs currentPayment, never set directly.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPartial  PaymentStatus = "partial"
	PaymentPaid     PaymentStatus = "paid"
	PaymentOverpaid PaymentStatus = "overpaid"
)

// DeliveryStatus tracks the order's delivery lifecycle.
type DeliveryStatus string

const (
	DeliveryPending   DeliveryStatus = "pending"
	DeliveryReady     DeliveryStatus = "ready"
	DeliveryDelivered DeliveryStatus = "delivered"
)

// Valid reports whether s is a known delivery status.
func (s DeliveryStatus) Valid() bool {
	return s == DeliveryPending || s == DeliveryReady || s == DeliveryDelivered
}

// PaymentMethod describes how a payment was made.
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodCard         PaymentMethod = "card"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodOnline       PaymentMethod = "online"
	PaymentMethodGold         PaymentMethod = "gold"
	PaymentMethodOther        PaymentMethod = "other"
)

// Valid reports whether m is a known payment method.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodBankTransfer,
		PaymentMethodOnline, PaymentMethodGold, PaymentMethodOther:
		return true
	}
	return false
}

// Payment is one entry in an order's append-only payment history.
type Payment struct {
	Amount decimal.Decimal `json:"amount"`
	Date   time.Time       `json:"date"`
	Method PaymentMethod   `json:"method"`
	Note   string          `json:"note"`
}

// GoldReturn is one entry in an order's append-only gold-return history:
// gold handed by the customer to the shop against the order.
type GoldReturn struct {
	Weight decimal.Decimal `json:"weight"`
	Date   time.Time       `json:"date"`
	Note   string          `json:"note"`
}

// SaleCalculations is the derived pricing sub-object of a jewelry sale.
// Recomputed from scratch whenever any pricing input changes.
type SaleCalculations struct {
	NetGoldWeight           decimal.Decimal `json:"netGoldWeight"`
	PolishWeight            decimal.Decimal `json:"polishWeight"`
	TotalGoldWeight         decimal.Decimal `json:"totalGoldWeight"`
	GoldAfterDeduction      decimal.Decimal `json:"goldAfterDeduction"`
	ExcessGoldWeight        decimal.Decimal `json:"excessGoldWeight"`
	GoldPrice               decimal.Decimal `json:"goldPrice"`
	CustomerGoldPrice       decimal.Decimal `json:"customerGoldPrice"`
	TotalPrice              decimal.Decimal `json:"totalPrice"`
	RemainingBalance        decimal.Decimal `json:"remainingBalance"`
	FinalCustomerPayment    decimal.Decimal `json:"finalCustomerPayment"`
	FinalCustomerGoldWeight decimal.Decimal `json:"finalCustomerGoldWeight"`
	Arrears                 decimal.Decimal `json:"arrears"`
}

// JewelrySale is a customer gold-exchange order: the shop makes a piece of a
// required gold weight, the customer supplies some gold up front (and possibly
// more later via gold returns) and pays the remainder in money over time.
type JewelrySale struct {
	SaleID        string `json:"saleID"`
	UserID        string `json:"userID"`
	CustomerName  string `json:"customerName"`
	ContactNumber string `json:"contactNumber"`

	GoldWeight    decimal.Decimal `json:"goldWeight"`
	StoneWeight   decimal.Decimal `json:"stoneWeight"`
	PolishPerTola decimal.Decimal `json:"polishPerTola"`
	CustomerGold  decimal.Decimal `json:"customerGold"`

	MakingCharges decimal.Decimal `json:"makingCharges"`
	OtherCharges  decimal.Decimal `json:"otherCharges"`

	AdvancePayment decimal.Decimal `json:"advancePayment"`
	CurrentPayment decimal.Decimal `json:"currentPayment"`

	// ChargeForAddedGold prices the gold the shop adds to cover a deficit.
	// IncludeCustomerGoldPrice prices the surplus gold the customer provided
	// beyond what the piece requires.
	ChargeForAddedGold       bool `json:"chargeForAddedGold"`
	IncludeCustomerGoldPrice bool `json:"includeCustomerGoldPrice"`

	GoldRate decimal.Decimal `json:"goldRate"` // per tola

	Calculations   SaleCalculations `json:"calculations"`
	PaymentStatus  PaymentStatus    `json:"paymentStatus"`
	DeliveryStatus DeliveryStatus   `json:"deliveryStatus"`

	PaymentHistory    []Payment    `json:"paymentHistory"`
	GoldReturnHistory []GoldReturn `json:"goldReturnHistory"`

	Notes        string     `json:"notes"`
	OrderDate    time.Time  `json:"orderDate"`
	DeliveryDate *time.Time `json:"deliveryDate,omitempty"`
	AuditFields
}

// Recalculate derives the full pricing sub-object from the current inputs.
//
//	totalGoldWeight = (goldWeight - stoneWeight) + polish weight
//	deficit  -> goldAfterDeduction, priced only when ChargeForAddedGold
//	surplus  -> excessGoldWeight, priced only when IncludeCustomerGoldPrice
//	totalPrice = goldPrice + makingCharges + otherCharges + customerGoldPrice
func (s *JewelrySale) Recalculate() {
	net := s.GoldWeight.Sub(s.StoneWeight)
	if net.IsNegative() {
		net = decimal.Zero
	}
	polish := net.Div(TolaGrams).Mul(s.PolishPerTola)
	total := net.Add(polish)

	deficit := total.Sub(s.CustomerGold)
	excess := decimal.Zero
	if deficit.IsNegative() {
		excess = deficit.Neg()
		deficit = decimal.Zero
	}

	goldPrice := decimal.Zero
	if s.ChargeForAddedGold {
		goldPrice = deficit.Div(TolaGrams).Mul(s.GoldRate)
	}
	customerGoldPrice := decimal.Zero
	if s.IncludeCustomerGoldPrice {
		customerGoldPrice = excess.Div(TolaGrams).Mul(s.GoldRate)
	}

	totalPrice := goldPrice.Add(s.MakingCharges).Add(s.OtherCharges).Add(customerGoldPrice)
	remaining := totalPrice.Sub(s.CurrentPayment)

	s.Calculations = SaleCalculations{
		NetGoldWeight:           RoundWeight(net),
		PolishWeight:            RoundWeight(polish),
		TotalGoldWeight:         RoundWeight(total),
		GoldAfterDeduction:      RoundWeight(deficit),
		ExcessGoldWeight:        RoundWeight(excess),
		GoldPrice:               RoundMoney(goldPrice),
		CustomerGoldPrice:       RoundMoney(customerGoldPrice),
		TotalPrice:              RoundMoney(totalPrice),
		RemainingBalance:        RoundMoney(remaining),
		FinalCustomerPayment:    RoundMoney(s.CurrentPayment),
		FinalCustomerGoldWeight: RoundWeight(s.CustomerGold),
		Arrears:                 RoundMoney(remaining),
	}
	s.refreshPaymentStatus()
}

func (s *JewelrySale) refreshPaymentStatus() {
	remaining := s.Calculations.RemainingBalance
	switch {
	case remaining.IsNegative():
		s.PaymentStatus = PaymentOverpaid
	case remaining.IsZero():
		s.PaymentStatus = PaymentPaid
	case s.CurrentPayment.IsPositive():
		s.PaymentStatus = PaymentPartial
	default:
		s.PaymentStatus = PaymentPending
	}
}

// AddPayment appends to the payment history and recomputes balance and status.
func (s *JewelrySale) AddPayment(amount decimal.Decimal, method PaymentMethod, note string, now time.Time) {
	s.PaymentHistory = append(s.PaymentHistory, Payment{
		Amount: RoundMoney(amount),
		Date:   now,
		Method: method,
		Note:   note,
	})
	s.CurrentPayment = RoundMoney(s.CurrentPayment.Add(amount))
	s.Recalculate()
}

// AddGoldReturn appends to the gold-return history, raises the cumulative
// customer gold and re-runs the deficit/surplus pricing rule.
func (s *JewelrySale) AddGoldReturn(weight decimal.Decimal, note string, now time.Time) {
	s.GoldReturnHistory = append(s.GoldReturnHistory, GoldReturn{
		Weight: RoundWeight(weight),
		Date:   now,
		Note:   note,
	})
	s.CustomerGold = RoundWeight(s.CustomerGold.Add(weight))
	s.Recalculate()
}

// MarkDelivered sets the delivery status and date. Deliberately has no
// precondition on payment completion.
func (s *JewelrySale) MarkDelivered(deliveryDate time.Time) {
	s.DeliveryStatus = DeliveryDelivered
	s.DeliveryDate = &deliveryDate
}
