package models

// CreditTitle is a municipal tax or fee obligation available for payment.
type CreditTitle struct {
	Code                  int64   `json:"code"`
	Date                  string  `json:"date"`
	Concept               string  `json:"concept"`
	Reference             string  `json:"reference"`
	AmountCollected       float64 `json:"amountCollected"`
	AmountCollectedInWords string `json:"amountCollectedInWords"`
	Value                 float64 `json:"value"`
	ValueInWords          string  `json:"valueInWords"`
	Interest              float64 `json:"interest"`
	InterestInWords       string  `json:"interestInWords"`
	Surcharges            float64 `json:"surcharges"`
	SurchargesInWords     string  `json:"surchargesInWords"`
	Change                float64 `json:"change"`
	ChangeInWords         string  `json:"changeInWords"`
	TotalToPay            float64 `json:"totalToPay"`
	TotalInWords          string  `json:"totalInWords"`
	PaymentMethod         string  `json:"paymentMethod"`
	Account               string  `json:"account"`
	Bank                  string  `json:"bank"`
	Check                 string  `json:"check"`
	Notes                 string  `json:"notes"`
	Collector             string  `json:"collector"`
	InvoiceNumber         int64   `json:"invoiceNumber"`
}
