package dto

type BankrollResponse struct {
	CurrentBalance float64 `json:"current_balance"`
}

type UpdateBankrollRequest struct {
	CurrentBalance float64 `json:"current_balance"`
}
