package common

type CostEstimate struct {
	// per asset id, decimal strings with 7 places
	TotalAmount          map[string]string `json:"total_amount"`
	EstimatedFees        string            `json:"estimated_fees"`
	EstimatedFeesStroops int64             `json:"estimated_fees_stroops"`
	NumberOfTransactions int               `json:"number_of_transactions"`
	// inclusion fee upper bound charged per operation by the network
	MaxNetworkFeeStroops int64 `json:"max_network_fee_stroops"`
}
