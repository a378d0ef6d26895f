package common

type RecipientBatch []PaymentRecipient

type batchBlueprint struct {
	Recipients    RecipientBatch
	maxOperations int
}

func NewBatch(maxOperations int) batchBlueprint {
	return batchBlueprint{
		Recipients:    make(RecipientBatch, 0, maxOperations),
		maxOperations: maxOperations,
	}
}

// AddRecipient returns false once the batch holds maxOperations payments
func (b *batchBlueprint) AddRecipient(recipient PaymentRecipient) bool {
	if len(b.Recipients) >= b.maxOperations {
		return false
	}
	b.Recipients = append(b.Recipients, recipient)
	return true
}

func (b *batchBlueprint) ToBatch() RecipientBatch {
	return b.Recipients
}
