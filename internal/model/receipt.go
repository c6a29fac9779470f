package model

// ReceiptItem is a single line item recognized on a receipt.
type ReceiptItem struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Receipt is the structured result of the backend's mock OCR endpoint. The
// client treats it as opaque input for pre-filling a transaction form; no
// image analysis happens on either side.
type Receipt struct {
	Text            string        `json:"text"`
	ExtractedText   string        `json:"extractedText"`
	RawText         string        `json:"raw_text"`
	MerchantName    string        `json:"merchant_name"`
	TransactionDate string        `json:"transaction_date"`
	ProcessedAt     string        `json:"processedAt"`
	Items           []ReceiptItem `json:"items"`
	Amount          float64       `json:"amount"`
	ConfidenceScore float64       `json:"confidence_score"`
	WordCount       int           `json:"word_count"`
}
