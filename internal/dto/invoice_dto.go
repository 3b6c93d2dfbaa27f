package dto

type InvoiceResponse struct {
	ID            string  `json:"id"`
	RepairOrderID string  `json:"repair_order_id"`
	Number        int     `json:"number"`
	Status        string  `json:"status"`
	PDFPath       *string `json:"pdf_path"`
	RetryCount    int     `json:"retry_count"`
	LastError     *string `json:"last_error"`
	CreatedAt     string  `json:"created_at"`
}

type SettingRequest struct {
	Value string `json:"value" validate:"required,max=255"`
}

type SettingResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}
