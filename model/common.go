package model

// PagingMeta holds the pagination metadata attached to list responses
type PagingMeta struct {
	Page   int                    `json:"page"`
	Count  int64                  `json:"count"`
	Limit  int                    `json:"limit"`
	Filter map[string]interface{} `json:"filter"`
}
