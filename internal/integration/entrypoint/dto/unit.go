package dto

// ConvertQuery holds the query of GET /units/convert.
type ConvertQuery struct {
	Value *float64 `form:"value" binding:"required"`
	From  string   `form:"from" binding:"required"`
	To    string   `form:"to" binding:"required"`
}

// ConvertResponse is the result of a unit conversion.
type ConvertResponse struct {
	Value     float64 `json:"value"`
	From      string  `json:"from"`
	To        string  `json:"to"`
	Converted float64 `json:"converted"`
}
