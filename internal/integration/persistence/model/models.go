package model

// All lists every model in migration order.
func All() []any {
	return []any{
		&UserModel{},
		&RefreshTokenModel{},
		&EmissionFactorModel{},
		&UserInputModel{},
		&ReportModel{},
		&EmailQueueModel{},
	}
}
