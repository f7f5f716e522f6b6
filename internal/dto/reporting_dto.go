package dto

// PeriodQuery selects an inclusive reporting period.
type PeriodQuery struct {
	From string `form:"from" binding:"required,datetime=2006-01-02"`
	To   string `form:"to" binding:"required,datetime=2006-01-02"`
}

// GeneralLedgerQuery pages through the general ledger. Limit 0 uses the default page size.
type GeneralLedgerQuery struct {
	PeriodQuery
	AccountCode string `form:"accountCode"`
	Limit       int    `form:"limit" binding:"omitempty,min=0,max=1000"`
	PageToken   string `form:"pageToken"`
}

// DrillDownQuery selects the source transactions behind a report line.
type DrillDownQuery struct {
	PeriodQuery
	ReportType  string `form:"reportType" binding:"required"`
	AccountCode string `form:"accountCode" binding:"required"`
	Limit       int    `form:"limit" binding:"omitempty,min=0"`
	Offset      int    `form:"offset" binding:"omitempty,min=0"`
}
