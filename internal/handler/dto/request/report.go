package request

type CreateReportRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

type UpdateReportRequest struct {
	Status string `json:"status" binding:"required,oneof=open resolved dismissed"`
}

type ListByStatusQuery struct {
	Status string `form:"status"`
}
