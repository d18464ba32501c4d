package transport

import "time"

type ProductFilter struct {
	ProductID *uint
	Category  string
}

type ReviewFilter struct {
	ProductID *uint
	Rating    *int
	Status    string
}

type NotificationFilter struct {
	IsRead *bool
	Type   string
}

// ActivityFilter bounds are inclusive. The range applies only when both
// Start and End are set.
type ActivityFilter struct {
	AdminID *uint
	Action  string
	Start   *time.Time
	End     *time.Time
}

type UpdateStockRequest struct {
	StockQuantity *int `json:"stockQuantity"`
}

type ModerateReviewRequest struct {
	Status          string  `json:"status"`
	RejectionReason *string `json:"rejectionReason"`
}

type SendNotificationRequest struct {
	Message     string `json:"message"`
	TargetRole  string `json:"targetRole"`
	TargetUsers []uint `json:"targetUsers"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type SendNotificationResponse struct {
	Message string `json:"message"`
	Sent    int    `json:"sent"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
