package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	RoleFarmer   = "farmer"
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

func ValidRole(role string) bool {
	switch role {
	case RoleFarmer, RoleCustomer, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"        json:"userId"`
	Name         string    `gorm:"size:255;not null"               json:"name"`
	Email        string    `gorm:"size:255;uniqueIndex;not null"   json:"email"`
	PasswordHash string    `gorm:"size:255;not null"               json:"-"`
	Role         string    `gorm:"size:10;index;not null"          json:"role"`
	Phone        *string   `gorm:"size:15"                         json:"phone"`
	Address      *string   `gorm:"size:255"                        json:"address"`
	CreatedAt    time.Time `                                       json:"createdAt"`
	UpdatedAt    time.Time `                                       json:"updatedAt"`
}

func (User) TableName() string { return "users" }

const (
	VerificationPending  = "pending"
	VerificationApproved = "approved"
	VerificationRejected = "rejected"
)

type Farmer struct {
	ID                 uint      `gorm:"primaryKey;autoIncrement"  json:"farmerId"`
	UserID             uint      `gorm:"uniqueIndex;not null"      json:"user"`
	User               *User     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	FarmName           string    `gorm:"size:255;not null"         json:"farmName"`
	Location           string    `gorm:"size:255;not null"         json:"location"`
	FarmType           string    `gorm:"size:50;not null"          json:"farmType"`
	Certifications     *string   `gorm:"type:text"                 json:"certifications"`
	VerificationStatus string    `gorm:"size:10;not null"          json:"verificationStatus"`
	CreatedAt          time.Time `                                 json:"createdAt"`
	UpdatedAt          time.Time `                                 json:"updatedAt"`
}

func (Farmer) TableName() string { return "farmers" }

const (
	ProductInStock     = "in_stock"
	ProductOutOfStock  = "out_of_stock"
	ProductUnderReview = "under_review"

	// ProductLowStock is only ever returned by inventory listings; it is
	// never written to the products table.
	ProductLowStock = "low stock"

	LowStockThreshold = 10
)

type Product struct {
	ID            uint      `gorm:"primaryKey;autoIncrement"           json:"productId"`
	FarmerID      uint      `gorm:"index;not null"                     json:"farmer"`
	Farmer        *Farmer   `gorm:"constraint:OnDelete:CASCADE"        json:"-"`
	ProductName   string    `gorm:"size:255;not null"                  json:"productName"`
	Description   string    `gorm:"type:text;not null"                 json:"description"`
	Category      string    `gorm:"size:50;index;not null"             json:"category"`
	UnitPrice     float64   `gorm:"type:numeric(10,2);not null"        json:"unitPrice"`
	StockQuantity int       `gorm:"not null"                           json:"stockQuantity"`
	ProductImage  *string   `gorm:"size:255"                           json:"productImage"`
	Status        string    `gorm:"size:20;not null;default:in_stock"  json:"status"`
	CreatedAt     time.Time `                                          json:"createdAt"`
	UpdatedAt     time.Time `                                          json:"updatedAt"`
}

func (Product) TableName() string { return "products" }

const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
)

type Order struct {
	ID          uint           `gorm:"primaryKey;autoIncrement"     json:"orderId"`
	CustomerID  uint           `gorm:"index;not null"               json:"customer"`
	Customer    *User          `gorm:"constraint:OnDelete:CASCADE"  json:"-"`
	OrderItems  datatypes.JSON `gorm:"not null"                     json:"orderItems"`
	TotalAmount float64        `gorm:"type:numeric(10,2);not null"  json:"totalAmount"`
	Status      string         `gorm:"size:20;not null"             json:"status"`
	CreatedAt   time.Time      `                                    json:"createdAt"`
	UpdatedAt   time.Time      `                                    json:"updatedAt"`
}

func (Order) TableName() string { return "orders" }

type Cart struct {
	ID         uint           `gorm:"primaryKey;autoIncrement"     json:"cartId"`
	CustomerID uint           `gorm:"index;not null"               json:"customer"`
	Customer   *User          `gorm:"constraint:OnDelete:CASCADE"  json:"-"`
	Items      datatypes.JSON `gorm:"not null"                     json:"items"`
	TotalPrice *float64       `gorm:"type:numeric(10,2)"           json:"totalPrice"`
	CreatedAt  time.Time      `                                    json:"createdAt"`
	UpdatedAt  time.Time      `                                    json:"updatedAt"`
}

func (Cart) TableName() string { return "carts" }

const (
	ReviewPending  = "pending"
	ReviewApproved = "approved"
	ReviewRejected = "rejected"
)

type Review struct {
	ID              uint      `gorm:"primaryKey;autoIncrement"          json:"reviewId"`
	ProductID       uint      `gorm:"index;not null"                    json:"product"`
	Product         *Product  `gorm:"constraint:OnDelete:CASCADE"       json:"-"`
	CustomerID      uint      `gorm:"index;not null"                    json:"customer"`
	Customer        *User     `gorm:"constraint:OnDelete:CASCADE"       json:"-"`
	Rating          int       `gorm:"not null"                          json:"rating"`
	Comment         *string   `gorm:"type:text"                         json:"comment"`
	Status          string    `gorm:"size:10;index;not null;default:pending" json:"status"`
	RejectionReason *string   `gorm:"type:text"                         json:"rejectionReason"`
	CreatedAt       time.Time `                                         json:"createdAt"`
	UpdatedAt       time.Time `                                         json:"updatedAt"`
}

func (Review) TableName() string { return "reviews" }

const NotificationGeneral = "general"

type Notification struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"         json:"notificationId"`
	Message      string    `gorm:"type:text;not null"               json:"message"`
	Type         string    `gorm:"size:50;index;not null"           json:"type"`
	CreatedDate  time.Time `gorm:"autoCreateTime"                   json:"createdDate"`
	IsRead       bool      `gorm:"not null;default:false"           json:"isRead"`
	TargetRole   *string   `gorm:"size:50"                          json:"targetRole"`
	TargetUserID *uint     `gorm:"index"                            json:"targetUserId"`
	TargetUser   *User     `gorm:"constraint:OnDelete:CASCADE"      json:"-"`
}

func (Notification) TableName() string { return "notifications" }

// AdminActivityLog rows are append-only.
type AdminActivityLog struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"      json:"logId"`
	AdminID   uint      `gorm:"index;not null"                json:"adminId"`
	Admin     *User     `gorm:"constraint:OnDelete:CASCADE"   json:"-"`
	Action    string    `gorm:"size:255;index;not null"       json:"action"`
	TargetID  *uint     `                                     json:"targetId"`
	Timestamp time.Time `gorm:"index;not null"                json:"timestamp"`
}

func (AdminActivityLog) TableName() string { return "admin_activity_logs" }

func All() []any {
	return []any{
		&User{},
		&Farmer{},
		&Product{},
		&Order{},
		&Cart{},
		&Review{},
		&Notification{},
		&AdminActivityLog{},
	}
}
