package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"

	FieldBuyer  = "buyer"
	FieldSeller = "seller"
)

// Cities accepted at registration.
var Cities = []string{
	"Karachi", "Lahore", "Islamabad", "Rawalpindi", "Faisalabad",
	"Peshawar", "Quetta", "Multan", "Sialkot", "Gujranwala",
	"Bahawalpur", "Hyderabad", "Sargodha", "Sukkur", "Mardan",
	"Abbottabad", "Swat", "Larkana", "Sheikhupura",
}

func ValidCity(city string) bool {
	for _, c := range Cities {
		if c == city {
			return true
		}
	}
	return false
}

type User struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName         string             `bson:"firstName" json:"firstName"`
	LastName          string             `bson:"lastName" json:"lastName"`
	UserName          string             `bson:"userName" json:"userName"`
	Email             string             `bson:"email" json:"email"`
	PhoneNumber       string             `bson:"phoneNumber" json:"phoneNumber"`
	WhatsappNumber    string             `bson:"whatsappNumber,omitempty" json:"whatsappNumber,omitempty"`
	Address           string             `bson:"address" json:"address"`
	City              string             `bson:"city" json:"city"`
	UserField         string             `bson:"userField" json:"userField"`
	Role              string             `bson:"role" json:"role"`
	Password          string             `bson:"password" json:"-"`
	IsVerified        bool               `bson:"isVerified" json:"isVerified"`
	VerificationToken string             `bson:"verificationToken,omitempty" json:"-"`
	LastLoginAt       *time.Time         `bson:"lastLoginAt" json:"lastLoginAt"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// UserSummary is the owner/buyer projection joined into order and shop reads.
type UserSummary struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email,omitempty"`
	PhoneNumber    string `json:"phoneNumber,omitempty"`
	WhatsappNumber string `json:"whatsappNumber,omitempty"`
	Address        string `json:"address,omitempty"`
	City           string `json:"city,omitempty"`
}
