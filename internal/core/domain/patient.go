package domain

import "time"

// PatientBio holds self-reported biographical details.
type PatientBio struct {
	Age           *int   `json:"age" bson:"age"`
	Sex           string `json:"sex" bson:"sex"`
	Nationality   string `json:"nationality" bson:"nationality"`
	Occupation    string `json:"occupation" bson:"occupation"`
	MaritalStatus string `json:"marital_status" bson:"marital_status"`
	Phone         string `json:"phone" bson:"phone"`
	Address       string `json:"address" bson:"address"`
}

// EmergencyContact is the person to reach when the patient cannot be.
type EmergencyContact struct {
	Name  string `json:"name" bson:"name"`
	Phone string `json:"phone" bson:"phone"`
}

// PatientRecord is the self-service record a patient maintains about
// themselves. It never carries role or verification state.
type PatientRecord struct {
	ID               string           `json:"id" bson:"_id,omitempty"`
	UID              string           `json:"uid" bson:"uid"`
	Email            string           `json:"email" bson:"email"`
	FirstName        string           `json:"first_name" bson:"first_name"`
	LastName         string           `json:"last_name" bson:"last_name"`
	Bio              PatientBio       `json:"bio" bson:"bio"`
	EmergencyContact EmergencyContact `json:"emergency_contact" bson:"emergency_contact"`
	CreatedAt        time.Time        `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at" bson:"updated_at"`
}
